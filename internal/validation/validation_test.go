package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidEmail(t *testing.T) {
	t.Parallel()

	cases := []struct {
		email string
		want  bool
	}{
		{"a@b.com", true},
		{"  a@b.com  ", true},
		{"first.last@sub.example.co", true},
		{"", false},
		{"   ", false},
		{"plainaddress", false},
		{"@missing-local.com", false},
		{"missing-domain@", false},
		{"no-tld@domain", false},
		{"spaces in@local.com", false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, ValidEmail(tc.email), "email %q", tc.email)
	}
}

func TestValidPassword(t *testing.T) {
	t.Parallel()

	assert.False(t, ValidPassword(""))
	assert.False(t, ValidPassword("1234567"))
	assert.True(t, ValidPassword("12345678"))
	// Passwords keep their whitespace.
	assert.True(t, ValidPassword("      12"))
}

func TestValidName(t *testing.T) {
	t.Parallel()

	assert.False(t, ValidName(""))
	assert.False(t, ValidName("A"))
	assert.False(t, ValidName("  A  "))
	assert.True(t, ValidName("Al"))
	assert.True(t, ValidName("  Al  "))
}

func TestValidPostTitle_BoundaryExact(t *testing.T) {
	t.Parallel()

	assert.False(t, ValidPostTitle(strings.Repeat("x", 4)))
	assert.True(t, ValidPostTitle(strings.Repeat("x", 5)))
	// Padding does not rescue a short title.
	assert.False(t, ValidPostTitle("  xxxx  "))
}

func TestValidPostContent_BoundaryExact(t *testing.T) {
	t.Parallel()

	assert.False(t, ValidPostContent(strings.Repeat("y", 19)))
	assert.True(t, ValidPostContent(strings.Repeat("y", 20)))
}

func TestValidRole(t *testing.T) {
	t.Parallel()

	assert.True(t, ValidRole("admin"))
	assert.True(t, ValidRole("moderator"))
	assert.True(t, ValidRole("member"))
	assert.False(t, ValidRole(""))
	assert.False(t, ValidRole("Member"))
	assert.False(t, ValidRole("superuser"))
}
