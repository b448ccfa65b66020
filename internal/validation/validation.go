// Package validation contains the boundary checks applied to raw request
// input. Every predicate is total over strings: empty or garbage input
// returns false, never panics.
package validation

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/anshgupta/community-board/internal/models"
)

var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// ValidEmail reports whether email has a local@domain.tld shape after
// trimming surrounding whitespace.
func ValidEmail(email string) bool {
	email = strings.TrimSpace(email)
	return email != "" && emailRe.MatchString(email)
}

// ValidPassword requires at least 8 characters. Passwords are not trimmed:
// leading or trailing spaces are part of the password.
func ValidPassword(password string) bool {
	return utf8.RuneCountInString(password) >= 8
}

// ValidName requires at least 2 characters after trimming.
func ValidName(name string) bool {
	return utf8.RuneCountInString(strings.TrimSpace(name)) >= 2
}

// ValidPostTitle requires at least 5 characters after trimming.
func ValidPostTitle(title string) bool {
	return utf8.RuneCountInString(strings.TrimSpace(title)) >= 5
}

// ValidPostContent requires at least 20 characters after trimming.
func ValidPostContent(content string) bool {
	return utf8.RuneCountInString(strings.TrimSpace(content)) >= 20
}

// ValidRole reports whether role is one of the closed set
// admin/moderator/member.
func ValidRole(role string) bool {
	switch role {
	case models.RoleAdmin, models.RoleModerator, models.RoleMember:
		return true
	}
	return false
}
