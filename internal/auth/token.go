package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenTTL is how long an issued token stays valid. Verification is
// stateless, so there is no revocation before expiry.
const TokenTTL = 7 * 24 * time.Hour

// ErrInvalidToken covers every verification failure: bad signature,
// malformed input, elapsed expiry. Callers get no finer detail.
var ErrInvalidToken = errors.New("invalid or expired token")

// Claims is the token payload. Claims are signed, not encrypted: anything
// placed here is readable by the token holder.
type Claims struct {
	jwt.RegisteredClaims
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	Role   string `json:"role"`
}

// TokenService issues and verifies HS256-signed identity tokens with a
// symmetric secret loaded once at startup.
type TokenService struct {
	secret []byte
	ttl    time.Duration
}

func NewTokenService(secret string, ttl time.Duration) (*TokenService, error) {
	if secret == "" {
		return nil, errors.New("token secret is empty")
	}
	if ttl == 0 {
		ttl = TokenTTL
	}
	return &TokenService{secret: []byte(secret), ttl: ttl}, nil
}

// Issue signs a token carrying the user's identity plus issued-at and
// expiry timestamps.
func (s *TokenService) Issue(userID, email, role string) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
		UserID: userID,
		Email:  email,
		Role:   role,
	})
	return token.SignedString(s.secret)
}

// Verify checks the signature and expiry and returns the embedded claims.
// Missing or garbled input is expected from unauthenticated requests and
// yields ErrInvalidToken, never a panic.
func (s *TokenService) Verify(tokenString string) (*Claims, error) {
	if tokenString == "" {
		return nil, ErrInvalidToken
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
