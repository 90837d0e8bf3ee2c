package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/dgrijalva/jwt-go"
)

var (
	// ErrNoSecret means no signing key was configured.
	ErrNoSecret = errors.New("jwt secret key is not configured")

	// ErrTokenExpired means the token was valid once but its lifetime is over.
	ErrTokenExpired = errors.New("token expired")

	// ErrTokenMalformed covers everything else: bad structure, bad
	// signature, unexpected signing algorithm.
	ErrTokenMalformed = errors.New("token malformed")
)

// TokenService issues and validates HS256 bearer tokens carrying a subject
// claim. Validation is pure: no storage lookups, no revocation list.
type TokenService struct {
	secret []byte
}

func NewTokenService(secret string) (*TokenService, error) {
	if secret == "" {
		return nil, ErrNoSecret
	}
	return &TokenService{secret: []byte(secret)}, nil
}

// Issue signs a token for subject expiring exactly ttl from now.
func (s *TokenService) Issue(subject string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.StandardClaims{
		Subject:   subject,
		IssuedAt:  now.Unix(),
		ExpiresAt: now.Add(ttl).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Validate checks the signature and expiry of tokenString and returns the
// subject claim.
func (s *TokenService) Validate(tokenString string) (string, error) {
	claims := &jwt.StandardClaims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		var vErr *jwt.ValidationError
		if errors.As(err, &vErr) {
			// Claims get validated even when the signature check failed, so
			// both bits can be set at once. A bad signature always wins: an
			// unverifiable token must not be reported as merely expired.
			badToken := jwt.ValidationErrorMalformed |
				jwt.ValidationErrorUnverifiable |
				jwt.ValidationErrorSignatureInvalid
			if vErr.Errors&badToken == 0 && vErr.Errors&jwt.ValidationErrorExpired != 0 {
				return "", ErrTokenExpired
			}
		}
		return "", ErrTokenMalformed
	}
	return claims.Subject, nil
}
