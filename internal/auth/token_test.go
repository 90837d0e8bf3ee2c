package auth

import (
	"testing"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTokenService_NoSecret(t *testing.T) {
	_, err := NewTokenService("")
	assert.ErrorIs(t, err, ErrNoSecret)
}

func TestTokenService_IssueAndValidate(t *testing.T) {
	svc, err := NewTokenService("test-secret")
	require.NoError(t, err)

	token, err := svc.Issue("alice", 15*time.Minute)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	subject, err := svc.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, "alice", subject)
}

func TestTokenService_ExpiryIsIssuancePlusTTL(t *testing.T) {
	svc, err := NewTokenService("test-secret")
	require.NoError(t, err)

	before := time.Now().Unix()
	token, err := svc.Issue("alice", 30*time.Minute)
	require.NoError(t, err)
	after := time.Now().Unix()

	claims := &jwt.StandardClaims{}
	_, err = jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	})
	require.NoError(t, err)

	ttl := int64((30 * time.Minute).Seconds())
	assert.GreaterOrEqual(t, claims.ExpiresAt, before+ttl)
	assert.LessOrEqual(t, claims.ExpiresAt, after+ttl)
}

func TestTokenService_Expired(t *testing.T) {
	svc, err := NewTokenService("test-secret")
	require.NoError(t, err)

	token, err := svc.Issue("alice", time.Minute)
	require.NoError(t, err)

	// Advance simulated time past the TTL.
	jwt.TimeFunc = func() time.Time { return time.Now().Add(2 * time.Minute) }
	defer func() { jwt.TimeFunc = time.Now }()

	_, err = svc.Validate(token)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestTokenService_ExpiredForeignTokenIsMalformed(t *testing.T) {
	svc, err := NewTokenService("test-secret")
	require.NoError(t, err)

	other, err := NewTokenService("another-secret")
	require.NoError(t, err)

	// Expired AND signed with the wrong key: the bad signature must win.
	foreign, err := other.Issue("alice", -time.Minute)
	require.NoError(t, err)

	_, err = svc.Validate(foreign)
	assert.ErrorIs(t, err, ErrTokenMalformed)
}

func TestTokenService_Malformed(t *testing.T) {
	svc, err := NewTokenService("test-secret")
	require.NoError(t, err)

	other, err := NewTokenService("another-secret")
	require.NoError(t, err)
	foreign, err := other.Issue("alice", time.Minute)
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
	}{
		{name: "garbage", token: "not.a.token"},
		{name: "empty", token: ""},
		{name: "wrong secret", token: foreign},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Validate(tt.token)
			assert.ErrorIs(t, err, ErrTokenMalformed)
		})
	}
}
