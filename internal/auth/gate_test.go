package auth

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/SergeyBogomolovv/publika-insight/internal/config"
	"github.com/SergeyBogomolovv/publika-insight/internal/entities"
	"github.com/SergeyBogomolovv/publika-insight/pkg/cache"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const testSecret = "test-secret-0123456789"

func newTestGate(t *testing.T) *Gate {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("owner1234"), bcrypt.MinCost)
	require.NoError(t, err)

	cfg := config.Admin{
		Username:     "owner123",
		PasswordHash: string(hash),
		JWTSecret:    testSecret,
		SessionTTL:   time.Hour,
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	g, err := NewGate(logger, cfg, cache.NewLRUCache(100, time.Hour))
	require.NoError(t, err)
	return g
}

func TestGate_Login(t *testing.T) {
	testCases := []struct {
		name     string
		username string
		password string
		wantErr  error
	}{
		{name: "valid credentials", username: "owner123", password: "owner1234"},
		{name: "wrong password", username: "owner123", password: "owner123", wantErr: entities.ErrInvalidCredentials},
		{name: "wrong username", username: "admin", password: "owner1234", wantErr: entities.ErrInvalidCredentials},
		{name: "empty", wantErr: entities.ErrInvalidCredentials},
	}

	g := newTestGate(t)
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			token, err := g.Login(tc.username, tc.password)
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
				assert.Empty(t, token)
				return
			}
			require.NoError(t, err)
			assert.NotEmpty(t, token)

			subject, err := g.Authorize(token)
			require.NoError(t, err)
			assert.Equal(t, "owner123", subject)
		})
	}
}

func TestNewGate_HashesPlainPassword(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	cfg := config.Admin{
		Username:   "owner123",
		Password:   "owner1234",
		JWTSecret:  testSecret,
		SessionTTL: time.Hour,
	}

	g, err := NewGate(logger, cfg, cache.NewLRUCache(10, time.Hour))
	require.NoError(t, err)
	assert.NotEqual(t, []byte("owner1234"), g.passwordHash)

	_, err = g.Login("owner123", "owner1234")
	assert.NoError(t, err)
}

func TestGate_LogoutRevokesSession(t *testing.T) {
	g := newTestGate(t)

	token, err := g.Login("owner123", "owner1234")
	require.NoError(t, err)

	other, err := g.Login("owner123", "owner1234")
	require.NoError(t, err)

	require.NoError(t, g.Logout(token))

	_, err = g.Authorize(token)
	assert.ErrorIs(t, err, entities.ErrUnauthorized)

	// другие сессии продолжают работать
	_, err = g.Authorize(other)
	assert.NoError(t, err)
}

func TestGate_Authorize_Rejects(t *testing.T) {
	g := newTestGate(t)

	expired := func() string {
		g.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
		defer func() { g.now = time.Now }()
		token, err := g.Login("owner123", "owner1234")
		require.NoError(t, err)
		return token
	}()

	foreign := func() string {
		claims := jwt.RegisteredClaims{
			ID:        "session",
			Issuer:    issuer,
			Subject:   "owner123",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		}
		token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("another-secret-0123456789"))
		require.NoError(t, err)
		return token
	}()

	unsigned := func() string {
		claims := jwt.RegisteredClaims{
			ID:        "session",
			Issuer:    issuer,
			Subject:   "owner123",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		}
		token, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
		require.NoError(t, err)
		return token
	}()

	testCases := []struct {
		name  string
		token string
	}{
		{name: "empty", token: ""},
		{name: "garbage", token: "not-a-token"},
		{name: "expired", token: expired},
		{name: "signed with another secret", token: foreign},
		{name: "alg none", token: unsigned},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := g.Authorize(tc.token)
			assert.ErrorIs(t, err, entities.ErrUnauthorized)
		})
	}
}

func TestGate_LogoutInvalidToken(t *testing.T) {
	g := newTestGate(t)
	assert.ErrorIs(t, g.Logout("not-a-token"), entities.ErrUnauthorized)
}
