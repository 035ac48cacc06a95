package auth

import (
	"context"
	"sync"
	"testing"

	"github.com/careroster/roster-backend/internal/config"
	"github.com/careroster/roster-backend/internal/domain/auth"
	"github.com/careroster/roster-backend/internal/pkg/jwt"
	"github.com/careroster/roster-backend/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const (
	testAccessExp  = "1h"
	testRefreshExp = "24h"
	testSSEExp     = "5m"
	testSecret     = "test-secret-key-for-jwt"
)

type storedToken struct {
	subject string
	revoked bool
}

type memRefreshTokenRepo struct {
	mu     sync.Mutex
	tokens map[string]*storedToken
}

func newMemRefreshTokenRepo() *memRefreshTokenRepo {
	return &memRefreshTokenRepo{tokens: map[string]*storedToken{}}
}

func (m *memRefreshTokenRepo) Create(_ context.Context, subject, token string, _ int64, _ auth.SessionTrackingRequest) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tokens[token] = &storedToken{subject: subject}
	return nil
}

func (m *memRefreshTokenRepo) IsRevoked(_ context.Context, token string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	st, ok := m.tokens[token]
	if !ok {
		return "", false, auth.ErrRefreshTokenNotFound
	}
	return st.subject, st.revoked, nil
}

func (m *memRefreshTokenRepo) Revoke(_ context.Context, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if st, ok := m.tokens[token]; ok {
		st.revoked = true
	}
	return nil
}

func newTestAuthService(t *testing.T, password string) (auth.AuthService, *memRefreshTokenRepo, jwt.Service) {
	t.Helper()
	jwtService, err := jwt.NewJWTService(testSecret, testAccessExp, testRefreshExp, testSSEExp)
	require.NoError(t, err)
	repo := newMemRefreshTokenRepo()
	svc := NewAuthService(config.AdminConfig{Username: "admin", Password: password}, jwtService, repo)
	return svc, repo, jwtService
}

func TestLogin(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
	require.NoError(t, err)

	tests := []struct {
		name       string
		configured string
		username   string
		password   string
		wantErr    error
	}{
		{name: "plain password", configured: "s3cret", username: "admin", password: "s3cret"},
		{name: "bcrypt password", configured: string(hash), username: "admin", password: "s3cret"},
		{name: "wrong password", configured: "s3cret", username: "admin", password: "nope", wantErr: auth.ErrInvalidCredentials},
		{name: "wrong username", configured: "s3cret", username: "root", password: "s3cret", wantErr: auth.ErrInvalidCredentials},
		{name: "bcrypt mismatch", configured: string(hash), username: "admin", password: string(hash), wantErr: auth.ErrInvalidCredentials},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo, _ := newTestAuthService(t, tt.configured)

			resp, err := svc.Login(context.Background(), auth.LoginRequest{Username: tt.username, Password: tt.password}, auth.SessionTrackingRequest{})
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Empty(t, repo.tokens)
				return
			}
			require.NoError(t, err)
			assert.NotEmpty(t, resp.AccessToken)
			assert.NotEmpty(t, resp.RefreshToken)
			assert.Contains(t, repo.tokens, resp.RefreshToken)
		})
	}
}

func TestLogin_ValidationError(t *testing.T) {
	svc, _, _ := newTestAuthService(t, "s3cret")

	_, err := svc.Login(context.Background(), auth.LoginRequest{}, auth.SessionTrackingRequest{})
	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Len(t, verrs, 2)
}

func TestRefreshToken(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestAuthService(t, "s3cret")

	tokens, err := svc.Login(ctx, auth.LoginRequest{Username: "admin", Password: "s3cret"}, auth.SessionTrackingRequest{})
	require.NoError(t, err)

	resp, err := svc.RefreshToken(ctx, auth.RefreshTokenRequest{RefreshToken: tokens.RefreshToken})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)

	_, err = svc.RefreshToken(ctx, auth.RefreshTokenRequest{RefreshToken: tokens.AccessToken})
	assert.ErrorIs(t, err, auth.ErrInvalidToken, "access tokens cannot refresh")

	require.NoError(t, svc.Logout(ctx, tokens.RefreshToken))
	_, err = svc.RefreshToken(ctx, auth.RefreshTokenRequest{RefreshToken: tokens.RefreshToken})
	assert.ErrorIs(t, err, auth.ErrRefreshTokenRevoked)
}

func TestRefreshToken_UnknownToken(t *testing.T) {
	svc, _, jwtService := newTestAuthService(t, "s3cret")

	unsaved, _, err := jwtService.GenerateRefreshToken("admin")
	require.NoError(t, err)

	_, err = svc.RefreshToken(context.Background(), auth.RefreshTokenRequest{RefreshToken: unsaved})
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestLogout_Idempotent(t *testing.T) {
	svc, _, _ := newTestAuthService(t, "s3cret")
	ctx := context.Background()

	assert.NoError(t, svc.Logout(ctx, "never-issued"))

	tokens, err := svc.Login(ctx, auth.LoginRequest{Username: "admin", Password: "s3cret"}, auth.SessionTrackingRequest{})
	require.NoError(t, err)
	assert.NoError(t, svc.Logout(ctx, tokens.RefreshToken))
	assert.NoError(t, svc.Logout(ctx, tokens.RefreshToken))
}

func TestIssueSSEToken(t *testing.T) {
	svc, _, jwtService := newTestAuthService(t, "s3cret")

	resp, err := svc.IssueSSEToken(context.Background(), "admin")
	require.NoError(t, err)
	assert.Equal(t, 300, resp.ExpiresIn)

	subject, err := jwtService.ValidateSSEToken(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, "admin", subject)

	_, err = svc.IssueSSEToken(context.Background(), "")
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}
