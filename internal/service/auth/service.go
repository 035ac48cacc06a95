package auth

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"strings"

	"github.com/careroster/roster-backend/internal/config"
	"github.com/careroster/roster-backend/internal/domain/auth"
	"github.com/careroster/roster-backend/internal/pkg/jwt"
	"golang.org/x/crypto/bcrypt"
)

type AuthServiceImpl struct {
	admin config.AdminConfig
	jwt.Service
	refreshTokenRepo auth.RefreshTokenRepository
}

func NewAuthService(admin config.AdminConfig, jwtService jwt.Service, refreshTokenRepo auth.RefreshTokenRepository) auth.AuthService {
	return &AuthServiceImpl{
		admin:            admin,
		Service:          jwtService,
		refreshTokenRepo: refreshTokenRepo,
	}
}

// checkCredentials compares against the configured admin. A password
// starting with "$2" is treated as a bcrypt hash.
func (a *AuthServiceImpl) checkCredentials(username, password string) bool {
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(a.admin.Username)) == 1

	var passOK bool
	if strings.HasPrefix(a.admin.Password, "$2") {
		passOK = bcrypt.CompareHashAndPassword([]byte(a.admin.Password), []byte(password)) == nil
	} else {
		passOK = subtle.ConstantTimeCompare([]byte(password), []byte(a.admin.Password)) == 1
	}

	return userOK && passOK
}

// Login implements auth.AuthService.
func (a *AuthServiceImpl) Login(ctx context.Context, req auth.LoginRequest, session auth.SessionTrackingRequest) (auth.TokenResponse, error) {
	if err := req.Validate(); err != nil {
		return auth.TokenResponse{}, err
	}

	if !a.checkCredentials(req.Username, req.Password) {
		return auth.TokenResponse{}, auth.ErrInvalidCredentials
	}

	var (
		tokenResponse auth.TokenResponse
		err           error
	)
	tokenResponse.AccessToken, tokenResponse.AccessTokenExpiresIn, err = a.Service.GenerateAccessToken(a.admin.Username)
	if err != nil {
		return auth.TokenResponse{}, fmt.Errorf("failed to create access token: %w", err)
	}
	tokenResponse.RefreshToken, tokenResponse.RefreshTokenExpiresIn, err = a.Service.GenerateRefreshToken(a.admin.Username)
	if err != nil {
		return auth.TokenResponse{}, fmt.Errorf("failed to create refresh token: %w", err)
	}

	if err := a.refreshTokenRepo.Create(ctx, a.admin.Username, tokenResponse.RefreshToken, tokenResponse.RefreshTokenExpiresIn, session); err != nil {
		return auth.TokenResponse{}, fmt.Errorf("failed to save refresh token to database: %w", err)
	}

	return tokenResponse, nil
}

// Logout implements auth.AuthService. Unknown or already revoked tokens are
// accepted so logging out twice is not an error.
func (a *AuthServiceImpl) Logout(ctx context.Context, refreshToken string) error {
	_, revoked, err := a.refreshTokenRepo.IsRevoked(ctx, refreshToken)
	if err != nil {
		if errors.Is(err, auth.ErrRefreshTokenNotFound) {
			return nil
		}
		return fmt.Errorf("failed to check if refresh token is revoked: %w", err)
	}
	if revoked {
		return nil
	}

	if err := a.refreshTokenRepo.Revoke(ctx, refreshToken); err != nil {
		return fmt.Errorf("failed to revoke refresh token: %w", err)
	}
	return nil
}

// RefreshToken implements auth.AuthService.
func (a *AuthServiceImpl) RefreshToken(ctx context.Context, req auth.RefreshTokenRequest) (auth.AccessTokenResponse, error) {
	if err := req.Validate(); err != nil {
		return auth.AccessTokenResponse{}, err
	}

	// Signature, expiry and token type
	subject, err := a.Service.ValidateRefreshToken(req.RefreshToken)
	if err != nil {
		return auth.AccessTokenResponse{}, auth.ErrInvalidToken
	}

	// Revocation
	storedSubject, revoked, err := a.refreshTokenRepo.IsRevoked(ctx, req.RefreshToken)
	if err != nil {
		return auth.AccessTokenResponse{}, auth.ErrInvalidToken
	}
	if revoked {
		return auth.AccessTokenResponse{}, auth.ErrRefreshTokenRevoked
	}
	if storedSubject != subject || subject != a.admin.Username {
		return auth.AccessTokenResponse{}, auth.ErrInvalidToken
	}

	var resp auth.AccessTokenResponse
	resp.AccessToken, resp.AccessTokenExpiresIn, err = a.Service.GenerateAccessToken(subject)
	if err != nil {
		return auth.AccessTokenResponse{}, fmt.Errorf("failed to generate access token: %w", err)
	}

	return resp, nil
}

// IssueSSEToken implements auth.AuthService.
func (a *AuthServiceImpl) IssueSSEToken(ctx context.Context, subject string) (auth.SSETokenResponse, error) {
	if subject == "" {
		return auth.SSETokenResponse{}, auth.ErrInvalidToken
	}

	token, expiresIn, err := a.Service.GenerateSSEToken(subject)
	if err != nil {
		return auth.SSETokenResponse{}, fmt.Errorf("failed to generate sse token: %w", err)
	}

	return auth.SSETokenResponse{Token: token, ExpiresIn: expiresIn}, nil
}
