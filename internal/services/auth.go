package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"campus-portal-backend/internal/middleware"
	"campus-portal-backend/internal/models"
)

type AuthService struct {
	creds      *CredentialStore
	sessions   SessionStore
	ids        *IDGenerator
	jwt        *middleware.JWTAuth
	refreshTTL time.Duration
	now        func() time.Time
}

func NewAuthService(creds *CredentialStore, sessions SessionStore, ids *IDGenerator, jwt *middleware.JWTAuth, refreshTTL time.Duration) *AuthService {
	if refreshTTL <= 0 {
		refreshTTL = 7 * 24 * time.Hour
	}
	if ids == nil {
		ids = NewIDGenerator(nil)
	}
	return &AuthService{
		creds:      creds,
		sessions:   sessions,
		ids:        ids,
		jwt:        jwt,
		refreshTTL: refreshTTL,
		now:        time.Now,
	}
}

func (s *AuthService) Login(ctx context.Context, req models.LoginRequest) (*models.AuthSession, error) {
	if err := validateInput(req, "Email and password are required"); err != nil {
		return nil, err
	}

	user, err := s.creds.Check(req.Email, req.Password)
	if err != nil {
		return nil, err
	}

	return s.issueSession(ctx, *user)
}

// Register synthesizes an account record and a session for it. Any non-empty
// email and password are accepted. Nothing is stored: the new account cannot
// log in with its password afterwards.
func (s *AuthService) Register(ctx context.Context, req models.RegisterRequest) (*models.AuthSession, error) {
	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.TrimSpace(req.Email)
	req.Role = strings.TrimSpace(req.Role)

	if err := validateInput(req, "Name, email and password are required"); err != nil {
		return nil, err
	}

	role := req.Role
	if role == "" {
		role = "student"
	}

	createdAt := s.now().UTC()
	user := models.User{
		ID:        strconv.FormatInt(s.ids.Next(), 10),
		Name:      req.Name,
		Email:     req.Email,
		Role:      role,
		CreatedAt: &createdAt,
	}

	return s.issueSession(ctx, user)
}

// Refresh exchanges a refresh token for a new token pair. The old refresh
// token stops working.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*models.AuthSession, error) {
	if refreshToken == "" {
		return nil, &ValidationError{
			Message: "Refresh token is required",
			Fields:  map[string]string{"refreshToken": "refreshToken is required"},
		}
	}

	user, err := s.sessions.Lookup(ctx, refreshToken)
	if errors.Is(err, ErrSessionNotFound) {
		return nil, &UnauthorizedError{Message: "Invalid or expired refresh token. Please log in again."}
	}
	if err != nil {
		return nil, err
	}

	// Delete old token (rotation)
	if err := s.sessions.Delete(ctx, refreshToken); err != nil {
		return nil, fmt.Errorf("failed to revoke refresh token: %w", err)
	}

	return s.issueSession(ctx, *user)
}

// Logout revokes refreshToken if it was issued to userID. Unknown tokens are
// ignored; a token issued to someone else is refused.
func (s *AuthService) Logout(ctx context.Context, refreshToken, userID string) error {
	if refreshToken == "" {
		return nil
	}

	owner, err := s.sessions.Lookup(ctx, refreshToken)
	if errors.Is(err, ErrSessionNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	if owner.ID != userID {
		return &UnauthorizedError{Message: "Refresh token does not belong to this user"}
	}

	return s.sessions.Delete(ctx, refreshToken)
}

func (s *AuthService) issueSession(ctx context.Context, user models.User) (*models.AuthSession, error) {
	accessToken, err := s.jwt.GenerateAccessToken(user)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	refreshToken := uuid.NewString()
	if err := s.sessions.Save(ctx, refreshToken, user, s.refreshTTL); err != nil {
		return nil, err
	}

	return &models.AuthSession{
		User: user,
		AuthTokens: models.AuthTokens{
			AccessToken:  accessToken,
			RefreshToken: refreshToken,
			ExpiresIn:    int(s.jwt.TTL.Seconds()),
		},
	}, nil
}
