package services

import (
	"context"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"campus-portal-backend/internal/middleware"
	"campus-portal-backend/internal/models"
)

func newTestCredentials(t *testing.T) *CredentialStore {
	t.Helper()
	store, err := NewCredentialStore(DefaultCredentials(), bcrypt.MinCost)
	require.NoError(t, err)
	return store
}

func newTestAuthService(t *testing.T) (*AuthService, *MemorySessionStore) {
	t.Helper()
	sessions := NewMemorySessionStore(nil)
	jwt := middleware.NewJWTAuth("test-secret-that-is-at-least-32-chars", 15*time.Minute)
	return NewAuthService(newTestCredentials(t), sessions, NewIDGenerator(nil), jwt, time.Hour), sessions
}

func TestCredentialStore_Check(t *testing.T) {
	store := newTestCredentials(t)

	user, err := store.Check("priya@site.ac.in", "password123")
	require.NoError(t, err)
	assert.Equal(t, models.User{ID: "2", Name: "Priya Sharma", Email: "priya@site.ac.in", Role: "student"}, *user)

	for _, tc := range []struct{ email, password string }{
		{"priya@site.ac.in", "wrong"},
		{"Priya@site.ac.in", "password123"},
		{"  priya@site.ac.in ", "password123"},
		{"nobody@site.ac.in", "password123"},
		{"", ""},
	} {
		_, err := store.Check(tc.email, tc.password)
		var nf *NotFoundError
		assert.ErrorAs(t, err, &nf, "%s/%s", tc.email, tc.password)
	}
}

func TestCredentialStore_DoesNotKeepPlaintext(t *testing.T) {
	store := newTestCredentials(t)
	for _, rec := range store.records {
		assert.NotEqual(t, "password123", string(rec.passwordHash))
		assert.NoError(t, bcrypt.CompareHashAndPassword(rec.passwordHash, []byte("password123")))
	}
}

func TestAuthService_Login(t *testing.T) {
	svc, _ := newTestAuthService(t)

	session, err := svc.Login(context.Background(), models.LoginRequest{Email: "rahul@site.ac.in", Password: "password123"})
	require.NoError(t, err)
	assert.Equal(t, "1", session.ID)
	assert.Equal(t, "Rahul Kumar", session.Name)
	assert.NotEmpty(t, session.AccessToken)
	assert.NotEmpty(t, session.RefreshToken)
	assert.Equal(t, 900, session.ExpiresIn)

	parsed, err := svc.jwt.ParseAccessToken(session.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "rahul@site.ac.in", parsed.Email)
}

func TestAuthService_LoginValidation(t *testing.T) {
	svc, _ := newTestAuthService(t)

	_, err := svc.Login(context.Background(), models.LoginRequest{Email: "rahul@site.ac.in"})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "password")

	_, err = svc.Login(context.Background(), models.LoginRequest{Email: "rahul@site.ac.in", Password: "nope"})
	var nf *NotFoundError
	assert.ErrorAs(t, err, &nf)
}

func TestAuthService_LoginEmailMustMatchExactly(t *testing.T) {
	svc, _ := newTestAuthService(t)

	for _, email := range []string{"  rahul@site.ac.in ", "rahul@site.ac.in\n", "RAHUL@site.ac.in"} {
		session, err := svc.Login(context.Background(), models.LoginRequest{Email: email, Password: "password123"})
		assert.Nil(t, session, "email %q", email)
		var nf *NotFoundError
		assert.ErrorAs(t, err, &nf, "email %q", email)
	}
}

func TestAuthService_Register(t *testing.T) {
	svc, _ := newTestAuthService(t)

	session, err := svc.Register(context.Background(), models.RegisterRequest{
		Name:     " Sneha Reddy ",
		Email:    "sneha@site.ac.in",
		Password: "secret123",
	})
	require.NoError(t, err)
	_, perr := strconv.ParseInt(session.ID, 10, 64)
	assert.NoError(t, perr, "registered ids are timestamp ids, got %q", session.ID)
	assert.Equal(t, "Sneha Reddy", session.Name)
	assert.Equal(t, "student", session.Role)
	require.NotNil(t, session.CreatedAt)
	assert.NotEmpty(t, session.RefreshToken)

	// Registered accounts are not added to the credential store.
	_, err = svc.Login(context.Background(), models.LoginRequest{Email: "sneha@site.ac.in", Password: "secret123"})
	var nf *NotFoundError
	assert.ErrorAs(t, err, &nf)
}

func TestAuthService_RegisterValidation(t *testing.T) {
	svc, _ := newTestAuthService(t)

	tests := []struct {
		name  string
		req   models.RegisterRequest
		field string
	}{
		{"missing name", models.RegisterRequest{Email: "a@site.ac.in", Password: "secret123"}, "name"},
		{"missing email", models.RegisterRequest{Name: "A", Password: "secret123"}, "email"},
		{"missing password", models.RegisterRequest{Name: "A", Email: "a@site.ac.in"}, "password"},
		{"bad role", models.RegisterRequest{Name: "A", Email: "a@site.ac.in", Password: "secret123", Role: "dean"}, "role"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Register(context.Background(), tc.req)
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Contains(t, verr.Fields, tc.field)
		})
	}
}

func TestAuthService_RegisterAcceptsAnyNonEmptyCredentials(t *testing.T) {
	svc, _ := newTestAuthService(t)

	for _, req := range []models.RegisterRequest{
		{Name: "A", Email: "a@x.com", Password: "p"},
		{Name: "B", Email: "not-an-email", Password: "letters"},
	} {
		session, err := svc.Register(context.Background(), req)
		require.NoError(t, err, "%+v", req)
		assert.Equal(t, req.Email, session.Email)
	}
}

func TestAuthService_RegisterIDsAreDistinct(t *testing.T) {
	svc, _ := newTestAuthService(t)
	req := models.RegisterRequest{Name: "A", Email: "a@x.com", Password: "p"}

	first, err := svc.Register(context.Background(), req)
	require.NoError(t, err)
	second, err := svc.Register(context.Background(), req)
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, second.ID)
}

func TestAuthService_RefreshRotates(t *testing.T) {
	svc, _ := newTestAuthService(t)
	ctx := context.Background()

	session, err := svc.Login(ctx, models.LoginRequest{Email: "amit@site.ac.in", Password: "password123"})
	require.NoError(t, err)

	refreshed, err := svc.Refresh(ctx, session.RefreshToken)
	require.NoError(t, err)
	assert.NotEqual(t, session.RefreshToken, refreshed.RefreshToken)
	assert.Equal(t, "3", refreshed.ID)

	_, err = svc.Refresh(ctx, session.RefreshToken)
	var uerr *UnauthorizedError
	assert.ErrorAs(t, err, &uerr, "old refresh token must be revoked")
}

func TestAuthService_RefreshRegisteredUser(t *testing.T) {
	svc, _ := newTestAuthService(t)
	ctx := context.Background()

	session, err := svc.Register(ctx, models.RegisterRequest{Name: "Kiran", Email: "kiran@site.ac.in", Password: "secret123", Role: "faculty"})
	require.NoError(t, err)

	refreshed, err := svc.Refresh(ctx, session.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, session.ID, refreshed.ID)
	assert.Equal(t, "faculty", refreshed.Role)
}

func TestAuthService_Logout(t *testing.T) {
	svc, sessions := newTestAuthService(t)
	ctx := context.Background()

	session, err := svc.Login(ctx, models.LoginRequest{Email: "rahul@site.ac.in", Password: "password123"})
	require.NoError(t, err)

	require.NoError(t, svc.Logout(ctx, session.RefreshToken, "1"))
	_, err = sessions.Lookup(ctx, session.RefreshToken)
	assert.ErrorIs(t, err, ErrSessionNotFound)

	assert.NoError(t, svc.Logout(ctx, "", "1"))
	assert.NoError(t, svc.Logout(ctx, "unknown-token", "1"))
}

func TestAuthService_LogoutRefusesOtherUsersToken(t *testing.T) {
	svc, sessions := newTestAuthService(t)
	ctx := context.Background()

	victim, err := svc.Login(ctx, models.LoginRequest{Email: "priya@site.ac.in", Password: "password123"})
	require.NoError(t, err)

	err = svc.Logout(ctx, victim.RefreshToken, "1")
	var uerr *UnauthorizedError
	require.ErrorAs(t, err, &uerr)

	owner, err := sessions.Lookup(ctx, victim.RefreshToken)
	require.NoError(t, err, "session must survive a foreign logout")
	assert.Equal(t, "2", owner.ID)
}
