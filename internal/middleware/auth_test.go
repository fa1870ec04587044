package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"campus-portal-backend/internal/models"
)

const testSecret = "test-secret-that-is-at-least-32-chars"

func TestJWTAuth_RoundTrip(t *testing.T) {
	auth := NewJWTAuth(testSecret, time.Minute)
	user := models.User{ID: "1", Name: "Rahul Kumar", Email: "rahul@site.ac.in", Role: "student"}

	token, err := auth.GenerateAccessToken(user)
	require.NoError(t, err)

	got, err := auth.ParseAccessToken(token)
	require.NoError(t, err)
	assert.Equal(t, user, *got)
}

func TestJWTAuth_RejectsOtherSecret(t *testing.T) {
	token, err := NewJWTAuth("another-secret-that-is-32-chars-long", time.Minute).GenerateAccessToken(models.User{ID: "1"})
	require.NoError(t, err)

	_, err = NewJWTAuth(testSecret, time.Minute).ParseAccessToken(token)
	assert.Error(t, err)
}

func TestJWTAuth_RejectsNoneAlgorithm(t *testing.T) {
	claims := jwt.MapClaims{"user_id": "1", "exp": time.Now().Add(time.Minute).Unix()}
	token, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = NewJWTAuth(testSecret, time.Minute).ParseAccessToken(token)
	assert.Error(t, err)
}

func TestJWTAuth_Middleware(t *testing.T) {
	auth := NewJWTAuth(testSecret, time.Minute)
	valid, err := auth.GenerateAccessToken(models.User{ID: "2", Email: "priya@site.ac.in"})
	require.NoError(t, err)

	expiredAuth := NewJWTAuth(testSecret, -time.Minute)
	expiredAuth.TTL = -time.Minute
	expired, err := expiredAuth.GenerateAccessToken(models.User{ID: "2"})
	require.NoError(t, err)

	tests := []struct {
		name   string
		header string
		status int
		code   string
	}{
		{"missing header", "", http.StatusUnauthorized, "UNAUTHORIZED"},
		{"wrong scheme", "Basic abc", http.StatusUnauthorized, "UNAUTHORIZED"},
		{"garbage token", "Bearer not-a-jwt", http.StatusUnauthorized, "UNAUTHORIZED"},
		{"expired token", "Bearer " + expired, http.StatusUnauthorized, "TOKEN_EXPIRED"},
		{"valid token", "Bearer " + valid, http.StatusOK, ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var seen models.User
			h := auth.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				seen, _ = GetUser(r.Context())
				w.WriteHeader(http.StatusOK)
			}))

			req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			rr := httptest.NewRecorder()
			h.ServeHTTP(rr, req)

			require.Equal(t, tc.status, rr.Code)
			if tc.code != "" {
				var body models.ErrorResponse
				require.NoError(t, json.NewDecoder(rr.Body).Decode(&body))
				assert.Equal(t, tc.code, body.Error.Code)
				return
			}
			assert.Equal(t, "2", seen.ID)
		})
	}
}

func TestJWTAuth_OptionalPassesThrough(t *testing.T) {
	auth := NewJWTAuth(testSecret, time.Minute)
	valid, err := auth.GenerateAccessToken(models.User{ID: "3"})
	require.NoError(t, err)

	for _, header := range []string{"", "Bearer junk", "Bearer " + valid} {
		var attached bool
		h := auth.Optional(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, attached = GetUser(r.Context())
		}))

		req := httptest.NewRequest(http.MethodPost, "/api/notes", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, header == "Bearer "+valid, attached, "header %q", header)
	}
}
