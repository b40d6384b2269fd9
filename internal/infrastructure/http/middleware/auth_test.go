package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/denizsemerci/egeli-betty/internal/infrastructure/config"
	"github.com/denizsemerci/egeli-betty/internal/infrastructure/security"
)

func newTokens(t *testing.T) *security.TokenService {
	t.Helper()
	cfg := &config.Config{}
	cfg.Auth.JWTSecret = "test-secret-for-signing"
	cfg.Auth.JWTExpiration = time.Hour
	return security.NewTokenService(cfg)
}

func TestAuthenticateStoresIdentity(t *testing.T) {
	tokens := newTokens(t)
	adminID := uuid.New()
	token, err := tokens.Generate(adminID, "betül")
	require.NoError(t, err)

	var gotID uuid.UUID
	var gotName string
	handler := Authenticate(tokens)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := UserIDFromContext(r.Context())
		require.True(t, ok)
		gotID = id

		name, ok := UsernameFromContext(r.Context())
		require.True(t, ok)
		gotName = name
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/admin/drafts", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, adminID, gotID)
	assert.Equal(t, "betül", gotName)
}

func TestAuthenticateRejectsBadHeaders(t *testing.T) {
	tokens := newTokens(t)
	handler := Authenticate(tokens)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run without valid credentials")
	}))

	tests := []struct {
		name   string
		header string
	}{
		{"missing", ""},
		{"not bearer", "Basic dXNlcjpwYXNz"},
		{"garbage token", "Bearer not-a-jwt"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/v1/admin/drafts", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusUnauthorized, rec.Code)
		})
	}
}

func TestIdentityMissingFromBareContext(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)

	_, ok := UserIDFromContext(req.Context())
	assert.False(t, ok)

	_, ok = UsernameFromContext(req.Context())
	assert.False(t, ok)
}
