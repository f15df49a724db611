package http

import (
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ledgerkeep/inventory/pkg/auth"
	"github.com/ledgerkeep/inventory/pkg/logger"
)

func TestMain(m *testing.M) {
	logger.Init("inventory-test", true)
	os.Exit(m.Run())
}

func okHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}

func TestAuthMiddlewareMissingHeader(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/products", nil)
	rec := httptest.NewRecorder()

	AuthMiddleware(okHandler)(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthMiddlewareMalformedHeader(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/products", nil)
	req.Header.Set("Authorization", "Token abc")
	rec := httptest.NewRecorder()

	AuthMiddleware(okHandler)(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthMiddlewareInvalidToken(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/products", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	rec := httptest.NewRecorder()

	AuthMiddleware(okHandler)(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthMiddlewarePropagatesClaims(t *testing.T) {
	token, err := auth.GenerateToken(7, "alice", "user")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/api/products", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()

	AuthMiddleware(func(w http.ResponseWriter, r *http.Request) {
		userID, _ := r.Context().Value(UserIDKey).(uint)
		username, _ := r.Context().Value(UsernameKey).(string)
		assert.Equal(t, uint(7), userID)
		assert.Equal(t, "alice", username)
		w.WriteHeader(http.StatusOK)
	})(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestStaffMiddlewareRejectsRegularUser(t *testing.T) {
	token, err := auth.GenerateToken(7, "alice", "user")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/stock-movements", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()

	StaffMiddleware(okHandler)(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestStaffMiddlewareAllowsAdmin(t *testing.T) {
	token, err := auth.GenerateToken(1, "root", "admin")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/stock-movements", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()

	StaffMiddleware(okHandler)(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRequestIDMiddleware(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()

	RequestIDMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, _ := r.Context().Value(RequestIDKey).(string)
		assert.NotEmpty(t, id)
	})).ServeHTTP(rec, req)

	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
}

func TestRequestIDMiddlewareKeepsExistingID(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("X-Request-ID", "fixed-id")
	rec := httptest.NewRecorder()

	RequestIDMiddleware(http.HandlerFunc(okHandler)).ServeHTTP(rec, req)

	assert.Equal(t, "fixed-id", rec.Header().Get("X-Request-ID"))
}

func TestRecoveryMiddleware(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/products", nil)
	rec := httptest.NewRecorder()

	RecoveryMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	})).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
