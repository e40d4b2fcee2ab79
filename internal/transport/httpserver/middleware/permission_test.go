package middleware

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	userdomain "home-rota-go/internal/domain/user"
	"home-rota-go/pkg/logger"

	"github.com/stretchr/testify/assert"
)

type fakeAuthorizer struct {
	permissions map[uint]userdomain.Permission
}

func (a *fakeAuthorizer) Authorize(ctx context.Context, userID uint, required userdomain.Permission) error {
	permission, ok := a.permissions[userID]
	if !ok || !permission.Satisfies(required) {
		return userdomain.ErrNotAuthorized
	}
	return nil
}

func newGuard(permissions map[uint]userdomain.Permission) *PermissionGuard {
	log := logger.New(io.Discard, slog.LevelError, "text")
	return NewPermissionGuard(&fakeAuthorizer{permissions: permissions}, log)
}

func TestRequireDeniesWithoutHeader(t *testing.T) {
	guard := newGuard(map[uint]userdomain.Permission{1: userdomain.PermissionSuperuser})

	handler := guard.Require(userdomain.PermissionWrite)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("should not reach handler")
	}))

	req := httptest.NewRequest(http.MethodDelete, "/user/2", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireDeniesUnknownUser(t *testing.T) {
	guard := newGuard(map[uint]userdomain.Permission{})

	handler := guard.Require(userdomain.PermissionWrite)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("should not reach handler")
	}))

	req := httptest.NewRequest(http.MethodDelete, "/user/2", nil)
	req.Header.Set(UserKeyHeader, "42")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireDeniesReadOnlyUserBeforeHandlerRuns(t *testing.T) {
	guard := newGuard(map[uint]userdomain.Permission{7: userdomain.PermissionRead})

	reached := false
	handler := guard.Require(userdomain.PermissionWrite)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reached = true
	}))

	req := httptest.NewRequest(http.MethodDelete, "/user/2", nil)
	req.Header.Set(UserKeyHeader, "7")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, reached)
}

func TestRequirePassesSuperuserAndSetsContext(t *testing.T) {
	guard := newGuard(map[uint]userdomain.Permission{1: userdomain.PermissionSuperuser})

	var gotID uint
	handler := guard.Require(userdomain.PermissionWrite)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotID, _ = UserIDFromContext(r.Context())
		w.WriteHeader(http.StatusNoContent)
	}))

	req := httptest.NewRequest(http.MethodDelete, "/user/2", nil)
	req.Header.Set(UserKeyHeader, "1")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, uint(1), gotID)
}

func TestRequireRejectsMalformedHeader(t *testing.T) {
	guard := newGuard(map[uint]userdomain.Permission{1: userdomain.PermissionSuperuser})

	handler := guard.Require(userdomain.PermissionRead)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("should not reach handler")
	}))

	for _, value := range []string{"abc", "-1", "0", "1.5"} {
		req := httptest.NewRequest(http.MethodDelete, "/user/2", nil)
		req.Header.Set(UserKeyHeader, value)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code, "header %q", value)
	}
}
