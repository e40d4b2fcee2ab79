package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	userdomain "home-rota-go/internal/domain/user"
	"home-rota-go/pkg/logger"
)

// UserKeyHeader carries the caller's claimed user id on guarded endpoints.
const UserKeyHeader = "X-User-Key"

// Authorizer decides whether the claimed user may perform an action
// requiring the given permission level.
type Authorizer interface {
	Authorize(ctx context.Context, userID uint, required userdomain.Permission) error
}

// PermissionGuard wraps handlers that require a permission level. Denial
// happens before the inner handler runs, so a denied request never mutates
// anything.
type PermissionGuard struct {
	users Authorizer
	log   logger.Logger
}

func NewPermissionGuard(users Authorizer, log logger.Logger) *PermissionGuard {
	return &PermissionGuard{users: users, log: log}
}

func (g *PermissionGuard) Require(required userdomain.Permission) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID, ok := claimedUserID(r)
			if !ok {
				denied(w)
				return
			}

			if err := g.users.Authorize(r.Context(), userID, required); err != nil {
				if errors.Is(err, userdomain.ErrNotAuthorized) {
					g.log.BusinessError("guard: denied", err,
						"user_id", userID, "required", string(required), "path", r.URL.Path)
					denied(w)
					return
				}
				g.log.InternalError("guard: authorize failed", err, "user_id", userID)
				writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
				return
			}

			next.ServeHTTP(w, r.WithContext(WithUserID(r.Context(), userID)))
		})
	}
}

func claimedUserID(r *http.Request) (uint, bool) {
	value := strings.TrimSpace(r.Header.Get(UserKeyHeader))
	if value == "" {
		return 0, false
	}
	parsed, err := strconv.ParseUint(value, 10, 32)
	if err != nil || parsed == 0 {
		return 0, false
	}
	return uint(parsed), true
}

func denied(w http.ResponseWriter) {
	writeError(w, http.StatusUnauthorized, "not_authorized", "not authorized")
}

type contextKey int

const userIDKey contextKey = iota

func WithUserID(ctx context.Context, userID uint) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

func UserIDFromContext(ctx context.Context) (uint, bool) {
	userID, ok := ctx.Value(userIDKey).(uint)
	if !ok || userID == 0 {
		return 0, false
	}
	return userID, true
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]interface{}{
		"error": map[string]string{
			"code":    code,
			"message": message,
		},
	})
}
