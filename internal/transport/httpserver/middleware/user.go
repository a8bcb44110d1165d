package middleware

import (
	"context"
	"encoding/json"
	"net/http"

	"ledger-app-go/internal/domain/ledger"
	"ledger-app-go/pkg/logger"
)

type contextKey int

const userKey contextKey = iota

// UserResolver looks up (or lazily creates) the acting user.
type UserResolver interface {
	EnsureDefaultUser(ctx context.Context) (*ledger.User, error)
}

// DefaultUser resolves the single implicit user on every request and places
// it in the request context. Core services never read ambient state; the
// resolved user is passed into every call explicitly.
type DefaultUser struct {
	users UserResolver
	log   logger.Logger
}

func NewDefaultUser(users UserResolver, log logger.Logger) *DefaultUser {
	return &DefaultUser{users: users, log: log}
}

func (m *DefaultUser) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, err := m.users.EnsureDefaultUser(r.Context())
		if err != nil {
			m.log.InternalError("user: resolve default user failed", err)
			writeError(w, http.StatusNotFound, "user_not_found", "user not found")
			return
		}

		next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), user)))
	})
}

func WithUser(ctx context.Context, user *ledger.User) context.Context {
	return context.WithValue(ctx, userKey, user)
}

func UserFromContext(ctx context.Context) (*ledger.User, bool) {
	user, ok := ctx.Value(userKey).(*ledger.User)
	if !ok || user == nil {
		return nil, false
	}
	return user, true
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
