package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/SergeyBogomolovv/publika-insight/pkg/utils"
)

const SessionCookie = "admin_session"

type Authorizer interface {
	Authorize(token string) (string, error)
}

type contextKey int

const (
	adminKey contextKey = iota
	tokenKey
)

// AdminOnly пропускает запрос только с действующей сессией администратора
func AdminOnly(logger *slog.Logger, gate Authorizer) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := SessionToken(r)
			if token == "" {
				utils.WriteError(w, "unauthorized", http.StatusUnauthorized)
				return
			}

			admin, err := gate.Authorize(token)
			if err != nil {
				logger.DebugContext(r.Context(), "admin session rejected", slog.Any("error", err))
				utils.WriteError(w, "unauthorized", http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), adminKey, admin)
			ctx = context.WithValue(ctx, tokenKey, token)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// SessionToken достает токен из заголовка Authorization или из cookie
func SessionToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if len(header) > 7 && strings.EqualFold(header[:7], "bearer ") {
		return strings.TrimSpace(header[7:])
	}
	if cookie, err := r.Cookie(SessionCookie); err == nil {
		return cookie.Value
	}
	return ""
}

func AdminFromContext(ctx context.Context) (string, bool) {
	admin, ok := ctx.Value(adminKey).(string)
	return admin, ok
}

func TokenFromContext(ctx context.Context) (string, bool) {
	token, ok := ctx.Value(tokenKey).(string)
	return token, ok
}
