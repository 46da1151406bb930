package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/kunalgoyal9/gembot-backend/internal/auth"
	"github.com/kunalgoyal9/gembot-backend/internal/models"
	"github.com/kunalgoyal9/gembot-backend/internal/response"
	"github.com/kunalgoyal9/gembot-backend/internal/store"
)

type contextKey string

const userKey contextKey = "user"

// AccessTokenCookie is the cookie carrying the session token for browser clients.
const AccessTokenCookie = "accessToken"

// VerifyToken guards protected routes. Token precedence is cookie first, then
// Authorization: Bearer. The resolved user record is attached to the request
// context; a single verification attempt per request, no refresh.
func VerifyToken(users store.UserStore, secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// CORS preflight passes through without a token.
			if r.Method == http.MethodOptions {
				next.ServeHTTP(w, r)
				return
			}

			token := TokenFromRequest(r)
			if token == "" {
				response.Unauthorized(w, "token required")
				return
			}

			claims, err := auth.Parse(token, secret)
			if err != nil {
				// Expired, bad signature, unparseable: same generic message.
				response.Unauthorized(w, "invalid token")
				return
			}

			user, err := users.GetUserByID(r.Context(), claims.UserID)
			if err != nil {
				response.Unauthorized(w, "user not found")
				return
			}

			ctx := context.WithValue(r.Context(), userKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// TokenFromRequest extracts the session token from the cookie or the
// Authorization header, in that order.
func TokenFromRequest(r *http.Request) string {
	if cookie, err := r.Cookie(AccessTokenCookie); err == nil && cookie.Value != "" {
		return cookie.Value
	}
	if authz := r.Header.Get("Authorization"); strings.HasPrefix(authz, "Bearer ") {
		return strings.TrimPrefix(authz, "Bearer ")
	}
	return ""
}

// UserFromContext returns the user attached by VerifyToken, or nil.
func UserFromContext(ctx context.Context) *models.User {
	user, _ := ctx.Value(userKey).(*models.User)
	return user
}

// WithUser attaches a user to the context. Exposed for handler tests.
func WithUser(ctx context.Context, user *models.User) context.Context {
	return context.WithValue(ctx, userKey, user)
}
