package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/taskhive/taskhive/internal/domain"
	"github.com/taskhive/taskhive/pkg/auth"
	"github.com/taskhive/taskhive/pkg/utils"
)

type UserResolver interface {
	ResolveUser(ctx context.Context, email string) (*domain.User, error)
}

type ContextKey string

const UserKey ContextKey = "user"

// ResolveUser turns the verified claims left by auth.Middleware into a user
// record. Runs after credential decoding; everything downstream sees a
// loaded *domain.User with a normalized role.
func ResolveUser(resolver UserResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, ok := auth.ClaimsFrom(r.Context())
			if !ok || claims.Email == "" {
				utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
				return
			}

			user, err := resolver.ResolveUser(r.Context(), claims.Email)
			if err != nil {
				if errors.Is(err, domain.ErrUnauthenticated) {
					utils.RespondWithError(w, http.StatusUnauthorized, "User not found")
					return
				}
				utils.RespondWithError(w, http.StatusServiceUnavailable, "Service unavailable")
				return
			}

			ctx := context.WithValue(r.Context(), UserKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireRole gates a route by membership in the allowed role set.
func RequireRole(roles ...domain.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, ok := UserFrom(r.Context())
			if !ok {
				utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
				return
			}
			for _, role := range roles {
				if user.Role == role {
					next.ServeHTTP(w, r)
					return
				}
			}
			utils.RespondWithError(w, http.StatusForbidden, "Forbidden: insufficient role")
		})
	}
}

func UserFrom(ctx context.Context) (*domain.User, bool) {
	user, ok := ctx.Value(UserKey).(*domain.User)
	return user, ok
}
