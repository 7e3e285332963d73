package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"slices"
	"strings"

	"github.com/pattarawat/identity-api/internal/model"
	"github.com/pattarawat/identity-api/internal/repository"
	"github.com/pattarawat/identity-api/shared/auth"
)

type contextKey struct{}

var principalKey contextKey

// UserFromContext returns the principal attached by Authenticate.
func UserFromContext(ctx context.Context) (model.Profile, bool) {
	principal, ok := ctx.Value(principalKey).(model.Profile)
	return principal, ok
}

// Authenticator gates protected routes. Authenticate resolves the bearer
// token to a principal; RequireRole additionally checks the principal's role.
// Neither stage ever writes to the user store.
type Authenticator struct {
	jwtAuth  auth.JWTAuthenticator
	userRepo repository.UserRepository
}

// NewAuthenticator creates a new Authenticator instance.
func NewAuthenticator(jwtAuth auth.JWTAuthenticator, userRepo repository.UserRepository) *Authenticator {
	return &Authenticator{
		jwtAuth:  jwtAuth,
		userRepo: userRepo,
	}
}

// Authenticate verifies the Authorization bearer token, resolves its subject
// against the user store and attaches the resulting principal to the request
// context. It responds 401 when the header is absent or malformed, the token
// is invalid, or the subject no longer exists.
func (a *Authenticator) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tokenStr, ok := bearerToken(r)
		if !ok {
			unauthorized(w)
			return
		}

		userID, err := a.jwtAuth.Verify(tokenStr)
		if err != nil {
			unauthorized(w)
			return
		}

		// A valid token can outlive its user; treat that as unauthorized too.
		user, err := a.userRepo.GetUser(r.Context(), userID)
		if err != nil {
			unauthorized(w)
			return
		}

		ctx := context.WithValue(r.Context(), principalKey, user.Profile())
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireRole admits only principals whose role is in the allowed set. It
// must be composed after Authenticate.
func (a *Authenticator) RequireRole(roles ...model.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			principal, ok := UserFromContext(r.Context())
			if !ok {
				unauthorized(w)
				return
			}

			if !slices.Contains(roles, principal.Role) {
				writeJSON(w, http.StatusForbidden, "insufficient role")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
		return "", false
	}

	return parts[1], true
}

func unauthorized(w http.ResponseWriter) {
	writeJSON(w, http.StatusUnauthorized, "unauthorized")
}

func writeJSON(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"message": message})
}
