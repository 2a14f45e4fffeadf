package httpx

import (
	"context"
	"net/http"
	"strings"

	"github.com/ecofinds/ecofinds-backend/internal/auth"
	"github.com/ecofinds/ecofinds-backend/internal/users"
)

type ctxKey int

const userKey ctxKey = 0

// Authenticator resolves bearer tokens to users for the handler chain.
type Authenticator struct {
	Tokens auth.Tokens
	Users  *users.Repo
}

func bearerToken(r *http.Request) string {
	h := r.Header.Get("Authorization")
	if h == "" {
		return ""
	}
	token := strings.TrimPrefix(h, "Bearer ")
	if token == h {
		return ""
	}
	return token
}

// RequireAuth rejects requests without a valid token for an existing user.
func (a *Authenticator) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := bearerToken(r)
		if token == "" {
			respondError(w, http.StatusUnauthorized, "Access token required")
			return
		}
		userID, err := a.Tokens.ParseAccess(token)
		if err != nil {
			respondError(w, http.StatusUnauthorized, "Invalid or expired token")
			return
		}
		u, err := a.Users.ByID(r.Context(), userID)
		if err != nil {
			respondError(w, http.StatusUnauthorized, "Invalid token - user not found")
			return
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), userKey, u)))
	})
}

// OptionalAuth attaches the user when a valid token is present and carries
// on anonymously otherwise.
func (a *Authenticator) OptionalAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := bearerToken(r)
		if token == "" {
			next.ServeHTTP(w, r)
			return
		}
		userID, err := a.Tokens.ParseAccess(token)
		if err != nil {
			next.ServeHTTP(w, r)
			return
		}
		u, err := a.Users.ByID(r.Context(), userID)
		if err != nil {
			next.ServeHTTP(w, r)
			return
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), userKey, u)))
	})
}

// CurrentUser returns the authenticated user, if any.
func CurrentUser(ctx context.Context) (users.User, bool) {
	u, ok := ctx.Value(userKey).(users.User)
	return u, ok
}

// currentUserID is a convenience for the wishlist/cart flag joins.
func currentUserID(ctx context.Context) *int64 {
	if u, ok := CurrentUser(ctx); ok {
		return &u.ID
	}
	return nil
}
