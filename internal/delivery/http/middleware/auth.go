package middleware

import (
	"context"
	"net/http"
	"strings"

	h "clubportal/internal/delivery/http/helpers"
	"clubportal/internal/domain"
)

type contextKey string

const (
	profileIDKey contextKey = "profileID"
	roleKey      contextKey = "role"
)

// SetIdentity returns a context carrying the authenticated profile ID and role.
func SetIdentity(ctx context.Context, profileID, role string) context.Context {
	ctx = context.WithValue(ctx, profileIDKey, profileID)
	return context.WithValue(ctx, roleKey, role)
}

// ProfileIDFromContext returns the authenticated profile ID, if present.
func ProfileIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(profileIDKey).(string)
	return id, ok
}

// RoleFromContext returns the authenticated profile's role, if present.
func RoleFromContext(ctx context.Context) (string, bool) {
	role, ok := ctx.Value(roleKey).(string)
	return role, ok
}

func bearerToken(r *http.Request) string {
	auth := r.Header.Get("Authorization")
	const prefix = "Bearer "
	if !strings.HasPrefix(auth, prefix) {
		return ""
	}
	return strings.TrimSpace(auth[len(prefix):])
}

// RequireAuth returns a wrapper that validates the Bearer token and sets the
// profile ID and role in the request context. If the token is missing or
// invalid, it responds with 401 and does not call next.
func RequireAuth(verifier domain.TokenVerifier) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			token := bearerToken(r)
			if token == "" {
				h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "missing or malformed authorization header")
				return
			}
			profileID, role, err := verifier.Verify(token)
			if err != nil {
				h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "invalid or expired token")
				return
			}
			next(w, r.WithContext(SetIdentity(r.Context(), profileID, role)))
		}
	}
}

// RequireRole returns a wrapper like RequireAuth that additionally rejects
// callers whose role is not in allowed with 403.
func RequireRole(verifier domain.TokenVerifier, allowed ...string) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return RequireAuth(verifier)(func(w http.ResponseWriter, r *http.Request) {
			role, _ := RoleFromContext(r.Context())
			for _, a := range allowed {
				if role == a {
					next(w, r)
					return
				}
			}
			h.WriteJSONError(w, http.StatusForbidden, h.ErrCodeForbidden, "insufficient role")
		})
	}
}

// OptionalAuth returns a wrapper that sets the identity in the context when a
// valid Bearer token is present and calls next regardless. Handlers that fail
// open on read use this.
func OptionalAuth(verifier domain.TokenVerifier) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			if token := bearerToken(r); token != "" {
				if profileID, role, err := verifier.Verify(token); err == nil {
					r = r.WithContext(SetIdentity(r.Context(), profileID, role))
				}
			}
			next(w, r)
		}
	}
}
