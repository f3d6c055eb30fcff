package auth

import (
	"net/http"
	"strings"

	"github.com/hirebuddy/hirebuddy/internal/domain"
	"github.com/hirebuddy/hirebuddy/internal/infrastructure/json"
)

const sessionCookie = "token"

// TokenFromRequest pulls the session token from the auth cookie, falling
// back to a bearer Authorization header for non-browser clients.
func TokenFromRequest(r *http.Request) string {
	if cookie, err := r.Cookie(sessionCookie); err == nil && cookie.Value != "" {
		return cookie.Value
	}

	header := r.Header.Get("Authorization")
	if after, ok := strings.CutPrefix(header, "Bearer "); ok {
		return strings.TrimSpace(after)
	}
	return ""
}

// Authenticate rejects requests without a valid session token and attaches
// the caller's identity to the request context.
func (m *Manager) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := TokenFromRequest(r)
		if token == "" {
			json.WriteUnauthorizedError(w, "authentication required")
			return
		}

		claims, err := m.Parse(token)
		if err != nil {
			json.WriteUnauthorizedError(w, "invalid or expired token")
			return
		}

		identity := Identity{
			UserID: claims.Subject,
			Phone:  claims.Phone,
			Role:   domain.Role(claims.Role),
		}
		next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), identity)))
	})
}

// RequireRole guards a subtree to callers holding one of the given roles.
// It must be mounted after Authenticate.
func RequireRole(roles ...domain.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity, ok := IdentityFromContext(r.Context())
			if !ok {
				json.WriteUnauthorizedError(w, "authentication required")
				return
			}
			for _, role := range roles {
				if identity.Role == role {
					next.ServeHTTP(w, r)
					return
				}
			}
			json.WriteForbiddenError(w, "insufficient permissions")
		})
	}
}

// SetSessionCookie writes the login cookie the way browsers expect it.
func SetSessionCookie(w http.ResponseWriter, token string, maxAge int) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    token,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// ClearSessionCookie expires the login cookie on logout.
func ClearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
