package auth

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/hirebuddy/hirebuddy/internal/domain"
	"github.com/hirebuddy/hirebuddy/internal/infrastructure/configs"
)

func testUser(t *testing.T) *domain.User {
	t.Helper()
	user, err := domain.NewUser("Asha Rao", "asha@example.com", "+919876543210", domain.RoleBuddy, "hash")
	if err != nil {
		t.Fatalf("NewUser: %v", err)
	}
	return user
}

func TestIssueParseRoundtrip(t *testing.T) {
	manager := NewManager(configs.AuthConfig{Secret: "test-secret", TokenTTL: time.Hour})
	user := testUser(t)

	token, err := manager.Issue(user)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	claims, err := manager.Parse(token)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if claims.Subject != user.ID {
		t.Fatalf("subject = %q, want %q", claims.Subject, user.ID)
	}
	if claims.Phone != user.Phone {
		t.Fatalf("phone = %q, want %q", claims.Phone, user.Phone)
	}
	if claims.Role != string(domain.RoleBuddy) {
		t.Fatalf("role = %q, want buddy", claims.Role)
	}
}

func TestParseRejectsWrongSecret(t *testing.T) {
	issuer := NewManager(configs.AuthConfig{Secret: "secret-a", TokenTTL: time.Hour})
	verifier := NewManager(configs.AuthConfig{Secret: "secret-b", TokenTTL: time.Hour})

	token, err := issuer.Issue(testUser(t))
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if _, err := verifier.Parse(token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("err = %v, want ErrInvalidToken", err)
	}
}

func TestParseRejectsExpiredToken(t *testing.T) {
	manager := NewManager(configs.AuthConfig{Secret: "test-secret", TokenTTL: time.Nanosecond})

	token, err := manager.Issue(testUser(t))
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	time.Sleep(10 * time.Millisecond)

	if _, err := manager.Parse(token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("err = %v, want ErrInvalidToken", err)
	}
}

func TestParseRejectsGarbage(t *testing.T) {
	manager := NewManager(configs.AuthConfig{Secret: "test-secret", TokenTTL: time.Hour})
	if _, err := manager.Parse("not-a-token"); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("err = %v, want ErrInvalidToken", err)
	}
}

func TestTokenFromRequestPrefersCookie(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.AddCookie(&http.Cookie{Name: sessionCookie, Value: "cookie-token"})
	r.Header.Set("Authorization", "Bearer header-token")

	if token := TokenFromRequest(r); token != "cookie-token" {
		t.Fatalf("token = %q, want the cookie value", token)
	}
}

func TestTokenFromRequestBearerFallback(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set("Authorization", "Bearer header-token")

	if token := TokenFromRequest(r); token != "header-token" {
		t.Fatalf("token = %q, want the bearer value", token)
	}
}

func TestTokenFromRequestMissing(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	if token := TokenFromRequest(r); token != "" {
		t.Fatalf("token = %q, want empty", token)
	}
}

func TestAuthenticateMiddleware(t *testing.T) {
	manager := NewManager(configs.AuthConfig{Secret: "test-secret", TokenTTL: time.Hour})
	user := testUser(t)
	token, err := manager.Issue(user)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	var got Identity
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, _ = IdentityFromContext(r.Context())
		w.WriteHeader(http.StatusNoContent)
	})

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	manager.Authenticate(next).ServeHTTP(w, r)

	if w.Code != http.StatusNoContent {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusNoContent)
	}
	if got.UserID != user.ID || got.Role != domain.RoleBuddy {
		t.Fatalf("identity = %+v, want the token's subject and role", got)
	}

	// No credentials at all.
	w = httptest.NewRecorder()
	manager.Authenticate(next).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status without token = %d, want %d", w.Code, http.StatusUnauthorized)
	}
}

func TestRequireRole(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	guarded := RequireRole(domain.RoleAdmin)(next)

	asAdmin := httptest.NewRequest(http.MethodGet, "/", nil)
	asAdmin = asAdmin.WithContext(WithIdentity(asAdmin.Context(), Identity{UserID: "u1", Role: domain.RoleAdmin}))
	w := httptest.NewRecorder()
	guarded.ServeHTTP(w, asAdmin)
	if w.Code != http.StatusNoContent {
		t.Fatalf("admin status = %d, want %d", w.Code, http.StatusNoContent)
	}

	asCustomer := httptest.NewRequest(http.MethodGet, "/", nil)
	asCustomer = asCustomer.WithContext(WithIdentity(asCustomer.Context(), Identity{UserID: "u2", Role: domain.RoleCustomer}))
	w = httptest.NewRecorder()
	guarded.ServeHTTP(w, asCustomer)
	if w.Code != http.StatusForbidden {
		t.Fatalf("customer status = %d, want %d", w.Code, http.StatusForbidden)
	}
}
