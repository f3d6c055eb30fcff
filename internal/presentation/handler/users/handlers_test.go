package users

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/hirebuddy/hirebuddy/internal/domain"
	"github.com/hirebuddy/hirebuddy/internal/infrastructure/auth"
	"github.com/hirebuddy/hirebuddy/internal/infrastructure/configs"
	"github.com/hirebuddy/hirebuddy/internal/infrastructure/logging"
	"github.com/hirebuddy/hirebuddy/internal/infrastructure/otp"
	"github.com/hirebuddy/hirebuddy/internal/persistence/repository"
)

type nopLogger struct{}

func (nopLogger) Init()                                                                         {}
func (nopLogger) Debug(logging.Category, logging.SubCategory, string, map[logging.ExtraKey]any) {}
func (nopLogger) Debugf(string, ...any)                                                         {}
func (nopLogger) Info(logging.Category, logging.SubCategory, string, map[logging.ExtraKey]any)  {}
func (nopLogger) Infof(string, ...any)                                                          {}
func (nopLogger) Warn(logging.Category, logging.SubCategory, string, map[logging.ExtraKey]any)  {}
func (nopLogger) Warnf(string, ...any)                                                          {}
func (nopLogger) Error(logging.Category, logging.SubCategory, string, map[logging.ExtraKey]any) {}
func (nopLogger) Errorf(string, ...any)                                                         {}
func (nopLogger) Fatal(logging.Category, logging.SubCategory, string, map[logging.ExtraKey]any) {}
func (nopLogger) Fatalf(string, ...any)                                                         {}

// captureSender records the last code it was asked to deliver.
type captureSender struct {
	destination string
	code        string
}

func (s *captureSender) SendOTP(_ context.Context, destination, code string) error {
	s.destination = destination
	s.code = code
	return nil
}

func newTestHandler(t *testing.T) (*Handler, *repository.InMemoryUserRepository, *otp.InMemoryPendingStore, *captureSender) {
	t.Helper()
	users := repository.NewInMemoryUserRepository()
	pending := otp.NewInMemoryPendingStore(10 * time.Minute)
	sender := &captureSender{}
	manager := auth.NewManager(configs.AuthConfig{Secret: "test-secret", TokenTTL: time.Hour})
	return NewHandler(users, pending, sender, manager, nopLogger{}), users, pending, sender
}

func postJSON(handler http.HandlerFunc, target string, payload any) *httptest.ResponseRecorder {
	body, _ := json.Marshal(payload)
	r := httptest.NewRequest(http.MethodPost, target, bytes.NewReader(body))
	w := httptest.NewRecorder()
	handler(w, r)
	return w
}

func signupPayload() map[string]string {
	return map[string]string{
		"name":     "Asha Rao",
		"email":    "asha@example.com",
		"phone":    "+919876543210",
		"role":     "customer",
		"password": "supersecret",
	}
}

func TestSignupParksPendingAndSendsCode(t *testing.T) {
	handler, users, pending, sender := newTestHandler(t)

	w := postJSON(handler.SignupHandler, "/api/users/signup", signupPayload())
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d; body: %s", w.Code, http.StatusOK, w.Body.String())
	}

	if sender.destination != "+919876543210" {
		t.Fatalf("code sent to %q, want the signup phone", sender.destination)
	}
	if len(sender.code) != 5 {
		t.Fatalf("code = %q, want 5 digits", sender.code)
	}

	parked, err := pending.GetPending(context.Background(), "+919876543210")
	if err != nil {
		t.Fatalf("GetPending: %v", err)
	}
	if parked.Code != sender.code {
		t.Fatal("parked code differs from the delivered one")
	}

	// No account exists until the code is verified.
	if _, err := users.GetByPhone(context.Background(), "+919876543210"); err == nil {
		t.Fatal("account created before verification")
	}
}

func TestSignupRejectsShortPassword(t *testing.T) {
	handler, _, _, _ := newTestHandler(t)

	payload := signupPayload()
	payload["password"] = "short"
	w := postJSON(handler.SignupHandler, "/api/users/signup", payload)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusBadRequest)
	}
}

func TestSignupRejectsAdminRole(t *testing.T) {
	handler, _, _, _ := newTestHandler(t)

	payload := signupPayload()
	payload["role"] = "admin"
	w := postJSON(handler.SignupHandler, "/api/users/signup", payload)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusBadRequest)
	}
}

func TestSignupRejectsRegisteredPhone(t *testing.T) {
	handler, users, _, _ := newTestHandler(t)

	existing, err := domain.NewUser("Asha Rao", "asha@example.com", "+919876543210", domain.RoleCustomer, "hash")
	if err != nil {
		t.Fatalf("NewUser: %v", err)
	}
	if err := users.Create(context.Background(), existing); err != nil {
		t.Fatalf("Create: %v", err)
	}

	w := postJSON(handler.SignupHandler, "/api/users/signup", signupPayload())
	if w.Code != http.StatusConflict {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusConflict)
	}
}

func TestVerifyOTPCreatesAccount(t *testing.T) {
	handler, users, pending, sender := newTestHandler(t)

	if w := postJSON(handler.SignupHandler, "/api/users/signup", signupPayload()); w.Code != http.StatusOK {
		t.Fatalf("signup status = %d; body: %s", w.Code, w.Body.String())
	}

	w := postJSON(handler.VerifyOTPHandler, "/api/users/verify-otp", map[string]string{
		"phone": "+919876543210",
		"code":  sender.code,
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, want %d; body: %s", w.Code, http.StatusCreated, w.Body.String())
	}

	user, err := users.GetByPhone(context.Background(), "+919876543210")
	if err != nil {
		t.Fatalf("GetByPhone after verify: %v", err)
	}
	if user.Role != domain.RoleCustomer {
		t.Fatalf("role = %q, want customer", user.Role)
	}

	if _, err := pending.GetPending(context.Background(), "+919876543210"); err == nil {
		t.Fatal("pending entry survived verification")
	}
}

func TestVerifyOTPWrongCode(t *testing.T) {
	handler, users, _, sender := newTestHandler(t)

	if w := postJSON(handler.SignupHandler, "/api/users/signup", signupPayload()); w.Code != http.StatusOK {
		t.Fatalf("signup status = %d", w.Code)
	}

	wrong := "00000"
	if sender.code == wrong {
		wrong = "00001"
	}
	w := postJSON(handler.VerifyOTPHandler, "/api/users/verify-otp", map[string]string{
		"phone": "+919876543210",
		"code":  wrong,
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusBadRequest)
	}
	if _, err := users.GetByPhone(context.Background(), "+919876543210"); err == nil {
		t.Fatal("account created despite wrong code")
	}
}

func TestVerifyOTPWithoutPendingSignup(t *testing.T) {
	handler, _, _, _ := newTestHandler(t)

	w := postJSON(handler.VerifyOTPHandler, "/api/users/verify-otp", map[string]string{
		"phone": "+919876543210",
		"code":  "12345",
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusBadRequest)
	}
}

func TestLoginSetsSessionCookie(t *testing.T) {
	handler, _, _, sender := newTestHandler(t)

	if w := postJSON(handler.SignupHandler, "/api/users/signup", signupPayload()); w.Code != http.StatusOK {
		t.Fatalf("signup status = %d", w.Code)
	}
	if w := postJSON(handler.VerifyOTPHandler, "/api/users/verify-otp", map[string]string{
		"phone": "+919876543210",
		"code":  sender.code,
	}); w.Code != http.StatusCreated {
		t.Fatalf("verify status = %d", w.Code)
	}

	w := postJSON(handler.LoginHandler, "/api/users/login", map[string]string{
		"phone":    "+919876543210",
		"password": "supersecret",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d; body: %s", w.Code, http.StatusOK, w.Body.String())
	}

	var resp loginResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Token == "" {
		t.Fatal("response token is empty")
	}

	var found bool
	for _, cookie := range w.Result().Cookies() {
		if cookie.Name == "token" && cookie.Value == resp.Token && cookie.HttpOnly {
			found = true
		}
	}
	if !found {
		t.Fatal("session cookie not set")
	}
}

func TestLoginWrongPasswordAndUnknownPhoneLookAlike(t *testing.T) {
	handler, _, _, sender := newTestHandler(t)

	if w := postJSON(handler.SignupHandler, "/api/users/signup", signupPayload()); w.Code != http.StatusOK {
		t.Fatalf("signup status = %d", w.Code)
	}
	if w := postJSON(handler.VerifyOTPHandler, "/api/users/verify-otp", map[string]string{
		"phone": "+919876543210",
		"code":  sender.code,
	}); w.Code != http.StatusCreated {
		t.Fatalf("verify status = %d", w.Code)
	}

	wrongPassword := postJSON(handler.LoginHandler, "/api/users/login", map[string]string{
		"phone":    "+919876543210",
		"password": "not-the-password",
	})
	unknownPhone := postJSON(handler.LoginHandler, "/api/users/login", map[string]string{
		"phone":    "+911111111111",
		"password": "supersecret",
	})

	if wrongPassword.Code != http.StatusUnauthorized || unknownPhone.Code != http.StatusUnauthorized {
		t.Fatalf("statuses = %d and %d, want both %d", wrongPassword.Code, unknownPhone.Code, http.StatusUnauthorized)
	}
	if wrongPassword.Body.String() != unknownPhone.Body.String() {
		t.Fatal("wrong-password and unknown-phone answers differ")
	}
}

func TestLogoutClearsCookie(t *testing.T) {
	handler, _, _, _ := newTestHandler(t)

	r := httptest.NewRequest(http.MethodPost, "/api/users/logout", nil)
	w := httptest.NewRecorder()
	handler.LogoutHandler(w, r)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}
	var cleared bool
	for _, cookie := range w.Result().Cookies() {
		if cookie.Name == "token" && cookie.Value == "" && cookie.MaxAge < 0 {
			cleared = true
		}
	}
	if !cleared {
		t.Fatal("session cookie not cleared")
	}
}
