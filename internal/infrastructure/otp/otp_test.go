package otp

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/hirebuddy/hirebuddy/internal/domain"
)

func pendingUser(t *testing.T) *domain.User {
	t.Helper()
	user, err := domain.NewUser("Asha Rao", "asha@example.com", "+919876543210", domain.RoleCustomer, "hash")
	if err != nil {
		t.Fatalf("NewUser: %v", err)
	}
	return user
}

func TestGenerateCodeShape(t *testing.T) {
	for i := 0; i < 20; i++ {
		code, err := GenerateCode()
		if err != nil {
			t.Fatalf("GenerateCode: %v", err)
		}
		if err := validateCode(code); err != nil {
			t.Fatalf("generated code %q fails its own validation: %v", code, err)
		}
	}
}

func TestVerifyReturnsParkedUser(t *testing.T) {
	store := NewInMemoryPendingStore(time.Minute)
	user := pendingUser(t)
	if err := store.SavePending(context.Background(), &PendingSignup{User: user, Code: "12345"}); err != nil {
		t.Fatalf("SavePending: %v", err)
	}

	got, err := Verify(context.Background(), store, user.Phone, "12345")
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if got.ID != user.ID {
		t.Fatalf("user ID = %q, want %q", got.ID, user.ID)
	}
}

func TestVerifyWrongCode(t *testing.T) {
	store := NewInMemoryPendingStore(time.Minute)
	user := pendingUser(t)
	if err := store.SavePending(context.Background(), &PendingSignup{User: user, Code: "12345"}); err != nil {
		t.Fatalf("SavePending: %v", err)
	}

	if _, err := Verify(context.Background(), store, user.Phone, "54321"); !errors.Is(err, ErrCodeMismatch) {
		t.Fatalf("err = %v, want ErrCodeMismatch", err)
	}
}

func TestVerifyRejectsMalformedCodeWithoutStoreLookup(t *testing.T) {
	store := NewInMemoryPendingStore(time.Minute)

	for _, code := range []string{"", "1234", "123456", "12a45"} {
		if _, err := Verify(context.Background(), store, "+919876543210", code); !errors.Is(err, ErrCodeMismatch) {
			t.Errorf("code %q: err = %v, want ErrCodeMismatch", code, err)
		}
	}
}

func TestVerifyNoPendingSignup(t *testing.T) {
	store := NewInMemoryPendingStore(time.Minute)

	if _, err := Verify(context.Background(), store, "+919876543210", "12345"); !errors.Is(err, ErrPendingNotFound) {
		t.Fatalf("err = %v, want ErrPendingNotFound", err)
	}
}

func TestPendingEntryExpires(t *testing.T) {
	store := NewInMemoryPendingStore(10 * time.Millisecond)
	user := pendingUser(t)
	if err := store.SavePending(context.Background(), &PendingSignup{User: user, Code: "12345"}); err != nil {
		t.Fatalf("SavePending: %v", err)
	}

	time.Sleep(30 * time.Millisecond)
	if _, err := store.GetPending(context.Background(), user.Phone); !errors.Is(err, ErrPendingNotFound) {
		t.Fatalf("err = %v, want ErrPendingNotFound after expiry", err)
	}
}
