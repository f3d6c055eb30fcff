package otp

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"

	"github.com/hirebuddy/hirebuddy/internal/domain"
	"github.com/hirebuddy/hirebuddy/internal/infrastructure/validate"
)

var (
	ErrPendingNotFound = errors.New("no pending signup")
	ErrCodeMismatch    = errors.New("verification code mismatch")
)

// PendingSignup holds a signup that has not been phone-verified yet. The
// user record is only created once the code is confirmed.
type PendingSignup struct {
	User *domain.User `json:"user"`
	Code string       `json:"code"`
}

// PendingStore parks signups keyed by phone number until verification.
// Entries expire on their own; a re-signup for the same phone overwrites.
type PendingStore interface {
	SavePending(ctx context.Context, pending *PendingSignup) error
	GetPending(ctx context.Context, phone string) (*PendingSignup, error)
	DeletePending(ctx context.Context, phone string) error
}

// GenerateCode returns a random 5-digit verification code.
func GenerateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(100000))
	if err != nil {
		return "", fmt.Errorf("failed to generate code: %w", err)
	}
	return fmt.Sprintf("%05d", n.Int64()), nil
}

var validateCode = validate.Field("code", validate.Required(), validate.Length(5), validate.DigitsOnly())

// Verify checks the submitted code against the pending signup and returns
// the parked user on success. A code that cannot have been generated is
// rejected without touching the store.
func Verify(ctx context.Context, store PendingStore, phone, code string) (*domain.User, error) {
	if err := validateCode(code); err != nil {
		return nil, ErrCodeMismatch
	}

	pending, err := store.GetPending(ctx, phone)
	if err != nil {
		return nil, err
	}
	if pending.Code != code {
		return nil, ErrCodeMismatch
	}
	return pending.User, nil
}
