package payments

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"

	"github.com/google/uuid"

	"github.com/hirebuddy/hirebuddy/internal/infrastructure/configs"
)

// CreditsPerTopUp is how many booking credits one successful payment buys.
const CreditsPerTopUp = 10

var ErrSignatureMismatch = errors.New("payment signature mismatch")

type Order struct {
	ID       string `json:"id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
}

// Gateway fronts the external payment provider. Only order creation goes
// through it; signature verification is local HMAC against the key secret.
type Gateway interface {
	CreateOrder(ctx context.Context, amount int64, currency string) (*Order, error)
}

type Verifier struct {
	keySecret []byte
}

func NewVerifier(cfg configs.PaymentsConfig) *Verifier {
	return &Verifier{keySecret: []byte(cfg.KeySecret)}
}

// VerifySignature checks the provider's HMAC-SHA256 over "orderId|paymentId".
func (v *Verifier) VerifySignature(orderID, paymentID, signature string) error {
	mac := hmac.New(sha256.New, v.keySecret)
	mac.Write([]byte(orderID + "|" + paymentID))
	expected := hex.EncodeToString(mac.Sum(nil))

	if !hmac.Equal([]byte(expected), []byte(signature)) {
		return ErrSignatureMismatch
	}
	return nil
}

// StubGateway issues local order IDs without contacting a provider. It backs
// development and tests; a real provider client implements Gateway the same
// way.
type StubGateway struct {
	keyID string
}

func NewStubGateway(cfg configs.PaymentsConfig) *StubGateway {
	return &StubGateway{keyID: cfg.KeyID}
}

func (g *StubGateway) CreateOrder(ctx context.Context, amount int64, currency string) (*Order, error) {
	if amount <= 0 {
		return nil, errors.New("amount must be positive")
	}
	if currency == "" {
		currency = "INR"
	}
	return &Order{
		ID:       "order_" + uuid.NewString(),
		Amount:   amount,
		Currency: currency,
	}, nil
}
