package payments

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"strings"
	"testing"

	"github.com/hirebuddy/hirebuddy/internal/infrastructure/configs"
)

func sign(secret, orderID, paymentID string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(orderID + "|" + paymentID))
	return hex.EncodeToString(mac.Sum(nil))
}

func TestVerifySignatureAcceptsValid(t *testing.T) {
	verifier := NewVerifier(configs.PaymentsConfig{KeySecret: "key-secret"})

	signature := sign("key-secret", "order_1", "pay_1")
	if err := verifier.VerifySignature("order_1", "pay_1", signature); err != nil {
		t.Fatalf("VerifySignature: %v", err)
	}
}

func TestVerifySignatureRejectsTampered(t *testing.T) {
	verifier := NewVerifier(configs.PaymentsConfig{KeySecret: "key-secret"})
	signature := sign("key-secret", "order_1", "pay_1")

	cases := map[string][3]string{
		"wrong order":   {"order_2", "pay_1", signature},
		"wrong payment": {"order_1", "pay_2", signature},
		"wrong secret":  {"order_1", "pay_1", sign("other-secret", "order_1", "pay_1")},
		"garbage":       {"order_1", "pay_1", "deadbeef"},
	}
	for name, c := range cases {
		if err := verifier.VerifySignature(c[0], c[1], c[2]); !errors.Is(err, ErrSignatureMismatch) {
			t.Errorf("%s: err = %v, want ErrSignatureMismatch", name, err)
		}
	}
}

func TestStubGatewayCreatesOrder(t *testing.T) {
	gateway := NewStubGateway(configs.PaymentsConfig{KeyID: "key-id"})

	order, err := gateway.CreateOrder(context.Background(), 49900, "")
	if err != nil {
		t.Fatalf("CreateOrder: %v", err)
	}
	if !strings.HasPrefix(order.ID, "order_") {
		t.Fatalf("order ID = %q, want order_ prefix", order.ID)
	}
	if order.Currency != "INR" {
		t.Fatalf("currency = %q, want default INR", order.Currency)
	}
	if order.Amount != 49900 {
		t.Fatalf("amount = %d, want 49900", order.Amount)
	}
}

func TestStubGatewayRejectsNonPositiveAmount(t *testing.T) {
	gateway := NewStubGateway(configs.PaymentsConfig{})

	if _, err := gateway.CreateOrder(context.Background(), 0, "INR"); err == nil {
		t.Fatal("zero amount accepted")
	}
	if _, err := gateway.CreateOrder(context.Background(), -1, "INR"); err == nil {
		t.Fatal("negative amount accepted")
	}
}
