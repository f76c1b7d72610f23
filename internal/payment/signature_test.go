package payment

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"testing"

	"github.com/WavyWeb/SkillHub-CourseSelling/internal/apperr"
)

const testSecret = "test_key_secret"

func sign(orderID, paymentID, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(orderID + "|" + paymentID))
	return hex.EncodeToString(mac.Sum(nil))
}

func TestVerifySignature_Valid(t *testing.T) {
	sig := sign("order_abc", "pay_xyz", testSecret)

	if err := VerifySignature("order_abc", "pay_xyz", sig, testSecret); err != nil {
		t.Fatalf("expected valid signature, got %v", err)
	}
}

func TestVerifySignature_AnyMutationRejected(t *testing.T) {
	sig := sign("order_abc", "pay_xyz", testSecret)

	// flip one bit in each hex character position
	for i := 0; i < len(sig); i++ {
		mutated := []byte(sig)
		mutated[i] ^= 0x01

		err := VerifySignature("order_abc", "pay_xyz", string(mutated), testSecret)
		if !errors.Is(err, apperr.ErrSignatureMismatch) {
			t.Fatalf("mutation at %d: got %v, want ErrSignatureMismatch", i, err)
		}
	}
}

func TestVerifySignature_WrongInputs(t *testing.T) {
	sig := sign("order_abc", "pay_xyz", testSecret)

	cases := []struct {
		name               string
		orderID, paymentID string
	}{
		{"different order", "order_def", "pay_xyz"},
		{"different payment", "order_abc", "pay_other"},
		{"swapped ids", "pay_xyz", "order_abc"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := VerifySignature(tc.orderID, tc.paymentID, sig, testSecret)
			if !errors.Is(err, apperr.ErrSignatureMismatch) {
				t.Errorf("got %v, want ErrSignatureMismatch", err)
			}
		})
	}
}

func TestVerifySignature_WrongSecret(t *testing.T) {
	sig := sign("order_abc", "pay_xyz", "another_secret")

	err := VerifySignature("order_abc", "pay_xyz", sig, testSecret)
	if !errors.Is(err, apperr.ErrSignatureMismatch) {
		t.Fatalf("got %v, want ErrSignatureMismatch", err)
	}
}

func TestVerifySignature_MissingSecret(t *testing.T) {
	err := VerifySignature("order_abc", "pay_xyz", "whatever", "")
	if !errors.Is(err, apperr.ErrMissingSecret) {
		t.Fatalf("got %v, want ErrMissingSecret", err)
	}
}
