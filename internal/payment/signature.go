package payment

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"

	"github.com/WavyWeb/SkillHub-CourseSelling/internal/apperr"
)

// VerifySignature checks a gateway payment confirmation: the signature must
// be the hex HMAC-SHA256 of "orderID|paymentID" under the gateway key
// secret. Comparison is constant-time. Stateless; the server, not the
// client, decides whether the payment succeeded.
func VerifySignature(orderID, paymentID, signature, secret string) error {
	if secret == "" {
		return apperr.ErrMissingSecret
	}

	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(orderID + "|" + paymentID))
	expected := hex.EncodeToString(mac.Sum(nil))

	if !hmac.Equal([]byte(expected), []byte(signature)) {
		return apperr.ErrSignatureMismatch
	}
	return nil
}
