package webhook

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"strings"
)

// SignatureHeader carries the hex HMAC-SHA256 of the raw request body.
const SignatureHeader = "x-kiwify-signature"

var ErrInvalidSignature = errors.New("invalid webhook signature")

// Sign returns the hex HMAC-SHA256 of body under secret.
func Sign(secret string, body []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}

// VerifySignature checks header against the HMAC of the exact raw body.
// Verification is skipped when either the secret or the header is empty:
// Kiwify sandbox deliveries arrive unsigned.
func VerifySignature(secret, header string, body []byte) error {
	header = strings.TrimSpace(header)
	if secret == "" || header == "" {
		return nil
	}
	header = strings.TrimPrefix(strings.ToLower(header), "sha256=")
	got, err := hex.DecodeString(header)
	if err != nil {
		return ErrInvalidSignature
	}
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	if !hmac.Equal(got, mac.Sum(nil)) {
		return ErrInvalidSignature
	}
	return nil
}
