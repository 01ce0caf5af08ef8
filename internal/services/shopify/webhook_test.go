package shopify

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"testing"
)

func sign(secret string, body []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}

func TestVerifyWebhookSignature(t *testing.T) {
	secret := "shpss_test_secret"
	body := []byte(`{"id":820982911946154508,"name":"#9999"}`)

	if !VerifyWebhookSignature(secret, body, sign(secret, body)) {
		t.Fatal("expected a valid signature to verify")
	}
}

func TestVerifyWebhookSignatureRejects(t *testing.T) {
	secret := "shpss_test_secret"
	body := []byte(`{"id":1}`)

	cases := []struct {
		name      string
		secret    string
		body      []byte
		signature string
	}{
		{"wrong secret", "other_secret", body, sign(secret, body)},
		{"tampered body", secret, []byte(`{"id":2}`), sign(secret, body)},
		{"empty signature", secret, body, ""},
		{"garbage signature", secret, body, "bm90LWEtc2lnbmF0dXJl"},
		{"empty secret", "", body, sign(secret, body)},
	}

	for _, tc := range cases {
		if VerifyWebhookSignature(tc.secret, tc.body, tc.signature) {
			t.Fatalf("%s: expected verification to fail", tc.name)
		}
	}
}
