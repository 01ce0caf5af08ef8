package slack

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strconv"
	"time"
)

// maxSignatureAge rejects replayed interaction callbacks.
const maxSignatureAge = 5 * time.Minute

// VerifySignature checks a Slack request signature: HMAC-SHA256 of
// "v0:<timestamp>:<body>" keyed with the signing secret, hex-encoded behind
// a "v0=" prefix.
func VerifySignature(signingSecret string, timestamp string, body []byte, signature string) bool {
	if signingSecret == "" || signature == "" {
		return false
	}

	ts, err := strconv.ParseInt(timestamp, 10, 64)
	if err != nil {
		return false
	}
	age := time.Since(time.Unix(ts, 0))
	if age > maxSignatureAge || age < -maxSignatureAge {
		return false
	}

	mac := hmac.New(sha256.New, []byte(signingSecret))
	fmt.Fprintf(mac, "v0:%s:%s", timestamp, body)
	expected := "v0=" + hex.EncodeToString(mac.Sum(nil))

	return hmac.Equal([]byte(expected), []byte(signature))
}
