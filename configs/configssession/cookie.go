package configssession

import (
	"crypto/sha256"
	"encoding/base64"
)

// DeriveCookieKey turns SECRET_KEY into the base64 AES-256 key encryptcookie expects.
func DeriveCookieKey(secret string) string {
	sum := sha256.Sum256([]byte(secret))
	return base64.StdEncoding.EncodeToString(sum[:])
}
