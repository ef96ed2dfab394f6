// Package ingestion stores scraped or submitted articles exactly once, keyed by a content fingerprint.
package ingestion

import (
	"crypto/sha256"
	"encoding/hex"
)

// Fingerprint returns the lowercase hex SHA-256 of title, a newline and the raw
// content (empty when nil). Input is hashed as-is: no trimming or case folding.
func Fingerprint(title string, rawContent *string) string {
	raw := ""
	if rawContent != nil {
		raw = *rawContent
	}
	sum := sha256.Sum256([]byte(title + "\n" + raw))
	return hex.EncodeToString(sum[:])
}
