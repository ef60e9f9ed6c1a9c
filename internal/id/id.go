package id

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/gagyebu/gagyebu/internal/model"
)

// fingerprintBytes is the number of hash bytes kept in a fingerprint.
const fingerprintBytes = 16

// Fingerprint returns a stable dedupe key like "tx_3f9a...".
// occurrence numbers identical transactions within one statement, starting at 1.
func Fingerprint(t model.Transaction, occurrence int) string {
	key := strings.Join([]string{
		t.Date,
		t.Time,
		string(t.Type),
		t.Amount.String(),
		t.Merchant,
		fmt.Sprintf("%d", occurrence),
	}, "|")
	sum := sha256.Sum256([]byte(key))
	return "tx_" + hex.EncodeToString(sum[:fingerprintBytes])
}

// Fingerprints returns one fingerprint per transaction, numbering repeats in order.
func Fingerprints(txns []model.Transaction) []string {
	seen := make(map[string]int, len(txns))
	out := make([]string, len(txns))
	for i, t := range txns {
		base := Fingerprint(t, 0)
		seen[base]++
		out[i] = Fingerprint(t, seen[base])
	}
	return out
}

// NewBatchID returns a new import batch identifier.
func NewBatchID() string {
	return uuid.NewString()
}

// ParseBatchID validates a batch identifier.
func ParseBatchID(s string) (string, error) {
	u, err := uuid.Parse(s)
	if err != nil {
		return "", fmt.Errorf("invalid batch ID %q: %w", s, err)
	}
	return u.String(), nil
}
