package utils

import (
	"crypto/rand"
	"math/big"
)

const seedAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"

// RandomSeed returns n random lowercase alphanumeric characters. Used for
// avatar seeds and other non-secret identifiers, so a failure of the
// entropy source degrades to an empty seed instead of an error.
func RandomSeed(n int) string {
	limit := big.NewInt(int64(len(seedAlphabet)))
	b := make([]byte, n)
	for i := range b {
		idx, err := rand.Int(rand.Reader, limit)
		if err != nil {
			return ""
		}
		b[i] = seedAlphabet[idx.Int64()]
	}
	return string(b)
}
