// Package phrase generates and validates the human-read verification phrase
// that binds a prepared transfer to a specific receive attempt.
package phrase

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
)

// WordCount is the fixed number of words in a verification phrase.
const WordCount = 4

// Valid reports whether s is a well-formed verification phrase: exactly
// WordCount non-empty, whitespace-separated tokens.
func Valid(s string) bool {
	return len(strings.Fields(s)) == WordCount
}

// Normalize collapses the operator's typing into the canonical single-space,
// lower-case form both sides derive keys from.
func Normalize(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}

// Generate produces a fresh random verification phrase from the embedded
// wordlist.
func Generate() (string, error) {
	words := make([]string, WordCount)
	max := big.NewInt(int64(len(wordlist)))
	for i := range words {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", fmt.Errorf("failed to draw phrase word: %w", err)
		}
		words[i] = wordlist[n.Int64()]
	}
	return strings.Join(words, " "), nil
}
