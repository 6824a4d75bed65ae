// Package token generates externally visible transaction identifiers.
package token

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"
)

const (
	transactionPrefix = "TXN_"
	transactionChars  = 12
)

// NewTransactionID returns a fresh transaction token: a fixed prefix followed
// by 12 uppercase hex characters drawn from a 128-bit cryptographically random
// source. Collisions are negligible and are not re-checked; a duplicate would
// surface as a store uniqueness violation and is treated as fatal.
func NewTransactionID() (string, error) {
	var buf [16]byte
	if _, err := rand.Read(buf[:]); err != nil {
		return "", fmt.Errorf("token: read random source: %w", err)
	}
	encoded := strings.ToUpper(hex.EncodeToString(buf[:]))
	return transactionPrefix + encoded[:transactionChars], nil
}
