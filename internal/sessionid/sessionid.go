// Package sessionid generates sortable identifiers for game sessions.
package sessionid

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Crockford's base32, as used by TypeID
const alphabet = "0123456789abcdefghjkmnpqrstvwxyz"

// Length of an encoded session ID
const Length = 26

// New returns a UUIDv7 encoded as a 26-character base32 string. IDs created
// later sort after earlier ones.
func New() (string, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return "", fmt.Errorf("generate session id: %w", err)
	}
	return Encode(id), nil
}

// MustNew is New that panics on failure.
func MustNew() string {
	id, err := New()
	if err != nil {
		panic(err)
	}
	return id
}

// Encode encodes 128 bits as 26 base32 characters. Two leading zero bits pad
// the value to 130 bits, so the first character is always 0-7.
func Encode(id uuid.UUID) string {
	result := make([]byte, Length)
	for i := range result {
		var value byte
		for b := 0; b < 5; b++ {
			bit := i*5 + b - 2
			value <<= 1
			if bit >= 0 {
				value |= (id[bit/8] >> (7 - bit%8)) & 1
			}
		}
		result[i] = alphabet[value]
	}
	return string(result)
}

// Validate checks if a session ID is well formed.
func Validate(id string) error {
	if len(id) != Length {
		return fmt.Errorf("session ID must be exactly %d characters, got %d", Length, len(id))
	}
	if id[0] > '7' {
		return fmt.Errorf("session ID first character must be 0-7, got %c", id[0])
	}
	for i, char := range id {
		if !strings.ContainsRune(alphabet, char) {
			return fmt.Errorf("invalid character %c at position %d", char, i)
		}
	}
	return nil
}
