// Package ordercode generates the short public codes customers quote for orders.
package ordercode

import (
	"fmt"
	"io"
)

const (
	// Alphabet lists the characters a code may contain.
	Alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	// Length is the fixed number of characters in a code.
	Length = 6
)

// Largest multiple of len(Alphabet) that fits in a byte; bytes above it are
// rejected so every character is equally likely.
const maxUnbiased = 256 - 256%len(Alphabet)

// Generate builds a random code reading entropy from r.
func Generate(r io.Reader) (string, error) {
	code := make([]byte, 0, Length)
	buf := make([]byte, Length*2)
	for len(code) < Length {
		if _, err := io.ReadFull(r, buf); err != nil {
			return "", fmt.Errorf("read entropy: %w", err)
		}
		for _, b := range buf {
			if int(b) >= maxUnbiased {
				continue
			}
			code = append(code, Alphabet[int(b)%len(Alphabet)])
			if len(code) == Length {
				break
			}
		}
	}
	return string(code), nil
}

// Valid reports whether code has the shape produced by Generate.
func Valid(code string) bool {
	if len(code) != Length {
		return false
	}
	for i := 0; i < len(code); i++ {
		c := code[i]
		if (c < 'A' || c > 'Z') && (c < '0' || c > '9') {
			return false
		}
	}
	return true
}
