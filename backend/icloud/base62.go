package icloud

import (
	"errors"
	"fmt"
	"strings"
)

const base62Alphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"

var ErrInvalidBase62Char = errors.New("invalid base62 character")

// Base62Decode decodes a base62 string into an integer. An empty
// string decodes to zero.
func Base62Decode(encoded string) (int, error) {
	value := 0
	for _, char := range encoded {
		index := strings.IndexRune(base62Alphabet, char)
		if index < 0 {
			return 0, fmt.Errorf("%w: '%c'", ErrInvalidBase62Char, char)
		}
		value = value*62 + index
	}
	return value, nil
}
