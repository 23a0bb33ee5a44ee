package crypto

import (
	"encoding/hex"
	"fmt"
)

// EncodeHex encodes b as lowercase hex, two digits per byte
func EncodeHex(b []byte) string {
	return hex.EncodeToString(b)
}

// DecodeHex is the inverse of EncodeHex. Odd-length or non-hex input
// yields ErrMalformedInput.
func DecodeHex(s string) ([]byte, error) {
	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedInput, err)
	}
	return b, nil
}
