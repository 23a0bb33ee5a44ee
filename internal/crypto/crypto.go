package crypto

import (
	"crypto/subtle"
	"errors"
)

var (
	ErrMalformedInput   = errors.New("malformed ciphertext")
	ErrAuthFailed       = errors.New("authentication failed")
	ErrInvalidParams    = errors.New("invalid key derivation parameters")
	ErrInvalidPlaintext = errors.New("plaintext is not valid UTF-8")
)

// Failure tags why a decryption did not produce plaintext
type Failure int

const (
	FailureNone Failure = iota
	FailureAuthentication
	FailureMalformedInput
)

func (f Failure) String() string {
	switch f {
	case FailureNone:
		return "none"
	case FailureAuthentication:
		return "authentication"
	case FailureMalformedInput:
		return "malformed-input"
	default:
		return "unknown"
	}
}

// Classify maps an error returned by this package to its Failure kind.
// Errors this package did not produce are reported as malformed input.
func Classify(err error) Failure {
	switch {
	case err == nil:
		return FailureNone
	case errors.Is(err, ErrAuthFailed):
		return FailureAuthentication
	default:
		return FailureMalformedInput
	}
}

// ClearBytes securely clears a byte slice
func ClearBytes(b []byte) {
	for i := range b {
		b[i] = 0
	}
}

// ConstantTimeCompare performs a constant-time comparison of two byte slices
func ConstantTimeCompare(a, b []byte) bool {
	return subtle.ConstantTimeCompare(a, b) == 1
}
