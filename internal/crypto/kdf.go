package crypto

import (
	"crypto/aes"
	"crypto/sha1"
	"crypto/sha256"
	"crypto/sha512"
	"fmt"
	"hash"

	"golang.org/x/crypto/pbkdf2"
)

const (
	KeySize = 32            // AES-256 key size
	IVSize  = aes.BlockSize // CBC IV size
)

// Params are the key derivation parameters. They are public and must be
// identical on the encrypt and decrypt paths.
type Params struct {
	Hash       string `json:"hash"`
	Salt       string `json:"salt"`
	Iterations int    `json:"iterations"`
	Length     int    `json:"length"`
}

// DefaultParams is the key schedule every slipper page uses.
var DefaultParams = Params{
	Hash:       "SHA-256",
	Salt:       "e!3dAg$d#o#qhRyA",
	Iterations: 1000,
	Length:     KeySize + IVSize,
}

// KeyMaterial is the split output of one derivation
type KeyMaterial struct {
	Key []byte
	IV  []byte
}

// Destroy clears the key and IV from memory
func (k *KeyMaterial) Destroy() {
	if k == nil {
		return
	}
	ClearBytes(k.Key)
	ClearBytes(k.IV)
}

func (p Params) hashFunc() (func() hash.Hash, error) {
	switch p.Hash {
	case "SHA-256":
		return sha256.New, nil
	case "SHA-384":
		return sha512.New384, nil
	case "SHA-512":
		return sha512.New, nil
	case "SHA-1":
		return sha1.New, nil
	}
	return nil, fmt.Errorf("%w: unsupported hash %q", ErrInvalidParams, p.Hash)
}

// Validate checks that p can produce key material for AES-256-CBC
func (p Params) Validate() error {
	if _, err := p.hashFunc(); err != nil {
		return err
	}
	if p.Iterations < 1 {
		return fmt.Errorf("%w: iterations must be at least 1", ErrInvalidParams)
	}
	if p.Length != KeySize+IVSize {
		return fmt.Errorf("%w: output length must be %d bytes, got %d", ErrInvalidParams, KeySize+IVSize, p.Length)
	}
	return nil
}

// Equal reports whether p and o describe the same key schedule
func (p Params) Equal(o Params) bool {
	return p == o
}

// Derive runs PBKDF2 over the UTF-8 bytes of password and splits the result
// into key and IV. The same password always yields the same material.
func (p Params) Derive(password string) (*KeyMaterial, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	h, _ := p.hashFunc()

	derivation := pbkdf2.Key([]byte(password), []byte(p.Salt), p.Iterations, p.Length, h)

	km := &KeyMaterial{
		Key: append([]byte(nil), derivation[:KeySize]...),
		IV:  append([]byte(nil), derivation[KeySize:]...),
	}
	ClearBytes(derivation)
	return km, nil
}

// DeriveKeyMaterial derives key material with DefaultParams
func DeriveKeyMaterial(password string) *KeyMaterial {
	km, err := DefaultParams.Derive(password)
	if err != nil {
		// DefaultParams is valid
		panic(err)
	}
	return km
}
