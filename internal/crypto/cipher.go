package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"fmt"
	"unicode/utf8"
)

// Encrypt encrypts plaintext using AES-256-CBC with PKCS#7 padding.
// Plaintext must be valid UTF-8, since Decrypt rejects anything else.
func Encrypt(plaintext string, km *KeyMaterial) ([]byte, error) {
	if !utf8.ValidString(plaintext) {
		return nil, ErrInvalidPlaintext
	}

	block, err := newBlock(km)
	if err != nil {
		return nil, err
	}

	padded := pkcs7Pad([]byte(plaintext), aes.BlockSize)
	defer ClearBytes(padded)

	ciphertext := make([]byte, len(padded))
	cipher.NewCBCEncrypter(block, km.IV).CryptBlocks(ciphertext, padded)
	return ciphertext, nil
}

// Decrypt decrypts ciphertext produced by Encrypt. A key that does not match
// the one used to encrypt yields ErrAuthFailed; a ciphertext that cannot be
// CBC output yields ErrMalformedInput.
func Decrypt(ciphertext []byte, km *KeyMaterial) (string, error) {
	if len(ciphertext) == 0 || len(ciphertext)%aes.BlockSize != 0 {
		return "", fmt.Errorf("%w: length %d is not a positive multiple of %d", ErrMalformedInput, len(ciphertext), aes.BlockSize)
	}

	block, err := newBlock(km)
	if err != nil {
		return "", err
	}

	buf := make([]byte, len(ciphertext))
	defer ClearBytes(buf)
	cipher.NewCBCDecrypter(block, km.IV).CryptBlocks(buf, ciphertext)

	plaintext, ok := pkcs7Unpad(buf, aes.BlockSize)
	if !ok {
		return "", ErrAuthFailed
	}
	if !utf8.Valid(plaintext) {
		return "", ErrAuthFailed
	}
	return string(plaintext), nil
}

// EncryptHex derives key material from password and returns the hex
// ciphertext of plaintext, ready to embed in a page
func EncryptHex(plaintext, password string) (string, error) {
	km := DeriveKeyMaterial(password)
	defer km.Destroy()

	ciphertext, err := Encrypt(plaintext, km)
	if err != nil {
		return "", err
	}
	return EncodeHex(ciphertext), nil
}

// DecryptHex decodes a page ciphertext and decrypts it with password
func DecryptHex(cipherHex, password string) (string, error) {
	ciphertext, err := DecodeHex(cipherHex)
	if err != nil {
		return "", err
	}

	km := DeriveKeyMaterial(password)
	defer km.Destroy()

	return Decrypt(ciphertext, km)
}

func newBlock(km *KeyMaterial) (cipher.Block, error) {
	if km == nil || len(km.Key) != KeySize {
		return nil, fmt.Errorf("%w: key must be %d bytes", ErrInvalidParams, KeySize)
	}
	if len(km.IV) != IVSize {
		return nil, fmt.Errorf("%w: IV must be %d bytes", ErrInvalidParams, IVSize)
	}
	block, err := aes.NewCipher(km.Key)
	if err != nil {
		return nil, fmt.Errorf("failed to create cipher: %w", err)
	}
	return block, nil
}

// pkcs7Pad always appends 1..size bytes of padding
func pkcs7Pad(data []byte, size int) []byte {
	pad := size - len(data)%size
	out := make([]byte, len(data)+pad)
	copy(out, data)
	for i := len(data); i < len(out); i++ {
		out[i] = byte(pad)
	}
	return out
}

func pkcs7Unpad(data []byte, size int) ([]byte, bool) {
	if len(data) == 0 || len(data)%size != 0 {
		return nil, false
	}
	pad := int(data[len(data)-1])
	if pad == 0 || pad > size {
		return nil, false
	}
	for _, b := range data[len(data)-pad:] {
		if int(b) != pad {
			return nil, false
		}
	}
	return data[:len(data)-pad], true
}
