// Package crypto provides the key schedule and cipher used by slipper pages.
//
// Key derivation uses PBKDF2 with fixed, public parameters:
//   - SHA-256 as the PRF
//   - a static salt published with the page source
//   - 1000 iterations
//   - 48 bytes of output, split into a 32-byte AES key and a 16-byte IV
//
// Encryption uses AES-256-CBC with PKCS#7 padding, byte-compatible with the
// WebCrypto AES-CBC algorithm. There is no MAC: a wrong password is detected
// by invalid padding or by plaintext that is not valid UTF-8. Padding-oracle
// leakage is not mitigated. The ciphertext is public, and security rests on
// the password alone.
//
// Ciphertext is embedded in pages as lowercase hex (see EncodeHex).
//
// Memory safety:
//   - Use ClearBytes() to zero sensitive data after use
//   - Call KeyMaterial.Destroy() once a derive/cipher operation is done
package crypto
