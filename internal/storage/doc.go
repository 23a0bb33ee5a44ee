// Package storage provides the BBolt database interface for slipper.
//
// Database structure uses two buckets:
//   - config: KDF parameters, vault id, timestamps
//   - pages: one entry per named page (hex ciphertext, size, hash, times)
//
// Nothing stored here is secret. Ciphertexts are published with their pages
// and the KDF parameters are fixed; the store only keeps the author's pages
// in one place and refuses to open if its parameters differ from the ones
// this build uses.
//
// BBolt provides ACID transactions, file locking, and corruption detection.
package storage
