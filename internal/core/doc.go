// Package core provides the slipper authoring operations.
//
// Core operations include:
//   - Init: Create a page store with the fixed key derivation parameters
//   - Seal: Encrypt a plaintext under a password and store it as a named page
//   - Reveal: Decrypt a stored page with a guess, normalized the way pages do
//   - List/Status/Remove/Compact: Manage stored pages
//   - Diff: Compare a stored page's plaintext with a local file
//
// The store holds only public data (ciphertexts and parameters); passwords
// are never written to it.
package core
