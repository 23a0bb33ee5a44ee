// Package guess drives decryption attempts from a password field.
//
// A Controller is bound to three host elements: a Source holding the hex
// ciphertext (read once), the input field (the host calls Input on every
// input event) and an Output that receives either the recovered plaintext or
// the fixed IncorrectMessage.
//
// Each input value is normalized (see Normalize). An attempt is started only
// when the normalized guess differs from the previous one. Attempts run
// asynchronously and may finish out of order; every attempt carries a
// sequence number and only the most recently issued attempt may write the
// Output.
package guess
