// Package git checks whether plaintext sources handed to slipper are exposed
// through git.
//
// A page only hides its text if the plaintext never gets published next to
// it. When a source file is tracked by git, or not covered by .gitignore,
// the CLI warns before sealing it.
package git
