package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/illarion/slipper/internal/core"
	"github.com/illarion/slipper/internal/crypto"
	"github.com/illarion/slipper/internal/guess"
)

// Decrypt opens a page the way a viewer would and prints its plaintext
func Decrypt(env *Env, name, cipherHex string) {
	s := env.Store()
	cipherHex = pageCipherHex(s, name, cipherHex)
	password := env.PagePassword(s, name)

	plaintext, err := core.RevealHex(cipherHex, password, crypto.DefaultParams)
	if errors.Is(err, core.ErrWrongPassword) {
		fmt.Fprintln(env.Stdout, guess.IncorrectMessage)
		os.Exit(1)
	}
	if err != nil {
		HandleError(err)
	}

	fmt.Fprint(env.Stdout, plaintext)
}

// pageCipherHex resolves the ciphertext of a command that accepts either a
// stored page name or a literal hex string
func pageCipherHex(s *core.Slipper, name, cipherHex string) string {
	switch {
	case name != "" && cipherHex != "":
		Fail("use either -name or -hex, not both")
	case cipherHex != "":
		return cipherHex
	case name == "":
		Fail("a page is required (-name or -hex)")
	}

	entry, err := s.Get(name)
	if err != nil {
		HandleError(err)
	}
	return entry.CipherHex
}
