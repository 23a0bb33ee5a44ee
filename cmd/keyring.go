package cmd

import (
	"fmt"
	"os"

	"github.com/illarion/slipper/internal/core"
	"github.com/illarion/slipper/internal/crypto"
	"github.com/illarion/slipper/internal/keyring"
)

// KeyringSave verifies a page password and remembers it in the OS keyring
func KeyringSave(env *Env, name string) {
	s := env.Store()

	password, err := env.Prompter.ReadPassword("Enter password: ")
	if err != nil {
		HandleError(err)
	}
	defer crypto.ClearBytes(password)

	if err := s.VerifyPassword(name, string(password)); err != nil {
		HandleError(err)
	}

	saveToKeyring(env, s, name, string(password))
}

func saveToKeyring(env *Env, s *core.Slipper, name, password string) {
	if env.Config.NoKeyring {
		env.Logger.Warn("keyring disabled by SLIPPER_NO_KEYRING, password not saved")
		return
	}

	vaultID, err := s.GetOrCreateVaultID()
	if err != nil {
		HandleError(err)
	}

	if err := keyring.SavePassword(vaultID, name, password); err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to save to keyring: %s\n", err)
		os.Exit(1)
	}
	fmt.Fprintf(os.Stderr, "Password for %s saved to keyring\n", name)
}

// KeyringDelete removes a page password from the OS keyring
func KeyringDelete(env *Env, name string) {
	vaultID, err := env.Store().GetVaultID()
	if err != nil || !keyring.HasPassword(vaultID, name) {
		fmt.Fprintln(env.Stdout, "No password stored in keyring")
		return
	}

	if err := keyring.DeletePassword(vaultID, name); err != nil {
		HandleError(err)
	}
	fmt.Fprintln(env.Stdout, "Password removed from keyring")
}

// KeyringStatus reports whether a page password is in the OS keyring
func KeyringStatus(env *Env, name string) {
	vaultID, err := env.Store().GetVaultID()
	if err == nil && keyring.HasPassword(vaultID, name) {
		fmt.Fprintln(env.Stdout, "Password: stored in keyring")
		return
	}
	fmt.Fprintln(env.Stdout, "Password: not stored")
}
