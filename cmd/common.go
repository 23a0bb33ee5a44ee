package cmd

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/illarion/slipper/internal/config"
	"github.com/illarion/slipper/internal/core"
	"github.com/illarion/slipper/internal/crypto"
	"github.com/illarion/slipper/internal/keyring"
	"github.com/illarion/slipper/internal/security"
	"github.com/illarion/slipper/internal/storage"
)

// Env carries what every command needs
type Env struct {
	Config   *config.Config
	Logger   *slog.Logger
	Prompter *core.Prompter
	Stdin    io.Reader
	Stdout   io.Writer
}

// Store returns the Slipper for the configured store path
func (e *Env) Store() *core.Slipper {
	return core.New(e.Config.StorePath, e.Logger)
}

// Workspace opens the current directory as the root for -in/-o paths
func (e *Env) Workspace() *security.Workspace {
	ws, err := security.Open(".")
	if err != nil {
		HandleError(err)
	}
	return ws
}

// PagePassword returns the password for page name: SLIPPER_PASSWORD first,
// then the OS keyring, then a prompt.
func (e *Env) PagePassword(s *core.Slipper, name string) string {
	password, err := e.pagePassword(s, name)
	if err != nil {
		HandleError(err)
	}
	return password
}

func (e *Env) pagePassword(s *core.Slipper, name string) (string, error) {
	if e.Config.Password != "" {
		return e.Config.Password, nil
	}

	if name != "" && !e.Config.NoKeyring {
		if vaultID, err := s.GetVaultID(); err == nil {
			password, err := keyring.GetPassword(vaultID, name)
			switch {
			case err == nil:
				e.Logger.Debug("using password from keyring", slog.String("page", name))
				return password, nil
			case !errors.Is(err, keyring.ErrNotFound):
				e.Logger.Warn("keyring unavailable", slog.Any("error", err))
			}
		}
	}

	password, err := e.Prompter.ReadPassword("Enter password: ")
	if err != nil {
		return "", err
	}
	defer crypto.ClearBytes(password)
	return string(password), nil
}

// NewPassword returns the password for a new page: SLIPPER_PASSWORD, or a
// prompt with confirmation
func (e *Env) NewPassword() string {
	password, err := e.newPassword()
	if err != nil {
		HandleError(err)
	}
	return password
}

func (e *Env) newPassword() (string, error) {
	if e.Config.Password != "" {
		return e.Config.Password, nil
	}

	password, err := e.Prompter.ReadPasswordConfirm()
	if err != nil {
		return "", err
	}
	defer crypto.ClearBytes(password)
	return string(password), nil
}

// HandleError prints err in a user-friendly way and exits
func HandleError(err error) {
	switch {
	case errors.Is(err, core.ErrNotInitialized):
		fmt.Fprintf(os.Stderr, "Error: slipper store not initialized\n")
		fmt.Fprintf(os.Stderr, "Run 'slipper init' first\n")
	case errors.Is(err, core.ErrAlreadyExists):
		fmt.Fprintf(os.Stderr, "Error: store already exists\n")
		fmt.Fprintf(os.Stderr, "Use 'slipper ls' to see its pages\n")
	case errors.Is(err, core.ErrWrongPassword):
		fmt.Fprintln(os.Stderr, core.ErrWrongPassword)
	case errors.Is(err, storage.ErrParamsMismatch):
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		fmt.Fprintf(os.Stderr, "The store was created with different key derivation parameters\n")
	case errors.Is(err, storage.ErrNotFound):
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		fmt.Fprintf(os.Stderr, "Use 'slipper ls' to see stored pages\n")
	default:
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
	}
	os.Exit(1)
}

// Fail prints a usage error and exits
func Fail(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}

// formatSize formats a size in human-readable form
func formatSize(size int64) string {
	const (
		KB = 1024
		MB = KB * 1024
	)

	switch {
	case size >= MB:
		return fmt.Sprintf("%.1f MB", float64(size)/MB)
	case size >= KB:
		return fmt.Sprintf("%.1f KB", float64(size)/KB)
	default:
		return fmt.Sprintf("%d bytes", size)
	}
}
