package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"unicode/utf8"

	"github.com/illarion/slipper/internal/crypto"
	"github.com/illarion/slipper/internal/git"
	"github.com/illarion/slipper/internal/guess"
)

// EncryptOptions are the flags of the encrypt command
type EncryptOptions struct {
	Name string // store the page under this name
	In   string // plaintext file; stdin when empty
	Raw  bool   // use the password exactly as typed
	Save bool   // remember the password in the OS keyring
}

// Encrypt seals a plaintext and prints the page ciphertext as hex
func Encrypt(ctx context.Context, env *Env, opts EncryptOptions) {
	if opts.Save && opts.Name == "" {
		Fail("-save requires -name")
	}

	// fail before consuming piped stdin when no password can be read
	if env.Config.Password == "" {
		if err := env.Prompter.Check(); err != nil {
			HandleError(err)
		}
	}

	plaintext, err := readPlaintext(env, opts.In)
	if err != nil {
		HandleError(err)
	}
	password := authorPassword(env, opts.Raw)

	if opts.Name == "" {
		cipherHex, err := crypto.EncryptHex(plaintext, password)
		if err != nil {
			HandleError(err)
		}
		fmt.Fprintln(env.Stdout, cipherHex)
		return
	}

	s := env.Store()
	res, err := s.Seal(ctx, opts.Name, plaintext, password)
	if err != nil {
		HandleError(err)
	}
	if res.Unchanged {
		env.Logger.Info("page unchanged", slog.String("name", opts.Name))
	}

	if opts.Save {
		saveToKeyring(env, s, opts.Name, password)
	}

	fmt.Fprintln(env.Stdout, res.Entry.CipherHex)
}

func readPlaintext(env *Env, in string) (string, error) {
	var data []byte
	source := "stdin"

	if in == "" {
		var err error
		data, err = io.ReadAll(env.Stdin)
		if err != nil {
			return "", fmt.Errorf("failed to read stdin: %w", err)
		}
	} else {
		ws := env.Workspace()
		defer ws.Close()

		var err error
		data, err = ws.ReadFile(in)
		if err != nil {
			return "", err
		}
		source = in

		if warning := git.CheckSource(ws.Dir(), in).Warning(); warning != "" {
			env.Logger.Warn(warning)
		}
	}

	if !utf8.Valid(data) {
		return "", fmt.Errorf("%s: %w (convert it to UTF-8 first)", source, crypto.ErrInvalidPlaintext)
	}
	return string(data), nil
}

// authorPassword reads the password a page will be sealed with. Viewers'
// guesses are always normalized, so unless raw is set the password is
// normalized too.
func authorPassword(env *Env, raw bool) string {
	password := env.NewPassword()
	normalized := guess.Normalize(password)
	if normalized == password {
		return password
	}

	if raw {
		env.Logger.Warn("password is not in normalized form, viewers will never be able to unlock this page")
		return password
	}

	env.Logger.Warn("password normalized: lower-cased, trimmed and trailing s removed",
		slog.Int("length", len(normalized)))
	return normalized
}
