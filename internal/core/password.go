package core

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/illarion/slipper/internal/crypto"
	"golang.org/x/term"
)

const ttyPath = "/dev/tty"

var (
	ErrPasswordMismatch = errors.New("passwords do not match")
	ErrNoTerminal       = errors.New("no terminal to read a password from (set SLIPPER_PASSWORD)")
)

// Prompter reads passwords without echo. When Stdin is not a terminal, as
// when plaintext is piped in, it prompts on the controlling terminal instead.
type Prompter struct {
	Stdin   *os.File
	TTYPath string
	Out     io.Writer
}

// NewPrompter returns a Prompter on the process stdin and stderr
func NewPrompter() *Prompter {
	return &Prompter{Stdin: os.Stdin, TTYPath: ttyPath, Out: os.Stderr}
}

// IsTerminal reports whether Stdin is an interactive terminal
func (p *Prompter) IsTerminal() bool {
	return p.Stdin != nil && term.IsTerminal(int(p.Stdin.Fd()))
}

// terminal returns the file to prompt on and a func releasing it
func (p *Prompter) terminal() (*os.File, func(), error) {
	if p.IsTerminal() {
		return p.Stdin, func() {}, nil
	}
	if p.TTYPath == "" {
		return nil, nil, ErrNoTerminal
	}

	tty, err := os.OpenFile(p.TTYPath, os.O_RDWR, 0)
	if err != nil {
		return nil, nil, ErrNoTerminal
	}
	if !term.IsTerminal(int(tty.Fd())) {
		tty.Close()
		return nil, nil, ErrNoTerminal
	}
	return tty, func() { tty.Close() }, nil
}

// Check reports ErrNoTerminal when there is no terminal to prompt on
func (p *Prompter) Check() error {
	_, release, err := p.terminal()
	if err != nil {
		return err
	}
	release()
	return nil
}

// ReadPassword reads a password from the terminal without echoing
func (p *Prompter) ReadPassword(prompt string) ([]byte, error) {
	f, release, err := p.terminal()
	if err != nil {
		return nil, err
	}
	defer release()

	fmt.Fprint(p.Out, prompt)
	password, err := term.ReadPassword(int(f.Fd()))
	fmt.Fprintln(p.Out)

	if err != nil {
		return nil, fmt.Errorf("failed to read password: %w", err)
	}
	return password, nil
}

// ReadPasswordConfirm reads a password twice and ensures they match
func (p *Prompter) ReadPasswordConfirm() ([]byte, error) {
	password1, err := p.ReadPassword("Enter password: ")
	if err != nil {
		return nil, err
	}
	defer crypto.ClearBytes(password1)

	password2, err := p.ReadPassword("Confirm password: ")
	if err != nil {
		return nil, err
	}
	defer crypto.ClearBytes(password2)

	if !crypto.ConstantTimeCompare(password1, password2) {
		return nil, ErrPasswordMismatch
	}

	result := make([]byte, len(password1))
	copy(result, password1)
	return result, nil
}
