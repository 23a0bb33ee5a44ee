package cmd

import (
	"bytes"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/illarion/slipper/internal/clock"
	"github.com/illarion/slipper/internal/config"
	"github.com/illarion/slipper/internal/core"
	"github.com/illarion/slipper/internal/crypto"
	"github.com/illarion/slipper/internal/guess"
)

func testEnv(password string) (*Env, *bytes.Buffer) {
	var out bytes.Buffer
	return &Env{
		Config:   &config.Config{Password: password, StorePath: ".slipper", NoKeyring: true},
		Logger:   slog.New(slog.DiscardHandler),
		Prompter: &core.Prompter{Out: io.Discard},
		Stdin:    strings.NewReader(""),
		Stdout:   &out,
	}, &out
}

// pipedEnv is testEnv with stdin piped and no controlling terminal
func pipedEnv(t *testing.T, password string) *Env {
	t.Helper()
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("Pipe failed: %v", err)
	}
	t.Cleanup(func() {
		r.Close()
		w.Close()
	})

	env, _ := testEnv(password)
	env.Prompter = &core.Prompter{Stdin: r, TTYPath: filepath.Join(t.TempDir(), "no-tty"), Out: io.Discard}
	return env
}

func TestFormatSize(t *testing.T) {
	tests := []struct {
		size int64
		want string
	}{
		{0, "0 bytes"},
		{1023, "1023 bytes"},
		{1024, "1.0 KB"},
		{1536, "1.5 KB"},
		{3 * 1024 * 1024, "3.0 MB"},
	}

	for _, tt := range tests {
		if got := formatSize(tt.size); got != tt.want {
			t.Errorf("formatSize(%d) = %q, want %q", tt.size, got, tt.want)
		}
	}
}

func TestPrintOutputSkipsRepeats(t *testing.T) {
	var buf bytes.Buffer
	out := &printOutput{w: &buf}

	out.SetText(guess.IncorrectMessage)
	out.SetText(guess.IncorrectMessage)
	out.SetText("Congratulations!")

	want := guess.IncorrectMessage + "\nCongratulations!\n"
	if buf.String() != want {
		t.Errorf("output = %q, want %q", buf.String(), want)
	}
}

func TestAuthorPassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
		raw      bool
		want     string
	}{
		{"already normalized", "unlock", false, "unlock"},
		{"normalized", "  Unlocks ", false, "unlock"},
		{"raw keeps input", "Unlocks", true, "Unlocks"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env, _ := testEnv(tt.password)
			if got := authorPassword(env, tt.raw); got != tt.want {
				t.Errorf("authorPassword(%q, %v) = %q, want %q", tt.password, tt.raw, got, tt.want)
			}
		})
	}
}

func TestReadPlaintextStdin(t *testing.T) {
	env, _ := testEnv("pw")
	env.Stdin = strings.NewReader("Congratulations!")

	got, err := readPlaintext(env, "")
	if err != nil {
		t.Fatalf("readPlaintext failed: %v", err)
	}
	if got != "Congratulations!" {
		t.Errorf("readPlaintext = %q", got)
	}
}

func TestReadPlaintextRejectsInvalidUTF8(t *testing.T) {
	env, _ := testEnv("pw")
	env.Stdin = strings.NewReader("caf\xe9")

	if _, err := readPlaintext(env, ""); !errors.Is(err, crypto.ErrInvalidPlaintext) {
		t.Errorf("expected ErrInvalidPlaintext, got %v", err)
	}
}

func TestPasswordWithoutTerminal(t *testing.T) {
	env := pipedEnv(t, "")

	if err := env.Prompter.Check(); !errors.Is(err, core.ErrNoTerminal) {
		t.Errorf("Check: expected ErrNoTerminal, got %v", err)
	}
	if _, err := env.newPassword(); !errors.Is(err, core.ErrNoTerminal) {
		t.Errorf("newPassword: expected ErrNoTerminal, got %v", err)
	}
	if _, err := env.pagePassword(env.Store(), ""); !errors.Is(err, core.ErrNoTerminal) {
		t.Errorf("pagePassword: expected ErrNoTerminal, got %v", err)
	}
}

func TestPasswordFromConfigSkipsPrompt(t *testing.T) {
	env := pipedEnv(t, "unlock")

	got, err := env.newPassword()
	if err != nil {
		t.Fatalf("newPassword failed: %v", err)
	}
	if got != "unlock" {
		t.Errorf("newPassword = %q", got)
	}

	got, err = env.pagePassword(env.Store(), "home")
	if err != nil {
		t.Fatalf("pagePassword failed: %v", err)
	}
	if got != "unlock" {
		t.Errorf("pagePassword = %q", got)
	}
}

func TestPageCipherHexLiteral(t *testing.T) {
	env, _ := testEnv("")
	if got := pageCipherHex(env.Store(), "", "abcd"); got != "abcd" {
		t.Errorf("pageCipherHex = %q", got)
	}
}

func TestLineTarget(t *testing.T) {
	var buf bytes.Buffer
	reg := clock.NewRegistry(lineTarget{w: &buf})
	reg.Render(time.Date(2024, 1, 1, 13, 5, 9, 0, time.UTC))

	if got := buf.String(); !strings.HasPrefix(got, "\r1:05:09 p.m.") {
		t.Errorf("line = %q", got)
	}
}

func TestStaticSource(t *testing.T) {
	var src guess.Source = staticSource("00ff")
	if src.Value() != "00ff" {
		t.Errorf("Value = %q", src.Value())
	}
}
