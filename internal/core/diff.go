package core

import (
	"bytes"
	"context"
	"crypto/sha256"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/sergi/go-diff/diffmatchpatch"
)

const (
	textSampleSize   = 8192 // bytes inspected by IsText
	textThresholdPct = 10   // max % of control characters in text
)

// IsText reports whether data looks like text: no NUL bytes, valid UTF-8 and
// few control characters in the leading sample
func IsText(data []byte) bool {
	if len(data) == 0 {
		return true
	}
	if bytes.IndexByte(data, 0) != -1 {
		return false
	}

	sample := data[:min(len(data), textSampleSize)]
	if len(data) > textSampleSize {
		// drop a rune cut in half by the sample boundary
		for i := 0; i < utf8.UTFMax-1 && !utf8.Valid(sample); i++ {
			sample = sample[:len(sample)-1]
		}
	}
	if !utf8.Valid(sample) {
		return false
	}

	control := 0
	for _, b := range sample {
		if (b < 32 && b != '\t' && b != '\n' && b != '\r') || b == 127 {
			control++
		}
	}
	return control <= len(sample)*textThresholdPct/100
}

// SameContent reports whether a and b hash to the same SHA-256 digest
func SameContent(a, b []byte) bool {
	ha := sha256.Sum256(a)
	hb := sha256.Sum256(b)
	return ha == hb
}

// UnifiedDiff renders a line diff from the sealed text to the local text.
// An empty string means no differences.
func UnifiedDiff(name string, sealed, local []byte) string {
	if SameContent(sealed, local) {
		return ""
	}
	if !IsText(sealed) || !IsText(local) {
		return fmt.Sprintf("Binary page %s has changed\n", name)
	}

	dmp := diffmatchpatch.New()
	a, b, lines := dmp.DiffLinesToChars(string(sealed), string(local))
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), lines)

	var sb strings.Builder
	fmt.Fprintf(&sb, "--- sealed/%s\n", name)
	fmt.Fprintf(&sb, "+++ local/%s\n", name)
	for _, d := range diffs {
		prefix := " "
		switch d.Type {
		case diffmatchpatch.DiffInsert:
			prefix = "+"
		case diffmatchpatch.DiffDelete:
			prefix = "-"
		}
		for _, line := range splitLines(d.Text) {
			sb.WriteString(prefix)
			sb.WriteString(line)
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}

func splitLines(s string) []string {
	s = strings.TrimSuffix(s, "\n")
	if s == "" {
		return []string{""}
	}
	return strings.Split(s, "\n")
}

// Diff reveals page name with password and compares it with local
func (s *Slipper) Diff(ctx context.Context, name, password string, local []byte) (string, error) {
	plaintext, err := s.Reveal(ctx, name, password)
	if err != nil {
		return "", err
	}
	return UnifiedDiff(name, []byte(plaintext), local), nil
}
