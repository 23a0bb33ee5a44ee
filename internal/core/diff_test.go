package core

import (
	"context"
	"strings"
	"testing"
)

func TestIsText(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		want bool
	}{
		{"empty", nil, true},
		{"ascii", []byte("hello\nworld\n"), true},
		{"utf8", []byte("καλημέρα"), true},
		{"nul", []byte("a\x00b"), false},
		{"invalid utf8", []byte{0xff, 0xfe, 'a'}, false},
		{"control heavy", []byte("\x01\x02\x03\x04abc"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsText(tt.data); got != tt.want {
				t.Errorf("IsText(%q) = %v, want %v", tt.data, got, tt.want)
			}
		})
	}
}

func TestIsTextCutRune(t *testing.T) {
	data := []byte(strings.Repeat("a", textSampleSize-1) + "é")
	if !IsText(data) {
		t.Error("rune split by the sample boundary should still be text")
	}
}

func TestUnifiedDiff(t *testing.T) {
	if got := UnifiedDiff("home", []byte("same\n"), []byte("same\n")); got != "" {
		t.Errorf("identical content produced diff %q", got)
	}

	got := UnifiedDiff("home", []byte("one\ntwo\nthree\n"), []byte("one\n2\nthree\n"))
	for _, want := range []string{"--- sealed/home\n", "+++ local/home\n", " one\n", "-two\n", "+2\n", " three\n"} {
		if !strings.Contains(got, want) {
			t.Errorf("diff missing %q:\n%s", want, got)
		}
	}

	bin := UnifiedDiff("home", []byte("text"), []byte{0, 1, 2})
	if bin != "Binary page home has changed\n" {
		t.Errorf("binary diff = %q", bin)
	}
}

func TestSlipperDiff(t *testing.T) {
	s := newTestSlipper(t)
	ctx := context.Background()

	if _, err := s.Seal(ctx, "home", "hello\nworld\n", "pw"); err != nil {
		t.Fatalf("Seal failed: %v", err)
	}

	got, err := s.Diff(ctx, "home", "pw", []byte("hello\nworld\n"))
	if err != nil {
		t.Fatalf("Diff failed: %v", err)
	}
	if got != "" {
		t.Errorf("expected no diff, got %q", got)
	}

	got, err = s.Diff(ctx, "home", "pw", []byte("hello\nthere\n"))
	if err != nil {
		t.Fatalf("Diff failed: %v", err)
	}
	if !strings.Contains(got, "-world") || !strings.Contains(got, "+there") {
		t.Errorf("unexpected diff:\n%s", got)
	}

	if _, err := s.Diff(ctx, "home", "nope", nil); err == nil {
		t.Error("expected error for wrong password")
	}
}
