package guess

import (
	"testing"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"sesame", "sesame"},
		{"Sesame", "sesame"},
		{"sesames", "sesame"},
		{"SESAMES", "sesame"},
		{"  Unlock ", "unlock"},
		{"Unlock ", "unlock"},
		{"unlocks", "unlock"},
		{"unlocks  ", "unlock"},
		{"\tpass phrase\n", "pass phrase"},
		{"\ufeffunlock", "unlock"},
		{"\u00a0unlock\u2003", "unlock"},
		{"", ""},
		{"   ", ""},
		{"s", ""},
		{"S", ""},
		{"sa", "sa"},
		{"ΟΔΟΣ", "οδος"},
		// every trailing s goes, not just one
		{"glass", "gla"},
		{"abc s", "abc"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := Normalize(tt.in); got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestNormalizePlural(t *testing.T) {
	if got := Normalize("Sesame"); got != "sesame" {
		t.Errorf("Normalize(Sesame) = %q", got)
	}
	if Normalize("Sesame") != Normalize("sesame") {
		t.Error("case should not matter")
	}
	if Normalize("sesame") != Normalize("sesames") {
		t.Error("a trailing s should not matter")
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{
		"", "s", "ss", "sss", "bass", "glass ", "abc s", "abc s s",
		"Sesames", " S ", "x\u00a0s", "ΣΑΣs", "İstanbul", "Straße",
		"unlock", "UNLOCKS", "\ufeffs\ufeff", "mixed Case sS",
	}
	for _, in := range inputs {
		once := Normalize(in)
		if twice := Normalize(once); twice != once {
			t.Errorf("Normalize not idempotent for %q: %q then %q", in, once, twice)
		}
	}
}
