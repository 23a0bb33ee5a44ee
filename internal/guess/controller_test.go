package guess

import (
	"context"
	"errors"
	"slices"
	"sync"
	"testing"

	"github.com/illarion/slipper/internal/crypto"
)

type staticSource string

func (s staticSource) Value() string { return string(s) }

type recordingOutput struct {
	mu    sync.Mutex
	texts []string
}

func (o *recordingOutput) SetText(text string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.texts = append(o.texts, text)
}

func (o *recordingOutput) Texts() []string {
	o.mu.Lock()
	defer o.mu.Unlock()
	return append([]string(nil), o.texts...)
}

func (o *recordingOutput) Last() string {
	o.mu.Lock()
	defer o.mu.Unlock()
	if len(o.texts) == 0 {
		return ""
	}
	return o.texts[len(o.texts)-1]
}

func sealed(t *testing.T, plaintext, password string) staticSource {
	t.Helper()
	cipherHex, err := crypto.EncryptHex(plaintext, password)
	if err != nil {
		t.Fatalf("EncryptHex failed: %v", err)
	}
	return staticSource(cipherHex)
}

func TestControllerCorrectPasswordWithNormalization(t *testing.T) {
	out := &recordingOutput{}
	c, err := New(sealed(t, "Congratulations!", "unlock"), out)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	defer c.Close()

	if !c.Input("Unlock ") {
		t.Fatal("Input did not start an attempt")
	}
	c.Wait()

	if got := c.LastGuess(); got != "unlock" {
		t.Errorf("LastGuess = %q, want unlock", got)
	}
	if got := out.Texts(); !slices.Equal(got, []string{"Congratulations!"}) {
		t.Errorf("output = %q", got)
	}
}

func TestControllerIncorrectThenCorrect(t *testing.T) {
	out := &recordingOutput{}
	c, err := New(sealed(t, "Congratulations!", "unlock"), out)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	defer c.Close()

	c.Input("unloc")
	c.Wait()
	if got := out.Last(); got != IncorrectMessage {
		t.Errorf("output = %q, want %q", got, IncorrectMessage)
	}

	c.Input("unlock")
	c.Wait()
	if got := out.Texts(); !slices.Equal(got, []string{IncorrectMessage, "Congratulations!"}) {
		t.Errorf("output = %q", got)
	}
}

func TestControllerTrailingS(t *testing.T) {
	out := &recordingOutput{}
	c, err := New(sealed(t, "Congratulations!", "unlock"), out)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	defer c.Close()

	c.Input("unlocks")
	c.Wait()
	if got := out.Last(); got != "Congratulations!" {
		t.Errorf("output = %q", got)
	}
}

func TestControllerDedup(t *testing.T) {
	var mu sync.Mutex
	var results []Result

	out := &recordingOutput{}
	c, err := New(sealed(t, "Congratulations!", "unlock"), out, WithObserver(func(r Result) {
		mu.Lock()
		defer mu.Unlock()
		results = append(results, r)
	}))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	defer c.Close()

	if !c.Input("unlock") {
		t.Fatal("first input did not start an attempt")
	}
	for _, in := range []string{"Unlock", "unlocks ", " UNLOCK"} {
		if c.Input(in) {
			t.Errorf("Input(%q) started an attempt for an unchanged guess", in)
		}
	}
	c.Wait()

	if got := c.Attempts(); got != 1 {
		t.Errorf("Attempts = %d, want 1", got)
	}
	if len(results) != 1 {
		t.Fatalf("got %d results, want 1", len(results))
	}
	r := results[0]
	if r.Seq != 1 || !r.Applied || r.Failure != crypto.FailureNone {
		t.Errorf("result = %+v", r)
	}
}

func TestControllerEmptyGuess(t *testing.T) {
	out := &recordingOutput{}
	c, err := New(sealed(t, "secret", "unlock"), out)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	defer c.Close()

	for _, in := range []string{"", "   ", "s"} {
		if c.Input(in) {
			t.Errorf("Input(%q) started an attempt", in)
		}
	}
	c.Wait()

	if got := c.Attempts(); got != 0 {
		t.Errorf("Attempts = %d, want 0", got)
	}
	if got := out.Texts(); len(got) != 0 {
		t.Errorf("output = %q, want none", got)
	}
}

func TestControllerStaleAttemptNotApplied(t *testing.T) {
	release := make(chan struct{})
	started := make(chan struct{})

	opener := func(ctx context.Context, _ []byte, guess string) (string, error) {
		if guess == "slow" {
			close(started)
			<-release
			return "slow result", nil
		}
		return "fast result", nil
	}

	var mu sync.Mutex
	results := map[uint64]Result{}
	out := &recordingOutput{}
	c, err := New(staticSource("00112233445566778899aabbccddeeff"), out,
		WithOpener(opener),
		WithObserver(func(r Result) {
			mu.Lock()
			defer mu.Unlock()
			results[r.Seq] = r
		}))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	defer c.Close()

	c.Input("slow")
	<-started
	c.Input("fast")

	// let the fast attempt land before releasing the slow one
	waitFor(t, func() bool { return out.Last() == "fast result" })
	close(release)
	c.Wait()

	if got := out.Texts(); !slices.Equal(got, []string{"fast result"}) {
		t.Errorf("output = %q", got)
	}
	mu.Lock()
	defer mu.Unlock()
	if results[1].Applied {
		t.Error("stale attempt was applied")
	}
	if results[1].Plaintext != "slow result" {
		t.Errorf("stale attempt plaintext = %q", results[1].Plaintext)
	}
	if !results[2].Applied {
		t.Error("latest attempt was not applied")
	}
}

func TestControllerFailureKinds(t *testing.T) {
	var mu sync.Mutex
	var failures []crypto.Failure

	observe := WithObserver(func(r Result) {
		mu.Lock()
		defer mu.Unlock()
		failures = append(failures, r.Failure)
	})

	// 15 bytes is valid hex but cannot be CBC output
	short := &recordingOutput{}
	c, err := New(staticSource("000102030405060708090a0b0c0d0e"), short, observe)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	c.Input("anything")
	c.Wait()
	c.Close()
	if got := short.Last(); got != IncorrectMessage {
		t.Errorf("short ciphertext output = %q", got)
	}

	wrong := &recordingOutput{}
	c, err = New(sealed(t, "secret", "unlock"), wrong, observe)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	c.Input("open")
	c.Wait()
	c.Close()
	if got := wrong.Last(); got != IncorrectMessage {
		t.Errorf("wrong password output = %q", got)
	}

	mu.Lock()
	defer mu.Unlock()
	want := []crypto.Failure{crypto.FailureMalformedInput, crypto.FailureAuthentication}
	if !slices.Equal(failures, want) {
		t.Errorf("failures = %v, want %v", failures, want)
	}
}

func TestNewMalformedSource(t *testing.T) {
	for _, src := range []string{"abc", "zz", "not hex at all", "", "   "} {
		_, err := New(staticSource(src), &recordingOutput{})
		if !errors.Is(err, crypto.ErrMalformedInput) {
			t.Errorf("source %q: expected ErrMalformedInput, got %v", src, err)
		}
	}
}

func TestControllerCloseStopsOutput(t *testing.T) {
	release := make(chan struct{})
	opener := func(ctx context.Context, _ []byte, guess string) (string, error) {
		<-release
		return "late", nil
	}

	out := &recordingOutput{}
	c, err := New(staticSource("00"), out, WithOpener(opener))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	if !c.Input("guess") {
		t.Fatal("Input did not start an attempt")
	}
	c.Close()
	close(release)
	c.Wait()

	if c.Input("another") {
		t.Error("Input after Close started an attempt")
	}
	if got := out.Texts(); len(got) != 0 {
		t.Errorf("output after Close = %q", got)
	}
}

func TestControllerWithParams(t *testing.T) {
	params := crypto.DefaultParams
	params.Iterations = 10

	km, err := params.Derive("unlock")
	if err != nil {
		t.Fatalf("Derive failed: %v", err)
	}
	ciphertext, err := crypto.Encrypt("custom schedule", km)
	if err != nil {
		t.Fatalf("Encrypt failed: %v", err)
	}

	out := &recordingOutput{}
	c, err := New(staticSource(crypto.EncodeHex(ciphertext)), out, WithParams(params))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	defer c.Close()

	c.Input("unlock")
	c.Wait()
	if got := out.Last(); got != "custom schedule" {
		t.Errorf("output = %q", got)
	}
	if got := c.CiphertextSize(); got != len(ciphertext) {
		t.Errorf("CiphertextSize = %d, want %d", got, len(ciphertext))
	}
}
