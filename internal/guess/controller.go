package guess

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/illarion/slipper/internal/crypto"
)

// IncorrectMessage is the only failure text a viewer ever sees
const IncorrectMessage = "Password incorrect"

var ErrNoCiphertext = errors.New("no ciphertext on page")

// Source is the host element holding the hex ciphertext
type Source interface {
	Value() string
}

// Output is the host element the controller writes results into
type Output interface {
	SetText(text string)
}

// Opener derives key material from guess and decrypts ciphertext with it
type Opener func(ctx context.Context, ciphertext []byte, guess string) (string, error)

// Result describes one finished attempt
type Result struct {
	Seq       uint64
	Guess     string
	Plaintext string
	Failure   crypto.Failure
	Err       error
	Applied   bool // false when a newer attempt had already been issued
}

// Option configures a Controller
type Option func(*Controller)

// WithObserver registers fn to be called after every attempt finishes
func WithObserver(fn func(Result)) Option {
	return func(c *Controller) {
		c.observer = fn
	}
}

// WithLogger sets the logger used for attempt traces
func WithLogger(logger *slog.Logger) Option {
	return func(c *Controller) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithOpener replaces the derive and decrypt step
func WithOpener(open Opener) Option {
	return func(c *Controller) {
		if open != nil {
			c.open = open
		}
	}
}

// WithParams sets the key derivation parameters used by the default opener
func WithParams(params crypto.Params) Option {
	return func(c *Controller) {
		c.open = ParamsOpener(params)
	}
}

// ParamsOpener returns an Opener deriving key material with params
func ParamsOpener(params crypto.Params) Opener {
	return func(ctx context.Context, ciphertext []byte, guess string) (string, error) {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		km, err := params.Derive(guess)
		if err != nil {
			return "", err
		}
		defer km.Destroy()
		return crypto.Decrypt(ciphertext, km)
	}
}

// Controller owns the page state: the ciphertext, the last normalized guess
// and the output element
type Controller struct {
	ciphertext []byte
	out        Output
	open       Opener
	observer   func(Result)
	logger     *slog.Logger

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	mu       sync.Mutex
	last     string
	seq      uint64
	attempts int
	closed   bool
}

// New reads and decodes the ciphertext from src. A malformed ciphertext is an
// authoring defect and is returned as an error wrapping crypto.ErrMalformedInput.
func New(src Source, out Output, opts ...Option) (*Controller, error) {
	cipherHex := strings.TrimSpace(src.Value())
	if cipherHex == "" {
		return nil, fmt.Errorf("%w: %w", crypto.ErrMalformedInput, ErrNoCiphertext)
	}
	ciphertext, err := crypto.DecodeHex(cipherHex)
	if err != nil {
		return nil, fmt.Errorf("failed to read ciphertext: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	c := &Controller{
		ciphertext: ciphertext,
		out:        out,
		open:       ParamsOpener(crypto.DefaultParams),
		logger:     slog.New(slog.DiscardHandler),
		ctx:        ctx,
		cancel:     cancel,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Input handles one input event carrying the field's full value. It reports
// whether a new attempt was started.
func (c *Controller) Input(raw string) bool {
	guess := Normalize(raw)

	c.mu.Lock()
	if c.closed || guess == c.last {
		c.mu.Unlock()
		return false
	}
	c.last = guess
	c.seq++
	seq := c.seq
	c.attempts++
	c.wg.Add(1)
	c.mu.Unlock()

	go c.attempt(seq, guess)
	return true
}

func (c *Controller) attempt(seq uint64, guess string) {
	defer c.wg.Done()

	plaintext, err := c.open(c.ctx, c.ciphertext, guess)
	res := Result{
		Seq:     seq,
		Guess:   guess,
		Failure: crypto.Classify(err),
		Err:     err,
	}
	if err == nil {
		res.Plaintext = plaintext
	}

	c.mu.Lock()
	if !c.closed && seq == c.seq {
		if err == nil {
			c.out.SetText(plaintext)
		} else {
			c.out.SetText(IncorrectMessage)
		}
		res.Applied = true
	}
	c.mu.Unlock()

	c.logger.Debug("decrypt attempt finished",
		slog.Uint64("seq", seq),
		slog.String("failure", res.Failure.String()),
		slog.Bool("applied", res.Applied))

	if c.observer != nil {
		c.observer(res)
	}
}

// Wait blocks until every started attempt has finished
func (c *Controller) Wait() {
	c.wg.Wait()
}

// Close stops the controller. Attempts still in flight finish but no longer
// write the output, and further input is ignored.
func (c *Controller) Close() {
	c.mu.Lock()
	c.closed = true
	c.mu.Unlock()
	c.cancel()
}

// LastGuess returns the last normalized guess that triggered an attempt
func (c *Controller) LastGuess() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.last
}

// Attempts returns how many attempts have been started
func (c *Controller) Attempts() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.attempts
}

// CiphertextSize returns the length of the decoded ciphertext in bytes
func (c *Controller) CiphertextSize() int {
	return len(c.ciphertext)
}
