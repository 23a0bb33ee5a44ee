package core

import (
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path"
	"strings"
	"time"

	"github.com/illarion/slipper/internal/crypto"
	"github.com/illarion/slipper/internal/guess"
	"github.com/illarion/slipper/internal/storage"
)

const (
	StoreFile = ".slipper"
)

var (
	ErrNotInitialized = errors.New("slipper store not initialized")
	ErrAlreadyExists  = errors.New("slipper store already exists")
	ErrWrongPassword  = errors.New(guess.IncorrectMessage)
	ErrInvalidName    = errors.New("invalid page name")
	ErrNoMatches      = errors.New("no pages match the specified patterns")
)

// Slipper manages a store of sealed pages
type Slipper struct {
	path   string
	params crypto.Params
	logger *slog.Logger
}

// New creates a Slipper for the store file at path
func New(path string, logger *slog.Logger) *Slipper {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Slipper{
		path:   path,
		params: crypto.DefaultParams,
		logger: logger,
	}
}

// Path returns the store file path
func (s *Slipper) Path() string {
	return s.path
}

// SealResult describes a Seal call
type SealResult struct {
	Entry     storage.Entry
	Unchanged bool // the page already held this exact ciphertext
}

// StatusInfo summarizes a store
type StatusInfo struct {
	Pages    []storage.Entry
	Params   crypto.Params
	Modified time.Time
	Bytes    int
}

// Init creates a new store
func (s *Slipper) Init() error {
	if _, err := os.Stat(s.path); err == nil {
		return ErrAlreadyExists
	}

	db, err := storage.Open(s.path)
	if err != nil {
		return fmt.Errorf("failed to create database: %w", err)
	}
	defer db.Close()

	if err := db.Initialize(s.params); err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}

	s.logger.Debug("store initialized", slog.String("path", s.path))
	return nil
}

// open opens an existing store and checks its parameters
func (s *Slipper) open() (*storage.Storage, error) {
	if _, err := os.Stat(s.path); err != nil {
		return nil, ErrNotInitialized
	}

	db, err := storage.Open(s.path)
	if err != nil {
		return nil, err
	}

	initialized, err := db.IsInitialized()
	if err != nil || !initialized {
		db.Close()
		return nil, ErrNotInitialized
	}

	if err := db.CheckParams(s.params); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

// ValidateName checks that name can be used as a page name
func ValidateName(name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("%w: empty", ErrInvalidName)
	}
	if strings.ContainsAny(name, "*?[\\") {
		return fmt.Errorf("%w: %q contains pattern characters", ErrInvalidName, name)
	}
	return nil
}

// Seal encrypts plaintext with password and stores it under name. The
// password is used as given; callers normalize it first when pages should
// accept the forgiving guesses viewers type.
func (s *Slipper) Seal(ctx context.Context, name, plaintext, password string) (*SealResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := ValidateName(name); err != nil {
		return nil, err
	}

	db, err := s.open()
	if err != nil {
		return nil, err
	}
	defer db.Close()

	km, err := s.params.Derive(password)
	if err != nil {
		return nil, err
	}
	defer km.Destroy()

	ciphertext, err := crypto.Encrypt(plaintext, km)
	if err != nil {
		return nil, fmt.Errorf("failed to encrypt %s: %w", name, err)
	}
	hash := sha256.Sum256(ciphertext)
	hashStr := crypto.EncodeHex(hash[:])

	now := time.Now()
	entry := storage.Entry{
		Name:      name,
		CipherHex: crypto.EncodeHex(ciphertext),
		Size:      len(ciphertext),
		Hash:      hashStr,
		Created:   now,
		Modified:  now,
	}

	if existing, err := db.GetEntry(name); err == nil && existing.Hash == hashStr {
		s.logger.Debug("page unchanged", slog.String("name", name))
		return &SealResult{Entry: *existing, Unchanged: true}, nil
	}

	if err := db.PutEntry(entry); err != nil {
		return nil, fmt.Errorf("failed to store %s: %w", name, err)
	}
	if err := db.UpdateModified(); err != nil {
		s.logger.Warn("failed to update modification time", slog.Any("error", err))
	}

	stored, err := db.GetEntry(name)
	if err != nil {
		return nil, err
	}
	s.logger.Debug("page sealed", slog.String("name", name), slog.Int("bytes", stored.Size))
	return &SealResult{Entry: *stored}, nil
}

// Get returns the stored page name
func (s *Slipper) Get(name string) (*storage.Entry, error) {
	db, err := s.open()
	if err != nil {
		return nil, err
	}
	defer db.Close()

	return db.GetEntry(name)
}

// Reveal decrypts page name with a viewer guess. The guess is normalized
// exactly like the page does it. An authentication failure returns
// ErrWrongPassword wrapping crypto.ErrAuthFailed; a malformed page returns
// the crypto error unchanged.
func (s *Slipper) Reveal(ctx context.Context, name, password string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	entry, err := s.Get(name)
	if err != nil {
		return "", err
	}
	return RevealHex(entry.CipherHex, password, s.params)
}

// RevealHex decrypts a page ciphertext with a viewer guess
func RevealHex(cipherHex, password string, params crypto.Params) (string, error) {
	ciphertext, err := crypto.DecodeHex(cipherHex)
	if err != nil {
		return "", err
	}

	km, err := params.Derive(guess.Normalize(password))
	if err != nil {
		return "", err
	}
	defer km.Destroy()

	plaintext, err := crypto.Decrypt(ciphertext, km)
	if crypto.Classify(err) == crypto.FailureAuthentication {
		return "", fmt.Errorf("%w: %w", ErrWrongPassword, err)
	}
	if err != nil {
		return "", err
	}
	return plaintext, nil
}

// VerifyPassword checks that password opens page name
func (s *Slipper) VerifyPassword(name, password string) error {
	_, err := s.Reveal(context.Background(), name, password)
	return err
}

// List returns all stored pages sorted by name
func (s *Slipper) List(ctx context.Context) ([]storage.Entry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	db, err := s.open()
	if err != nil {
		return nil, err
	}
	defer db.Close()

	return db.ListEntries()
}

// Status summarizes the store without needing any password
func (s *Slipper) Status(ctx context.Context) (*StatusInfo, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	db, err := s.open()
	if err != nil {
		return nil, err
	}
	defer db.Close()

	pages, err := db.ListEntries()
	if err != nil {
		return nil, err
	}
	params, err := db.GetParams()
	if err != nil {
		return nil, err
	}
	modified, err := db.GetModified()
	if err != nil {
		return nil, err
	}

	info := &StatusInfo{Pages: pages, Params: params, Modified: modified}
	for _, p := range pages {
		info.Bytes += p.Size
	}
	return info, nil
}

// Remove deletes every page matching one of patterns (path.Match syntax) and
// returns the removed names
func (s *Slipper) Remove(ctx context.Context, patterns []string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	db, err := s.open()
	if err != nil {
		return nil, err
	}
	defer db.Close()

	entries, err := db.ListEntries()
	if err != nil {
		return nil, err
	}

	matched, err := filterByPatterns(entries, patterns)
	if err != nil {
		return nil, err
	}
	if len(matched) == 0 {
		return nil, ErrNoMatches
	}

	var removed []string
	for _, name := range matched {
		if err := ctx.Err(); err != nil {
			return removed, err
		}
		if err := db.DeleteEntry(name); err != nil {
			return removed, fmt.Errorf("failed to remove %s: %w", name, err)
		}
		removed = append(removed, name)
	}

	if err := db.UpdateModified(); err != nil {
		s.logger.Warn("failed to update modification time", slog.Any("error", err))
	}
	return removed, nil
}

func filterByPatterns(entries []storage.Entry, patterns []string) ([]string, error) {
	var names []string
	for _, e := range entries {
		for _, p := range patterns {
			ok, err := path.Match(p, e.Name)
			if err != nil {
				return nil, fmt.Errorf("invalid pattern %s: %w", p, err)
			}
			if ok {
				names = append(names, e.Name)
				break
			}
		}
	}
	return names, nil
}

// Compact compacts the store to reclaim unused space
func (s *Slipper) Compact() error {
	db, err := s.open()
	if err != nil {
		return err
	}
	defer db.Close()

	return db.Compact()
}

// GetVaultID retrieves the store ID used to scope keyring entries
func (s *Slipper) GetVaultID() (string, error) {
	db, err := s.open()
	if err != nil {
		return "", err
	}
	defer db.Close()

	return db.GetVaultID()
}

// GetOrCreateVaultID retrieves the store ID, creating it on first use
func (s *Slipper) GetOrCreateVaultID() (string, error) {
	db, err := s.open()
	if err != nil {
		return "", err
	}
	defer db.Close()

	return db.GetOrCreateVaultID()
}
