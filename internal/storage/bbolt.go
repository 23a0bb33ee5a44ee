package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/google/uuid"
	bolt "go.etcd.io/bbolt"

	"github.com/illarion/slipper/internal/crypto"
)

// Bucket names
var (
	ConfigBucket = []byte("config") // KDF params, vault id, timestamps
	PagesBucket  = []byte("pages")  // Page entries keyed by name
)

// Config keys
var (
	ConfigVersion  = []byte("version")
	ConfigCreated  = []byte("created")
	ConfigModified = []byte("modified")
	ConfigParams   = []byte("kdf_params")
	ConfigVaultID  = []byte("vault_id")
)

var (
	ErrNotFound       = errors.New("page not found")
	ErrParamsMismatch = errors.New("store was created with different key derivation parameters")
)

const openTimeout = time.Second

// Storage provides BBolt-based storage for slipper
type Storage struct {
	db *bolt.DB
}

// Open opens or creates a slipper database
func Open(path string) (*Storage, error) {
	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: openTimeout})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	return &Storage{db: db}, nil
}

// Close closes the database
func (s *Storage) Close() error {
	return s.db.Close()
}

// Path returns the database file path
func (s *Storage) Path() string {
	return s.db.Path()
}

// Initialize creates the bucket structure for a new store and records params
func (s *Storage) Initialize(params crypto.Params) error {
	paramsJSON, err := json.Marshal(params)
	if err != nil {
		return fmt.Errorf("failed to marshal params: %w", err)
	}

	return s.db.Update(func(tx *bolt.Tx) error {
		for _, bucket := range [][]byte{ConfigBucket, PagesBucket} {
			if _, err := tx.CreateBucketIfNotExists(bucket); err != nil {
				return fmt.Errorf("failed to create bucket %s: %w", bucket, err)
			}
		}

		config := tx.Bucket(ConfigBucket)
		if err := config.Put(ConfigVersion, []byte("1")); err != nil {
			return err
		}
		if err := config.Put(ConfigParams, paramsJSON); err != nil {
			return err
		}

		now := time.Now()
		created, _ := now.MarshalBinary()
		if err := config.Put(ConfigCreated, created); err != nil {
			return err
		}
		return config.Put(ConfigModified, created)
	})
}

// IsInitialized checks if the database has been initialized
func (s *Storage) IsInitialized() (bool, error) {
	var initialized bool
	err := s.db.View(func(tx *bolt.Tx) error {
		config := tx.Bucket(ConfigBucket)
		if config != nil && config.Get(ConfigVersion) != nil {
			initialized = true
		}
		return nil
	})
	return initialized, err
}

// GetParams retrieves the KDF parameters the store was created with
func (s *Storage) GetParams() (crypto.Params, error) {
	var params crypto.Params
	err := s.db.View(func(tx *bolt.Tx) error {
		config := tx.Bucket(ConfigBucket)
		if config == nil {
			return fmt.Errorf("config bucket not found")
		}
		data := config.Get(ConfigParams)
		if data == nil {
			return fmt.Errorf("kdf params not found")
		}
		return json.Unmarshal(data, &params)
	})
	return params, err
}

// CheckParams fails with ErrParamsMismatch unless the stored parameters equal want
func (s *Storage) CheckParams(want crypto.Params) error {
	got, err := s.GetParams()
	if err != nil {
		return err
	}
	if !got.Equal(want) {
		return fmt.Errorf("%w: stored %s/%d iterations/%d bytes", ErrParamsMismatch, got.Hash, got.Iterations, got.Length)
	}
	return nil
}

// UpdateModified updates the last modified timestamp
func (s *Storage) UpdateModified() error {
	return s.db.Update(func(tx *bolt.Tx) error {
		config := tx.Bucket(ConfigBucket)
		modified, _ := time.Now().MarshalBinary()
		return config.Put(ConfigModified, modified)
	})
}

// GetModified retrieves the last modified timestamp
func (s *Storage) GetModified() (time.Time, error) {
	var modified time.Time
	err := s.db.View(func(tx *bolt.Tx) error {
		config := tx.Bucket(ConfigBucket)
		if config == nil {
			return fmt.Errorf("config bucket not found")
		}
		data := config.Get(ConfigModified)
		if data == nil {
			return fmt.Errorf("modified time not found")
		}
		return modified.UnmarshalBinary(data)
	})
	return modified, err
}

// GetVaultID retrieves the vault ID from config bucket
func (s *Storage) GetVaultID() (string, error) {
	var vaultID string
	err := s.db.View(func(tx *bolt.Tx) error {
		config := tx.Bucket(ConfigBucket)
		if config == nil {
			return fmt.Errorf("config bucket not found")
		}
		data := config.Get(ConfigVaultID)
		if data == nil {
			return fmt.Errorf("vault_id not found")
		}
		vaultID = string(data)
		return nil
	})
	return vaultID, err
}

// GetOrCreateVaultID retrieves existing vault ID or generates a new one
func (s *Storage) GetOrCreateVaultID() (string, error) {
	vaultID, err := s.GetVaultID()
	if err == nil {
		return vaultID, nil
	}

	id, err := uuid.NewRandom()
	if err != nil {
		return "", fmt.Errorf("failed to generate vault ID: %w", err)
	}
	vaultID = id.String()

	err = s.db.Update(func(tx *bolt.Tx) error {
		config := tx.Bucket(ConfigBucket)
		return config.Put(ConfigVaultID, []byte(vaultID))
	})
	if err != nil {
		return "", err
	}

	return vaultID, nil
}

// Entry is one authored page
type Entry struct {
	Name      string    `json:"name"`
	CipherHex string    `json:"cipherHex"`
	Size      int       `json:"size"` // Ciphertext bytes
	Hash      string    `json:"hash"` // SHA-256 of the ciphertext
	Created   time.Time `json:"created"`
	Modified  time.Time `json:"modified"`
}

// PutEntry stores or replaces an entry. Created is preserved on replace.
func (s *Storage) PutEntry(entry Entry) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		pages := tx.Bucket(PagesBucket)
		if pages == nil {
			return fmt.Errorf("pages bucket not found")
		}

		if existing := pages.Get([]byte(entry.Name)); existing != nil {
			var prev Entry
			if err := json.Unmarshal(existing, &prev); err == nil {
				entry.Created = prev.Created
			}
		}

		data, err := json.Marshal(entry)
		if err != nil {
			return err
		}
		return pages.Put([]byte(entry.Name), data)
	})
}

// GetEntry returns the entry stored under name
func (s *Storage) GetEntry(name string) (*Entry, error) {
	var entry *Entry
	err := s.db.View(func(tx *bolt.Tx) error {
		pages := tx.Bucket(PagesBucket)
		if pages == nil {
			return fmt.Errorf("pages bucket not found")
		}
		data := pages.Get([]byte(name))
		if data == nil {
			return fmt.Errorf("%w: %s", ErrNotFound, name)
		}
		entry = &Entry{}
		return json.Unmarshal(data, entry)
	})
	return entry, err
}

// DeleteEntry removes the entry stored under name
func (s *Storage) DeleteEntry(name string) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		pages := tx.Bucket(PagesBucket)
		if pages == nil || pages.Get([]byte(name)) == nil {
			return fmt.Errorf("%w: %s", ErrNotFound, name)
		}
		return pages.Delete([]byte(name))
	})
}

// ListEntries returns all entries sorted by name
func (s *Storage) ListEntries() ([]Entry, error) {
	var entries []Entry
	err := s.db.View(func(tx *bolt.Tx) error {
		pages := tx.Bucket(PagesBucket)
		if pages == nil {
			return fmt.Errorf("pages bucket not found")
		}
		return pages.ForEach(func(k, v []byte) error {
			var entry Entry
			if err := json.Unmarshal(v, &entry); err != nil {
				return err
			}
			entries = append(entries, entry)
			return nil
		})
	})
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name < entries[j].Name })
	return entries, err
}

// Compact creates a compacted copy of the database, removing unused space.
// This is useful after deleting pages to reclaim disk space.
func (s *Storage) Compact() error {
	srcPath := s.db.Path()
	tmpPath := srcPath + ".compact"

	dst, err := bolt.Open(tmpPath, 0600, &bolt.Options{Timeout: openTimeout})
	if err != nil {
		return fmt.Errorf("failed to create compact database: %w", err)
	}

	err = s.db.View(func(srcTx *bolt.Tx) error {
		return dst.Update(func(dstTx *bolt.Tx) error {
			return srcTx.ForEach(func(name []byte, srcBucket *bolt.Bucket) error {
				dstBucket, err := dstTx.CreateBucketIfNotExists(name)
				if err != nil {
					return err
				}
				return srcBucket.ForEach(func(k, v []byte) error {
					return dstBucket.Put(k, v)
				})
			})
		})
	})

	if err != nil {
		dst.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("failed to copy data: %w", err)
	}

	if err := dst.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to close compact database: %w", err)
	}

	if err := s.db.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to close source database: %w", err)
	}

	// Atomic replace
	backupPath := srcPath + ".backup"
	if err := os.Rename(srcPath, backupPath); err != nil {
		return fmt.Errorf("failed to backup original: %w", err)
	}
	if err := os.Rename(tmpPath, srcPath); err != nil {
		os.Rename(backupPath, srcPath) // rollback
		return fmt.Errorf("failed to replace database: %w", err)
	}
	os.Remove(backupPath)

	s.db, err = bolt.Open(srcPath, 0600, &bolt.Options{Timeout: openTimeout})
	if err != nil {
		return fmt.Errorf("failed to reopen database: %w", err)
	}

	return nil
}
