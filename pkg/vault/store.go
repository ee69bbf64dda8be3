package vault

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/google/uuid"
	"golang.org/x/crypto/argon2"
)

var (
	ErrEntryNotFound = errors.New("entry not found")
	ErrSecretInvalid = errors.New("re-authentication secret does not match")
	ErrNoSecretSet   = errors.New("vault has no master secret configured")
)

// kdfParams are the argon2id parameters for the stored secret hash.
type kdfParams struct {
	Memory  uint32 `json:"m"`
	Time    uint32 `json:"t"`
	Threads uint8  `json:"p"`
	Salt    []byte `json:"salt"`
}

func defaultKDFParams() kdfParams {
	salt := make([]byte, 32)
	_, _ = rand.Read(salt)
	return kdfParams{Memory: 128 * 1024, Time: 3, Threads: 4, Salt: salt}
}

// vaultFile is the on-disk layout of a vault.
type vaultFile struct {
	KDF        kdfParams `json:"kdf"`
	SecretHash []byte    `json:"secret_hash,omitempty"`
	Entries    []Entry   `json:"entries"`
}

// Store is a JSON file-backed vault. It is the minimal persistence surface
// the two transfer flows need: listing entries for selection, looking up a
// selection by ID, appending imported entries, and verifying the master
// secret for sensitive transfers.
type Store struct {
	path string
	file vaultFile
}

// Open loads the vault at path, creating an empty one if it does not exist.
func Open(path string) (*Store, error) {
	s := &Store{path: path}
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		s.file = vaultFile{KDF: defaultKDFParams()}
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read vault file: %w", err)
	}
	if err := json.Unmarshal(data, &s.file); err != nil {
		return nil, fmt.Errorf("failed to parse vault file: %w", err)
	}
	return s, nil
}

// List returns all entries in the vault.
func (s *Store) List() []Entry {
	out := make([]Entry, len(s.file.Entries))
	copy(out, s.file.Entries)
	return out
}

// Get resolves a set of entry IDs to their entries, failing if any ID is
// unknown.
func (s *Store) Get(ids []string) ([]Entry, error) {
	byID := make(map[string]Entry, len(s.file.Entries))
	for _, e := range s.file.Entries {
		byID[e.ID] = e
	}
	out := make([]Entry, 0, len(ids))
	for _, id := range ids {
		e, ok := byID[id]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrEntryNotFound, id)
		}
		out = append(out, e)
	}
	return out, nil
}

// Import appends entries to the vault, assigning fresh IDs to entries whose
// ID collides with an existing one, and persists the result. It returns the
// number of entries added.
func (s *Store) Import(entries []Entry) (int, error) {
	existing := make(map[string]bool, len(s.file.Entries))
	for _, e := range s.file.Entries {
		existing[e.ID] = true
	}
	for _, e := range entries {
		if e.ID == "" || existing[e.ID] {
			e.ID = uuid.New().String()
		}
		existing[e.ID] = true
		s.file.Entries = append(s.file.Entries, e)
	}
	if err := s.save(); err != nil {
		return 0, err
	}
	return len(entries), nil
}

// SetSecret stores the argon2id hash of the master secret used for
// re-authentication.
func (s *Store) SetSecret(secret []byte) error {
	p := defaultKDFParams()
	s.file.KDF = p
	s.file.SecretHash = argon2.IDKey(secret, p.Salt, p.Time, p.Memory, p.Threads, 32)
	return s.save()
}

// VerifySecret checks a re-entered master secret against the stored hash in
// constant time.
func (s *Store) VerifySecret(secret []byte) error {
	if len(s.file.SecretHash) == 0 {
		return ErrNoSecretSet
	}
	p := s.file.KDF
	hash := argon2.IDKey(secret, p.Salt, p.Time, p.Memory, p.Threads, 32)
	if subtle.ConstantTimeCompare(hash, s.file.SecretHash) != 1 {
		return ErrSecretInvalid
	}
	return nil
}

func (s *Store) save() error {
	data, err := json.MarshalIndent(&s.file, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode vault file: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0600); err != nil {
		return fmt.Errorf("failed to write vault file: %w", err)
	}
	return nil
}
