package backend

import (
	"context"
	"crypto/rand"
	"encoding/json"
	"errors"
	"fmt"

	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/chacha20poly1305"

	"github.com/qrvault/qrvault/pkg/chunk"
	"github.com/qrvault/qrvault/pkg/phrase"
	"github.com/qrvault/qrvault/pkg/vault"
)

const (
	// saltSize is the length of the argon2id salt prepended to the payload.
	saltSize = 16

	// DefaultChunkPayloadSize keeps each chunk string small enough for a
	// low-error-correction QR code that still scans from a laptop screen.
	DefaultChunkPayloadSize = 256

	kdfTime    = 3
	kdfMemory  = 64 * 1024
	kdfThreads = 4
)

var (
	ErrNothingSelected = errors.New("no entries selected")
	ErrPayloadTooLarge = errors.New("selection too large for a single transfer")
	ErrBadTransferData = errors.New("transfer data is incomplete or corrupted")
	ErrPhraseMismatch  = errors.New("verification code does not match or data is corrupted")
)

// CryptoBackend is the default Backend. The payload is the JSON entry batch
// sealed with XChaCha20-Poly1305 under an argon2id key derived from the
// verification phrase; salt and nonce travel in front of the ciphertext.
type CryptoBackend struct {
	store       *vault.Store
	payloadSize int
}

// NewCryptoBackend returns a CryptoBackend over the given vault store.
func NewCryptoBackend(store *vault.Store) *CryptoBackend {
	return &CryptoBackend{store: store, payloadSize: DefaultChunkPayloadSize}
}

var _ Backend = (*CryptoBackend)(nil)

// Prepare implements Backend.
func (b *CryptoBackend) Prepare(ctx context.Context, entryIDs []string, secret []byte) (*Prepared, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(entryIDs) == 0 {
		return nil, ErrNothingSelected
	}

	entries, err := b.store.Get(entryIDs)
	if err != nil {
		return nil, err
	}

	sensitive := vault.AnySensitive(entries)
	if sensitive {
		if err := b.store.VerifySecret(secret); err != nil {
			return nil, err
		}
	}

	code, err := phrase.Generate()
	if err != nil {
		return nil, err
	}

	plaintext, err := json.Marshal(entries)
	if err != nil {
		return nil, fmt.Errorf("failed to encode entries: %w", err)
	}
	defer Zero(plaintext)

	blob, err := seal(code, plaintext)
	if err != nil {
		return nil, err
	}

	chunks, err := split(blob, b.payloadSize)
	if err != nil {
		return nil, err
	}

	return &Prepared{
		Chunks:     chunks,
		Phrase:     code,
		EntryCount: len(entries),
		Sensitive:  sensitive,
	}, nil
}

// Import implements Backend.
func (b *CryptoBackend) Import(ctx context.Context, chunks []string, code string) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	blob, err := join(chunks)
	if err != nil {
		return 0, err
	}

	plaintext, err := open(phrase.Normalize(code), blob)
	if err != nil {
		return 0, err
	}
	defer Zero(plaintext)

	var entries []vault.Entry
	if err := json.Unmarshal(plaintext, &entries); err != nil {
		return 0, fmt.Errorf("%w: %v", ErrBadTransferData, err)
	}

	return b.store.Import(entries)
}

// seal derives a key from the phrase and encrypts plaintext. Output layout:
// salt || nonce || ciphertext.
func seal(code string, plaintext []byte) ([]byte, error) {
	salt := make([]byte, saltSize)
	if _, err := rand.Read(salt); err != nil {
		return nil, fmt.Errorf("failed to generate salt: %w", err)
	}

	key := deriveKey(code, salt)
	defer Zero(key)

	aead, err := chacha20poly1305.NewX(key)
	if err != nil {
		return nil, err
	}
	nonce := make([]byte, chacha20poly1305.NonceSizeX)
	if _, err := rand.Read(nonce); err != nil {
		return nil, fmt.Errorf("failed to generate nonce: %w", err)
	}

	out := make([]byte, 0, saltSize+len(nonce)+len(plaintext)+aead.Overhead())
	out = append(out, salt...)
	out = append(out, nonce...)
	return aead.Seal(out, nonce, plaintext, nil), nil
}

// open reverses seal. An authentication failure means the phrase did not
// match or the payload was tampered with; the two are indistinguishable.
func open(code string, blob []byte) ([]byte, error) {
	if len(blob) < saltSize+chacha20poly1305.NonceSizeX {
		return nil, ErrBadTransferData
	}
	salt := blob[:saltSize]
	nonce := blob[saltSize : saltSize+chacha20poly1305.NonceSizeX]
	ciphertext := blob[saltSize+chacha20poly1305.NonceSizeX:]

	key := deriveKey(code, salt)
	defer Zero(key)

	aead, err := chacha20poly1305.NewX(key)
	if err != nil {
		return nil, err
	}
	plaintext, err := aead.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, ErrPhraseMismatch
	}
	return plaintext, nil
}

func deriveKey(code string, salt []byte) []byte {
	return argon2.IDKey([]byte(code), salt, kdfTime, kdfMemory, kdfThreads, chacha20poly1305.KeySize)
}

// split frames blob into chunk strings of at most payloadSize payload bytes.
func split(blob []byte, payloadSize int) ([]string, error) {
	total := (len(blob) + payloadSize - 1) / payloadSize
	if total == 0 {
		total = 1
	}
	if total > chunk.MaxCount {
		return nil, ErrPayloadTooLarge
	}

	chunks := make([]string, 0, total)
	for i := 0; i < total; i++ {
		lo := i * payloadSize
		hi := min(lo+payloadSize, len(blob))
		s, err := chunk.Encode(i, total, blob[lo:hi])
		if err != nil {
			return nil, err
		}
		chunks = append(chunks, s)
	}
	return chunks, nil
}

// join reassembles the blob from ordered chunk strings, checking that the
// framing is internally consistent.
func join(chunks []string) ([]byte, error) {
	if len(chunks) == 0 {
		return nil, ErrBadTransferData
	}
	var blob []byte
	for i, s := range chunks {
		h, payload, ok := chunk.Decode(s)
		if !ok {
			return nil, fmt.Errorf("%w: chunk %d is not decodable", ErrBadTransferData, i)
		}
		if h.Index != i || h.Total != len(chunks) {
			return nil, fmt.Errorf("%w: chunk %d carries header {%d %d}", ErrBadTransferData, i, h.Index, h.Total)
		}
		blob = append(blob, payload...)
	}
	return blob, nil
}
