package vault

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEntryTypeSensitive(t *testing.T) {
	tests := []struct {
		entryType EntryType
		sensitive bool
	}{
		{TypeTOTP, false},
		{TypePassword, false},
		{TypeNote, false},
		{TypeSeedPhrase, true},
		{TypeRecoveryCode, true},
	}

	for _, tt := range tests {
		t.Run(string(tt.entryType), func(t *testing.T) {
			assert.Equal(t, tt.sensitive, tt.entryType.Sensitive())
		})
	}
}

func TestAnySensitive(t *testing.T) {
	totpOnly := []Entry{{Type: TypeTOTP}, {Type: TypePassword}}
	assert.False(t, AnySensitive(totpOnly))

	withSeed := append(totpOnly, Entry{Type: TypeSeedPhrase})
	assert.True(t, AnySensitive(withSeed))

	assert.False(t, AnySensitive(nil))
}

func TestStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vault.json")

	s, err := Open(path)
	require.NoError(t, err)
	assert.Empty(t, s.List())

	n, err := s.Import([]Entry{
		{ID: "a", Type: TypeTOTP, Name: "mail", Secret: "s1"},
		{ID: "b", Type: TypeSeedPhrase, Name: "wallet", Secret: "s2"},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	reopened, err := Open(path)
	require.NoError(t, err)
	assert.Len(t, reopened.List(), 2)

	got, err := reopened.Get([]string{"b"})
	require.NoError(t, err)
	assert.Equal(t, "wallet", got[0].Name)

	_, err = reopened.Get([]string{"missing"})
	assert.ErrorIs(t, err, ErrEntryNotFound)
}

func TestStoreImportCollidingIDs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vault.json")
	s, err := Open(path)
	require.NoError(t, err)

	_, err = s.Import([]Entry{{ID: "dup", Type: TypeTOTP, Name: "first", Secret: "x"}})
	require.NoError(t, err)
	_, err = s.Import([]Entry{{ID: "dup", Type: TypeTOTP, Name: "second", Secret: "y"}})
	require.NoError(t, err)

	entries := s.List()
	require.Len(t, entries, 2)
	assert.NotEqual(t, entries[0].ID, entries[1].ID, "colliding import must get a fresh ID")
}

func TestStoreSecretVerification(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vault.json")
	s, err := Open(path)
	require.NoError(t, err)

	assert.ErrorIs(t, s.VerifySecret([]byte("anything")), ErrNoSecretSet)

	require.NoError(t, s.SetSecret([]byte("correct horse")))
	assert.NoError(t, s.VerifySecret([]byte("correct horse")))
	assert.ErrorIs(t, s.VerifySecret([]byte("wrong")), ErrSecretInvalid)
}
