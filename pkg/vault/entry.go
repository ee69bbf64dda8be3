// Package vault defines the entry model the transfer flows operate on and a
// small JSON file store backing the CLI.
package vault

// EntryType categorizes a vault entry.
type EntryType string

const (
	TypeTOTP         EntryType = "totp"
	TypePassword     EntryType = "password"
	TypeNote         EntryType = "note"
	TypeSeedPhrase   EntryType = "seed_phrase"
	TypeRecoveryCode EntryType = "recovery_code"
)

// Sensitive reports whether entries of this type require re-authentication
// before they may be included in a transfer.
func (t EntryType) Sensitive() bool {
	return t == TypeSeedPhrase || t == TypeRecoveryCode
}

// Entry is one vault item. Secret holds the encrypted-at-rest material as
// the surrounding application stored it; this subsystem moves it verbatim.
type Entry struct {
	ID     string    `json:"id"`
	Type   EntryType `json:"type"`
	Name   string    `json:"name"`
	Issuer string    `json:"issuer,omitempty"`
	Secret string    `json:"secret"`
}

// AnySensitive reports whether at least one entry is of a sensitive type.
func AnySensitive(entries []Entry) bool {
	for _, e := range entries {
		if e.Type.Sensitive() {
			return true
		}
	}
	return false
}
