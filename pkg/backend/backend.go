// Package backend defines the cryptographic collaborator both transfer
// controllers call: preparation of a chunked encrypted payload on the
// sending side, and decrypt-and-import of the reassembled chunks on the
// receiving side.
package backend

import "context"

// Prepared is the result of a sender-side preparation call.
type Prepared struct {
	// Chunks is the ordered list of transferable chunk strings.
	Chunks []string
	// Phrase is the verification phrase the receiving operator must enter.
	Phrase string
	// EntryCount is the number of vault entries in the payload.
	EntryCount int
	// Sensitive reports whether the payload includes seed phrases or
	// recovery codes.
	Sensitive bool
}

// Backend is the crypto collaborator. Controllers treat its errors as
// opaque failure reasons and surface them verbatim.
type Backend interface {
	// Prepare encrypts the selected entries and splits the result into
	// chunk strings. secret is the re-entered master secret; it is required
	// when the selection includes a sensitive entry type and ignored
	// otherwise.
	Prepare(ctx context.Context, entryIDs []string, secret []byte) (*Prepared, error)

	// Import decrypts the ordered chunk list using the verification phrase,
	// validates it, stores the entries, and returns how many were imported.
	Import(ctx context.Context, chunks []string, phrase string) (int, error)
}

// Zero overwrites b in place. Secrets and re-auth material are wiped as
// soon as the controllers are done with them.
func Zero(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
