// Package chunk implements the framing shared by the sender and receiver:
// each transferable string is a 4-byte index/total header followed by the
// encrypted payload slice, base64-encoded so it can ride inside a QR code.
package chunk

import (
	"fmt"

	"github.com/cristalhq/base64"
)

// HeaderSize is the length of the binary chunk header in bytes.
const HeaderSize = 4

// MaxCount is the largest value the 16-bit index and total fields can carry.
const MaxCount = 0xFFFF

// Header carries a chunk's position and the declared chunk count of the
// transfer it belongs to. Total is repeated in every chunk so the receiver
// can learn it from whichever chunk it sees first.
type Header struct {
	Index int
	Total int
}

// EncodeHeader writes index and total as consecutive big-endian uint16s.
func EncodeHeader(index, total int) ([]byte, error) {
	if index < 0 || index > MaxCount {
		return nil, fmt.Errorf("chunk index %d out of uint16 range", index)
	}
	if total < 0 || total > MaxCount {
		return nil, fmt.Errorf("chunk total %d out of uint16 range", total)
	}
	return []byte{
		byte(index >> 8), byte(index),
		byte(total >> 8), byte(total),
	}, nil
}

// DecodeHeader reads the first 4 bytes of buf. It reports false when buf is
// too short. It does not check index < total; that is the receiver's call.
func DecodeHeader(buf []byte) (Header, bool) {
	if len(buf) < HeaderSize {
		return Header{}, false
	}
	return Header{
		Index: int(buf[0])<<8 | int(buf[1]),
		Total: int(buf[2])<<8 | int(buf[3]),
	}, true
}

// Encode frames payload with its header and returns the base64 string that
// is rendered into a QR image.
func Encode(index, total int, payload []byte) (string, error) {
	header, err := EncodeHeader(index, total)
	if err != nil {
		return "", err
	}
	buf := make([]byte, 0, HeaderSize+len(payload))
	buf = append(buf, header...)
	buf = append(buf, payload...)
	return base64.StdEncoding.EncodeToString(buf), nil
}

// Decode parses a scanned string back into a header and payload. Camera
// noise routinely produces strings that are not chunks at all, so any
// failure reports false rather than an error.
func Decode(s string) (Header, []byte, bool) {
	buf, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return Header{}, nil, false
	}
	h, ok := DecodeHeader(buf)
	if !ok {
		return Header{}, nil, false
	}
	return h, buf[HeaderSize:], true
}
