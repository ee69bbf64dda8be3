package chunk

import (
	"testing"
)

func TestHeaderRoundTrip(t *testing.T) {
	tests := []struct {
		name  string
		index int
		total int
	}{
		{"First of one", 0, 1},
		{"First of many", 0, 17},
		{"Middle", 8, 17},
		{"Last", 16, 17},
		{"Max total", 0, 65535},
		{"Max index", 65534, 65535},
		{"Index equals max field value", 65535, 65535},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf, err := EncodeHeader(tt.index, tt.total)
			if err != nil {
				t.Fatalf("EncodeHeader(%d, %d) failed: %v", tt.index, tt.total, err)
			}
			if len(buf) != HeaderSize {
				t.Fatalf("header length = %d, expected %d", len(buf), HeaderSize)
			}
			h, ok := DecodeHeader(buf)
			if !ok {
				t.Fatalf("DecodeHeader rejected a valid header")
			}
			if h.Index != tt.index || h.Total != tt.total {
				t.Errorf("round trip = {%d %d}, expected {%d %d}", h.Index, h.Total, tt.index, tt.total)
			}
		})
	}
}

func TestEncodeHeaderRange(t *testing.T) {
	tests := []struct {
		name  string
		index int
		total int
	}{
		{"Index too large", 65536, 1},
		{"Total too large", 0, 65536},
		{"Negative index", -1, 1},
		{"Negative total", 0, -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := EncodeHeader(tt.index, tt.total); err == nil {
				t.Errorf("EncodeHeader(%d, %d) should have failed", tt.index, tt.total)
			}
		})
	}
}

func TestDecodeHeaderShortBuffer(t *testing.T) {
	for _, buf := range [][]byte{nil, {}, {1}, {1, 2}, {1, 2, 3}} {
		if _, ok := DecodeHeader(buf); ok {
			t.Errorf("DecodeHeader accepted a %d-byte buffer", len(buf))
		}
	}
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	payload := []byte("encrypted vault bytes")
	s, err := Encode(3, 7, payload)
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}

	h, got, ok := Decode(s)
	if !ok {
		t.Fatal("Decode rejected a valid chunk string")
	}
	if h.Index != 3 || h.Total != 7 {
		t.Errorf("header = {%d %d}, expected {3 7}", h.Index, h.Total)
	}
	if string(got) != string(payload) {
		t.Errorf("payload = %q, expected %q", got, payload)
	}
}

func TestEncodeEmptyPayload(t *testing.T) {
	s, err := Encode(0, 1, nil)
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	h, payload, ok := Decode(s)
	if !ok {
		t.Fatal("Decode rejected a header-only chunk")
	}
	if h.Index != 0 || h.Total != 1 || len(payload) != 0 {
		t.Errorf("got {%d %d} with %d payload bytes, expected {0 1} and none", h.Index, h.Total, len(payload))
	}
}

func TestDecodeGarbage(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"Empty string", ""},
		{"Not base64", "!!!not base64 at all!!!"},
		{"Base64 but too short", "QUI="}, // "AB"
		{"Random text", "the camera saw a poster"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, _, ok := Decode(tt.input); ok {
				t.Errorf("Decode(%q) should have been rejected", tt.input)
			}
		})
	}
}
