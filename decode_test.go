package drawtext

import (
	"testing"
	"unicode/utf8"
)

func TestDecodeRune(t *testing.T) {
	tests := []struct {
		name string
		in   []byte
		r    rune
		size int
	}{
		{"ascii", []byte{0x41}, 0x41, 1},
		{"two byte", []byte{0xC3, 0xA9}, 0xE9, 2}, // é
		{"three byte", []byte{0xE2, 0x82, 0xAC}, 0x20AC, 3}, // €
		{"four byte", []byte{0xF0, 0x9F, 0x98, 0x80}, 0x1F600, 4},
		{"invalid lead", []byte{0xFF, 0x41}, Replacement, 1},
		{"lone continuation", []byte{0x80}, Replacement, 1},
		{"bad continuation", []byte{0xE2, 0x41, 0x41}, Replacement, 1},
		{"bad second continuation", []byte{0xE2, 0x82, 0x41}, Replacement, 2},
		{"truncated at end", []byte{0xE2, 0x82}, Replacement, 0},
		{"truncated lead only", []byte{0xF0}, Replacement, 0},
		{"surrogate", []byte{0xED, 0xA0, 0x80}, Replacement, 3},
		{"overlong", []byte{0xC0, 0x80}, Replacement, 2},
		{"out of range", []byte{0xF4, 0x90, 0x80, 0x80}, Replacement, 4},
		{"empty", nil, Replacement, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, size := DecodeRune(tt.in)
			if r != tt.r || size != tt.size {
				t.Errorf("DecodeRune(% X) = (%#x, %d), want (%#x, %d)",
					tt.in, r, size, tt.r, tt.size)
			}
		})
	}
}

// Valid UTF-8 must round-trip: encoding a scalar with the standard
// library and decoding it again yields the same codepoint and length.
func TestDecodeRuneRoundTrip(t *testing.T) {
	samples := []rune{
		0x00, 0x41, 0x7F, // 1 byte
		0x80, 0x3B1, 0x7FF, // 2 bytes
		0x800, 0x20AC, 0xD7FF, 0xE000, 0xFFFD, // 3 bytes
		0x10000, 0x1F600, 0x10FFFF, // 4 bytes
	}
	var buf [UTFMax]byte
	for _, want := range samples {
		n := utf8.EncodeRune(buf[:], want)
		r, size := DecodeRune(buf[:n])
		if r != want || size != n {
			t.Errorf("round trip %#x: got (%#x, %d), want (%#x, %d)", want, r, size, want, n)
		}
	}
}

// Decoding only looks at the first codepoint regardless of what follows.
func TestDecodeRuneTrailingBytes(t *testing.T) {
	r, size := DecodeRune([]byte("€abc"))
	if r != 0x20AC || size != 3 {
		t.Fatalf("got (%#x, %d), want (0x20ac, 3)", r, size)
	}
}
