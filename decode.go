package drawtext

// Replacement is the Unicode replacement character, substituted for
// malformed byte sequences and invalid scalar values.
const Replacement rune = '�'

// UTFMax is the maximum number of bytes in an encoded codepoint.
const UTFMax = 4

// Lead/continuation byte masks indexed by sequence length. Index 0 is the
// continuation-byte class (10xxxxxx), indexes 1..4 the lead byte of a
// sequence of that length.
var (
	utfByte = [UTFMax + 1]byte{0x80, 0x00, 0xC0, 0xE0, 0xF0}
	utfMask = [UTFMax + 1]byte{0xC0, 0x80, 0xE0, 0xF0, 0xF8}
	utfMin  = [UTFMax + 1]rune{0, 0, 0x80, 0x800, 0x10000}
	utfMax  = [UTFMax + 1]rune{0x10FFFF, 0x7F, 0x7FF, 0xFFFF, 0x10FFFF}
)

// decodeByte matches c against the length-prefix masks and returns the
// payload bits together with the matched class: 0 for a continuation
// byte, 1..4 for a lead byte of that sequence length, UTFMax+1 if c
// matches no class.
func decodeByte(c byte) (rune, int) {
	for i := 0; i < UTFMax+1; i++ {
		if c&utfMask[i] == utfByte[i] {
			return rune(c &^ utfMask[i]), i
		}
	}
	return 0, UTFMax + 1
}

// DecodeRune decodes the first codepoint in b, reading at most UTFMax
// bytes, and returns the codepoint along with the number of bytes
// consumed.
//
// Malformed input never fails: an invalid lead byte consumes one byte
// and yields Replacement; a bad continuation byte consumes the bytes
// examined so far and yields Replacement; an overlong encoding,
// out-of-range scalar, or UTF-16 surrogate yields Replacement while
// preserving the consumed length of the original sequence, so a scanner
// still advances past it.
//
// A size of 0 (with a non-empty b) means the sequence is truncated:
// more input is needed to decode it. This is not an error condition.
//
// DecodeRune is a pure function with no shared state.
func DecodeRune(b []byte) (r rune, size int) {
	if len(b) == 0 {
		return Replacement, 0
	}
	u, want := decodeByte(b[0])
	if want < 1 || want > UTFMax {
		return Replacement, 1
	}
	got := 1
	for ; got < len(b) && got < want; got++ {
		bits, class := decodeByte(b[got])
		if class != 0 {
			return Replacement, got
		}
		u = u<<6 | bits
	}
	if got < want {
		// Truncated sequence: more input needed.
		return Replacement, 0
	}
	if u < utfMin[want] || u > utfMax[want] || (u >= 0xD800 && u <= 0xDFFF) {
		u = Replacement
	}
	return u, want
}
