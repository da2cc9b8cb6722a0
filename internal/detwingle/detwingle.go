// Package detwingle repairs byte sequences that mix UTF-8 with legacy
// single byte codepage text, and reverses the round trip corruption where
// codepage punctuation in 0x80-0x9F was re-encoded byte-as-codepoint into
// two byte UTF-8 sequences.
package detwingle

import (
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

// Fix is FixAs with the Windows-1252 codepage.
func Fix(b []byte) []byte {
	return FixAs(b, charmap.Windows1252)
}

// FixAs repairs one chunk of bytes using the given single byte codepage.
//
// Valid UTF-8 sequences pass through untouched, except the two byte
// sequences 0xC2 0x80-0x9F: legitimate UTF-8 never encodes that C1 control
// range in text, so they are read back as codepage punctuation. Any byte
// that is not part of a valid UTF-8 sequence is decoded under the codepage
// and re-encoded as UTF-8.
//
// The result is always valid UTF-8, and running FixAs on its own output
// returns it unchanged. The repair carries no state between calls, so it is
// safe to apply chunk by chunk.
func FixAs(b []byte, cm *charmap.Charmap) []byte {
	out := make([]byte, 0, len(b))
	var buf [utf8.UTFMax]byte

	for i := 0; i < len(b); {
		c := b[i]

		if c < utf8.RuneSelf {
			out = append(out, c)
			i++
			continue
		}

		if c == 0xC2 && i+1 < len(b) && b[i+1] >= 0x80 && b[i+1] <= 0x9F {
			if r := cm.DecodeByte(b[i+1]); r != utf8.RuneError {
				n := utf8.EncodeRune(buf[:], r)
				out = append(out, buf[:n]...)
				i += 2
				continue
			}
		}

		if _, size := utf8.DecodeRune(b[i:]); size > 1 {
			out = append(out, b[i:i+size]...)
			i += size
			continue
		}

		r := cm.DecodeByte(c)
		n := utf8.EncodeRune(buf[:], r)
		out = append(out, buf[:n]...)
		i++
	}

	return out
}
