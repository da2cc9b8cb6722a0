// Package normalize folds typographic punctuation to ASCII.
package normalize

import (
	"fmt"
	"path/filepath"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
)

// Mode selects how far the normalizer folds text towards ASCII.
type Mode int

const (
	// None keeps the text as is.
	None Mode = iota

	// Smart folds curly quotes and the ellipsis to ASCII and keeps every
	// other character.
	Smart

	// All folds like Smart and then drops every remaining character
	// outside the ASCII range. This mode is lossy.
	All
)

// ParseMode parses a mode name like "smart". The name is case insensitive.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(s) {
	case "none":
		return None, nil
	case "smart":
		return Smart, nil
	case "all":
		return All, nil
	default:
		return None, fmt.Errorf("invalid normalization mode: %q", s)
	}
}

// String implements fmt.Stringer.
func (m Mode) String() string {
	switch m {
	case None:
		return "none"
	case Smart:
		return "smart"
	case All:
		return "all"
	default:
		return fmt.Sprintf("mode(%d)", int(m))
	}
}

// EscapeConfig decides when a folded double quote gets an escape prefix, so
// that a delimited format parser can still tell a data quote apart from a
// field quoting quote.
type EscapeConfig struct {
	// Char is the prefix put before a folded double quote.
	Char string

	// Extensions is the set of file extensions that need the prefix,
	// like ".csv". Leave it empty to disable escaping.
	Extensions []string
}

// DefaultEscapeConfig returns the escape configuration used by default:
// double the quote in .csv files.
func DefaultEscapeConfig() EscapeConfig {
	return EscapeConfig{Char: `"`, Extensions: []string{".csv"}}
}

func (c EscapeConfig) matches(path string) bool {
	if c.Char == "" {
		return false
	}
	ext := filepath.Ext(path)
	for _, e := range c.Extensions {
		if strings.EqualFold(e, ext) {
			return true
		}
	}
	return false
}

var nonASCII = runes.Remove(runes.Predicate(func(r rune) bool {
	return r > unicode.MaxASCII
}))

// Normalizer folds smart punctuation in one read session.
// The replacement table is built once from the mode, the escape
// configuration, and the target path, and never changes afterwards.
type Normalizer struct {
	mode     Mode
	replacer *strings.Replacer
}

// New builds a Normalizer for one target path.
func New(mode Mode, esc EscapeConfig, path string) *Normalizer {
	dq := `"`
	if esc.matches(path) {
		dq = esc.Char + `"`
	}

	return &Normalizer{
		mode: mode,
		replacer: strings.NewReplacer(
			"“", dq,
			"”", dq,
			"‘", "'",
			"’", "'",
			"…", "...",
		),
	}
}

// String normalizes decoded text.
func (n *Normalizer) String(s string) string {
	if n.mode == None {
		return s
	}

	s = n.replacer.Replace(s)

	if n.mode == All {
		s, _, _ = transform.String(nonASCII, s)
	}
	return s
}

// Bytes normalizes UTF-8 bytes without a decode round trip.
func (n *Normalizer) Bytes(b []byte) []byte {
	if n.mode == None {
		return b
	}

	out := []byte(n.replacer.Replace(string(b)))

	if n.mode == All {
		out, _, _ = transform.Bytes(nonASCII, out)
	}
	return out
}
