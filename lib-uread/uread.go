// Package uread reads text files of unknown or internally inconsistent byte
// encoding as a clean, line buffered UTF-8 text stream.
//
// Each line is classified and repaired on its own: legacy single byte
// codepage text is converted to UTF-8, the well known mojibake where
// codepage punctuation went through a byte-as-codepoint re-encoding is
// reversed, and typographic punctuation can be folded to ASCII. The caller
// always sees valid UTF-8, whatever the file contains.
package uread

import (
	"io"
	"os"

	"github.com/unisafe/uread/internal/normalize"
	"github.com/unisafe/uread/internal/repair"
)

// Mode selects how far typographic punctuation is folded towards ASCII.
type Mode = normalize.Mode

const (
	// ModeNone keeps the text as is, apart from encoding repair.
	ModeNone = normalize.None

	// ModeSmart folds curly quotes and the ellipsis to ASCII and keeps
	// every other character. This is the default.
	ModeSmart = normalize.Smart

	// ModeAll folds like ModeSmart and then drops every remaining
	// character outside the ASCII range. This mode is lossy.
	ModeAll = normalize.All
)

// ParseMode parses a mode name like "smart". The name is case insensitive.
func ParseMode(s string) (Mode, error) {
	return normalize.ParseMode(s)
}

type config struct {
	mode Mode
	esc  normalize.EscapeConfig
}

// Option configures Open and NewStream.
type Option func(*config)

// WithMode sets the normalization mode. The default is ModeSmart.
func WithMode(m Mode) Option {
	return func(c *config) { c.mode = m }
}

// WithEscapeExtensions replaces the set of file extensions whose folded
// double quotes get an escape prefix, so that a delimited format parser can
// still tell a data quote apart from a field quoting quote.
// The default set is {".csv"}.
func WithEscapeExtensions(exts ...string) Option {
	return func(c *config) { c.esc.Extensions = exts }
}

// WithEscapeChar sets the escape prefix for folded double quotes.
// The default is `"`, which doubles the quote like CSV expects.
func WithEscapeChar(ch string) Option {
	return func(c *config) { c.esc.Char = ch }
}

// WithoutEscape disables quote escaping for every file extension.
func WithoutEscape() Option {
	return func(c *config) { c.esc.Extensions = nil }
}

// Open opens the file at path for reading as a repaired UTF-8 text stream.
// It fails like os.Open does if the file can not be opened, so
// errors.Is(err, fs.ErrNotExist) and friends keep working.
//
// The returned Stream owns the file handle; closing the Stream closes the
// file.
func Open(path string, opts ...Option) (*Stream, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	return NewStream(f, path, opts...), nil
}

// NewStream adapts any byte source into a repaired UTF-8 text stream.
// The name is used for error messages and for the escape extension
// decision; it does not have to name a real file. If r is an io.Closer,
// closing the Stream closes it too.
func NewStream(r io.Reader, name string, opts ...Option) *Stream {
	c := config{
		mode: ModeSmart,
		esc:  normalize.DefaultEscapeConfig(),
	}
	for _, o := range opts {
		o(&c)
	}

	return newStream(r, name, repair.New(normalize.New(c.mode, c.esc, name)))
}
