package uread

import (
	"bufio"
	"bytes"
	"io"
	"strings"

	"github.com/unisafe/uread/internal/repair"
	"github.com/unisafe/uread/internal/ureaderr"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Stream is a read-only, forward-only text stream over a repaired chunk
// sequence. It satisfies io.ReadCloser; writing and seeking fail with
// ErrNotSupported.
//
// A Stream keeps at most one repaired line buffered, so arbitrarily large
// files can be consumed without holding the repaired content in memory.
// A Stream must not be shared between goroutines.
type Stream struct {
	name string
	src  io.Reader
	rep  repair.Repairer

	lines *bufio.Reader

	pending   []byte
	first     bool
	exhausted bool
	closed    bool

	line string
	err  error
}

func newStream(r io.Reader, name string, rep repair.Repairer) *Stream {
	return &Stream{
		name:  name,
		src:   r,
		rep:   rep,
		lines: bufio.NewReader(r),
		first: true,
	}
}

// Name returns the name the Stream was opened with.
func (s *Stream) Name() string {
	return s.name
}

// Closed reports whether Close has been called.
func (s *Stream) Closed() bool {
	return s.closed
}

// pull reads the next raw line from the source, repairs it, and leaves it
// in the lookahead buffer. On end of input it marks the Stream exhausted.
func (s *Stream) pull() error {
	chunk, err := s.lines.ReadBytes('\n')
	if err == io.EOF {
		s.exhausted = true
	} else if err != nil {
		return err
	}

	if s.first {
		chunk = bytes.TrimPrefix(chunk, utf8BOM)
		s.first = false
	}

	if len(chunk) > 0 {
		s.pending = s.rep.Chunk(chunk)
	}
	return nil
}

// Read reads up to len(p) bytes of repaired UTF-8 text.
// It pulls at most one new line from the source per call, apart from lines
// that normalization emptied out, and returns io.EOF exactly once at end of
// input.
func (s *Stream) Read(p []byte) (int, error) {
	if s.closed {
		return 0, ureaderr.New(ErrClosed, nil, "uread %s: read", s.name)
	}

	for len(s.pending) == 0 {
		if s.exhausted {
			return 0, io.EOF
		}
		if err := s.pull(); err != nil {
			return 0, err
		}
	}

	n := copy(p, s.pending)
	s.pending = s.pending[n:]
	return n, nil
}

// ReadLine returns the next line of repaired text, including its line
// terminator if the source has one. At end of input it returns "" with
// io.EOF.
func (s *Stream) ReadLine() (string, error) {
	if s.closed {
		return "", ureaderr.New(ErrClosed, nil, "uread %s: readline", s.name)
	}

	var sb strings.Builder
	for {
		if len(s.pending) == 0 {
			if s.exhausted {
				if sb.Len() == 0 {
					return "", io.EOF
				}
				return sb.String(), nil
			}
			if err := s.pull(); err != nil {
				return sb.String(), err
			}
			continue
		}

		if i := bytes.IndexByte(s.pending, '\n'); i >= 0 {
			sb.Write(s.pending[:i+1])
			s.pending = s.pending[i+1:]
			return sb.String(), nil
		}

		sb.Write(s.pending)
		s.pending = nil
	}
}

// ReadAll reads the whole remaining stream as one string.
func (s *Stream) ReadAll() (string, error) {
	b, err := io.ReadAll(s)
	return string(b), err
}

// Scan reads the next line for Text. It returns false at end of input or on
// error; use Err to tell the two apart.
func (s *Stream) Scan() bool {
	line, err := s.ReadLine()
	if err == io.EOF {
		return false
	}
	if err != nil {
		s.err = err
		return false
	}

	line = strings.TrimSuffix(line, "\n")
	s.line = strings.TrimSuffix(line, "\r")
	return true
}

// Text returns the line read by the last call to Scan, without its line
// terminator.
func (s *Stream) Text() string {
	return s.line
}

// Err returns the first error hit by Scan, if any. End of input is not an
// error.
func (s *Stream) Err() error {
	return s.err
}

// Write always fails: a Stream is read-only.
func (s *Stream) Write(p []byte) (int, error) {
	return 0, ureaderr.New(ErrNotSupported, nil, "uread %s: write on a read-only stream", s.name)
}

// Seek always fails: a Stream is forward-only.
func (s *Stream) Seek(offset int64, whence int) (int64, error) {
	return 0, ureaderr.New(ErrNotSupported, nil, "uread %s: seek on a forward-only stream", s.name)
}

// Close releases the underlying source if it is an io.Closer.
// Closing an already closed Stream is a no-op.
func (s *Stream) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	s.pending = nil

	if c, ok := s.src.(io.Closer); ok {
		return c.Close()
	}
	return nil
}
