// Package repair turns one raw byte chunk of unknown encoding into valid,
// optionally ASCII folded, UTF-8.
package repair

import (
	"golang.org/x/text/encoding/unicode"

	"github.com/unisafe/uread/internal/classify"
	"github.com/unisafe/uread/internal/detwingle"
	"github.com/unisafe/uread/internal/normalize"
)

// utf8Confidence is the classification confidence above which a chunk is
// trusted to be clean UTF-8 without running the mojibake repair.
const utf8Confidence = 0.9

// Repairer repairs chunks for one read session.
type Repairer struct {
	norm *normalize.Normalizer
}

// New creates a Repairer that folds punctuation with norm.
func New(norm *normalize.Normalizer) Repairer {
	return Repairer{norm: norm}
}

// Chunk repairs one chunk. It never fails: whatever the input bytes are, the
// result is valid UTF-8, lossy only as a last resort.
//
// Strict ASCII chunks come back byte for byte unchanged. Chunks classified
// as clean UTF-8 only get punctuation folding. Chunks classified as a legacy
// single byte codepage go through mojibake repair with that codepage. For
// everything else the repair assumes the Windows-1252 family and follows
// with a replacing UTF-8 decode so that undecodable runs cannot leak
// through.
func (r Repairer) Chunk(b []byte) []byte {
	if classify.IsASCII(b) {
		return b
	}

	v := classify.Chunk(b)

	if v.IsUTF8() && v.Confidence >= utf8Confidence {
		return r.norm.Bytes(b)
	}

	if cm, ok := v.Charmap(); ok {
		return r.norm.Bytes(detwingle.FixAs(b, cm))
	}

	fixed := detwingle.Fix(b)
	fixed, _ = unicode.UTF8.NewDecoder().Bytes(fixed)
	return r.norm.Bytes(fixed)
}
