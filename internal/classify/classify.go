package classify

import (
	"strings"

	"github.com/saintfish/chardet"
	"golang.org/x/net/html/charset"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
)

// Labels that a Verdict reports beside resolved charset names.
const (
	LabelASCII   = "ascii"
	LabelUTF8    = "utf-8"
	LabelUnknown = "unknown"
)

// Verdict is the result of classifying one chunk of bytes.
//
// Label is "ascii", "utf-8", a canonical charset name such as
// "windows-1252", or "unknown". Confidence is in the range [0, 1].
type Verdict struct {
	Label      string
	Confidence float64

	enc encoding.Encoding
}

// IsASCII reports whether the chunk is strict 7-bit ASCII.
func (v Verdict) IsASCII() bool {
	return v.Label == LabelASCII
}

// IsUTF8 reports whether the chunk was classified as UTF-8.
func (v Verdict) IsUTF8() bool {
	return v.Label == LabelUTF8
}

// Charmap returns the single-byte codepage table for the verdict, if the
// detected charset is one of the recognized legacy single-byte codepages.
// Multi-byte charsets like Shift_JIS are not a Charmap, so they report false
// and leave the caller on the best-effort path.
func (v Verdict) Charmap() (*charmap.Charmap, bool) {
	cm, ok := v.enc.(*charmap.Charmap)
	return cm, ok
}

// IsASCII reports whether b contains only 7-bit bytes.
func IsASCII(b []byte) bool {
	for _, c := range b {
		if c >= 0x80 {
			return false
		}
	}
	return true
}

// Chunk classifies the encoding of one chunk of bytes.
func Chunk(b []byte) Verdict {
	if IsASCII(b) {
		return Verdict{Label: LabelASCII, Confidence: 1}
	}

	results, err := chardet.NewTextDetector().DetectAll(b)
	if err != nil || len(results) == 0 {
		return Verdict{Label: LabelUnknown}
	}

	best := pick(results)

	conf := float64(best.Confidence) / 100
	if conf > 1 {
		conf = 1
	}

	if enc, name := charset.Lookup(strings.ToLower(best.Charset)); enc != nil {
		if name == LabelUTF8 {
			return Verdict{Label: LabelUTF8, Confidence: conf}
		}
		return Verdict{Label: name, Confidence: conf, enc: enc}
	}

	return Verdict{Label: LabelUnknown, Confidence: conf}
}

// pick returns the most confident detection result.
// Misreading clean UTF-8 as a legacy codepage corrupts multi byte sequences
// while the reverse is recoverable, so UTF-8 wins confidence ties.
func pick(results []chardet.Result) chardet.Result {
	best := results[0]
	for _, r := range results[1:] {
		if r.Confidence > best.Confidence {
			best = r
		}
	}
	for _, r := range results {
		if r.Confidence == best.Confidence && strings.EqualFold(r.Charset, "utf-8") {
			return r
		}
	}
	return best
}
