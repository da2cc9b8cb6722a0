package detwingle_test

import (
	"testing"
	"unicode/utf8"

	"github.com/google/go-cmp/cmp"
	"golang.org/x/text/encoding/charmap"

	"github.com/unisafe/uread/internal/detwingle"
)

func TestFix(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			"ascii",
			"hello, world\n",
			"hello, world\n",
		},
		{
			"raw-windows-1252-quotes",
			"a \x93quoted\x94 word",
			"a “quoted” word",
		},
		{
			"raw-windows-1252-punctuation",
			"wait\x85 it\x92s an em\x97dash",
			"wait… it’s an em—dash",
		},
		{
			"byte-as-codepoint-round-trip",
			"a \xC2\x93quoted\xC2\x94 word\xC2\x85",
			"a “quoted” word…",
		},
		{
			"legitimate-multi-byte-passes-through",
			"œ ₓ ၁ \U00016844",
			"œ ₓ ၁ \U00016844",
		},
		{
			"snowman-stays-snowman",
			"☃☃☃",
			"☃☃☃",
		},
		{
			"mixed-encodings-in-one-chunk",
			"☃☃☃ \x93Some really cursed file\x94 œ ₓ ၁ \U00016844",
			"☃☃☃ “Some really cursed file” œ ₓ ၁ \U00016844",
		},
		{
			"c1-control-sequence-is-kept",
			"a\xC2\x81b",
			"a\xC2\x81b",
		},
		{
			"latin1-accents",
			"caf\xE9 na\xEFve",
			"café naïve",
		},
		{
			"truncated-lead-byte-at-end",
			"abc\xC2",
			"abcÂ",
		},
		{
			"empty",
			"",
			"",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := detwingle.Fix([]byte(tt.input))

			if diff := cmp.Diff(tt.want, string(got)); diff != "" {
				t.Errorf("unexpected output:\n%s", diff)
			}

			if !utf8.Valid(got) {
				t.Errorf("output is not valid UTF-8: %q", got)
			}

			again := detwingle.Fix(got)
			if diff := cmp.Diff(string(got), string(again)); diff != "" {
				t.Errorf("second run changed the output:\n%s", diff)
			}
		})
	}
}

func TestFixAs(t *testing.T) {
	tests := []struct {
		name  string
		cm    *charmap.Charmap
		input string
		want  string
	}{
		{
			"windows-1251-cyrillic",
			charmap.Windows1251,
			"\xEF\xF0\xE8\xE2\xE5\xF2",
			"привет",
		},
		{
			"windows-1251-round-trip-quote",
			charmap.Windows1251,
			"\xC2\x93word\xC2\x94",
			"“word”",
		},
		{
			"iso-8859-1-keeps-c1-controls",
			charmap.ISO8859_1,
			"a\xC2\x93b",
			"a\xC2\x93b",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := detwingle.FixAs([]byte(tt.input), tt.cm)

			if diff := cmp.Diff(tt.want, string(got)); diff != "" {
				t.Errorf("unexpected output:\n%s", diff)
			}

			again := detwingle.FixAs(got, tt.cm)
			if diff := cmp.Diff(string(got), string(again)); diff != "" {
				t.Errorf("second run changed the output:\n%s", diff)
			}
		})
	}
}
