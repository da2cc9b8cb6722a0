package classify

import (
	"testing"

	"github.com/saintfish/chardet"
)

func TestPick(t *testing.T) {
	tests := []struct {
		name    string
		results []chardet.Result
		want    string
	}{
		{
			"highest-wins",
			[]chardet.Result{
				{Charset: "ISO-8859-1", Confidence: 40},
				{Charset: "windows-1252", Confidence: 80},
				{Charset: "UTF-8", Confidence: 20},
			},
			"windows-1252",
		},
		{
			"utf8-wins-tie",
			[]chardet.Result{
				{Charset: "ISO-8859-1", Confidence: 80},
				{Charset: "UTF-8", Confidence: 80},
			},
			"UTF-8",
		},
		{
			"utf8-wins-tie-regardless-of-order",
			[]chardet.Result{
				{Charset: "UTF-8", Confidence: 63},
				{Charset: "windows-1252", Confidence: 63},
				{Charset: "Shift_JIS", Confidence: 10},
			},
			"UTF-8",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := pick(tt.results); got.Charset != tt.want {
				t.Errorf("expected %s but got %s", tt.want, got.Charset)
			}
		})
	}
}

func TestChunk_ascii(t *testing.T) {
	v := Chunk([]byte("plain old text, nothing fancy\n"))
	if !v.IsASCII() {
		t.Errorf("expected ascii verdict but got %s", v.Label)
	}
	if v.Confidence != 1 {
		t.Errorf("expected confidence 1 but got %f", v.Confidence)
	}
	if _, ok := v.Charmap(); ok {
		t.Errorf("ascii verdict should not carry a codepage table")
	}
}

func TestChunk_utf8(t *testing.T) {
	v := Chunk([]byte("こんにちは、世界。ここは日本語のテキストです。\n"))
	if !v.IsUTF8() {
		t.Errorf("expected utf-8 verdict but got %s", v.Label)
	}
	if v.Confidence < 0.9 {
		t.Errorf("expected high confidence for valid multi byte UTF-8 but got %f", v.Confidence)
	}
}

func TestChunk_empty(t *testing.T) {
	v := Chunk(nil)
	if !v.IsASCII() {
		t.Errorf("expected ascii verdict for empty chunk but got %s", v.Label)
	}
}
