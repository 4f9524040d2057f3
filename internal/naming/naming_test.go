package naming

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitExtension(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantStem string
		wantExt  string
	}{
		{name: "simple", input: "report.docx", wantStem: "report", wantExt: ".docx"},
		{name: "multiple dots", input: "archive.tar.gz", wantStem: "archive.tar", wantExt: ".gz"},
		{name: "no dot", input: "README", wantStem: "README", wantExt: ""},
		{name: "leading dot", input: ".bashrc", wantStem: "", wantExt: ".bashrc"},
		{name: "trailing dot", input: "name.", wantStem: "name", wantExt: "."},
		{name: "empty", input: "", wantStem: "", wantExt: ""},
		{name: "cjk", input: "报告.xlsx", wantStem: "报告", wantExt: ".xlsx"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stem, ext := SplitExtension(tt.input)
			assert.Equal(t, tt.wantStem, stem)
			assert.Equal(t, tt.wantExt, ext)
			assert.Equal(t, tt.input, stem+ext)
		})
	}
}

func TestFormatByteSize(t *testing.T) {
	tests := []struct {
		in   int64
		want string
	}{
		{0, "0 Bytes"},
		{-5, "0 Bytes"},
		{1, "1 Bytes"},
		{1023, "1023 Bytes"},
		{1024, "1 KB"},
		{1536, "1.5 KB"},
		{1126, "1.1 KB"},
		{1048576, "1 MB"},
		{1572864, "1.5 MB"},
		{5 * 1024 * 1024 * 1024, "5 GB"},
		{2048 * 1024 * 1024 * 1024, "2048 GB"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatByteSize(tt.in))
		})
	}
}

func TestInvalidReason(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "ok", input: "a_bak.txt", want: ""},
		{name: "empty", input: "", want: "empty name"},
		{name: "blank", input: "   ", want: "empty name"},
		{name: "slash", input: "a/b.txt", want: "invalid characters"},
		{name: "question mark", input: "why?.txt", want: "invalid characters"},
		{name: "control char", input: "a\tb.txt", want: "invalid characters"},
		{name: "reserved", input: "con.txt", want: "reserved filename"},
		{name: "dot dot", input: "..", want: "reserved filename"},
		{name: "too long", input: strings.Repeat("a", MaxNameLength+1), want: "too long"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, InvalidReason(tt.input))
		})
	}
}

func TestResolveConflict(t *testing.T) {
	assert.Equal(t, "photo.jpg", ResolveConflict("photo.jpg", 0))
	assert.Equal(t, "photo_2.jpg", ResolveConflict("photo.jpg", 2))
	assert.Equal(t, "README_1", ResolveConflict("README", 1))
}
