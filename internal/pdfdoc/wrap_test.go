package pdfdoc

import (
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

// one unit per rune keeps expectations readable
func runeWidth(s string) float64 { return float64(utf8.RuneCountInString(s)) }

func TestWrapText(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		width float64
		want  []string
	}{
		{name: "empty", text: "", width: 10, want: []string{""}},
		{name: "fits", text: "hall ticket", width: 20, want: []string{"hall ticket"}},
		{name: "word boundary", text: "the quick brown fox", width: 10, want: []string{"the quick", "brown fox"}},
		{name: "collapses spaces", text: "  a   b  ", width: 10, want: []string{"a b"}},
		{name: "keeps newlines", text: "line one\nline two", width: 20, want: []string{"line one", "line two"}},
		{name: "hard split", text: "abcdefghij", width: 4, want: []string{"abcd", "efgh", "ij"}},
		{name: "hard split mid sentence", text: "go abcdefgh ok", width: 4, want: []string{"go", "abcd", "efgh", "ok"}},
		{name: "multibyte runes", text: "ééééé", width: 2, want: []string{"éé", "éé", "é"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, WrapText(runeWidth, tt.text, tt.width))
		})
	}
}

func TestWrapText_NeverExceedsWidth(t *testing.T) {
	text := "Candidates must report thirty minutes before the exam. Electronicdevicesarestrictlyprohibited inside the hall."
	for _, line := range WrapText(runeWidth, text, 12) {
		assert.LessOrEqual(t, runeWidth(line), 12.0, line)
	}
}
