package pdfdoc

import (
	"strings"
	"unicode/utf8"
)

// Measure returns the rendered width of s in the current font.
type Measure func(s string) float64

// WrapText splits text into lines no wider than width, breaking at word
// boundaries. Explicit newlines are kept. A word that alone exceeds width is
// split by runes. Empty text yields a single empty line.
func WrapText(measure Measure, text string, width float64) []string {
	var lines []string
	for _, para := range strings.Split(text, "\n") {
		lines = append(lines, wrapParagraph(measure, para, width)...)
	}
	if len(lines) == 0 {
		return []string{""}
	}
	return lines
}

func wrapParagraph(measure Measure, para string, width float64) []string {
	words := strings.Fields(para)
	if len(words) == 0 {
		return []string{""}
	}

	var (
		lines []string
		cur   string
	)
	for _, w := range words {
		if measure(w) > width {
			if cur != "" {
				lines = append(lines, cur)
				cur = ""
			}
			parts := splitRunes(measure, w, width)
			lines = append(lines, parts[:len(parts)-1]...)
			cur = parts[len(parts)-1]
			continue
		}
		if cur == "" {
			cur = w
			continue
		}
		if candidate := cur + " " + w; measure(candidate) <= width {
			cur = candidate
			continue
		}
		lines = append(lines, cur)
		cur = w
	}
	return append(lines, cur)
}

// splitRunes hard-splits a word. Each chunk holds at least one rune.
func splitRunes(measure Measure, word string, width float64) []string {
	var (
		parts []string
		start int
	)
	for i := 0; i < len(word); {
		_, size := utf8.DecodeRuneInString(word[i:])
		next := i + size
		if measure(word[start:next]) > width && i > start {
			parts = append(parts, word[start:i])
			start = i
		}
		i = next
	}
	return append(parts, word[start:])
}
