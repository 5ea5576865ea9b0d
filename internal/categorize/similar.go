package categorize

import (
	"strings"
	"unicode"

	"github.com/mesh-intelligence/funnelkit/pkg/types"
)

// minWordLen is the length a word must exceed to take part in similarity.
const minWordLen = 2

// FindSimilar returns the categories in existing whose name shares a word
// with name. Two words are related when either contains the other and both
// are longer than two characters. Order follows existing.
func FindSimilar(name string, existing []*types.Category) []*types.Category {
	candidate := significantWords(name)
	if len(candidate) == 0 {
		return nil
	}
	var out []*types.Category
	for _, c := range existing {
		if c != nil && wordsOverlap(candidate, significantWords(c.Name)) {
			out = append(out, c)
		}
	}
	return out
}

func wordsOverlap(a, b []string) bool {
	for _, x := range a {
		for _, y := range b {
			if strings.Contains(x, y) || strings.Contains(y, x) {
				return true
			}
		}
	}
	return false
}

// significantWords splits a normalized name into words longer than
// minWordLen.
func significantWords(name string) []string {
	fields := strings.FieldsFunc(normalizeName(name), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	out := fields[:0]
	for _, f := range fields {
		if len([]rune(f)) > minWordLen {
			out = append(out, f)
		}
	}
	return out
}

func normalizeName(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
