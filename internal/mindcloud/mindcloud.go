// Package mindcloud turns a user's diary text into ranked word frequencies
// for the in-app word-cloud view. Rendering is a client concern; the server
// only supplies the terms and weights.
package mindcloud

import (
	"sort"
	"strings"
	"unicode"
)

// Term is one word and how often it appeared in the period.
type Term struct {
	Word  string `json:"word"`
	Count int    `json:"count"`
}

// Tokens shorter than this are noise (particles, single letters).
const minTokenLen = 2

// Terms tokenises the given texts, counts case-folded words, and returns
// them most-frequent first, capped at limit (0 means no cap). Ties break
// alphabetically so output stays stable.
func Terms(texts []string, limit int) []Term {
	counts := map[string]int{}
	for _, text := range texts {
		for _, tok := range tokenize(text) {
			counts[tok]++
		}
	}

	terms := make([]Term, 0, len(counts))
	for w, n := range counts {
		terms = append(terms, Term{Word: w, Count: n})
	}
	sort.Slice(terms, func(i, j int) bool {
		if terms[i].Count != terms[j].Count {
			return terms[i].Count > terms[j].Count
		}
		return terms[i].Word < terms[j].Word
	})

	if limit > 0 && len(terms) > limit {
		terms = terms[:limit]
	}
	return terms
}

func tokenize(text string) []string {
	fields := strings.FieldsFunc(text, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r)
	})
	out := fields[:0]
	for _, f := range fields {
		f = strings.ToLower(f)
		if len([]rune(f)) >= minTokenLen {
			out = append(out, f)
		}
	}
	return out
}
