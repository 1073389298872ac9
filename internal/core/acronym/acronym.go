// Package acronym derives the six-character client token used as the payload
// of client-based billing identifiers.
// This is part of the Functional Core - no I/O, only pure functions.
package acronym

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

const (
	// Length is the length of every generated acronym.
	Length = 6

	// Empty is returned when a name has no usable tokens.
	Empty = "XXXXXX"

	titlePrefix = "DR" // also matches "DRA"
	partLength  = 3
)

var connectives = map[string]bool{
	"&":  true,
	"E":  true,
	"DE": true,
	"DA": true,
	"DO": true,
}

// Generate returns the acronym for a client or company name.
//
// Names starting with a doctor title (Dr., Dra.) combine the title with the
// first letters of the rest of the name. Otherwise connectives are dropped, a
// single word contributes its first six letters and two or more words
// contribute three letters each from the first two. Results shorter than six
// characters are padded with X.
func Generate(name string) string {
	tokens := strings.Fields(normalize(name))
	if len(tokens) == 0 {
		return Empty
	}

	if strings.HasPrefix(tokens[0], titlePrefix) {
		title := clean(tokens[0])
		rest := clean(strings.Join(tokens[1:], ""))
		return fit(head(title, partLength) + head(rest, partLength))
	}

	kept := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		if connectives[tok] {
			continue
		}
		if c := clean(tok); c != "" {
			kept = append(kept, c)
		}
	}

	switch len(kept) {
	case 0:
		return Empty
	case 1:
		return fit(head(kept[0], Length))
	default:
		return fit(head(kept[0], partLength) + head(kept[1], partLength))
	}
}

// normalize strips diacritics and upper-cases the name. Casers and
// transformers keep state, so a fresh pair is built per call.
func normalize(name string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, name)
	if err != nil {
		folded = name
	}
	return cases.Upper(language.BrazilianPortuguese).String(folded)
}

// clean keeps only A-Z and 0-9.
func clean(s string) string {
	var b strings.Builder
	for _, r := range s {
		if (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func head(s string, n int) string {
	if len(s) < n {
		return s
	}
	return s[:n]
}

func fit(s string) string {
	if len(s) < Length {
		s += strings.Repeat("X", Length-len(s))
	}
	return s[:Length]
}
