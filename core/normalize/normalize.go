// Package normalize canonicalizes free-text service descriptions so that the
// grouping and tariff components compare like with like.
package normalize

import (
	"regexp"
	"strings"
)

var (
	whitespaceRe = regexp.MustCompile(`\s+`)

	// City or airport qualifier followed by a parenthesized IATA code, with
	// or without a leading regional qualifier ("RJ - "). The code wins.
	airportCodeRe = regexp.MustCompile(`(?:\b[A-Z]{2}\s*-\s*)?\b(?:RIO DE JANEIRO|RIO|AEROPORTO(?: INTERNACIONAL)?(?: DO GALE[AÃ]O| SANTOS DUMONT)?|GALE[AÃ]O|SANTOS DUMONT)\s*\(\s*([A-Z]{3})\s*\)`)

	longFormAirports = []struct {
		re  *regexp.Regexp
		out string
	}{
		{regexp.MustCompile(`\bAEROPORTO(?: INTERNACIONAL)? DO GALE[AÃ]O\b|\bGALE[AÃ]O\b`), "GIG"},
		{regexp.MustCompile(`\bAEROPORTO SANTOS DUMONT\b|\bSANTOS DUMONT\b`), "SDU"},
	}

	transferCanon = []struct {
		re  *regexp.Regexp
		out string
	}{
		{regexp.MustCompile(`\bTRANSFER\s*-?\s*IN\s+(?:REGULAR|COMPARTILHADO)\b`), "TRANSFER IN REGULAR"},
		{regexp.MustCompile(`\bTRANSFER\s*-?\s*OUT\s+(?:REGULAR|COMPARTILHADO)\b`), "TRANSFER OUT REGULAR"},
		{regexp.MustCompile(`\bTRANSFER\s*-?\s*IN\s+(?:PRIVATIVO|PRIVATE|VE[IÍ]CULO PRIVATIVO|CARRO PRIVATIVO)\b`), "TRANSFER IN PRIVATIVO"},
		{regexp.MustCompile(`\bTRANSFER\s*-?\s*OUT\s+(?:PRIVATIVO|PRIVATE|VE[IÍ]CULO PRIVATIVO|CARRO PRIVATIVO)\b`), "TRANSFER OUT PRIVATIVO"},
	}
)

// Normalizer caches canonical forms for the duration of one planning run.
// It is not safe for concurrent use; independent runs must use independent
// instances.
type Normalizer struct {
	cache map[string]string
}

// New creates a Normalizer with an empty cache.
func New() *Normalizer {
	return &Normalizer{cache: make(map[string]string)}
}

// Normalize returns the canonical form of a description. The function is
// deterministic and idempotent: Normalize(Normalize(s)) == Normalize(s).
func (n *Normalizer) Normalize(s string) string {
	if v, ok := n.cache[s]; ok {
		return v
	}
	v := canonical(s)
	n.cache[s] = v
	return v
}

func canonical(s string) string {
	out := strings.ToUpper(strings.TrimSpace(s))
	out = whitespaceRe.ReplaceAllString(out, " ")
	out = airportCodeRe.ReplaceAllString(out, "$1")
	for _, r := range longFormAirports {
		out = r.re.ReplaceAllString(out, r.out)
	}
	out = stripPunctuation(out)
	out = strings.TrimSpace(whitespaceRe.ReplaceAllString(out, " "))
	for _, r := range transferCanon {
		out = r.re.ReplaceAllString(out, r.out)
	}
	return out
}

// stripPunctuation removes commas and periods unless they sit between two
// digits (decimal and thousands separators survive).
func stripPunctuation(s string) string {
	runes := []rune(s)
	var b strings.Builder
	b.Grow(len(runes))
	for i, r := range runes {
		if r == ',' || r == '.' {
			prevDigit := i > 0 && runes[i-1] >= '0' && runes[i-1] <= '9'
			nextDigit := i < len(runes)-1 && runes[i+1] >= '0' && runes[i+1] <= '9'
			if !prevDigit || !nextDigit {
				continue
			}
		}
		b.WriteRune(r)
	}
	return b.String()
}

var accentFold = map[rune]rune{
	'Á': 'A', 'À': 'A', 'Â': 'A', 'Ã': 'A', 'Ä': 'A',
	'É': 'E', 'È': 'E', 'Ê': 'E', 'Ë': 'E',
	'Í': 'I', 'Ì': 'I', 'Î': 'I', 'Ï': 'I',
	'Ó': 'O', 'Ò': 'O', 'Ô': 'O', 'Õ': 'O', 'Ö': 'O',
	'Ú': 'U', 'Ù': 'U', 'Û': 'U', 'Ü': 'U',
	'Ç': 'C', 'Ñ': 'N',
	'á': 'a', 'à': 'a', 'â': 'a', 'ã': 'a', 'ä': 'a',
	'é': 'e', 'è': 'e', 'ê': 'e', 'ë': 'e',
	'í': 'i', 'ì': 'i', 'î': 'i', 'ï': 'i',
	'ó': 'o', 'ò': 'o', 'ô': 'o', 'õ': 'o', 'ö': 'o',
	'ú': 'u', 'ù': 'u', 'û': 'u', 'ü': 'u',
	'ç': 'c', 'ñ': 'n',
}

// StripAccents folds accented characters to their ASCII base. Pickup
// locations and rule vocabularies are compared accent-insensitively.
func StripAccents(s string) string {
	return strings.Map(func(r rune) rune {
		if f, ok := accentFold[r]; ok {
			return f
		}
		return r
	}, s)
}
