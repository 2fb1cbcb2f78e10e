package llm

import (
	"strings"
	"unicode"
)

// driftMinOverlap is the minimum token overlap between the original and the
// rewritten narrative. Below that, the rewrite is assumed to describe
// different work and is rejected.
const driftMinOverlap = 0.30

var stopwords = map[string]struct{}{
	"a": {}, "an": {}, "and": {}, "as": {}, "at": {}, "by": {},
	"for": {}, "from": {}, "in": {}, "of": {}, "on": {}, "or": {},
	"the": {}, "to": {}, "with": {}, "re": {}, "regarding": {},
	"per": {}, "via": {},
}

// mustPreserve are tokens whose disappearance from the rewrite always counts
// as drift, regardless of overall overlap.
var mustPreserve = map[string]struct{}{
	"deposition": {}, "motion": {}, "hearing": {}, "trial": {},
	"mediation": {}, "arbitration": {}, "appeal": {}, "settlement": {},
	"subpoena": {}, "discovery": {},
}

// tokenize lowercases, strips punctuation and drops stopwords.
func tokenize(text string) map[string]struct{} {
	tokens := make(map[string]struct{})
	for _, field := range strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	}) {
		if _, stop := stopwords[field]; stop {
			continue
		}
		if len(field) < 2 {
			continue
		}
		tokens[field] = struct{}{}
	}
	return tokens
}

// tooMuchDrift reports whether the rewritten text diverged too far from the
// original to be trusted.
func tooMuchDrift(original, rewritten string) bool {
	origTokens := tokenize(original)
	newTokens := tokenize(rewritten)

	if len(origTokens) == 0 {
		return false
	}

	for tok := range origTokens {
		if _, preserve := mustPreserve[tok]; !preserve {
			continue
		}
		if _, kept := newTokens[tok]; !kept {
			return true
		}
	}

	shared := 0
	for tok := range origTokens {
		if _, ok := newTokens[tok]; ok {
			shared++
		}
	}
	overlap := float64(shared) / float64(len(origTokens))
	return overlap < driftMinOverlap
}
