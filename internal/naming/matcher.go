package naming

import (
	"strings"

	"golang.org/x/text/cases"
)

// matchPredicate reports whether a folded derivative identity is
// compatible with a folded candidate identity.
type matchPredicate func(derivative, candidate string) bool

// matchPredicates is the union the matcher accepts. Each predicate is an
// independent heuristic accumulated against real export behavior; they are
// kept as an explicit list so each can be tested and tuned on its own.
var matchPredicates = []matchPredicate{
	identityEqual,
	derivativeIsPrefix,
	candidateIsPrefix,
	hyphenFreeEqual,
}

// identityEqual is the exact case: the derivative reduced to precisely the
// candidate's identity.
func identityEqual(derivative, candidate string) bool {
	return derivative == candidate
}

// derivativeIsPrefix accepts candidates whose names extend the
// derivative's identity (the export truncated the derivative's name).
// An empty prefix carries no name evidence and matches nothing; empty
// identities pair up through identityEqual instead.
func derivativeIsPrefix(derivative, candidate string) bool {
	return derivative != "" && strings.HasPrefix(candidate, derivative)
}

// candidateIsPrefix accepts candidates that are a truncation of the
// derivative's identity (the derivative accumulated extra name material).
func candidateIsPrefix(derivative, candidate string) bool {
	return candidate != "" && strings.HasPrefix(derivative, candidate)
}

// hyphenFreeEqual accepts candidates that differ only in separator
// placement, such as sun-set against sunset.
func hyphenFreeEqual(derivative, candidate string) bool {
	return strings.ReplaceAll(derivative, "-", "") == strings.ReplaceAll(candidate, "-", "")
}

// FindMains returns the candidate filenames that plausibly are the main
// file a derivative was generated from. Candidates classified as
// derivatives are never considered; each remaining candidate's identity is
// case-folded against the derivative's identity and included when any
// predicate accepts it.
//
// The result preserves candidate order, so output is deterministic for a
// given listing. An empty candidate list yields an empty result, and an
// empty derivative identity matches only candidates that also reduce to
// an empty identity.
func (r Ruleset) FindMains(derivativeBase string, candidates []string) []string {
	derivative := fold(derivativeBase)

	var mains []string
	for _, name := range candidates {
		if r.IsDerivative(name) {
			continue
		}
		candidate := fold(r.BaseIdentity(name))
		for _, match := range matchPredicates {
			if match(derivative, candidate) {
				mains = append(mains, name)
				break
			}
		}
	}
	return mains
}

// fold applies Unicode case folding for comparison. A fresh caser per
// call: a cases.Caser carries internal state and is not safe for
// concurrent use.
func fold(s string) string {
	return cases.Fold().String(s)
}
