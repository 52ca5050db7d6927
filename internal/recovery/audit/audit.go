// Package audit implements the offline recoverability search: given a stored
// answer hash and a registrant's fuzzy memory of the answer, it tries to
// discover a plausible string that reproduces the hash. It is a diagnostic
// tool for the legitimate registrant's own records and is never part of the
// live recovery decision path.
package audit

import (
	"iter"
	"strings"

	"github.com/lockstead/recovery/pkg/answerhash"
)

// alphabet is the fixed character set for typo expansion. Answers are
// normalized to lowercase before hashing, so uppercase variants would only
// duplicate work.
const alphabet = "abcdefghijklmnopqrstuvwxyz"

// Result reports the outcome of a recoverability search.
type Result struct {
	// Found reports whether some candidate reproduced the stored hash.
	Found bool

	// Candidate is the normalized form of the matching candidate, empty
	// when Found is false.
	Candidate string

	// Tried is the number of candidates hashed before the search stopped.
	Tried int
}

// Search tries candidates from the given sources in order until one
// reproduces the stored hash, the budget is exhausted, or every source runs
// dry. Each candidate is normalized before hashing, exactly as a live
// verification would. The search short-circuits on the first match: the hash
// schemes are one-way and collision resistant, so the first match is treated
// as definitive.
//
// maxCandidates bounds the total number of candidates attempted across all
// sources; zero or negative means unbounded. The typo neighborhood grows
// linearly with base length so unbounded searches over the built-in sources
// always terminate.
func Search(stored string, maxCandidates int, sources ...iter.Seq[string]) Result {
	tried := 0
	for _, source := range sources {
		for candidate := range source {
			if maxCandidates > 0 && tried >= maxCandidates {
				return Result{Tried: tried}
			}
			tried++

			normalized := answerhash.Normalize(candidate)
			if answerhash.Verify(normalized, stored) {
				return Result{Found: true, Candidate: normalized, Tried: tried}
			}
		}
	}
	return Result{Tried: tried}
}

// CaseVariants yields the cheap variants of a hinted base answer: the
// identity, lowercase, uppercase, and surrounding-whitespace forms. Most of
// these collapse under normalization; they are still tried first because a
// match here costs almost nothing.
func CaseVariants(base string) iter.Seq[string] {
	return func(yield func(string) bool) {
		variants := []string{
			base,
			answerhash.Normalize(base),
			strings.ToUpper(base),
			base + " ",
			" " + base,
			" " + base + " ",
		}
		for _, v := range variants {
			if !yield(v) {
				return
			}
		}
	}
}

// Dictionary yields a curated word list as-is. Callers compose it after
// CaseVariants and before TypoNeighborhood, matching the cost order of the
// sources.
func Dictionary(words []string) iter.Seq[string] {
	return func(yield func(string) bool) {
		for _, w := range words {
			if !yield(w) {
				return
			}
		}
	}
}

// TypoNeighborhood yields the full edit-distance-1 neighborhood of a base
// string over the lowercase alphabet: every single-character substitution
// (len(base)*26 candidates, the identity among them), every single-character
// deletion (len(base)), and every single-character insertion
// ((len(base)+1)*26), in that order. The neighborhood grows linearly with
// base length, so no pruning is needed; a multi-edit search would require an
// explicit budget.
func TypoNeighborhood(base string) iter.Seq[string] {
	return func(yield func(string) bool) {
		// Substitutions
		for i := range len(base) {
			for _, c := range alphabet {
				if !yield(base[:i] + string(c) + base[i+1:]) {
					return
				}
			}
		}

		// Deletions
		for i := range len(base) {
			if !yield(base[:i] + base[i+1:]) {
				return
			}
		}

		// Insertions
		for i := range len(base) + 1 {
			for _, c := range alphabet {
				if !yield(base[:i] + string(c) + base[i:]) {
					return
				}
			}
		}
	}
}

// NeighborhoodSize returns the number of candidates TypoNeighborhood yields
// for a base of length n: 26n substitutions + n deletions + 26(n+1)
// insertions.
func NeighborhoodSize(n int) int {
	return 26*n + n + 26*(n+1)
}
