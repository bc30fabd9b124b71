// Package match scores free-text name similarity on a 0-100 scale.
//
// The score is a Levenshtein ratio with substitution cost 2, so it agrees with
// the classic sequence-ratio metric: 100*(la+lb-distance)/(la+lb), rounded.
// The concrete metric is an implementation detail; callers may rely only on
// the contract: symmetry, reflexivity (100 for equal non-empty input after
// case folding), boundedness, and 0 for empty input.
package match

import (
	"strings"

	"github.com/agext/levenshtein"
)

// Substitution cost 2 makes the distance equal (la+lb) minus twice the
// longest-common-subsequence length, which the ratio below requires.
var params = levenshtein.NewParams().SubCost(2)

// Similarity returns a bounded similarity score between two names. Inputs are
// trimmed and case-folded before comparison; an exact match short-circuits to
// 100 without invoking the distance computation.
func Similarity(a, b string) int {
	a = strings.ToLower(strings.TrimSpace(a))
	b = strings.ToLower(strings.TrimSpace(b))
	if a == "" || b == "" {
		return 0
	}
	if a == b {
		return 100
	}

	ra, rb := []rune(a), []rune(b)
	total := len(ra) + len(rb)
	dist := levenshtein.Distance(a, b, params)
	if dist > total {
		dist = total
	}
	// Integer rounding keeps the score deterministic across platforms.
	return ((total-dist)*100 + total/2) / total
}
