package catalog

import (
	"math"
	"sort"
	"strings"
	"unicode"

	"github.com/pmezard/go-difflib/difflib"
	"golang.org/x/text/unicode/norm"
)

// Scorer computes 0-100 similarity scores between two titles.
type Scorer interface {
	// SetScore compares the token sets of a and b, ignoring order and
	// duplicate tokens.
	SetScore(a, b string) int

	// SortScore compares a and b after sorting their tokens.
	SortScore(a, b string) int
}

// fuzzyScorer implements Scorer with token set/sort ratios over a
// sequence-matcher ratio.
type fuzzyScorer struct{}

// NewFuzzyScorer creates the default title scorer.
func NewFuzzyScorer() Scorer {
	return fuzzyScorer{}
}

// SetScore returns the best ratio between the shared tokens and each side's
// shared-plus-remaining tokens.
func (fuzzyScorer) SetScore(a, b string) int {
	tokensA := tokenSet(a)
	tokensB := tokenSet(b)
	if len(tokensA) == 0 || len(tokensB) == 0 {
		return 0
	}

	var shared, onlyA, onlyB []string
	for token := range tokensA {
		if _, ok := tokensB[token]; ok {
			shared = append(shared, token)
		} else {
			onlyA = append(onlyA, token)
		}
	}
	for token := range tokensB {
		if _, ok := tokensA[token]; !ok {
			onlyB = append(onlyB, token)
		}
	}
	sort.Strings(shared)
	sort.Strings(onlyA)
	sort.Strings(onlyB)

	sect := strings.Join(shared, " ")
	combinedA := strings.TrimSpace(sect + " " + strings.Join(onlyA, " "))
	combinedB := strings.TrimSpace(sect + " " + strings.Join(onlyB, " "))

	return max(ratio(sect, combinedA), ratio(sect, combinedB), ratio(combinedA, combinedB))
}

// SortScore returns the ratio of the token-sorted forms of a and b.
func (fuzzyScorer) SortScore(a, b string) int {
	sortedA := sortedTokens(a)
	sortedB := sortedTokens(b)
	if sortedA == "" || sortedB == "" {
		return 0
	}
	return ratio(sortedA, sortedB)
}

// ratio is the matching-blocks similarity of a and b, 2*M/T, on 0-100.
// Halves round to even.
func ratio(a, b string) int {
	runesA := splitRunes(a)
	runesB := splitRunes(b)
	if len(runesA) == 0 || len(runesB) == 0 {
		return 0
	}

	matcher := difflib.NewMatcher(runesA, runesB)
	return int(math.RoundToEven(100 * matcher.Ratio()))
}

func splitRunes(s string) []string {
	out := make([]string, 0, len(s))
	for _, r := range s {
		out = append(out, string(r))
	}
	return out
}

// tokens lower-cases s, turns every non-alphanumeric rune into a separator
// and splits on whitespace.
func tokens(s string) []string {
	s = strings.ToLower(norm.NFC.String(s))
	return strings.FieldsFunc(s, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r)
	})
}

func tokenSet(s string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, token := range tokens(s) {
		set[token] = struct{}{}
	}
	return set
}

func sortedTokens(s string) string {
	t := tokens(s)
	sort.Strings(t)
	return strings.Join(t, " ")
}
