package domain

import "strings"

// Distance returns the Levenshtein edit distance between a and b,
// case-insensitive.
func Distance(a, b string) int {
	ra := []rune(strings.ToLower(a))
	rb := []rune(strings.ToLower(b))
	m, n := len(ra), len(rb)

	dp := make([][]int, m+1)
	for i := range dp {
		dp[i] = make([]int, n+1)
		dp[i][0] = i
	}
	for j := 0; j <= n; j++ {
		dp[0][j] = j
	}

	for i := 1; i <= m; i++ {
		for j := 1; j <= n; j++ {
			if ra[i-1] == rb[j-1] {
				dp[i][j] = dp[i-1][j-1]
			} else {
				dp[i][j] = 1 + min(dp[i-1][j], min(dp[i][j-1], dp[i-1][j-1]))
			}
		}
	}
	return dp[m][n]
}

// Matches reports whether a free-text query matches a candidate item name.
//
// Both strings are lowercased. A candidate containing the whole query as a
// substring always matches. Otherwise every query word must be satisfied by
// at least one candidate word: by containment in either direction, or, for
// query words longer than three runes, by edit distance within a
// length-dependent threshold. Word order and multiplicity do not matter.
// The empty query matches everything.
func Matches(query, candidate string) bool {
	q := strings.ToLower(query)
	c := strings.ToLower(candidate)

	if q == "" || strings.Contains(c, q) {
		return true
	}

	queryWords := strings.Fields(q)
	candidateWords := strings.Fields(c)

	for _, qw := range queryWords {
		if !wordSatisfied(qw, candidateWords) {
			return false
		}
	}
	return true
}

func wordSatisfied(qw string, candidateWords []string) bool {
	qlen := len([]rune(qw))
	for _, cw := range candidateWords {
		if strings.Contains(cw, qw) || strings.Contains(qw, cw) {
			return true
		}
		if qlen > 3 {
			threshold := 1
			if qlen > 5 {
				threshold = 2
			}
			if Distance(qw, cw) <= threshold {
				return true
			}
		}
	}
	return false
}
