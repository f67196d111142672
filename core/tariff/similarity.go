package tariff

import (
	"strings"

	"gonum.org/v1/gonum/stat"
)

// landmarkWords is the fixed vocabulary of high-signal location words. When
// either side of a comparison contains one, the overlap restricted to this
// vocabulary joins the blend.
var landmarkWords = map[string]bool{
	"AIRPORT": true, "AEROPORTO": true, "APT": true,
	"HOTEL": true, "HTL": true,
	"CENTRO": true, "CENTER": true,
	"PRAIA": true, "BEACH": true,
	"SHOPPING": true, "MALL": true,
	"RODOVIARIA": true, "STATION": true, "ESTACAO": true,
	"PORTO": true, "PORT": true,
	"TERMINAL": true,
	"CIDADE": true, "CITY": true,
}

// Similarity blends four component scores over two normalized strings:
// subsequence match ratio, Jaccard index over word sets, longest common
// subsequence length normalized by the longer string, and landmark-word
// overlap when applicable. Applicable components are averaged unweighted.
func Similarity(a, b string) float64 {
	if a == "" || b == "" {
		return 0
	}
	if a == b {
		return 1
	}

	lcs := lcsLength(a, b)
	parts := []float64{
		2 * float64(lcs) / float64(len(a)+len(b)),
		jaccard(wordSet(a), wordSet(b)),
		float64(lcs) / float64(maxInt(len(a), len(b))),
	}
	if overlap, ok := landmarkOverlap(a, b); ok {
		parts = append(parts, overlap)
	}
	return stat.Mean(parts, nil)
}

// lcsLength computes the longest common subsequence length with a two-row DP.
func lcsLength(a, b string) int {
	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)
	for i := 1; i <= len(a); i++ {
		for j := 1; j <= len(b); j++ {
			if a[i-1] == b[j-1] {
				curr[j] = prev[j-1] + 1
			} else if prev[j] >= curr[j-1] {
				curr[j] = prev[j]
			} else {
				curr[j] = curr[j-1]
			}
		}
		prev, curr = curr, prev
	}
	return prev[len(b)]
}

func wordSet(s string) map[string]bool {
	set := make(map[string]bool)
	for _, w := range strings.Fields(s) {
		set[w] = true
	}
	return set
}

func jaccard(a, b map[string]bool) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	inter := 0
	for w := range a {
		if b[w] {
			inter++
		}
	}
	union := len(a) + len(b) - inter
	return float64(inter) / float64(union)
}

// landmarkOverlap compares only the landmark words of each side. The second
// return value is false when neither side contains a landmark word.
func landmarkOverlap(a, b string) (float64, bool) {
	la := landmarks(a)
	lb := landmarks(b)
	if len(la) == 0 && len(lb) == 0 {
		return 0, false
	}
	if len(la) == 0 || len(lb) == 0 {
		return 0, true
	}
	return jaccard(la, lb), true
}

func landmarks(s string) map[string]bool {
	set := make(map[string]bool)
	for _, w := range strings.Fields(s) {
		if landmarkWords[w] {
			set[w] = true
		}
	}
	return set
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
