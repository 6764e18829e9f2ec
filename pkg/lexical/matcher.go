// Package lexical provides normalized string-similarity scoring for the
// resolution pipeline. It is used both as an exact-question matcher against
// curated FAQ entries and as a coarse relevance check against document
// prefixes when semantic search is unavailable.
package lexical

import "strings"

// accentFolder maps accented Latin characters and Spanish punctuation to
// their plain forms. The curated knowledge base is Spanish; users routinely
// type without accents or inverted question marks.
var accentFolder = strings.NewReplacer(
	"á", "a", "é", "e", "í", "i", "ó", "o", "ú", "u",
	"ü", "u", "ñ", "n",
	"Á", "a", "É", "e", "Í", "i", "Ó", "o", "Ú", "u",
	"Ü", "u", "Ñ", "n",
	"¿", "", "?", "", "¡", "", "!", "", ".", "", ",", "", ";", "", ":", " ",
)

// Normalize lowercases, folds accents, strips punctuation and collapses
// whitespace. Two queries that differ only in casing, accents or punctuation
// normalize to the same string.
func Normalize(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = accentFolder.Replace(s)
	return strings.Join(strings.Fields(s), " ")
}

// Ratio returns a similarity score in [0,1] between two strings, computed as
// 2*M/T over their normalized forms, where M is the total length of all
// matching blocks and T the combined length. Symmetric; Ratio(a,a) == 1.
func Ratio(a, b string) float64 {
	ra := []rune(Normalize(a))
	rb := []rune(Normalize(b))
	if len(ra) == 0 && len(rb) == 0 {
		return 1
	}
	if len(ra) == 0 || len(rb) == 0 {
		return 0
	}
	matched := matchingTotal(ra, rb)
	return 2 * float64(matched) / float64(len(ra)+len(rb))
}

// Prefix returns the first n runes of text, used to score arbitrary document
// chunks without comparing against their full body.
func Prefix(text string, n int) string {
	runes := []rune(text)
	if len(runes) <= n {
		return text
	}
	return string(runes[:n])
}

// matchingTotal sums the lengths of all matching blocks between a and b by
// recursively splitting around the longest common block.
func matchingTotal(a, b []rune) int {
	ai, bi, size := longestMatch(a, b)
	if size == 0 {
		return 0
	}
	total := size
	total += matchingTotal(a[:ai], b[:bi])
	total += matchingTotal(a[ai+size:], b[bi+size:])
	return total
}

// longestMatch finds the longest common contiguous block between a and b.
// On ties the earliest block in a wins, which keeps the measure deterministic.
func longestMatch(a, b []rune) (bestA, bestB, bestSize int) {
	runLen := make(map[int]int)
	for i := range a {
		next := make(map[int]int)
		for j := range b {
			if a[i] != b[j] {
				continue
			}
			k := runLen[j-1] + 1
			next[j] = k
			if k > bestSize {
				bestA = i - k + 1
				bestB = j - k + 1
				bestSize = k
			}
		}
		runLen = next
	}
	return bestA, bestB, bestSize
}
