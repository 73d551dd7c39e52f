package suggest

import "github.com/agnivade/levenshtein"

// Distance returns the minimum number of single-character insertions,
// deletions or substitutions needed to transform a into b. Case-sensitive;
// callers normalize case before calling.
func Distance(a, b string) int {
	return levenshtein.ComputeDistance(a, b)
}

// Similarity scores how close a and b are on a 0-100 scale based on edit
// distance relative to the longer string. Two empty strings are identical.
func Similarity(a, b string) float64 {
	longest := len([]rune(a))
	if l := len([]rune(b)); l > longest {
		longest = l
	}
	if longest == 0 {
		return 100
	}

	score := float64(longest-Distance(a, b)) / float64(longest) * 100
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}
