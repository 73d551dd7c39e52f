package suggest

import (
	"math"
	"testing"
)

func TestDistance(t *testing.T) {
	tests := []struct {
		name     string
		a        string
		b        string
		expected int
	}{
		{
			name:     "identical strings",
			a:        "pikachu",
			b:        "pikachu",
			expected: 0,
		},
		{
			name:     "single substitution",
			a:        "picachu",
			b:        "pikachu",
			expected: 1,
		},
		{
			name:     "empty to word",
			a:        "",
			b:        "mew",
			expected: 3,
		},
		{
			name:     "both empty",
			a:        "",
			b:        "",
			expected: 0,
		},
		{
			name:     "insertion and deletion",
			a:        "gastly",
			b:        "ghastly",
			expected: 1,
		},
		{
			name:     "completely different",
			a:        "abc",
			b:        "xyz",
			expected: 3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Distance(tt.a, tt.b); got != tt.expected {
				t.Errorf("Distance(%q, %q) = %d, want %d", tt.a, tt.b, got, tt.expected)
			}
		})
	}
}

func TestDistanceSymmetry(t *testing.T) {
	pairs := [][2]string{
		{"pikachu", "raichu"},
		{"charmander", "charmeleon"},
		{"", "eevee"},
		{"mew", "mewtwo"},
	}

	for _, p := range pairs {
		if d1, d2 := Distance(p[0], p[1]), Distance(p[1], p[0]); d1 != d2 {
			t.Errorf("Distance(%q, %q) = %d but reversed = %d", p[0], p[1], d1, d2)
		}
	}
}

func TestDistanceTriangleInequality(t *testing.T) {
	triples := [][3]string{
		{"pikachu", "pichu", "raichu"},
		{"squirtle", "wartortle", "blastoise"},
		{"", "mew", "mewtwo"},
	}

	for _, tr := range triples {
		ac := Distance(tr[0], tr[2])
		ab := Distance(tr[0], tr[1])
		bc := Distance(tr[1], tr[2])
		if ac > ab+bc {
			t.Errorf("triangle inequality violated for %v: %d > %d + %d", tr, ac, ab, bc)
		}
	}
}

func TestSimilarity(t *testing.T) {
	tests := []struct {
		name     string
		a        string
		b        string
		expected float64
	}{
		{
			name:     "identical strings score 100",
			a:        "pikachu",
			b:        "pikachu",
			expected: 100,
		},
		{
			name:     "both empty score 100",
			a:        "",
			b:        "",
			expected: 100,
		},
		{
			name:     "no overlap scores 0",
			a:        "abc",
			b:        "xyz",
			expected: 0,
		},
		{
			name:     "one of seven characters off",
			a:        "picachu",
			b:        "pikachu",
			expected: 100 * 6.0 / 7.0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Similarity(tt.a, tt.b)
			if math.Abs(got-tt.expected) > 1e-9 {
				t.Errorf("Similarity(%q, %q) = %f, want %f", tt.a, tt.b, got, tt.expected)
			}
		})
	}
}

func TestSimilarityBounds(t *testing.T) {
	pairs := [][2]string{
		{"a", "zzzzzzzzzz"},
		{"pikachu", ""},
		{"mew", "mew"},
	}

	for _, p := range pairs {
		got := Similarity(p[0], p[1])
		if got < 0 || got > 100 {
			t.Errorf("Similarity(%q, %q) = %f, out of [0,100]", p[0], p[1], got)
		}
	}
}
