package retrieve

import (
	"math"
	"testing"
)

func TestJaccard(t *testing.T) {
	tests := []struct {
		name string
		a    string
		b    string
		want float64
	}{
		{"both empty", "", "", 0},
		{"one empty", "seoul tower", "", 0},
		{"identical", "seoul tower", "seoul tower", 1},
		{"disjoint", "seoul tower", "busan beach", 0},
		{"partial", "seoul night tower", "seoul tower", 2.0 / 3.0},
		{"case insensitive", "Seoul Tower", "seoul tower", 1},
		{"duplicate words collapse", "seoul seoul tower", "seoul tower", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := jaccard(wordSet(tt.a), wordSet(tt.b))
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("jaccard(%q, %q) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}
