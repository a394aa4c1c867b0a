package triage_test

import (
	"math"
	"testing"

	"github.com/tomasbasham/triage"
)

func TestCompare(t *testing.T) {
	t.Parallel()

	nan := math.NaN()

	tests := map[string]struct {
		a, b float64
		want int
	}{
		"greater":                       {a: 2, b: 1, want: 1},
		"less":                          {a: 1, b: 2, want: -1},
		"identical":                     {a: 37.6, b: 37.6, want: 0},
		"within tolerance":              {a: 37.6, b: 37.6 + 9e-6, want: 0},
		"just over one epsilon apart":   {a: 1.00002, b: 1, want: 1},
		"sum rounding is tied":          {a: 0.1 + 0.2, b: 0.3, want: 0},
		"nan is lowest":                 {a: nan, b: -1000, want: -1},
		"number beats nan":              {a: 0, b: nan, want: 1},
		"nan ties nan":                  {a: nan, b: nan, want: 0},
		"infinity is greater":           {a: math.Inf(1), b: 1e300, want: 1},
		"infinities tie":                {a: math.Inf(1), b: math.Inf(1), want: 0},
		"negative infinity beats nan":   {a: math.Inf(-1), b: nan, want: 1},
		"negative scores order greater": {a: -1, b: -2, want: 1},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			if got := triage.Compare(tt.a, tt.b); got != tt.want {
				t.Errorf("Compare(%v, %v):\n  got:  %d\n  want: %d", tt.a, tt.b, got, tt.want)
			}
			if got := triage.Compare(tt.b, tt.a); got != -tt.want {
				t.Errorf("Compare(%v, %v) is not antisymmetric:\n  got:  %d\n  want: %d", tt.b, tt.a, got, -tt.want)
			}
			if got := triage.Equal(tt.a, tt.b); got != (tt.want == 0) {
				t.Errorf("Equal(%v, %v):\n  got:  %t\n  want: %t", tt.a, tt.b, got, tt.want == 0)
			}
		})
	}
}
