package pgsanity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClampSampleLimit(t *testing.T) {
	tests := []struct {
		name      string
		requested int
		want      int
	}{
		{"absent input (zero value)", 0, 20},
		{"negative input", -5, 20},
		{"strongly negative input", -1000000, 20},
		{"lower boundary", 1, 1},
		{"in range", 50, 50},
		{"default itself", 20, 20},
		{"upper boundary", 200, 200},
		{"just above max", 201, 200},
		{"absurdly large", 10000, 200},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ClampSampleLimit(tt.requested, DefaultSampleLimit, MaxSampleLimit)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestClampSampleLimit_InRangePassesThrough(t *testing.T) {
	// Every value in [1, max] must come back unchanged.
	for v := 1; v <= MaxSampleLimit; v++ {
		if got := ClampSampleLimit(v, DefaultSampleLimit, MaxSampleLimit); got != v {
			t.Fatalf("ClampSampleLimit(%d) = %d, want %d", v, got, v)
		}
	}
}

func TestNormalize_DelegatesToClamp(t *testing.T) {
	// Normalize and ClampSampleLimit must agree for every input class.
	for _, requested := range []int{-10, 0, 1, 20, 199, 200, 201, 5000} {
		p := ScanParameters{SampleLimit: requested}.Normalize()
		assert.Equal(t, ClampSampleLimit(requested, DefaultSampleLimit, MaxSampleLimit), p.SampleLimit,
			"requested %d", requested)
	}
}
