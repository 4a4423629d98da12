package rollup

import (
	"math"
	"testing"

	"github.com/alexanderramin/timesheet/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestRatioB(t *testing.T) {
	cases := []struct {
		name                   string
		direct, scheduled, pto float64
		lwop                   []float64
		want                   float64
	}{
		{"half utilised", 20, 40, 0, nil, 0.5},
		{"pto reduces denominator", 20, 40, 8, nil, 0.625},
		{"lwop subtracted when given", 16, 40, 8, []float64{16}, 1},
		{"explicit zero lwop", 20, 40, 0, []float64{0}, 0.5},
		{"overallocated", 50, 40, 0, nil, 1.25},
		{"leave consumes schedule", 10, 40, 40, nil, 0},
		{"negative denominator", 10, 40, 32, []float64{16}, 0},
		{"zero scheduled", 10, 0, 0, nil, 0},
		{"no direct", 0, 40, 8, nil, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, RatioB(tc.direct, tc.scheduled, tc.pto, tc.lwop...))
		})
	}
}

func TestRatioB_NeverNaNOrInf(t *testing.T) {
	inputs := []float64{0, -1, 1, 40, math.NaN(), math.Inf(1), math.Inf(-1)}
	for _, d := range inputs {
		for _, s := range inputs {
			for _, p := range inputs {
				got := RatioB(d, s, p)
				assert.False(t, math.IsNaN(got) || math.IsInf(got, 0), "RatioB(%v, %v, %v) = %v", d, s, p, got)
			}
		}
	}
}

func TestRatioBFor_Modes(t *testing.T) {
	assert.Equal(t, 0.5, RatioBFor(domain.LWOPExcluded, 16, 40, 8, 16))
	assert.Equal(t, 1.0, RatioBFor(domain.LWOPSubtracted, 16, 40, 8, 16))
	assert.Equal(t, 0.5, RatioBFor("", 16, 40, 8, 16), "unknown mode keeps the PTO-only formula")
}
