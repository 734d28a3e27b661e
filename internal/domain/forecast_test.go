package domain

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRound2(t *testing.T) {
	tests := []struct {
		name  string
		input float64
		want  float64
	}{
		{name: "already two places", input: 250, want: 250},
		{name: "repeating fraction", input: 50.0 / 150.0 * 100, want: 33.33},
		{name: "half rounds up", input: 2.345, want: 2.35},
		{name: "negative half rounds away from zero", input: -2.345, want: -2.35},
		{name: "negative repeating fraction", input: -200.0 / 3.0, want: -66.67},
		{name: "small half", input: 1.005, want: 1.01},
		{name: "below half rounds down", input: 0.004, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Round2(tt.input))
		})
	}
}

func TestRound2_NonFinitePassThrough(t *testing.T) {
	assert.True(t, math.IsNaN(Round2(math.NaN())))
	assert.True(t, math.IsInf(Round2(math.Inf(1)), 1))
	assert.True(t, math.IsInf(Round2(math.Inf(-1)), -1))
}
