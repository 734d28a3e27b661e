package regression

import (
	"errors"
	"fmt"
	"math"
)

// ErrDegenerateInput is returned when a line cannot be fitted or a growth
// rate cannot be derived from the series (too few points, zero variance in x,
// zero mean in y, or a non-finite result)
var ErrDegenerateInput = errors.New("degenerate regression input")

// Point is one observation of the series: X is the integer index, Y the value
type Point struct {
	X int
	Y float64
}

// Line is an ordinary least-squares fit over a series
type Line struct {
	Slope     float64
	Intercept float64
	Average   float64 // mean(y)
	N         int
}

// Fit computes the ordinary least-squares line through points using the
// closed-form normal equations:
//
//	slope     = (n·Σxy − Σx·Σy) / (n·Σx² − (Σx)²)
//	intercept = (Σy − slope·Σx) / n
//
// Fails with ErrDegenerateInput when n < 2, when every x is identical,
// or when the inputs produce a non-finite result
func Fit(points []Point) (Line, error) {
	n := len(points)
	if n < 2 {
		return Line{}, fmt.Errorf("%w: need at least 2 points, got %d", ErrDegenerateInput, n)
	}

	var sumX, sumY, sumXY, sumXX float64
	for _, p := range points {
		x := float64(p.X)
		sumX += x
		sumY += p.Y
		sumXY += x * p.Y
		sumXX += x * x
	}

	fn := float64(n)
	denominator := fn*sumXX - sumX*sumX
	if denominator == 0 {
		return Line{}, fmt.Errorf("%w: x values have zero variance", ErrDegenerateInput)
	}

	slope := (fn*sumXY - sumX*sumY) / denominator
	intercept := (sumY - slope*sumX) / fn
	average := sumY / fn

	if !isFinite(slope) || !isFinite(intercept) || !isFinite(average) {
		return Line{}, fmt.Errorf("%w: non-finite fit", ErrDegenerateInput)
	}

	return Line{
		Slope:     slope,
		Intercept: intercept,
		Average:   average,
		N:         n,
	}, nil
}

// FitSeries fits a line over values indexed 0..n-1
func FitSeries(values []float64) (Line, error) {
	points := make([]Point, len(values))
	for i, v := range values {
		points[i] = Point{X: i, Y: v}
	}
	return Fit(points)
}

// Predict extrapolates the line at index x
func (l Line) Predict(x int) float64 {
	return l.Slope*float64(x) + l.Intercept
}

// GrowthRate returns the slope as a percentage of the series mean.
// Fails with ErrDegenerateInput when the mean is zero.
func (l Line) GrowthRate() (float64, error) {
	if l.Average == 0 {
		return 0, fmt.Errorf("%w: series mean is zero", ErrDegenerateInput)
	}

	rate := l.Slope / l.Average * 100
	if !isFinite(rate) {
		return 0, fmt.Errorf("%w: non-finite growth rate", ErrDegenerateInput)
	}
	return rate, nil
}

// GrowthRateOrZero returns the growth rate, substituting 0% for a degenerate series
func (l Line) GrowthRateOrZero() float64 {
	rate, err := l.GrowthRate()
	if err != nil {
		return 0
	}
	return rate
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
