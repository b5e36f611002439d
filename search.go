package shindo

import (
	"fmt"
	"math"
)

const (
	// TRef is the cumulative duration in seconds the a-value is exceeded for.
	TRef = 0.3
	// Tolerance is the accepted deviation from TRef.
	Tolerance = TRef * 0.001
	// InitialAValue is the first estimate of the search in gal.
	InitialAValue = 2000.0
	// DefaultMaxIterations bounds the search.
	DefaultMaxIterations = 1000
)

// NonConvergenceError is returned when the a-value search exhausts its
// iteration budget.
type NonConvergenceError struct {
	Iterations int
	AValue     float64
	Duration   float64
}

func (e *NonConvergenceError) Error() string {
	return fmt.Sprintf("%v after %d iterations (a=%g gal, %.4f s above)", ErrNonConvergence, e.Iterations, e.AValue, e.Duration)
}

func (e *NonConvergenceError) Is(target error) bool {
	return target == ErrNonConvergence
}

// DurationAbove returns how long mag stays at or above a.
func DurationAbove(mag []float64, a, ts float64) float64 {
	count := 0
	for _, v := range mag {
		if v >= a {
			count++
		}
	}
	return float64(count) * ts
}

// FindAValue searches the a-value of mag with DefaultMaxIterations.
func FindAValue(mag []float64, ts float64) (float64, error) {
	aval, _, err := SearchAValue(mag, ts, DefaultMaxIterations)
	return aval, err
}

// SearchAValue starts at InitialAValue, halves the estimate while the
// exceedance duration is too short and grows it by half while too long,
// until the duration lies within TRef ± Tolerance. It returns the a-value
// and the number of iterations spent. maxIter <= 0 means
// DefaultMaxIterations.
func SearchAValue(mag []float64, ts float64, maxIter int) (float64, int, error) {
	if len(mag) == 0 || !(ts > 0) {
		return 0, 0, fmt.Errorf("%w: %d samples, sampling period %v", ErrInvalidInput, len(mag), ts)
	}
	if maxIter <= 0 {
		maxIter = DefaultMaxIterations
	}
	aval := InitialAValue
	var above float64
	for i := 0; i < maxIter; i++ {
		above = DurationAbove(mag, aval, ts)
		switch {
		case above < TRef-Tolerance:
			aval -= aval / 2
		case above > TRef+Tolerance:
			aval += aval / 2
		default:
			return aval, i, nil
		}
		if math.IsNaN(aval) {
			break
		}
	}
	return aval, maxIter, &NonConvergenceError{
		Iterations: maxIter,
		AValue:     aval,
		Duration:   above,
	}
}
