package shindo

import (
	"errors"
	"fmt"
	"math"
)

var (
	ErrInvalidInput   = errors.New("invalid input")
	ErrDomain         = errors.New("domain error")
	ErrNonConvergence = errors.New("a-value search did not converge")
)

// Series is a three-axis acceleration record in gal sampled every Ts seconds.
type Series struct {
	NS []float64
	EW []float64
	UD []float64
	Ts float64
}

// NewSeries builds a Series from rows of (N-S, E-W, U-D) samples.
func NewSeries(rows [][3]float64, ts float64) *Series {
	s := &Series{
		NS: make([]float64, len(rows)),
		EW: make([]float64, len(rows)),
		UD: make([]float64, len(rows)),
		Ts: ts,
	}
	for i, r := range rows {
		s.NS[i] = r[0]
		s.EW[i] = r[1]
		s.UD[i] = r[2]
	}
	return s
}

func (s *Series) Len() int {
	return len(s.NS)
}

func (s *Series) channels() [3][]float64 {
	return [3][]float64{s.NS, s.EW, s.UD}
}

// Validate reports an ErrInvalidInput when s cannot be transformed.
func (s *Series) Validate() error {
	if s == nil {
		return fmt.Errorf("%w: nil series", ErrInvalidInput)
	}
	if !(s.Ts > 0) || math.IsInf(s.Ts, 0) {
		return fmt.Errorf("%w: sampling period %v", ErrInvalidInput, s.Ts)
	}
	n := len(s.NS)
	if n == 0 {
		return fmt.Errorf("%w: empty series", ErrInvalidInput)
	}
	if len(s.EW) != n || len(s.UD) != n {
		return fmt.Errorf("%w: channel lengths %d/%d/%d", ErrInvalidInput, len(s.NS), len(s.EW), len(s.UD))
	}
	for c, ch := range s.channels() {
		for i, v := range ch {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return fmt.Errorf("%w: channel %d sample %d is %v", ErrInvalidInput, c, i, v)
			}
		}
	}
	return nil
}

// Peak returns the largest absolute value of each channel and of the
// unfiltered three-axis norm.
func (s *Series) Peak() (ns, ew, ud, total float64) {
	for i := 0; i < s.Len(); i++ {
		ns = math.Max(ns, math.Abs(s.NS[i]))
		ew = math.Max(ew, math.Abs(s.EW[i]))
		ud = math.Max(ud, math.Abs(s.UD[i]))
		total = math.Max(total, math.Sqrt(s.NS[i]*s.NS[i]+s.EW[i]*s.EW[i]+s.UD[i]*s.UD[i]))
	}
	return
}

// Spectrum holds the half spectra of the N-S, E-W and U-D channels.
type Spectrum [3][]complex128

// Magnitude returns the per-sample Euclidean norm of three equally long channels.
func Magnitude(ns, ew, ud []float64) []float64 {
	rtn := make([]float64, len(ns))
	for i := range rtn {
		rtn[i] = math.Sqrt(ns[i]*ns[i] + ew[i]*ew[i] + ud[i]*ud[i])
	}
	return rtn
}
