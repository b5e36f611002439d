package shindo

import (
	"fmt"
	"math"
)

// Result is the outcome of one intensity computation.
type Result struct {
	AValue     float64 // gal
	Raw        float64 // 2 log10(a) + 0.94 before rounding
	Intensity  float64
	Iterations int
	PeakNS     float64
	PeakEW     float64
	PeakUD     float64
	PeakTotal  float64
}

// Label returns the intensity class of r in lang.
func (r *Result) Label(lang Language) string {
	return Classify(r.Intensity, lang)
}

// Calculator computes the JMA instrumental seismic intensity.
// A Calculator holds no per-call state and may be shared between goroutines.
type Calculator struct {
	Transformer   Transformer
	MaxIterations int
}

type Option func(*Calculator)

func WithTransformer(t Transformer) Option {
	return func(c *Calculator) {
		c.Transformer = t
	}
}

func WithMaxIterations(n int) Option {
	return func(c *Calculator) {
		c.MaxIterations = n
	}
}

func NewCalculator(opts ...Option) *Calculator {
	c := &Calculator{
		Transformer:   DSP{},
		MaxIterations: DefaultMaxIterations,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

var defaultCalculator = NewCalculator()

// Intensity computes the intensity of s with the default calculator.
func Intensity(s *Series) (float64, error) {
	return defaultCalculator.Intensity(s)
}

func (c *Calculator) Intensity(s *Series) (float64, error) {
	r, err := c.Compute(s)
	if err != nil {
		return 0, err
	}
	return r.Intensity, nil
}

// FilteredMagnitude transforms the three channels of s, applies the JMA
// filter and returns the norm of the filtered acceleration at each sample.
func (c *Calculator) FilteredMagnitude(s *Series) ([]float64, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	t := c.Transformer
	if t == nil {
		t = DSP{}
	}
	n := s.Len()
	var spec Spectrum
	for i, ch := range s.channels() {
		spec[i] = t.Forward(ch)
	}
	ApplyFilter(spec, s.Ts)
	ns := t.Inverse(spec[0], n)
	ew := t.Inverse(spec[1], n)
	ud := t.Inverse(spec[2], n)
	return Magnitude(ns, ew, ud), nil
}

// Compute runs the whole pipeline on s.
func (c *Calculator) Compute(s *Series) (*Result, error) {
	mag, err := c.FilteredMagnitude(s)
	if err != nil {
		return nil, err
	}
	aval, iter, err := SearchAValue(mag, s.Ts, c.MaxIterations)
	if err != nil {
		return nil, err
	}
	raw, value, err := FromAValue(aval)
	if err != nil {
		return nil, err
	}
	r := &Result{
		AValue:     aval,
		Raw:        raw,
		Intensity:  value,
		Iterations: iter,
	}
	r.PeakNS, r.PeakEW, r.PeakUD, r.PeakTotal = s.Peak()
	return r, nil
}

// FromAValue converts an a-value in gal to the raw and the reported
// intensity. The raw value is rounded half to even at two decimals and then
// truncated to one decimal.
func FromAValue(aval float64) (float64, float64, error) {
	if !(aval > 0) || math.IsInf(aval, 0) {
		return 0, 0, fmt.Errorf("%w: a-value %v", ErrDomain, aval)
	}
	raw := 2*math.Log10(aval) + 0.94
	rounded := math.RoundToEven(raw*100) / 100
	return raw, math.Floor(rounded*10) / 10, nil
}
