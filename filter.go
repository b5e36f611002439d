package shindo

import "math"

const (
	periodicEpsilon = 1e-4 // avoids the pole at f = 0
	highCutScale    = 10.0
	lowCutCorner    = 0.5
)

// Frequencies returns the frequency of each of the m bins of a half
// spectrum sampled every ts seconds.
func Frequencies(m int, ts float64) []float64 {
	rtn := make([]float64, m)
	for k := range rtn {
		rtn[k] = float64(k) / (float64(m) * ts * 2)
	}
	return rtn
}

// PeriodicEffect is the JMA periodic-effect filter.
func PeriodicEffect(f []float64) []float64 {
	rtn := make([]float64, len(f))
	for i, v := range f {
		rtn[i] = math.Sqrt(1 / (v + periodicEpsilon))
	}
	return rtn
}

// HighCut is the JMA high-cut filter, a 12th-order rational approximation.
func HighCut(f []float64) []float64 {
	rtn := make([]float64, len(f))
	for i, v := range f {
		x2 := math.Pow(v/highCutScale, 2)
		x4 := x2 * x2
		x6 := x4 * x2
		x8 := x4 * x4
		x10 := x8 * x2
		x12 := x6 * x6
		rtn[i] = 1 / math.Sqrt(1+0.694*x2+0.241*x4+0.0557*x6+0.009664*x8+0.00134*x10+0.000155*x12)
	}
	return rtn
}

// LowCut is the JMA low-cut filter.
func LowCut(f []float64) []float64 {
	rtn := make([]float64, len(f))
	for i, v := range f {
		rtn[i] = math.Sqrt(1 - math.Exp(-math.Pow(v/lowCutCorner, 3)))
	}
	return rtn
}

// FilterWeight returns the combined JMA filter for m bins.
func FilterWeight(m int, ts float64) []float64 {
	f := Frequencies(m, ts)
	pe := PeriodicEffect(f)
	hc := HighCut(f)
	lc := LowCut(f)
	rtn := make([]float64, m)
	for i := range rtn {
		rtn[i] = pe[i] * hc[i] * lc[i]
	}
	return rtn
}

// ApplyFilter scales every bin of the three channels in place by the same
// JMA weight.
func ApplyFilter(spec Spectrum, ts float64) {
	fil := FilterWeight(len(spec[0]), ts)
	for c := range spec {
		for i := range spec[c] {
			spec[c][i] *= complex(fil[i], 0)
		}
	}
}
