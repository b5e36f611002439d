package shindo

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFrequencies(t *testing.T) {
	f := Frequencies(5, 0.01)
	require.Len(t, f, 5)
	for k, v := range f {
		assert.InDelta(t, 10*float64(k), v, 1e-12)
	}
}

func TestPeriodicEffect(t *testing.T) {
	w := PeriodicEffect([]float64{0, 1, 4})
	assert.InDelta(t, 100.0, w[0], 1e-9)
	assert.InDelta(t, 1/math.Sqrt(1.0001), w[1], 1e-12)
	assert.InDelta(t, 1/math.Sqrt(4.0001), w[2], 1e-12)
}

func TestHighCut(t *testing.T) {
	f := []float64{0, 1, 5, 10, 20, 50}
	w := HighCut(f)
	assert.Equal(t, 1.0, w[0])
	x := 1.0
	expected := 1 / math.Sqrt(1+0.694+0.241+0.0557+0.009664+0.00134+0.000155*x)
	assert.InDelta(t, expected, w[3], 1e-12)
	for i := 1; i < len(w); i++ {
		assert.Less(t, w[i], w[i-1], "high-cut must decrease at %g Hz", f[i])
	}
}

func TestLowCut(t *testing.T) {
	w := LowCut([]float64{0, 0.5, 5})
	assert.Equal(t, 0.0, w[0])
	assert.InDelta(t, math.Sqrt(1-math.Exp(-1)), w[1], 1e-12)
	assert.InDelta(t, 1.0, w[2], 1e-12)
}

func TestFilterWeight(t *testing.T) {
	m := 2049
	ts := 0.01
	w := FilterWeight(m, ts)
	require.Len(t, w, m)
	assert.Equal(t, 0.0, w[0])
	f := Frequencies(m, ts)
	pe := PeriodicEffect(f)
	hc := HighCut(f)
	lc := LowCut(f)
	for _, k := range []int{1, 10, 82, 500, 2048} {
		assert.InDelta(t, pe[k]*hc[k]*lc[k], w[k], 1e-15)
	}
	for _, v := range w {
		assert.GreaterOrEqual(t, v, 0.0)
	}
}

func TestApplyFilterZeroSpectrum(t *testing.T) {
	var spec Spectrum
	for c := range spec {
		spec[c] = make([]complex128, 65)
	}
	ApplyFilter(spec, 0.01)
	for c := range spec {
		for _, v := range spec[c] {
			assert.Equal(t, complex(0, 0), v)
		}
	}
}

func TestApplyFilterSharedWeight(t *testing.T) {
	m := 33
	var spec Spectrum
	for c := range spec {
		spec[c] = make([]complex128, m)
		for i := range spec[c] {
			spec[c][i] = complex(float64(c+1), -float64(c+1))
		}
	}
	ApplyFilter(spec, 0.02)
	w := FilterWeight(m, 0.02)
	for c := range spec {
		for i, v := range spec[c] {
			scale := float64(c + 1)
			assert.InDelta(t, w[i]*scale, real(v), 1e-12)
			assert.InDelta(t, -w[i]*scale, imag(v), 1e-12)
		}
	}
}
