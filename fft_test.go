package shindo

import (
	"math"
	"math/cmplx"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sinusoid(n, bin int, amp, phase float64) []float64 {
	rtn := make([]float64, n)
	for i := range rtn {
		rtn[i] = amp * math.Sin(2*math.Pi*float64(bin*i)/float64(n)+phase)
	}
	return rtn
}

var transformers = map[string]Transformer{
	"dsp":   DSP{},
	"gonum": Fourier{},
}

func TestTransformerRoundTrip(t *testing.T) {
	for name, tr := range transformers {
		for _, n := range []int{256, 255, 100} {
			x := sinusoid(n, 7, 3.0, 0.4)
			c := tr.Forward(x)
			require.Len(t, c, n/2+1, "%s n=%d", name, n)
			y := tr.Inverse(c, n)
			require.Len(t, y, n)
			for i := range x {
				assert.InDelta(t, x[i], y[i], 1e-9, "%s n=%d i=%d", name, n, i)
			}
		}
	}
}

func TestTransformerAmplitude(t *testing.T) {
	n := 256
	x := sinusoid(n, 8, 3.0, 0)
	for name, tr := range transformers {
		c := tr.Forward(x)
		assert.InDelta(t, 3.0*float64(n)/2, cmplx.Abs(c[8]), 1e-9, name)
		assert.InDelta(t, 0, cmplx.Abs(c[0]), 1e-9, name)
		assert.InDelta(t, 0, cmplx.Abs(c[9]), 1e-9, name)
	}
}

func TestTransformersAgree(t *testing.T) {
	x := make([]float64, 300)
	for i := range x {
		x[i] = math.Sin(0.1*float64(i)) + 0.5*math.Cos(0.37*float64(i)) + float64(i%7)
	}
	a := DSP{}.Forward(x)
	b := Fourier{}.Forward(x)
	require.Len(t, b, len(a))
	for i := range a {
		assert.InDelta(t, real(a[i]), real(b[i]), 1e-8)
		assert.InDelta(t, imag(a[i]), imag(b[i]), 1e-8)
	}
}

func TestTransformerByName(t *testing.T) {
	tr, err := TransformerByName("")
	require.NoError(t, err)
	assert.IsType(t, DSP{}, tr)
	tr, err = TransformerByName("GONUM")
	require.NoError(t, err)
	assert.IsType(t, Fourier{}, tr)
	_, err = TransformerByName("fftw")
	assert.Error(t, err)
}
