package shindo

import (
	"fmt"
	"strings"

	"github.com/mjibson/go-dsp/fft"
	"gonum.org/v1/gonum/dsp/fourier"
)

// Transformer is a real-input discrete Fourier transform.
// Forward returns len(x)/2+1 bins, Inverse returns n real samples.
type Transformer interface {
	Forward(x []float64) []complex128
	Inverse(c []complex128, n int) []float64
}

// DSP transforms with github.com/mjibson/go-dsp.
type DSP struct{}

func (DSP) Forward(x []float64) []complex128 {
	full := fft.FFTReal(x)
	return full[:len(x)/2+1]
}

func (DSP) Inverse(c []complex128, n int) []float64 {
	full := make([]complex128, n)
	nh := n/2 + 1
	copy(full, c[:nh])
	for i := 1; i < n-nh+1; i++ {
		full[n-i] = complex(real(full[i]), -imag(full[i]))
	}
	seq := fft.IFFT(full)
	rtn := make([]float64, n)
	for i, v := range seq {
		rtn[i] = real(v)
	}
	return rtn
}

// Fourier transforms with gonum's dsp/fourier package.
type Fourier struct{}

func (Fourier) Forward(x []float64) []complex128 {
	return fourier.NewFFT(len(x)).Coefficients(nil, x)
}

func (Fourier) Inverse(c []complex128, n int) []float64 {
	rtn := fourier.NewFFT(n).Sequence(nil, c[:n/2+1])
	scale := 1.0 / float64(n)
	for i := range rtn {
		rtn[i] *= scale
	}
	return rtn
}

// TransformerByName returns the transformer registered as "dsp" or "gonum".
func TransformerByName(name string) (Transformer, error) {
	switch strings.ToLower(name) {
	case "", "dsp", "go-dsp":
		return DSP{}, nil
	case "gonum", "fourier":
		return Fourier{}, nil
	default:
		return nil, fmt.Errorf("unknown transform: %s", name)
	}
}
