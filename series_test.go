package shindo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSeries(t *testing.T) {
	s := NewSeries([][3]float64{{1, 2, 3}, {-4, 5, -6}}, 0.01)
	require.NoError(t, s.Validate())
	assert.Equal(t, 2, s.Len())
	assert.Equal(t, []float64{1, -4}, s.NS)
	assert.Equal(t, []float64{2, 5}, s.EW)
	assert.Equal(t, []float64{3, -6}, s.UD)

	ns, ew, ud, total := s.Peak()
	assert.Equal(t, 4.0, ns)
	assert.Equal(t, 5.0, ew)
	assert.Equal(t, 6.0, ud)
	assert.InDelta(t, 8.774964387392123, total, 1e-12)
}

func TestMagnitude(t *testing.T) {
	mag := Magnitude([]float64{3, 0}, []float64{4, 0}, []float64{12, -2})
	assert.Equal(t, []float64{13, 2}, mag)
}
