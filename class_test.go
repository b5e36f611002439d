package shindo

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		value float64
		en    string
		jp    string
	}{
		{-1, "0", "0"},
		{0.49, "0", "0"},
		{0.5, "1", "1"},
		{1.49, "1", "1"},
		{1.5, "2", "2"},
		{2.5, "3", "3"},
		{3.5, "4", "4"},
		{4.49, "4", "4"},
		{4.5, "5-", "5弱"},
		{4.99, "5-", "5弱"},
		{5.0, "5+", "5強"},
		{5.49, "5+", "5強"},
		{5.5, "6-", "6弱"},
		{5.99, "6-", "6弱"},
		{6.0, "6+", "6強"},
		{6.49, "6+", "6強"},
		{6.5, "7", "7"},
		{100, "7", "7"},
		{math.Inf(1), "7", "7"},
		{math.Inf(-1), "0", "0"},
		{math.NaN(), "0", "0"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.en, Classify(tt.value, English), "en %v", tt.value)
		assert.Equal(t, tt.jp, Classify(tt.value, Japanese), "jp %v", tt.value)
	}
}

func TestShindoListContiguous(t *testing.T) {
	for i := 1; i < len(ShindoList); i++ {
		assert.Equal(t, ShindoList[i-1].Range[1], ShindoList[i].Range[0])
	}
}

func TestParseLanguage(t *testing.T) {
	for s, expected := range map[string]Language{
		"jp": Japanese, "JA": Japanese, "japanese": Japanese,
		"en": English, " English ": English,
	} {
		l, err := ParseLanguage(s)
		require.NoError(t, err, s)
		assert.Equal(t, expected, l, s)
	}
	_, err := ParseLanguage("fr")
	assert.Error(t, err)
	assert.Equal(t, "jp", Japanese.String())
	assert.Equal(t, "en", English.String())
}

func TestShindoColor(t *testing.T) {
	assert.Equal(t, []int{255, 255, 255}, ShindoColor(0.2))
	assert.Equal(t, []int{180, 0, 104}, ShindoColor(7.0))
	assert.Equal(t, []int{0, 65, 255}, ShindoColor(3.0))
	// halfway between the mids of 3 and 4, seen from class 4
	assert.Equal(t, []int{128, 148, 202}, ShindoColor(3.5))
	// next to the flat classes the colour does not blend
	assert.Equal(t, []int{242, 242, 255}, ShindoColor(0.6))
	assert.Equal(t, []int{165, 0, 33}, ShindoColor(6.4))
}
