package shindo

import (
	"fmt"
	"math"
	"strings"
)

// Language selects the label set of the intensity classes.
type Language int

const (
	Japanese Language = iota
	English
)

func (l Language) String() string {
	switch l {
	case English:
		return "en"
	default:
		return "jp"
	}
}

// ParseLanguage accepts "jp", "ja", "japanese", "en" and "english".
func ParseLanguage(s string) (Language, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "jp", "ja", "japanese":
		return Japanese, nil
	case "en", "english":
		return English, nil
	default:
		return Japanese, fmt.Errorf("unknown language: %q", s)
	}
}

// Shindo is one class of the JMA seismic intensity scale.
// Range is half-open: [Range[0], Range[1]).
type Shindo struct {
	Name    string
	English string
	Range   []float64
	Color   []int
}

var (
	ShindoList = []*Shindo{
		{
			Name:    "0",
			English: "0",
			Range:   []float64{math.Inf(-1), 0.5},
			Color:   []int{255, 255, 255},
		},
		{
			Name:    "1",
			English: "1",
			Range:   []float64{0.5, 1.5},
			Color:   []int{242, 242, 255},
		},
		{
			Name:    "2",
			English: "2",
			Range:   []float64{1.5, 2.5},
			Color:   []int{0, 170, 255},
		},
		{
			Name:    "3",
			English: "3",
			Range:   []float64{2.5, 3.5},
			Color:   []int{0, 65, 255},
		},
		{
			Name:    "4",
			English: "4",
			Range:   []float64{3.5, 4.5},
			Color:   []int{255, 230, 150},
		},
		{
			Name:    "5弱",
			English: "5-",
			Range:   []float64{4.5, 5.0},
			Color:   []int{255, 230, 0},
		},
		{
			Name:    "5強",
			English: "5+",
			Range:   []float64{5.0, 5.5},
			Color:   []int{255, 153, 0},
		},
		{
			Name:    "6弱",
			English: "6-",
			Range:   []float64{5.5, 6.0},
			Color:   []int{255, 40, 0},
		},
		{
			Name:    "6強",
			English: "6+",
			Range:   []float64{6.0, 6.5},
			Color:   []int{165, 0, 33},
		},
		{
			Name:    "7",
			English: "7",
			Range:   []float64{6.5, math.Inf(1)},
			Color:   []int{180, 0, 104},
		},
	}
)

// Mid is the centre of a bounded class.
func (s *Shindo) Mid() float64 {
	return 0.5 * (s.Range[0] + s.Range[1])
}

func (s *Shindo) Label(lang Language) string {
	if lang == English {
		return s.English
	}
	return s.Name
}

func shindoIndex(value float64) int {
	if math.IsNaN(value) {
		return 0
	}
	for i, s := range ShindoList {
		if value < s.Range[1] {
			return i
		}
	}
	return len(ShindoList) - 1
}

// Class returns the class value falls in.
func Class(value float64) *Shindo {
	return ShindoList[shindoIndex(value)]
}

// Classify returns the label of the class value falls in.
func Classify(value float64, lang Language) string {
	return Class(value).Label(lang)
}

// ShindoColor blends the colours of neighbouring classes linearly between
// their mid points. The outermost classes have a flat colour.
func ShindoColor(value float64) []int {
	ind := shindoIndex(value)
	last := len(ShindoList) - 1
	if ind == 0 || ind == last {
		return ShindoList[ind].Color
	}
	shindo := ShindoList[ind]
	mid := shindo.Mid()
	col := shindo.Color
	var other *Shindo
	if value < mid {
		other = ShindoList[ind-1]
	} else {
		other = ShindoList[ind+1]
	}
	rtn := make([]int, 3)
	if other == ShindoList[0] || other == ShindoList[last] {
		copy(rtn, col)
		return rtn
	}
	omid := other.Mid()
	for i := 0; i < 3; i++ {
		rtn[i] = col[i] + int(float64(other.Color[i]-col[i])*(value-mid)/(omid-mid))
	}
	return rtn
}
