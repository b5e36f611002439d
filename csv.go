package shindo

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/transform"
)

// DefaultSamplingPeriod is used when a record does not state its sampling rate.
const DefaultSamplingPeriod = 0.01

var samplingRate = regexp.MustCompile(`(?i)SAMPLING\s*RATE\s*=\s*([0-9.]+)\s*Hz`)

// ReadCSV reads a JMA strong-motion record: Shift_JIS header lines followed
// by rows of N-S, E-W and U-D accelerations in gal. The header is skipped
// up to the first row with three numeric columns.
func ReadCSV(r io.Reader) (*Series, error) {
	scanner := bufio.NewScanner(transform.NewReader(r, japanese.ShiftJIS.NewDecoder()))
	rows := make([][3]float64, 0)
	ts := DefaultSamplingPeriod
	line := 0
	for scanner.Scan() {
		line++
		t := strings.TrimSpace(scanner.Text())
		if t == "" {
			continue
		}
		row, ok := parseRow(t)
		if !ok {
			if len(rows) > 0 {
				return nil, fmt.Errorf("%w: line %d: %q", ErrInvalidInput, line, t)
			}
			if m := samplingRate.FindStringSubmatch(t); m != nil {
				hz, err := strconv.ParseFloat(m[1], 64)
				if err != nil || hz <= 0 {
					return nil, fmt.Errorf("%w: line %d: sampling rate %q", ErrInvalidInput, line, m[1])
				}
				ts = 1.0 / hz
			}
			continue
		}
		rows = append(rows, row)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: no acceleration rows", ErrInvalidInput)
	}
	return NewSeries(rows, ts), nil
}

// ReadCSVFile reads a JMA strong-motion record from fn.
func ReadCSVFile(fn string) (*Series, error) {
	f, err := os.Open(fn)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadCSV(f)
}

func parseRow(t string) ([3]float64, bool) {
	var row [3]float64
	lis := strings.Split(t, ",")
	if len(lis) < 3 {
		return row, false
	}
	for i := 0; i < 3; i++ {
		v, err := strconv.ParseFloat(strings.TrimSpace(lis[i]), 64)
		if err != nil {
			return row, false
		}
		row[i] = v
	}
	return row, true
}
