package shindo

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"math"
)

const (
	// ADXL355Ts is the sampling period of the ADXL355 units at 62.5 Hz.
	ADXL355Ts = 1.0 / 62.5
	factor    = 980.665 / 256000.0 // LSB to gal
)

var (
	pow19  int = 1 << 19
	pow20  int = 1 << 20
	endian     = binary.LittleEndian
)

func convertSample(b []byte) float64 {
	tmp := int(b[0]) * 4096
	tmp += int(b[1]) * 16
	tmp += int(b[2]) / 16
	if tmp > pow19 {
		tmp -= pow20
	}
	return float64(tmp) * factor
}

// ConvertAcc converts ADXL355's raw 20-bit samples (acc01) to gal.
func ConvertAcc(b []byte) []float64 {
	size := len(b) / 3
	rtn := make([]float64, size)
	for i := 0; i < size; i++ {
		rtn[i] = convertSample(b[3*i : 3*i+3])
	}
	return rtn
}

// ConvertAccPacketWithTime splits the sender's timestamp [ms] from an acc02
// payload and converts the rest.
func ConvertAccPacketWithTime(b []byte) (int64, []float64, int, error) {
	if len(b) <= 12 {
		return 0, nil, 0, fmt.Errorf("not enough data: %d", len(b))
	}
	sendTime := int64(binary.BigEndian.Uint64(b[:8]))
	data, xind, err := ConvertAccPacket(b[12:])
	return sendTime, data, xind, err
}

// ConvertAccPacket converts a sequence of acc02 packets to gal. Each packet
// is a 4-byte big-endian sample count followed by 3-byte samples whose
// lowest bit marks the x axis. The returned index is the position of the
// first x sample; later packets are realigned so that the axes keep
// interleaving x, y, z.
func ConvertAccPacket(b []byte) ([]float64, int, error) {
	rtn := make([]float64, 0)
	packet := 0
	xind := 0
	currentxind := 0
	ind := 0
	for ind+4 <= len(b) {
		size := int32(binary.BigEndian.Uint32(b[ind : ind+4]))
		if size >= math.MaxInt16 || size < 0 {
			return rtn, xind, fmt.Errorf("size overflow: %d", size)
		}
		ind += 4
		if len(b) < ind+3*int(size) {
			return rtn, xind, fmt.Errorf("not enough size: %d < %d", len(b), ind+3*int(size))
		}
		var tmpxind int
		tmpdata := make([]float64, size)
		for i := 0; i < int(size); i++ {
			tmpdata[i] = convertSample(b[ind+3*i : ind+3*i+3])
			if i < 3 && b[ind+3*i+2]&0x1 != 0 {
				tmpxind = i
			}
		}
		if packet == 0 {
			rtn = append(rtn, tmpdata...)
			xind = tmpxind
			currentxind = (xind + (3 - int(size)%3)) % 3
		} else {
			dxind := tmpxind - currentxind
			if dxind < 0 {
				dxind += 3
			}
			if dxind > len(tmpdata) {
				dxind = len(tmpdata)
			}
			rtn = append(rtn, tmpdata[dxind:]...)
			currentxind = (currentxind + (3 - (len(tmpdata)-dxind)%3)) % 3
		}
		packet++
		ind += int(size) * 3
	}
	return rtn, xind, nil
}

// Deinterleave splits x, y, z samples into a Series. ns, ew and ud give the
// sensor axis (0, 1 or 2) mounted along each direction. With baseline the
// mean of each channel is removed.
func Deinterleave(data []float64, ns, ew, ud int, ts float64, baseline bool) (*Series, error) {
	for _, a := range []int{ns, ew, ud} {
		if a < 0 || a > 2 {
			return nil, fmt.Errorf("%w: axis %d", ErrInvalidInput, a)
		}
	}
	n := len(data) / 3
	axes := [3][]float64{make([]float64, n), make([]float64, n), make([]float64, n)}
	var ave [3]float64
	for i := 0; i < 3*n; i++ {
		axes[i%3][i/3] = data[i]
		ave[i%3] += data[i]
	}
	if baseline && n > 0 {
		for a := range axes {
			ave[a] /= float64(n)
			for i := range axes[a] {
				axes[a][i] -= ave[a]
			}
		}
	}
	return &Series{
		NS: axes[ns],
		EW: axes[ew],
		UD: axes[ud],
		Ts: ts,
	}, nil
}

// AccSensor keeps the latest window of interleaved samples of one ADXL355 unit.
type AccSensor struct {
	name       string
	macaddress string
	buffer     []float64
	count      int
	total      int
	ns         int
	ew         int
	ud         int
	ts         float64
}

// NewAccSensor returns a sensor holding window samples per axis.
func NewAccSensor(name, address string, window int, ts float64, ns, ew, ud int) *AccSensor {
	return &AccSensor{
		name:       name,
		macaddress: address,
		buffer:     make([]float64, window*3),
		ns:         ns,
		ew:         ew,
		ud:         ud,
		ts:         ts,
	}
}

func (s *AccSensor) Name() string {
	return s.name
}

func (s *AccSensor) MacAddress() string {
	return s.macaddress
}

func (s *AccSensor) Initialize() {
	s.buffer = make([]float64, len(s.buffer))
	s.count = 0
	s.total = 0
}

// Add appends interleaved x, y, z samples. A trailing partial triple is
// dropped. The oldest samples fall out once the window is full.
func (s *AccSensor) Add(acc []float64) {
	acc = acc[:len(acc)/3*3]
	if len(acc) >= len(s.buffer) {
		copy(s.buffer, acc[len(acc)-len(s.buffer):])
		s.count = len(s.buffer)
	} else {
		if over := s.count + len(acc) - len(s.buffer); over > 0 {
			copy(s.buffer, s.buffer[over:s.count])
			s.count -= over
		}
		copy(s.buffer[s.count:], acc)
		s.count += len(acc)
	}
	s.total += len(acc) / 3
}

// Ready reports whether the window is full.
func (s *AccSensor) Ready() bool {
	return s.count == len(s.buffer)
}

// Received is the number of samples per axis added since the last Initialize.
func (s *AccSensor) Received() int {
	return s.total
}

func (s *AccSensor) Series(baseline bool) (*Series, error) {
	return Deinterleave(s.buffer[:s.count], s.ns, s.ew, s.ud, s.ts, baseline)
}

// Evaluate computes the intensity of the current window.
func (s *AccSensor) Evaluate(c *Calculator, baseline bool) (*Result, error) {
	if !s.Ready() {
		return nil, fmt.Errorf("%w: %s has %d of %d samples", ErrInvalidInput, s.name, s.count/3, len(s.buffer)/3)
	}
	series, err := s.Series(baseline)
	if err != nil {
		return nil, err
	}
	return c.Compute(series)
}

// EncodeIntensity packs the intensity, the a-value and the iteration count
// for publishing.
func EncodeIntensity(r *Result) ([]byte, error) {
	buf := new(bytes.Buffer)
	buf.Grow(12)
	for _, v := range []interface{}{float32(r.Intensity), float32(r.AValue), int32(r.Iterations)} {
		if err := binary.Write(buf, endian, v); err != nil {
			return nil, err
		}
	}
	return buf.Bytes(), nil
}

// DecodeIntensity is the inverse of EncodeIntensity.
func DecodeIntensity(b []byte) (*Result, error) {
	if len(b) < 12 {
		return nil, fmt.Errorf("not enough length: %d", len(b))
	}
	var value, aval float32
	var iter int32
	buf := bytes.NewReader(b)
	for _, v := range []interface{}{&value, &aval, &iter} {
		if err := binary.Read(buf, endian, v); err != nil {
			return nil, err
		}
	}
	return &Result{
		Intensity:  float64(value),
		AValue:     float64(aval),
		Iterations: int(iter),
	}, nil
}
