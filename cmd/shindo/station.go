package main

import (
	"fmt"
	"strings"

	"github.com/yofu/shindo"
)

// station routes acceleration messages to the rolling window of each unit
// and evaluates a window every stride samples once it is full.
type station struct {
	config  *shindo.Config
	calc    *shindo.Calculator
	stride  int
	sensors map[string]*shindo.AccSensor
	last    map[string]int
}

func newStation(config *shindo.Config, stride int) (*station, error) {
	calc, err := config.Calculator()
	if err != nil {
		return nil, err
	}
	if stride < 1 {
		stride = 1
	}
	return &station{
		config:  config,
		calc:    calc,
		stride:  stride,
		sensors: make(map[string]*shindo.AccSensor),
		last:    make(map[string]int),
	}, nil
}

// splitTopic returns the unit address and the data kind of
// "<macaddress>/<channel>/<kind>".
func splitTopic(topic string) (string, string, bool) {
	lis := strings.Split(topic, "/")
	if len(lis) < 3 {
		return "", "", false
	}
	return lis[0], lis[2], true
}

func decodeAcc(kind string, payload []byte) ([]float64, error) {
	switch kind {
	case "acc01":
		if len(payload) <= 12 {
			return nil, fmt.Errorf("not enough data: %d", len(payload))
		}
		return shindo.ConvertAcc(payload[12:]), nil
	case "acc02":
		_, acc, xind, err := shindo.ConvertAccPacketWithTime(payload)
		if err != nil {
			return nil, err
		}
		return acc[xind:], nil
	default:
		return nil, nil
	}
}

// feed adds the message to its unit. It returns a result when a window
// was evaluated, and nil otherwise.
func (st *station) feed(topic string, payload []byte) (*shindo.AccSensor, *shindo.Result, error) {
	mac, kind, ok := splitTopic(topic)
	if !ok {
		return nil, nil, nil
	}
	acc, err := decodeAcc(kind, payload)
	if err != nil || acc == nil {
		return nil, nil, err
	}
	sensor, ok := st.sensors[mac]
	if !ok {
		sensor = st.config.NewSensor(mac)
		st.sensors[mac] = sensor
	}
	sensor.Add(acc)
	if !sensor.Ready() || sensor.Received()-st.last[mac] < st.stride {
		return sensor, nil, nil
	}
	st.last[mac] = sensor.Received()
	r, err := sensor.Evaluate(st.calc, st.config.Baseline)
	return sensor, r, err
}
