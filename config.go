package shindo

import (
	"fmt"
	"io"
	"os"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
)

// SensorConfig maps a unit's axes to the N-S, E-W and U-D directions.
type SensorConfig struct {
	Name       string `toml:"name"`
	Macaddress string `toml:"macaddress"`
	NS         int    `toml:"ns"`
	EW         int    `toml:"ew"`
	UD         int    `toml:"ud"`
}

type Config struct {
	Server         string         `toml:"server"`
	Cafile         string         `toml:"cafile"`
	Crtfile        string         `toml:"crtfile"`
	Keyfile        string         `toml:"keyfile"`
	Homedir        string         `toml:"homedir"`
	List           []string       `toml:"list"`
	Language       string         `toml:"language"`
	Transform      string         `toml:"transform"`
	Samplingperiod float64        `toml:"samplingperiod"`
	Window         float64        `toml:"window"`
	Maxiterations  int            `toml:"maxiterations"`
	Baseline       bool           `toml:"baseline"`
	Metrics        string         `toml:"metrics"`
	Debug          bool           `toml:"debug"`
	Sensor         []SensorConfig `toml:"sensor"`
}

func DefaultConfig() *Config {
	return &Config{
		Server:         "",
		Homedir:        os.Getenv("HOME"),
		List:           []string{"+/+/acc01", "+/+/acc02"},
		Language:       "jp",
		Transform:      "dsp",
		Samplingperiod: ADXL355Ts,
		Window:         30.0,
		Maxiterations:  DefaultMaxIterations,
		Baseline:       true,
		Metrics:        "",
		Sensor:         make([]SensorConfig, 0),
	}
}

func (c *Config) Println(w io.Writer) {
	fmt.Fprintf(w, "server: %s\n", c.Server)
	fmt.Fprintf(w, "cafile: %s\n", c.Cafile)
	fmt.Fprintf(w, "crtfile: %s\n", c.Crtfile)
	fmt.Fprintf(w, "keyfile: %s\n", c.Keyfile)
	fmt.Fprintf(w, "homedir: %s\n", c.Homedir)
	fmt.Fprintf(w, "language: %s\n", c.Language)
	fmt.Fprintf(w, "transform: %s\n", c.Transform)
	fmt.Fprintf(w, "samplingperiod: %g\n", c.Samplingperiod)
	fmt.Fprintf(w, "window: %g\n", c.Window)
	fmt.Fprintf(w, "maxiterations: %d\n", c.Maxiterations)
	fmt.Fprintf(w, "baseline: %t\n", c.Baseline)
	fmt.Fprintf(w, "metrics: %s\n", c.Metrics)
	fmt.Fprint(w, "list:\n")
	for i, t := range c.List {
		fmt.Fprintf(w, "    %d: %s\n", i, t)
	}
	fmt.Fprint(w, "sensor:\n")
	for i, s := range c.Sensor {
		fmt.Fprintf(w, "    %d: %s %s ns=%d ew=%d ud=%d\n", i, s.Name, s.Macaddress, s.NS, s.EW, s.UD)
	}
	fmt.Fprintln(w, "")
}

// ReadConfig overlays the TOML file fn on c.
func (c *Config) ReadConfig(fn string) error {
	b, err := os.ReadFile(fn)
	if err != nil {
		return err
	}
	if err := toml.Unmarshal(b, c); err != nil {
		return fmt.Errorf("%s: %w", fn, err)
	}
	return c.Validate()
}

func (c *Config) Validate() error {
	if _, err := ParseLanguage(c.Language); err != nil {
		return err
	}
	if _, err := TransformerByName(c.Transform); err != nil {
		return err
	}
	if !(c.Samplingperiod > 0) {
		return fmt.Errorf("samplingperiod must be positive: %g", c.Samplingperiod)
	}
	if c.WindowSize() < 1 {
		return fmt.Errorf("window %g s holds no sample at %g s", c.Window, c.Samplingperiod)
	}
	for _, s := range c.Sensor {
		if s.Macaddress == "" {
			return fmt.Errorf("sensor %q: macaddress is empty", s.Name)
		}
		for _, a := range []int{s.NS, s.EW, s.UD} {
			if a < 0 || a > 2 {
				return fmt.Errorf("sensor %q: axis %d out of range", s.Name, a)
			}
		}
		if s.NS == s.EW || s.EW == s.UD || s.UD == s.NS {
			return fmt.Errorf("sensor %q: axes must differ", s.Name)
		}
	}
	return nil
}

func (c *Config) Lang() Language {
	l, _ := ParseLanguage(c.Language)
	return l
}

// WindowSize is the number of samples per axis in one evaluation window.
func (c *Config) WindowSize() int {
	return int(c.Window/c.Samplingperiod + 0.5)
}

func (c *Config) Calculator() (*Calculator, error) {
	t, err := TransformerByName(c.Transform)
	if err != nil {
		return nil, err
	}
	return NewCalculator(WithTransformer(t), WithMaxIterations(c.Maxiterations)), nil
}

// SensorFor returns the sensor registered for macaddress. Unknown units get
// the identity axis mapping and their address as name.
func (c *Config) SensorFor(macaddress string) SensorConfig {
	for _, s := range c.Sensor {
		if strings.EqualFold(s.Macaddress, macaddress) {
			return s
		}
	}
	return SensorConfig{
		Name:       macaddress,
		Macaddress: macaddress,
		NS:         0,
		EW:         1,
		UD:         2,
	}
}

// Broker returns the configured MQTT server, or $MQTTSERVER when none is set.
func (c *Config) Broker() (string, error) {
	if c.Server != "" {
		return c.Server, nil
	}
	if env := os.Getenv("MQTTSERVER"); env != "" {
		return env, nil
	}
	return "", fmt.Errorf("mqtt server not found")
}

// NewSensor creates the rolling window for macaddress.
func (c *Config) NewSensor(macaddress string) *AccSensor {
	s := c.SensorFor(macaddress)
	return NewAccSensor(s.Name, s.Macaddress, c.WindowSize(), c.Samplingperiod, s.NS, s.EW, s.UD)
}
