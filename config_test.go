package shindo

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	fn := filepath.Join(t.TempDir(), "shindo.toml")
	require.NoError(t, os.WriteFile(fn, []byte(content), 0644))
	return fn
}

func TestDefaultConfig(t *testing.T) {
	c := DefaultConfig()
	require.NoError(t, c.Validate())
	assert.Equal(t, Japanese, c.Lang())
	assert.Equal(t, 1875, c.WindowSize())
	assert.True(t, c.Baseline)
	calc, err := c.Calculator()
	require.NoError(t, err)
	assert.IsType(t, DSP{}, calc.Transformer)
	assert.Equal(t, DefaultMaxIterations, calc.MaxIterations)
}

func TestReadConfig(t *testing.T) {
	fn := writeConfig(t, `
server = "ssl://127.0.0.1:8883"
list = ["b8:27:eb:a5:88:33/+/acc02"]
language = "en"
transform = "gonum"
samplingperiod = 0.01
window = 20.48
maxiterations = 500
baseline = false

[[sensor]]
name = "flab01"
macaddress = "b8:27:eb:a5:88:33"
ns = 1
ew = 0
ud = 2
`)
	c := DefaultConfig()
	require.NoError(t, c.ReadConfig(fn))
	assert.Equal(t, "ssl://127.0.0.1:8883", c.Server)
	assert.Equal(t, []string{"b8:27:eb:a5:88:33/+/acc02"}, c.List)
	assert.Equal(t, English, c.Lang())
	assert.Equal(t, 2048, c.WindowSize())
	assert.False(t, c.Baseline)
	calc, err := c.Calculator()
	require.NoError(t, err)
	assert.IsType(t, Fourier{}, calc.Transformer)
	assert.Equal(t, 500, calc.MaxIterations)

	s := c.SensorFor("B8:27:EB:A5:88:33")
	assert.Equal(t, "flab01", s.Name)
	assert.Equal(t, 1, s.NS)
	unknown := c.SensorFor("b8:27:eb:00:00:09")
	assert.Equal(t, "b8:27:eb:00:00:09", unknown.Name)
	assert.Equal(t, []int{0, 1, 2}, []int{unknown.NS, unknown.EW, unknown.UD})

	sensor := c.NewSensor("b8:27:eb:a5:88:33")
	assert.Equal(t, "flab01", sensor.Name())

	var buf bytes.Buffer
	c.Println(&buf)
	assert.Contains(t, buf.String(), "transform: gonum")
	assert.Contains(t, buf.String(), "flab01 b8:27:eb:a5:88:33 ns=1 ew=0 ud=2")
}

func TestReadConfigInvalid(t *testing.T) {
	tests := map[string]string{
		"language":  `language = "fr"`,
		"transform": `transform = "fftw"`,
		"period":    `samplingperiod = -1.0`,
		"window":    `window = 0.001`,
		"axis":      "[[sensor]]\nmacaddress = \"a\"\nns = 0\new = 1\nud = 3\n",
		"same axes": "[[sensor]]\nmacaddress = \"a\"\nns = 0\new = 0\nud = 2\n",
		"address":   "[[sensor]]\nname = \"x\"\nns = 0\new = 1\nud = 2\n",
		"syntax":    `window = `,
	}
	for name, content := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Error(t, DefaultConfig().ReadConfig(writeConfig(t, content)))
		})
	}
	assert.Error(t, DefaultConfig().ReadConfig(filepath.Join(t.TempDir(), "missing.toml")))
}

func TestBroker(t *testing.T) {
	t.Setenv("MQTTSERVER", "tcp://192.168.1.23:18884")
	c := DefaultConfig()
	c.Server = "tcp://127.0.0.1:1883"
	s, err := c.Broker()
	require.NoError(t, err)
	assert.Equal(t, "tcp://127.0.0.1:1883", s)

	c.Server = ""
	s, err = c.Broker()
	require.NoError(t, err)
	assert.Equal(t, "tcp://192.168.1.23:18884", s)

	t.Setenv("MQTTSERVER", "")
	_, err = c.Broker()
	assert.Error(t, err)
}
