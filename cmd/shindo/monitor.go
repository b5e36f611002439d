package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"sort"
	"sync"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	ui "github.com/gizak/termui/v3"
	"github.com/gizak/termui/v3/widgets"
	"github.com/google/subcommands"
	dproxy "github.com/koron/go-dproxy"
	"github.com/yofu/shindo"
)

type monitorCmd struct {
	server string
	nrow   int
}

func (*monitorCmd) Name() string {
	return "monitor"
}

func (*monitorCmd) Synopsis() string {
	return "show published JMA seismic intensity of each unit"
}

func (*monitorCmd) Usage() string {
	return "monitor [-server] [-nrow]\n"
}

func (m *monitorCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&m.server, "server", "", "server url:port")
	f.IntVar(&m.nrow, "nrow", 30, "number of rows")
}

type unit struct {
	macaddress   string
	hostname     string
	location     string
	receivedtime time.Time
	intensity    float64
	aval         float64
	max          float64
}

type board struct {
	sync.Mutex
	table *widgets.Table
	units []*unit
	lang  shindo.Language
	nrow  int
}

func (b *board) find(macaddress string) *unit {
	for _, u := range b.units {
		if u.macaddress == macaddress {
			return u
		}
	}
	u := &unit{
		macaddress: macaddress,
		max:        -1,
	}
	b.units = append(b.units, u)
	return u
}

// parseInfo reads the "info" JSON a unit publishes about itself.
func parseInfo(payload []byte) (string, string, error) {
	var v interface{}
	if err := json.Unmarshal(payload, &v); err != nil {
		return "", "", err
	}
	p := dproxy.New(v)
	var d dproxy.Drain
	hostname := d.String(p.M("name"))
	location := d.String(p.M("location"))
	return hostname, location, d.CombineErrors()
}

// update applies msg and reports whether the board changed.
func (b *board) update(topic string, payload []byte) (bool, error) {
	mac, kind, ok := splitTopic(topic)
	if !ok {
		return false, nil
	}
	switch kind {
	case "jma":
		r, err := shindo.DecodeIntensity(payload)
		if err != nil {
			return false, err
		}
		u := b.find(mac)
		u.receivedtime = time.Now()
		u.intensity = r.Intensity
		u.aval = r.AValue
		if r.Intensity > u.max {
			u.max = r.Intensity
		}
	case "info":
		hostname, location, err := parseInfo(payload)
		u := b.find(mac)
		if hostname != "" {
			u.hostname = hostname
		}
		if location != "" {
			u.location = location
		}
		if err != nil {
			return true, err
		}
	default:
		return false, nil
	}
	sort.SliceStable(b.units, func(i, j int) bool {
		return b.units[i].intensity > b.units[j].intensity
	})
	return true, nil
}

// xterm256 maps an RGB colour to the nearest entry of the 6x6x6 cube.
func xterm256(rgb []int) ui.Color {
	c := 16
	for i, w := range []int{36, 6, 1} {
		c += w * ((rgb[i]*5 + 127) / 255)
	}
	return ui.Color(c)
}

func (b *board) rows() ([][]string, map[int]ui.Style) {
	rows := [][]string{{"NO", "NAME", "SHINDO", "I", "MAX", "a [gal]", "TIME", "LOCATION", "ADDRESS"}}
	styles := map[int]ui.Style{0: ui.NewStyle(ui.ColorWhite, ui.ColorClear, ui.ModifierBold)}
	for i, u := range b.units {
		if i >= b.nrow {
			break
		}
		rows = append(rows, []string{
			fmt.Sprintf("%02d", i+1),
			u.hostname,
			shindo.Classify(u.intensity, b.lang),
			fmt.Sprintf("%.1f", u.intensity),
			fmt.Sprintf("%.1f", u.max),
			fmt.Sprintf("%.2f", u.aval),
			u.receivedtime.Format("15:04:05"),
			u.location,
			u.macaddress,
		})
		styles[i+1] = ui.NewStyle(xterm256(shindo.ShindoColor(u.intensity)))
	}
	return rows, styles
}

func (b *board) render() {
	rows, styles := b.rows()
	b.table.Rows = rows
	b.table.RowStyles = styles
	ui.Render(b.table)
}

func (m *monitorCmd) Execute(ctx context.Context, f *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	config := args[0].(*shindo.Config)
	if m.server != "" {
		config.Server = m.server
	}
	if err := ui.Init(); err != nil {
		log.Errorw("[monitor]", "error", err)
		return subcommands.ExitFailure
	}
	defer ui.Close()

	b := &board{
		table: widgets.NewTable(),
		units: make([]*unit, 0),
		lang:  config.Lang(),
		nrow:  m.nrow,
	}
	b.table.Title = "shindo"
	b.table.TextStyle = ui.NewStyle(ui.ColorWhite)
	b.table.RowSeparator = false
	b.table.SetRect(0, 0, 150, m.nrow+3)
	b.render()

	topics := []string{"+/shindo/jma", "+/+/info"}
	client, err := startClient(config, "shindo_monitor", topics, func(client mqtt.Client, msg mqtt.Message) {
		b.Lock()
		defer b.Unlock()
		changed, err := b.update(msg.Topic(), msg.Payload())
		if err != nil {
			log.Debugw("[monitor]", "topic", msg.Topic(), "error", err)
		}
		if changed {
			b.render()
		}
	})
	if err != nil && client == nil {
		log.Errorw("[monitor]", "error", err)
		return subcommands.ExitFailure
	}
	defer client.Disconnect(250)

	done := make(chan struct{})
	defer close(done)
	go keepConnected(done, client, topics)

	for e := range ui.PollEvents() {
		switch e.ID {
		case "q", "<C-c>":
			return subcommands.ExitSuccess
		case "<Resize>":
			b.Lock()
			b.render()
			b.Unlock()
		}
	}
	return subcommands.ExitSuccess
}
