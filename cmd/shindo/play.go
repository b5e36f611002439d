package main

import (
	"context"
	"flag"
	"fmt"
	"path/filepath"

	"github.com/google/subcommands"
	"github.com/yofu/shindo"
)

type playCmd struct {
	directory string
	stride    float64
}

func (*playCmd) Name() string {
	return "play"
}

func (*playCmd) Synopsis() string {
	return "replay dat files and calculate JMA seismic intensity"
}

func (*playCmd) Usage() string {
	return "play [-dir] [-stride] <filename>...\n"
}

func (p *playCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&p.directory, "dir", "", "directory")
	f.Float64Var(&p.stride, "stride", 1.0, "seconds between evaluations")
}

func (p *playCmd) Execute(ctx context.Context, f *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	config := args[0].(*shindo.Config)
	st, err := newStation(config, int(p.stride/config.Samplingperiod+0.5))
	if err != nil {
		log.Errorw("[play]", "error", err)
		return subcommands.ExitFailure
	}
	lang := config.Lang()
	for _, fn := range f.Args() {
		c := make(chan shindo.ServerRecord)
		errc := make(chan error, 1)
		go func(fn string) {
			errc <- shindo.ReadServerRecordChan(filepath.Join(p.directory, fn), c)
		}(fn)
		for rec := range c {
			sensor, r, err := st.feed(rec.Topic, rec.Content)
			if err != nil {
				log.Warnw("[play]", "topic", rec.Topic, "error", err)
				continue
			}
			if r == nil {
				continue
			}
			fmt.Printf("%s, %s, %.1f, %s\n", shindo.ConvertUnixtime(rec.ServerTime).Format("2006-01-02 15:04:05.000"), sensor.Name(), r.Intensity, r.Label(lang))
		}
		if err := <-errc; err != nil {
			log.Errorw("[play]", "file", fn, "error", err)
			return subcommands.ExitFailure
		}
	}
	return subcommands.ExitSuccess
}
