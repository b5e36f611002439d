package main

import (
	"context"
	"flag"
	"fmt"
	"time"

	"github.com/google/subcommands"
	"github.com/yofu/shindo"
)

type calcCmd struct {
	lang      string
	ts        float64
	transform string
	maxiter   int
	verbose   bool
}

func (*calcCmd) Name() string {
	return "calc"
}

func (*calcCmd) Synopsis() string {
	return "calculate JMA seismic intensity of csv records"
}

func (*calcCmd) Usage() string {
	return "calc [-lang] [-ts] [-transform] [-maxiter] [-v] <filename>...\n"
}

func (c *calcCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.lang, "lang", "", "label language (jp, en)")
	f.Float64Var(&c.ts, "ts", 0, "sampling period [s], overrides the record header")
	f.StringVar(&c.transform, "transform", "", "fft implementation (dsp, gonum)")
	f.IntVar(&c.maxiter, "maxiter", 0, "maximum iterations of a-value search")
	f.BoolVar(&c.verbose, "v", false, "print peaks and timing")
}

func (c *calcCmd) calculator(config *shindo.Config) (*shindo.Calculator, shindo.Language, error) {
	if c.lang != "" {
		config.Language = c.lang
	}
	if c.transform != "" {
		config.Transform = c.transform
	}
	if c.maxiter > 0 {
		config.Maxiterations = c.maxiter
	}
	if err := config.Validate(); err != nil {
		return nil, shindo.Japanese, err
	}
	calc, err := config.Calculator()
	return calc, config.Lang(), err
}

func (c *calcCmd) Execute(ctx context.Context, f *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	if f.NArg() == 0 {
		f.Usage()
		return subcommands.ExitUsageError
	}
	config := args[0].(*shindo.Config)
	calc, lang, err := c.calculator(config)
	if err != nil {
		log.Errorw("invalid option", "error", err)
		return subcommands.ExitUsageError
	}
	status := subcommands.ExitSuccess
	for _, fn := range f.Args() {
		series, err := shindo.ReadCSVFile(fn)
		if err != nil {
			log.Errorw("reading record", "file", fn, "error", err)
			status = subcommands.ExitFailure
			continue
		}
		if c.ts > 0 {
			series.Ts = c.ts
		}
		t0 := time.Now()
		r, err := calc.Compute(series)
		elapsed := time.Since(t0)
		if err != nil {
			log.Errorw("calculating intensity", "file", fn, "error", err)
			status = subcommands.ExitFailure
			continue
		}
		log.Debugw("intensity", "file", fn, "samples", series.Len(), "ts", series.Ts, "aval", r.AValue, "iterations", r.Iterations)
		fmt.Printf("%s\n", fn)
		if c.verbose {
			fmt.Printf("Max. north-south accel.: %.2f gal\n", r.PeakNS)
			fmt.Printf("Max. east-west accel.  : %.2f gal\n", r.PeakEW)
			fmt.Printf("Max. up-down accel.    : %.2f gal\n", r.PeakUD)
			fmt.Printf("Max. total accel.      : %.2f gal\n", r.PeakTotal)
			fmt.Printf("a value                : %.4f gal (%d iterations)\n", r.AValue, r.Iterations)
		}
		fmt.Printf("JMA seismic intensity  : %.1f\n", r.Intensity)
		fmt.Printf("Shindo                 : %s\n", r.Label(lang))
		if c.verbose {
			fmt.Printf("Time                   : %.2f microsec\n", float64(elapsed.Nanoseconds())/1e3)
		}
	}
	return status
}
