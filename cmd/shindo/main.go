package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/yofu/shindo"
)

var (
	conffn = flag.String("config", "", "config file")
	debug  = flag.Bool("debug", false, "debug log")
)

func loadConfig() (*shindo.Config, error) {
	config := shindo.DefaultConfig()
	if *conffn != "" {
		if err := config.ReadConfig(*conffn); err != nil {
			return nil, err
		}
	}
	if *debug {
		config.Debug = true
	}
	return config, nil
}

func main() {
	subcommands.Register(subcommands.HelpCommand(), "")
	subcommands.Register(subcommands.FlagsCommand(), "")
	subcommands.Register(&calcCmd{}, "")
	subcommands.Register(&playCmd{}, "")
	subcommands.Register(&receiveCmd{}, "")
	subcommands.Register(&monitorCmd{}, "")
	flag.Parse()

	config, err := loadConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(int(subcommands.ExitUsageError))
	}
	if err := initLogger(config.Debug); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(int(subcommands.ExitFailure))
	}

	status := subcommands.Execute(context.Background(), config)
	log.Sync()
	os.Exit(int(status))
}
