package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/ticklab/backsim/config"
	"github.com/ticklab/backsim/engine"
	"github.com/ticklab/backsim/log"
)

var (
	configPath string
	verbose    bool
)

func main() {
	app := cli.NewApp()
	app.Name = "backsim"
	app.Usage = "deterministic historical replay backtesting"
	app.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:        "config",
			Aliases:     []string{"c"},
			Value:       "config.json",
			Usage:       "path to the run configuration",
			Destination: &configPath,
		},
		&cli.BoolFlag{
			Name:        "verbose",
			Aliases:     []string{"v"},
			Usage:       "enable debug output for every subsystem",
			Destination: &verbose,
		},
	}
	app.Action = func(*cli.Context) error {
		return run()
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	log.SetVerbose(verbose)
	defer func() { _ = log.Sync() }()

	cfg, err := config.ReadConfigFromFile(configPath)
	if err != nil {
		return err
	}
	bt, err := engine.NewFromConfig(cfg)
	if err != nil {
		return err
	}
	if err = bt.Run(); err != nil {
		return err
	}
	if _, err = bt.Results(); err != nil {
		return err
	}
	bt.PrintResults()
	return nil
}
