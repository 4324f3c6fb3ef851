// Package main is the entry point for the homefinder CLI.
package main

import (
	"fmt"
	"os"

	"github.com/homefinder-ke/homefinder/internal/cli"
	"github.com/homefinder-ke/homefinder/internal/config"
	"github.com/homefinder-ke/homefinder/internal/logging"
)

func main() {
	if cfg, err := config.Load(); err == nil {
		logging.Setup(cfg.LogLevel, cfg.DevMode)
	} else {
		logging.Setup(config.DefaultLogLevel, false)
	}

	if err := cli.NewRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}
