// Package main provides the interactive terminal blackjack game.
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/louisbranch/blackjack/internal/platform/config"

	blackjackcmd "github.com/louisbranch/blackjack/internal/cmd/blackjack"
)

func main() {
	if err := config.LoadDotEnv(); err != nil {
		config.Exitf("Error: %v", err)
	}

	cfg, err := blackjackcmd.ParseConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		config.Exitf("Error: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := blackjackcmd.Run(ctx, cfg, os.Stdout, os.Stdin); err != nil {
		config.Exitf("Error: %v", err)
	}
}
