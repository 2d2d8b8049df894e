// Package blackjack parses table command flags and starts the interactive game.
package blackjack

import (
	"context"
	"flag"
	"fmt"
	"io"
	"math/rand"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	entrypoint "github.com/louisbranch/blackjack/internal/platform/cmd"
	"github.com/louisbranch/blackjack/internal/platform/i18n"
	"github.com/louisbranch/blackjack/internal/random"
	"github.com/louisbranch/blackjack/internal/table"
)

var tracer trace.Tracer = otel.Tracer(entrypoint.ServiceBlackjack)

// Config holds blackjack command configuration.
type Config struct {
	Locale string `env:"BLACKJACK_LOCALE" envDefault:"en-US"`
	Seed   int64  `env:"BLACKJACK_SEED"`
}

// ParseConfig parses environment and flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}
	fs.StringVar(&cfg.Locale, "locale", cfg.Locale, "table locale (en-US or pt-BR)")
	fs.Int64Var(&cfg.Seed, "seed", cfg.Seed, "deck shuffle seed (0 picks a random seed)")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Run plays one interactive round at the table, reading choices from in and
// writing the table to out.
func Run(ctx context.Context, cfg Config, out io.Writer, in io.Reader) error {
	if out == nil {
		out = io.Discard
	}

	seed := cfg.Seed
	if seed == 0 {
		generated, err := random.NewSeed()
		if err != nil {
			return fmt.Errorf("generate seed: %w", err)
		}
		seed = generated
	}
	rng := rand.New(rand.NewSource(seed))
	loc := i18n.Printer(i18n.ResolveTag(cfg.Locale))

	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServiceBlackjack, func(ctx context.Context) error {
		ctx, span := tracer.Start(ctx, "table.round")
		defer span.End()

		won, err := table.Run(ctx, rng, loc, out, in)
		if err != nil {
			span.RecordError(err)
			return err
		}
		span.SetAttributes(attribute.Bool("table.player_won", won))
		return nil
	})
}
