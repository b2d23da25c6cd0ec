package main

import (
	"context"
	"errors"
	"io"
	"os"
	"os/signal"
	"syscall"

	goflags "github.com/jessevdk/go-flags"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/Mostafa1201/coding-challenge-solution/internal/config"
	"github.com/Mostafa1201/coding-challenge-solution/internal/processor"
	"github.com/Mostafa1201/coding-challenge-solution/internal/report"
)

type options struct {
	Config  string `short:"c" long:"config" env:"CONFIG_PATH" description:"Path to the YAML config file; built-in defaults are used when empty"`
	Format  string `short:"f" long:"format" choice:"text" choice:"json" description:"Output format"`
	Events  string `long:"events" description:"Read events from this JSON file"`
	Users   string `long:"users" description:"Read users from this JSON file"`
	Verbose bool   `short:"v" long:"verbose" description:"Enable debug logging"`
}

func main() {
	// Setup logging
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnixMs
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	// .env is optional
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Warn().Err(err).Msg("Failed to load .env")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout); err != nil {
		var flagsErr *goflags.Error
		if errors.As(err, &flagsErr) && flagsErr.Type == goflags.ErrHelp {
			return
		}
		stop()
		log.Fatal().Err(err).Msg("Analysis failed")
	}
}

func parseOptions(args []string) (*options, error) {
	var opts options
	parser := goflags.NewParser(&opts, goflags.Default)
	parser.Name = "analytics"
	parser.LongDescription = "Computes event counts, visitor age, conversion rate, top events and the top funnel path from a user registry and an event log."

	if _, err := parser.ParseArgs(args); err != nil {
		return nil, err
	}
	return &opts, nil
}

func loadConfig(opts *options) (*config.Config, error) {
	cfg := config.Default()
	if opts.Config != "" {
		loaded, err := config.Load(opts.Config)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if opts.Format != "" {
		cfg.Output.Format = opts.Format
	}
	if opts.Events != "" {
		cfg.Events.Source = config.SourceFile
		cfg.Events.File = opts.Events
	}
	if opts.Users != "" {
		cfg.Users.Source = config.SourceFile
		cfg.Users.File = opts.Users
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func run(ctx context.Context, args []string, out io.Writer) error {
	opts, err := parseOptions(args)
	if err != nil {
		return err
	}

	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if opts.Verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	cfg, err := loadConfig(opts)
	if err != nil {
		log.Error().Err(err).Str("path", opts.Config).Msg("Failed to load config")
		return err
	}

	log.Info().
		Str("events_source", cfg.Events.Source).
		Str("users_source", cfg.Users.Source).
		Str("format", cfg.Output.Format).
		Msg("Configuration loaded")

	events, closeEvents, err := newEventSource(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeEvents()

	users, closeUsers, err := newUserSource(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeUsers()

	p := processor.NewProcessor(events, users, cfg.Analysis)
	result, err := p.Run(ctx)
	if err != nil {
		return err
	}

	return report.Write(out, cfg.Output.Format, result, p.TopN())
}
