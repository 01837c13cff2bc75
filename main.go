package main

import (
	"context"
	"errors"
	"flag"
	"io/fs"
	"os"
	"os/signal"
	"syscall"

	"github.com/dickeyy/readme-prs/config"
	"github.com/dickeyy/readme-prs/db"
	"github.com/dickeyy/readme-prs/scraper"
	"github.com/dickeyy/readme-prs/services"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	// .env is optional; CI runs pass everything through the environment.
	if err := godotenv.Load(".env"); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Fatal().Err(err).Msg("failed to load .env file")
	}

	cfg, err := config.Load(os.Args[1:])
	if errors.Is(err, flag.ErrHelp) {
		return
	}
	if err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}

	if level, err := zerolog.ParseLevel(cfg.LogLevel); err == nil && level != zerolog.NoLevel {
		zerolog.SetGlobalLevel(level)
	} else if err != nil {
		log.Warn().Str("log_level", cfg.LogLevel).Msg("unknown log level, using info")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fetcher, err := services.NewFetcher(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create GitHub client")
	}
	log.Info().Bool("token_present", cfg.Token != "").Str("source", cfg.Source).Msg("GitHub fetcher ready")

	var rec scraper.Recorder
	if cfg.DatabaseURL != "" {
		store, err := db.Open(ctx, cfg.DatabaseURL)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to Postgres")
		}
		defer store.Close()
		rec = store
	}

	if err := scraper.Run(ctx, cfg, fetcher, rec, os.Stdout); err != nil {
		log.Fatal().Err(err).Msg("❌ failed to update PR table")
	}
}
