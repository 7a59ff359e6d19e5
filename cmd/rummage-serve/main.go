package main

import (
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/joerivera/rummage/config"
	"github.com/joerivera/rummage/server"
)

func main() {
	cfg := config.New()

	output := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	if cfg.GetBool("debug") {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
	log.Logger = zerolog.New(output).With().Timestamp().Logger()

	srv := server.New(cfg)
	if err := srv.ListenAndServe(); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
}
