package main

import (
	"os"

	"github.com/rs/zerolog/log"

	"github.com/7urk3r/quotevet/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		log.Error().Err(err).Msg("quotevet failed")
		os.Exit(1)
	}
}
