package cmd

import (
	"os"

	"github.com/rs/zerolog/log"
)

func Execute() {
	if err := newBotCmd().Execute(); err != nil {
		log.Err(err).Msg("command execution failed")

		os.Exit(1)
	}
}
