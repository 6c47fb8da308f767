package service

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/soulgarden/futures-bot/dictionary"
)

type Manager struct {
	logger *zerolog.Logger
}

func NewManager(logger *zerolog.Logger) *Manager {
	return &Manager{logger: logger}
}

// ListenSignal cancels the returned context on the first interrupt and kills
// the process if the run does not wind down within the shutdown window.
func (s *Manager) ListenSignal() context.Context {
	interrupt := make(chan os.Signal, dictionary.SignalChLen)

	signal.Notify(interrupt, os.Interrupt)
	signal.Notify(interrupt, syscall.SIGTERM)

	ctx, cancel := context.WithCancel(context.Background())

	go func() {
		<-interrupt

		s.logger.Warn().Msg("interrupt signal received")

		cancel()

		<-time.After(dictionary.ShutDownDuration)

		s.logger.Warn().Msg("killed by shutdown timeout")

		os.Exit(1)
	}()

	return ctx
}
