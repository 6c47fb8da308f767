package service

import (
	"context"
	"fmt"
	"time"

	"github.com/dgraph-io/ristretto"
	"github.com/rs/zerolog"
	"github.com/soulgarden/futures-bot/dictionary"
	"github.com/soulgarden/futures-bot/response"
)

// InstrumentSource resolves a symbol to its trading rules. The builder only
// depends on this interface, so the per-call fetch below can be swapped for
// the cached variant without touching order construction.
type InstrumentSource interface {
	Instrument(ctx context.Context, symbol string) (*response.Instrument, error)
}

type ExchangeInfoClient interface {
	ExchangeInfo(ctx context.Context) (*response.ExchangeInfo, error)
}

// Instruments fetches the full instrument listing on every call and selects
// the exact symbol match.
type Instruments struct {
	client ExchangeInfoClient
	logger *zerolog.Logger
}

func NewInstruments(client ExchangeInfoClient, logger *zerolog.Logger) *Instruments {
	return &Instruments{client: client, logger: logger}
}

func (s *Instruments) Instrument(ctx context.Context, symbol string) (*response.Instrument, error) {
	info, err := s.client.ExchangeInfo(ctx)
	if err != nil {
		s.logger.Err(err).Msg("get exchange info")

		return nil, err
	}

	for _, inst := range info.Symbols {
		if inst.Symbol == symbol {
			return inst, nil
		}
	}

	s.logger.
		Err(dictionary.ErrUnknownSymbol).
		Str("symbol", symbol).
		Msg(dictionary.ErrUnknownSymbol.Error())

	return nil, fmt.Errorf("%w: %s", dictionary.ErrUnknownSymbol, symbol)
}

const cacheNumCounters = 1024
const cacheMaxCost = 256
const cacheBufferItems = 64

// CachedInstruments keeps resolved instruments for a TTL. Lookup misses and
// unknown symbols fall through to the wrapped source.
type CachedInstruments struct {
	source InstrumentSource
	cache  *ristretto.Cache
	ttl    time.Duration
	logger *zerolog.Logger
}

func NewCachedInstruments(
	source InstrumentSource,
	ttl time.Duration,
	logger *zerolog.Logger,
) (*CachedInstruments, error) {
	cache, err := ristretto.NewCache(&ristretto.Config{
		NumCounters: cacheNumCounters,
		MaxCost:     cacheMaxCost,
		BufferItems: cacheBufferItems,
	})
	if err != nil {
		return nil, err
	}

	return &CachedInstruments{source: source, cache: cache, ttl: ttl, logger: logger}, nil
}

func (s *CachedInstruments) Instrument(ctx context.Context, symbol string) (*response.Instrument, error) {
	if v, ok := s.cache.Get(symbol); ok {
		if inst, ok := v.(*response.Instrument); ok {
			s.logger.Debug().Str("symbol", symbol).Msg("instrument cache hit")

			return inst, nil
		}
	}

	inst, err := s.source.Instrument(ctx, symbol)
	if err != nil {
		return nil, err
	}

	s.cache.SetWithTTL(symbol, inst, 1, s.ttl)

	return inst, nil
}

// Wait blocks until pending cache writes are applied.
func (s *CachedInstruments) Wait() {
	s.cache.Wait()
}
