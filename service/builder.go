package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/soulgarden/futures-bot/dictionary"
	"github.com/soulgarden/futures-bot/request"
)

// Builder turns raw order intent into a wire-correct create order request.
// Limit and stop-limit quantities and prices are rounded to the precision
// the exchange declares for the symbol; anything else is rejected before a
// single network call is made.
//
// Rounding rule: banker's rounding (half to even) on the exact decimal
// parsed from the user's input, then fixed-point formatting, so the wire
// value always carries exactly `precision` fractional digits.
type Builder struct {
	instruments InstrumentSource
	logger      *zerolog.Logger
}

func NewBuilder(instruments InstrumentSource, logger *zerolog.Logger) *Builder {
	return &Builder{instruments: instruments, logger: logger}
}

// BuildMarketOrder passes the quantity through as given: market orders are
// submitted without an instrument lookup and without normalization.
func (s *Builder) BuildMarketOrder(symbol, side string, quantity decimal.Decimal) (*request.CreateOrder, error) {
	if err := s.validateIntent(symbol, side, quantity); err != nil {
		return nil, err
	}

	return &request.CreateOrder{
		Symbol:   symbol,
		Side:     side,
		Type:     dictionary.TypeMarket,
		Quantity: quantity.String(),
	}, nil
}

func (s *Builder) BuildLimitOrder(
	ctx context.Context,
	symbol, side string,
	quantity, price decimal.Decimal,
) (*request.CreateOrder, error) {
	if err := s.validateIntent(symbol, side, quantity); err != nil {
		return nil, err
	}

	if price.LessThanOrEqual(dictionary.ZeroDecimal) {
		return nil, fmt.Errorf("%w: %s", dictionary.ErrMissingPrice, price)
	}

	inst, err := s.instruments.Instrument(ctx, symbol)
	if err != nil {
		return nil, err
	}

	r := &request.CreateOrder{
		Symbol:      symbol,
		Side:        side,
		Type:        dictionary.TypeLimit,
		TimeInForce: dictionary.TifGTC,
		Quantity:    fixedPrecision(quantity, inst.QuantityPrecision),
		Price:       fixedPrecision(price, inst.PricePrecision),
	}

	s.logger.Debug().
		Str("symbol", symbol).
		Str("quantity", r.Quantity).
		Str("price", r.Price).
		Msg("limit order built")

	return r, nil
}

func (s *Builder) BuildStopLimitOrder(
	ctx context.Context,
	symbol, side string,
	quantity, price, stopPrice decimal.Decimal,
) (*request.CreateOrder, error) {
	if err := s.validateIntent(symbol, side, quantity); err != nil {
		return nil, err
	}

	if price.LessThanOrEqual(dictionary.ZeroDecimal) {
		return nil, fmt.Errorf("%w: %s", dictionary.ErrMissingPrice, price)
	}

	if stopPrice.LessThanOrEqual(dictionary.ZeroDecimal) {
		return nil, fmt.Errorf("%w: %s", dictionary.ErrMissingStopPrice, stopPrice)
	}

	inst, err := s.instruments.Instrument(ctx, symbol)
	if err != nil {
		return nil, err
	}

	r := &request.CreateOrder{
		Symbol:      symbol,
		Side:        side,
		Type:        dictionary.TypeStopLimit,
		TimeInForce: dictionary.TifGTC,
		Quantity:    fixedPrecision(quantity, inst.QuantityPrecision),
		Price:       fixedPrecision(price, inst.PricePrecision),
		StopPrice:   fixedPrecision(stopPrice, inst.PricePrecision),
	}

	s.logger.Debug().
		Str("symbol", symbol).
		Str("quantity", r.Quantity).
		Str("price", r.Price).
		Str("stop_price", r.StopPrice).
		Msg("stop limit order built")

	return r, nil
}

func (s *Builder) validateIntent(symbol, side string, quantity decimal.Decimal) error {
	if symbol == "" {
		return dictionary.ErrMissingSymbol
	}

	if side != dictionary.SideBuy && side != dictionary.SideSell {
		return fmt.Errorf("%w: %s", dictionary.ErrInvalidSide, side)
	}

	if quantity.LessThanOrEqual(dictionary.ZeroDecimal) {
		return fmt.Errorf("%w: %s", dictionary.ErrInvalidQuantity, quantity)
	}

	return nil
}

func fixedPrecision(d decimal.Decimal, precision int) string {
	return d.RoundBank(int32(precision)).StringFixed(int32(precision))
}
