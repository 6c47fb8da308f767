package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/soulgarden/futures-bot/conf"
	"github.com/soulgarden/futures-bot/dictionary"
	"github.com/soulgarden/futures-bot/request"
	"github.com/soulgarden/futures-bot/response"
	"golang.org/x/sync/errgroup"
)

type ExchangeClient interface {
	CreateOrder(ctx context.Context, req *request.CreateOrder) (*response.Order, error)
	CancelOrder(ctx context.Context, req *request.CancelOrder) (*response.Order, error)
	GetOrder(ctx context.Context, req *request.QueryOrder) (*response.Order, error)
	Balances(ctx context.Context) ([]*response.Balance, error)
	Positions(ctx context.Context, symbol string) ([]*response.Position, error)
	ServerTime(ctx context.Context) (*response.ServerTime, error)
	MarkPrice(ctx context.Context, symbol string) (*response.MarkPrice, error)
}

// Notifier announces order events out of band. Nil disables notifications.
type Notifier interface {
	SendSync(msg string)
}

// OrderIntent is the raw user intent before normalization. Price and
// StopPrice are zero when the corresponding flag was not given; the builder
// rejects non-positive values for the order types that need them.
type OrderIntent struct {
	Symbol    string
	Side      string
	Type      string
	Quantity  decimal.Decimal
	Price     decimal.Decimal
	StopPrice decimal.Decimal
}

// Trader drives one operation per process run: build, submit, report. All
// errors are propagated unchanged, an order is either fully submitted or not
// submitted at all.
type Trader struct {
	cfg      *conf.Bot
	client   ExchangeClient
	builder  *Builder
	notifier Notifier
	logger   *zerolog.Logger
}

func NewTrader(
	cfg *conf.Bot,
	client ExchangeClient,
	builder *Builder,
	notifier Notifier,
	logger *zerolog.Logger,
) *Trader {
	return &Trader{cfg: cfg, client: client, builder: builder, notifier: notifier, logger: logger}
}

func (s *Trader) PlaceOrder(ctx context.Context, intent *OrderIntent) (*response.Order, error) {
	var req *request.CreateOrder

	var err error

	switch intent.Type {
	case dictionary.TypeMarket:
		req, err = s.builder.BuildMarketOrder(intent.Symbol, intent.Side, intent.Quantity)
	case dictionary.TypeLimit:
		req, err = s.builder.BuildLimitOrder(ctx, intent.Symbol, intent.Side, intent.Quantity, intent.Price)
	case dictionary.TypeStopLimit:
		req, err = s.builder.BuildStopLimitOrder(
			ctx,
			intent.Symbol,
			intent.Side,
			intent.Quantity,
			intent.Price,
			intent.StopPrice,
		)
	default:
		err = fmt.Errorf("%w: %s", dictionary.ErrInvalidOrderType, intent.Type)
	}

	if err != nil {
		s.logger.Err(err).Str("symbol", intent.Symbol).Str("type", intent.Type).Msg("build order")

		return nil, err
	}

	order, err := s.client.CreateOrder(ctx, req)
	if err != nil {
		s.logger.Err(err).Str("symbol", req.Symbol).Str("type", req.Type).Msg("create order")

		return nil, err
	}

	s.logger.Info().
		Int64("oid", order.OrderID).
		Str("symbol", order.Symbol).
		Str("side", req.Side).
		Str("type", req.Type).
		Str("quantity", req.Quantity).
		Str("status", order.Status).
		Msg("order placed")

	s.notify(fmt.Sprintf(
		"env: %s, %s %s %s placed, quantity %s, order id %d",
		s.cfg.Env, req.Side, req.Type, req.Symbol, req.Quantity, order.OrderID,
	))

	return order, nil
}

func (s *Trader) OrderStatus(ctx context.Context, req *request.QueryOrder) (*response.Order, error) {
	if req.OrderID == 0 && req.OrigClientOrderID == "" {
		return nil, dictionary.ErrMissingOrderID
	}

	order, err := s.client.GetOrder(ctx, req)
	if err != nil {
		s.logger.Err(err).Str("symbol", req.Symbol).Int64("oid", req.OrderID).Msg("get order")

		return nil, err
	}

	s.logger.Info().Int64("oid", order.OrderID).Str("status", order.Status).Msg("order state")

	return order, nil
}

func (s *Trader) CancelOrder(ctx context.Context, req *request.CancelOrder) (*response.Order, error) {
	if req.OrderID == 0 && req.OrigClientOrderID == "" {
		return nil, dictionary.ErrMissingOrderID
	}

	order, err := s.client.CancelOrder(ctx, req)
	if err != nil {
		s.logger.Err(err).Str("symbol", req.Symbol).Int64("oid", req.OrderID).Msg("cancel order")

		return nil, err
	}

	s.logger.Info().Int64("oid", order.OrderID).Str("status", order.Status).Msg("order cancelled")

	s.notify(fmt.Sprintf("env: %s, %s order %d cancelled", s.cfg.Env, order.Symbol, order.OrderID))

	return order, nil
}

// Account fetches balances and positions in parallel for the combined view.
func (s *Trader) Account(ctx context.Context) ([]*response.Balance, []*response.Position, error) {
	var balances []*response.Balance

	var positions []*response.Position

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var err error

		balances, err = s.client.Balances(ctx)

		return err
	})

	g.Go(func() error {
		var err error

		positions, err = s.client.Positions(ctx, "")

		return err
	})

	if err := g.Wait(); err != nil {
		s.logger.Err(err).Msg("get account")

		return nil, nil, err
	}

	return balances, positions, nil
}

func (s *Trader) Balances(ctx context.Context) ([]*response.Balance, error) {
	balances, err := s.client.Balances(ctx)
	if err != nil {
		s.logger.Err(err).Msg("get balances")

		return nil, err
	}

	return balances, nil
}

func (s *Trader) Positions(ctx context.Context, symbol string) ([]*response.Position, error) {
	positions, err := s.client.Positions(ctx, symbol)
	if err != nil {
		s.logger.Err(err).Str("symbol", symbol).Msg("get positions")

		return nil, err
	}

	return positions, nil
}

func (s *Trader) MarkPrice(ctx context.Context, symbol string) (decimal.Decimal, error) {
	if symbol == "" {
		return dictionary.ZeroDecimal, dictionary.ErrMissingSymbol
	}

	r, err := s.client.MarkPrice(ctx, symbol)
	if err != nil {
		s.logger.Err(err).Str("symbol", symbol).Msg("get mark price")

		return dictionary.ZeroDecimal, err
	}

	price, err := decimal.NewFromString(r.MarkPrice)
	if err != nil {
		s.logger.Err(dictionary.ErrParseDecimal).Str("val", r.MarkPrice).Msg(dictionary.ErrParseDecimal.Error())

		return dictionary.ZeroDecimal, fmt.Errorf("%w: %s", dictionary.ErrParseDecimal, r.MarkPrice)
	}

	s.logger.Info().Str("symbol", symbol).Str("price", price.String()).Msg("mark price")

	return price, nil
}

func (s *Trader) ServerTime(ctx context.Context) (*response.ServerTime, error) {
	r, err := s.client.ServerTime(ctx)
	if err != nil {
		s.logger.Err(err).Msg("get server time")

		return nil, err
	}

	s.logger.Info().Int64("server_time", r.ServerTime).Msg("server time")

	return r, nil
}

func (s *Trader) notify(msg string) {
	if s.notifier == nil {
		return
	}

	s.notifier.SendSync(msg)
}
