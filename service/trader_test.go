package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/soulgarden/futures-bot/conf"
	"github.com/soulgarden/futures-bot/dictionary"
	"github.com/soulgarden/futures-bot/request"
	"github.com/soulgarden/futures-bot/response"
)

type fakeExchangeClient struct {
	createCalls int
	lastCreate  *request.CreateOrder
	order       *response.Order
	markPrice   *response.MarkPrice
	err         error
}

func (c *fakeExchangeClient) CreateOrder(_ context.Context, req *request.CreateOrder) (*response.Order, error) {
	c.createCalls++
	c.lastCreate = req

	if c.err != nil {
		return nil, c.err
	}

	return c.order, nil
}

func (c *fakeExchangeClient) CancelOrder(_ context.Context, _ *request.CancelOrder) (*response.Order, error) {
	if c.err != nil {
		return nil, c.err
	}

	return c.order, nil
}

func (c *fakeExchangeClient) GetOrder(_ context.Context, _ *request.QueryOrder) (*response.Order, error) {
	if c.err != nil {
		return nil, c.err
	}

	return c.order, nil
}

func (c *fakeExchangeClient) Balances(_ context.Context) ([]*response.Balance, error) {
	if c.err != nil {
		return nil, c.err
	}

	return []*response.Balance{{Asset: "USDT", Balance: "1000"}}, nil
}

func (c *fakeExchangeClient) Positions(_ context.Context, _ string) ([]*response.Position, error) {
	if c.err != nil {
		return nil, c.err
	}

	return []*response.Position{{Symbol: "BTCUSDT", PositionAmt: "0.002"}}, nil
}

func (c *fakeExchangeClient) ServerTime(_ context.Context) (*response.ServerTime, error) {
	if c.err != nil {
		return nil, c.err
	}

	return &response.ServerTime{ServerTime: 1625184000000}, nil
}

func (c *fakeExchangeClient) MarkPrice(_ context.Context, _ string) (*response.MarkPrice, error) {
	if c.err != nil {
		return nil, c.err
	}

	return c.markPrice, nil
}

type fakeNotifier struct {
	messages []string
}

func (n *fakeNotifier) SendSync(msg string) {
	n.messages = append(n.messages, msg)
}

func newTestTrader(client *fakeExchangeClient, instruments map[string]*response.Instrument) *Trader {
	logger := zerolog.Nop()
	source := &fakeInstrumentSource{instruments: instruments}
	builder := NewBuilder(source, &logger)

	return NewTrader(&conf.Bot{}, client, builder, nil, &logger)
}

func TestTrader_PlaceOrder(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name            string
		intent          *OrderIntent
		wantQuantity    string
		wantPrice       string
		wantErr         error
		wantCreateCalls int
	}{
		{
			name: "market order submitted as given",
			intent: &OrderIntent{
				Symbol:   "BTCUSDT",
				Side:     dictionary.SideBuy,
				Type:     dictionary.TypeMarket,
				Quantity: decimal.RequireFromString("0.0015"),
			},
			wantQuantity:    "0.0015",
			wantCreateCalls: 1,
		},
		{
			name: "limit order normalized before submission",
			intent: &OrderIntent{
				Symbol:   "BTCUSDT",
				Side:     dictionary.SideBuy,
				Type:     dictionary.TypeLimit,
				Quantity: decimal.RequireFromString("0.0015"),
				Price:    decimal.RequireFromString("50123.456"),
			},
			wantQuantity:    "0.002",
			wantPrice:       "50123.46",
			wantCreateCalls: 1,
		},
		{
			name: "unknown symbol is not submitted",
			intent: &OrderIntent{
				Symbol:   "DOGEUSDT",
				Side:     dictionary.SideBuy,
				Type:     dictionary.TypeLimit,
				Quantity: decimal.RequireFromString("1"),
				Price:    decimal.RequireFromString("0.1"),
			},
			wantErr:         dictionary.ErrUnknownSymbol,
			wantCreateCalls: 0,
		},
		{
			name: "missing price is not submitted",
			intent: &OrderIntent{
				Symbol:   "BTCUSDT",
				Side:     dictionary.SideBuy,
				Type:     dictionary.TypeStopLimit,
				Quantity: decimal.RequireFromString("0.001"),
			},
			wantErr:         dictionary.ErrMissingPrice,
			wantCreateCalls: 0,
		},
		{
			name: "unsupported type is not submitted",
			intent: &OrderIntent{
				Symbol:   "BTCUSDT",
				Side:     dictionary.SideBuy,
				Type:     "TRAILING_STOP",
				Quantity: decimal.RequireFromString("0.001"),
			},
			wantErr:         dictionary.ErrInvalidOrderType,
			wantCreateCalls: 0,
		},
	}

	for _, tt := range tests {
		tt := tt

		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			client := &fakeExchangeClient{order: &response.Order{OrderID: 42, Symbol: tt.intent.Symbol, Status: "NEW"}}
			trader := newTestTrader(client, btcInstruments())

			order, err := trader.PlaceOrder(context.Background(), tt.intent)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("PlaceOrder() error = %v, wantErr %v", err, tt.wantErr)

				return
			}

			if client.createCalls != tt.wantCreateCalls {
				t.Errorf("PlaceOrder() submissions = %d, want %d", client.createCalls, tt.wantCreateCalls)
			}

			if tt.wantErr != nil {
				return
			}

			if order.OrderID != 42 {
				t.Errorf("PlaceOrder() order id = %d, want 42", order.OrderID)
			}

			if client.lastCreate.Quantity != tt.wantQuantity {
				t.Errorf("PlaceOrder() submitted quantity = %v, want %v", client.lastCreate.Quantity, tt.wantQuantity)
			}

			if client.lastCreate.Price != tt.wantPrice {
				t.Errorf("PlaceOrder() submitted price = %v, want %v", client.lastCreate.Price, tt.wantPrice)
			}
		})
	}
}

func TestTrader_PlaceOrderAPIFailure(t *testing.T) {
	t.Parallel()

	apiErr := &response.Error{Code: response.MarginInsufficientCode, Msg: "Margin is insufficient."}
	client := &fakeExchangeClient{err: apiErr}
	trader := newTestTrader(client, btcInstruments())

	_, err := trader.PlaceOrder(context.Background(), &OrderIntent{
		Symbol:   "BTCUSDT",
		Side:     dictionary.SideSell,
		Type:     dictionary.TypeMarket,
		Quantity: decimal.RequireFromString("0.001"),
	})

	var got *response.Error
	if !errors.As(err, &got) || got.Code != response.MarginInsufficientCode {
		t.Errorf("PlaceOrder() error = %v, want exchange error passed through unchanged", err)
	}
}

func TestTrader_Notifications(t *testing.T) {
	t.Parallel()

	logger := zerolog.Nop()
	client := &fakeExchangeClient{order: &response.Order{OrderID: 42, Symbol: "BTCUSDT", Status: "NEW"}}
	builder := NewBuilder(&fakeInstrumentSource{instruments: btcInstruments()}, &logger)
	notifier := &fakeNotifier{}
	trader := NewTrader(&conf.Bot{}, client, builder, notifier, &logger)

	if _, err := trader.PlaceOrder(context.Background(), &OrderIntent{
		Symbol:   "BTCUSDT",
		Side:     dictionary.SideBuy,
		Type:     dictionary.TypeMarket,
		Quantity: decimal.RequireFromString("0.001"),
	}); err != nil {
		t.Fatalf("PlaceOrder() error = %v", err)
	}

	if len(notifier.messages) != 1 || !strings.Contains(notifier.messages[0], "BTCUSDT") ||
		!strings.Contains(notifier.messages[0], "42") {
		t.Errorf("PlaceOrder() notifications = %v, want one carrying symbol and order id", notifier.messages)
	}

	if _, err := trader.CancelOrder(context.Background(), &request.CancelOrder{
		Symbol:  "BTCUSDT",
		OrderID: 42,
	}); err != nil {
		t.Fatalf("CancelOrder() error = %v", err)
	}

	if len(notifier.messages) != 2 || !strings.Contains(notifier.messages[1], "cancelled") {
		t.Errorf("CancelOrder() notifications = %v, want a cancellation message", notifier.messages)
	}

	failing := &fakeExchangeClient{err: &response.Error{Code: response.MarginInsufficientCode, Msg: "Margin is insufficient."}}
	trader = NewTrader(&conf.Bot{}, failing, builder, notifier, &logger)

	if _, err := trader.PlaceOrder(context.Background(), &OrderIntent{
		Symbol:   "BTCUSDT",
		Side:     dictionary.SideBuy,
		Type:     dictionary.TypeMarket,
		Quantity: decimal.RequireFromString("0.001"),
	}); err == nil {
		t.Fatal("PlaceOrder() expected error")
	}

	if len(notifier.messages) != 2 {
		t.Errorf("PlaceOrder() notifications after failure = %v, want none added", notifier.messages)
	}
}

func TestTrader_OrderRefValidation(t *testing.T) {
	t.Parallel()

	client := &fakeExchangeClient{order: &response.Order{OrderID: 42}}
	trader := newTestTrader(client, btcInstruments())

	_, err := trader.OrderStatus(context.Background(), &request.QueryOrder{Symbol: "BTCUSDT"})
	if !errors.Is(err, dictionary.ErrMissingOrderID) {
		t.Errorf("OrderStatus() error = %v, want %v", err, dictionary.ErrMissingOrderID)
	}

	_, err = trader.CancelOrder(context.Background(), &request.CancelOrder{Symbol: "BTCUSDT"})
	if !errors.Is(err, dictionary.ErrMissingOrderID) {
		t.Errorf("CancelOrder() error = %v, want %v", err, dictionary.ErrMissingOrderID)
	}

	order, err := trader.OrderStatus(context.Background(), &request.QueryOrder{Symbol: "BTCUSDT", OrderID: 42})
	if err != nil || order.OrderID != 42 {
		t.Errorf("OrderStatus() = %v, %v, want order 42", order, err)
	}
}

func TestTrader_MarkPrice(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		symbol    string
		markPrice *response.MarkPrice
		want      string
		wantErr   error
	}{
		{
			name:      "mark price parsed as decimal",
			symbol:    "BTCUSDT",
			markPrice: &response.MarkPrice{Symbol: "BTCUSDT", MarkPrice: "50123.45600000"},
			want:      "50123.456",
		},
		{
			name:    "missing symbol",
			symbol:  "",
			wantErr: dictionary.ErrMissingSymbol,
		},
		{
			name:      "unparsable payload",
			symbol:    "BTCUSDT",
			markPrice: &response.MarkPrice{Symbol: "BTCUSDT", MarkPrice: "not-a-number"},
			wantErr:   dictionary.ErrParseDecimal,
		},
	}

	for _, tt := range tests {
		tt := tt

		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			client := &fakeExchangeClient{markPrice: tt.markPrice}
			trader := newTestTrader(client, btcInstruments())

			price, err := trader.MarkPrice(context.Background(), tt.symbol)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("MarkPrice() error = %v, wantErr %v", err, tt.wantErr)

				return
			}

			if tt.wantErr != nil {
				return
			}

			if price.String() != tt.want {
				t.Errorf("MarkPrice() = %v, want %v", price.String(), tt.want)
			}
		})
	}
}

func TestTrader_Account(t *testing.T) {
	t.Parallel()

	client := &fakeExchangeClient{}
	trader := newTestTrader(client, btcInstruments())

	balances, positions, err := trader.Account(context.Background())
	if err != nil {
		t.Errorf("Account() error = %v", err)

		return
	}

	if len(balances) != 1 || balances[0].Asset != "USDT" {
		t.Errorf("Account() balances = %+v", balances)
	}

	if len(positions) != 1 || positions[0].Symbol != "BTCUSDT" {
		t.Errorf("Account() positions = %+v", positions)
	}
}
