package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/soulgarden/futures-bot/client"
	"github.com/soulgarden/futures-bot/conf"
	"github.com/soulgarden/futures-bot/dictionary"
	"github.com/soulgarden/futures-bot/request"
	"github.com/soulgarden/futures-bot/response"
	"github.com/soulgarden/futures-bot/service"
	"github.com/spf13/cobra"
	tb "gopkg.in/tucnak/telebot.v2"
)

type botFlags struct {
	symbol        string
	quantity      string
	price         string
	stopPrice     string
	side          string
	orderType     string
	timeInForce   string
	orderID       int64
	clientOrderID string
	balance       bool
	positions     bool
	serverTime    bool
	markPrice     bool
	status        bool
	cancel        bool
}

func newBotCmd() *cobra.Command {
	flags := &botFlags{}

	cmd := &cobra.Command{
		Use:           "futures-bot",
		Short:         "Place and query orders on the exchange's futures REST API",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, flags)
		},
	}

	cmd.Flags().StringVar(&flags.symbol, "symbol", "", "trading pair symbol (default from config)")
	cmd.Flags().StringVar(&flags.quantity, "quantity", "", "order quantity (default from config)")
	cmd.Flags().StringVar(&flags.price, "price", "", "limit order price")
	cmd.Flags().StringVar(&flags.stopPrice, "stop-price", "", "stop price for stop-limit orders")
	cmd.Flags().StringVar(&flags.side, "side", "", "order side, BUY or SELL")
	cmd.Flags().StringVar(&flags.orderType, "type", "", "order type, MARKET, LIMIT or STOP_LIMIT")
	cmd.Flags().StringVar(&flags.timeInForce, "time-in-force", dictionary.TifGTC, "time in force, GTC, IOC or FOK")
	cmd.Flags().Int64Var(&flags.orderID, "order-id", 0, "exchange order id for --status/--cancel")
	cmd.Flags().StringVar(&flags.clientOrderID, "client-order-id", "", "client order id for --status/--cancel")
	cmd.Flags().BoolVar(&flags.balance, "balance", false, "check account balance and positions")
	cmd.Flags().BoolVar(&flags.positions, "positions", false, "check open positions for --symbol")
	cmd.Flags().BoolVar(&flags.serverTime, "server-time", false, "get exchange server time")
	cmd.Flags().BoolVar(&flags.markPrice, "mark-price", false, "get current mark price for --symbol")
	cmd.Flags().BoolVar(&flags.status, "status", false, "get order state by --order-id/--client-order-id")
	cmd.Flags().BoolVar(&flags.cancel, "cancel", false, "cancel order by --order-id/--client-order-id")

	return cmd
}

// nolint: funlen
func run(cmd *cobra.Command, flags *botFlags) error {
	cfg := conf.New()

	defaultLogLevel := zerolog.InfoLevel
	if cfg.Debug {
		defaultLogLevel = zerolog.DebugLevel
	}

	logger := zerolog.New(os.Stdout).Level(defaultLogLevel).With().Caller().Logger()

	if flags.symbol == "" {
		flags.symbol = cfg.DefaultSymbol
	}

	if flags.quantity == "" {
		flags.quantity = cfg.DefaultQuantity
	}

	restClient := client.New(cfg, &logger)

	var instruments service.InstrumentSource = service.NewInstruments(restClient, &logger)

	if cfg.InstrumentsCacheMS > 0 {
		cached, err := service.NewCachedInstruments(
			instruments,
			time.Duration(cfg.InstrumentsCacheMS)*time.Millisecond,
			&logger,
		)
		if err != nil {
			logger.Err(err).Msg("new instruments cache")

			return err
		}

		instruments = cached
	}

	var notifier service.Notifier

	if cfg.Telegram.Token != "" {
		tgBot, err := tb.NewBot(tb.Settings{Token: cfg.Telegram.Token})
		if err != nil {
			logger.Err(err).Msg("new tg bot")

			return err
		}

		notifier = service.NewTelegram(cfg, tgBot, &logger)
	}

	builder := service.NewBuilder(instruments, &logger)
	trader := service.NewTrader(cfg, restClient, builder, notifier, &logger)

	ctx := service.NewManager(&logger).ListenSignal()

	switch {
	case flags.balance:
		balances, positions, err := trader.Account(ctx)
		if err != nil {
			return err
		}

		renderBalances(cmd.OutOrStdout(), balances)
		renderPositions(cmd.OutOrStdout(), positions)

		return nil
	case flags.positions:
		positions, err := trader.Positions(ctx, flags.symbol)
		if err != nil {
			return err
		}

		renderPositions(cmd.OutOrStdout(), positions)

		return nil
	case flags.serverTime:
		serverTime, err := trader.ServerTime(ctx)
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "server time: %d\n", serverTime.ServerTime)

		return nil
	case flags.markPrice:
		price, err := trader.MarkPrice(ctx, flags.symbol)
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "mark price %s: %s\n", flags.symbol, price.String())

		return nil
	case flags.status:
		order, err := trader.OrderStatus(ctx, &request.QueryOrder{
			Symbol:            flags.symbol,
			OrderID:           flags.orderID,
			OrigClientOrderID: flags.clientOrderID,
		})
		if err != nil {
			return err
		}

		renderOrder(cmd.OutOrStdout(), order)

		return nil
	case flags.cancel:
		order, err := trader.CancelOrder(ctx, &request.CancelOrder{
			Symbol:            flags.symbol,
			OrderID:           flags.orderID,
			OrigClientOrderID: flags.clientOrderID,
		})
		if err != nil {
			return err
		}

		renderOrder(cmd.OutOrStdout(), order)

		return nil
	case flags.side != "" && flags.orderType != "":
		order, err := placeOrder(ctx, trader, flags)
		if err != nil {
			return err
		}

		renderOrder(cmd.OutOrStdout(), order)

		return nil
	default:
		logger.Warn().Msg("specify an order side and type, or use --balance to check the account")

		return cmd.Help()
	}
}

func placeOrder(ctx context.Context, trader *service.Trader, flags *botFlags) (*response.Order, error) {
	intent, err := parseIntent(flags)
	if err != nil {
		return nil, err
	}

	return trader.PlaceOrder(ctx, intent)
}

func parseIntent(flags *botFlags) (*service.OrderIntent, error) {
	switch flags.timeInForce {
	case dictionary.TifGTC, dictionary.TifIOC, dictionary.TifFOK:
	default:
		return nil, fmt.Errorf("%w: %s", dictionary.ErrInvalidTimeInForce, flags.timeInForce)
	}

	// TODO: thread timeInForce into limit order construction; the builder pins GTC for now.

	intent := &service.OrderIntent{
		Symbol: flags.symbol,
		Side:   flags.side,
		Type:   flags.orderType,
	}

	var err error

	intent.Quantity, err = decimal.NewFromString(flags.quantity)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", dictionary.ErrParseDecimal, flags.quantity)
	}

	if flags.price != "" {
		intent.Price, err = decimal.NewFromString(flags.price)
		if err != nil {
			return nil, fmt.Errorf("%w: %s", dictionary.ErrParseDecimal, flags.price)
		}
	}

	if flags.stopPrice != "" {
		intent.StopPrice, err = decimal.NewFromString(flags.stopPrice)
		if err != nil {
			return nil, fmt.Errorf("%w: %s", dictionary.ErrParseDecimal, flags.stopPrice)
		}
	}

	return intent, nil
}
