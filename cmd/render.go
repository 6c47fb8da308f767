package cmd

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/soulgarden/futures-bot/response"
)

const tabPadding = 2

func renderOrder(w io.Writer, order *response.Order) {
	tw := tabwriter.NewWriter(w, 0, 0, tabPadding, ' ', 0)

	fmt.Fprintf(tw, "order id\t%d\n", order.OrderID)
	fmt.Fprintf(tw, "client order id\t%s\n", order.ClientOrderID)
	fmt.Fprintf(tw, "symbol\t%s\n", order.Symbol)
	fmt.Fprintf(tw, "status\t%s\n", order.Status)
	fmt.Fprintf(tw, "side\t%s\n", order.Side)
	fmt.Fprintf(tw, "type\t%s\n", order.Type)
	fmt.Fprintf(tw, "quantity\t%s\n", order.OrigQty)
	fmt.Fprintf(tw, "executed\t%s\n", order.ExecutedQty)

	if order.Price != "" {
		fmt.Fprintf(tw, "price\t%s\n", order.Price)
	}

	if order.StopPrice != "" {
		fmt.Fprintf(tw, "stop price\t%s\n", order.StopPrice)
	}

	if order.TimeInForce != "" {
		fmt.Fprintf(tw, "time in force\t%s\n", order.TimeInForce)
	}

	_ = tw.Flush()
}

func renderBalances(w io.Writer, balances []*response.Balance) {
	tw := tabwriter.NewWriter(w, 0, 0, tabPadding, ' ', 0)

	fmt.Fprintln(tw, "asset\tbalance\tcross wallet\tavailable")

	for _, b := range balances {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", b.Asset, b.Balance, b.CrossWalletBalance, b.AvailableBalance)
	}

	_ = tw.Flush()
}

func renderPositions(w io.Writer, positions []*response.Position) {
	tw := tabwriter.NewWriter(w, 0, 0, tabPadding, ' ', 0)

	fmt.Fprintln(tw, "symbol\tamount\tentry price\tmark price\tunrealized pnl\tleverage")

	for _, p := range positions {
		fmt.Fprintf(
			tw,
			"%s\t%s\t%s\t%s\t%s\t%s\n",
			p.Symbol, p.PositionAmt, p.EntryPrice, p.MarkPrice, p.UnRealizedProfit, p.Leverage,
		)
	}

	_ = tw.Flush()
}
