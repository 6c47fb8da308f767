package request

import "net/url"

// CreateOrder carries the already-normalized order fields. Quantity and
// prices are fixed-point strings rounded to the instrument's precision by
// the builder; the client signs and sends them verbatim.
type CreateOrder struct {
	Symbol           string
	Side             string
	Type             string
	Quantity         string
	Price            string
	StopPrice        string
	TimeInForce      string
	NewClientOrderID string
}

func (r *CreateOrder) Params() url.Values {
	v := url.Values{}
	v.Set("symbol", r.Symbol)
	v.Set("side", r.Side)
	v.Set("type", r.Type)
	v.Set("quantity", r.Quantity)

	if r.Price != "" {
		v.Set("price", r.Price)
	}

	if r.StopPrice != "" {
		v.Set("stopPrice", r.StopPrice)
	}

	if r.TimeInForce != "" {
		v.Set("timeInForce", r.TimeInForce)
	}

	if r.NewClientOrderID != "" {
		v.Set("newClientOrderId", r.NewClientOrderID)
	}

	return v
}
