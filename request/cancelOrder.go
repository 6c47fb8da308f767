package request

import "net/url"

type CancelOrder struct {
	Symbol            string
	OrderID           int64
	OrigClientOrderID string
}

func (r *CancelOrder) Params() url.Values {
	q := QueryOrder{Symbol: r.Symbol, OrderID: r.OrderID, OrigClientOrderID: r.OrigClientOrderID}

	return q.Params()
}
