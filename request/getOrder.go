package request

import (
	"net/url"
	"strconv"
)

type QueryOrder struct {
	Symbol            string
	OrderID           int64
	OrigClientOrderID string
}

func (r *QueryOrder) Params() url.Values {
	v := url.Values{}
	v.Set("symbol", r.Symbol)

	if r.OrderID != 0 {
		v.Set("orderId", strconv.FormatInt(r.OrderID, 10))
	}

	if r.OrigClientOrderID != "" {
		v.Set("origClientOrderId", r.OrigClientOrderID)
	}

	return v
}
