package dictionary

import "errors"

var ErrMissingSymbol = errors.New("symbol is required")

var ErrUnknownSymbol = errors.New("symbol is missing in exchange instruments list")

var ErrInvalidSide = errors.New("side must be BUY or SELL")

var ErrInvalidOrderType = errors.New("unsupported order type")

var ErrInvalidTimeInForce = errors.New("unsupported time in force")

var ErrInvalidQuantity = errors.New("quantity must be positive")

var ErrMissingPrice = errors.New("price is required and must be positive")

var ErrMissingStopPrice = errors.New("stop price is required and must be positive")

var ErrMissingOrderID = errors.New("order id or client order id is required")

var ErrParseDecimal = errors.New("parse string as decimal")

var ErrResponse = errors.New("exchange error response")
