package dictionary

import "github.com/shopspring/decimal"

var ZeroDecimal = decimal.NewFromInt(0) //nolint: gochecknoglobals
