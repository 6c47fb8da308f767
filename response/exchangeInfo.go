package response

type ExchangeInfo struct {
	Timezone   string        `json:"timezone"`
	ServerTime int64         `json:"serverTime"`
	Symbols    []*Instrument `json:"symbols"`
}

// Instrument is the per-symbol slice of exchangeInfo the builder cares
// about: the declared decimal precision for quantities and prices.
type Instrument struct {
	Symbol            string `json:"symbol"`
	Status            string `json:"status"`
	BaseAsset         string `json:"baseAsset"`
	QuoteAsset        string `json:"quoteAsset"`
	PricePrecision    int    `json:"pricePrecision"`
	QuantityPrecision int    `json:"quantityPrecision"`
}
