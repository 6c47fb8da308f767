package dictionary

import "time"

const (
	SideBuy  = "BUY"
	SideSell = "SELL"
)

// The venue's futures enum for a stop-limit order may actually be STOP;
// the literal below is what the bot has always sent.
const (
	TypeMarket    = "MARKET"
	TypeLimit     = "LIMIT"
	TypeStopLimit = "STOP_LIMIT"
)

const (
	TifGTC = "GTC"
	TifIOC = "IOC"
	TifFOK = "FOK"
)

const (
	ExchangeInfoPath = "/fapi/v1/exchangeInfo"
	OrderPath        = "/fapi/v1/order"
	BalancePath      = "/fapi/v2/balance"
	PositionRiskPath = "/fapi/v2/positionRisk"
	ServerTimePath   = "/fapi/v1/time"
	PremiumIndexPath = "/fapi/v1/premiumIndex"
)

const DefaultIntBase = 10
const SignalChLen = 1
const ShutDownDuration = time.Second * 15
