package conf

import (
	"os"

	"github.com/jinzhu/configor"
	"github.com/rs/zerolog/log"
)

type Bot struct {
	APIKey    string `json:"api_key"    required:"true"`
	APISecret string `json:"api_secret" required:"true"`

	// Mainnet: set default_addr to fapi.binance.com.
	DefaultAddr string `json:"default_addr" default:"testnet.binancefuture.com"`
	Scheme      string `json:"scheme"       default:"https"`

	DefaultSymbol   string `json:"default_symbol"   default:"BTCUSDT"`
	DefaultQuantity string `json:"default_quantity" default:"0.001"`

	RecvWindowMS  int64 `json:"recv_window_ms"  default:"5000"`
	HTTPTimeoutMS int64 `json:"http_timeout_ms" default:"10000"`

	// 0 disables caching, instrument metadata is fetched per order.
	InstrumentsCacheMS int64 `json:"instruments_cache_ms"`

	Telegram struct {
		Token  string `json:"token"`
		ChatID int64  `json:"chat_id"`
	} `json:"telegram"`

	Env string `json:"env"`

	Debug bool `json:"debug"`
}

func New() *Bot {
	c := &Bot{}
	path := os.Getenv("CFG_PATH")

	if path == "" {
		path = "./conf/conf.json"
	}

	if err := configor.New(&configor.Config{ErrorOnUnmatchedKeys: true}).Load(c, path); err != nil {
		log.Fatal().Err(err).Msg("conf validation errors")
	}

	return c
}
