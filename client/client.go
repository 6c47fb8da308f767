package client

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	uuid "github.com/satori/go.uuid"

	"github.com/rs/zerolog"
	"github.com/soulgarden/futures-bot/conf"
	"github.com/soulgarden/futures-bot/dictionary"
	"github.com/soulgarden/futures-bot/request"
	"github.com/soulgarden/futures-bot/response"
)

const apiKeyHeader = "X-MBX-APIKEY"

type Client struct {
	cfg        *conf.Bot
	httpClient *http.Client
	logger     *zerolog.Logger
}

func New(cfg *conf.Bot, logger *zerolog.Logger) *Client {
	return &Client{
		cfg: cfg,
		httpClient: &http.Client{
			Timeout: time.Duration(cfg.HTTPTimeoutMS) * time.Millisecond,
		},
		logger: logger,
	}
}

func (c *Client) ExchangeInfo(ctx context.Context) (*response.ExchangeInfo, error) {
	r := &response.ExchangeInfo{}

	err := c.do(ctx, http.MethodGet, dictionary.ExchangeInfoPath, url.Values{}, false, r)
	if err != nil {
		return nil, err
	}

	return r, nil
}

func (c *Client) CreateOrder(ctx context.Context, req *request.CreateOrder) (*response.Order, error) {
	if req.NewClientOrderID == "" {
		req.NewClientOrderID = uuid.NewV4().String()
	}

	r := &response.Order{}

	err := c.do(ctx, http.MethodPost, dictionary.OrderPath, req.Params(), true, r)
	if err != nil {
		return nil, err
	}

	return r, nil
}

func (c *Client) CancelOrder(ctx context.Context, req *request.CancelOrder) (*response.Order, error) {
	r := &response.Order{}

	err := c.do(ctx, http.MethodDelete, dictionary.OrderPath, req.Params(), true, r)
	if err != nil {
		return nil, err
	}

	return r, nil
}

func (c *Client) GetOrder(ctx context.Context, req *request.QueryOrder) (*response.Order, error) {
	r := &response.Order{}

	err := c.do(ctx, http.MethodGet, dictionary.OrderPath, req.Params(), true, r)
	if err != nil {
		return nil, err
	}

	return r, nil
}

func (c *Client) Balances(ctx context.Context) ([]*response.Balance, error) {
	var r []*response.Balance

	err := c.do(ctx, http.MethodGet, dictionary.BalancePath, url.Values{}, true, &r)
	if err != nil {
		return nil, err
	}

	return r, nil
}

func (c *Client) Positions(ctx context.Context, symbol string) ([]*response.Position, error) {
	params := url.Values{}

	if symbol != "" {
		params.Set("symbol", symbol)
	}

	var r []*response.Position

	err := c.do(ctx, http.MethodGet, dictionary.PositionRiskPath, params, true, &r)
	if err != nil {
		return nil, err
	}

	return r, nil
}

func (c *Client) ServerTime(ctx context.Context) (*response.ServerTime, error) {
	r := &response.ServerTime{}

	err := c.do(ctx, http.MethodGet, dictionary.ServerTimePath, url.Values{}, false, r)
	if err != nil {
		return nil, err
	}

	return r, nil
}

func (c *Client) MarkPrice(ctx context.Context, symbol string) (*response.MarkPrice, error) {
	params := url.Values{}
	params.Set("symbol", symbol)

	r := &response.MarkPrice{}

	err := c.do(ctx, http.MethodGet, dictionary.PremiumIndexPath, params, false, r)
	if err != nil {
		return nil, err
	}

	return r, nil
}

// do performs exactly one round trip, no retries. A non-2xx body is decoded
// into *response.Error and returned unchanged.
func (c *Client) do(
	ctx context.Context,
	method string,
	path string,
	params url.Values,
	signed bool,
	out interface{},
) error {
	query := params.Encode()

	if signed {
		params.Set("timestamp", strconv.FormatInt(time.Now().UnixMilli(), dictionary.DefaultIntBase))
		params.Set("recvWindow", strconv.FormatInt(c.cfg.RecvWindowMS, dictionary.DefaultIntBase))

		// The signature covers the exact query string sent, so it is
		// appended manually instead of going through Encode again.
		query = params.Encode()
		query += "&signature=" + c.sign(query)
	}

	u := url.URL{
		Scheme:   c.cfg.Scheme,
		Host:     c.cfg.DefaultAddr,
		Path:     path,
		RawQuery: query,
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), nil)
	if err != nil {
		return err
	}

	req.Header.Set(apiKeyHeader, c.cfg.APIKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Err(err).Str("method", method).Str("path", path).Msg("request failed")

		return err
	}

	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	c.logger.Debug().
		Str("method", method).
		Str("path", path).
		Int("status", resp.StatusCode).
		Bytes("payload", body).
		Msg("got response")

	if resp.StatusCode >= http.StatusBadRequest {
		apiErr := &response.Error{}

		if err := json.Unmarshal(body, apiErr); err != nil || apiErr.Code == 0 {
			return fmt.Errorf("%w: status %d: %s", dictionary.ErrResponse, resp.StatusCode, body)
		}

		c.logger.Err(apiErr).Str("path", path).Msg("received error")

		return apiErr
	}

	if out == nil {
		return nil
	}

	return json.Unmarshal(body, out)
}

func (c *Client) sign(query string) string {
	mac := hmac.New(sha256.New, []byte(c.cfg.APISecret))
	mac.Write([]byte(query))

	return hex.EncodeToString(mac.Sum(nil))
}
