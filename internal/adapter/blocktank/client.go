package blocktank

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"path"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	domainErrors "github.com/polkiloo/chanorders/internal/domain/errors"
	"github.com/polkiloo/chanorders/internal/domain/model"
)

const (
	defaultTimeout    = 10 * time.Second
	defaultRetryAfter = 5 * time.Second
	requestIDHeader   = "X-Request-ID"
)

// TransportError reports a failed exchange with the remote authority.
type TransportError struct {
	Op         string
	StatusCode int
	RetryAfter time.Duration
	Err        error
}

func (e *TransportError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("blocktank %s: unexpected status %d", e.Op, e.StatusCode)
	}
	return fmt.Sprintf("blocktank %s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// Is matches the domain transport sentinel.
func (e *TransportError) Is(target error) bool { return target == domainErrors.ErrTransport }

// Client exposes operations of the channel-selling service.
type Client interface {
	FetchOrder(ctx context.Context, id string) (model.OrderRecord, error)
	FetchOrderList(ctx context.Context) ([]model.OrderRecord, error)
	FetchInfo(ctx context.Context) (model.Info, error)
	FetchExchangeRates(ctx context.Context) (model.ExchangeRates, error)
	BuyChannel(ctx context.Context, req model.BuyChannelRequest) (model.BuyChannelResponse, error)
}

// HTTPClient implements Client via the HTTP API.
type HTTPClient struct {
	baseURL    *url.URL
	httpClient *http.Client
	logger     *slog.Logger
}

type orderResponse struct {
	ID           string `json:"_id"`
	State        int32  `json:"state"`
	StateMessage string `json:"stateMessage"`
	CreatedAt    int64  `json:"created_at"`
}

type infoResponse struct {
	Capacity struct {
		LocalBalance  int64 `json:"local_balance"`
		RemoteBalance int64 `json:"remote_balance"`
	} `json:"capacity"`
	Services []struct {
		ProductID      string `json:"product_id"`
		Available      bool   `json:"available"`
		Description    string `json:"description"`
		MinChannelSize int64  `json:"min_channel_size"`
		MaxChannelSize int64  `json:"max_channel_size"`
		MinChanExpiry  int    `json:"min_chan_expiry"`
		MaxChanExpiry  int    `json:"max_chan_expiry"`
		OrderExpiry    int64  `json:"order_expiry"`
	} `json:"services"`
	NodeInfo struct {
		ActiveChannelsCount int      `json:"active_channels_count"`
		Alias               string   `json:"alias"`
		PublicKey           string   `json:"public_key"`
		URIs                []string `json:"uris"`
	} `json:"node_info"`
}

type buyRequest struct {
	ProductID     string `json:"product_id"`
	RemoteBalance int64  `json:"remote_balance"`
	LocalBalance  int64  `json:"local_balance"`
	ChannelExpiry int    `json:"channel_expiry"`
}

type buyResponse struct {
	OrderID     string `json:"order_id"`
	LNInvoice   string `json:"ln_invoice"`
	BTCAddress  string `json:"btc_address"`
	Price       int64  `json:"price"`
	TotalAmount int64  `json:"total_amount"`
	OrderExpiry int64  `json:"order_expiry"`
}

// NewHTTPClient creates HTTP client. Non-positive timeouts fall back to the default.
func NewHTTPClient(baseURL string, timeout time.Duration, logger *slog.Logger) (*HTTPClient, error) {
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse blocktank url: %w", err)
	}
	if !parsed.IsAbs() {
		return nil, fmt.Errorf("blocktank url must be absolute")
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &HTTPClient{
		baseURL: parsed,
		logger:  logger,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}, nil
}

// FetchOrder queries a single order. Unknown ids yield ErrNotFound.
func (c *HTTPClient) FetchOrder(ctx context.Context, id string) (model.OrderRecord, error) {
	var data orderResponse
	query := url.Values{"order_id": []string{id}}
	if err := c.do(ctx, "get order", http.MethodGet, "/v1/channel/order", query, nil, &data); err != nil {
		return model.OrderRecord{}, err
	}
	return toOrderRecord(data), nil
}

// FetchOrderList queries every order known for this client.
func (c *HTTPClient) FetchOrderList(ctx context.Context) ([]model.OrderRecord, error) {
	var data []orderResponse
	if err := c.do(ctx, "list orders", http.MethodGet, "/v1/channel/orders", nil, nil, &data); err != nil {
		return nil, err
	}
	records := make([]model.OrderRecord, 0, len(data))
	for _, o := range data {
		records = append(records, toOrderRecord(o))
	}
	return records, nil
}

// FetchInfo queries service capacity, products and node metadata.
func (c *HTTPClient) FetchInfo(ctx context.Context) (model.Info, error) {
	var data infoResponse
	if err := c.do(ctx, "get info", http.MethodGet, "/v1/node/info", nil, nil, &data); err != nil {
		return model.Info{}, err
	}

	info := model.Info{
		Capacity: model.Capacity{LocalBalance: data.Capacity.LocalBalance, RemoteBalance: data.Capacity.RemoteBalance},
		NodeInfo: model.NodeInfo{
			ActiveChannelsCount: data.NodeInfo.ActiveChannelsCount,
			Alias:               data.NodeInfo.Alias,
			PublicKey:           data.NodeInfo.PublicKey,
			URIs:                data.NodeInfo.URIs,
		},
		Services: make([]model.Service, 0, len(data.Services)),
	}
	for _, s := range data.Services {
		info.Services = append(info.Services, model.Service{
			ProductID:      s.ProductID,
			Available:      s.Available,
			Description:    s.Description,
			MinChannelSize: s.MinChannelSize,
			MaxChannelSize: s.MaxChannelSize,
			MinChanExpiry:  s.MinChanExpiry,
			MaxChanExpiry:  s.MaxChanExpiry,
			OrderExpiry:    s.OrderExpiry,
		})
	}
	return info, nil
}

// FetchExchangeRates queries the BTC price table.
func (c *HTTPClient) FetchExchangeRates(ctx context.Context) (model.ExchangeRates, error) {
	var data map[string]decimal.Decimal
	if err := c.do(ctx, "get rates", http.MethodGet, "/v1/rate", nil, nil, &data); err != nil {
		return nil, err
	}
	return model.ExchangeRates(data), nil
}

// BuyChannel submits a channel purchase.
func (c *HTTPClient) BuyChannel(ctx context.Context, req model.BuyChannelRequest) (model.BuyChannelResponse, error) {
	body := buyRequest{
		ProductID:     req.ProductID,
		RemoteBalance: req.RemoteBalance,
		LocalBalance:  req.LocalBalance,
		ChannelExpiry: req.ChannelExpiryWeeks,
	}
	var data buyResponse
	if err := c.do(ctx, "buy channel", http.MethodPost, "/v1/channel/buy", nil, body, &data); err != nil {
		return model.BuyChannelResponse{}, err
	}
	return model.BuyChannelResponse{
		OrderID:     data.OrderID,
		LNInvoice:   data.LNInvoice,
		BTCAddress:  data.BTCAddress,
		PriceSats:   data.Price,
		TotalAmount: data.TotalAmount,
		OrderExpiry: data.OrderExpiry,
	}, nil
}

func (c *HTTPClient) do(ctx context.Context, op, method, endpointPath string, query url.Values, payload, out any) error {
	endpoint := *c.baseURL
	endpoint.Path = path.Join(endpoint.Path, endpointPath)
	if query != nil {
		endpoint.RawQuery = query.Encode()
	}

	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("encode %s request: %w", op, err)
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint.String(), body)
	if err != nil {
		return &TransportError{Op: op, Err: err}
	}
	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set(requestIDHeader, requestID)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &TransportError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		raw, err := io.ReadAll(resp.Body)
		if err != nil {
			return &TransportError{Op: op, Err: err}
		}
		if err := json.Unmarshal(raw, out); err != nil {
			return &TransportError{Op: op, Err: fmt.Errorf("decode response: %w", err)}
		}
		return nil
	case resp.StatusCode == http.StatusNotFound && method == http.MethodGet && query.Has("order_id"):
		return fmt.Errorf("order %s: %w", query.Get("order_id"), domainErrors.ErrNotFound)
	case resp.StatusCode == http.StatusTooManyRequests:
		return &TransportError{Op: op, StatusCode: resp.StatusCode, RetryAfter: parseRetryAfter(resp.Header.Get("Retry-After"))}
	default:
		raw, _ := io.ReadAll(resp.Body)
		c.logger.Error("blocktank request failed",
			slog.String("op", op),
			slog.String("request_id", requestID),
			slog.Int("status", resp.StatusCode),
			slog.String("body", string(raw)),
		)
		return &TransportError{Op: op, StatusCode: resp.StatusCode}
	}
}

func toOrderRecord(o orderResponse) model.OrderRecord {
	return model.OrderRecord{
		ID:            o.ID,
		StatusCode:    o.State,
		StatusMessage: o.StateMessage,
		CreatedAt:     o.CreatedAt,
	}
}

func parseRetryAfter(header string) time.Duration {
	if header == "" {
		return defaultRetryAfter
	}
	if seconds, err := strconv.Atoi(header); err == nil {
		return time.Duration(seconds) * time.Second
	}
	if t, err := http.ParseTime(header); err == nil {
		return time.Until(t)
	}
	return defaultRetryAfter
}
