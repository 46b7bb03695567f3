package dto

import "github.com/shopspring/decimal"

// OrderResponse is a cached order with its derived presentation.
type OrderResponse struct {
	ID            string `json:"id"`
	StatusCode    int32  `json:"statusCode"`
	StatusMessage string `json:"statusMessage"`
	CreatedAt     int64  `json:"createdAt"`
	Date          string `json:"date"`
	Category      string `json:"category"`
	Action        string `json:"action"`
	ButtonText    string `json:"buttonText"`
	Icon          string `json:"icon"`
	Page          string `json:"page"`
	Removable     bool   `json:"removable"`
}

// BuyChannelRequest describes a channel purchase payload.
type BuyChannelRequest struct {
	ProductID          string `json:"productId"`
	RemoteBalance      int64  `json:"remoteBalance"`
	LocalBalance       int64  `json:"localBalance"`
	ChannelExpiryWeeks int    `json:"channelExpiryWeeks"`
}

// BuyChannelResponse describes an accepted purchase.
type BuyChannelResponse struct {
	OrderID     string           `json:"orderId"`
	LNInvoice   string           `json:"lnInvoice"`
	BTCAddress  string           `json:"btcAddress"`
	PriceSats   int64            `json:"priceSats"`
	TotalAmount int64            `json:"totalAmount"`
	OrderExpiry int64            `json:"orderExpiry"`
	FiatTotal   *decimal.Decimal `json:"fiatTotal,omitempty"`
	Currency    string           `json:"currency,omitempty"`
}
