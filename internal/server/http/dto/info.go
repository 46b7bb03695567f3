package dto

import "github.com/shopspring/decimal"

type CapacityResponse struct {
	LocalBalance  int64 `json:"localBalance"`
	RemoteBalance int64 `json:"remoteBalance"`
}

type ServiceResponse struct {
	ProductID      string `json:"productId"`
	Available      bool   `json:"available"`
	Description    string `json:"description"`
	MinChannelSize int64  `json:"minChannelSize"`
	MaxChannelSize int64  `json:"maxChannelSize"`
	MinChanExpiry  int    `json:"minChanExpiry"`
	MaxChanExpiry  int    `json:"maxChanExpiry"`
	OrderExpiry    int64  `json:"orderExpiry"`
}

type NodeInfoResponse struct {
	ActiveChannelsCount int      `json:"activeChannelsCount"`
	Alias               string   `json:"alias"`
	PublicKey           string   `json:"publicKey"`
	URIs                []string `json:"uris"`
}

// InfoResponse describes the service node and its products.
type InfoResponse struct {
	Capacity CapacityResponse  `json:"capacity"`
	Services []ServiceResponse `json:"services"`
	NodeInfo NodeInfoResponse  `json:"nodeInfo"`
}

// RatesResponse lists bitcoin prices per currency ticker.
type RatesResponse struct {
	Currency string                     `json:"currency"`
	Rates    map[string]decimal.Decimal `json:"rates"`
}
