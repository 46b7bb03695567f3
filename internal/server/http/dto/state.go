package dto

// StateResponse reports the request state of every resource class.
type StateResponse struct {
	Orders         string `json:"orders"`
	Info           string `json:"info"`
	ExchangeRates  string `json:"exchangeRates"`
	Version        uint64 `json:"version"`
	Currency       string `json:"currency"`
	CurrentOrderID string `json:"currentOrderId,omitempty"`
}

// CurrencyRequest selects the display currency.
type CurrencyRequest struct {
	Currency string `json:"currency"`
}
