package model

// OrderRecord is the latest known snapshot of a channel order as reported by the remote authority.
type OrderRecord struct {
	ID            string
	StatusCode    int32
	StatusMessage string
	// CreatedAt is the creation instant in epoch milliseconds.
	CreatedAt int64
}

// Status codes reported by the remote authority along the order lifecycle.
const (
	StatusAwaitingPayment int32 = 0
	StatusPaid            int32 = 100
	StatusURISet          int32 = 200
	StatusOpening         int32 = 300
	StatusGivenUp         int32 = 400
	StatusClosed          int32 = 450
	StatusOpen            int32 = 500
)

// BuyChannelRequest describes a new channel purchase.
type BuyChannelRequest struct {
	ProductID          string
	RemoteBalance      int64
	LocalBalance       int64
	ChannelExpiryWeeks int
}

// BuyChannelResponse is returned by the remote authority for an accepted purchase.
type BuyChannelResponse struct {
	OrderID     string
	LNInvoice   string
	BTCAddress  string
	PriceSats   int64
	TotalAmount int64
	OrderExpiry int64
}
