package model

// Capacity describes liquidity available on the service node.
type Capacity struct {
	LocalBalance  int64
	RemoteBalance int64
}

// Service is a purchasable channel product.
type Service struct {
	ProductID      string
	Available      bool
	Description    string
	MinChannelSize int64
	MaxChannelSize int64
	MinChanExpiry  int
	MaxChanExpiry  int
	OrderExpiry    int64
}

// NodeInfo describes the Lightning node selling channels.
type NodeInfo struct {
	ActiveChannelsCount int
	Alias               string
	PublicKey           string
	URIs                []string
}

// Info is the singleton service metadata resource. The zero value is the initial state.
type Info struct {
	Capacity Capacity
	Services []Service
	NodeInfo NodeInfo
}
