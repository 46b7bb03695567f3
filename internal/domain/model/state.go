package model

// RequestState is the coarse status of the last settled request for a resource class.
type RequestState string

const (
	RequestIdle    RequestState = "idle"
	RequestLoading RequestState = "loading"
	RequestError   RequestState = "error"
)

// ResourceClass identifies an independently tracked remote resource.
type ResourceClass string

const (
	ResourceOrders        ResourceClass = "orders"
	ResourceInfo          ResourceClass = "info"
	ResourceExchangeRates ResourceClass = "exchange_rates"
)

// ResourceClasses lists every tracked class.
var ResourceClasses = []ResourceClass{ResourceOrders, ResourceInfo, ResourceExchangeRates}
