// Package classifier maps remote order status codes to user-facing lifecycle categories.
package classifier

import "github.com/polkiloo/chanorders/internal/domain/model"

// Category is the user-facing lifecycle bucket of an order.
type Category string

const (
	CategoryAwaitingPayment Category = "awaiting_payment"
	CategoryPaid            Category = "paid"
	CategoryURISet          Category = "provisioning_parameters_set"
	CategoryOpening         Category = "provisioning"
	CategoryExpired         Category = "expired"
	CategoryClosed          Category = "closed"
	CategoryOpen            Category = "open"
	CategoryUnknown         Category = "unknown"
)

// Action is the next step recommended to the user.
type Action string

const (
	ActionPayNow      Action = "pay_now"
	ActionClaim       Action = "claim"
	ActionViewDetails Action = "view_details"
)

// Icon names the display icon for the order row.
type Icon string

const (
	IconTransfer       Icon = "transfer"
	IconLightning      Icon = "lightning"
	IconLightningGreen Icon = "lightning-green"
	IconLightningRed   Icon = "lightning-red"
)

// Page is the view the recommended action navigates to.
type Page string

const (
	PagePayment Page = "payment"
	PageClaim   Page = "claim"
	PageOrder   Page = "order"
)

// Classification is derived from a status code on every read and never stored.
type Classification struct {
	Category   Category
	Action     Action
	ButtonText string
	Icon       Icon
	Page       Page
	// Removable reports whether the order may be dropped from the local cache by the user.
	Removable bool
}

var defaultClassification = Classification{
	Category:   CategoryUnknown,
	Action:     ActionViewDetails,
	ButtonText: "Order details",
	Icon:       IconLightning,
	Page:       PageOrder,
}

// Classify maps a status code to its classification. Unknown codes yield the neutral default.
func Classify(code int32) Classification {
	c := defaultClassification

	switch code {
	case model.StatusAwaitingPayment:
		c.Category = CategoryAwaitingPayment
		c.Action = ActionPayNow
		c.ButtonText = "Pay now"
		c.Icon = IconTransfer
		c.Page = PagePayment
		c.Removable = true
	case model.StatusPaid:
		c.Category = CategoryPaid
		c.Action = ActionClaim
		c.ButtonText = "Claim channel"
		c.Page = PageClaim
	case model.StatusURISet:
		c.Category = CategoryURISet
	case model.StatusOpening:
		c.Category = CategoryOpening
		c.Icon = IconLightningGreen
	case model.StatusGivenUp:
		c.Category = CategoryExpired
		c.Icon = IconLightningRed
		c.Removable = true
	case model.StatusClosed:
		c.Category = CategoryClosed
		c.Icon = IconLightningRed
		c.Removable = true
	case model.StatusOpen:
		c.Category = CategoryOpen
		c.Icon = IconLightningGreen
	}

	return c
}

// Removable reports whether an order in the given status may be removed locally.
func Removable(code int32) bool {
	return Classify(code).Removable
}
