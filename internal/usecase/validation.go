package usecase

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/polkiloo/chanorders/internal/domain/model"
)

const maxOrderIDLength = 128

// ValidateOrderID checks that id can be sent to the remote authority. Ids are opaque:
// any valid UTF-8 without control characters up to maxOrderIDLength bytes is accepted.
func ValidateOrderID(id string) bool {
	if id == "" || len(id) > maxOrderIDLength || !utf8.ValidString(id) {
		return false
	}
	return !strings.ContainsFunc(id, unicode.IsControl)
}

// ValidateBuyChannelRequest checks the locally verifiable parts of a purchase request.
func ValidateBuyChannelRequest(req model.BuyChannelRequest) bool {
	if req.ProductID == "" {
		return false
	}
	if req.RemoteBalance < 0 || req.LocalBalance <= 0 {
		return false
	}
	return req.ChannelExpiryWeeks > 0
}
