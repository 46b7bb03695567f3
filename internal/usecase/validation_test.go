package usecase

import (
	"strings"
	"testing"

	"github.com/polkiloo/chanorders/internal/domain/model"
	testhelpers "github.com/polkiloo/chanorders/internal/test"
)

func TestValidateOrderID(t *testing.T) {
	valid := []string{
		"o1",
		"62f2a7bbf3d1e8a1c4b3a9e0",
		"order_2024-01",
		"a b",
		"ordér",
		"id?x=1",
		strings.Repeat("a", maxOrderIDLength),
	}
	for _, id := range valid {
		if !ValidateOrderID(id) {
			t.Fatalf("expected id %q to be valid", id)
		}
	}

	invalid := []string{"", "a\nb", "nul\x00", "\xff\xfe", strings.Repeat("a", maxOrderIDLength+1)}
	for _, id := range invalid {
		if ValidateOrderID(id) {
			t.Fatalf("expected id %q to be invalid", id)
		}
	}
}

func TestValidateOrderIDRandomized(t *testing.T) {
	for i := 0; i < 100; i++ {
		if id := testhelpers.RandomOrderID(); !ValidateOrderID(id) {
			t.Fatalf("expected generated id %q to be valid", id)
		}
		if id := testhelpers.RandomASCIIString(1, maxOrderIDLength); !ValidateOrderID(id) {
			t.Fatalf("expected alphanumeric id %q to be valid", id)
		}
		if id := testhelpers.RandomASCIIString(maxOrderIDLength+1, 2*maxOrderIDLength); ValidateOrderID(id) {
			t.Fatalf("expected oversized id of length %d to be invalid", len(id))
		}
	}
}

func TestValidateBuyChannelRequest(t *testing.T) {
	ok := model.BuyChannelRequest{ProductID: "p1", LocalBalance: 100000, ChannelExpiryWeeks: 4}
	if !ValidateBuyChannelRequest(ok) {
		t.Fatal("expected request to be valid")
	}

	cases := map[string]model.BuyChannelRequest{
		"missing product":   {LocalBalance: 1, ChannelExpiryWeeks: 1},
		"negative remote":   {ProductID: "p", LocalBalance: 1, RemoteBalance: -1, ChannelExpiryWeeks: 1},
		"zero local":        {ProductID: "p", ChannelExpiryWeeks: 1},
		"zero expiry weeks": {ProductID: "p", LocalBalance: 1},
	}
	for name, req := range cases {
		if ValidateBuyChannelRequest(req) {
			t.Fatalf("%s: expected request to be invalid", name)
		}
	}
}
