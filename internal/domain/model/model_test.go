package model

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestRequestStateValues(t *testing.T) {
	cases := []struct {
		name  string
		got   RequestState
		value string
	}{
		{"idle", RequestIdle, "idle"},
		{"loading", RequestLoading, "loading"},
		{"error", RequestError, "error"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if string(tc.got) != tc.value {
				t.Fatalf("expected %s, got %s", tc.value, tc.got)
			}
		})
	}
}

func TestResourceClassesAreDistinct(t *testing.T) {
	seen := make(map[ResourceClass]struct{}, len(ResourceClasses))
	for _, c := range ResourceClasses {
		if _, dup := seen[c]; dup {
			t.Fatalf("duplicate resource class %s", c)
		}
		seen[c] = struct{}{}
	}
	if len(seen) != 3 {
		t.Fatalf("expected 3 resource classes, got %d", len(seen))
	}
}

func TestFiatCurrencyValid(t *testing.T) {
	for _, c := range SupportedCurrencies {
		if !c.Valid() {
			t.Errorf("expected %s to be valid", c)
		}
	}
	if FiatCurrency("XYZ").Valid() {
		t.Error("did not expect XYZ to be valid")
	}
}

func TestExchangeRatesClone(t *testing.T) {
	rates := ExchangeRates{"USD": decimal.NewFromInt(60000)}
	clone := rates.Clone()
	clone["EUR"] = decimal.NewFromInt(55000)
	if _, ok := rates["EUR"]; ok {
		t.Fatal("clone must not share storage with original")
	}
	if !clone["USD"].Equal(rates["USD"]) {
		t.Fatalf("expected USD rate to be copied, got %s", clone["USD"])
	}
}
