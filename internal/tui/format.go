package tui

import (
	"strings"

	"github.com/Lixing-Zhang/kart-challenge/storefront/internal/models"
	"github.com/shopspring/decimal"
)

// PickupLayout renders pickup times as "2024-05-01 5:30 PM"
const PickupLayout = "2006-01-02 3:04 PM"

// FormatPrice renders a wire price as dollars with two decimals.
// Unparseable prices are shown as received.
func FormatPrice(price string) string {
	d, err := decimal.NewFromString(strings.TrimSpace(price))
	if err != nil {
		return price
	}
	return "$" + d.StringFixed(2)
}

// FormatPickup renders a wire pickup time in 12-hour form
func FormatPickup(pickup string) string {
	t, err := models.ParseLocalTime(pickup)
	if err != nil {
		return pickup
	}
	return t.Format(PickupLayout)
}
