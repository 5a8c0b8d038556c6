package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Food represents a food listing as served by the food API
type Food struct {
	ID                  int64  `json:"foodId"`
	Name                string `json:"name"`
	Description         string `json:"description"`
	Image               string `json:"image"`
	Price               string `json:"price"`
	PickupTime          string `json:"pickupTime"`
	ProductType         string `json:"productType"`
	ProductProviderName string `json:"productProviderName"`
	Vegetarian          bool   `json:"vegetarian"`
	Vegan               bool   `json:"vegan"`
	GlutenFree          bool   `json:"glutenFree"`
	NutFree             bool   `json:"nutFree"`
	DairyFree           bool   `json:"dairyFree"`
	Organic             bool   `json:"organic"`
}

// PriceDecimal parses the decimal price string
func (f Food) PriceDecimal() (decimal.Decimal, error) {
	return decimal.NewFromString(f.Price)
}

// Pickup parses the pickup time
func (f Food) Pickup() (time.Time, error) {
	return ParseLocalTime(f.PickupTime)
}

// DietaryLabels lists the dietary flags set on the food, in display order
func (f Food) DietaryLabels() []string {
	var labels []string
	for _, d := range []struct {
		set   bool
		label string
	}{
		{f.Vegetarian, "Vegetarian"},
		{f.Vegan, "Vegan"},
		{f.GlutenFree, "Gluten Free"},
		{f.NutFree, "Nut Free"},
		{f.DairyFree, "Dairy Free"},
		{f.Organic, "Organic"},
	} {
		if d.set {
			labels = append(labels, d.label)
		}
	}
	return labels
}

// Category is a food category used to populate filter choices
type Category struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Provider is a product provider used to populate filter choices
type Provider struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}
