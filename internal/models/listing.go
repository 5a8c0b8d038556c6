package models

// Product types a provider can list
const (
	ProductTypeFood    = "FOOD"
	ProductTypeClothes = "CLOTHES"
)

// ProductFields are the shared product attributes of a new listing
type ProductFields struct {
	ProductType       string    `json:"productType"`
	ProductProviderID int64     `json:"productProviderId"`
	Name              string    `json:"name"`
	Description       string    `json:"description"`
	Image             string    `json:"image"`
	Price             string    `json:"price"`
	PickupTime        LocalTime `json:"pickupTime"`
}

// CreateFoodRequest is the request body of POST /api/food/create-food
type CreateFoodRequest struct {
	Product    ProductFields `json:"product"`
	Vegetarian bool          `json:"vegetarian"`
	Vegan      bool          `json:"vegan"`
	GlutenFree bool          `json:"glutenFree"`
	NutFree    bool          `json:"nutFree"`
	DairyFree  bool          `json:"dairyFree"`
	Organic    bool          `json:"organic"`
}
