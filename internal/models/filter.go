package models

// OrderBy is the sort key accepted by the food listing endpoint
type OrderBy string

const (
	OrderByID         OrderBy = "ID"
	OrderByName       OrderBy = "NAME"
	OrderByPrice      OrderBy = "PRICE"
	OrderByPickupTime OrderBy = "PICKUP_TIME"
	OrderByCreatedAt  OrderBy = "CREATED_AT"
)

// Valid reports whether o is a known sort key
func (o OrderBy) Valid() bool {
	switch o {
	case OrderByID, OrderByName, OrderByPrice, OrderByPickupTime, OrderByCreatedAt:
		return true
	default:
		return false
	}
}

// Direction is the sort direction
type Direction string

const (
	DirectionAsc  Direction = "ASC"
	DirectionDesc Direction = "DESC"
)

// Valid reports whether d is a known direction
func (d Direction) Valid() bool {
	return d == DirectionAsc || d == DirectionDesc
}

// FoodFilter is the request body of POST /api/food/get-foods
type FoodFilter struct {
	CategoryIDs         []int64    `json:"categoryIds,omitempty"`
	CategoryIDsMatchAll bool       `json:"categoryIdsMatchAll"`
	ProviderIDs         []int64    `json:"providerIds,omitempty"`
	ProductProviderName string     `json:"productProviderName,omitempty"`
	PickupTimeFrom      *LocalTime `json:"pickupTimeFrom,omitempty"`
	PickupTimeTo        *LocalTime `json:"pickupTimeTo,omitempty"`
	Page                int        `json:"page"`
	PageSize            int        `json:"pageSize"`
	OrderBy             OrderBy    `json:"orderBy"`
	Direction           Direction  `json:"direction"`
}

// DefaultFilter returns the filter used when nothing is selected
func DefaultFilter() FoodFilter {
	return FoodFilter{
		Page:      1,
		PageSize:  100,
		OrderBy:   OrderByCreatedAt,
		Direction: DirectionAsc,
	}
}

// FoodPage is one page of food listings
type FoodPage struct {
	Foods      []Food `json:"foods"`
	TotalItems int    `json:"totalItems"`
	TotalPages int    `json:"totalPages"`
	Page       int    `json:"page"`
	PageSize   int    `json:"pageSize"`
}

// TotalPages returns ceil(totalItems / pageSize)
func TotalPages(totalItems, pageSize int) int {
	if pageSize <= 0 || totalItems <= 0 {
		return 0
	}
	return (totalItems + pageSize - 1) / pageSize
}
