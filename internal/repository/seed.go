package repository

import (
	"time"

	"github.com/Lixing-Zhang/kart-challenge/storefront/internal/models"
)

var seedCategories = []models.Category{
	{ID: 1, Name: "Waffles"},
	{ID: 2, Name: "Salads"},
	{ID: 3, Name: "Pizza"},
	{ID: 4, Name: "Burgers"},
	{ID: 5, Name: "Bakery"},
	{ID: 6, Name: "Desserts"},
	{ID: 7, Name: "Vegan"},
}

var seedProviders = []models.Provider{
	{ID: 1, Name: "Mcdonalds"},
	{ID: 2, Name: "Green Bowl"},
	{ID: 3, Name: "Corner Bakery"},
}

type seedFood struct {
	name        string
	description string
	price       string
	provider    int64
	categories  []int64
	vegetarian  bool
	vegan       bool
	glutenFree  bool
}

var seedMenu = []seedFood{
	{"Chicken Waffle", "Crispy chicken on a buttermilk waffle", "12.99", 1, []int64{1}, false, false, false},
	{"Belgian Waffle", "Classic waffle with maple syrup", "10.99", 3, []int64{1, 6}, true, false, false},
	{"Chocolate Waffle", "Waffle with dark chocolate sauce", "11.99", 3, []int64{1, 6}, true, false, false},
	{"Caesar Salad", "Romaine, parmesan and croutons", "8.99", 2, []int64{2}, false, false, false},
	{"Greek Salad", "Feta, olives and cucumber", "9.49", 2, []int64{2}, true, false, true},
	{"Garden Salad", "Seasonal greens with vinaigrette", "7.99", 2, []int64{2, 7}, true, true, true},
	{"Margherita Pizza", "Tomato, mozzarella and basil", "14.99", 1, []int64{3}, true, false, false},
	{"Pepperoni Pizza", "Spicy pepperoni and mozzarella", "16.99", 1, []int64{3}, false, false, false},
	{"Veggie Pizza", "Peppers, mushrooms and onions", "15.49", 1, []int64{3}, true, false, false},
	{"Classic Burger", "Beef patty with cheddar", "13.99", 1, []int64{4}, false, false, false},
	{"Bean Burger", "Black bean patty with avocado", "12.49", 2, []int64{4, 7}, true, true, false},
	{"Sourdough Loaf", "Naturally leavened country loaf", "6.50", 3, []int64{5, 7}, true, true, false},
	{"Croissant Box", "Four butter croissants", "9.00", 3, []int64{5}, true, false, false},
	{"Cinnamon Rolls", "Glazed rolls, half dozen", "11.00", 3, []int64{5, 6}, true, false, false},
	{"Fruit Tart", "Custard tart with seasonal fruit", "7.25", 3, []int64{6}, true, false, false},
	{"Vegan Brownie", "Fudgy cocoa brownie", "4.75", 2, []int64{6, 7}, true, true, false},
	{"Quinoa Bowl", "Quinoa, chickpeas and tahini", "10.25", 2, []int64{2, 7}, true, true, true},
	{"Apple Pie", "Whole pie with lattice crust", "14.00", 3, []int64{5, 6}, true, false, false},
	{"Fries Bag", "Large bag of fries", "3.99", 1, []int64{4, 7}, true, true, true},
	{"Nuggets Box", "Twenty chicken nuggets", "8.49", 1, []int64{4}, false, false, false},
}

// seedFoods lists every menu item twice, once for a lunch and once for an
// evening pickup, giving a catalog large enough to page through
func seedFoods() []FoodRecord {
	day := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	created := day.Add(-24 * time.Hour)

	var foods []FoodRecord
	for slot, hour := range []int{12, 18} {
		for i, s := range seedMenu {
			pickup := day.Add(time.Duration(hour)*time.Hour + time.Duration(i%4)*15*time.Minute)
			name := s.name
			if slot == 1 {
				name += " (evening)"
			}
			foods = append(foods, FoodRecord{
				Food: models.Food{
					Name:                name,
					Description:         s.description,
					Image:               "https://images.example.com/food/" + slugify(s.name) + ".jpg",
					Price:               s.price,
					PickupTime:          pickup.Format(models.LocalTimeLayout),
					ProductType:         models.ProductTypeFood,
					ProductProviderName: providerName(s.provider),
					Vegetarian:          s.vegetarian,
					Vegan:               s.vegan,
					GlutenFree:          s.glutenFree,
				},
				CategoryIDs: s.categories,
				ProviderID:  s.provider,
				CreatedAt:   created.Add(time.Duration(slot*len(seedMenu)+i) * time.Minute),
			})
		}
	}
	return foods
}

func providerName(id int64) string {
	for _, p := range seedProviders {
		if p.ID == id {
			return p.Name
		}
	}
	return ""
}

func slugify(name string) string {
	out := make([]rune, 0, len(name))
	for _, r := range name {
		switch {
		case r >= 'A' && r <= 'Z':
			out = append(out, r+('a'-'A'))
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			out = append(out, r)
		default:
			out = append(out, '-')
		}
	}
	return string(out)
}
