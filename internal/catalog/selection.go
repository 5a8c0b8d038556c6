package catalog

import (
	"slices"
	"strings"
	"time"

	"github.com/Lixing-Zhang/kart-challenge/storefront/internal/models"
)

// Sort is an order key plus direction
type Sort struct {
	OrderBy   models.OrderBy
	Direction models.Direction
}

// Sorts are the sort orders offered by the catalog, in cycle order.
// The first entry is the default.
var Sorts = []Sort{
	{models.OrderByCreatedAt, models.DirectionAsc},
	{models.OrderByName, models.DirectionAsc},
	{models.OrderByPrice, models.DirectionAsc},
	{models.OrderByPrice, models.DirectionDesc},
	{models.OrderByPickupTime, models.DirectionAsc},
}

// DefaultSort is the order used before the user picks one
var DefaultSort = Sorts[0]

// Label is the human readable sort name
func (s Sort) Label() string {
	switch s {
	case Sort{models.OrderByCreatedAt, models.DirectionAsc}:
		return "Default"
	case Sort{models.OrderByName, models.DirectionAsc}:
		return "Name (A/Z)"
	case Sort{models.OrderByName, models.DirectionDesc}:
		return "Name (Z/A)"
	case Sort{models.OrderByPrice, models.DirectionAsc}:
		return "Price (Low to High)"
	case Sort{models.OrderByPrice, models.DirectionDesc}:
		return "Price (High to Low)"
	case Sort{models.OrderByPickupTime, models.DirectionAsc}:
		return "Pickup (Soonest)"
	default:
		return string(s.OrderBy) + " " + string(s.Direction)
	}
}

// NextSort returns the sort following s in Sorts, wrapping around
func NextSort(s Sort) Sort {
	i := slices.Index(Sorts, s)
	return Sorts[(i+1)%len(Sorts)]
}

// Selection holds the user's filter choices.
//
// Selection is a value: every mutator returns a new Selection and leaves the
// receiver untouched, so a Selection captured by an in-flight request never changes.
type Selection struct {
	categoryIDs  []int64
	matchAll     bool
	providerIDs  []int64
	providerName string
	pickupFrom   time.Time
	pickupTo     time.Time
	sort         Sort
}

// NewSelection returns an empty selection with the default sort
func NewSelection() Selection {
	return Selection{sort: DefaultSort}
}

// ToggleCategory adds id to the category set, or removes it if present
func (s Selection) ToggleCategory(id int64) Selection {
	s.categoryIDs = toggle(s.categoryIDs, id)
	return s
}

// ToggleProvider adds id to the provider set, or removes it if present
func (s Selection) ToggleProvider(id int64) Selection {
	s.providerIDs = toggle(s.providerIDs, id)
	return s
}

// SetMatchAll chooses between "all selected categories" and "any selected category"
func (s Selection) SetMatchAll(matchAll bool) Selection {
	s.matchAll = matchAll
	return s
}

// SetProviderName restricts results to one provider by name; "" clears it
func (s Selection) SetProviderName(name string) Selection {
	s.providerName = strings.TrimSpace(name)
	return s
}

// SetPickupFrom sets the lower pickup-time bound; the zero time clears it.
// Bounds are zone-less on the wire, so only the wall clock of t is kept.
func (s Selection) SetPickupFrom(t time.Time) Selection {
	s.pickupFrom = wallClock(t)
	return s
}

// SetPickupTo sets the upper pickup-time bound; the zero time clears it.
// Bounds are zone-less on the wire, so only the wall clock of t is kept.
func (s Selection) SetPickupTo(t time.Time) Selection {
	s.pickupTo = wallClock(t)
	return s
}

// ClearPickupRange removes both pickup-time bounds
func (s Selection) ClearPickupRange() Selection {
	s.pickupFrom = time.Time{}
	s.pickupTo = time.Time{}
	return s
}

// SetSort replaces the sort order
func (s Selection) SetSort(sort Sort) Selection {
	s.sort = sort
	return s
}

func (s Selection) CategoryIDs() []int64 { return slices.Clone(s.categoryIDs) }
func (s Selection) ProviderIDs() []int64 { return slices.Clone(s.providerIDs) }
func (s Selection) ProviderName() string { return s.providerName }
func (s Selection) MatchAll() bool { return s.matchAll }
func (s Selection) PickupFrom() time.Time { return s.pickupFrom }
func (s Selection) PickupTo() time.Time { return s.pickupTo }
func (s Selection) Sort() Sort { return s.sort }
func (s Selection) HasCategory(id int64) bool { return slices.Contains(s.categoryIDs, id) }
func (s Selection) HasProvider(id int64) bool { return slices.Contains(s.providerIDs, id) }

// Equal reports whether two selections choose the same filter
func (s Selection) Equal(o Selection) bool {
	return slices.Equal(s.categoryIDs, o.categoryIDs) &&
		slices.Equal(s.providerIDs, o.providerIDs) &&
		s.matchAll == o.matchAll &&
		s.providerName == o.providerName &&
		s.pickupFrom.Equal(o.pickupFrom) &&
		s.pickupTo.Equal(o.pickupTo) &&
		s.sort == o.sort
}

// Filter builds the request filter for the given page
func (s Selection) Filter(page, pageSize int) models.FoodFilter {
	f := models.FoodFilter{
		CategoryIDs:         slices.Clone(s.categoryIDs),
		CategoryIDsMatchAll: s.matchAll,
		ProviderIDs:         slices.Clone(s.providerIDs),
		ProductProviderName: s.providerName,
		Page:                page,
		PageSize:            pageSize,
		OrderBy:             s.sort.OrderBy,
		Direction:           s.sort.Direction,
	}
	if !s.pickupFrom.IsZero() {
		f.PickupTimeFrom = models.NewLocalTime(s.pickupFrom)
	}
	if !s.pickupTo.IsZero() {
		f.PickupTimeTo = models.NewLocalTime(s.pickupTo)
	}
	return f
}

// SelectionFromFilter reconstructs the selection a filter was built from
func SelectionFromFilter(f models.FoodFilter) Selection {
	s := NewSelection()
	for _, id := range f.CategoryIDs {
		if !s.HasCategory(id) {
			s = s.ToggleCategory(id)
		}
	}
	for _, id := range f.ProviderIDs {
		if !s.HasProvider(id) {
			s = s.ToggleProvider(id)
		}
	}
	s.matchAll = f.CategoryIDsMatchAll
	s.providerName = f.ProductProviderName
	if f.PickupTimeFrom != nil {
		s.pickupFrom = wallClock(f.PickupTimeFrom.Time)
	}
	if f.PickupTimeTo != nil {
		s.pickupTo = wallClock(f.PickupTimeTo.Time)
	}
	if f.OrderBy != "" {
		s.sort = Sort{OrderBy: f.OrderBy, Direction: f.Direction}
	}
	return s
}

// wallClock keeps the calendar date and clock reading of t, to the second, in UTC
func wallClock(t time.Time) time.Time {
	if t.IsZero() {
		return time.Time{}
	}
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), 0, time.UTC)
}

// toggle returns a sorted copy of ids with id added or removed
func toggle(ids []int64, id int64) []int64 {
	out := slices.Clone(ids)
	i, found := slices.BinarySearch(out, id)
	if found {
		return slices.Delete(out, i, i+1)
	}
	return slices.Insert(out, i, id)
}
