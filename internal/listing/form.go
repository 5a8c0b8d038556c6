// Package listing implements the provider-facing create-listing form.
package listing

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/Lixing-Zhang/kart-challenge/storefront/internal/models"
	"github.com/shopspring/decimal"
)

var (
	ErrInvalidField   = errors.New("invalid field")
	ErrSubmitInFlight = errors.New("listing is already being submitted")
	ErrNoListing      = errors.New("server returned no listing")
)

// Field is a text field of the form
type Field int

const (
	FieldProductType Field = iota
	FieldProviderID
	FieldName
	FieldDescription
	FieldImage
	FieldPrice
	FieldPickupTime
)

// Fields lists the text fields in display order
var Fields = []Field{
	FieldProductType,
	FieldProviderID,
	FieldName,
	FieldDescription,
	FieldImage,
	FieldPrice,
	FieldPickupTime,
}

func (f Field) String() string {
	switch f {
	case FieldProductType:
		return "Product Type"
	case FieldProviderID:
		return "Provider ID"
	case FieldName:
		return "Name"
	case FieldDescription:
		return "Description"
	case FieldImage:
		return "Image URL"
	case FieldPrice:
		return "Price"
	case FieldPickupTime:
		return "Pickup Time"
	default:
		return fmt.Sprintf("Field(%d)", int(f))
	}
}

// Flag is a dietary checkbox of the form
type Flag int

const (
	FlagVegetarian Flag = iota
	FlagVegan
	FlagGlutenFree
	FlagNutFree
	FlagDairyFree
	FlagOrganic
)

// Flags lists the dietary flags in display order
var Flags = []Flag{FlagVegetarian, FlagVegan, FlagGlutenFree, FlagNutFree, FlagDairyFree, FlagOrganic}

func (f Flag) String() string {
	switch f {
	case FlagVegetarian:
		return "Vegetarian"
	case FlagVegan:
		return "Vegan"
	case FlagGlutenFree:
		return "Gluten Free"
	case FlagNutFree:
		return "Nut Free"
	case FlagDairyFree:
		return "Dairy Free"
	case FlagOrganic:
		return "Organic"
	default:
		return fmt.Sprintf("Flag(%d)", int(f))
	}
}

// Status of a form submission
type Status int

const (
	StatusEditing Status = iota
	StatusSubmitting
	StatusSubmitted
	StatusFailed
)

// Form is the create-listing form state
type Form struct {
	values map[Field]string
	flags  map[Flag]bool

	status  Status
	created *models.Food
	err     error
}

// NewForm returns an empty form for the given provider
func NewForm(providerID int64) *Form {
	return &Form{
		values: map[Field]string{
			FieldProductType: models.ProductTypeFood,
			FieldProviderID:  strconv.FormatInt(providerID, 10),
		},
		flags: make(map[Flag]bool),
	}
}

// Set replaces a field value. Editing after a submission starts a new draft.
func (f *Form) Set(field Field, value string) {
	f.values[field] = value
	f.touch()
}

// Toggle flips a dietary flag
func (f *Form) Toggle(flag Flag) {
	f.flags[flag] = !f.flags[flag]
	f.touch()
}

func (f *Form) touch() {
	if f.status == StatusSubmitted || f.status == StatusFailed {
		f.status = StatusEditing
		f.err = nil
	}
}

func (f *Form) Value(field Field) string { return f.values[field] }
func (f *Form) Flag(flag Flag) bool { return f.flags[flag] }
func (f *Form) Status() Status { return f.status }
func (f *Form) Err() error { return f.err }
func (f *Form) Created() *models.Food { return f.created }

// Validate reports every invalid field
func (f *Form) Validate() error {
	_, err := f.Request()
	return err
}

// Request builds the create request, validating every field
func (f *Form) Request() (models.CreateFoodRequest, error) {
	var errs []error
	invalid := func(field Field, reason string) {
		errs = append(errs, fmt.Errorf("%w: %s %s", ErrInvalidField, field, reason))
	}

	productType := strings.ToUpper(strings.TrimSpace(f.values[FieldProductType]))
	if productType != models.ProductTypeFood && productType != models.ProductTypeClothes {
		invalid(FieldProductType, "must be FOOD or CLOTHES")
	}

	providerID, err := strconv.ParseInt(strings.TrimSpace(f.values[FieldProviderID]), 10, 64)
	if err != nil || providerID <= 0 {
		invalid(FieldProviderID, "must be a positive number")
	}

	name := strings.TrimSpace(f.values[FieldName])
	if name == "" {
		invalid(FieldName, "is required")
	}

	price, err := decimal.NewFromString(strings.TrimSpace(f.values[FieldPrice]))
	if err != nil {
		invalid(FieldPrice, "must be a decimal number")
	} else if price.IsNegative() {
		invalid(FieldPrice, "must not be negative")
	}

	pickup, err := models.ParseLocalTime(strings.TrimSpace(f.values[FieldPickupTime]))
	if err != nil {
		invalid(FieldPickupTime, "must look like 2024-05-01T17:30")
	}

	if len(errs) > 0 {
		return models.CreateFoodRequest{}, errors.Join(errs...)
	}

	return models.CreateFoodRequest{
		Product: models.ProductFields{
			ProductType:       productType,
			ProductProviderID: providerID,
			Name:              name,
			Description:       strings.TrimSpace(f.values[FieldDescription]),
			Image:             strings.TrimSpace(f.values[FieldImage]),
			Price:             price.StringFixed(2),
			PickupTime:        *models.NewLocalTime(pickup),
		},
		Vegetarian: f.flags[FlagVegetarian],
		Vegan:      f.flags[FlagVegan],
		GlutenFree: f.flags[FlagGlutenFree],
		NutFree:    f.flags[FlagNutFree],
		DairyFree:  f.flags[FlagDairyFree],
		Organic:    f.flags[FlagOrganic],
	}, nil
}

// BeginSubmit validates the form and marks it as submitting
func (f *Form) BeginSubmit() (models.CreateFoodRequest, error) {
	if f.status == StatusSubmitting {
		return models.CreateFoodRequest{}, ErrSubmitInFlight
	}
	req, err := f.Request()
	if err != nil {
		f.status = StatusFailed
		f.err = err
		return models.CreateFoodRequest{}, err
	}
	f.status = StatusSubmitting
	f.err = nil
	f.created = nil
	return req, nil
}

// Complete records the outcome of a submission started with BeginSubmit.
// A nil listing without an error counts as a failed submission.
func (f *Form) Complete(created *models.Food, err error) {
	if f.status != StatusSubmitting {
		return
	}
	if err == nil && created == nil {
		err = ErrNoListing
	}
	if err != nil {
		f.status = StatusFailed
		f.err = err
		return
	}
	f.status = StatusSubmitted
	f.created = created
}
