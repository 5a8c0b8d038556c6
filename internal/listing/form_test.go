package listing

import (
	"errors"
	"testing"

	"github.com/Lixing-Zhang/kart-challenge/storefront/internal/models"
	"github.com/stretchr/testify/require"
)

func filledForm() *Form {
	f := NewForm(1)
	f.Set(FieldName, "  Veggie Pizza ")
	f.Set(FieldDescription, "Stone baked")
	f.Set(FieldPrice, "15.5")
	f.Set(FieldPickupTime, "2024-05-02T17:30")
	f.Toggle(FlagVegetarian)
	f.Toggle(FlagOrganic)
	return f
}

func TestForm_Request(t *testing.T) {
	req, err := filledForm().Request()
	require.NoError(t, err)

	require.Equal(t, models.ProductTypeFood, req.Product.ProductType)
	require.Equal(t, int64(1), req.Product.ProductProviderID)
	require.Equal(t, "Veggie Pizza", req.Product.Name)
	require.Equal(t, "15.50", req.Product.Price)
	require.Equal(t, "2024-05-02T17:30:00", req.Product.PickupTime.String())
	require.True(t, req.Vegetarian)
	require.True(t, req.Organic)
	require.False(t, req.Vegan)
}

func TestForm_Validate(t *testing.T) {
	tests := []struct {
		name  string
		field Field
		value string
	}{
		{"missing name", FieldName, " "},
		{"bad price", FieldPrice, "cheap"},
		{"negative price", FieldPrice, "-1"},
		{"bad pickup", FieldPickupTime, "tomorrow"},
		{"bad provider", FieldProviderID, "mcdonalds"},
		{"bad product type", FieldProductType, "TOYS"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := filledForm()
			f.Set(tt.field, tt.value)

			err := f.Validate()
			require.ErrorIs(t, err, ErrInvalidField)
			require.Contains(t, err.Error(), tt.field.String())
		})
	}
}

func TestForm_SubmitLifecycle(t *testing.T) {
	f := filledForm()

	_, err := f.BeginSubmit()
	require.NoError(t, err)
	require.Equal(t, StatusSubmitting, f.Status())

	_, err = f.BeginSubmit()
	require.ErrorIs(t, err, ErrSubmitInFlight)

	f.Complete(&models.Food{ID: 41, Name: "Veggie Pizza"}, nil)
	require.Equal(t, StatusSubmitted, f.Status())
	require.Equal(t, int64(41), f.Created().ID)

	f.Set(FieldName, "Veggie Pizza XL")
	require.Equal(t, StatusEditing, f.Status())
}

func TestForm_SubmitFailureIsSurfaced(t *testing.T) {
	f := filledForm()
	submitErr := errors.New("load failed: unexpected status code: 403")

	_, err := f.BeginSubmit()
	require.NoError(t, err)
	f.Complete(nil, submitErr)

	require.Equal(t, StatusFailed, f.Status())
	require.ErrorIs(t, f.Err(), submitErr)
	require.Nil(t, f.Created())
}

func TestForm_EmptyResponseIsAFailure(t *testing.T) {
	f := filledForm()

	_, err := f.BeginSubmit()
	require.NoError(t, err)
	f.Complete(nil, nil)

	require.Equal(t, StatusFailed, f.Status())
	require.ErrorIs(t, f.Err(), ErrNoListing)
	require.Nil(t, f.Created())
}

func TestForm_InvalidSubmitDoesNotSend(t *testing.T) {
	f := NewForm(1)

	_, err := f.BeginSubmit()
	require.ErrorIs(t, err, ErrInvalidField)
	require.Equal(t, StatusFailed, f.Status())
}
