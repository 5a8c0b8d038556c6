package foodapi

import (
	"context"

	"github.com/Lixing-Zhang/kart-challenge/storefront/internal/models"
	"golang.org/x/sync/errgroup"
)

// References holds the read-only lists used to populate filter choices
type References struct {
	Categories []models.Category
	Providers  []models.Provider
}

// LoadReferences fetches categories and providers concurrently.
// Both requests must succeed; the first failure cancels the other.
func (c *Client) LoadReferences(ctx context.Context) (*References, error) {
	var refs References

	eg, egctx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		categories, err := c.ListCategories(egctx)
		if err != nil {
			return err
		}
		refs.Categories = categories
		return nil
	})
	eg.Go(func() error {
		providers, err := c.ListProviders(egctx)
		if err != nil {
			return err
		}
		refs.Providers = providers
		return nil
	})

	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return &refs, nil
}
