package workflow

import (
	"context"

	"github.com/nderose7/shiptrack-app/models"
)

// CatalogAPI is what serial resolution needs from the backend client.
type CatalogAPI interface {
	FetchProducts(ctx context.Context) ([]models.ProductEntry, error)
}

// ResolveSerial returns the first entry whose serial exactly equals the
// scanned string. Matching is case-sensitive with no fuzzing. A miss
// returns nil; "not found" is not an error.
func ResolveSerial(entries []models.ProductEntry, serial string) *models.ProductEntry {
	for i := range entries {
		if entries[i].Serial == serial {
			return &entries[i]
		}
	}
	return nil
}

// FindProductBySerial fetches the catalog fresh and resolves the serial
// against it. It returns (nil, nil) when no product matches.
func FindProductBySerial(ctx context.Context, api CatalogAPI, serial string) (*models.ProductEntry, error) {
	entries, err := api.FetchProducts(ctx)
	if err != nil {
		return nil, err
	}
	return ResolveSerial(entries, serial), nil
}
