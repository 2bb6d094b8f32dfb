package repository

import (
	"context"

	"github.com/nguyentranbao-ct/price-bot/internal/models"
)

// WatchlistRepository persists one document per user holding the user's products.
type WatchlistRepository interface {
	// GetUser returns models.ErrNotFound when the user never added a product.
	GetUser(ctx context.Context, userID string) (*models.User, error)
	// UpsertProduct creates the user on first use and appends product atomically.
	// It returns models.ErrProductIDTaken if the user already holds product.ProductID.
	UpsertProduct(ctx context.Context, userID, displayName string, product models.Product) error
	// RemoveProduct returns how many products were removed, 0 or 1.
	RemoveProduct(ctx context.Context, userID string, productID int) (int64, error)
	// ListProducts returns the user's products in list order, optionally for one retailer.
	ListProducts(ctx context.Context, userID string, retailer *models.Retailer) ([]models.Product, error)
}
