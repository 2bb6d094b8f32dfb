// Package memory keeps watchlists in process memory. It backs tests and the
// check command, where no MongoDB is available.
package memory

import (
	"context"
	"slices"
	"sync"

	"github.com/nguyentranbao-ct/price-bot/internal/models"
	"github.com/nguyentranbao-ct/price-bot/internal/repository"
)

var _ repository.WatchlistRepository = (*WatchlistRepository)(nil)

type WatchlistRepository struct {
	mu    sync.RWMutex
	users map[string]*models.User
}

func NewWatchlistRepository() *WatchlistRepository {
	return &WatchlistRepository{
		users: make(map[string]*models.User),
	}
}

func (r *WatchlistRepository) GetUser(_ context.Context, userID string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.users[userID]
	if !ok {
		return nil, models.ErrNotFound
	}
	return &models.User{
		ID:       u.ID,
		Name:     u.Name,
		Products: slices.Clone(u.Products),
	}, nil
}

func (r *WatchlistRepository) UpsertProduct(_ context.Context, userID, displayName string, product models.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.users[userID]
	if !ok {
		r.users[userID] = &models.User{
			ID:       userID,
			Name:     displayName,
			Products: []models.Product{product},
		}
		return nil
	}
	for _, p := range u.Products {
		if p.ProductID == product.ProductID {
			return models.ErrProductIDTaken
		}
	}
	u.Products = append(u.Products, product)
	return nil
}

func (r *WatchlistRepository) RemoveProduct(_ context.Context, userID string, productID int) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.users[userID]
	if !ok {
		return 0, nil
	}
	i := slices.IndexFunc(u.Products, func(p models.Product) bool {
		return p.ProductID == productID
	})
	if i < 0 {
		return 0, nil
	}
	u.Products = slices.Delete(u.Products, i, i+1)
	return 1, nil
}

func (r *WatchlistRepository) ListProducts(_ context.Context, userID string, retailer *models.Retailer) ([]models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	products := make([]models.Product, 0)
	u, ok := r.users[userID]
	if !ok {
		return products, nil
	}
	for _, p := range u.Products {
		if retailer == nil || p.Retailer == *retailer {
			products = append(products, p)
		}
	}
	return products, nil
}
