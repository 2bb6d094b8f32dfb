package mongodb

import (
	"context"
	"errors"
	"fmt"

	"github.com/nguyentranbao-ct/price-bot/internal/models"
	"github.com/nguyentranbao-ct/price-bot/internal/repository"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var _ repository.WatchlistRepository = (*watchlistRepo)(nil)

type watchlistRepo struct {
	collection *mongo.Collection
}

func NewWatchlistRepository(db *DB, collection string) repository.WatchlistRepository {
	return &watchlistRepo{
		collection: db.Database.Collection(collection),
	}
}

func (r *watchlistRepo) GetUser(ctx context.Context, userID string) (*models.User, error) {
	var user models.User
	err := r.collection.FindOne(ctx, bson.M{"_id": userID}).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &user, nil
}

// UpsertProduct only matches the user document when it does not already hold the id.
// If the document exists with that id, the upsert falls back to an insert that
// collides on _id, which is reported as ErrProductIDTaken.
func (r *watchlistRepo) UpsertProduct(ctx context.Context, userID, displayName string, product models.Product) error {
	filter := bson.M{
		"_id":                 userID,
		"products.product_id": bson.M{"$ne": product.ProductID},
	}
	update := bson.M{
		"$setOnInsert": bson.M{
			"name": displayName,
		},
		"$push": bson.M{
			"products": product,
		},
	}

	_, err := r.collection.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return models.ErrProductIDTaken
		}
		return fmt.Errorf("failed to upsert product: %w", err)
	}
	return nil
}

func (r *watchlistRepo) RemoveProduct(ctx context.Context, userID string, productID int) (int64, error) {
	filter := bson.M{"_id": userID}
	update := bson.M{
		"$pull": bson.M{
			"products": bson.M{"product_id": productID},
		},
	}

	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return 0, fmt.Errorf("failed to remove product: %w", err)
	}
	return result.ModifiedCount, nil
}

func (r *watchlistRepo) ListProducts(ctx context.Context, userID string, retailer *models.Retailer) ([]models.Product, error) {
	cursor, err := r.collection.Aggregate(ctx, listPipeline(userID, retailer))
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	defer cursor.Close(ctx)

	products := make([]models.Product, 0)
	for cursor.Next(ctx) {
		var product models.Product
		if err := cursor.Decode(&product); err != nil {
			return nil, fmt.Errorf("failed to decode product: %w", err)
		}
		products = append(products, product)
	}

	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor error: %w", err)
	}

	return products, nil
}

// listPipeline unwinds the products array so each product comes back as its own
// document, in array order.
func listPipeline(userID string, retailer *models.Retailer) mongo.Pipeline {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"_id": userID}}},
		{{Key: "$unwind", Value: "$products"}},
	}
	if retailer != nil {
		pipeline = append(pipeline, bson.D{{Key: "$match", Value: bson.M{"products.website": retailer.String()}}})
	}
	return append(pipeline, bson.D{{Key: "$replaceRoot", Value: bson.M{"newRoot": "$products"}}})
}
