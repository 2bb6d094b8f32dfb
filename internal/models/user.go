package models

import (
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/x/bsonx/bsoncore"
)

// Product is one watched product page. BaseURL and Retailer are always set
// together from a classification result.
type Product struct {
	ProductID int      `bson:"product_id" json:"product_id"`
	Retailer  Retailer `bson:"website" json:"website"`
	BaseURL   string   `bson:"base_url" json:"base_url"`
	Path      string   `bson:"product_url" json:"product_url"`
}

// UnmarshalBSON rejects documents without a website. The zero Retailer is a
// real retailer, so a missing field must not decode silently.
func (p *Product) UnmarshalBSON(data []byte) error {
	if _, err := bson.Raw(data).LookupErr("website"); err != nil {
		if errors.Is(err, bsoncore.ErrElementNotFound) {
			return fmt.Errorf("product: %w", ErrMissingRetailer)
		}
		return fmt.Errorf("product: %w", err)
	}
	type product Product
	return bson.Unmarshal(data, (*product)(p))
}

// URL returns the fetchable product page address.
func (p Product) URL() string {
	return p.BaseURL + p.Path
}

// User owns a watchlist. ID is the opaque identifier handed over by the transport.
type User struct {
	ID       string    `bson:"_id" json:"id"`
	Name     string    `bson:"name" json:"name"`
	Products []Product `bson:"products" json:"products"`
}

// ProductIDs returns the set of identifiers currently assigned to the user.
func (u *User) ProductIDs() map[int]struct{} {
	ids := make(map[int]struct{}, len(u.Products))
	for _, p := range u.Products {
		ids[p.ProductID] = struct{}{}
	}
	return ids
}
