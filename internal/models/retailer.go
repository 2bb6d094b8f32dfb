package models

import (
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
)

// Retailer is one of the supported e-commerce sites.
type Retailer uint8

const (
	RetailerFlipkart Retailer = iota
	RetailerReliance

	retailerCount
)

// Retailers lists every retailer in classification order.
var Retailers = [retailerCount]Retailer{RetailerFlipkart, RetailerReliance}

var retailerNames = [retailerCount]string{
	RetailerFlipkart: "flipkart",
	RetailerReliance: "reliance",
}

func (r Retailer) String() string {
	if !r.Valid() {
		return fmt.Sprintf("Retailer(%d)", uint8(r))
	}
	return retailerNames[r]
}

func (r Retailer) Valid() bool {
	return r < retailerCount
}

// ParseRetailer maps a persisted or user supplied name to a Retailer.
func ParseRetailer(name string) (Retailer, error) {
	for i, n := range retailerNames {
		if n == name {
			return Retailer(i), nil
		}
	}
	return 0, fmt.Errorf("unknown retailer %q", name)
}

func (r Retailer) MarshalText() ([]byte, error) {
	if !r.Valid() {
		return nil, fmt.Errorf("invalid retailer %d", uint8(r))
	}
	return []byte(r.String()), nil
}

func (r *Retailer) UnmarshalText(text []byte) error {
	parsed, err := ParseRetailer(string(text))
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}

func (r Retailer) MarshalBSONValue() (bsontype.Type, []byte, error) {
	if !r.Valid() {
		return 0, nil, fmt.Errorf("invalid retailer %d", uint8(r))
	}
	return bson.MarshalValue(r.String())
}

func (r *Retailer) UnmarshalBSONValue(t bsontype.Type, data []byte) error {
	raw := bson.RawValue{Type: t, Value: data}
	name, ok := raw.StringValueOK()
	if !ok {
		return fmt.Errorf("retailer: expected string, got %s", t)
	}
	parsed, err := ParseRetailer(name)
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}
