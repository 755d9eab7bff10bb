//go:build integration

package testutil

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// CargoRow is one cargoDetails entry as the quoting platform stores it.
// Platform clients save numbers as strings, so values are kept as-is.
type CargoRow struct {
	PackageType  string
	NumPackages  interface{}
	WtPerPackage interface{}
	Length       interface{}
	Width        interface{}
	Height       interface{}
	TotalWeight  interface{}
	TotalVolume  interface{}
}

// QuoteFixture describes a platform quote document.
type QuoteFixture struct {
	ID            interface{}
	EntityID      interface{}
	EntityName    string
	ShipmentScope string
	Origin        string
	ReadinessDate string
	FBA           string
	OCC           string
	DCC           string
	Destinations  map[string][]CargoRow
	// Order lists destination names in document order.
	Order []string
}

// InsertQuote writes f into the Quotes collection and, when an entity is
// set, its SHEntities row.
func InsertQuote(ctx context.Context, db *mongo.Database, f QuoteFixture) error {
	multidest := make(bson.A, 0, len(f.Order))
	for _, dest := range f.Order {
		rows := make(bson.A, 0, len(f.Destinations[dest]))
		for _, r := range f.Destinations[dest] {
			rows = append(rows, bson.M{
				"packageType":  r.PackageType,
				"numPackages":  r.NumPackages,
				"wtPerPackage": r.WtPerPackage,
				"length":       r.Length,
				"width":        r.Width,
				"height":       r.Height,
				"totalWeight":  r.TotalWeight,
				"totalVolume":  r.TotalVolume,
			})
		}
		multidest = append(multidest, bson.M{"destination": dest, "cargoDetails": rows})
	}

	doc := bson.M{
		"_id": f.ID,
		"quoteSummary": bson.M{
			"entityId":      f.EntityID,
			"shipmentScope": f.ShipmentScope,
		},
		"quoteData": bson.M{
			"origin":             f.Origin,
			"multidest":          multidest,
			"cargoReadinessDate": f.ReadinessDate,
			"fba":                f.FBA,
			"fbaOCC":             f.OCC,
			"fbaDCC":             f.DCC,
		},
	}
	if _, err := db.Collection("Quotes").InsertOne(ctx, doc); err != nil {
		return err
	}

	if f.EntityID == nil {
		return nil
	}
	_, err := db.Collection("SHEntities").InsertOne(ctx, bson.M{"_id": f.EntityID, "entityName": f.EntityName})
	return err
}
