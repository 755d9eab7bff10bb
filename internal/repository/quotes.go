package repository

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/guttosm/fba-quote-service/internal/domain/model"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// quoteDocument maps the fields of a platform quote read by the engine.
// Numeric cargo fields arrive as numbers or strings depending on the client
// that saved the quote, so cargo rows are decoded loosely.
type quoteDocument struct {
	ID      interface{} `bson:"_id"`
	Summary struct {
		EntityID      interface{} `bson:"entityId"`
		ShipmentScope string      `bson:"shipmentScope"`
	} `bson:"quoteSummary"`
	Data struct {
		Origin             string                `bson:"origin"`
		MultiDest          []destinationDocument `bson:"multidest"`
		CargoReadinessDate string                `bson:"cargoReadinessDate"`
		FBA                string                `bson:"fba"`
		FBAOCC             string                `bson:"fbaOCC"`
		FBADCC             string                `bson:"fbaDCC"`
	} `bson:"quoteData"`
}

type destinationDocument struct {
	Destination  string   `bson:"destination"`
	CargoDetails []bson.M `bson:"cargoDetails"`
}

var quoteProjection = bson.M{
	"quoteSummary.entityId":        1,
	"quoteSummary.shipmentScope":   1,
	"quoteData.origin":             1,
	"quoteData.multidest":          1,
	"quoteData.cargoReadinessDate": 1,
	"quoteData.fba":                1,
	"quoteData.fbaOCC":             1,
	"quoteData.fbaDCC":             1,
}

// QuoteRepository reads quote metadata from the platform collections.
type QuoteRepository struct {
	quotes   *mongo.Collection
	entities *mongo.Collection
}

// NewQuoteRepository creates a new quote repository.
func NewQuoteRepository(db *MongoDB) *QuoteRepository {
	return &QuoteRepository{quotes: db.Quotes, entities: db.Entities}
}

// FindByID returns the quote stored under quoteID. Ids are tried as plain
// strings first and then as object ids.
func (r *QuoteRepository) FindByID(ctx context.Context, quoteID string) (*model.Quote, error) {
	quoteID = strings.TrimSpace(quoteID)
	if quoteID == "" {
		return nil, ErrInvalidQuoteID
	}

	var doc quoteDocument
	opts := options.FindOne().SetProjection(quoteProjection)
	err := r.quotes.FindOne(ctx, bson.M{"_id": quoteID}, opts).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		oid, hexErr := primitive.ObjectIDFromHex(quoteID)
		if hexErr != nil {
			return nil, ErrQuoteNotFound
		}
		err = r.quotes.FindOne(ctx, bson.M{"_id": oid}, opts).Decode(&doc)
	}
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrQuoteNotFound
	}
	if err != nil {
		return nil, err
	}

	quote := doc.toModel(quoteID)
	if doc.Summary.EntityID != nil && doc.Summary.EntityID != "" {
		quote.EntityID = idString(doc.Summary.EntityID)
		quote.EntityName = r.entityName(ctx, doc.Summary.EntityID)
	}
	return quote, nil
}

// entityName is best effort: a missing customer never blocks rating.
func (r *QuoteRepository) entityName(ctx context.Context, entityID interface{}) string {
	var entity struct {
		Name string `bson:"entityName"`
	}
	opts := options.FindOne().SetProjection(bson.M{"entityName": 1})
	if err := r.entities.FindOne(ctx, bson.M{"_id": entityID}, opts).Decode(&entity); err != nil {
		return ""
	}
	return entity.Name
}

func (d *quoteDocument) toModel(quoteID string) *model.Quote {
	q := &model.Quote{
		ID:            quoteID,
		ShipmentScope: model.ShipmentScope(strings.TrimSpace(d.Summary.ShipmentScope)),
		Origin:        d.Data.Origin,
		FBA:           isYes(d.Data.FBA),
		OCC:           isYes(d.Data.FBAOCC),
		DCC:           isYes(d.Data.FBADCC),
		Destinations:  make([]model.ShipmentDestination, 0, len(d.Data.MultiDest)),
	}
	if day, err := time.Parse("2006-01-02", strings.TrimSpace(d.Data.CargoReadinessDate)); err == nil {
		q.CargoReadinessDate = day
	}
	for _, dest := range d.Data.MultiDest {
		sd := model.ShipmentDestination{Destination: dest.Destination}
		for _, row := range dest.CargoDetails {
			sd.Cargo = append(sd.Cargo, cargoFromDocument(row))
		}
		q.Destinations = append(q.Destinations, sd)
	}
	return q
}

func cargoFromDocument(row bson.M) model.CargoLineItem {
	pkg, _ := row["packageType"].(string)
	return model.CargoLineItem{
		PackageType:    model.ParsePackageType(pkg),
		Quantity:       int(toFloat(row["numPackages"])),
		WeightPerUnit:  toFloat(row["wtPerPackage"]),
		Length:         toFloat(row["length"]),
		Width:          toFloat(row["width"]),
		Height:         toFloat(row["height"]),
		TotalWeightKg:  toFloat(row["totalWeight"]),
		TotalVolumeCBM: toFloat(row["totalVolume"]),
	}
}

func isYes(s string) bool {
	return strings.EqualFold(strings.TrimSpace(s), "yes")
}

// toFloat converts the numeric encodings found in quote documents.
// Anything unparseable is 0.
func toFloat(v interface{}) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case int32:
		return float64(n)
	case int64:
		return float64(n)
	case int:
		return float64(n)
	case primitive.Decimal128:
		f, err := strconv.ParseFloat(n.String(), 64)
		if err != nil {
			return 0
		}
		return f
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return 0
		}
		return f
	default:
		return 0
	}
}

func idString(v interface{}) string {
	switch id := v.(type) {
	case primitive.ObjectID:
		return id.Hex()
	case string:
		return id
	default:
		return ""
	}
}
