package repository

import (
	"context"
	"errors"

	"github.com/guttosm/fba-quote-service/internal/domain/model"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// QuotationRepository stores the confirmed quotation ledger.
type QuotationRepository struct {
	client     *mongo.Client
	collection *mongo.Collection
}

// NewQuotationRepository creates a new quotation repository.
func NewQuotationRepository(db *MongoDB) *QuotationRepository {
	return &QuotationRepository{client: db.Client, collection: db.Quotations}
}

// Replace deletes every row of a quote and inserts rows in its place.
// On a replica set both steps run in one transaction; standalone servers
// fall back to delete then insert.
func (r *QuotationRepository) Replace(ctx context.Context, quoteID string, rows []*model.Quotation) error {
	replace := func(ctx context.Context) error {
		if _, err := r.collection.DeleteMany(ctx, bson.M{"quote_id": quoteID}); err != nil {
			return err
		}
		if len(rows) == 0 {
			return nil
		}
		docs := make([]interface{}, len(rows))
		for i, row := range rows {
			row.QuoteID = quoteID
			docs[i] = row
		}
		_, err := r.collection.InsertMany(ctx, docs)
		return err
	}

	session, err := r.client.StartSession()
	if err != nil {
		return replace(ctx)
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		return nil, replace(sc)
	})
	if isTransactionUnsupported(err) {
		return replace(ctx)
	}
	return err
}

// FindByQuoteID returns the ledger rows of a quote ordered by destination.
func (r *QuotationRepository) FindByQuoteID(ctx context.Context, quoteID string) ([]model.Quotation, error) {
	opts := options.Find().SetSort(bson.D{{Key: "destination", Value: 1}, {Key: "console_type", Value: 1}})
	cursor, err := r.collection.Find(ctx, bson.M{"quote_id": quoteID}, opts)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = cursor.Close(ctx)
	}()

	rows := []model.Quotation{}
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

// isTransactionUnsupported reports the error returned by standalone servers.
func isTransactionUnsupported(err error) bool {
	var cmdErr mongo.CommandError
	if !errors.As(err, &cmdErr) {
		return false
	}
	// IllegalOperation: "Transaction numbers are only allowed on a replica set member or mongos"
	return cmdErr.Code == 20
}
