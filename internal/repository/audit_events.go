package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/guttosm/fba-quote-service/internal/domain/model"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// AuditEventsRepository stores audit events in a single collection keyed
// by stream.
type AuditEventsRepository struct {
	collection *mongo.Collection
}

// NewAuditEventsRepository creates a new audit events repository.
func NewAuditEventsRepository(db *MongoDB) *AuditEventsRepository {
	return &AuditEventsRepository{collection: db.AuditEvents}
}

// Create inserts one event, filling in id, event id and timestamp.
func (r *AuditEventsRepository) Create(ctx context.Context, event *model.AuditEvent) error {
	if event.ID.IsZero() {
		event.ID = primitive.NewObjectID()
	}
	if event.EventID == "" {
		event.EventID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now().UTC()
	}
	_, err := r.collection.InsertOne(ctx, event)
	return err
}

// Query returns events matching opts, newest first.
func (r *AuditEventsRepository) Query(ctx context.Context, opts model.AuditQueryOptions) ([]*model.AuditEvent, error) {
	findOptions := options.Find().SetSort(bson.M{"timestamp": -1})
	if opts.Limit > 0 {
		findOptions.SetLimit(int64(opts.Limit))
	}
	if opts.Skip > 0 {
		findOptions.SetSkip(int64(opts.Skip))
	}

	cursor, err := r.collection.Find(ctx, auditFilter(opts), findOptions)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = cursor.Close(ctx)
	}()

	var events []*model.AuditEvent
	if err := cursor.All(ctx, &events); err != nil {
		return nil, err
	}
	return events, nil
}

// Count returns the number of events matching opts.
func (r *AuditEventsRepository) Count(ctx context.Context, opts model.AuditQueryOptions) (int64, error) {
	return r.collection.CountDocuments(ctx, auditFilter(opts))
}

func auditFilter(opts model.AuditQueryOptions) bson.M {
	filter := bson.M{}
	if opts.Stream != "" {
		filter["stream"] = opts.Stream
	}
	if opts.RequestID != "" {
		filter["request_id"] = opts.RequestID
	}
	if opts.Status != "" {
		filter["status"] = opts.Status
	}
	if opts.StartTime != nil || opts.EndTime != nil {
		timeFilter := bson.M{}
		if opts.StartTime != nil {
			timeFilter["$gte"] = *opts.StartTime
		}
		if opts.EndTime != nil {
			timeFilter["$lte"] = *opts.EndTime
		}
		filter["timestamp"] = timeFilter
	}
	return filter
}
