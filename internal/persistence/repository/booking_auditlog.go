package repository

import (
	"context"
	"time"

	"github.com/hirebuddy/hirebuddy/internal/domain"
	"github.com/hirebuddy/hirebuddy/internal/persistence/db"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type bookingAuditLogRepository struct {
	db *mongo.Database
}

func NewBookingAuditRepository(database *mongo.Database) domain.BookingAuditRepository {
	return &bookingAuditLogRepository{db: database}
}

func (r *bookingAuditLogRepository) collection() *mongo.Collection {
	return r.db.Collection(db.BookingAuditLogsCollection)
}

func (r *bookingAuditLogRepository) Log(ctx context.Context, log *domain.BookingAuditLog) error {
	_, err := r.collection().InsertOne(ctx, log)
	return err
}

func (r *bookingAuditLogRepository) GetByBookingID(ctx context.Context, bookingID string, limit int) ([]domain.BookingAuditLog, error) {
	filter := bson.M{"booking_id": bookingID}
	opts := options.Find().
		SetSort(bson.D{{Key: "timestamp", Value: -1}}).
		SetLimit(int64(limit))

	return r.find(ctx, filter, opts)
}

func (r *bookingAuditLogRepository) GetByEventType(ctx context.Context, eventType domain.BookingEventType, from, to time.Time) ([]domain.BookingAuditLog, error) {
	filter := bson.M{
		"event_type": eventType,
		"timestamp": bson.M{
			"$gte": from,
			"$lte": to,
		},
	}
	opts := options.Find().SetSort(bson.D{{Key: "timestamp", Value: -1}})

	return r.find(ctx, filter, opts)
}

func (r *bookingAuditLogRepository) find(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]domain.BookingAuditLog, error) {
	cursor, err := r.collection().Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var logs []domain.BookingAuditLog
	if err := cursor.All(ctx, &logs); err != nil {
		return nil, err
	}
	return logs, nil
}

func (r *bookingAuditLogRepository) DeleteOlderThan(ctx context.Context, before time.Time) error {
	filter := bson.M{
		"timestamp": bson.M{
			"$lt": before,
		},
	}

	_, err := r.collection().DeleteMany(ctx, filter)
	return err
}

func (r *bookingAuditLogRepository) EnsureIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "booking_id", Value: 1},
				{Key: "timestamp", Value: -1},
			},
		},
		{
			Keys: bson.D{
				{Key: "event_type", Value: 1},
				{Key: "timestamp", Value: -1},
			},
		},
		{
			Keys:    bson.D{{Key: "timestamp", Value: 1}},
			Options: options.Index().SetExpireAfterSeconds(7776000), // 90 days TTL
		},
	}

	_, err := r.collection().Indexes().CreateMany(ctx, indexes)
	return err
}
