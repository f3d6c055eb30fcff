package repository

import (
	"context"
	"errors"

	"github.com/hirebuddy/hirebuddy/internal/domain"
	"github.com/hirebuddy/hirebuddy/internal/persistence/db"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type bookingRepository struct {
	db *mongo.Database
}

func NewBookingRepository(database *mongo.Database) domain.BookingRepository {
	return &bookingRepository{db: database}
}

func (r *bookingRepository) collection() *mongo.Collection {
	return r.db.Collection(db.BookingsCollection)
}

func (r *bookingRepository) Create(ctx context.Context, booking *domain.Booking) error {
	_, err := r.collection().InsertOne(ctx, booking)
	return err
}

func (r *bookingRepository) GetByID(ctx context.Context, id string) (*domain.Booking, error) {
	var booking domain.Booking
	err := r.collection().FindOne(ctx, bson.M{"_id": id}).Decode(&booking)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, domain.ErrBookingNotFound
	}
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

func (r *bookingRepository) ListByCustomer(ctx context.Context, customerID string) ([]domain.Booking, error) {
	return r.find(ctx, bson.M{"customer_id": customerID})
}

func (r *bookingRepository) ListByBuddy(ctx context.Context, buddyID string) ([]domain.Booking, error) {
	return r.find(ctx, bson.M{"buddy_id": buddyID})
}

func (r *bookingRepository) List(ctx context.Context) ([]domain.Booking, error) {
	return r.find(ctx, bson.M{})
}

func (r *bookingRepository) find(ctx context.Context, query bson.M) ([]domain.Booking, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})

	cursor, err := r.collection().Find(ctx, query, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var bookings []domain.Booking
	if err := cursor.All(ctx, &bookings); err != nil {
		return nil, err
	}
	return bookings, nil
}

// UpdateStatus moves a Pending booking to the given status. The filter pins
// the current status so a concurrent confirm/decline cannot double-apply.
func (r *bookingRepository) UpdateStatus(ctx context.Context, id string, status domain.BookingStatus) (*domain.Booking, error) {
	if status != domain.BookingConfirmed && status != domain.BookingDeclined {
		return nil, domain.ErrInvalidTransition
	}

	filter := bson.M{"_id": id, "status": domain.BookingPending}
	update := bson.M{"$set": bson.M{"status": status}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var booking domain.Booking
	err := r.collection().FindOneAndUpdate(ctx, filter, update, opts).Decode(&booking)
	if errors.Is(err, mongo.ErrNoDocuments) {
		// Either the booking doesn't exist or it already left Pending.
		if _, lookupErr := r.GetByID(ctx, id); lookupErr != nil {
			return nil, lookupErr
		}
		return nil, domain.ErrInvalidTransition
	}
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

func (r *bookingRepository) Count(ctx context.Context) (int64, error) {
	return r.collection().CountDocuments(ctx, bson.M{})
}

func (r *bookingRepository) EnsureIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "customer_id", Value: 1},
				{Key: "created_at", Value: -1},
			},
		},
		{
			Keys: bson.D{
				{Key: "buddy_id", Value: 1},
				{Key: "created_at", Value: -1},
			},
		},
	}

	_, err := r.collection().Indexes().CreateMany(ctx, indexes)
	return err
}
