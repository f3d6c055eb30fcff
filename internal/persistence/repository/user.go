package repository

import (
	"context"
	"errors"
	"regexp"

	"github.com/hirebuddy/hirebuddy/internal/domain"
	"github.com/hirebuddy/hirebuddy/internal/persistence/db"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type userRepository struct {
	db *mongo.Database
}

func NewUserRepository(database *mongo.Database) domain.UserRepository {
	return &userRepository{db: database}
}

func (r *userRepository) collection() *mongo.Collection {
	return r.db.Collection(db.UsersCollection)
}

func (r *userRepository) Create(ctx context.Context, user *domain.User) error {
	_, err := r.collection().InsertOne(ctx, user)
	if mongo.IsDuplicateKeyError(err) {
		return domain.ErrUserAlreadyExists
	}
	return err
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *userRepository) GetByPhone(ctx context.Context, phone string) (*domain.User, error) {
	return r.findOne(ctx, bson.M{"phone": phone})
}

func (r *userRepository) findOne(ctx context.Context, filter bson.M) (*domain.User, error) {
	var user domain.User
	err := r.collection().FindOne(ctx, filter).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, domain.ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// ListBuddies applies the buddy matching filters: location is a
// case-insensitive substring match, expertise and date match any entry of the
// profile arrays.
func (r *userRepository) ListBuddies(ctx context.Context, filter domain.BuddyFilter) ([]domain.User, error) {
	query := bson.M{"role": domain.RoleBuddy}

	if filter.Location != "" {
		query["buddy_profile.location"] = primitive.Regex{
			Pattern: regexp.QuoteMeta(filter.Location),
			Options: "i",
		}
	}
	if len(filter.Expertise) > 0 {
		query["buddy_profile.expertise"] = bson.M{"$in": filter.Expertise}
	}
	if filter.Date != "" {
		query["buddy_profile.available_dates"] = bson.M{"$in": []string{filter.Date}}
	}

	return r.find(ctx, query)
}

func (r *userRepository) List(ctx context.Context) ([]domain.User, error) {
	return r.find(ctx, bson.M{})
}

func (r *userRepository) find(ctx context.Context, query bson.M) ([]domain.User, error) {
	cursor, err := r.collection().Find(ctx, query)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var users []domain.User
	if err := cursor.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (r *userRepository) UpdateBuddyProfile(ctx context.Context, userID string, profile *domain.BuddyProfile) (*domain.User, error) {
	return r.findOneAndUpdate(ctx, userID, bson.M{"$set": bson.M{"buddy_profile": profile}})
}

func (r *userRepository) UpdateAvailability(ctx context.Context, userID string, dates []string) (*domain.User, error) {
	return r.findOneAndUpdate(ctx, userID, bson.M{"$set": bson.M{"buddy_profile.available_dates": dates}})
}

// AddCredits applies an atomic credit delta. A negative delta that would take
// the balance below zero fails with ErrInsufficientCredits.
func (r *userRepository) AddCredits(ctx context.Context, userID string, delta int) (*domain.User, error) {
	filter := bson.M{"_id": userID}
	if delta < 0 {
		filter["credits"] = bson.M{"$gte": -delta}
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var user domain.User
	err := r.collection().
		FindOneAndUpdate(ctx, filter, bson.M{"$inc": bson.M{"credits": delta}}, opts).
		Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		if delta < 0 {
			// Distinguish an unknown user from an empty balance.
			if _, lookupErr := r.GetByID(ctx, userID); lookupErr != nil {
				return nil, lookupErr
			}
			return nil, domain.ErrInsufficientCredits
		}
		return nil, domain.ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) findOneAndUpdate(ctx context.Context, userID string, update bson.M) (*domain.User, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var user domain.User
	err := r.collection().FindOneAndUpdate(ctx, bson.M{"_id": userID}, update, opts).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, domain.ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) Delete(ctx context.Context, id string) (*domain.User, error) {
	var user domain.User
	err := r.collection().FindOneAndDelete(ctx, bson.M{"_id": id}).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, domain.ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) Count(ctx context.Context, role domain.Role) (int64, error) {
	query := bson.M{}
	if role != "" {
		query["role"] = role
	}
	return r.collection().CountDocuments(ctx, query)
}

func (r *userRepository) EnsureIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "phone", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "role", Value: 1}},
		},
	}

	_, err := r.collection().Indexes().CreateMany(ctx, indexes)
	return err
}
