package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/plantnet/plantnet-api/internal/core/domain"
)

const collectionUsers = "users"

type UserRepository struct {
	col *mongo.Collection
}

func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{col: db.Collection(collectionUsers)}
}

type mongoUser struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Email       string             `bson:"email"`
	Name        string             `bson:"name"`
	Image       string             `bson:"image"`
	Role        string             `bson:"role"`
	Status      string             `bson:"status,omitempty"`
	CreatedAt   time.Time          `bson:"created_at"`
	LastLoginAt time.Time          `bson:"last_login_at"`
}

func (mu mongoUser) toDomain() *domain.User {
	return &domain.User{
		ID:          mu.ID.Hex(),
		Email:       mu.Email,
		Name:        mu.Name,
		Image:       mu.Image,
		Role:        domain.Role(mu.Role),
		Status:      domain.UserStatus(mu.Status),
		CreatedAt:   mu.CreatedAt,
		LastLoginAt: mu.LastLoginAt,
	}
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := mongoUser{
		Email:       user.Email,
		Name:        user.Name,
		Image:       user.Image,
		Role:        string(user.Role),
		Status:      string(user.Status),
		CreatedAt:   user.CreatedAt,
		LastLoginAt: user.LastLoginAt,
	}

	res, err := r.col.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return "", domain.ErrUserExists
		}
		return "", fmt.Errorf("insert user: %w", err)
	}
	return insertedHex(res.InsertedID), nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var mu mongoUser
	if err := r.col.FindOne(ctx, bson.M{"email": email}).Decode(&mu); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return mu.toDomain(), nil
}

// List returns every user except excludeEmail.
func (r *UserRepository) List(ctx context.Context, excludeEmail string) ([]*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{"email": bson.M{"$ne": excludeEmail}}
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})
	cur, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer cur.Close(ctx)

	var docs []mongoUser
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode users: %w", err)
	}

	users := make([]*domain.User, 0, len(docs))
	for _, d := range docs {
		users = append(users, d.toDomain())
	}
	return users, nil
}

func (r *UserRepository) UpdateLastLogin(ctx context.Context, email string, at time.Time) (bool, error) {
	return r.update(ctx, bson.M{"email": email}, bson.M{"last_login_at": at})
}

// UpdateRole sets role and status on the user with the given id.
func (r *UserRepository) UpdateRole(ctx context.Context, id string, role domain.Role, status domain.UserStatus) (bool, error) {
	oid, err := parseObjectID(id, "user")
	if err != nil {
		return false, err
	}
	return r.update(ctx, bson.M{"_id": oid}, bson.M{"role": string(role), "status": string(status)})
}

func (r *UserRepository) UpdateStatus(ctx context.Context, email string, status domain.UserStatus) (bool, error) {
	return r.update(ctx, bson.M{"email": email}, bson.M{"status": string(status)})
}

// update applies $set and reports whether the document changed. A filter that
// matches nothing is ErrUserNotFound.
func (r *UserRepository) update(ctx context.Context, filter, set bson.M) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.UpdateOne(ctx, filter, bson.M{"$set": set})
	if err != nil {
		return false, fmt.Errorf("update user: %w", err)
	}
	if res.MatchedCount == 0 {
		return false, domain.ErrUserNotFound
	}
	return res.ModifiedCount > 0, nil
}

// EnsureIndexes creates necessary indexes on the users collection.
func (r *UserRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("uniq_email"),
		},
		{Keys: bson.D{{Key: "status", Value: 1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
