package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/plantnet/plantnet-api/internal/core/domain"
)

const collectionPlants = "plants"

type PlantRepository struct {
	col *mongo.Collection
}

func NewPlantRepository(db *mongo.Database) *PlantRepository {
	return &PlantRepository{col: db.Collection(collectionPlants)}
}

type mongoSeller struct {
	Name  string `bson:"name,omitempty"`
	Email string `bson:"email,omitempty"`
	Image string `bson:"image,omitempty"`
}

type mongoPlant struct {
	ID          primitive.ObjectID   `bson:"_id,omitempty"`
	Name        string               `bson:"name"`
	Image       string               `bson:"image"`
	Category    string               `bson:"category,omitempty"`
	Description string               `bson:"description,omitempty"`
	Price       primitive.Decimal128 `bson:"price"`
	Quantity    int                  `bson:"quantity"`
	Seller      *mongoSeller         `bson:"seller,omitempty"`
	CreatedAt   time.Time            `bson:"created_at"`
}

func toMongoPlant(p *domain.Plant) (mongoPlant, error) {
	price, err := primitive.ParseDecimal128(p.Price.String())
	if err != nil {
		return mongoPlant{}, fmt.Errorf("%w: price %s", domain.ErrInvalidRequest, p.Price)
	}
	doc := mongoPlant{
		Name:        p.Name,
		Image:       p.Image,
		Category:    p.Category,
		Description: p.Description,
		Price:       price,
		Quantity:    p.Quantity,
		CreatedAt:   p.CreatedAt,
	}
	if p.Seller != nil {
		doc.Seller = &mongoSeller{Name: p.Seller.Name, Email: p.Seller.Email, Image: p.Seller.Image}
	}
	return doc, nil
}

func (m mongoPlant) toDomain() (*domain.Plant, error) {
	price, err := decimal.NewFromString(m.Price.String())
	if err != nil {
		return nil, fmt.Errorf("decode price of plant %s: %w", m.ID.Hex(), err)
	}
	p := &domain.Plant{
		ID:          m.ID.Hex(),
		Name:        m.Name,
		Image:       m.Image,
		Category:    m.Category,
		Description: m.Description,
		Price:       price,
		Quantity:    m.Quantity,
		CreatedAt:   m.CreatedAt,
	}
	if m.Seller != nil {
		p.Seller = &domain.Seller{Name: m.Seller.Name, Email: m.Seller.Email, Image: m.Seller.Image}
	}
	return p, nil
}

// Create inserts a new plant document and returns its id.
func (r *PlantRepository) Create(ctx context.Context, p *domain.Plant) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc, err := toMongoPlant(p)
	if err != nil {
		return "", err
	}
	res, err := r.col.InsertOne(ctx, doc)
	if err != nil {
		return "", fmt.Errorf("insert plant: %w", err)
	}
	return insertedHex(res.InsertedID), nil
}

// FindByID retrieves a plant. A malformed id is reported as an invalid request.
func (r *PlantRepository) FindByID(ctx context.Context, id string) (*domain.Plant, error) {
	oid, err := parseObjectID(id, "plant")
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc mongoPlant
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrPlantNotFound
		}
		return nil, fmt.Errorf("find plant: %w", err)
	}
	return doc.toDomain()
}

// List returns every plant, newest first.
func (r *PlantRepository) List(ctx context.Context) ([]*domain.Plant, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := r.col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("list plants: %w", err)
	}
	defer cur.Close(ctx)

	var docs []mongoPlant
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode plants: %w", err)
	}

	plants := make([]*domain.Plant, 0, len(docs))
	for _, d := range docs {
		p, err := d.toDomain()
		if err != nil {
			return nil, err
		}
		plants = append(plants, p)
	}
	return plants, nil
}

// DecrementStock removes qty units in one conditional update. The filter only
// matches while at least qty units remain, so concurrent callers can never
// drive the counter below zero.
func (r *PlantRepository) DecrementStock(ctx context.Context, id string, qty int) error {
	oid, err := parseObjectID(id, "plant")
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{"_id": oid, "quantity": bson.M{"$gte": qty}}
	update := bson.M{"$inc": bson.M{"quantity": -qty}}
	res, err := r.col.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("decrement stock: %w", err)
	}
	if res.MatchedCount == 0 {
		// Either the stock ran out or the plant is gone.
		n, err := r.col.CountDocuments(ctx, bson.M{"_id": oid}, options.Count().SetLimit(1))
		if err != nil {
			return fmt.Errorf("decrement stock: %w", err)
		}
		if n == 0 {
			return domain.ErrPlantNotFound
		}
		return domain.ErrInsufficientStock
	}
	return nil
}

// RestoreStock hands qty units back.
func (r *PlantRepository) RestoreStock(ctx context.Context, id string, qty int) error {
	oid, err := parseObjectID(id, "plant")
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$inc": bson.M{"quantity": qty}})
	if err != nil {
		return fmt.Errorf("restore stock: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrPlantNotFound
	}
	return nil
}

// EnsureIndexes creates necessary indexes on the plants collection.
func (r *PlantRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "seller.email", Value: 1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}

func parseObjectID(id, kind string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("%w: malformed %s id", domain.ErrInvalidRequest, kind)
	}
	return oid, nil
}

func insertedHex(id interface{}) string {
	if oid, ok := id.(primitive.ObjectID); ok {
		return oid.Hex()
	}
	return fmt.Sprint(id)
}
