package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/plantnet/plantnet-api/internal/core/domain"
)

const collectionOrders = "orders"

// reservedOrderFields are written by the repository and win over metadata
// keys of the same name.
var reservedOrderFields = map[string]struct{}{
	"_id": {}, "email": {}, "plantId": {}, "quantity": {}, "transactionId": {}, "created_at": {},
}

type OrderRepository struct {
	col *mongo.Collection
}

func NewOrderRepository(db *mongo.Database) *OrderRepository {
	return &OrderRepository{col: db.Collection(collectionOrders)}
}

// Create inserts an order. Client-supplied metadata is stored at the top level
// of the document next to the normalized fields.
func (r *OrderRepository) Create(ctx context.Context, o *domain.Order) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.InsertOne(ctx, orderDocument(o))
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return "", domain.ErrDuplicateTransaction
		}
		return "", fmt.Errorf("insert order: %w", err)
	}
	return insertedHex(res.InsertedID), nil
}

func orderDocument(o *domain.Order) bson.D {
	doc := bson.D{}
	for k, v := range o.Metadata {
		if _, reserved := reservedOrderFields[k]; reserved {
			continue
		}
		doc = append(doc, bson.E{Key: k, Value: v})
	}
	return append(doc,
		bson.E{Key: "email", Value: o.Email},
		bson.E{Key: "plantId", Value: o.PlantID},
		bson.E{Key: "quantity", Value: o.Quantity},
		bson.E{Key: "transactionId", Value: o.TransactionID},
		bson.E{Key: "created_at", Value: o.CreatedAt},
	)
}

// EnsureIndexes creates necessary indexes on the orders collection. The
// unique transaction index is the last line of defence against a payment
// being turned into two orders.
func (r *OrderRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "transactionId", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("uniq_transaction_id"),
		},
		{Keys: bson.D{{Key: "email", Value: 1}, {Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "plantId", Value: 1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
