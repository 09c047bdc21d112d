package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const transactionClaimTTL = 24 * time.Hour

// TransactionGuard makes sure a payment transaction id is turned into at most
// one order. Key format: txn:<transaction_id>
type TransactionGuard struct {
	client redis.Cmdable
	ttl    time.Duration
}

// NewTransactionGuard creates a TransactionGuard wrapping the given Redis client.
func NewTransactionGuard(client redis.Cmdable) *TransactionGuard {
	return &TransactionGuard{client: client, ttl: transactionClaimTTL}
}

// Claim reserves transactionID. It reports false when another order already
// holds the claim.
func (g *TransactionGuard) Claim(ctx context.Context, transactionID string) (bool, error) {
	ok, err := g.client.SetNX(ctx, g.key(transactionID), time.Now().UTC().Unix(), g.ttl).Result()
	if err != nil {
		return false, fmt.Errorf("claim transaction: %w", err)
	}
	return ok, nil
}

// Release drops the claim so the transaction can be retried.
func (g *TransactionGuard) Release(ctx context.Context, transactionID string) error {
	if err := g.client.Del(ctx, g.key(transactionID)).Err(); err != nil {
		return fmt.Errorf("release transaction: %w", err)
	}
	return nil
}

func (g *TransactionGuard) key(transactionID string) string {
	return "txn:" + transactionID
}
