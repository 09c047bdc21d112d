package ports

import (
	"context"
	"time"
)

// RevocationStore remembers logged-out session tokens until they expire.
type RevocationStore interface {
	Revoke(ctx context.Context, tokenID string, ttl time.Duration) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

// TransactionGuard makes sure a payment transaction reference backs at most one
// order. Claim reports false when the reference was already claimed.
type TransactionGuard interface {
	Claim(ctx context.Context, transactionID string) (bool, error)
	Release(ctx context.Context, transactionID string) error
}
