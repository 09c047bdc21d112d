package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/plantnet/plantnet-api/internal/core/domain"
	"github.com/plantnet/plantnet-api/internal/core/ports"
)

var discardLogger = zerolog.Nop()

// ---------------------------------------------------------------------------
// Plants
// ---------------------------------------------------------------------------

// stubPlantRepo mirrors the Mongo repository, including the conditional
// decrement, behind a mutex so concurrent tests see atomic updates.
type stubPlantRepo struct {
	mu           sync.Mutex
	byID         map[string]*domain.Plant
	nextID       int
	createErr    error
	findErr      error
	decrementErr error
	restoreErr   error
	restored     int
}

func newStubPlantRepo() *stubPlantRepo {
	return &stubPlantRepo{byID: make(map[string]*domain.Plant)}
}

func (r *stubPlantRepo) seed(id string, qty int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byID[id] = &domain.Plant{ID: id, Name: "Fern", Image: "http://x/1.jpg", Quantity: qty}
}

func (r *stubPlantRepo) quantity(id string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.byID[id].Quantity
}

func (r *stubPlantRepo) Create(_ context.Context, p *domain.Plant) (string, error) {
	if r.createErr != nil {
		return "", r.createErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	clone := *p
	clone.ID = fmt.Sprintf("plant-%d", r.nextID)
	r.byID[clone.ID] = &clone
	return clone.ID, nil
}

func (r *stubPlantRepo) FindByID(_ context.Context, id string) (*domain.Plant, error) {
	if r.findErr != nil {
		return nil, r.findErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrPlantNotFound
	}
	clone := *p
	return &clone, nil
}

func (r *stubPlantRepo) List(_ context.Context) ([]*domain.Plant, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*domain.Plant, 0, len(r.byID))
	for _, p := range r.byID {
		clone := *p
		out = append(out, &clone)
	}
	return out, nil
}

func (r *stubPlantRepo) DecrementStock(_ context.Context, id string, qty int) error {
	if r.decrementErr != nil {
		return r.decrementErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.byID[id]
	if !ok {
		return domain.ErrPlantNotFound
	}
	if p.Quantity < qty {
		return domain.ErrInsufficientStock
	}
	p.Quantity -= qty
	return nil
}

func (r *stubPlantRepo) RestoreStock(_ context.Context, id string, qty int) error {
	if r.restoreErr != nil {
		return r.restoreErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byID[id].Quantity += qty
	r.restored += qty
	return nil
}

// ---------------------------------------------------------------------------
// Orders
// ---------------------------------------------------------------------------

type stubOrderRepo struct {
	mu        sync.Mutex
	orders    []*domain.Order
	createErr error
}

func (r *stubOrderRepo) Create(_ context.Context, o *domain.Order) (string, error) {
	if r.createErr != nil {
		return "", r.createErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.orders {
		if existing.TransactionID == o.TransactionID {
			return "", domain.ErrDuplicateTransaction
		}
	}
	clone := *o
	clone.ID = fmt.Sprintf("order-%d", len(r.orders)+1)
	r.orders = append(r.orders, &clone)
	return clone.ID, nil
}

func (r *stubOrderRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.orders)
}

type stubGuard struct {
	mu       sync.Mutex
	claimed  map[string]bool
	claimErr error
	released []string
}

func newStubGuard() *stubGuard {
	return &stubGuard{claimed: make(map[string]bool)}
}

func (g *stubGuard) Claim(_ context.Context, id string) (bool, error) {
	if g.claimErr != nil {
		return false, g.claimErr
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.claimed[id] {
		return false, nil
	}
	g.claimed[id] = true
	return true, nil
}

func (g *stubGuard) Release(_ context.Context, id string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	delete(g.claimed, id)
	g.released = append(g.released, id)
	return nil
}

// ---------------------------------------------------------------------------
// Users
// ---------------------------------------------------------------------------

type stubUserRepo struct {
	byEmail   map[string]*domain.User
	createErr error
	creates   int
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{byEmail: make(map[string]*domain.User)}
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	u, ok := r.byEmail[email]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	clone := *u
	return &clone, nil
}

func (r *stubUserRepo) Create(_ context.Context, u *domain.User) (string, error) {
	r.creates++
	if r.createErr != nil {
		return "", r.createErr
	}
	if _, exists := r.byEmail[u.Email]; exists {
		return "", domain.ErrUserExists
	}
	clone := *u
	clone.ID = fmt.Sprintf("user-%d", len(r.byEmail)+1)
	r.byEmail[u.Email] = &clone
	return clone.ID, nil
}

func (r *stubUserRepo) List(_ context.Context, excludeEmail string) ([]*domain.User, error) {
	var out []*domain.User
	for email, u := range r.byEmail {
		if email == excludeEmail {
			continue
		}
		clone := *u
		out = append(out, &clone)
	}
	return out, nil
}

func (r *stubUserRepo) UpdateLastLogin(_ context.Context, email string, at time.Time) (bool, error) {
	u, ok := r.byEmail[email]
	if !ok {
		return false, domain.ErrUserNotFound
	}
	u.LastLoginAt = at
	return true, nil
}

func (r *stubUserRepo) UpdateRole(_ context.Context, id string, role domain.Role, status domain.UserStatus) (bool, error) {
	for _, u := range r.byEmail {
		if u.ID == id {
			u.Role = role
			u.Status = status
			return true, nil
		}
	}
	return false, domain.ErrUserNotFound
}

func (r *stubUserRepo) UpdateStatus(_ context.Context, email string, status domain.UserStatus) (bool, error) {
	u, ok := r.byEmail[email]
	if !ok {
		return false, domain.ErrUserNotFound
	}
	u.Status = status
	return true, nil
}

// ---------------------------------------------------------------------------
// Sessions & payments
// ---------------------------------------------------------------------------

type stubRevocations struct {
	revoked  map[string]time.Duration
	checkErr error
}

func newStubRevocations() *stubRevocations {
	return &stubRevocations{revoked: make(map[string]time.Duration)}
}

func (s *stubRevocations) Revoke(_ context.Context, id string, ttl time.Duration) error {
	s.revoked[id] = ttl
	return nil
}

func (s *stubRevocations) IsRevoked(_ context.Context, id string) (bool, error) {
	if s.checkErr != nil {
		return false, s.checkErr
	}
	_, ok := s.revoked[id]
	return ok, nil
}

type stubGateway struct {
	last ports.PaymentIntentRequest
	err  error
}

func (g *stubGateway) CreatePaymentIntent(_ context.Context, req ports.PaymentIntentRequest) (*ports.PaymentIntent, error) {
	g.last = req
	if g.err != nil {
		return nil, g.err
	}
	return &ports.PaymentIntent{ID: "pi_123", ClientSecret: "pi_123_secret_abc"}, nil
}
