package service

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/plantnet/plantnet-api/internal/core/domain"
	"github.com/plantnet/plantnet-api/internal/core/ports"
)

func TestPlantService_CreateThenGet_RoundTrip(t *testing.T) {
	repo := newStubPlantRepo()
	svc := NewPlantService(repo, discardLogger)

	id, err := svc.CreatePlant(context.Background(), ports.CreatePlantInput{
		Name:     "Fern",
		Image:    "http://x/1.jpg",
		Price:    decimal.RequireFromString("9.99"),
		Quantity: 5,
		Seller:   &domain.Seller{Name: "Seller", Email: "seller@example.com"},
	})
	if err != nil {
		t.Fatalf("CreatePlant returned error: %v", err)
	}
	if id == "" {
		t.Fatalf("expected inserted id")
	}

	plant, err := svc.GetPlant(context.Background(), id)
	if err != nil {
		t.Fatalf("GetPlant returned error: %v", err)
	}
	if plant.Name != "Fern" || plant.Image != "http://x/1.jpg" {
		t.Fatalf("unexpected plant: %+v", plant)
	}
	if !plant.Price.Equal(decimal.RequireFromString("9.99")) {
		t.Fatalf("price drifted: %s", plant.Price)
	}
	if plant.Quantity != 5 {
		t.Fatalf("unexpected quantity: %d", plant.Quantity)
	}
	if plant.CreatedAt.IsZero() {
		t.Fatalf("expected created_at to be stamped")
	}
}

func TestPlantService_CreatePlant_Validation(t *testing.T) {
	svc := NewPlantService(newStubPlantRepo(), discardLogger)

	cases := map[string]ports.CreatePlantInput{
		"missing name":      {Image: "http://x/1.jpg", Quantity: 1},
		"missing image":     {Name: "Fern", Quantity: 1},
		"negative price":    {Name: "Fern", Image: "http://x/1.jpg", Price: decimal.NewFromInt(-1)},
		"negative quantity": {Name: "Fern", Image: "http://x/1.jpg", Quantity: -1},
	}
	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := svc.CreatePlant(context.Background(), in); !errors.Is(err, domain.ErrInvalidRequest) {
				t.Fatalf("expected ErrInvalidRequest, got %v", err)
			}
		})
	}
}

func TestPlantService_CreatePlant_RepoError(t *testing.T) {
	repo := newStubPlantRepo()
	repo.createErr = errors.New("boom")
	svc := NewPlantService(repo, discardLogger)

	_, err := svc.CreatePlant(context.Background(), ports.CreatePlantInput{Name: "Fern", Image: "http://x/1.jpg"})
	if err == nil {
		t.Fatalf("expected error")
	}
}

func TestPlantService_GetPlant_NotFound(t *testing.T) {
	svc := NewPlantService(newStubPlantRepo(), discardLogger)

	if _, err := svc.GetPlant(context.Background(), "65a1f0c2e4b0a1b2c3d4e5f6"); !errors.Is(err, domain.ErrPlantNotFound) {
		t.Fatalf("expected ErrPlantNotFound, got %v", err)
	}
	if _, err := svc.GetPlant(context.Background(), " "); !errors.Is(err, domain.ErrInvalidRequest) {
		t.Fatalf("expected ErrInvalidRequest for blank id, got %v", err)
	}
}

func TestPlantService_ListPlants(t *testing.T) {
	repo := newStubPlantRepo()
	repo.seed("a", 1)
	repo.seed("b", 2)
	svc := NewPlantService(repo, discardLogger)

	plants, err := svc.ListPlants(context.Background())
	if err != nil {
		t.Fatalf("ListPlants returned error: %v", err)
	}
	if len(plants) != 2 {
		t.Fatalf("expected 2 plants, got %d", len(plants))
	}
}
