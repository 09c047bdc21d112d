package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/plantnet/plantnet-api/internal/core/domain"
	"github.com/plantnet/plantnet-api/internal/core/ports"
)

type PlantService struct {
	repo   ports.PlantRepository
	logger zerolog.Logger
}

func NewPlantService(repo ports.PlantRepository, logger zerolog.Logger) *PlantService {
	return &PlantService{repo: repo, logger: logger}
}

// CreatePlant validates and stores a new listing.
func (s *PlantService) CreatePlant(ctx context.Context, in ports.CreatePlantInput) (string, error) {
	if strings.TrimSpace(in.Name) == "" || strings.TrimSpace(in.Image) == "" {
		return "", fmt.Errorf("%w: missing required fields", domain.ErrInvalidRequest)
	}
	if in.Price.IsNegative() {
		return "", fmt.Errorf("%w: price must not be negative", domain.ErrInvalidRequest)
	}
	if in.Quantity < 0 {
		return "", fmt.Errorf("%w: quantity must not be negative", domain.ErrInvalidRequest)
	}

	plant := &domain.Plant{
		Name:        strings.TrimSpace(in.Name),
		Image:       strings.TrimSpace(in.Image),
		Category:    in.Category,
		Description: in.Description,
		Price:       in.Price,
		Quantity:    in.Quantity,
		Seller:      in.Seller,
		CreatedAt:   time.Now().UTC(),
	}

	id, err := s.repo.Create(ctx, plant)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to create plant")
		return "", err
	}

	s.logger.Info().Str("plant_id", id).Str("name", plant.Name).Int("quantity", plant.Quantity).Msg("plant created")
	return id, nil
}

func (s *PlantService) ListPlants(ctx context.Context) ([]*domain.Plant, error) {
	return s.repo.List(ctx)
}

func (s *PlantService) GetPlant(ctx context.Context, id string) (*domain.Plant, error) {
	if strings.TrimSpace(id) == "" {
		return nil, fmt.Errorf("%w: plant id is required", domain.ErrInvalidRequest)
	}
	return s.repo.FindByID(ctx, id)
}
