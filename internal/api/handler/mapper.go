package handler

import (
	"github.com/plantnet/plantnet-api/internal/core/domain"
	"github.com/plantnet/plantnet-api/internal/core/ports"
)

// --- Request → Service input ---

func toCreatePlantInput(req createPlantRequest) ports.CreatePlantInput {
	in := ports.CreatePlantInput{
		Name:        req.Name,
		Image:       req.Image,
		Category:    req.Category,
		Description: req.Description,
		Price:       req.Price,
		Quantity:    int(req.Quantity),
	}
	if req.Seller != nil {
		in.Seller = &domain.Seller{Name: req.Seller.Name, Email: req.Seller.Email, Image: req.Seller.Image}
	}
	return in
}

// --- Domain → Response ---

func toPlantResponse(p *domain.Plant) plantResponse {
	resp := plantResponse{
		ID:          p.ID,
		Name:        p.Name,
		Image:       p.Image,
		Category:    p.Category,
		Description: p.Description,
		Price:       p.Price.InexactFloat64(),
		Quantity:    p.Quantity,
		CreatedAt:   p.CreatedAt,
	}
	if p.Seller != nil {
		resp.Seller = &sellerSchema{Name: p.Seller.Name, Email: p.Seller.Email, Image: p.Seller.Image}
	}
	return resp
}

func toPlantResponses(plants []*domain.Plant) []plantResponse {
	out := make([]plantResponse, 0, len(plants))
	for _, p := range plants {
		out = append(out, toPlantResponse(p))
	}
	return out
}
