package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/plantnet/plantnet-api/internal/core/ports"
)

// PlantHandler handles HTTP requests for the plant catalogue.
type PlantHandler struct {
	service ports.PlantService
}

func NewPlantHandler(service ports.PlantService) *PlantHandler {
	return &PlantHandler{service: service}
}

// Create handles POST /plants.
//
// @Summary      List a new plant
// @Tags         plants
// @Accept       json
// @Produce      json
// @Param        body  body      createPlantRequest  true  "Plant details"
// @Success      200   {object}  insertedResponse
// @Failure      400   {object}  errorResponse
// @Failure      500   {object}  errorResponse
// @Router       /plants [post]
func (h *PlantHandler) Create(c echo.Context) error {
	var req createPlantRequest
	if err := c.Bind(&req); err != nil {
		return err
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	id, err := h.service.CreatePlant(c.Request().Context(), toCreatePlantInput(req))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, insertedResponse{Success: true, InsertedID: id})
}

// List handles GET /plants.
//
// @Summary      List plants, newest first
// @Tags         plants
// @Produce      json
// @Success      200  {array}   plantResponse
// @Failure      500  {object}  errorResponse
// @Router       /plants [get]
func (h *PlantHandler) List(c echo.Context) error {
	plants, err := h.service.ListPlants(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toPlantResponses(plants))
}

// Get handles GET /plants/:id.
//
// @Summary      Get a plant by id
// @Tags         plants
// @Produce      json
// @Param        id   path      string  true  "Plant id (ObjectID hex)"
// @Success      200  {object}  plantResponse
// @Failure      400  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /plants/{id} [get]
func (h *PlantHandler) Get(c echo.Context) error {
	plant, err := h.service.GetPlant(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toPlantResponse(plant))
}
