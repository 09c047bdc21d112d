package handler

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/plantnet/plantnet-api/internal/core/domain"
	"github.com/plantnet/plantnet-api/internal/core/ports"
)

// OrderHandler handles HTTP requests for order placement.
type OrderHandler struct {
	service ports.OrderService
}

func NewOrderHandler(service ports.OrderService) *OrderHandler {
	return &OrderHandler{service: service}
}

// Place handles POST /orders. The purchaser email may arrive as email or
// customer.email; any other body fields are stored with the order.
//
// @Summary      Place an order
// @Tags         orders
// @Accept       json
// @Produce      json
// @Security     CookieAuth
// @Param        body  body      placeOrderRequest  true  "Order details"
// @Success      200   {object}  insertedResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Failure      500   {object}  errorResponse
// @Router       /orders [post]
func (h *OrderHandler) Place(c echo.Context) error {
	var body map[string]any
	if err := c.Bind(&body); err != nil {
		return err
	}

	fields, meta, err := decodeOrder(body)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrInvalidRequest, err)
	}

	id, err := h.service.PlaceOrder(c.Request().Context(), ports.PlaceOrderInput{
		Email:         fields.Email,
		PlantID:       fields.PlantID,
		Quantity:      int(fields.Quantity),
		TransactionID: fields.TransactionID,
		Metadata:      meta,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, insertedResponse{Success: true, InsertedID: id})
}
