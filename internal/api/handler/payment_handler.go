package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/plantnet/plantnet-api/internal/core/ports"
)

type PaymentHandler struct {
	service ports.PaymentService
}

func NewPaymentHandler(service ports.PaymentService) *PaymentHandler {
	return &PaymentHandler{service: service}
}

// CreateIntent handles POST /create-payment-intent.
//
// @Summary      Open a card payment intent for a plant purchase
// @Tags         payments
// @Accept       json
// @Produce      json
// @Param        body  body      paymentIntentRequest  true  "Plant and quantity"
// @Success      200   {object}  paymentIntentResponse
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      429   {object}  errorResponse
// @Failure      502   {object}  errorResponse
// @Router       /create-payment-intent [post]
func (h *PaymentHandler) CreateIntent(c echo.Context) error {
	var req paymentIntentRequest
	if err := c.Bind(&req); err != nil {
		return err
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	res, err := h.service.CreatePaymentIntent(c.Request().Context(), req.PlantID, int(req.Quantity))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, paymentIntentResponse{
		ClientSecret: res.ClientSecret,
		Amount:       res.Amount.InexactFloat64(),
		PlantName:    res.PlantName,
	})
}
