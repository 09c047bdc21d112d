package handler

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type successResponse struct {
	Success bool `json:"success"`
}

type insertedResponse struct {
	Success    bool   `json:"success"`
	InsertedID string `json:"insertedId"`
}

type modifiedResponse struct {
	Success  bool `json:"success"`
	Modified bool `json:"modified"`
}

// quantity accepts either a JSON number or a numeric string, as storefront
// forms commonly send the latter.
type quantity int

func (q *quantity) UnmarshalJSON(b []byte) error {
	s := strings.Trim(strings.TrimSpace(string(b)), `"`)
	if s == "" || s == "null" {
		*q = 0
		return nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		f, ferr := strconv.ParseFloat(s, 64)
		if ferr != nil || f != float64(int(f)) {
			return fmt.Errorf("quantity must be an integer, got %s", s)
		}
		n = int(f)
	}
	*q = quantity(n)
	return nil
}

// --- Plants ---

type sellerSchema struct {
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty" validate:"omitempty,email"`
	Image string `json:"image,omitempty"`
}

type createPlantRequest struct {
	Name        string          `json:"name"        validate:"required"`
	Image       string          `json:"image"       validate:"required"`
	Category    string          `json:"category"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"       swaggertype:"number"`
	Quantity    quantity        `json:"quantity"    validate:"min=0" swaggertype:"integer"`
	Seller      *sellerSchema   `json:"seller"`
}

type plantResponse struct {
	ID          string        `json:"_id"`
	Name        string        `json:"name"`
	Image       string        `json:"image"`
	Category    string        `json:"category,omitempty"`
	Description string        `json:"description,omitempty"`
	Price       float64       `json:"price"`
	Quantity    int           `json:"quantity"`
	Seller      *sellerSchema `json:"seller,omitempty"`
	CreatedAt   time.Time     `json:"created_at"`
}

// --- Payments ---

type paymentIntentRequest struct {
	PlantID  string   `json:"plantId"  validate:"required"`
	Quantity quantity `json:"quantity" validate:"gt=0" swaggertype:"integer"`
}

type paymentIntentResponse struct {
	ClientSecret string  `json:"clientSecret"`
	Amount       float64 `json:"amount"`
	PlantName    string  `json:"plantName"`
}

// --- Orders ---

// orderFields are the normalized order fields; everything else in the body is
// kept as metadata.
type orderFields struct {
	Email         string   `json:"email"`
	PlantID       string   `json:"plantId"`
	Quantity      quantity `json:"quantity"`
	TransactionID string   `json:"transactionId"`
	Customer      *struct {
		Email string `json:"email"`
	} `json:"customer"`
}

// placeOrderRequest documents the order body for the API docs only.
type placeOrderRequest struct {
	Email         string         `json:"email"`
	Customer      map[string]any `json:"customer"`
	PlantID       string         `json:"plantId"`
	Quantity      int            `json:"quantity"`
	TransactionID string         `json:"transactionId"`
}

// --- Sessions ---

type issueTokenRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// --- Users ---

type registerUserRequest struct {
	Email string `json:"email" validate:"required,email"`
	Name  string `json:"name"  validate:"required"`
	Image string `json:"image" validate:"required"`
}

type userExistsResponse struct {
	Success bool   `json:"success"`
	Exists  bool   `json:"exists"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

type roleResponse struct {
	Success bool   `json:"success"`
	Role    string `json:"role"`
}

type updateRoleRequest struct {
	Role string `json:"role" validate:"required,oneof=customer seller admin"`
}

type lastLoginRequest struct {
	LastLoginTime *time.Time `json:"last_login_time"`
}

// decodeOrder splits a raw order body into the normalized fields and the
// remaining metadata.
func decodeOrder(body map[string]any) (orderFields, map[string]any, error) {
	var f orderFields
	raw, err := json.Marshal(body)
	if err != nil {
		return f, nil, err
	}
	if err := json.Unmarshal(raw, &f); err != nil {
		return f, nil, err
	}
	if strings.TrimSpace(f.Email) == "" && f.Customer != nil {
		f.Email = f.Customer.Email
	}

	meta := make(map[string]any, len(body))
	for k, v := range body {
		switch k {
		case "email", "plantId", "quantity", "transactionId":
			continue
		}
		meta[k] = v
	}
	return f, meta, nil
}
