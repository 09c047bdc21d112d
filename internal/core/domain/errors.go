package domain

import "errors"

var (
	ErrInvalidRequest       = errors.New("invalid request")
	ErrUnauthenticated      = errors.New("unauthorized access")
	ErrForbidden            = errors.New("forbidden access")
	ErrPlantNotFound        = errors.New("plant not found")
	ErrUserNotFound         = errors.New("user not found")
	ErrUserExists           = errors.New("user already exists")
	ErrInsufficientStock    = errors.New("not enough stock")
	ErrDuplicateTransaction = errors.New("transaction already used for an order")
	ErrInvalidTransition    = errors.New("invalid status transition")
	ErrPaymentFailed        = errors.New("payment provider error")
)
