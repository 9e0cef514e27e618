package service

import "errors"

var (
	ErrDuplicateAccount   = errors.New("account already exists")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrMissingFields      = errors.New("full name, email and password are required")
	ErrAccountsClosed     = errors.New("account store is closed")

	ErrEmptyCart     = errors.New("cart is empty")
	ErrInvalidStatus = errors.New("invalid status")
	ErrEmptyMessage  = errors.New("message is required")
)
