package domain

import "errors"

// Reconciliation and lookup errors surfaced by the inventory core.
var (
	// ErrInsufficientStock is returned when a reconciliation would drive a
	// product's cached stock quantity below zero. It applies uniformly to
	// movement creation, update, and deletion.
	ErrInsufficientStock = errors.New("insufficient stock")

	ErrCategoryNotFound = errors.New("category not found")
	ErrProductNotFound  = errors.New("product not found")
	ErrMovementNotFound = errors.New("movement not found")

	ErrInvalidQuantity     = errors.New("quantity must be greater than zero")
	ErrInvalidMovementType = errors.New("movement type must be IN or OUT")

	// ErrInvalidInput wraps request validation failures so the transport
	// layer can tell them apart from infrastructure errors.
	ErrInvalidInput = errors.New("invalid input")

	ErrCategoryNameTaken = errors.New("category name already exists")
	ErrInvalidPrice      = errors.New("price must be greater than zero")
)
