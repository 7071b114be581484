package domain

import "fmt"

// ValidationError reports a malformed user-entered field. These are
// user-correctable and are never retried internally.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// AuthError covers bad credentials and operations that need an active
// identity when none is set.
type AuthError struct {
	Reason string
}

func (e *AuthError) Error() string { return e.Reason }

type OutOfStockError struct {
	ProductID string
	Name      string
}

func (e *OutOfStockError) Error() string {
	return fmt.Sprintf("%s is out of stock", e.Name)
}

type InvalidQuantityError struct {
	ProductID string
	Quantity  int
}

func (e *InvalidQuantityError) Error() string {
	return fmt.Sprintf("invalid quantity %d for product %s", e.Quantity, e.ProductID)
}

type InsufficientStockError struct {
	ProductID string
	Name      string
	Requested int
	Available int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("only %d of %s left (requested %d)", e.Available, e.Name, e.Requested)
}
