package httpx

import (
	"fmt"

	"github.com/webshop/order-api/internal/catalog"
	"github.com/webshop/order-api/internal/orders"
)

// ValidationError is a rejected request shape, reported as 400.
type ValidationError struct {
	Field  string
	Reason string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

const (
	maxNameLen        = 40
	maxDescriptionLen = 300
)

func validateProduct(in catalog.ProductInput) error {
	if l := len(in.Name); l < 1 || l > maxNameLen {
		return ValidationError{Field: "name", Reason: fmt.Sprintf("must be 1-%d characters", maxNameLen)}
	}
	if in.Description != nil && len(*in.Description) > maxDescriptionLen {
		return ValidationError{Field: "description", Reason: fmt.Sprintf("must be at most %d characters", maxDescriptionLen)}
	}
	if in.Price <= 0 {
		return ValidationError{Field: "price", Reason: "must be greater than 0"}
	}
	if in.InStock < 0 {
		return ValidationError{Field: "in_stock", Reason: "must not be negative"}
	}
	return nil
}

func validateOrderItems(items []orders.ItemInput) error {
	if len(items) == 0 {
		return ValidationError{Field: "items", Reason: "must not be empty"}
	}
	for i, it := range items {
		if l := len(it.Name); l < 1 || l > maxNameLen {
			return ValidationError{
				Field:  fmt.Sprintf("items[%d].name", i),
				Reason: fmt.Sprintf("must be 1-%d characters", maxNameLen),
			}
		}
		if it.Amount <= 0 {
			return ValidationError{
				Field:  fmt.Sprintf("items[%d].amount", i),
				Reason: "must be greater than 0",
			}
		}
	}
	return nil
}

func validateStatus(s orders.Status) error {
	if !s.Valid() {
		return ValidationError{Field: "status", Reason: "must be one of pending, sent, delivered"}
	}
	return nil
}
