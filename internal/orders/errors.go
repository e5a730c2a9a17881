package orders

import (
	"errors"
	"fmt"
)

var ErrOrderNotFound = errors.New("order not found")

// ProductNotFoundError aborts a placement when a requested name matches no
// catalog row.
type ProductNotFoundError struct {
	Name string
}

func (e ProductNotFoundError) Error() string {
	return fmt.Sprintf("product %q not found", e.Name)
}

// InsufficientStockError aborts a placement when stock cannot cover the
// requested amount. Available carries the stock level seen inside the
// transaction.
type InsufficientStockError struct {
	Name      string
	Available int
}

func (e InsufficientStockError) Error() string {
	return fmt.Sprintf("not enough %q in stock, %d available", e.Name, e.Available)
}
