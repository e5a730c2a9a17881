package orders

import "time"

type Order struct {
	ID      int64       `json:"id"`
	Created time.Time   `json:"created"`
	Status  Status      `json:"status"`
	Items   []OrderItem `json:"items"`
}

type OrderItem struct {
	ID        int64 `json:"-"`
	OrderID   int64 `json:"-"`
	ProductID int64 `json:"product_id"`
	Amount    int   `json:"amount"`
}

// ItemInput is one requested line of a placement: a product referenced by
// exact name plus the amount wanted.
type ItemInput struct {
	Name   string `json:"name"`
	Amount int    `json:"amount"`
}
