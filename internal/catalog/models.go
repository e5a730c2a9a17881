package catalog

// Product is a catalog row. Description maps to a nullable column.
type Product struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description"`
	Price       float64 `json:"price"`
	InStock     int     `json:"in_stock"`
}

// ProductInput carries the writable fields for add and full-replace update.
type ProductInput struct {
	Name        string  `json:"name"`
	Description *string `json:"description"`
	Price       float64 `json:"price"`
	InStock     int     `json:"in_stock"`
}
