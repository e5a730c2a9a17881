package orders

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repo struct{ DB *pgxpool.Pool }

// Place creates an order plus its line items and decrements stock, all in
// one transaction. Items are processed in caller order; FOR UPDATE on the
// product row serializes concurrent decrements so stock never goes negative.
// Any failure rolls back everything, including the order row itself.
func (r *Repo) Place(ctx context.Context, items []ItemInput, status Status) (orderID int64, err error) {
	tx, err := r.DB.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return 0, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	// Insert first so line items have an order id to reference.
	err = tx.QueryRow(ctx,
		`INSERT INTO orders(status) VALUES ($1) RETURNING id`,
		string(status),
	).Scan(&orderID)
	if err != nil {
		return 0, err
	}

	for _, it := range items {
		var productID int64
		var stock int
		err := tx.QueryRow(ctx,
			`SELECT id, in_stock FROM products WHERE name=$1 FOR UPDATE`,
			it.Name,
		).Scan(&productID, &stock)
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, ProductNotFoundError{Name: it.Name}
		}
		if err != nil {
			return 0, err
		}
		if stock < it.Amount {
			return 0, InsufficientStockError{Name: it.Name, Available: stock}
		}
		if _, err := tx.Exec(ctx,
			`UPDATE products SET in_stock = in_stock - $2 WHERE id=$1`,
			productID, it.Amount); err != nil {
			return 0, err
		}
		if _, err := tx.Exec(ctx,
			`INSERT INTO order_items(order_id, product_id, amount) VALUES ($1, $2, $3)`,
			orderID, productID, it.Amount); err != nil {
			return 0, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, err
	}
	return orderID, nil
}

func (r *Repo) Get(ctx context.Context, id int64) (Order, error) {
	var o Order
	err := r.DB.QueryRow(ctx,
		`SELECT id, created, status FROM orders WHERE id=$1`, id,
	).Scan(&o.ID, &o.Created, &o.Status)
	if errors.Is(err, pgx.ErrNoRows) {
		return Order{}, ErrOrderNotFound
	}
	if err != nil {
		return Order{}, err
	}
	o.Items, err = r.loadItems(ctx, id)
	if err != nil {
		return Order{}, err
	}
	return o, nil
}

func (r *Repo) List(ctx context.Context) ([]Order, error) {
	rows, err := r.DB.Query(ctx, `SELECT id, created, status FROM orders ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Order{}
	for rows.Next() {
		var o Order
		if err := rows.Scan(&o.ID, &o.Created, &o.Status); err != nil {
			return nil, err
		}
		o.Items = []OrderItem{}
		out = append(out, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	// Attach items in one pass rather than a query per order.
	itemRows, err := r.DB.Query(ctx,
		`SELECT id, order_id, product_id, amount FROM order_items ORDER BY order_id, id`)
	if err != nil {
		return nil, err
	}
	defer itemRows.Close()

	byOrder := make(map[int64]int, len(out))
	for i, o := range out {
		byOrder[o.ID] = i
	}
	for itemRows.Next() {
		var it OrderItem
		if err := itemRows.Scan(&it.ID, &it.OrderID, &it.ProductID, &it.Amount); err != nil {
			return nil, err
		}
		if i, ok := byOrder[it.OrderID]; ok {
			out[i].Items = append(out[i].Items, it)
		}
	}
	return out, itemRows.Err()
}

// UpdateStatus overwrites the status field. Lookup and write share one
// statement, so a miss and a concurrent delete look the same: no row, no
// update.
func (r *Repo) UpdateStatus(ctx context.Context, id int64, status Status) (Order, error) {
	var o Order
	err := r.DB.QueryRow(ctx,
		`UPDATE orders SET status=$2 WHERE id=$1 RETURNING id, created, status`,
		id, string(status),
	).Scan(&o.ID, &o.Created, &o.Status)
	if errors.Is(err, pgx.ErrNoRows) {
		return Order{}, ErrOrderNotFound
	}
	if err != nil {
		return Order{}, err
	}
	o.Items, err = r.loadItems(ctx, id)
	if err != nil {
		return Order{}, err
	}
	return o, nil
}

func (r *Repo) loadItems(ctx context.Context, orderID int64) ([]OrderItem, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT id, order_id, product_id, amount FROM order_items WHERE order_id=$1 ORDER BY id`,
		orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []OrderItem{}
	for rows.Next() {
		var it OrderItem
		if err := rows.Scan(&it.ID, &it.OrderID, &it.ProductID, &it.Amount); err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}
