package catalog

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	ErrNotFound      = errors.New("product not found")
	ErrDuplicateName = errors.New("product with this name already exists")
)

// Postgres error code for unique_violation.
const codeUniqueViolation = "23505"

type Repo struct{ DB *pgxpool.Pool }

// Add inserts a product. Duplicate names are not pre-checked; the unique
// constraint decides, so two concurrent adds cannot both win.
func (r *Repo) Add(ctx context.Context, in ProductInput) (Product, error) {
	p := Product{
		Name:        in.Name,
		Description: in.Description,
		Price:       in.Price,
		InStock:     in.InStock,
	}
	err := r.DB.QueryRow(ctx, `
		INSERT INTO products(name, description, price, in_stock)
		VALUES ($1, $2, $3, $4)
		RETURNING id`,
		in.Name, in.Description, in.Price, in.InStock,
	).Scan(&p.ID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == codeUniqueViolation {
			return Product{}, ErrDuplicateName
		}
		return Product{}, err
	}
	return p, nil
}

func (r *Repo) List(ctx context.Context) ([]Product, error) {
	rows, err := r.DB.Query(ctx, `
		SELECT id, name, description, price, in_stock
		FROM products ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Product{}
	for rows.Next() {
		var p Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.InStock); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *Repo) Get(ctx context.Context, id int64) (Product, error) {
	var p Product
	err := r.DB.QueryRow(ctx, `
		SELECT id, name, description, price, in_stock
		FROM products WHERE id=$1`, id,
	).Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.InStock)
	if errors.Is(err, pgx.ErrNoRows) {
		return Product{}, ErrNotFound
	}
	if err != nil {
		return Product{}, err
	}
	return p, nil
}

// Update replaces every writable field of the row.
func (r *Repo) Update(ctx context.Context, id int64, in ProductInput) (Product, error) {
	p := Product{
		ID:          id,
		Name:        in.Name,
		Description: in.Description,
		Price:       in.Price,
		InStock:     in.InStock,
	}
	ct, err := r.DB.Exec(ctx, `
		UPDATE products SET name=$2, description=$3, price=$4, in_stock=$5
		WHERE id=$1`,
		id, in.Name, in.Description, in.Price, in.InStock)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == codeUniqueViolation {
			return Product{}, ErrDuplicateName
		}
		return Product{}, err
	}
	if ct.RowsAffected() == 0 {
		return Product{}, ErrNotFound
	}
	return p, nil
}

// Delete removes the product. Line items referencing it go with it via the
// FK cascade; owning orders stay.
func (r *Repo) Delete(ctx context.Context, id int64) error {
	ct, err := r.DB.Exec(ctx, `DELETE FROM products WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
