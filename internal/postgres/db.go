package postgres

import (
	"context"
	"github.com/jackc/pgx/v5/pgxpool"
	"time"
)

func Connect(ctx context.Context, dsn string) (*pgxpool.Pool, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, err
	}
	cfg.MaxConns = 8
	cfg.MinConns = 1
	cfg.HealthCheckPeriod = 30 * time.Second
	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, err
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return pool, nil
}

const schema = `
CREATE TABLE IF NOT EXISTS products (
	id          BIGSERIAL PRIMARY KEY,
	name        VARCHAR(40) NOT NULL UNIQUE,
	description VARCHAR(300),
	price       DOUBLE PRECISION NOT NULL CHECK (price > 0),
	in_stock    SMALLINT NOT NULL CHECK (in_stock >= 0)
);

CREATE TABLE IF NOT EXISTS orders (
	id      BIGSERIAL PRIMARY KEY,
	created TIMESTAMPTZ NOT NULL DEFAULT now(),
	status  TEXT NOT NULL DEFAULT 'pending'
	        CHECK (status IN ('pending', 'sent', 'delivered'))
);

CREATE TABLE IF NOT EXISTS order_items (
	id         BIGSERIAL PRIMARY KEY,
	order_id   BIGINT NOT NULL REFERENCES orders(id) ON DELETE CASCADE,
	product_id BIGINT NOT NULL REFERENCES products(id) ON DELETE CASCADE,
	amount     INTEGER NOT NULL CHECK (amount > 0)
);
`

// Migrate applies the schema. Statements are IF NOT EXISTS, safe to run at
// every boot.
func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	_, err := pool.Exec(ctx, schema)
	return err
}
