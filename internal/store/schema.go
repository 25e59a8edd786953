//-------------------------------------------------------------------------
//
// salesdash - resilient e-commerce analytics dataset
//
// Copyright (c) 2025 - 2026, the salesdash authors
// This software is released under the MIT License
//
//-------------------------------------------------------------------------

package store

import (
	"context"
	"fmt"
	"sort"

	"github.com/jmoiron/sqlx"
)

// DDL for the three tables. Dates are stored as ISO text.
const createSchemaSQL = `
CREATE TABLE IF NOT EXISTS customers (
    customer_id INTEGER PRIMARY KEY,
    segment     TEXT NOT NULL,
    country     TEXT NOT NULL,
    signup_date TEXT
);

CREATE TABLE IF NOT EXISTS products (
    product_id INTEGER PRIMARY KEY,
    category   TEXT NOT NULL,
    base_price REAL NOT NULL
);

CREATE TABLE IF NOT EXISTS orders (
    order_id    INTEGER PRIMARY KEY,
    order_date  TEXT NOT NULL,
    customer_id INTEGER NOT NULL,
    product_id  INTEGER NOT NULL,
    quantity    INTEGER NOT NULL,
    discount    REAL NOT NULL,
    shipping    TEXT NOT NULL,
    status      TEXT NOT NULL
);
`

const dropSchemaSQL = `
DROP TABLE IF EXISTS orders;
DROP TABLE IF EXISTS products;
DROP TABLE IF EXISTS customers;
`

// Secondary indexes for the join and filter columns. Creation is
// idempotent.
const createIndexesSQL = `
CREATE INDEX IF NOT EXISTS idx_orders_date ON orders(order_date);
CREATE INDEX IF NOT EXISTS idx_orders_cust ON orders(customer_id);
CREATE INDEX IF NOT EXISTS idx_orders_prod ON orders(product_id);
CREATE INDEX IF NOT EXISTS idx_products_cat ON products(category);
CREATE INDEX IF NOT EXISTS idx_customers_seg ON customers(segment);
`

// requiredSchema maps each required table to its required column set.
// CheckSchema verifies it once after every open instead of scattering
// name checks through the read path.
var requiredSchema = map[string][]string{
	"customers": {"customer_id", "segment", "country", "signup_date"},
	"products":  {"product_id", "category", "base_price"},
	"orders":    {"order_id", "order_date", "customer_id", "product_id", "quantity", "discount", "shipping", "status"},
}

// CheckSchema verifies that the opened store carries every required
// table and column. It returns a *SchemaError on mismatch, or when the
// store is too damaged to inspect.
func CheckSchema(ctx context.Context, db *sqlx.DB) error {
	var names []string
	err := db.SelectContext(ctx, &names,
		`SELECT name FROM sqlite_master WHERE type = 'table'`)
	if err != nil {
		return &SchemaError{Err: err}
	}

	present := make(map[string]bool, len(names))
	for _, n := range names {
		present[n] = true
	}

	var missing []string
	for _, table := range sortedTables() {
		if !present[table] {
			missing = append(missing, table)
			continue
		}
		cols, err := tableColumns(ctx, db, table)
		if err != nil {
			return &SchemaError{Err: err}
		}
		for _, col := range requiredSchema[table] {
			if !cols[col] {
				missing = append(missing, table+"."+col)
			}
		}
	}

	if len(missing) > 0 {
		return &SchemaError{Missing: missing}
	}
	return nil
}

func sortedTables() []string {
	tables := make([]string, 0, len(requiredSchema))
	for t := range requiredSchema {
		tables = append(tables, t)
	}
	sort.Strings(tables)
	return tables
}

func tableColumns(ctx context.Context, db *sqlx.DB, table string) (map[string]bool, error) {
	rows, err := db.QueryxContext(ctx, fmt.Sprintf("PRAGMA table_info(%s)", table))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	cols := make(map[string]bool)
	for rows.Next() {
		var (
			cid     int
			name    string
			ctype   string
			notnull int
			dflt    any
			pk      int
		)
		if err := rows.Scan(&cid, &name, &ctype, &notnull, &dflt, &pk); err != nil {
			return nil, err
		}
		cols[name] = true
	}
	return cols, rows.Err()
}
