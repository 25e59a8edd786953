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
	"os"
	"path/filepath"

	"github.com/salesdash/salesdash/internal/datagen"
	"github.com/salesdash/salesdash/internal/logging"
)

// insertBatchSize keeps multi-row inserts well under SQLite's bound
// parameter limit.
const insertBatchSize = 500

type customerRow struct {
	CustomerID int64  `db:"customer_id"`
	Segment    string `db:"segment"`
	Country    string `db:"country"`
	SignupDate string `db:"signup_date"`
}

type productRow struct {
	ProductID int64   `db:"product_id"`
	Category  string  `db:"category"`
	BasePrice float64 `db:"base_price"`
}

type orderRow struct {
	OrderID    int64   `db:"order_id"`
	OrderDate  string  `db:"order_date"`
	CustomerID int64   `db:"customer_id"`
	ProductID  int64   `db:"product_id"`
	Quantity   int     `db:"quantity"`
	Discount   float64 `db:"discount"`
	Shipping   string  `db:"shipping"`
	Status     string  `db:"status"`
}

// Build writes the generated tables to the store at path, replacing any
// existing tables of the same name, and creates the secondary indexes.
// This is a full rebuild, not an upsert. All failures come back as a
// *BuildError.
func Build(ctx context.Context, path string, tables datagen.Tables) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return &BuildError{Path: path, Err: err}
	}
	// An existing file may not be a readable database at all; rebuilds
	// always start from an empty file.
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return &BuildError{Path: path, Err: err}
	}

	db, err := Open(path)
	if err != nil {
		return &BuildError{Path: path, Err: err}
	}
	defer db.Close()

	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return &BuildError{Path: path, Err: err}
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, dropSchemaSQL); err != nil {
		return &BuildError{Path: path, Err: err}
	}
	if _, err := tx.ExecContext(ctx, createSchemaSQL); err != nil {
		return &BuildError{Path: path, Err: err}
	}

	customers := make([]customerRow, len(tables.Customers))
	for i, c := range tables.Customers {
		customers[i] = customerRow{
			CustomerID: c.CustomerID,
			Segment:    c.Segment,
			Country:    c.Country,
			SignupDate: formatDate(c.SignupDate),
		}
	}
	for chunk := range batches(len(customers)) {
		_, err := tx.NamedExecContext(ctx, `
            INSERT INTO customers (customer_id, segment, country, signup_date)
            VALUES (:customer_id, :segment, :country, :signup_date)
        `, customers[chunk.start:chunk.end])
		if err != nil {
			return &BuildError{Path: path, Err: err}
		}
	}

	products := make([]productRow, len(tables.Products))
	for i, p := range tables.Products {
		products[i] = productRow{
			ProductID: p.ProductID,
			Category:  p.Category,
			BasePrice: p.BasePrice,
		}
	}
	for chunk := range batches(len(products)) {
		_, err := tx.NamedExecContext(ctx, `
            INSERT INTO products (product_id, category, base_price)
            VALUES (:product_id, :category, :base_price)
        `, products[chunk.start:chunk.end])
		if err != nil {
			return &BuildError{Path: path, Err: err}
		}
	}

	orders := make([]orderRow, len(tables.Orders))
	for i, o := range tables.Orders {
		orders[i] = orderRow{
			OrderID:    o.OrderID,
			OrderDate:  formatDate(o.OrderDate),
			CustomerID: o.CustomerID,
			ProductID:  o.ProductID,
			Quantity:   o.Quantity,
			Discount:   o.Discount,
			Shipping:   o.Shipping,
			Status:     o.Status,
		}
	}
	for chunk := range batches(len(orders)) {
		_, err := tx.NamedExecContext(ctx, `
            INSERT INTO orders (order_id, order_date, customer_id, product_id,
                                quantity, discount, shipping, status)
            VALUES (:order_id, :order_date, :customer_id, :product_id,
                    :quantity, :discount, :shipping, :status)
        `, orders[chunk.start:chunk.end])
		if err != nil {
			return &BuildError{Path: path, Err: err}
		}
	}

	if _, err := tx.ExecContext(ctx, createIndexesSQL); err != nil {
		return &BuildError{Path: path, Err: err}
	}

	if err := tx.Commit(); err != nil {
		return &BuildError{Path: path, Err: err}
	}

	logging.Debug().
		Str("path", path).
		Int("customers", len(customers)).
		Int("products", len(products)).
		Int("orders", len(orders)).
		Msg("Store built")

	return nil
}

type span struct {
	start, end int
}

// batches yields index spans of at most insertBatchSize rows.
func batches(n int) func(func(span) bool) {
	return func(yield func(span) bool) {
		for start := 0; start < n; start += insertBatchSize {
			end := min(start+insertBatchSize, n)
			if !yield(span{start: start, end: end}) {
				return
			}
		}
	}
}
