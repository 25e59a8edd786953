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
	"errors"
	"testing"

	"github.com/salesdash/salesdash/internal/datagen"
	"github.com/salesdash/salesdash/internal/testutil"
)

func TestBuildAndRead(t *testing.T) {
	ctx := context.Background()
	path := testutil.StorePath(t)
	tables := datagen.Generate(datagen.Spec{Seed: 1, Customers: 10, Products: 5, Orders: 100})

	if err := Build(ctx, path, tables); err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	db, err := Open(path)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer db.Close()

	if err := CheckSchema(ctx, db); err != nil {
		t.Fatalf("CheckSchema failed on a freshly built store: %v", err)
	}

	count, err := CountOrders(ctx, db)
	if err != nil {
		t.Fatalf("CountOrders failed: %v", err)
	}
	if count != 100 {
		t.Errorf("Expected 100 orders, got %d", count)
	}

	rows, err := ReadJoined(ctx, db)
	if err != nil {
		t.Fatalf("ReadJoined failed: %v", err)
	}
	if len(rows) != count {
		t.Errorf("Join returned %d rows for %d orders (silent drops)", len(rows), count)
	}

	// Dates written as ISO text must come back intact.
	byID := make(map[int64]datagen.Order, len(tables.Orders))
	for _, o := range tables.Orders {
		byID[o.OrderID] = o
	}
	for _, r := range rows {
		o := byID[r.OrderID]
		if !r.OrderDate.Equal(o.OrderDate) {
			t.Fatalf("Order %d date %v does not round-trip (want %v)", r.OrderID, r.OrderDate, o.OrderDate)
		}
	}
}

func TestBuildOverwrites(t *testing.T) {
	ctx := context.Background()
	path := testutil.StorePath(t)

	first := datagen.Generate(datagen.Spec{Seed: 1, Customers: 10, Products: 5, Orders: 100})
	if err := Build(ctx, path, first); err != nil {
		t.Fatalf("First build failed: %v", err)
	}

	second := datagen.Generate(datagen.Spec{Seed: 2, Customers: 5, Products: 3, Orders: 20})
	if err := Build(ctx, path, second); err != nil {
		t.Fatalf("Second build failed: %v", err)
	}

	db, err := Open(path)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer db.Close()

	count, err := CountOrders(ctx, db)
	if err != nil {
		t.Fatalf("CountOrders failed: %v", err)
	}
	if count != 20 {
		t.Errorf("Rebuild should replace tables, got %d orders, want 20", count)
	}
}

func TestBuildEmptyTables(t *testing.T) {
	ctx := context.Background()
	path := testutil.StorePath(t)

	if err := Build(ctx, path, datagen.Generate(datagen.Spec{Seed: 42})); err != nil {
		t.Fatalf("Build with empty tables failed: %v", err)
	}

	db, err := Open(path)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer db.Close()

	if err := CheckSchema(ctx, db); err != nil {
		t.Errorf("Empty store should still pass the schema check: %v", err)
	}

	rows, err := ReadJoined(ctx, db)
	if err != nil {
		t.Fatalf("ReadJoined failed: %v", err)
	}
	if len(rows) != 0 {
		t.Errorf("Expected empty join, got %d rows", len(rows))
	}
}

func TestBuildUnwritableDestination(t *testing.T) {
	ctx := context.Background()
	path := testutil.UnwritablePath(t)

	err := Build(ctx, path, datagen.Generate(datagen.Spec{Seed: 42, Customers: 1, Products: 1, Orders: 1}))
	if err == nil {
		t.Fatal("Expected error building into an unwritable destination")
	}

	var buildErr *BuildError
	if !errors.As(err, &buildErr) {
		t.Errorf("Expected *BuildError, got %T: %v", err, err)
	}
}

func TestCheckSchemaMissingTable(t *testing.T) {
	ctx := context.Background()
	path := testutil.StorePath(t)

	tables := datagen.Generate(datagen.Spec{Seed: 1, Customers: 5, Products: 3, Orders: 10})
	if err := Build(ctx, path, tables); err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	db, err := Open(path)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer db.Close()

	if _, err := db.ExecContext(ctx, "DROP TABLE orders"); err != nil {
		t.Fatalf("Failed to drop orders: %v", err)
	}

	err = CheckSchema(ctx, db)
	if err == nil {
		t.Fatal("Expected schema mismatch after dropping orders")
	}

	var schemaErr *SchemaError
	if !errors.As(err, &schemaErr) {
		t.Fatalf("Expected *SchemaError, got %T: %v", err, err)
	}
	found := false
	for _, m := range schemaErr.Missing {
		if m == "orders" {
			found = true
		}
	}
	if !found {
		t.Errorf("SchemaError should name the orders table, got %v", schemaErr.Missing)
	}
}

func TestCheckSchemaMissingColumn(t *testing.T) {
	ctx := context.Background()
	path := testutil.StorePath(t)

	tables := datagen.Generate(datagen.Spec{Seed: 1, Customers: 5, Products: 3, Orders: 10})
	if err := Build(ctx, path, tables); err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	db, err := Open(path)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer db.Close()

	if _, err := db.ExecContext(ctx, "ALTER TABLE orders DROP COLUMN status"); err != nil {
		t.Fatalf("Failed to drop column: %v", err)
	}

	err = CheckSchema(ctx, db)
	var schemaErr *SchemaError
	if !errors.As(err, &schemaErr) {
		t.Fatalf("Expected *SchemaError, got %T: %v", err, err)
	}
	found := false
	for _, m := range schemaErr.Missing {
		if m == "orders.status" {
			found = true
		}
	}
	if !found {
		t.Errorf("SchemaError should name orders.status, got %v", schemaErr.Missing)
	}
}

func TestCheckSchemaCorruptStore(t *testing.T) {
	ctx := context.Background()
	path := testutil.StorePath(t)
	testutil.CorruptStore(t, path)

	db, err := Open(path)
	if err != nil {
		// The driver may refuse the file outright; that is also a
		// failed inspection.
		return
	}
	defer db.Close()

	err = CheckSchema(ctx, db)
	var schemaErr *SchemaError
	if !errors.As(err, &schemaErr) {
		t.Errorf("Expected *SchemaError for a corrupt store, got %T: %v", err, err)
	}
}
