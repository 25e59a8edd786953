// Package dataset defines the flat joined orders/products/customers
// table the rest of the system consumes. A Dataset is immutable once
// built; filtering produces a new independent view.
package dataset

import (
	"time"

	"github.com/salesdash/salesdash/internal/datagen"
)

// Row is one order joined with its product and customer, plus the
// derived OrderMonth and Revenue columns. The shape is identical
// whether the row came from the persisted store or from the synthetic
// fallback.
type Row struct {
	OrderID    int64     `db:"order_id"`
	OrderDate  time.Time `db:"order_date"`
	Quantity   int       `db:"quantity"`
	Discount   float64   `db:"discount"`
	Shipping   string    `db:"shipping"`
	Status     string    `db:"status"`
	ProductID  int64     `db:"product_id"`
	Category   string    `db:"category"`
	BasePrice  float64   `db:"base_price"`
	CustomerID int64     `db:"customer_id"`
	Segment    string    `db:"segment"`
	Country    string    `db:"country"`

	OrderMonth time.Time `db:"-"`
	Revenue    float64   `db:"-"`
}

// Dataset is an immutable collection of joined rows.
type Dataset struct {
	rows []Row
}

// New builds a Dataset from joined rows, computing the derived
// OrderMonth and Revenue columns for each.
func New(rows []Row) *Dataset {
	out := make([]Row, len(rows))
	for i, r := range rows {
		r.OrderMonth = MonthOf(r.OrderDate)
		r.Revenue = r.BasePrice * (1 - r.Discount) * float64(r.Quantity)
		out[i] = r
	}
	return &Dataset{rows: out}
}

// Derive joins the generated tables in memory and computes the derived
// columns. It is the synthetic counterpart of the store's join query
// and yields the same row shape. Every order references a generated
// customer and product, so no row is dropped.
func Derive(t datagen.Tables) *Dataset {
	products := make(map[int64]datagen.Product, len(t.Products))
	for _, p := range t.Products {
		products[p.ProductID] = p
	}
	customers := make(map[int64]datagen.Customer, len(t.Customers))
	for _, c := range t.Customers {
		customers[c.CustomerID] = c
	}

	rows := make([]Row, 0, len(t.Orders))
	for _, o := range t.Orders {
		p := products[o.ProductID]
		c := customers[o.CustomerID]
		rows = append(rows, Row{
			OrderID:    o.OrderID,
			OrderDate:  o.OrderDate,
			Quantity:   o.Quantity,
			Discount:   o.Discount,
			Shipping:   o.Shipping,
			Status:     o.Status,
			ProductID:  o.ProductID,
			Category:   p.Category,
			BasePrice:  p.BasePrice,
			CustomerID: o.CustomerID,
			Segment:    c.Segment,
			Country:    c.Country,
		})
	}
	return New(rows)
}

// Rows returns the underlying rows. Callers must treat the slice as
// read-only; use Filter to derive a modified view.
func (d *Dataset) Rows() []Row {
	return d.rows
}

// Len returns the number of rows.
func (d *Dataset) Len() int {
	return len(d.rows)
}

// Filter returns a new Dataset holding the rows for which keep returns
// true. The receiver is not modified.
func (d *Dataset) Filter(keep func(Row) bool) *Dataset {
	rows := make([]Row, 0, len(d.rows))
	for _, r := range d.rows {
		if keep(r) {
			rows = append(rows, r)
		}
	}
	return &Dataset{rows: rows}
}

// MonthOf truncates a date to the first day of its month.
func MonthOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}
