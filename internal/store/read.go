package store

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/salesdash/salesdash/internal/dataset"
)

// joinQuery is the three-way inner join over the store's key columns.
// The generator draws foreign keys from the generated ID ranges, so the
// join returns exactly one row per order.
const joinQuery = `
SELECT o.order_id, o.order_date, o.quantity, o.discount, o.shipping, o.status,
       p.product_id, p.category, p.base_price,
       c.customer_id, c.segment, c.country
FROM orders o
JOIN products p ON o.product_id = p.product_id
JOIN customers c ON o.customer_id = c.customer_id
`

type joinedRow struct {
	OrderID    int64   `db:"order_id"`
	OrderDate  string  `db:"order_date"`
	Quantity   int     `db:"quantity"`
	Discount   float64 `db:"discount"`
	Shipping   string  `db:"shipping"`
	Status     string  `db:"status"`
	ProductID  int64   `db:"product_id"`
	Category   string  `db:"category"`
	BasePrice  float64 `db:"base_price"`
	CustomerID int64   `db:"customer_id"`
	Segment    string  `db:"segment"`
	Country    string  `db:"country"`
}

// ReadJoined executes the join query and parses the order-date column.
// Query and parse failures come back as a *ReadError.
func ReadJoined(ctx context.Context, db *sqlx.DB) ([]dataset.Row, error) {
	var raw []joinedRow
	if err := db.SelectContext(ctx, &raw, joinQuery); err != nil {
		return nil, &ReadError{Err: err}
	}

	rows := make([]dataset.Row, 0, len(raw))
	for _, r := range raw {
		date, err := parseDate(r.OrderDate)
		if err != nil {
			return nil, &ReadError{Err: err}
		}
		rows = append(rows, dataset.Row{
			OrderID:    r.OrderID,
			OrderDate:  date,
			Quantity:   r.Quantity,
			Discount:   r.Discount,
			Shipping:   r.Shipping,
			Status:     r.Status,
			ProductID:  r.ProductID,
			Category:   r.Category,
			BasePrice:  r.BasePrice,
			CustomerID: r.CustomerID,
			Segment:    r.Segment,
			Country:    r.Country,
		})
	}
	return rows, nil
}

// CountOrders returns the row count of the orders table.
func CountOrders(ctx context.Context, db *sqlx.DB) (int, error) {
	var n int
	if err := db.GetContext(ctx, &n, `SELECT COUNT(*) FROM orders`); err != nil {
		return 0, &ReadError{Err: err}
	}
	return n, nil
}
