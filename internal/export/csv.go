// Package export serializes the filtered dataset and the monthly KPI
// table. The delimited output is byte-for-byte reproducible for
// identical input: fixed column order, fixed date and float formats.
package export

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/salesdash/salesdash/internal/dataset"
	"github.com/salesdash/salesdash/internal/kpi"
)

const (
	dateLayout  = "2006-01-02"
	monthLayout = "2006-01"
)

var datasetHeader = []string{
	"order_id", "order_date", "quantity", "discount", "shipping", "status",
	"product_id", "category", "base_price",
	"customer_id", "segment", "country",
	"order_month", "revenue",
}

var monthlyHeader = []string{
	"order_month", "revenue", "orders", "aov", "completion_rate", "refund_rate",
}

// WriteCSV writes the dataset view as delimited text.
func WriteCSV(w io.Writer, ds *dataset.Dataset) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(datasetHeader); err != nil {
		return err
	}
	for _, r := range ds.Rows() {
		if err := cw.Write(datasetRecord(r)); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteMonthlyCSV writes the monthly KPI table as delimited text.
func WriteMonthlyCSV(w io.Writer, rows []kpi.MonthlyRow) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(monthlyHeader); err != nil {
		return err
	}
	for _, r := range rows {
		if err := cw.Write(monthlyRecord(r)); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func datasetRecord(r dataset.Row) []string {
	return []string{
		strconv.FormatInt(r.OrderID, 10),
		r.OrderDate.Format(dateLayout),
		strconv.Itoa(r.Quantity),
		formatFloat(r.Discount),
		r.Shipping,
		r.Status,
		strconv.FormatInt(r.ProductID, 10),
		r.Category,
		formatFloat(r.BasePrice),
		strconv.FormatInt(r.CustomerID, 10),
		r.Segment,
		r.Country,
		r.OrderMonth.Format(monthLayout),
		formatFloat(r.Revenue),
	}
}

func monthlyRecord(r kpi.MonthlyRow) []string {
	return []string{
		r.Month.Format(monthLayout),
		formatFloat(r.Revenue),
		strconv.Itoa(r.Orders),
		formatFloat(r.AOV),
		formatFloat(r.CompletionRate),
		formatFloat(r.RefundRate),
	}
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
