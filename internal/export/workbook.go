package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/salesdash/salesdash/internal/dataset"
	"github.com/salesdash/salesdash/internal/kpi"
)

const (
	datasetSheet = "Dataset"
	monthlySheet = "Monthly KPIs"
)

// WriteWorkbook writes an xlsx workbook with a Dataset sheet and a
// Monthly KPIs sheet.
func WriteWorkbook(w io.Writer, ds *dataset.Dataset, monthly []kpi.MonthlyRow) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", datasetSheet); err != nil {
		return fmt.Errorf("failed to create dataset sheet: %w", err)
	}
	if err := writeRow(f, datasetSheet, 1, toAny(datasetHeader)); err != nil {
		return err
	}
	for i, r := range ds.Rows() {
		cells := []any{
			r.OrderID,
			r.OrderDate.Format(dateLayout),
			r.Quantity,
			r.Discount,
			r.Shipping,
			r.Status,
			r.ProductID,
			r.Category,
			r.BasePrice,
			r.CustomerID,
			r.Segment,
			r.Country,
			r.OrderMonth.Format(monthLayout),
			r.Revenue,
		}
		if err := writeRow(f, datasetSheet, i+2, cells); err != nil {
			return err
		}
	}

	if _, err := f.NewSheet(monthlySheet); err != nil {
		return fmt.Errorf("failed to create monthly sheet: %w", err)
	}
	if err := writeRow(f, monthlySheet, 1, toAny(monthlyHeader)); err != nil {
		return err
	}
	for i, r := range monthly {
		cells := []any{
			r.Month.Format(monthLayout),
			r.Revenue,
			r.Orders,
			r.AOV,
			r.CompletionRate,
			r.RefundRate,
		}
		if err := writeRow(f, monthlySheet, i+2, cells); err != nil {
			return err
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

func writeRow(f *excelize.File, sheet string, row int, cells []any) error {
	if err := f.SetSheetRow(sheet, fmt.Sprintf("A%d", row), &cells); err != nil {
		return fmt.Errorf("failed to write %s row %d: %w", sheet, row, err)
	}
	return nil
}

func toAny(values []string) []any {
	out := make([]any, len(values))
	for i, v := range values {
		out[i] = v
	}
	return out
}
