// Package upload validates and parses externally supplied order files.
// This is the only component whose failures surface to the caller: the
// file either carries the minimum column set or is rejected with the
// missing column names.
package upload

import (
	"encoding/csv"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"time"
)

// requiredColumns is the minimum header set, after normalization.
var requiredColumns = []string{"order_id", "order_date", "quantity", "unit_price"}

var dateLayouts = []string{"2006-01-02", "2006-01-02 15:04:05", time.RFC3339}

// ValidationError reports the required columns absent from an uploaded
// file. It is surfaced verbatim, never silently defaulted.
type ValidationError struct {
	Missing []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("upload is missing required columns: %s", strings.Join(e.Missing, ", "))
}

// Row is one parsed upload line with its computed revenue.
type Row struct {
	OrderID   string
	OrderDate time.Time
	Quantity  float64
	UnitPrice float64
	Revenue   float64
}

// Parse reads a delimited file, validates the header against the
// required column set, and computes revenue = quantity * unit_price per
// line. Header names are matched case- and space-insensitively.
func Parse(r io.Reader) ([]Row, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, &ValidationError{Missing: requiredColumns}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read upload header: %w", err)
	}

	index := make(map[string]int, len(header))
	for i, name := range header {
		index[normalize(name)] = i
	}

	var missing []string
	for _, col := range requiredColumns {
		if _, ok := index[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return nil, &ValidationError{Missing: missing}
	}

	var rows []Row
	line := 1
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read upload line %d: %w", line+1, err)
		}
		line++

		row := Row{OrderID: record[index["order_id"]]}

		row.OrderDate, err = parseDate(record[index["order_date"]])
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		row.Quantity, err = parseNumber("quantity", record[index["quantity"]])
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		row.UnitPrice, err = parseNumber("unit_price", record[index["unit_price"]])
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}

		row.Revenue = row.Quantity * row.UnitPrice
		rows = append(rows, row)
	}
	return rows, nil
}

// normalize lowercases a header name and collapses whitespace to
// underscores, so "Order ID" and "order_id" match.
func normalize(name string) string {
	name = strings.TrimSpace(strings.ToLower(name))
	return strings.Join(strings.Fields(name), "_")
}

func parseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unparseable order_date %q", s)
}

func parseNumber(column, s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, fmt.Errorf("unparseable %s %q", column, s)
	}
	return v, nil
}
