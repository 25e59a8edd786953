//-------------------------------------------------------------------------
//
// salesdash - resilient e-commerce analytics dataset
//
// Copyright (c) 2025 - 2026, the salesdash authors
// This software is released under the MIT License
//
//-------------------------------------------------------------------------

// Package kpi derives summary and monthly KPI aggregates from a
// filtered dataset view.
package kpi

import (
	"sort"
	"time"

	"github.com/salesdash/salesdash/internal/datagen"
	"github.com/salesdash/salesdash/internal/dataset"
)

// Filter is a conjunction of set-membership predicates plus an
// inclusive date range. An empty slice for a dimension means all
// observed values, not none; nil From/To leaves that bound open.
type Filter struct {
	Statuses   []string
	Segments   []string
	Categories []string
	Countries  []string
	From       *time.Time
	To         *time.Time
}

// Match reports whether a row passes every selected predicate.
func (f Filter) Match(r dataset.Row) bool {
	if !memberOf(r.Status, f.Statuses) {
		return false
	}
	if !memberOf(r.Segment, f.Segments) {
		return false
	}
	if !memberOf(r.Category, f.Categories) {
		return false
	}
	if !memberOf(r.Country, f.Countries) {
		return false
	}
	if f.From != nil && r.OrderDate.Before(*f.From) {
		return false
	}
	if f.To != nil && r.OrderDate.After(*f.To) {
		return false
	}
	return true
}

func memberOf(v string, set []string) bool {
	if len(set) == 0 {
		return true
	}
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}

// Apply returns the view of ds selected by f. The input dataset is
// never modified.
func Apply(ds *dataset.Dataset, f Filter) *dataset.Dataset {
	return ds.Filter(f.Match)
}

// Summary holds the headline KPIs over a filtered view.
type Summary struct {
	// TotalRevenue sums revenue over completed rows.
	TotalRevenue float64
	// Orders counts all rows regardless of status.
	Orders int
	// AOV is the mean revenue of completed rows, 0 when there are none.
	AOV float64
	// CompletionRate is the percentage of rows with status Completed.
	CompletionRate float64
	// RefundRate is the percentage of rows with status Refunded.
	RefundRate float64
}

// Summarize computes the headline KPIs for a view.
func Summarize(ds *dataset.Dataset) Summary {
	var s Summary
	completed := 0
	refunded := 0

	for _, r := range ds.Rows() {
		s.Orders++
		switch r.Status {
		case datagen.StatusCompleted:
			completed++
			s.TotalRevenue += r.Revenue
		case datagen.StatusRefunded:
			refunded++
		}
	}

	if completed > 0 {
		s.AOV = s.TotalRevenue / float64(completed)
	}
	if s.Orders > 0 {
		s.CompletionRate = float64(completed) / float64(s.Orders) * 100
		s.RefundRate = float64(refunded) / float64(s.Orders) * 100
	}
	return s
}

// MonthlyRow is the KPI aggregate for one calendar month. Revenue,
// Orders and AOV cover completed rows; the rates cover all statuses.
type MonthlyRow struct {
	Month          time.Time
	Revenue        float64
	Orders         int
	AOV            float64
	CompletionRate float64
	RefundRate     float64
}

// Monthly groups the view by order month, in chronological order. Every
// month observed in the view appears, with 0.0 aggregates and rates for
// months that have no completed or refunded rows.
func Monthly(ds *dataset.Dataset) []MonthlyRow {
	type bucket struct {
		revenue   float64
		completed int
		refunded  int
		total     int
	}
	buckets := make(map[time.Time]*bucket)

	for _, r := range ds.Rows() {
		b := buckets[r.OrderMonth]
		if b == nil {
			b = &bucket{}
			buckets[r.OrderMonth] = b
		}
		b.total++
		switch r.Status {
		case datagen.StatusCompleted:
			b.completed++
			b.revenue += r.Revenue
		case datagen.StatusRefunded:
			b.refunded++
		}
	}

	months := make([]time.Time, 0, len(buckets))
	for m := range buckets {
		months = append(months, m)
	}
	sort.Slice(months, func(i, j int) bool { return months[i].Before(months[j]) })

	rows := make([]MonthlyRow, 0, len(months))
	for _, m := range months {
		b := buckets[m]
		row := MonthlyRow{
			Month:   m,
			Revenue: b.revenue,
			Orders:  b.completed,
		}
		if b.completed > 0 {
			row.AOV = b.revenue / float64(b.completed)
		}
		if b.total > 0 {
			row.CompletionRate = float64(b.completed) / float64(b.total) * 100
			row.RefundRate = float64(b.refunded) / float64(b.total) * 100
		}
		rows = append(rows, row)
	}
	return rows
}
