//-------------------------------------------------------------------------
//
// salesdash - resilient e-commerce analytics dataset
//
// Copyright (c) 2025 - 2026, the salesdash authors
// This software is released under the MIT License
//
//-------------------------------------------------------------------------

package datagen

import "time"

// Order status values. Completed and Refunded are always present; the
// third status is either Pending or Cancelled, selected per Spec.
const (
	StatusCompleted = "Completed"
	StatusRefunded  = "Refunded"
	StatusPending   = "Pending"
	StatusCancelled = "Cancelled"
)

// Shipping modes.
const (
	ShippingStandard = "Standard"
	ShippingExpress  = "Express"
	ShippingTwoDay   = "Two-Day"
)

// Customer ID numbering starts above product and order IDs so the three
// key spaces never overlap in ad-hoc queries.
const customerIDBase = 1000

// Reference data with their categorical weights.
var (
	segments       = []string{"Consumer", "Corporate", "Enterprise", "Small Biz"}
	segmentWeights = []int{45, 25, 15, 15}

	countries = []string{"US", "UK", "FR", "DE", "IN", "ES", "BH", "QA"}

	categories = []string{"Electronics", "Home", "Fashion", "Sports", "Beauty", "Toys", "Books", "Grocery"}

	shippingModes   = []string{ShippingStandard, ShippingExpress, ShippingTwoDay}
	shippingWeights = []int{60, 25, 15}

	statusWeights = []int{85, 5, 10}
)

// Historical windows the generated dates fall into.
var (
	ordersEpoch = time.Date(2023, time.January, 1, 0, 0, 0, 0, time.UTC)
	signupEpoch = time.Date(2022, time.January, 1, 0, 0, 0, 0, time.UTC)
)

const (
	orderDateSpanDays  = 730
	signupDateSpanDays = 900
)

// Customer is a generated customer record.
type Customer struct {
	CustomerID int64     `db:"customer_id"`
	Segment    string    `db:"segment"`
	Country    string    `db:"country"`
	SignupDate time.Time `db:"signup_date"`
}

// Product is a generated product record.
type Product struct {
	ProductID int64   `db:"product_id"`
	Category  string  `db:"category"`
	BasePrice float64 `db:"base_price"`
}

// Order is a generated order record. CustomerID and ProductID always
// reference generated customers and products.
type Order struct {
	OrderID    int64     `db:"order_id"`
	OrderDate  time.Time `db:"order_date"`
	CustomerID int64     `db:"customer_id"`
	ProductID  int64     `db:"product_id"`
	Quantity   int       `db:"quantity"`
	Discount   float64   `db:"discount"`
	Shipping   string    `db:"shipping"`
	Status     string    `db:"status"`
}

// Tables holds the three generated tables.
type Tables struct {
	Customers []Customer
	Products  []Product
	Orders    []Order
}

// Spec describes one deterministic generation run. Two identical Specs
// produce identical Tables.
type Spec struct {
	Seed      uint64
	Customers int
	Products  int
	Orders    int

	// ThirdStatus is the status used alongside Completed and Refunded:
	// StatusPending (default) or StatusCancelled.
	ThirdStatus string
}

// DefaultSpec returns the generation parameters used by the synthetic
// fallback path.
func DefaultSpec() Spec {
	return Spec{
		Seed:      42,
		Customers: 5000,
		Products:  500,
		Orders:    50000,
	}
}

func (s Spec) thirdStatus() string {
	if s.ThirdStatus == "" {
		return StatusPending
	}
	return s.ThirdStatus
}

// Generate produces the customers, products and orders tables from a
// single seeded source. Draws happen in a fixed order (customers, then
// products, then orders) so results are reproducible. Zero counts yield
// empty tables.
func Generate(spec Spec) Tables {
	f := NewFakerWithSeed(spec.Seed)

	t := Tables{
		Customers: make([]Customer, 0, spec.Customers),
		Products:  make([]Product, 0, spec.Products),
		Orders:    make([]Order, 0, spec.Orders),
	}

	for i := 0; i < spec.Customers; i++ {
		t.Customers = append(t.Customers, Customer{
			CustomerID: customerIDBase + int64(i),
			Segment:    ChooseWeighted(f, segments, segmentWeights),
			Country:    Choose(f, countries),
			SignupDate: signupEpoch.AddDate(0, 0, f.Int(0, signupDateSpanDays-1)),
		})
	}

	for i := 0; i < spec.Products; i++ {
		t.Products = append(t.Products, Product{
			ProductID: int64(i) + 1,
			Category:  Choose(f, categories),
			BasePrice: Round2(Clip(f.Normal(60, 35), 5, 400)),
		})
	}

	statuses := []string{StatusCompleted, StatusRefunded, spec.thirdStatus()}

	for i := 0; i < spec.Orders; i++ {
		o := Order{
			OrderID:   int64(i) + 1,
			OrderDate: ordersEpoch.AddDate(0, 0, f.Int(0, orderDateSpanDays-1)),
			Quantity:  f.Int(1, 4),
			Discount:  Round2(f.Float64(0, 0.4)),
			Shipping:  ChooseWeighted(f, shippingModes, shippingWeights),
			Status:    ChooseWeighted(f, statuses, statusWeights),
		}
		// Foreign keys are drawn from the generated ID ranges, so every
		// order joins to an existing customer and product.
		if spec.Customers > 0 {
			o.CustomerID = customerIDBase + int64(f.Int(0, spec.Customers-1))
		}
		if spec.Products > 0 {
			o.ProductID = int64(f.Int(1, spec.Products))
		}
		t.Orders = append(t.Orders, o)
	}

	return t
}
