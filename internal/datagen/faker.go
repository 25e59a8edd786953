//-------------------------------------------------------------------------
//
// salesdash - resilient e-commerce analytics dataset
//
// Copyright (c) 2025 - 2026, the salesdash authors
// This software is released under the MIT License
//
//-------------------------------------------------------------------------

// Package datagen provides deterministic synthetic data generation.
package datagen

import (
	"math"
	"time"

	"github.com/brianvoe/gofakeit/v7"
)

// Faker provides random data generation using gofakeit. All draws come
// from a single seeded source, so two Fakers built with the same seed
// produce the same sequence.
type Faker struct {
	faker *gofakeit.Faker
}

// NewFaker creates a new Faker with a time-based seed.
func NewFaker() *Faker {
	return &Faker{
		faker: gofakeit.New(uint64(time.Now().UnixNano())),
	}
}

// NewFakerWithSeed creates a new Faker with a specific seed for reproducibility.
func NewFakerWithSeed(seed uint64) *Faker {
	return &Faker{
		faker: gofakeit.New(seed),
	}
}

// Int generates a random integer between min and max (inclusive).
func (f *Faker) Int(min, max int) int {
	return f.faker.IntRange(min, max)
}

// Int64 generates a random int64 between min and max (inclusive).
func (f *Faker) Int64(min, max int64) int64 {
	return int64(f.faker.IntRange(int(min), int(max)))
}

// Float64 generates a random float64 between min and max.
func (f *Faker) Float64(min, max float64) float64 {
	return f.faker.Float64Range(min, max)
}

// Normal generates a normally distributed float64 with the given mean
// and standard deviation, using a Box-Muller transform over two uniform
// draws so the result stays a pure function of the seed.
func (f *Faker) Normal(mean, stddev float64) float64 {
	u1 := f.faker.Float64Range(0, 1)
	u2 := f.faker.Float64Range(0, 1)
	if u1 < 1e-12 {
		u1 = 1e-12
	}
	z := math.Sqrt(-2*math.Log(u1)) * math.Cos(2*math.Pi*u2)
	return mean + stddev*z
}

// Date generates a random date within [start, end].
func (f *Faker) Date(start, end time.Time) time.Time {
	return f.faker.DateRange(start, end)
}

// Choose returns a random element from the given slice.
func Choose[T any](f *Faker, items []T) T {
	if len(items) == 0 {
		var zero T
		return zero
	}
	return items[f.Int(0, len(items)-1)]
}

// ChooseWeighted returns a random element based on weights.
func ChooseWeighted[T any](f *Faker, items []T, weights []int) T {
	if len(items) == 0 || len(weights) == 0 {
		var zero T
		return zero
	}

	totalWeight := 0
	for _, w := range weights {
		totalWeight += w
	}

	r := f.Int(1, totalWeight)
	cumulative := 0
	for i, w := range weights {
		cumulative += w
		if r <= cumulative {
			return items[i]
		}
	}

	return items[len(items)-1]
}

// Round2 rounds a float to 2 decimal places.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// Clip bounds v to [min, max].
func Clip(v, min, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
