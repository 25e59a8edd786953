//-------------------------------------------------------------------------
//
// salesdash - resilient e-commerce analytics dataset
//
// Copyright (c) 2025 - 2026, the salesdash authors
// This software is released under the MIT License
//
//-------------------------------------------------------------------------

// Package loader orchestrates dataset availability: it probes for a
// writable store location, builds the store when missing, verifies the
// schema, reads the joined dataset, and degrades to a deterministic
// in-memory dataset when the store is unusable. Load never fails.
package loader

import (
	"context"
	"errors"
	"os"
	"sync"

	"github.com/salesdash/salesdash/internal/dataset"
	"github.com/salesdash/salesdash/internal/datagen"
	"github.com/salesdash/salesdash/internal/logging"
	"github.com/salesdash/salesdash/internal/store"
)

// Source identifies which path produced a loaded dataset.
type Source string

const (
	// SourceStore means the dataset was read from the persisted store.
	SourceStore Source = "store"
	// SourceSynthetic means the dataset came from the in-memory fallback.
	SourceSynthetic Source = "synthetic"
)

// Result is a loaded dataset together with how it was obtained. Builds
// counts the build invocations performed during the load, which bounds
// the rebuild work observable in tests.
type Result struct {
	Dataset *dataset.Dataset
	Source  Source
	Path    string
	Builds  int
}

type cacheKey struct {
	path string
	spec datagen.Spec
}

// Loader loads the joined dataset, caching results per
// (store path, generation spec).
type Loader struct {
	candidates []string
	spec       datagen.Spec

	// Replaceable in tests to observe the rebuild cycle.
	build func(ctx context.Context, path string, t datagen.Tables) error
	read  func(ctx context.Context, path string) ([]dataset.Row, error)

	mu    sync.RWMutex
	cache map[cacheKey]*Result
}

// New creates a Loader over the given candidate store paths. The same
// generation parameters drive store builds and the synthetic fallback,
// so the dataset is identical regardless of which path produced it.
func New(candidates []string, spec datagen.Spec) *Loader {
	return &Loader{
		candidates: candidates,
		spec:       spec,
		build:      store.Build,
		read:       readStore,
		cache:      make(map[cacheKey]*Result),
	}
}

// readStore opens the store, verifies the schema once, and reads the
// joined dataset. The connection is released on every exit path. A
// store that cannot even be opened reports as a schema error: its
// schema could not be inspected.
func readStore(ctx context.Context, path string) ([]dataset.Row, error) {
	db, err := store.Open(path)
	if err != nil {
		return nil, &store.SchemaError{Err: err}
	}
	defer db.Close()

	if err := store.CheckSchema(ctx, db); err != nil {
		return nil, err
	}
	return store.ReadJoined(ctx, db)
}

// Load returns the joined dataset, from cache when a previous load used
// the same store path and generation spec. It never returns an error:
// the synthetic fallback is the guaranteed terminal success path.
func (l *Loader) Load(ctx context.Context) *Result {
	path := store.FirstWritable(l.candidates)
	key := cacheKey{path: path, spec: l.spec}

	l.mu.RLock()
	cached := l.cache[key]
	l.mu.RUnlock()
	if cached != nil {
		return cached
	}

	res := l.loadFrom(ctx, path)

	l.mu.Lock()
	l.cache[key] = res
	l.mu.Unlock()
	return res
}

func (l *Loader) loadFrom(ctx context.Context, path string) *Result {
	builds := 0

	var tables *datagen.Tables
	rebuild := func() error {
		if tables == nil {
			t := datagen.Generate(l.spec)
			tables = &t
		}
		builds++
		return l.build(ctx, path, *tables)
	}

	if _, err := os.Stat(path); err != nil {
		logging.Info().Str("path", path).Msg("Store missing, building")
		if err := rebuild(); err != nil {
			logging.Warn().Err(err).Msg("Initial store build failed")
			return l.synthetic(path, builds)
		}
	}

	rows, err := l.read(ctx, path)

	var schemaErr *store.SchemaError
	if err != nil && errors.As(err, &schemaErr) {
		logging.Warn().Err(err).Msg("Store schema mismatch, rebuilding")
		if berr := rebuild(); berr != nil {
			logging.Warn().Err(berr).Msg("Store rebuild failed")
			return l.synthetic(path, builds)
		}
		rows, err = l.read(ctx, path)
	}

	if err != nil {
		// Exactly one unconditional rebuild-and-retry bounds the work
		// done on a persistently broken store.
		logging.Warn().Err(err).Msg("Store read failed, rebuilding once")
		if berr := rebuild(); berr != nil {
			logging.Warn().Err(berr).Msg("Store rebuild failed")
			return l.synthetic(path, builds)
		}
		rows, err = l.read(ctx, path)
	}

	if err != nil {
		logging.Warn().Err(err).Msg("Store read failed after rebuild")
		return l.synthetic(path, builds)
	}

	logging.Info().
		Str("path", path).
		Int("rows", len(rows)).
		Msg("Dataset loaded from store")

	return &Result{
		Dataset: dataset.New(rows),
		Source:  SourceStore,
		Path:    path,
		Builds:  builds,
	}
}

func (l *Loader) synthetic(path string, builds int) *Result {
	logging.Warn().
		Uint64("seed", l.spec.Seed).
		Int("orders", l.spec.Orders).
		Msg("Store unusable, serving synthetic dataset")

	return &Result{
		Dataset: dataset.Derive(datagen.Generate(l.spec)),
		Source:  SourceSynthetic,
		Path:    path,
		Builds:  builds,
	}
}
