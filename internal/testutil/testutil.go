//-------------------------------------------------------------------------
//
// salesdash - resilient e-commerce analytics dataset
//
// Copyright (c) 2025 - 2026, the salesdash authors
// This software is released under the MIT License
//
//-------------------------------------------------------------------------

// Package testutil provides store fixtures for tests.
package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

// StorePath returns a store path inside a fresh temporary directory.
func StorePath(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "ecommerce.db")
}

// UnwritablePath returns a store path that can never be created: its
// parent is a regular file, so directory creation fails regardless of
// process privileges.
func UnwritablePath(t *testing.T) string {
	t.Helper()
	blocker := filepath.Join(t.TempDir(), "blocker")
	if err := os.WriteFile(blocker, []byte("x"), 0o644); err != nil {
		t.Fatalf("Failed to create blocker file: %v", err)
	}
	return filepath.Join(blocker, "ecommerce.db")
}

// CorruptStore replaces the file at path with bytes that are not a
// SQLite database.
func CorruptStore(t *testing.T, path string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("Failed to create store dir: %v", err)
	}
	if err := os.WriteFile(path, []byte("this is not a database"), 0o644); err != nil {
		t.Fatalf("Failed to corrupt store: %v", err)
	}
}
