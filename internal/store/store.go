// Package store persists the generated tables in an embedded SQLite
// database and reads back the joined dataset. Connections are scoped to
// a single operation: opened, used, and closed on every exit path.
package store

import (
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
)

// dateLayout is the ISO date format used for all persisted dates.
const dateLayout = "2006-01-02"

// Open opens the SQLite store at path. SQLite creates an empty file
// for a path that does not exist yet; callers decide whether that
// matters before opening.
func Open(path string) (*sqlx.DB, error) {
	db, err := sqlx.Connect("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open store at %s: %w", path, err)
	}
	// Single-writer batch workload; one connection avoids SQLITE_BUSY.
	db.SetMaxOpenConns(1)
	return db, nil
}

func formatDate(t time.Time) string {
	return t.Format(dateLayout)
}

func parseDate(s string) (time.Time, error) {
	return time.Parse(dateLayout, s)
}
