package store

import (
	"os"
	"path/filepath"

	"github.com/salesdash/salesdash/internal/logging"
)

const probeMarker = ".write_probe"

// LastResort is the store path used when no configured candidate is
// writable.
func LastResort() string {
	return filepath.Join(os.TempDir(), "salesdash", "ecommerce.db")
}

// FirstWritable probes each candidate path in order and returns the
// first whose parent directory can be created and written. When every
// probe fails it returns LastResort rather than an error. The probe
// marker file is always removed on success.
func FirstWritable(candidates []string) string {
	for _, c := range candidates {
		if c == "" {
			continue
		}
		if probeWritable(c) {
			return c
		}
		logging.Debug().Str("path", c).Msg("Store candidate not writable")
	}
	return LastResort()
}

func probeWritable(path string) bool {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return false
	}
	marker := filepath.Join(dir, probeMarker)
	if err := os.WriteFile(marker, []byte("ok"), 0o644); err != nil {
		return false
	}
	_ = os.Remove(marker)
	return true
}
