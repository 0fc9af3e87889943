// Package filex prepares on-disk locations for the local store.
package filex

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// IsInMemoryDSN reports whether dsn names an SQLite database that never
// touches the filesystem.
func IsInMemoryDSN(dsn string) bool {
	return dsn == ":memory:" || strings.Contains(dsn, "mode=memory")
}

// EnsureParentDir creates the directory that will hold the SQLite file at
// path. In-memory DSNs are left alone.
func EnsureParentDir(path string) error {
	if path == "" || IsInMemoryDSN(path) {
		return nil
	}
	path = strings.TrimPrefix(path, "file:")
	if i := strings.IndexByte(path, '?'); i >= 0 {
		path = path[:i]
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("mkdir %s: %w", dir, err)
	}
	return nil
}
