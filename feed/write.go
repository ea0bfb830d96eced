package feed

import (
	"fmt"
	"os"
	"path/filepath"
)

// WriteFile replaces the file at path with data. The data is written to a
// temporary file in the same directory and renamed over path, so readers
// see either the previous document or the new one, never a partial write.
// On failure the previous file is left untouched.
func WriteFile(path string, data []byte) (err error) {
	dir := filepath.Dir(path)

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temporary file: %w", err)
	}
	tmpName := tmp.Name()

	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmpName)
		}
	}()

	if _, err = tmp.Write(data); err != nil {
		return fmt.Errorf("failed to write feed: %w", err)
	}
	if err = tmp.Sync(); err != nil {
		return fmt.Errorf("failed to sync feed: %w", err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("failed to close feed: %w", err)
	}
	// CreateTemp uses 0600; feeds are meant to be served
	if err = os.Chmod(tmpName, 0o644); err != nil {
		return fmt.Errorf("failed to set feed permissions: %w", err)
	}
	if err = os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("failed to replace %s: %w", path, err)
	}

	return nil
}
