package transcript

import (
	"fmt"
	"os"
	"path/filepath"
)

// WriteFile saves body to path as UTF-8 text, creating any missing parent
// directories first. Both transcripts and error descriptions go through
// here so a failed run is as discoverable as a successful one.
func WriteFile(path, body string) error {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output directory %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
