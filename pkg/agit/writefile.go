package agit

import (
	"bytes"
	"os"
	"path/filepath"
)

func writeWorkingFile(workDir, relPath string, content []byte) error {
	full := filepath.Join(workDir, relPath)
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return err
	}
	return os.WriteFile(full, content, 0o644)
}

func containsConflictMarkers(content []byte) bool {
	return bytes.Contains(content, []byte("<<<<<<<"))
}
