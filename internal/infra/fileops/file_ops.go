// Where: internal/infra/fileops/file_ops.go
// What: Shared filesystem operations for exports and config files.
// Why: Keep directory creation and atomic replacement in one place.
package fileops

import (
	"fmt"
	"os"
	"path/filepath"
)

func EnsureDir(path string) error {
	return os.MkdirAll(path, 0o755)
}

// WriteFile replaces path with content. The data is written to a temporary
// file in the same directory and renamed into place, so readers never see a
// partially written file.
func WriteFile(path string, content []byte) error {
	return writeFileMode(path, content, 0o644)
}

// WritePrivateFile is WriteFile with owner-only permissions.
func WritePrivateFile(path string, content []byte) error {
	return writeFileMode(path, content, 0o600)
}

func writeFileMode(path string, content []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)
	if err := EnsureDir(dir); err != nil {
		return err
	}
	if info, err := os.Stat(path); err == nil && info.IsDir() {
		return fmt.Errorf("%s is a directory", path)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	cleanup := func() { _ = os.Remove(tmpName) }

	if _, err := tmp.Write(content); err != nil {
		tmp.Close()
		cleanup()
		return err
	}
	if err := tmp.Chmod(perm); err != nil {
		tmp.Close()
		cleanup()
		return err
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return err
	}
	if err := os.Rename(tmpName, path); err != nil {
		cleanup()
		return err
	}
	return nil
}

// Exists reports whether path exists.
func Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
