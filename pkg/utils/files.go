package utils

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
)

func GetPathInfo(relPath string) (fullPath string, parentDir string, err error) {
	// Convert to absolute path (resolves ../../ and cleans the path)
	fullPath, err = filepath.Abs(relPath)
	if err != nil {
		return "", "", errors.Wrapf(err, "resolving %q", relPath)
	}

	parentDir = filepath.Dir(fullPath)

	return fullPath, parentDir, nil
}

// ReadFile resolves path and returns its contents.
func ReadFile(path string) ([]byte, error) {
	fullPath, _, err := GetPathInfo(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(fullPath)
	if err != nil {
		return nil, errors.Wrapf(err, "reading %q", fullPath)
	}
	return data, nil
}

// WriteFile writes data to path, creating or truncating it.
func WriteFile(path string, data []byte) error {
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.Wrapf(err, "writing %q", path)
	}
	return nil
}

// ReplaceExt returns path with its extension replaced by ext. A path without
// an extension gets ext appended.
func ReplaceExt(path, ext string) string {
	old := filepath.Ext(path)
	if old == "" {
		return path + ext
	}
	return strings.TrimSuffix(path, old) + ext
}
