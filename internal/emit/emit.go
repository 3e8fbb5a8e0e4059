// Package emit writes generated files below a root directory.
package emit

import (
	"os"
	"path/filepath"

	"github.com/unihub/apispec/internal/specerrors"
)

// File is one generated output. Name is relative to the root directory and
// uses forward slashes.
type File struct {
	Name    string
	Content []byte
}

// Write creates root and every parent directory needed, then writes files
// in order, overwriting existing ones. It returns the paths written. The
// first failure stops the run with a *specerrors.IOError.
func Write(root string, files []File) ([]string, error) {
	if err := os.MkdirAll(root, 0755); err != nil {
		return nil, &specerrors.IOError{Op: "mkdir", Path: root, Cause: err}
	}

	written := make([]string, 0, len(files))
	for _, f := range files {
		path := filepath.Join(root, filepath.FromSlash(f.Name))
		if dir := filepath.Dir(path); dir != root {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return written, &specerrors.IOError{Op: "mkdir", Path: dir, Cause: err}
			}
		}
		if err := os.WriteFile(path, f.Content, 0644); err != nil {
			return written, &specerrors.IOError{Op: "write", Path: path, Cause: err}
		}
		written = append(written, path)
	}
	return written, nil
}
