// Package pathutil resolves input table paths and keeps figure output inside
// its configured directory.
package pathutil

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// ErrOutsideDir is returned when a figure path leaves its directory.
var ErrOutsideDir = errors.New("path is outside the figure directory")

// RedactPath reduces a full path to .../<parent>/<basename> for logs.
func RedactPath(path string) string {
	if path == "" {
		return ""
	}
	parent, base := filepath.Split(filepath.Clean(path))
	parent = filepath.Base(parent)
	if parent == "." || parent == string(filepath.Separator) {
		return base
	}
	return ".../" + parent + "/" + base
}

// Resolve joins a relative name onto base. Absolute names are returned cleaned.
func Resolve(base, name string) string {
	if name == "" {
		return ""
	}
	if filepath.IsAbs(name) || base == "" {
		return filepath.Clean(name)
	}
	return filepath.Join(base, name)
}

// Within checks that path stays inside dir once both are made absolute and
// symlinks are followed. Neither needs to exist yet.
func Within(dir, path string) error {
	if path == "" {
		return fmt.Errorf("figure path is empty")
	}
	root, err := realPath(dir)
	if err != nil {
		return err
	}
	target, err := realPath(path)
	if err != nil {
		return err
	}

	rel, err := filepath.Rel(root, target)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return fmt.Errorf("%w: %s", ErrOutsideDir, RedactPath(target))
	}
	return nil
}

// realPath makes p absolute and follows symlinks on its longest existing
// prefix. The missing tail is appended unchanged.
func realPath(p string) (string, error) {
	abs, err := filepath.Abs(p)
	if err != nil {
		return "", fmt.Errorf("resolve %s: %w", RedactPath(p), err)
	}

	var tail []string
	head := abs
	for {
		resolved, err := filepath.EvalSymlinks(head)
		if err == nil {
			return filepath.Join(append([]string{resolved}, tail...)...), nil
		}
		parent := filepath.Dir(head)
		if parent == head {
			return abs, nil
		}
		tail = append([]string{filepath.Base(head)}, tail...)
		head = parent
	}
}
