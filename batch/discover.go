package batch

import (
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
)

// DefaultPattern matches script files.
const DefaultPattern = "*.txt"

// Discover returns the files under roots whose base names match pattern,
// sorted and without duplicates. A root that is a regular file is used as
// is. Subdirectories are searched only if recursive is set.
func Discover(roots []string, pattern string, recursive bool) ([]string, error) {
	if pattern == "" {
		pattern = DefaultPattern
	}

	if _, err := filepath.Match(pattern, ""); err != nil {
		return nil, ErrDiscover.Wrap(err).With(slog.String("pattern", pattern))
	}

	var files []string

	for _, root := range roots {
		found, err := discoverRoot(root, pattern, recursive)
		if err != nil {
			return nil, ErrDiscover.Wrap(err).With(slog.String("root", root))
		}

		files = append(files, found...)
	}

	slices.Sort(files)
	files = slices.Compact(files)

	if len(files) == 0 {
		return nil, ErrNoFiles.With(
			slog.Any("roots", roots),
			slog.String("pattern", pattern),
		)
	}

	return files, nil
}

func discoverRoot(root, pattern string, recursive bool) ([]string, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, err
	}

	if !info.IsDir() {
		return []string{filepath.Clean(root)}, nil
	}

	var files []string

	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if d.IsDir() {
			if path != root && !recursive {
				return filepath.SkipDir
			}

			return nil
		}

		if ok, _ := filepath.Match(pattern, d.Name()); ok && d.Type().IsRegular() {
			files = append(files, path)
		}

		return nil
	})

	return files, err
}
