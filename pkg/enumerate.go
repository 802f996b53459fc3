package bulkfilehash

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
)

// EnumerateFiles expands the argument paths into the sorted list of regular
// files to hash. Missing and non-regular arguments produce a warning on warn
// and are dropped; directories are walked recursively. Arguments naming the
// same file twice yield two entries. The returned slice is sorted by full
// path.
func EnumerateFiles(paths []string, filter *PathFilter, warn io.Writer) []string {
	defer VerboseEnter()()

	var files []string

	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			fmt.Fprintf(warn, "Warning: path not found: %s\n", path)
			continue
		}

		switch {
		case info.Mode().IsRegular():
			if filter.Excluded(path) {
				VerboseLog(2, "excluded by filter: %s", path)
				continue
			}
			files = append(files, path)
		case info.IsDir():
			files = append(files, walkDirectory(path, filter, warn)...)
		default:
			fmt.Fprintf(warn, "Warning: skipping non-regular path: %s\n", path)
		}
	}

	sort.Strings(files)
	VerboseLog(1, "enumerated %d files", len(files))

	return files
}

// walkDirectory collects the regular files under root. Excluded directories
// are skipped wholesale; the root itself is never excluded since the caller
// named it explicitly.
func walkDirectory(root string, filter *PathFilter, warn io.Writer) []string {
	var files []string

	filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			fmt.Fprintf(warn, "Warning: cannot access %s: %v\n", path, err)
			return nil
		}

		if d.IsDir() {
			if path != root && filter.Excluded(path) {
				VerboseLog(2, "excluded directory: %s", path)
				return filepath.SkipDir
			}
			return nil
		}

		// Sockets, devices and symlinks inside a tree are skipped without
		// a warning
		if !d.Type().IsRegular() {
			if IsDebugEnabled("scan") {
				VerboseLog(3, "skipping non-regular entry: %s", path)
			}
			return nil
		}

		if filter.Excluded(path) {
			VerboseLog(2, "excluded by filter: %s", path)
			return nil
		}

		files = append(files, path)
		return nil
	})

	return files
}
