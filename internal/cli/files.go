package cli

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"psanalyze/internal/script"
)

// resolveFiles expands positional arguments into the list of PowerShell
// files to process. File arguments are taken as-is when they carry a
// recognized extension; directory arguments are expanded to the PowerShell
// files directly inside them, or to the whole tree when recursive is set.
// Recursive with no arguments walks the working directory. The result is
// deduplicated and sorted.
func resolveFiles(args []string, recursive bool) ([]string, error) {
	if len(args) == 0 && recursive {
		args = []string{"."}
	}

	seen := make(map[string]struct{})
	var files []string

	add := func(path string) {
		if _, ok := seen[path]; ok {
			return
		}
		seen[path] = struct{}{}
		files = append(files, path)
	}

	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, fmt.Errorf("cannot access %s: %w", arg, err)
		}

		if !info.IsDir() {
			if !hasScriptExtension(arg) {
				return nil, fmt.Errorf("not a PowerShell file: %s", arg)
			}
			add(arg)
			continue
		}

		found, err := collectDir(arg, recursive)
		if err != nil {
			return nil, err
		}
		for _, f := range found {
			add(f)
		}
	}

	sort.Strings(files)
	return files, nil
}

func collectDir(dir string, recursive bool) ([]string, error) {
	var files []string

	if recursive {
		err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.IsDir() && hasScriptExtension(path) {
				files = append(files, path)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("cannot walk %s: %w", dir, err)
		}
		return files, nil
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("cannot read %s: %w", dir, err)
	}
	for _, e := range entries {
		if !e.IsDir() && hasScriptExtension(e.Name()) {
			files = append(files, filepath.Join(dir, e.Name()))
		}
	}
	return files, nil
}

func hasScriptExtension(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, known := range script.Extensions {
		if ext == known {
			return true
		}
	}
	return false
}
