// Package discover enumerates candidate C/C++ translation units under a
// directory tree.
package discover

import (
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
)

// sourceExts are the extensions treated as C/C++ source or header files.
var sourceExts = map[string]bool{
	".c":   true,
	".cc":  true,
	".cpp": true,
	".cxx": true,
	".h":   true,
	".hh":  true,
	".hpp": true,
}

// Sources walks root and returns every file whose extension matches
// sourceExts, sorted for stable output. Directories whose name starts
// with '.' are skipped entirely, per spec.md §1's description of the
// tool running against a collaborator's working tree (editor/VCS
// metadata directories should never be descended into). The extension
// matching itself mirrors the teacher's flat suffix check in
// cmd/sve-as/main.go (strings.HasSuffix(fname, ".asm")); the teacher
// has no directory-walking code of its own to mirror.
func Sources(root string) ([]string, error) {
	var found []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if d.Name() != "." && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if sourceExts[strings.ToLower(filepath.Ext(path))] {
			found = append(found, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(found)
	return found, nil
}
