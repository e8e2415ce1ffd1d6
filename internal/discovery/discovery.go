// Package discovery enumerates PDF files beneath a root directory.
package discovery

import (
	"os"
	"strings"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/util"
)

// pdfExt is matched case-insensitively against file names.
const pdfExt = ".pdf"

// IsPDF reports whether name carries a .pdf extension, ignoring case.
func IsPDF(name string) bool {
	return strings.HasSuffix(strings.ToLower(name), pdfExt)
}

// Enumerate returns every PDF path under root.
//
// The root's direct entries are inspected first: PDF files are kept as-is and
// each subdirectory is walked recursively with the same filter. Failing to list
// the root is fatal. Unreadable directories below it are skipped.
func Enumerate(fsys billy.Filesystem, root string) ([]string, error) {
	entries, err := fsys.ReadDir(root)
	if err != nil {
		return nil, &EnumerationError{Root: root, Cause: err}
	}

	var paths []string
	for _, entry := range entries {
		path := fsys.Join(root, entry.Name())
		switch {
		case entry.IsDir():
			paths = walkDir(fsys, path, paths)
		case IsPDF(entry.Name()):
			paths = append(paths, path)
		}
	}

	return paths, nil
}

// walkDir appends the PDFs found below dir to paths.
func walkDir(fsys billy.Filesystem, dir string, paths []string) []string {
	_ = util.Walk(fsys, dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			// Keep going past unreadable entries.
			return nil
		}
		if !info.IsDir() && IsPDF(info.Name()) {
			paths = append(paths, path)
		}
		return nil
	})
	return paths
}
