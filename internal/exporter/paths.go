package exporter

import (
	"fmt"
	"path/filepath"

	"github.com/marlowe/exhume/internal/catalog"
)

// Destination path rules. Both are rooted at <root>/<label>/ and prefix the
// top-level segment with the entry identifier, which is what keeps exports
// collision-free when many flagged entries share a display name.

// FilePath returns the destination for a flagged file entry:
// <root>/<label>/<id>_<name>.
func FilePath(root, label string, e catalog.Entry) string {
	return filepath.Join(root, label, fmt.Sprintf("%d_%s", e.ID, e.Name))
}

// DirPaths returns the two destination levels for a flagged directory entry:
// the identifier-prefixed outer directory <root>/<label>/<id>_<name>, and
// the content directory <root>/<label>/<id>_<name>/<name> nested inside it.
// Descendants are placed under the content directory with their bare names,
// so the original directory name survives unprefixed one level down.
func DirPaths(root, label string, e catalog.Entry) (outer, content string) {
	outer = filepath.Join(root, label, fmt.Sprintf("%d_%s", e.ID, e.Name))
	content = filepath.Join(outer, e.Name)
	return outer, content
}
