// Package catalog provides access to the indexed file catalog recovered from
// a source image. Entries form a parent/child tree addressed by numeric
// identifiers; classification results are recorded as artifacts with
// attributes, mirroring the analysis blackboard that produced them.
package catalog

import "errors"

// ErrEntryNotFound is returned when a catalog identifier does not resolve
// to any entry.
var ErrEntryNotFound = errors.New("catalog entry not found")

// Kind distinguishes the two entry kinds the exporter cares about. The
// catalog schema admits only these two values.
type Kind string

const (
	KindFile      Kind = "file"
	KindDirectory Kind = "directory"
)

// Entry is a read-only view of one catalog record.
type Entry struct {
	// ID is the catalog-assigned identifier, unique across the catalog.
	ID int64

	// Name is the display name. Names are not unique; many entries may
	// share one.
	Name string

	// Kind is the entry kind.
	Kind Kind

	// ParentID identifies the containing directory entry. Root-level
	// entries carry 0.
	ParentID int64
}

// Hit is one catalog entry flagged by upstream classification. An entry
// flagged under several interest sets carries one label per set, in the
// order the classification attributes were recorded.
type Hit struct {
	EntryID int64
	Labels  []string
}

// Artifact and attribute type names used by the classification tables.
const (
	ArtifactInterestingItem = "interesting_item"
	AttributeSetName        = "set_name"
)
