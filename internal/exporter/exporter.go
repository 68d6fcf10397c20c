// Package exporter implements the selective tree-export engine: it
// materializes classification-flagged catalog entries into a directory tree
// on local storage, grouped by the interest set that flagged each entry.
// Flagged files are saved under an identifier-prefixed name; flagged
// directories are rebuilt recursively from the catalog's parent/child
// relation.
package exporter

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/marlowe/exhume/internal/catalog"
	"github.com/marlowe/exhume/internal/fileutil"
	"github.com/marlowe/exhume/internal/pipeline"
)

// Catalog resolves entries and enumerates directory children. Children are
// returned in the catalog's natural order; the engine imposes no sorting.
type Catalog interface {
	Resolve(ctx context.Context, id int64) (catalog.Entry, error)
	Children(ctx context.Context, parentID int64) ([]catalog.Entry, error)
}

// HitSource supplies the current list of classification hits.
type HitSource interface {
	InterestingHits(ctx context.Context) ([]catalog.Hit, error)
}

// Copier streams an entry's full content to a destination path, creating
// the file and overwriting any existing one.
type Copier interface {
	CopyContent(ctx context.Context, id int64, destPath string) error
}

// Logger receives leveled progress messages. Logging never influences
// control flow; a nil-safe no-op implementation is substituted when the
// engine is built without one.
type Logger interface {
	LogDebug(message string)
	LogInfo(message string)
	LogWarn(message string)
	LogError(message string)
}

type nopLogger struct{}

func (nopLogger) LogDebug(string) {}
func (nopLogger) LogInfo(string)  {}
func (nopLogger) LogWarn(string)  {}
func (nopLogger) LogError(string) {}

// State tracks the engine through one run.
type State int

const (
	StateUnconfigured State = iota
	StateConfigured
	StateRunning
	StateSucceeded
	StateFailed
)

// Engine exports one hit list per run. It holds no global state: the output
// root and per-run aggregate status live on the instance, so independent
// engines never interfere. Run is not reentrant; a single pipeline thread
// owns each instance.
type Engine struct {
	catalog  Catalog
	hits     HitSource
	copier   Copier
	log      Logger
	root     string
	state    State
	failures []string
}

// New creates an engine over the given collaborators. A nil logger
// discards messages.
func New(cat Catalog, hits HitSource, copier Copier, log Logger) *Engine {
	if log == nil {
		log = nopLogger{}
	}
	return &Engine{
		catalog: cat,
		hits:    hits,
		copier:  copier,
		log:     log,
		state:   StateUnconfigured,
	}
}

// Identify returns the engine's static module metadata.
func (e *Engine) Identify() pipeline.Identity {
	return pipeline.Identity{
		Name:        "save-interesting-items",
		Description: "Exports flagged files and directory subtrees to an output directory, grouped by interest set",
		Version:     "1.0.0",
	}
}

// Configure stores the output root path, stripping one pair of surrounding
// quotes if present (arguments sourced from XML pipeline configuration
// arrive quoted). An empty argument is logged but not rejected here: an
// unconfigured export stage must not halt the surrounding pipeline, so the
// failure surfaces later, from Run, when the empty path cannot be created.
// Configure never fails and may be called again after a run to reuse the
// engine.
func (e *Engine) Configure(arg string) pipeline.Status {
	root := strings.TrimSpace(arg)
	if len(root) >= 2 && root[0] == '"' && root[len(root)-1] == '"' {
		root = root[1 : len(root)-1]
	}

	if root == "" {
		e.log.LogWarn("export: missing output directory argument")
	} else {
		e.log.LogInfo(fmt.Sprintf("export: output directory %s", root))
	}

	e.root = root
	e.state = StateConfigured
	e.failures = nil
	return pipeline.StatusOK
}

// Run exports every current hit. The output root is created first; if that
// fails nothing else is attempted. Each hit is then resolved and exported
// once per set label it carries, and any failure is confined to that
// hit/label unit: it is logged, the run's aggregate status is downgraded,
// and processing continues. Run returns the aggregate status.
func (e *Engine) Run(ctx context.Context) pipeline.Status {
	e.state = StateRunning
	e.failures = nil

	if err := fileutil.EnsureWritableDir(e.root); err != nil {
		e.log.LogError(fmt.Sprintf("export: output directory unusable: %v", err))
		e.state = StateFailed
		return pipeline.StatusFailed
	}

	hits, err := e.hits.InterestingHits(ctx)
	if err != nil {
		e.log.LogError(fmt.Sprintf("export: list hits: %v", err))
		e.state = StateFailed
		return pipeline.StatusFailed
	}

	e.log.LogInfo(fmt.Sprintf("export: found %d interesting item(s)", len(hits)))

	status := pipeline.StatusOK
	for _, hit := range hits {
		entry, err := e.catalog.Resolve(ctx, hit.EntryID)
		if err != nil {
			e.fail(fmt.Sprintf("entry %d: %v", hit.EntryID, err))
			status = pipeline.StatusFailed
			continue
		}

		for _, label := range hit.Labels {
			var err error
			if entry.Kind == catalog.KindDirectory {
				err = e.exportDirectory(ctx, entry, label)
			} else {
				err = e.exportFile(ctx, entry, label)
			}
			if err != nil {
				e.fail(fmt.Sprintf("entry %d (%s) in set %q: %v", entry.ID, entry.Name, label, err))
				status = pipeline.StatusFailed
			}
		}
	}

	if status == pipeline.StatusOK {
		e.state = StateSucceeded
	} else {
		e.state = StateFailed
	}
	return status
}

// Teardown releases nothing; the engine holds no resources across runs.
func (e *Engine) Teardown() pipeline.Status {
	return pipeline.StatusOK
}

// State returns the engine's current lifecycle state.
func (e *Engine) State() State {
	return e.state
}

// Failures returns the per-unit failure messages recorded by the last Run,
// in occurrence order.
func (e *Engine) Failures() []string {
	return e.failures
}

func (e *Engine) fail(msg string) {
	e.log.LogError("export: " + msg)
	e.failures = append(e.failures, msg)
}

// exportFile copies one flagged file to its identifier-prefixed destination
// under the set label's directory.
func (e *Engine) exportFile(ctx context.Context, entry catalog.Entry, label string) error {
	dest := FilePath(e.root, label, entry)
	if err := e.copier.CopyContent(ctx, entry.ID, dest); err != nil {
		return fmt.Errorf("copy file: %w", err)
	}
	e.log.LogInfo(fmt.Sprintf("export: saved %s", dest))
	return nil
}

// exportDirectory rebuilds one flagged directory's entire subtree. The
// identifier prefix is applied once, at the top of the hit's own subtree;
// descendants keep their bare names below the content directory. Children
// are discovered by querying the catalog's parent/child relation level by
// level, never by listing anything already written to output storage. An
// error aborts this subtree only; siblings already written stay in place.
func (e *Engine) exportDirectory(ctx context.Context, entry catalog.Entry, label string) error {
	_, content := DirPaths(e.root, label, entry)
	if err := os.MkdirAll(content, 0755); err != nil {
		return fmt.Errorf("create directory %s: %w", content, err)
	}

	if err := e.exportChildren(ctx, entry.ID, content); err != nil {
		return err
	}

	e.log.LogInfo(fmt.Sprintf("export: saved directory %s", content))
	return nil
}

func (e *Engine) exportChildren(ctx context.Context, parentID int64, dir string) error {
	children, err := e.catalog.Children(ctx, parentID)
	if err != nil {
		return fmt.Errorf("list children of entry %d: %w", parentID, err)
	}

	seen := make(map[string]bool, len(children))
	for _, child := range children {
		dest := filepath.Join(dir, child.Name)

		// Sibling names below the top level are assumed unique, which the
		// catalog does not guarantee. Warn before a duplicate overwrites
		// an earlier sibling of this run.
		if seen[child.Name] {
			e.log.LogWarn(fmt.Sprintf("export: duplicate sibling name %q under %s", child.Name, dir))
		}
		seen[child.Name] = true

		if child.Kind == catalog.KindDirectory {
			e.log.LogDebug(fmt.Sprintf("export: descending into entry %d (%s)", child.ID, child.Name))
			if err := os.MkdirAll(dest, 0755); err != nil {
				return fmt.Errorf("create directory %s: %w", dest, err)
			}
			if err := e.exportChildren(ctx, child.ID, dest); err != nil {
				return err
			}
			continue
		}

		if err := e.copier.CopyContent(ctx, child.ID, dest); err != nil {
			return fmt.Errorf("copy entry %d to %s: %w", child.ID, dest, err)
		}
	}

	return nil
}
