package source

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/rs/zerolog/log"
)

// DefaultSummaryFile is the summary's file name in a local result directory.
const DefaultSummaryFile = "summary.txt"

// AnnotationDir holds per-structure annotation files under a Dir root.
const AnnotationDir = "dssp"

// ErrInvalidPath reports a result directory or structure key that would
// resolve outside the report root.
var ErrInvalidPath = errors.New("invalid report path")

// Dir reads reports from a local tree laid out as
//
//	<root>/<id>/<report files>
//	<root>/dssp/<structure key>
type Dir struct {
	root  string
	files Files
}

// NewDir creates a local report source rooted at root.
func NewDir(root string, files Files) (*Dir, error) {
	root, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolve root path: %w", err)
	}

	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("stat root: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("root is not a directory: %s", root)
	}

	if files.Summary == "" {
		files.Summary = DefaultSummaryFile
	}
	return &Dir{root: root, files: files}, nil
}

// Fetch reads one report from <root>/<id>.
func (d *Dir) Fetch(ctx context.Context, id string, kind Kind) (string, error) {
	if !filepath.IsLocal(id) {
		return "", fmt.Errorf("%w: result directory %q", ErrInvalidPath, id)
	}
	name, err := d.files.name(kind)
	if err != nil {
		return "", err
	}
	return d.read(ctx, filepath.Join(d.root, id, name))
}

// Annotation reads <root>/dssp/<key>.
func (d *Dir) Annotation(ctx context.Context, key string) (string, error) {
	if !filepath.IsLocal(key) {
		return "", fmt.Errorf("%w: structure key %q", ErrInvalidPath, key)
	}
	return d.read(ctx, filepath.Join(d.root, AnnotationDir, key))
}

func (d *Dir) read(ctx context.Context, path string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read report: %w", err)
	}
	log.Debug().Str("path", path).Int("bytes", len(b)).Msg("Read report")
	return string(b), nil
}

// Discover returns the ids of every directory under root that holds a
// sequence report, relative to root and sorted.
func (d *Dir) Discover() ([]string, error) {
	var ids []string

	err := filepath.WalkDir(d.root, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			log.Warn().Err(err).Str("path", path).Msg("Error walking path")
			return nil
		}
		if entry.IsDir() || entry.Name() != d.files.Fasta {
			return nil
		}

		rel, err := filepath.Rel(d.root, filepath.Dir(path))
		if err != nil {
			return nil
		}
		ids = append(ids, filepath.ToSlash(rel))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk directory: %w", err)
	}

	sort.Strings(ids)
	log.Info().Int("count", len(ids)).Str("root", d.root).Msg("Discovered result directories")
	return ids, nil
}
