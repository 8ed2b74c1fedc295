// Package builder assembles a Protein from one result directory's reports.
package builder

import (
	"context"
	"fmt"

	"protein-annotator/internal/parser"
	"protein-annotator/internal/protein"
	"protein-annotator/internal/reconcile"
	"protein-annotator/internal/source"
	"protein-annotator/internal/textutil"
	"protein-annotator/internal/worker"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

// Options controls a build.
type Options struct {
	// MaxAlignments caps the alignment records read, and so the annotation fetches.
	MaxAlignments int
	// ShowAlignments keeps the viewer's alignment colouring enabled.
	ShowAlignments bool
	// Workers is the number of concurrent annotation fetches; 1 is sequential.
	Workers int
	// Palette supplies colours and labels; nil means protein.DefaultPalette.
	Palette *protein.Palette
}

// Builder runs the build pipeline against a report source.
type Builder struct {
	reports     source.Reports
	annotations source.AnnotationLookup
	opts        Options
}

// New creates a Builder.
func New(reports source.Reports, annotations source.AnnotationLookup, opts Options) *Builder {
	if opts.Palette == nil {
		opts.Palette = protein.DefaultPalette()
	}
	if opts.Workers < 1 {
		opts.Workers = 1
	}
	return &Builder{
		reports:     reports,
		annotations: annotations,
		opts:        opts,
	}
}

var reportKinds = []source.Kind{
	source.Fasta,
	source.Summary,
	source.Alignments,
	source.Surface,
	source.Conservation,
}

// Build downloads and parses every report of result directory id. Any failed
// download aborts the build; malformed report lines are skipped.
func (b *Builder) Build(ctx context.Context, id string) (*protein.Protein, error) {
	if id == "" {
		return nil, ErrMissingInput
	}

	reports, err := b.fetchReports(ctx, id)
	if err != nil {
		return nil, err
	}

	p := protein.New(b.opts.Palette)
	p.Label, p.Sequence = parser.ParseSequence(reports[source.Fasta])
	if p.Sequence == "" {
		return nil, ErrEmptySequence
	}

	summary := parser.NewSummaryParser(p.Palette)
	if missing := summary.Parse(reports[source.Summary], p); len(missing) > 0 {
		log.Warn().Strs("sections", missing).Str("dir", id).Msg("Summary sections not found")
	}

	entries := parser.ParseAlignments(reports[source.Alignments], parser.AlignmentOptions{
		Limit:          b.opts.MaxAlignments,
		ShowAlignments: b.opts.ShowAlignments,
	})
	aligned, err := b.Align(ctx, entries)
	if err != nil {
		return nil, err
	}
	p.Alignments = append(p.Alignments, aligned...)

	p.Tracks = append(p.Tracks,
		parser.ParseSurface(reports[source.Surface], p.Palette),
		parser.ParseConservation(reports[source.Conservation], p.Palette),
	)

	log.Info().
		Str("dir", id).
		Int("residues", len(p.Sequence)).
		Int("tracks", len(p.Tracks)).
		Int("features", len(p.Features)).
		Int("alignments", len(p.Alignments)).
		Msg("Protein built")

	return p, nil
}

// fetchReports downloads the independent reports concurrently.
func (b *Builder) fetchReports(ctx context.Context, id string) (map[source.Kind]string, error) {
	texts := make([]string, len(reportKinds))

	g, gctx := errgroup.WithContext(ctx)
	for i, kind := range reportKinds {
		i, kind := i, kind
		g.Go(func() error {
			text, err := b.reports.Fetch(gctx, id, kind)
			if err != nil {
				return &RetrievalError{Stage: kind.String(), Err: err}
			}
			texts[i] = text
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := make(map[source.Kind]string, len(reportKinds))
	for i, kind := range reportKinds {
		out[kind] = texts[i]
	}
	return out, nil
}

// Align resolves and reconciles the annotation of every entry. Entries keep
// their order whatever order the fetches complete in.
func (b *Builder) Align(ctx context.Context, entries []protein.AlignmentEntry) ([]protein.AlignmentEntry, error) {
	if len(entries) == 0 {
		return nil, nil
	}

	type job struct {
		n     int
		entry protein.AlignmentEntry
	}
	jobs := make([]job, len(entries))
	for i, e := range entries {
		jobs[i] = job{n: i + 1, entry: e}
	}

	pool := worker.NewPool[job, protein.AlignmentEntry](b.opts.Workers,
		func(ctx context.Context, j job) (protein.AlignmentEntry, error) {
			e := j.entry
			annotation, err := b.annotation(ctx, e.Label)
			if err != nil {
				return e, &RetrievalError{Stage: fmt.Sprintf("annotation for %s (%d)", e.Label, j.n), Err: err}
			}
			// e.Start is ignored by Reconcile: e.Gaps are already anchor-relative.
			e.SecondaryStructure = reconcile.Reconcile(annotation, e.Start, e.FragmentStart, e.Gaps, e.Sequence)

			log.Debug().
				Str("structure", e.Label).
				Str("description", textutil.Truncate(e.Description, 40)).
				Int("annotation", len(annotation)).
				Int("reconciled", len(e.SecondaryStructure)).
				Msg("Alignment reconciled")
			return e, nil
		},
	).FailFast()

	tasks := pool.Execute(ctx, jobs)
	if err := worker.FirstError(ctx, tasks); err != nil {
		return nil, err
	}

	out := make([]protein.AlignmentEntry, len(tasks))
	for i, t := range tasks {
		out[i] = t.Result
	}
	return out, nil
}

// annotation fetches and unwraps the annotation report for key. An entry
// without a structure key has no annotation.
func (b *Builder) annotation(ctx context.Context, key string) (string, error) {
	if key == "" || b.annotations == nil {
		return "", nil
	}
	raw, err := b.annotations.Annotation(ctx, key)
	if err != nil {
		return "", err
	}
	return parser.ParseAnnotation(raw), nil
}
