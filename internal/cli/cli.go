package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"protein-annotator/internal/builder"
	"protein-annotator/internal/cache"
	"protein-annotator/internal/config"
	"protein-annotator/internal/reconcile"
	"protein-annotator/internal/source"
	"protein-annotator/internal/textutil"
	"protein-annotator/internal/web"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// Execute runs the CLI application.
func Execute() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	zerolog.SetGlobalLevel(zerolog.InfoLevel)

	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// NewRootCmd builds the command tree.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "protein-annotator",
		Short: "Merge structure prediction reports into one sequence-viewer annotation",
		Long: `Downloads the prediction reports of one result directory (sequence, summary,
structure alignments, surface accessibility, conservation), reconciles the
secondary structure of every aligned reference structure onto the query, and
emits a single JSON annotation object for the sequence viewer.`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if v, _ := cmd.Flags().GetBool("verbose"); v {
				zerolog.SetGlobalLevel(zerolog.DebugLevel)
			}
		},
	}
	rootCmd.PersistentFlags().Bool("verbose", false, "Enable debug logging")

	rootCmd.AddCommand(buildCmd())
	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(reconcileCmd())
	rootCmd.AddCommand(listCmd())
	return rootCmd
}

// pipelineFlags are shared by commands that build proteins.
func pipelineFlags(cmd *cobra.Command) {
	cmd.Flags().String("local", "", "Read reports from this directory instead of the prediction server")
	cmd.Flags().Int("limit", 0, "Maximum number of alignments to read (default from MAX_ALIGNMENTS)")
	cmd.Flags().Bool("show-ali", false, "Keep alignment colouring in the viewer")
	cmd.Flags().Int("workers", 0, "Concurrent annotation downloads (default from WORKER_COUNT)")
}

func buildCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "build <result-dir>",
		Short: "Build the annotation object for one result directory",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output, _ := cmd.Flags().GetString("output")
			pretty, _ := cmd.Flags().GetBool("pretty")
			return runBuild(cmd, args[0], output, pretty)
		},
	}
	pipelineFlags(cmd)
	cmd.Flags().StringP("output", "o", "", "Write JSON to this file instead of stdout")
	cmd.Flags().Bool("pretty", false, "Indent JSON output")
	return cmd
}

func serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve annotation objects over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			addr, _ := cmd.Flags().GetString("addr")
			return runServe(cmd, addr)
		},
	}
	pipelineFlags(cmd)
	cmd.Flags().String("addr", "", "Listen address (default from LISTEN_ADDR)")
	return cmd
}

func reconcileCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reconcile",
		Short: "Reconcile one structure annotation against an alignment",
		Long: `Remaps a structure annotation onto query coordinates. Deletions are given
as start-end pairs, e.g. --gaps 136-138,200-201.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			annotation, _ := cmd.Flags().GetString("annotation")
			start, _ := cmd.Flags().GetInt("start")
			fragmentStart, _ := cmd.Flags().GetInt("fragment-start")
			fragment, _ := cmd.Flags().GetString("fragment")
			gapList, _ := cmd.Flags().GetString("gaps")

			gaps, err := parseGaps(gapList)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), reconcile.Reconcile(annotation, start, fragmentStart, gaps, fragment))
			return nil
		},
	}
	cmd.Flags().String("annotation", "", "Structure annotation string")
	cmd.Flags().Int("start", 1, "1-based query anchor")
	cmd.Flags().Int("fragment-start", 1, "1-based anchor within the structure annotation")
	cmd.Flags().String("fragment", "", "Aligned structure fragment")
	cmd.Flags().String("gaps", "", "Deletion intervals as start-end pairs")
	return cmd
}

func listCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list <root>",
		Short: "List result directories found under a local report tree",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()
			d, err := source.NewDir(args[0], source.Files{Fasta: cfg.FastaFile})
			if err != nil {
				return err
			}
			ids, err := d.Discover()
			if err != nil {
				return err
			}
			for _, id := range ids {
				fmt.Fprintln(cmd.OutOrStdout(), id)
			}
			return nil
		},
	}
}

// setupContext creates a cancellable context with signal handling.
func setupContext() (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigCh
		log.Warn().Msg("Received shutdown signal, cancelling...")
		cancel()
	}()

	return ctx, cancel
}

// newBuilder wires a report source, annotation cache and builder from config
// and command flags.
func newBuilder(cmd *cobra.Command, cfg *config.Config) (*builder.Builder, error) {
	if v, _ := cmd.Flags().GetInt("limit"); v > 0 {
		cfg.MaxAlignments = v
	}
	if v, _ := cmd.Flags().GetBool("show-ali"); v {
		cfg.ShowAlignments = true
	}
	if v, _ := cmd.Flags().GetInt("workers"); v > 0 {
		cfg.WorkerCount = v
	}

	files := source.Files{
		Fasta:        cfg.FastaFile,
		Alignments:   cfg.AlignmentFile,
		Surface:      cfg.SurfaceFile,
		Conservation: cfg.ConservationFile,
	}

	var (
		reports     source.Reports
		annotations source.AnnotationLookup
	)
	if local, _ := cmd.Flags().GetString("local"); local != "" {
		d, err := source.NewDir(local, files)
		if err != nil {
			return nil, fmt.Errorf("open local reports: %w", err)
		}
		reports, annotations = d, d
	} else {
		h := source.NewHTTPSource(source.HTTPOptions{
			ReportBaseURL:     cfg.ReportBaseURL,
			AnnotationBaseURL: cfg.AnnotationBaseURL,
			Files:             files,
			Timeout:           cfg.HTTPTimeout,
			MaxRetries:        cfg.MaxRetries,
		})
		reports, annotations = h, h
	}

	return builder.New(reports, cache.NewAnnotationCache(annotations, cfg.CacheSize), builder.Options{
		MaxAlignments:  cfg.MaxAlignments,
		ShowAlignments: cfg.ShowAlignments,
		Workers:        cfg.WorkerCount,
	}), nil
}

// runBuild handles the `build` command.
func runBuild(cmd *cobra.Command, dir, output string, pretty bool) error {
	ctx, cancel := setupContext()
	defer cancel()

	cfg := config.Load()
	b, err := newBuilder(cmd, cfg)
	if err != nil {
		return err
	}

	log.Info().
		Str("dir", dir).
		Int("max_alignments", cfg.MaxAlignments).
		Int("workers", cfg.WorkerCount).
		Msg("Building protein")

	p, err := b.Build(ctx, dir)
	if err != nil {
		return err
	}

	var data []byte
	if pretty {
		data, err = json.MarshalIndent(p, "", "  ")
	} else {
		data, err = json.Marshal(p)
	}
	if err != nil {
		return fmt.Errorf("encode protein: %w", err)
	}
	data = append(data, '\n')

	if output == "" {
		_, err = cmd.OutOrStdout().Write(data)
		return err
	}
	if err := os.WriteFile(output, data, 0644); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	log.Info().Str("output", output).Str("label", textutil.Truncate(p.Label, 40)).Msg("Protein written")
	return nil
}

// runServe handles the `serve` command.
func runServe(cmd *cobra.Command, addr string) error {
	ctx, cancel := setupContext()
	defer cancel()

	cfg := config.Load()
	if addr == "" {
		addr = cfg.ListenAddr
	}
	b, err := newBuilder(cmd, cfg)
	if err != nil {
		return err
	}
	return web.StartServer(ctx, addr, b)
}

// parseGaps reads "a-b,c-d" into spans.
func parseGaps(s string) ([]textutil.Span, error) {
	var spans []textutil.Span
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		lo, hi, ok := strings.Cut(part, "-")
		if !ok {
			return nil, fmt.Errorf("invalid gap %q: want start-end", part)
		}
		start, err := strconv.Atoi(strings.TrimSpace(lo))
		if err != nil {
			return nil, fmt.Errorf("invalid gap start %q: %w", part, err)
		}
		end, err := strconv.Atoi(strings.TrimSpace(hi))
		if err != nil {
			return nil, fmt.Errorf("invalid gap end %q: %w", part, err)
		}
		spans = append(spans, textutil.Span{Start: start, End: end})
	}
	return spans, nil
}
