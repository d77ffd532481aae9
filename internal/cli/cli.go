package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"locparse/internal/config"
	"locparse/internal/filewalker"
	"locparse/internal/locfile"
	"locparse/internal/parser"
	"locparse/internal/store"
	"locparse/internal/worker"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// Execute runs the CLI application.
func Execute() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// NewRootCmd builds the command tree.
func NewRootCmd() *cobra.Command {
	var verbose bool

	rootCmd := &cobra.Command{
		Use:          "locparse",
		Short:        "Parse .resx, .loc.json and .resjson localization files",
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if verbose {
				zerolog.SetGlobalLevel(zerolog.DebugLevel)
			} else {
				zerolog.SetGlobalLevel(zerolog.InfoLevel)
			}
		},
	}
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	rootCmd.AddCommand(parseCmd())
	rootCmd.AddCommand(scanCmd())
	rootCmd.AddCommand(indexCmd())

	return rootCmd
}

// parseFlags are the options shared by every command that parses files.
type parseFlags struct {
	parser                string
	newline               string
	ignoreMissingComments bool
	ignore                []string
}

func (f *parseFlags) register(cmd *cobra.Command, withParser bool) {
	if withParser {
		cmd.Flags().StringVar(&f.parser, "parser", "", "Force a format: resx, loc.json or resjson")
	}
	cmd.Flags().StringVar(&f.newline, "newline", "", "Normalize newlines in .resx values: none, crlf, lf or os")
	cmd.Flags().BoolVar(&f.ignoreMissingComments, "ignore-missing-comments", false, "Do not warn about .resx strings without comments")
	cmd.Flags().StringSliceVar(&f.ignore, "ignore", nil, "String names to leave out (repeatable)")
}

// template turns flags and config into the Options reused for every file of a run.
// The filter is built once so that repeated parses of a file hit the cache.
func (f *parseFlags) template(cmd *cobra.Command, cfg *config.Config) (parser.Options, error) {
	opts := parser.Options{
		Resx: parser.ResxOptions{
			NewlineNormalization:  cfg.NewlineNormalization,
			IgnoreMissingComments: cfg.IgnoreMissingResxComments,
		},
		Logger: log.Logger,
	}

	if f.parser != "" {
		kind, err := parser.ParseKind(f.parser)
		if err != nil {
			return opts, err
		}
		opts.Parser = kind
	}
	if cmd.Flags().Changed("newline") {
		newline, err := locfile.ParseNewlineKind(f.newline)
		if err != nil {
			return opts, err
		}
		opts.Resx.NewlineNormalization = newline
	}
	if cmd.Flags().Changed("ignore-missing-comments") {
		opts.Resx.IgnoreMissingComments = f.ignoreMissingComments
	}
	if len(f.ignore) > 0 {
		names := make(map[string]bool, len(f.ignore))
		for _, n := range f.ignore {
			names[n] = true
		}
		opts.IgnoreString = locfile.NewStringFilter(func(_, name string) bool {
			return names[name]
		})
	}
	return opts, nil
}

func parseCmd() *cobra.Command {
	var flags parseFlags
	cmd := &cobra.Command{
		Use:   "parse <file>",
		Short: "Parse one localization file and print it as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := flags.template(cmd, config.Load())
			if err != nil {
				return err
			}
			return runParse(cmd, args[0], opts)
		},
	}
	flags.register(cmd, true)
	return cmd
}

func scanCmd() *cobra.Command {
	var flags parseFlags
	cmd := &cobra.Command{
		Use:   "scan <directory>",
		Short: "Parse every localization file under a directory and report problems",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()
			opts, err := flags.template(cmd, cfg)
			if err != nil {
				return err
			}
			ctx, cancel := setupContext()
			defer cancel()

			results, err := parseTree(ctx, cfg, args[0], opts)
			if err != nil {
				return err
			}
			return summarize(results)
		},
	}
	flags.register(cmd, false)
	return cmd
}

func indexCmd() *cobra.Command {
	var flags parseFlags
	cmd := &cobra.Command{
		Use:   "index <directory>",
		Short: "Parse every localization file under a directory and store the strings in PostgreSQL",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()
			opts, err := flags.template(cmd, cfg)
			if err != nil {
				return err
			}
			return runIndex(cfg, args[0], opts)
		},
	}
	flags.register(cmd, false)
	return cmd
}

type jsonString struct {
	Name    string `json:"name"`
	Value   string `json:"value"`
	Comment string `json:"comment,omitempty"`
}

type jsonFile struct {
	File    string       `json:"file"`
	Strings []jsonString `json:"strings"`
}

func runParse(cmd *cobra.Command, path string, opts parser.Options) error {
	content, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read file: %w", err)
	}

	opts.FilePath = path
	opts.Content = string(content)
	file, err := parser.ParseFile(opts)
	if err != nil {
		return err
	}

	out := jsonFile{File: path, Strings: make([]jsonString, 0, file.Len())}
	for _, name := range file.Names {
		s := file.Strings[name]
		out.Strings = append(out.Strings, jsonString{Name: name, Value: s.Value, Comment: s.Comment})
	}

	encoder := json.NewEncoder(cmd.OutOrStdout())
	encoder.SetIndent("", "  ")
	encoder.SetEscapeHTML(false)
	if err := encoder.Encode(out); err != nil {
		return fmt.Errorf("encode JSON: %w", err)
	}
	return nil
}

// parsedFile is the outcome of parsing one discovered file.
type parsedFile struct {
	Entry filewalker.FileEntry
	File  *locfile.File
}

// parseTree walks root and parses every discovered file in the worker pool.
func parseTree(ctx context.Context, cfg *config.Config, root string, template parser.Options) ([]worker.Task[filewalker.FileEntry, parsedFile], error) {
	entries, err := filewalker.NewWalker(cfg.Exclude...).Walk(root)
	if err != nil {
		return nil, fmt.Errorf("walk input directory: %w", err)
	}

	dispatcher := parser.Default()
	pool := worker.NewPool[filewalker.FileEntry, parsedFile](cfg.WorkerCount,
		func(ctx context.Context, entry filewalker.FileEntry) (parsedFile, error) {
			content, err := os.ReadFile(entry.Path)
			if err != nil {
				return parsedFile{Entry: entry}, fmt.Errorf("read file: %w", err)
			}
			opts := template
			opts.FilePath = entry.Path
			opts.Content = string(content)
			opts.Logger = template.Logger.With().Str("format", entry.Kind.String()).Logger()
			file, err := dispatcher.Parse(opts)
			if err != nil {
				return parsedFile{Entry: entry}, err
			}
			return parsedFile{Entry: entry, File: file}, nil
		},
	)

	return pool.Execute(ctx, entries), nil
}

func summarize(results []worker.Task[filewalker.FileEntry, parsedFile]) error {
	failed, total := 0, 0
	for _, r := range results {
		if r.Err != nil {
			failed++
			log.Error().Err(r.Err).Str("file", r.Input.Path).Msg("Parse failed")
			continue
		}
		total += r.Result.File.Len()
		log.Info().
			Str("file", r.Input.Path).
			Str("format", r.Input.Kind.String()).
			Int("strings", r.Result.File.Len()).
			Msg("Parsed file")
	}

	log.Info().
		Int("files", len(results)).
		Int("failed", failed).
		Int("strings", total).
		Msg("Scan complete")

	if failed > 0 {
		return fmt.Errorf("%d of %d files failed to parse", failed, len(results))
	}
	return nil
}

func runIndex(cfg *config.Config, root string, template parser.Options) error {
	ctx, cancel := setupContext()
	defer cancel()

	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("connect PostgreSQL: %w", err)
	}
	defer pool.Close()
	if err := pool.Ping(ctx); err != nil {
		return fmt.Errorf("ping PostgreSQL: %w", err)
	}
	log.Info().Msg("Connected to PostgreSQL")

	st := store.New(pool)
	if err := st.EnsureSchema(ctx); err != nil {
		return err
	}

	results, err := parseTree(ctx, cfg, root, template)
	if err != nil {
		return err
	}

	var parsed []parsedFile
	for _, r := range results {
		if r.Err != nil {
			log.Error().Err(r.Err).Str("file", r.Input.Path).Msg("Parse failed, not indexed")
			continue
		}
		parsed = append(parsed, r.Result)
	}

	batches := worker.Batch(parsed, cfg.BatchSize)
	written, deleted := 0, 0
	for i, batch := range batches {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		for _, pf := range batch {
			w, d, err := st.Sync(ctx, pf.Entry.Path, pf.Entry.Kind, pf.File)
			if err != nil {
				return fmt.Errorf("index %s: %w", pf.Entry.Path, err)
			}
			written += w
			deleted += d
		}
		log.Info().Int("batch", i+1).Int("total_batches", len(batches)).Int("files", len(batch)).Msg("Indexed batch")
	}

	log.Info().
		Int("files", len(parsed)).
		Int("written", written).
		Int("deleted", deleted).
		Msg("Index complete")

	if failed := len(results) - len(parsed); failed > 0 {
		return fmt.Errorf("%d of %d files failed to parse", failed, len(results))
	}
	return nil
}

// setupContext creates a cancellable context with signal handling.
func setupContext() (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		select {
		case <-sigCh:
			log.Warn().Msg("Received shutdown signal, cancelling...")
			cancel()
		case <-ctx.Done():
		}
		signal.Stop(sigCh)
	}()

	return ctx, cancel
}
