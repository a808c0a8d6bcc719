// Package cli wires a PDF engine into a single-argument command that
// prints an extraction result as JSON.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/spherical/pdftext/internal/cache"
	"github.com/spherical/pdftext/internal/config"
	"github.com/spherical/pdftext/internal/domain"
	"github.com/spherical/pdftext/internal/extract"
	"github.com/spherical/pdftext/internal/observability"
)

// Program describes one extractor binary.
type Program struct {
	Name         string
	Version      string
	Short        string
	NewExtractor func() domain.Extractor
}

type flags struct {
	cfgFile         string
	verbose         bool
	noCache         bool
	legacyExitCodes bool
}

// Execute runs the program against os.Args and returns the process exit
// code. SIGINT and SIGTERM cancel the extraction between pages.
func Execute(p Program) int {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	go func() {
		select {
		case <-sigCh:
			cancel()
		case <-ctx.Done():
		}
	}()

	return Run(ctx, p, os.Args[1:], os.Stdout, os.Stderr)
}

// Run executes the command with args. The JSON result goes to stdout; logs
// and help text go to stderr.
func Run(ctx context.Context, p Program, args []string, stdout, stderr io.Writer) int {
	exitCode := -1
	cmd := newRootCommand(p, stdout, stderr, &exitCode)
	cmd.SetArgs(args)

	if err := cmd.ExecuteContext(ctx); err != nil {
		// flag parsing failed; report it like a wrong argument count
		fmt.Fprintf(stderr, "Error: %v\n", err)
		exitCode = -1
	}

	// --help, --version and flag errors never reach an extraction, so stdout
	// still gets the usage result.
	if exitCode < 0 {
		writeResult(stdout, stderr, domain.NewFailureResult("", domain.UsageError(p.Name)))
		return 1
	}

	return exitCode
}

func newRootCommand(p Program, stdout, stderr io.Writer, exitCode *int) *cobra.Command {
	var f flags

	long := p.Short + `

Prints one JSON object on stdout. Paths starting with "-" must follow a
"--" separator: ` + p.Name + ` -- -report.pdf`

	cmd := &cobra.Command{
		Use:           p.Name + " <pdf_file_path>",
		Short:         p.Short,
		Long:          long,
		Version:       p.Version,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			*exitCode = run(cmd.Context(), p, f, args, stdout, stderr)
			return nil
		},
	}

	cmd.SetOut(stderr)
	cmd.SetErr(stderr)
	cmd.SetVersionTemplate(p.Name + " {{.Version}}\n")

	cmd.Flags().StringVarP(&f.cfgFile, "config", "c", "", "config file path (default $PDFTEXT_CONFIG)")
	cmd.Flags().BoolVarP(&f.verbose, "verbose", "v", false, "log debug output to stderr")
	cmd.Flags().BoolVar(&f.noCache, "no-cache", false, "bypass the result cache")
	cmd.Flags().BoolVar(&f.legacyExitCodes, "legacy-exit-codes", false, "exit 0 when extraction fails")

	return cmd
}

func run(ctx context.Context, p Program, f flags, args []string, stdout, stderr io.Writer) int {
	if len(args) != 1 {
		writeResult(stdout, stderr, domain.NewFailureResult("", domain.UsageError(p.Name)))
		return 1
	}
	path := args[0]

	cfg, err := config.Load(f.cfgFile)
	if err != nil {
		writeResult(stdout, stderr, domain.NewFailureResult(path, domain.ConfigError("load config", err)))
		return 1
	}
	if f.verbose {
		cfg.Log.Level = "debug"
	}
	if f.noCache {
		cfg.Cache.Driver = config.CacheDriverNone
	}
	if f.legacyExitCodes {
		cfg.LegacyExitCodes = true
	}

	logger := observability.NewLogger(observability.LogConfig{
		Level:       cfg.Log.Level,
		Format:      cfg.Log.Format,
		Output:      stderr,
		ServiceName: p.Name,
	}).WithOperation("extract")

	var c cache.Client = cache.Nop{}
	if cfg.CacheEnabled() {
		opened, err := cache.New(ctx, cfg.Cache)
		if err != nil {
			logger.Warn().Err(err).Str("driver", cfg.Cache.Driver).Msg("cache unavailable, continuing without it")
		} else {
			c = opened
		}
	}
	defer c.Close()

	svc := extract.NewService(p.NewExtractor(),
		extract.WithCache(c, cfg.Cache.TTL),
		extract.WithLogger(logger),
	)

	res, err := svc.Process(ctx, path)
	writeResult(stdout, stderr, res)

	return exitCodeFor(err, cfg.LegacyExitCodes)
}

// exitCodeFor maps a failure kind to the process exit status. Extraction
// failures exit 0 only in legacy mode.
func exitCodeFor(err error, legacy bool) int {
	if err == nil {
		return 0
	}
	if domain.KindOf(err) == domain.ErrorKindExtraction && legacy {
		return 0
	}
	return 1
}

func writeResult(stdout, stderr io.Writer, res *domain.ExtractionResult) {
	if err := res.WriteJSON(stdout); err != nil {
		fmt.Fprintf(stderr, "Error: write result: %v\n", err)
	}
}
