package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"github.com/yacobolo/cssaudit"
)

var auditCmd = &cobra.Command{
	Use:   "audit",
	Short: "Reconcile CSS definitions with class usage",
	Long: `Scan stylesheets and source files, then report unused selectors,
missing classes and a summary.

Exit codes:
  0  no missing classes (or, with --strict, no findings at all)
  1  missing classes found (or, with --strict, any finding)
  2  configuration or input error`,
	PreRunE: func(cmd *cobra.Command, _ []string) error {
		return loadConfig(cmd)
	},
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runAudit(cmd)
	},
}

func init() {
	addAuditFlags(auditCmd)
}

// addAuditFlags registers the audit flags on cmd. Flags for nested config
// keys default to zero so a config file value is not shadowed.
func addAuditFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.String("root", "", "Directory the patterns are relative to (default \".\")")
	f.StringSlice("css", nil, "Glob patterns for CSS files (default \"**/*.css\")")
	f.StringSlice("sources", nil, "Glob patterns for template and component files")
	f.Int("workers", 0, "Concurrent file reads (0 = number of CPUs)")
	f.StringSlice("allow", nil, "Extra class names that are never reported")
	f.String("purge-command", "", "PurgeCSS-compatible command for unused selectors (default: built-in)")
	f.Duration("purge-timeout", 0, "Timeout for the purge step (default 60s)")
	f.String("output-format", "", "Output format: text|issues|summary|json|markdown")
	f.String("report-dir", "", "Also write unused-selectors.txt, missing-classes.txt and summary.txt here")
	f.Bool("strict", false, "Exit 1 on any finding, unused selectors included (CI mode)")
	f.Bool("print-linter-name", true, "Show (cssaudit) suffix on issues")
	f.Int("max-issues", 0, "Maximum issues to show in issues format (0 = unlimited)")
	f.Int("max-same-issues", 0, "Maximum times the same message is shown (0 = unlimited)")
}

// runAudit is shared between `cssaudit` and `cssaudit audit`
func runAudit(cmd *cobra.Command) error {
	quiet := getBoolWithFallback("quiet", "quiet", false)
	verbose := getBoolWithFallback("verbose", "verbose", false)
	logger := newLogger(cmd.ErrOrStderr(), verbose, quiet)

	config, err := buildAuditConfig(logger)
	if err != nil {
		return err
	}

	outputFormat := getStringWithFallback("output-format", "output-format", "")
	format, err := cssaudit.DetermineOutputFormat(outputFormat, quiet)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	result, err := cssaudit.Analyze(ctx, config)
	if err != nil {
		if errors.Is(err, cssaudit.ErrNoInput) && result != nil && len(result.Warnings) > 0 {
			return fmt.Errorf("%w: %s", err, result.Warnings[0].Reason)
		}
		if errors.Is(err, context.Canceled) {
			return fmt.Errorf("audit interrupted: %w", err)
		}
		return fmt.Errorf("audit failed: %w", err)
	}

	if !quiet {
		opts := cssaudit.OutputOptions{
			UseColors:       cssaudit.ShouldUseColors(getBoolWithFallback("color", "color", false)),
			PrintLinterName: getBoolWithFallback("print-linter-name", "print-linter-name", true),
			MaxIssues:       getIntWithFallback("max-issues", "max-issues", 0),
			MaxSameIssues:   getIntWithFallback("max-same-issues", "max-same-issues", 0),
		}
		if format == cssaudit.OutputJSON || format == cssaudit.OutputMarkdown {
			opts.UseColors = false
		}
		if err := cssaudit.WriteOutput(cmd.OutOrStdout(), result, format, opts); err != nil {
			return err
		}
	}

	if dir := getStringWithFallback("report-dir", "report-dir", ""); dir != "" {
		if err := cssaudit.WriteReportFiles(dir, result); err != nil {
			return err
		}
		logger.Info("wrote reports", "dir", dir)
	}

	// Exit code logic - "Soft Gate" approach
	strict := getBoolWithFallback("strict", "strict", false)
	if code := exitCode(result, strict); code != 0 {
		return &exitError{code: code}
	}
	return nil
}

// exitCode maps a result to the process exit code. Missing classes always
// fail; unused selectors only fail in strict mode.
func exitCode(result *cssaudit.Result, strict bool) int {
	if result.Summary.MissingCount > 0 {
		return 1
	}
	if strict && result.UnusedAvailable && result.Summary.UnusedCount > 0 {
		return 1
	}
	return 0
}

// newLogger builds the stderr logger: debug with --verbose, silent with
// --quiet, warnings otherwise
func newLogger(w io.Writer, verbose, quiet bool) *slog.Logger {
	if quiet {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}
