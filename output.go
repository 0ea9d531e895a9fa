package cssaudit

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/yacobolo/cssaudit/internal/cssaudit"
)

// OutputFormat represents the report output format
type OutputFormat string

const (
	// OutputText shows the unused, missing and summary reports (interactive use)
	OutputText OutputFormat = "text"
	// OutputIssues shows one line per finding in golangci-lint format (CI-friendly)
	OutputIssues OutputFormat = "issues"
	// OutputSummary shows the aggregate counts only
	OutputSummary OutputFormat = "summary"
	// OutputJSON exports structured data in JSON format (tooling integration)
	OutputJSON OutputFormat = "json"
	// OutputMarkdown generates a Markdown report (shareable reports)
	OutputMarkdown OutputFormat = "markdown"
)

// OutputOptions controls terminal rendering
type OutputOptions struct {
	UseColors       bool
	PrintLinterName bool
	MaxIssues       int // issues format only; 0 = unlimited
	MaxSameIssues   int // issues format only; 0 = unlimited
}

// Report file names written by WriteReportFiles
const (
	UnusedReportFile  = "unused-selectors.txt"
	MissingReportFile = "missing-classes.txt"
	SummaryReportFile = "summary.txt"
)

// ParseOutputFormat validates a format name. The empty string selects the
// default text format.
func ParseOutputFormat(name string) (OutputFormat, error) {
	switch name {
	case "", "text":
		return OutputText, nil
	case "issues":
		return OutputIssues, nil
	case "summary":
		return OutputSummary, nil
	case "json":
		return OutputJSON, nil
	case "markdown", "md":
		return OutputMarkdown, nil
	default:
		return "", fmt.Errorf("unknown output format %q (want text|issues|summary|json|markdown)", name)
	}
}

// DetermineOutputFormat selects the output format from the flag value.
// Quiet mode only needs the exit code, so it always selects issues.
func DetermineOutputFormat(formatFlag string, quiet bool) (OutputFormat, error) {
	if quiet {
		return OutputIssues, nil
	}
	return ParseOutputFormat(formatFlag)
}

// ShouldUseColors determines if colors should be enabled
func ShouldUseColors(force bool) bool {
	return cssaudit.ShouldUseColors(force)
}

// BuildIssues flattens a result into golangci-lint style issues
func BuildIssues(result *Result) []Issue {
	return cssaudit.BuildIssues(result)
}

// WriteOutput writes the result in the specified format
func WriteOutput(w io.Writer, result *Result, format OutputFormat, opts OutputOptions) error {
	switch format {
	case OutputText, "":
		reporter := cssaudit.NewReporter(w, opts.UseColors, opts.PrintLinterName)
		reporter.PrintUnused(result)
		reporter.PrintMissing(result)
		reporter.PrintSummary(result)
		reporter.PrintWarnings(result)

	case OutputIssues:
		reporter := cssaudit.NewReporter(w, opts.UseColors, opts.PrintLinterName)
		issues := cssaudit.BuildIssues(result)
		shown, truncated := cssaudit.LimitIssues(issues, opts.MaxIssues, opts.MaxSameIssues)
		reporter.PrintIssues(shown)
		if truncated > 0 {
			fmt.Fprintf(w, "... and %d more (raise --max-issues or --max-same-issues to see them)\n", truncated)
		}
		reporter.PrintIssueSummary(issues, result)

	case OutputSummary:
		reporter := cssaudit.NewReporter(w, opts.UseColors, opts.PrintLinterName)
		reporter.PrintSummary(result)
		reporter.PrintWarnings(result)

	case OutputJSON:
		if err := WriteJSON(w, result); err != nil {
			return fmt.Errorf("writing JSON: %w", err)
		}

	case OutputMarkdown:
		if err := WriteMarkdown(w, result); err != nil {
			return fmt.Errorf("writing Markdown: %w", err)
		}

	default:
		return fmt.Errorf("unknown output format %q", format)
	}
	return nil
}

// WriteUnusedReport renders the plain-text unused-selector report
func WriteUnusedReport(w io.Writer, result *Result) {
	cssaudit.WriteUnusedReport(w, result)
}

// WriteMissingReport renders the plain-text missing-class report
func WriteMissingReport(w io.Writer, result *Result) {
	cssaudit.WriteMissingReport(w, result)
}

// WriteSummary renders the plain-text summary
func WriteSummary(w io.Writer, result *Result) {
	cssaudit.WriteSummary(w, result)
}

// WriteReportFiles writes the three plain-text reports into dir, creating
// it if needed. Existing report files are overwritten.
func WriteReportFiles(dir string, result *Result) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating report directory: %w", err)
	}

	reports := []struct {
		name   string
		render func(io.Writer, *Result)
	}{
		{UnusedReportFile, WriteUnusedReport},
		{MissingReportFile, WriteMissingReport},
		{SummaryReportFile, WriteSummary},
	}

	for _, report := range reports {
		var buf bytes.Buffer
		report.render(&buf, result)
		path := filepath.Join(dir, report.name)
		if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
			return fmt.Errorf("writing %s: %w", path, err)
		}
	}
	return nil
}
