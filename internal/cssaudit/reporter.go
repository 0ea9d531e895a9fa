package cssaudit

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

// Reporter handles formatting and outputting reconciliation results
type Reporter struct {
	w               io.Writer
	useColors       bool
	printLinterName bool
}

// NewReporter creates a new reporter
func NewReporter(w io.Writer, useColors, printLinterName bool) *Reporter {
	return &Reporter{
		w:               w,
		useColors:       useColors,
		printLinterName: printLinterName,
	}
}

// ShouldUseColors determines if colors should be enabled
func ShouldUseColors(force bool) bool {
	// Explicit flag wins
	if force {
		return true
	}

	// Check for FORCE_COLOR environment variable (GitHub Actions, etc.)
	if os.Getenv("FORCE_COLOR") != "" {
		return true
	}

	// GitHub Actions supports colors
	if os.Getenv("GITHUB_ACTIONS") == "true" {
		return true
	}

	// Auto-detect TTY
	if isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd()) {
		return true
	}

	return false
}

func (r *Reporter) render(style lipgloss.Style, text string) string {
	return RenderStyle(style, text, r.useColors)
}

func (r *Reporter) header(title string) {
	fmt.Fprintln(r.w, r.render(StyleCyan, title))
	fmt.Fprintln(r.w, strings.Repeat("=", len(title)))
	fmt.Fprintln(r.w, "")
}

// PrintUnused writes the unused-selector report grouped by CSS file
func (r *Reporter) PrintUnused(result *Result) {
	r.header("Unused Selectors")

	if !result.UnusedAvailable {
		fmt.Fprintln(r.w, r.render(StyleYellow, "Unused-selector data unavailable: the purge step failed or did not run."))
		fmt.Fprintln(r.w, "")
		return
	}

	files := result.UnusedFiles()
	if len(files) == 0 {
		fmt.Fprintln(r.w, r.render(StyleGreen, "No unused selectors found."))
		fmt.Fprintln(r.w, "")
		return
	}

	for _, file := range files {
		selectors := result.Unused[file]
		fmt.Fprintf(r.w, "%s (%s)\n",
			r.render(StyleCyan, file),
			pluralizeCount(len(selectors), "selector", "selectors"))
		for _, sel := range selectors {
			if sel.PossiblyResponsive {
				fmt.Fprintf(r.w, "  %s %s\n", sel.Selector,
					r.render(StyleGray, "[possibly responsive, kept defensively]"))
				continue
			}
			fmt.Fprintf(r.w, "  %s\n", sel.Selector)
		}
		fmt.Fprintln(r.w, "")
	}
}

// PrintMissing writes the missing-class report grouped by class name
func (r *Reporter) PrintMissing(result *Result) {
	r.header("Missing Classes")

	classes := result.MissingClasses()
	if len(classes) == 0 {
		fmt.Fprintln(r.w, r.render(StyleGreen, "No missing classes found."))
		fmt.Fprintln(r.w, "")
		return
	}

	for _, class := range classes {
		files := result.Missing[class]
		fmt.Fprintf(r.w, "%s (%s)\n",
			r.render(StyleRed, class),
			pluralizeCount(len(files), "file", "files"))
		for _, f := range files {
			fmt.Fprintf(r.w, "  %s\n", f)
		}
		fmt.Fprintln(r.w, "")
	}
}

// PrintSummary writes the aggregate counts
func (r *Reporter) PrintSummary(result *Result) {
	r.header("Summary")

	s := result.Summary
	unused := "unavailable"
	if result.UnusedAvailable {
		unused = fmt.Sprintf("%d", s.UnusedCount)
	}

	fmt.Fprintf(r.w, "Files analyzed:         %d\n", s.FilesAnalyzed)
	fmt.Fprintf(r.w, "CSS files:              %d\n", s.CSSFiles)
	fmt.Fprintf(r.w, "Source files:           %d\n", s.SourceFiles)
	fmt.Fprintf(r.w, "Classes defined:        %d\n", s.ClassesDefined)
	fmt.Fprintf(r.w, "Media-scoped classes:   %d\n", s.MediaScopedClasses)
	fmt.Fprintf(r.w, "Referenced classes:     %d\n", s.ReferencedClasses)
	fmt.Fprintf(r.w, "Unused selectors:       %s\n", unused)
	fmt.Fprintf(r.w, "Missing classes:        %d\n", s.MissingCount)
	fmt.Fprintf(r.w, "Framework classes:      %d\n", s.FrameworkClasses)
}

// PrintWarnings shows recoverable problems recorded during the run
func (r *Reporter) PrintWarnings(result *Result) {
	if len(result.Warnings) == 0 {
		return
	}

	fmt.Fprintln(r.w, "")
	fmt.Fprintln(r.w, r.render(StyleYellow, "Warnings"))
	fmt.Fprintln(r.w, "--------")

	for _, warning := range result.Warnings {
		fmt.Fprintf(r.w, "• %s\n", warning)
	}
}

// PrintIssues outputs issues in golangci-lint format: file: message (linter)
func (r *Reporter) PrintIssues(issues []Issue) {
	for _, issue := range issues {
		linterSuffix := ""
		if r.printLinterName {
			linterSuffix = fmt.Sprintf(" (%s)", issue.FromLinter)
		}

		style := StyleCyan
		if issue.Severity == SeverityError {
			style = StyleRed
		}

		fmt.Fprintf(r.w, "%s %s%s\n",
			r.render(style, issue.File+":"),
			issue.Text,
			r.render(StyleGray, linterSuffix))
	}
}

// PrintIssueSummary outputs the issue count summary
func (r *Reporter) PrintIssueSummary(issues []Issue, result *Result) {
	var errors, warnings int
	for _, issue := range issues {
		switch issue.Severity {
		case SeverityError:
			errors++
		case SeverityWarning:
			warnings++
		}
	}

	fmt.Fprintln(r.w, "")
	fmt.Fprintf(r.w, "%s (%s, %s):\n",
		pluralizeCount(len(issues), "issue", "issues"),
		pluralizeCount(errors, "error", "errors"),
		pluralizeCount(warnings, "warning", "warnings"))
	fmt.Fprintf(r.w, "* missing classes: %d\n", result.Summary.MissingCount)
	if result.UnusedAvailable {
		fmt.Fprintf(r.w, "* unused selectors: %d\n", result.Summary.UnusedCount)
	} else {
		fmt.Fprintln(r.w, "* unused selectors: unavailable")
	}

	if len(issues) > 0 {
		fmt.Fprintln(r.w, "")
		fmt.Fprintln(r.w, r.render(StyleGray, "Hint: Run with --output-format text to see the grouped reports"))
	}
}

// WriteUnusedReport renders the plain-text unused-selector report
func WriteUnusedReport(w io.Writer, result *Result) {
	NewReporter(w, false, false).PrintUnused(result)
}

// WriteMissingReport renders the plain-text missing-class report
func WriteMissingReport(w io.Writer, result *Result) {
	NewReporter(w, false, false).PrintMissing(result)
}

// WriteSummary renders the plain-text summary, followed by any warnings
func WriteSummary(w io.Writer, result *Result) {
	r := NewReporter(w, false, false)
	r.PrintSummary(result)
	r.PrintWarnings(result)
}

// pluralizeCount returns a formatted string with count and singular/plural form
func pluralizeCount(count int, singular, plural string) string {
	if count == 1 {
		return fmt.Sprintf("%d %s", count, singular)
	}
	return fmt.Sprintf("%d %s", count, plural)
}
