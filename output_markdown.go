package cssaudit

import (
	"fmt"
	"io"
	"strings"

	"github.com/yacobolo/cssaudit/internal/cssaudit"
)

// WriteMarkdown writes the result as a shareable Markdown report
func WriteMarkdown(w io.Writer, result *Result) error {
	var b strings.Builder
	s := result.Summary

	b.WriteString("# CSS Audit Report\n\n")

	// Executive summary
	b.WriteString("## Executive Summary\n\n")
	b.WriteString("| Metric | Value |\n")
	b.WriteString("|--------|-------|\n")
	fmt.Fprintf(&b, "| **Status** | %s |\n", markdownStatus(result))
	fmt.Fprintf(&b, "| **Files Analyzed** | %d (%d CSS, %d source) |\n", s.FilesAnalyzed, s.CSSFiles, s.SourceFiles)
	fmt.Fprintf(&b, "| **Classes Defined** | %d (%d media-scoped) |\n", s.ClassesDefined, s.MediaScopedClasses)
	fmt.Fprintf(&b, "| **Classes Referenced** | %d |\n", s.ReferencedClasses)
	fmt.Fprintf(&b, "| **Missing Classes** | %d |\n", s.MissingCount)
	if result.UnusedAvailable {
		fmt.Fprintf(&b, "| **Unused Selectors** | %d |\n", s.UnusedCount)
	} else {
		b.WriteString("| **Unused Selectors** | unavailable |\n")
	}
	fmt.Fprintf(&b, "| **Framework Classes** | %d |\n", s.FrameworkClasses)
	b.WriteString("\n")

	// Missing classes
	if len(result.Missing) > 0 {
		b.WriteString("## ❌ Missing Classes\n\n")
		b.WriteString("| Class | Referenced In |\n")
		b.WriteString("|-------|---------------|\n")
		for _, class := range result.MissingClasses() {
			files := make([]string, 0, len(result.Missing[class]))
			for _, f := range result.Missing[class] {
				files = append(files, "`"+escapeMarkdown(f)+"`")
			}
			fmt.Fprintf(&b, "| `%s` | %s |\n", escapeMarkdown(class), strings.Join(files, ", "))
		}
		b.WriteString("\n")
	}

	// Unused selectors
	b.WriteString("## 🧹 Unused Selectors\n\n")
	switch {
	case !result.UnusedAvailable:
		b.WriteString("Unused-selector data is unavailable for this run (the purge step failed or did not run).\n\n")
	case len(result.Unused) == 0:
		b.WriteString("No unused selectors found.\n\n")
	default:
		b.WriteString("| File | Selector | Note |\n")
		b.WriteString("|------|----------|------|\n")
		for _, file := range result.UnusedFiles() {
			for _, sel := range result.Unused[file] {
				note := ""
				if sel.PossiblyResponsive {
					note = "possibly responsive"
				}
				fmt.Fprintf(&b, "| `%s` | `%s` | %s |\n", escapeMarkdown(file), escapeMarkdown(sel.Selector), note)
			}
		}
		b.WriteString("\n")
	}

	// Classification breakdown
	if len(result.Dispositions) > 0 {
		b.WriteString("## 📊 Classification\n\n")
		b.WriteString("| Disposition | Classes |\n")
		b.WriteString("|-------------|---------|\n")
		for _, d := range cssaudit.AllDispositions() {
			if n := result.Dispositions[d]; n > 0 {
				fmt.Fprintf(&b, "| %s | %d |\n", d, n)
			}
		}
		b.WriteString("\n")
	}

	// Warnings
	if len(result.Warnings) > 0 {
		b.WriteString("## ⚠️ Warnings\n\n")
		for _, warning := range result.Warnings {
			fmt.Fprintf(&b, "- %s\n", escapeMarkdown(warning.String()))
		}
		b.WriteString("\n")
	}

	b.WriteString("---\n\n")
	b.WriteString("*Generated by cssaudit*\n")

	_, err := io.WriteString(w, b.String())
	return err
}

// markdownStatus summarizes the run in a badge
func markdownStatus(result *Result) string {
	switch {
	case result.Summary.MissingCount > 0:
		return "🔴 Needs Attention"
	case !result.UnusedAvailable || result.Summary.UnusedCount > 0:
		return "🟡 Review Unused"
	default:
		return "🟢 Clean"
	}
}

// escapeMarkdown escapes characters that break table cells
func escapeMarkdown(s string) string {
	s = strings.ReplaceAll(s, "|", "\\|")
	s = strings.ReplaceAll(s, "\n", " ")
	return s
}
