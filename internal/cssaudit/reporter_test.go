package cssaudit

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleResult() *Result {
	return &Result{
		UnusedAvailable: true,
		Unused: map[string][]UnusedSelector{
			"b.css": {{Selector: ".zeta"}},
			"a.css": {
				{Selector: ".alpha"},
				{Selector: ".menu-mobile", PossiblyResponsive: true},
			},
		},
		Missing: map[string][]string{
			"ghost":  {"index.html"},
			"button": {"a.html", "b.html"},
		},
		Summary: Summary{
			FilesAnalyzed:      4,
			CSSFiles:           2,
			SourceFiles:        2,
			ClassesDefined:     3,
			MediaScopedClasses: 1,
			ReferencedClasses:  5,
			UnusedCount:        3,
			MissingCount:       2,
			FrameworkClasses:   1,
		},
	}
}

func TestPrintUnused(t *testing.T) {
	var buf bytes.Buffer
	NewReporter(&buf, false, false).PrintUnused(sampleResult())
	out := buf.String()

	assert.Contains(t, out, "Unused Selectors\n================")
	assert.Contains(t, out, "a.css (2 selectors)\n  .alpha\n  .menu-mobile [possibly responsive, kept defensively]\n")
	assert.Contains(t, out, "b.css (1 selector)\n  .zeta\n")
	assert.Less(t, strings.Index(out, "a.css"), strings.Index(out, "b.css"))
}

func TestPrintUnusedUnavailable(t *testing.T) {
	result := sampleResult()
	result.UnusedAvailable = false
	result.Unused = nil

	var buf bytes.Buffer
	NewReporter(&buf, false, false).PrintUnused(result)

	assert.Contains(t, buf.String(), "unavailable")
	assert.NotContains(t, buf.String(), "No unused selectors")
}

func TestPrintMissing(t *testing.T) {
	var buf bytes.Buffer
	NewReporter(&buf, false, false).PrintMissing(sampleResult())
	out := buf.String()

	assert.Contains(t, out, "button (2 files)\n  a.html\n  b.html\n")
	assert.Contains(t, out, "ghost (1 file)\n  index.html\n")
	assert.Less(t, strings.Index(out, "button"), strings.Index(out, "ghost"))
}

func TestPrintMissingEmpty(t *testing.T) {
	var buf bytes.Buffer
	NewReporter(&buf, false, false).PrintMissing(&Result{})
	assert.Contains(t, buf.String(), "No missing classes found.")
}

func TestWriteSummary(t *testing.T) {
	result := sampleResult()
	result.Warnings = []Warning{{Kind: WarningUnreadable, Path: "broken.html", Reason: "permission denied"}}

	var buf bytes.Buffer
	WriteSummary(&buf, result)
	out := buf.String()

	assert.Contains(t, out, "Files analyzed:         4\n")
	assert.Contains(t, out, "Unused selectors:       3\n")
	assert.Contains(t, out, "Missing classes:        2\n")
	assert.Contains(t, out, "• broken.html: permission denied")

	result.UnusedAvailable = false
	buf.Reset()
	WriteSummary(&buf, result)
	assert.Contains(t, buf.String(), "Unused selectors:       unavailable\n")
}

func TestPlainReportsAreDeterministic(t *testing.T) {
	render := func() string {
		var buf bytes.Buffer
		result := sampleResult()
		WriteUnusedReport(&buf, result)
		WriteMissingReport(&buf, result)
		WriteSummary(&buf, result)
		return buf.String()
	}

	first := render()
	for i := 0; i < 5; i++ {
		require.Equal(t, first, render())
	}
	// No ANSI escapes in plain reports
	assert.NotContains(t, first, "\x1b[")
}

func TestPrintIssues(t *testing.T) {
	issues := BuildIssues(sampleResult())

	var buf bytes.Buffer
	r := NewReporter(&buf, false, true)
	r.PrintIssues(issues)
	r.PrintIssueSummary(issues, sampleResult())
	out := buf.String()

	assert.Contains(t, out, `a.html: missing CSS class "button" is referenced but never defined (cssaudit)`)
	assert.Contains(t, out, `b.css: unused selector ".zeta" (cssaudit)`)
	assert.Contains(t, out, "6 issues (3 errors, 2 warnings):")
	assert.Contains(t, out, "* missing classes: 2")
	assert.Contains(t, out, "* unused selectors: 3")
}

func TestPluralizeCount(t *testing.T) {
	assert.Equal(t, "1 file", pluralizeCount(1, "file", "files"))
	assert.Equal(t, "0 files", pluralizeCount(0, "file", "files"))
	assert.Equal(t, "2 files", pluralizeCount(2, "file", "files"))
}
