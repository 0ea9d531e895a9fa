package cssaudit

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yacobolo/cssaudit/internal/cssaudit"
)

func fixtureResult() *Result {
	return &Result{
		UnusedAvailable: true,
		Unused: map[string][]UnusedSelector{
			"styles/main.css": {
				{Selector: ".btn-ghost"},
				{Selector: ".nav-mobile", PossiblyResponsive: true},
			},
		},
		Missing: map[string][]string{
			"btn-primary": {"web/index.html"},
		},
		Summary: Summary{
			FilesAnalyzed:      3,
			CSSFiles:           1,
			SourceFiles:        2,
			ClassesDefined:     4,
			MediaScopedClasses: 1,
			ReferencedClasses:  5,
			UnusedCount:        2,
			MissingCount:       1,
			FrameworkClasses:   1,
		},
		Dispositions: map[Disposition]int{
			cssaudit.DispositionNone:               3,
			cssaudit.DispositionFrameworkGenerated: 1,
			cssaudit.DispositionExplicitAllow:      1,
		},
	}
}

func TestDetermineOutputFormat(t *testing.T) {
	tests := []struct {
		name     string
		flag     string
		quiet    bool
		expected OutputFormat
		wantErr  bool
	}{
		{name: "default is text", flag: "", expected: OutputText},
		{name: "explicit text", flag: "text", expected: OutputText},
		{name: "issues", flag: "issues", expected: OutputIssues},
		{name: "summary", flag: "summary", expected: OutputSummary},
		{name: "json", flag: "json", expected: OutputJSON},
		{name: "markdown", flag: "markdown", expected: OutputMarkdown},
		{name: "md alias", flag: "md", expected: OutputMarkdown},
		{name: "quiet wins", flag: "json", quiet: true, expected: OutputIssues},
		{name: "invalid", flag: "xml", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DetermineOutputFormat(tt.flag, tt.quiet)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, fixtureResult()))

	var output JSONOutput
	require.NoError(t, json.Unmarshal(buf.Bytes(), &output))

	assert.Equal(t, "1.0", output.Version)
	assert.True(t, output.Summary.UnusedAvailable)
	assert.Equal(t, 1, output.Summary.MissingCount)
	require.Len(t, output.Unused, 1)
	assert.Equal(t, "styles/main.css", output.Unused[0].File)
	assert.Len(t, output.Unused[0].Selectors, 2)
	require.Len(t, output.Missing, 1)
	assert.Equal(t, JSONMissing{Class: "btn-primary", Files: []string{"web/index.html"}}, output.Missing[0])
	assert.Equal(t, map[string]int{"none": 3, "framework-generated": 1, "explicit-allow": 1}, output.Dispositions)
}

func TestJSONOutputSchema(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, fixtureResult()))

	var raw map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &raw))

	for _, key := range []string{"version", "summary", "unused", "missing", "dispositions", "warnings"} {
		assert.Contains(t, raw, key)
	}
	assert.NotContains(t, raw, "timestamp")

	summary, ok := raw["summary"].(map[string]any)
	require.True(t, ok)
	for _, key := range []string{"files_analyzed", "classes_defined", "unused_count", "missing_count", "unused_available"} {
		assert.Contains(t, summary, key)
	}
	assert.InDelta(t, 2, summary["unused_count"], 0)
}

func TestJSONOutputUnusedUnavailable(t *testing.T) {
	result := cssaudit.Reconcile(cssaudit.ReconcileInput{
		Classes: cssaudit.ExtractSelectors(".btn {}"),
		References: cssaudit.ExtractReferences(map[string]string{
			"index.html": `<a class="btn ghost">`,
		}),
		Classifier:  mustClassifier(t),
		PurgeErr:    errors.New("purgecss exited with status 1"),
		CSSFiles:    1,
		SourceFiles: 1,
	})

	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, result))

	var raw map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &raw))

	// Absent, not zero
	require.Contains(t, raw, "unused")
	assert.Nil(t, raw["unused"])
	summary, ok := raw["summary"].(map[string]any)
	require.True(t, ok)
	require.Contains(t, summary, "unused_count")
	assert.Nil(t, summary["unused_count"])
	assert.Equal(t, false, summary["unused_available"])

	// The missing report is still exported
	assert.InDelta(t, 1, summary["missing_count"], 0)
	assert.NotContains(t, buf.String(), `"unused_count": 0`)
}

func mustClassifier(t *testing.T) *cssaudit.Classifier {
	t.Helper()
	classifier, err := cssaudit.NewClassifier(cssaudit.RuleConfig{}, nil)
	require.NoError(t, err)
	return classifier
}

func TestWriteMarkdown(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteMarkdown(&buf, fixtureResult()))
	markdown := buf.String()

	assert.Contains(t, markdown, "# CSS Audit Report")
	assert.Contains(t, markdown, "## Executive Summary")
	assert.Contains(t, markdown, "| **Files Analyzed** | 3 (1 CSS, 2 source) |")
	assert.Contains(t, markdown, "| **Unused Selectors** | 2 |")
	assert.Contains(t, markdown, "| `btn-primary` | `web/index.html` |")
	assert.Contains(t, markdown, "| `styles/main.css` | `.nav-mobile` | possibly responsive |")
	assert.Contains(t, markdown, "| framework-generated | 1 |")
	assert.Contains(t, markdown, "🔴 Needs Attention")
	assert.Contains(t, markdown, "*Generated by cssaudit*")
}

func TestMarkdownStatusBadges(t *testing.T) {
	tests := []struct {
		name           string
		missing        int
		unused         int
		available      bool
		expectedStatus string
	}{
		{name: "clean", available: true, expectedStatus: "🟢 Clean"},
		{name: "unused only", unused: 3, available: true, expectedStatus: "🟡 Review Unused"},
		{name: "purge unavailable", available: false, expectedStatus: "🟡 Review Unused"},
		{name: "missing classes", missing: 1, available: true, expectedStatus: "🔴 Needs Attention"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := &Result{
				UnusedAvailable: tt.available,
				Summary:         Summary{MissingCount: tt.missing, UnusedCount: tt.unused},
			}
			var buf bytes.Buffer
			require.NoError(t, WriteMarkdown(&buf, result))
			assert.Contains(t, buf.String(), tt.expectedStatus)
		})
	}
}

func TestMarkdownEscaping(t *testing.T) {
	result := fixtureResult()
	result.Unused["styles/main.css"] = []UnusedSelector{{Selector: `[data-x="a|b"]`}}

	var buf bytes.Buffer
	require.NoError(t, WriteMarkdown(&buf, result))
	assert.Contains(t, buf.String(), `a\|b`, "Pipes should be escaped in markdown tables")
}

func TestWriteOutputAllFormats(t *testing.T) {
	formats := []OutputFormat{OutputText, OutputIssues, OutputSummary, OutputJSON, OutputMarkdown}

	for _, format := range formats {
		t.Run(string(format), func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, WriteOutput(&buf, fixtureResult(), format, OutputOptions{PrintLinterName: true}))
			assert.NotEmpty(t, buf.String())
		})
	}

	var buf bytes.Buffer
	require.Error(t, WriteOutput(&buf, fixtureResult(), OutputFormat("xml"), OutputOptions{}))
}

func TestWriteOutputText(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteOutput(&buf, fixtureResult(), OutputText, OutputOptions{}))
	out := buf.String()

	unusedAt := bytes.Index(buf.Bytes(), []byte("Unused Selectors"))
	missingAt := bytes.Index(buf.Bytes(), []byte("Missing Classes"))
	summaryAt := bytes.Index(buf.Bytes(), []byte("Summary\n"))
	assert.True(t, unusedAt >= 0 && unusedAt < missingAt && missingAt < summaryAt, "sections in order:\n%s", out)
	assert.Contains(t, out, ".nav-mobile [possibly responsive, kept defensively]")
}

func TestWriteOutputColors(t *testing.T) {
	var plain, colored bytes.Buffer
	require.NoError(t, WriteOutput(&plain, fixtureResult(), OutputIssues, OutputOptions{}))
	require.NoError(t, WriteOutput(&colored, fixtureResult(), OutputIssues, OutputOptions{UseColors: true}))

	assert.NotEmpty(t, colored.String())
	assert.NotContains(t, plain.String(), "\x1b[")
	assert.Contains(t, plain.String(), `web/index.html: missing CSS class "btn-primary" is referenced but never defined`)
}

func TestWriteOutputIssueLimits(t *testing.T) {
	var buf bytes.Buffer
	opts := OutputOptions{MaxIssues: 1}
	require.NoError(t, WriteOutput(&buf, fixtureResult(), OutputIssues, opts))

	out := buf.String()
	assert.Contains(t, out, "... and 2 more")
	// The summary still counts every finding
	assert.Contains(t, out, "3 issues")
}
