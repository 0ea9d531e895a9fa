package cssaudit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildIssues(t *testing.T) {
	result := &Result{
		UnusedAvailable: true,
		Unused: map[string][]UnusedSelector{
			"styles/main.css": {
				{Selector: ".old"},
				{Selector: ".nav-mobile", PossiblyResponsive: true},
			},
		},
		Missing: map[string][]string{
			"btn-primary": {"views/home.html", "views/about.html"},
		},
	}

	issues := BuildIssues(result)
	require.Len(t, issues, 4)

	assert.Equal(t, Issue{
		FromLinter: LinterName,
		Text:       `unused selector ".nav-mobile" (possibly a responsive style, kept defensively)`,
		Severity:   SeverityInfo,
		File:       "styles/main.css",
	}, issues[0])
	assert.Equal(t, `unused selector ".old"`, issues[1].Text)
	assert.Equal(t, SeverityWarning, issues[1].Severity)

	assert.Equal(t, "views/about.html", issues[2].File)
	assert.Equal(t, SeverityError, issues[2].Severity)
	assert.Equal(t, `missing CSS class "btn-primary" is referenced but never defined`, issues[2].Text)
	assert.Equal(t, "views/home.html", issues[3].File)
}

func TestBuildIssuesEmpty(t *testing.T) {
	assert.Empty(t, BuildIssues(&Result{}))
}

func TestLimitIssues(t *testing.T) {
	issues := []Issue{
		{File: "a.html", Text: "missing CSS class \"x\" is referenced but never defined"},
		{File: "b.html", Text: "missing CSS class \"x\" is referenced but never defined"},
		{File: "c.html", Text: "missing CSS class \"x\" is referenced but never defined"},
		{File: "main.css", Text: "unused selector \".y\""},
	}

	tests := []struct {
		name          string
		maxIssues     int
		maxSame       int
		expectedFiles []string
		truncated     int
	}{
		{name: "unlimited", expectedFiles: []string{"a.html", "b.html", "c.html", "main.css"}},
		{name: "max issues", maxIssues: 2, expectedFiles: []string{"a.html", "b.html"}, truncated: 2},
		{name: "max same", maxSame: 1, expectedFiles: []string{"a.html", "main.css"}, truncated: 2},
		{name: "both", maxIssues: 3, maxSame: 2, expectedFiles: []string{"a.html", "b.html"}, truncated: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kept, truncated := LimitIssues(issues, tt.maxIssues, tt.maxSame)
			var files []string
			for _, issue := range kept {
				files = append(files, issue.File)
			}
			assert.Equal(t, tt.expectedFiles, files)
			assert.Equal(t, tt.truncated, truncated)
		})
	}
}
