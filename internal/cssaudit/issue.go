package cssaudit

import (
	"fmt"
	"sort"
)

// Issue represents a single finding in golangci-lint style
type Issue struct {
	FromLinter string `json:"FromLinter"` // "cssaudit"
	Text       string `json:"Text"`       // "missing CSS class \"btn-primary\" is referenced but never defined"
	Severity   string `json:"Severity"`   // "", "warning", "error"
	File       string `json:"File"`       // source file for missing classes, CSS file for unused selectors
}

// IssueSeverity constants
const (
	SeverityError   = "error"
	SeverityWarning = "warning"
	SeverityInfo    = ""
)

// Issue texts
const (
	IssueMissingClass     = "missing CSS class %q is referenced but never defined"
	IssueUnusedSelector   = "unused selector %q"
	IssueUnusedResponsive = "unused selector %q (possibly a responsive style, kept defensively)"
	LinterName            = "cssaudit"
)

// BuildIssues flattens a result into issues: one error per missing class
// and referencing file, one warning per unused selector, and an info line
// for possibly-responsive selectors. Issues are sorted by file then text.
func BuildIssues(result *Result) []Issue {
	var issues []Issue

	for class, files := range result.Missing {
		for _, file := range files {
			issues = append(issues, Issue{
				FromLinter: LinterName,
				Text:       fmt.Sprintf(IssueMissingClass, class),
				Severity:   SeverityError,
				File:       file,
			})
		}
	}

	for file, selectors := range result.Unused {
		for _, sel := range selectors {
			issue := Issue{
				FromLinter: LinterName,
				Text:       fmt.Sprintf(IssueUnusedSelector, sel.Selector),
				Severity:   SeverityWarning,
				File:       file,
			}
			if sel.PossiblyResponsive {
				issue.Text = fmt.Sprintf(IssueUnusedResponsive, sel.Selector)
				issue.Severity = SeverityInfo
			}
			issues = append(issues, issue)
		}
	}

	sort.Slice(issues, func(i, j int) bool {
		if issues[i].File != issues[j].File {
			return issues[i].File < issues[j].File
		}
		return issues[i].Text < issues[j].Text
	})

	return issues
}

// LimitIssues applies the max-issues and max-same-issues caps (0 means
// unlimited) and returns the kept issues plus how many were dropped.
func LimitIssues(issues []Issue, maxIssues, maxSame int) ([]Issue, int) {
	originalCount := len(issues)

	if maxIssues > 0 && len(issues) > maxIssues {
		issues = issues[:maxIssues]
	}

	if maxSame > 0 {
		issues = deduplicateSameIssues(issues, maxSame)
	}

	return issues, originalCount - len(issues)
}

// deduplicateSameIssues limits how many times the same message appears
func deduplicateSameIssues(issues []Issue, maxSame int) []Issue {
	messageCounts := make(map[string]int)
	var filtered []Issue

	for _, issue := range issues {
		if messageCounts[issue.Text] < maxSame {
			filtered = append(filtered, issue)
			messageCounts[issue.Text]++
		}
	}

	return filtered
}
