package cssaudit

import (
	"encoding/json"
	"io"
	"sort"
)

// JSONOutput represents the structured JSON export schema.
// It carries no timestamp so identical inputs export identical documents.
type JSONOutput struct {
	Version      string           `json:"version"`
	Summary      JSONSummary      `json:"summary"`
	Unused       []JSONUnusedFile `json:"unused"`
	Missing      []JSONMissing    `json:"missing"`
	Dispositions map[string]int   `json:"dispositions"`
	Warnings     []Warning        `json:"warnings"`
}

// JSONSummary contains the aggregate counts. UnusedCount shadows the
// embedded count and is null when unused data is unavailable.
type JSONSummary struct {
	Summary
	UnusedCount     *int `json:"unused_count"`
	UnusedAvailable bool `json:"unused_available"`
}

// JSONUnusedFile lists the unused selectors of one CSS file
type JSONUnusedFile struct {
	File      string           `json:"file"`
	Selectors []UnusedSelector `json:"selectors"`
}

// JSONMissing is one class referenced but never defined
type JSONMissing struct {
	Class string   `json:"class"`
	Files []string `json:"files"`
}

// WriteJSON writes the result as JSON
func WriteJSON(w io.Writer, result *Result) error {
	output := buildJSONOutput(result)
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(output)
}

// buildJSONOutput converts Result to JSONOutput with every list sorted
func buildJSONOutput(result *Result) JSONOutput {
	// Unavailable unused data exports as null, never as an empty list
	var unused []JSONUnusedFile
	var unusedCount *int
	if result.UnusedAvailable {
		unused = make([]JSONUnusedFile, 0, len(result.Unused))
		for _, file := range result.UnusedFiles() {
			unused = append(unused, JSONUnusedFile{
				File:      file,
				Selectors: result.Unused[file],
			})
		}
		count := result.Summary.UnusedCount
		unusedCount = &count
	}

	missing := make([]JSONMissing, 0, len(result.Missing))
	for _, class := range result.MissingClasses() {
		missing = append(missing, JSONMissing{
			Class: class,
			Files: result.Missing[class],
		})
	}

	dispositions := make(map[string]int, len(result.Dispositions))
	for d, n := range result.Dispositions {
		dispositions[d.String()] = n
	}

	warnings := append([]Warning{}, result.Warnings...)
	sort.SliceStable(warnings, func(i, j int) bool {
		if warnings[i].Kind != warnings[j].Kind {
			return warnings[i].Kind < warnings[j].Kind
		}
		return warnings[i].Path < warnings[j].Path
	})

	return JSONOutput{
		Version: "1.0",
		Summary: JSONSummary{
			Summary:         result.Summary,
			UnusedCount:     unusedCount,
			UnusedAvailable: result.UnusedAvailable,
		},
		Unused:       unused,
		Missing:      missing,
		Dispositions: dispositions,
		Warnings:     warnings,
	}
}
