package cssaudit

import (
	"errors"
	"sort"
)

// ReconcileInput holds everything one reconciliation needs. All inputs are
// read-only; Reconcile never writes back into them.
type ReconcileInput struct {
	Classes    ExtractedClasses
	References ReferenceIndex
	Classifier *Classifier

	// Rejected is the purge result keyed by CSS display name. It is ignored
	// when PurgeErr is set.
	Rejected map[string][]string
	// PurgeErr records why the purge step produced no data. A nil Rejected
	// with a nil PurgeErr also means "no data".
	PurgeErr error

	CSSFiles    int
	SourceFiles int
	Warnings    []Warning
}

// errPurgeSkipped is recorded when no purge data was supplied at all
var errPurgeSkipped = errors.New("purge step did not run")

// Reconcile combines the extractor outputs, the classifier and the purge
// result into the unused-selector report, the missing-class report and
// the summary.
func Reconcile(in ReconcileInput) *Result {
	result := &Result{
		Dispositions: make(map[Disposition]int),
		Warnings:     append([]Warning(nil), in.Warnings...),
	}

	// 1. Unused selectors
	purgeErr := in.PurgeErr
	if purgeErr == nil && in.Rejected == nil {
		purgeErr = errPurgeSkipped
	}
	if purgeErr != nil {
		result.Warnings = append(result.Warnings, Warning{
			Kind:   WarningPurgeFailed,
			Reason: "unused-selector data unavailable: " + purgeErr.Error(),
		})
	} else {
		result.UnusedAvailable = true
		result.Unused = buildUnused(in.Rejected, in.Classifier)
	}

	// 2. Missing classes
	result.Missing = make(map[string][]string)
	framework := 0
	for _, class := range in.References.Classes() {
		disposition := in.Classifier.Classify(class)
		result.Dispositions[disposition]++
		if disposition == DispositionFrameworkGenerated {
			framework++
		}

		if disposition != DispositionNone || in.Classes.All.Has(class) {
			continue
		}
		result.Missing[class] = in.References.Files(class)
	}

	// 3. Summary, computed once both reports are final
	unusedCount := 0
	for _, selectors := range result.Unused {
		unusedCount += len(selectors)
	}
	result.Summary = Summary{
		FilesAnalyzed:      in.CSSFiles + in.SourceFiles,
		CSSFiles:           in.CSSFiles,
		SourceFiles:        in.SourceFiles,
		ClassesDefined:     in.Classes.All.Len(),
		MediaScopedClasses: in.Classes.MediaScoped.Len(),
		ReferencedClasses:  len(in.References),
		UnusedCount:        unusedCount,
		MissingCount:       len(result.Missing),
		FrameworkClasses:   framework,
	}

	return result
}

// buildUnused annotates the opaque purge result. Selectors are kept as
// given, only deduplicated and sorted per file.
func buildUnused(rejected map[string][]string, classifier *Classifier) map[string][]UnusedSelector {
	unused := make(map[string][]UnusedSelector, len(rejected))
	for file, selectors := range rejected {
		seen := make(map[string]bool, len(selectors))
		entries := make([]UnusedSelector, 0, len(selectors))
		for _, sel := range selectors {
			if sel == "" || seen[sel] {
				continue
			}
			seen[sel] = true
			entries = append(entries, UnusedSelector{
				Selector:           sel,
				PossiblyResponsive: possiblyResponsive(sel, classifier),
			})
		}
		if len(entries) == 0 {
			continue
		}
		sort.Slice(entries, func(i, j int) bool {
			return entries[i].Selector < entries[j].Selector
		})
		unused[file] = entries
	}
	return unused
}

// possiblyResponsive reports whether a rejected selector may only be
// reachable at breakpoints the scanned content cannot show
func possiblyResponsive(selector string, classifier *Classifier) bool {
	classes := ClassesInSelector(selector)
	if len(classes) == 0 {
		classes = []string{NormalizeClassName(selector)}
	}
	for _, c := range classes {
		if classifier.IsResponsive(c) {
			return true
		}
	}
	return false
}
