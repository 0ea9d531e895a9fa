package cssaudit

import "sort"

// ClassSet is a set of normalized class names (no leading dot).
type ClassSet map[string]struct{}

// NewClassSet creates a set holding the given names
func NewClassSet(names ...string) ClassSet {
	s := make(ClassSet, len(names))
	for _, n := range names {
		s.Add(n)
	}
	return s
}

// Add inserts a name, ignoring empty strings
func (s ClassSet) Add(name string) {
	if name == "" {
		return
	}
	s[name] = struct{}{}
}

// Has reports whether name is in the set
func (s ClassSet) Has(name string) bool {
	_, ok := s[name]
	return ok
}

// Len returns the number of names
func (s ClassSet) Len() int {
	return len(s)
}

// Union returns a new set containing the members of s and other
func (s ClassSet) Union(other ClassSet) ClassSet {
	out := make(ClassSet, len(s)+len(other))
	for n := range s {
		out[n] = struct{}{}
	}
	for n := range other {
		out[n] = struct{}{}
	}
	return out
}

// Sorted returns the members in lexical order
func (s ClassSet) Sorted() []string {
	names := make([]string, 0, len(s))
	for n := range s {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// ExtractedClasses is the Selector Extractor output.
// All is always Regular ∪ MediaScoped; a class declared in both scopes
// is a member of both.
type ExtractedClasses struct {
	Regular     ClassSet // declared outside any @media block
	MediaScoped ClassSet // declared inside at least one @media block
	All         ClassSet
}

// ReferenceIndex maps a class name to the set of files referencing it.
// Keys are only created together with a file, so no key has an empty set.
type ReferenceIndex map[string]map[string]struct{}

// Add records that file references class
func (idx ReferenceIndex) Add(class, file string) {
	if class == "" || file == "" {
		return
	}
	files, ok := idx[class]
	if !ok {
		files = make(map[string]struct{})
		idx[class] = files
	}
	files[file] = struct{}{}
}

// Files returns the sorted files referencing class
func (idx ReferenceIndex) Files(class string) []string {
	files := make([]string, 0, len(idx[class]))
	for f := range idx[class] {
		files = append(files, f)
	}
	sort.Strings(files)
	return files
}

// Classes returns all referenced class names, sorted
func (idx ReferenceIndex) Classes() []string {
	names := make([]string, 0, len(idx))
	for n := range idx {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Merge copies every entry of other into idx
func (idx ReferenceIndex) Merge(other ReferenceIndex) {
	for class, files := range other {
		for f := range files {
			idx.Add(class, f)
		}
	}
}

// Disposition is the outcome of classifying a class name
type Disposition int

// Dispositions in rule priority order; DispositionNone means no rule matched.
const (
	DispositionNone Disposition = iota
	DispositionExplicitAllow
	DispositionPatternAllow
	DispositionFrameworkGenerated
	DispositionResponsiveConvention
)

// AllDispositions lists every disposition, DispositionNone first
func AllDispositions() []Disposition {
	return []Disposition{
		DispositionNone,
		DispositionExplicitAllow,
		DispositionPatternAllow,
		DispositionFrameworkGenerated,
		DispositionResponsiveConvention,
	}
}

func (d Disposition) String() string {
	switch d {
	case DispositionExplicitAllow:
		return "explicit-allow"
	case DispositionPatternAllow:
		return "pattern-allow"
	case DispositionFrameworkGenerated:
		return "framework-generated"
	case DispositionResponsiveConvention:
		return "responsive-convention"
	default:
		return "none"
	}
}

// WarningKind categorizes recoverable problems recorded during a run
type WarningKind string

// Warning kinds
const (
	WarningUnreadable  WarningKind = "unreadable"
	WarningPurgeFailed WarningKind = "purge-failed"
	WarningNoInput     WarningKind = "no-input"
)

// Warning is a recoverable problem attached to a Result
type Warning struct {
	Kind   WarningKind `json:"kind"`
	Path   string      `json:"path,omitempty"`
	Reason string      `json:"reason"`
}

func (w Warning) String() string {
	if w.Path == "" {
		return w.Reason
	}
	return w.Path + ": " + w.Reason
}

// UnusedSelector is one selector the purge step found unreferenced
type UnusedSelector struct {
	Selector string `json:"selector"`
	// PossiblyResponsive marks selectors that may only be reachable under
	// conditions the scanned content cannot show (breakpoints, media scope).
	PossiblyResponsive bool `json:"possibly_responsive"`
}

// Summary holds the aggregate counts of a run
type Summary struct {
	FilesAnalyzed      int `json:"files_analyzed"`
	CSSFiles           int `json:"css_files"`
	SourceFiles        int `json:"source_files"`
	ClassesDefined     int `json:"classes_defined"`
	MediaScopedClasses int `json:"media_scoped_classes"`
	ReferencedClasses  int `json:"referenced_classes"`
	UnusedCount        int `json:"unused_count"` // meaningful only when Result.UnusedAvailable
	MissingCount       int `json:"missing_count"`
	FrameworkClasses   int `json:"framework_classes"`
}

// Result is the outcome of one reconciliation run.
// It is built once by Reconcile and only read afterwards.
type Result struct {
	// Unused maps CSS file display name to its rejected selectors.
	// Nil when UnusedAvailable is false.
	Unused map[string][]UnusedSelector
	// UnusedAvailable is false when the purge step failed or did not run;
	// that is "unknown", not "zero unused".
	UnusedAvailable bool
	// Missing maps a class name to the sorted files referencing it.
	Missing map[string][]string
	Summary Summary
	// Dispositions counts referenced classes per classification outcome.
	Dispositions map[Disposition]int
	Warnings     []Warning
}

// UnusedFiles returns the CSS files with unused selectors, sorted
func (r *Result) UnusedFiles() []string {
	files := make([]string, 0, len(r.Unused))
	for f := range r.Unused {
		files = append(files, f)
	}
	sort.Strings(files)
	return files
}

// MissingClasses returns the missing class names, sorted
func (r *Result) MissingClasses() []string {
	names := make([]string, 0, len(r.Missing))
	for n := range r.Missing {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
