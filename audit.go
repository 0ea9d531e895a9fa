package cssaudit

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"runtime"
	"strings"
	"time"

	"github.com/yacobolo/cssaudit/internal/cssaudit"
	"golang.org/x/sync/errgroup"
)

// Re-exported engine types
type (
	Result         = cssaudit.Result
	Summary        = cssaudit.Summary
	Warning        = cssaudit.Warning
	WarningKind    = cssaudit.WarningKind
	UnusedSelector = cssaudit.UnusedSelector
	Disposition    = cssaudit.Disposition
	RuleConfig     = cssaudit.RuleConfig
	Purger         = cssaudit.Purger
	PurgeRequest   = cssaudit.PurgeRequest
	CommandPurger  = cssaudit.CommandPurger
	LexerPurger    = cssaudit.LexerPurger
	Issue          = cssaudit.Issue
)

var (
	// ErrNoInput is returned when there are no CSS files or no source files
	// to reconcile. The accompanying Result carries a no-input warning.
	ErrNoInput = errors.New("nothing to reconcile")

	// ErrPurgeTimeout is recorded when the purge step exceeds its timeout
	ErrPurgeTimeout = cssaudit.ErrPurgeTimeout
)

// DefaultPurgeTimeout bounds the purge step when no timeout is configured
const DefaultPurgeTimeout = cssaudit.DefaultPurgeTimeout

// Config controls one audit run
type Config struct {
	Root    string   // Directory patterns are relative to (default ".")
	CSS     []string // Glob patterns for stylesheets
	Sources []string // Glob patterns for markup and component sources
	Workers int      // Concurrent file reads (default GOMAXPROCS)

	Rules RuleConfig // Classification tables; see DefaultRuleConfig

	// Purger computes unused selectors. Nil means the in-process LexerPurger.
	Purger       Purger
	PurgeTimeout time.Duration // 0 means no timeout beyond ctx

	Logger *slog.Logger // nil discards
}

// DefaultSources are the source patterns scanned when none are configured
var DefaultSources = []string{
	"**/*.html",
	"**/*.htm",
	"**/*.templ",
	"**/*.go",
	"**/*.{js,jsx,ts,tsx}",
	"**/*.{vue,svelte,astro}",
	"**/*.{erb,php,hbs,njk,liquid}",
}

// DefaultConfig returns a Config that audits every stylesheet under the
// current directory against the common markup and component sources
func DefaultConfig() Config {
	return Config{
		Root:         ".",
		CSS:          []string{"**/*.css"},
		Sources:      append([]string(nil), DefaultSources...),
		Rules:        cssaudit.DefaultRuleConfig(),
		PurgeTimeout: DefaultPurgeTimeout,
	}
}

// DefaultRuleConfig returns the built-in classification tables
func DefaultRuleConfig() RuleConfig {
	return cssaudit.DefaultRuleConfig()
}

func (c Config) logger() *slog.Logger {
	if c.Logger != nil {
		return c.Logger
	}
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func (c Config) root() string {
	if c.Root == "" {
		return "."
	}
	return c.Root
}

func (c Config) workers() int {
	if c.Workers > 0 {
		return c.Workers
	}
	return runtime.GOMAXPROCS(0)
}

// Analyze discovers the configured files and reconciles them
func Analyze(ctx context.Context, cfg Config) (*Result, error) {
	log := cfg.logger()

	cssPaths, cssStats, err := DiscoverFiles(cfg.root(), cfg.CSS)
	if err != nil {
		return nil, fmt.Errorf("discovering CSS files: %w", err)
	}
	sourcePaths, sourceStats, err := DiscoverFiles(cfg.root(), cfg.Sources)
	if err != nil {
		return nil, fmt.Errorf("discovering source files: %w", err)
	}

	log.Debug("discovered files",
		"css", cssStats.FilesSelected,
		"sources", sourceStats.FilesSelected,
		"skipped", cssStats.FilesSkipped+sourceStats.FilesSkipped)

	return AnalyzeFiles(ctx, cfg, cssPaths, sourcePaths)
}

// AnalyzeFiles reconciles an explicit list of CSS and source files.
// Paths are resolved against cfg.Root and used as display names.
//
// Unreadable files and purge failures are recorded as warnings on the
// result. Invalid rule patterns and cancellation of ctx are errors.
func AnalyzeFiles(ctx context.Context, cfg Config, cssPaths, sourcePaths []string) (*Result, error) {
	log := cfg.logger()

	// Fail on bad patterns before touching the filesystem
	if _, err := cssaudit.NewClassifier(cfg.Rules, nil); err != nil {
		return nil, fmt.Errorf("invalid rules: %w", err)
	}

	if len(cssPaths) == 0 || len(sourcePaths) == 0 {
		return noInputResult(noInputReason(len(cssPaths), len(sourcePaths), "matched"), nil), ErrNoInput
	}

	cssFiles, warnings, err := readFiles(ctx, cfg.root(), cssPaths, cfg.workers())
	if err != nil {
		return nil, err
	}
	sourceFiles, sourceWarnings, err := readFiles(ctx, cfg.root(), sourcePaths, cfg.workers())
	if err != nil {
		return nil, err
	}
	warnings = append(warnings, sourceWarnings...)
	for _, w := range warnings {
		log.Debug("skipping file", "path", w.Path, "reason", w.Reason)
	}

	// Reconciling against an empty side would report everything
	if len(cssFiles) == 0 || len(sourceFiles) == 0 {
		reason := noInputReason(len(cssFiles), len(sourceFiles), "could be read")
		return noInputResult(reason, warnings), ErrNoInput
	}

	// Sorted path order keeps the concatenation stable across runs
	var stylesheet strings.Builder
	cssSources := make([]cssaudit.CSSSource, 0, len(cssFiles))
	for _, f := range cssFiles {
		stylesheet.WriteString(f.text)
		stylesheet.WriteString("\n")
		cssSources = append(cssSources, cssaudit.CSSSource{Name: f.path, Text: f.text})
	}

	var content strings.Builder
	for _, f := range sourceFiles {
		content.WriteString(f.text)
		content.WriteString("\n")
	}

	classes := cssaudit.ExtractSelectors(stylesheet.String())
	references, err := extractReferences(ctx, sourceFiles, cfg.workers())
	if err != nil {
		return nil, err
	}
	log.Debug("extracted classes",
		"defined", classes.All.Len(),
		"media_scoped", classes.MediaScoped.Len(),
		"referenced", len(references))

	classifier, err := cssaudit.NewClassifier(cfg.Rules, classes.MediaScoped)
	if err != nil {
		return nil, fmt.Errorf("building classifier: %w", err)
	}

	rejected, purgeErr := runPurge(ctx, cfg, cssaudit.PurgeRequest{
		Content:  content.String(),
		CSS:      cssSources,
		Safelist: classifier.Safelist(),
	})
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if purgeErr != nil {
		log.Debug("purge step failed", "error", purgeErr)
	}

	return cssaudit.Reconcile(cssaudit.ReconcileInput{
		Classes:     classes,
		References:  references,
		Classifier:  classifier,
		Rejected:    rejected,
		PurgeErr:    purgeErr,
		CSSFiles:    len(cssFiles),
		SourceFiles: len(sourceFiles),
		Warnings:    warnings,
	}), nil
}

// runPurge invokes the configured purger under the purge timeout
func runPurge(ctx context.Context, cfg Config, req cssaudit.PurgeRequest) (map[string][]string, error) {
	purger := cfg.Purger
	if purger == nil {
		purger = cssaudit.LexerPurger{}
	}

	purgeCtx := ctx
	if cfg.PurgeTimeout > 0 {
		var cancel context.CancelFunc
		purgeCtx, cancel = context.WithTimeout(ctx, cfg.PurgeTimeout)
		defer cancel()
	}

	cfg.logger().Debug("running purge step", "purger", fmt.Sprintf("%T", purger), "css_files", len(req.CSS))
	start := time.Now()

	rejected, err := purger.Purge(purgeCtx, req)
	if err != nil {
		if ctx.Err() == nil && errors.Is(purgeCtx.Err(), context.DeadlineExceeded) && !errors.Is(err, ErrPurgeTimeout) {
			err = fmt.Errorf("%w after %s", ErrPurgeTimeout, cfg.PurgeTimeout)
		}
		return nil, err
	}

	cfg.logger().Debug("purge step finished", "duration", time.Since(start))
	return rejected, nil
}

// noInputResult is the result of a run with nothing to reconcile. The
// no-input warning comes first, followed by any earlier warnings.
func noInputResult(reason string, warnings []Warning) *Result {
	all := make([]Warning, 0, len(warnings)+1)
	all = append(all, Warning{Kind: cssaudit.WarningNoInput, Reason: reason})
	all = append(all, warnings...)
	return &Result{
		Missing:      make(map[string][]string),
		Dispositions: make(map[Disposition]int),
		Warnings:     all,
	}
}

// noInputReason names the empty side of the reconciliation
func noInputReason(cssCount, sourceCount int, state string) string {
	switch {
	case cssCount == 0 && sourceCount == 0:
		return "no CSS files and no source files " + state
	case cssCount == 0:
		return "no CSS files " + state
	default:
		return "no source files " + state
	}
}

type fileText struct {
	path string
	text string
}

// readFiles reads paths concurrently. Each goroutine writes only its own
// slot; slots are merged in input order after Wait. Unreadable files become
// warnings.
func readFiles(ctx context.Context, root string, paths []string, workers int) ([]fileText, []Warning, error) {
	type slot struct {
		text string
		err  error
	}
	slots := make([]slot, len(paths))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, p := range paths {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			text, err := readFile(root, p)
			slots[i] = slot{text: text, err: err}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}

	files := make([]fileText, 0, len(paths))
	var warnings []Warning
	for i, s := range slots {
		if s.err != nil {
			warnings = append(warnings, Warning{
				Kind:   cssaudit.WarningUnreadable,
				Path:   paths[i],
				Reason: s.err.Error(),
			})
			continue
		}
		files = append(files, fileText{path: paths[i], text: s.text})
	}
	return files, warnings, nil
}

// extractReferences indexes each source file concurrently. Every goroutine
// builds its own partial index; partials are merged in path order after Wait.
func extractReferences(ctx context.Context, files []fileText, workers int) (cssaudit.ReferenceIndex, error) {
	partials := make([]cssaudit.ReferenceIndex, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, f := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			partials[i] = cssaudit.ExtractReferences(map[string]string{f.path: f.text})
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	index := make(cssaudit.ReferenceIndex)
	for _, partial := range partials {
		index.Merge(partial)
	}
	return index, nil
}
