// Package cssaudit reconciles CSS class definitions with class usage in
// markup and component sources.
//
// For a set of stylesheets and a set of source files it reports selectors
// that are defined but unused, classes that are referenced but never
// defined, and filters the usual false positives: classes declared only
// inside @media blocks, utility-framework class names, and responsive
// naming conventions.
//
// # Library
//
//	cfg := cssaudit.DefaultConfig()
//	cfg.CSS = []string{"web/styles/**/*.css"}
//	cfg.Sources = []string{"web/templates/**/*.html"}
//	result, err := cssaudit.Analyze(ctx, cfg)
//	if err != nil {
//		return err
//	}
//	cssaudit.WriteMissingReport(os.Stdout, result)
//
// Unused selectors come from a Purger. The default LexerPurger runs in
// process; CommandPurger drives a PurgeCSS-compatible command line tool.
// When the purge step fails, Result.UnusedAvailable is false and the
// missing-class report is still produced.
//
// # CLI Tool
//
//	go install github.com/yacobolo/cssaudit/cmd/cssaudit@latest
//
// See cmd/cssaudit for the command line interface.
package cssaudit
