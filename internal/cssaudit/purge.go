package cssaudit

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/tdewolff/parse/v2/css"
)

// ErrPurgeTimeout is returned when the purge command exceeds its timeout
var ErrPurgeTimeout = errors.New("purge command timed out")

// CSSSource is one stylesheet handed to the purge step
type CSSSource struct {
	Name string // display name, used as the key of the purge result
	Text string
}

// PurgeRequest is the input of a purge run
type PurgeRequest struct {
	Content  string // concatenated referencable source text
	CSS      []CSSSource
	Safelist Safelist
}

// Purger computes, per CSS source, the selectors not referenced by the
// content. The returned map is keyed by CSSSource.Name.
type Purger interface {
	Purge(ctx context.Context, req PurgeRequest) (map[string][]string, error)
}

// DefaultPurgeTimeout bounds a purge run when no timeout is configured
const DefaultPurgeTimeout = 60 * time.Second

// CommandPurger runs a PurgeCSS-compatible command line tool:
//
//	<Command> <Args...> --css a.css b.css --content content.html --safelist x y --rejected
//
// and decodes the JSON array it prints: [{"file": "...", "rejected": [...]}].
type CommandPurger struct {
	Command string        // e.g. "purgecss" or "npx"
	Args    []string      // leading arguments, e.g. ["purgecss"] for npx
	Timeout time.Duration // 0 means DefaultPurgeTimeout
}

type purgeOutput struct {
	File     string   `json:"file"`
	Rejected []string `json:"rejected"`
}

// Purge writes the request to a temp dir and runs the command under the timeout
func (p CommandPurger) Purge(ctx context.Context, req PurgeRequest) (map[string][]string, error) {
	if p.Command == "" {
		return nil, errors.New("purge command not configured")
	}

	timeout := p.Timeout
	if timeout <= 0 {
		timeout = DefaultPurgeTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	dir, err := os.MkdirTemp("", "cssaudit-purge-*")
	if err != nil {
		return nil, fmt.Errorf("create temp dir: %w", err)
	}
	defer os.RemoveAll(dir)

	contentPath := filepath.Join(dir, "content.html")
	if err := os.WriteFile(contentPath, []byte(req.Content), 0o600); err != nil {
		return nil, fmt.Errorf("write content: %w", err)
	}

	// Temp file path -> display name
	names := make(map[string]string, len(req.CSS))
	cssPaths := make([]string, 0, len(req.CSS))
	for i, src := range req.CSS {
		path := filepath.Join(dir, fmt.Sprintf("%03d.css", i))
		if err := os.WriteFile(path, []byte(src.Text), 0o600); err != nil {
			return nil, fmt.Errorf("write css %s: %w", src.Name, err)
		}
		names[path] = src.Name
		cssPaths = append(cssPaths, path)
	}

	args := append([]string(nil), p.Args...)
	args = append(args, "--css")
	args = append(args, cssPaths...)
	args = append(args, "--content", contentPath)
	if len(req.Safelist.Standard) > 0 {
		args = append(args, "--safelist")
		args = append(args, req.Safelist.Standard...)
	}
	args = append(args, "--rejected")

	// #nosec G204 - command comes from trusted configuration
	cmd := exec.CommandContext(ctx, p.Command, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return nil, fmt.Errorf("%w after %s", ErrPurgeTimeout, timeout)
		}
		return nil, fmt.Errorf("run %s: %w: %s", p.Command, err, strings.TrimSpace(stderr.String()))
	}

	var outputs []purgeOutput
	if err := json.Unmarshal(stdout.Bytes(), &outputs); err != nil {
		return nil, fmt.Errorf("decode purge output: %w", err)
	}

	result := make(map[string][]string, len(outputs))
	for _, out := range outputs {
		name, ok := names[out.File]
		if !ok {
			name = out.File
		}
		// The command line only carries literal names; apply the pattern
		// half of the safelist here
		result[name] = dropSafelisted(out.Rejected, req.Safelist)
	}
	return result, nil
}

// dropSafelisted removes selectors whose classes are all safelisted
func dropSafelisted(selectors []string, safelist Safelist) []string {
	if len(safelist.Patterns) == 0 {
		return selectors
	}
	kept := make([]string, 0, len(selectors))
	for _, sel := range selectors {
		classes := ClassesInSelector(sel)
		if len(classes) > 0 && allSafelisted(classes, safelist) {
			continue
		}
		kept = append(kept, sel)
	}
	return kept
}

func allSafelisted(classes []string, safelist Safelist) bool {
	for _, c := range classes {
		if !safelist.Matches(c) {
			return false
		}
	}
	return true
}

// contentWordPattern is the PurgeCSS default extractor
var contentWordPattern = regexp.MustCompile(`[A-Za-z0-9_-]+`)

// LexerPurger is an in-process purge step built on the CSS lexer. A
// selector is rejected when one of its classes is neither a word of the
// content nor safelisted. Selectors without classes are always kept.
type LexerPurger struct{}

// Purge never fails unless ctx is cancelled
func (LexerPurger) Purge(ctx context.Context, req PurgeRequest) (map[string][]string, error) {
	words := contentWords(req.Content)

	result := make(map[string][]string, len(req.CSS))
	for _, src := range req.CSS {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		var rejected []string
		seen := make(map[string]bool)
		forEachPrelude(src.Text, func(prelude []cssToken) {
			for _, selector := range splitSelectorList(prelude) {
				classes := preludeClasses(selector)
				if len(classes) == 0 {
					continue
				}
				for _, c := range classes {
					if !words.Has(c) && !req.Safelist.Matches(c) {
						text := joinTokens(selector)
						if !seen[text] {
							seen[text] = true
							rejected = append(rejected, text)
						}
						break
					}
				}
			}
		})
		result[src.Name] = rejected
	}
	return result, nil
}

// contentWords collects extractor words plus whitespace/quote delimited
// raw tokens so variant names like "md:flex" are found too
func contentWords(content string) ClassSet {
	words := make(ClassSet)
	for _, w := range contentWordPattern.FindAllString(content, -1) {
		words.Add(w)
	}
	for _, w := range strings.FieldsFunc(content, func(r rune) bool {
		return r == ' ' || r == '\t' || r == '\n' || r == '\r' || r == '"' || r == '\'' || r == '`' || r == '<' || r == '>' || r == '='
	}) {
		words.Add(w)
	}
	return words
}

// splitSelectorList splits a rule prelude on commas outside parentheses
func splitSelectorList(prelude []cssToken) [][]cssToken {
	var parts [][]cssToken
	var current []cssToken
	depth := 0
	for _, tok := range prelude {
		switch tok.tt {
		case css.LeftParenthesisToken, css.FunctionToken:
			depth++
		case css.RightParenthesisToken:
			if depth > 0 {
				depth--
			}
		case css.CommaToken:
			if depth == 0 {
				parts = append(parts, current)
				current = nil
				continue
			}
		}
		current = append(current, tok)
	}
	if len(current) > 0 {
		parts = append(parts, current)
	}
	return parts
}

// joinTokens renders selector tokens back to text with collapsed whitespace
func joinTokens(tokens []cssToken) string {
	var b strings.Builder
	for _, tok := range tokens {
		if tok.tt == css.WhitespaceToken {
			b.WriteByte(' ')
			continue
		}
		b.WriteString(tok.text)
	}
	return strings.Join(strings.Fields(b.String()), " ")
}
