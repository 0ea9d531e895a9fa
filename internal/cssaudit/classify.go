package cssaudit

import (
	"fmt"
	"regexp"
	"strings"
)

// Rule is a named predicate over a class name tagged with a disposition.
// Rules are evaluated in order and the first match is authoritative.
type Rule struct {
	Name        string
	Disposition Disposition
	Match       func(className string) bool
}

// RuleConfig is the configuration the classifier is built from.
// Pattern entries are regular expressions; an entry without regex
// metacharacters is treated as a literal prefix.
type RuleConfig struct {
	Allow              []string // exact class names (state toggles etc.)
	AllowPatterns      []string // structural class families
	FrameworkPatterns  []string // utility-framework generated names
	ResponsivePatterns []string // breakpoint / device-size naming
}

// Safelist is the part of the classification config handed to the purge
// step: exact names and compiled patterns that must never be rejected.
type Safelist struct {
	Standard []string
	Patterns []*regexp.Regexp
}

// Matches reports whether a class name is safelisted
func (s Safelist) Matches(className string) bool {
	for _, name := range s.Standard {
		if name == className {
			return true
		}
	}
	for _, re := range s.Patterns {
		if re.MatchString(className) {
			return true
		}
	}
	return false
}

// Classifier assigns exactly one Disposition to a class name.
// It is immutable after construction and safe for concurrent use.
type Classifier struct {
	rules         []Rule
	allow         ClassSet
	allowPatterns []*regexp.Regexp
	responsive    []*regexp.Regexp
	mediaScoped   ClassSet
}

// NewClassifier compiles cfg into an ordered rule list. Every class in
// mediaScoped is pre-registered as explicitly allowed.
func NewClassifier(cfg RuleConfig, mediaScoped ClassSet) (*Classifier, error) {
	allowPatterns, err := compilePatterns(cfg.AllowPatterns)
	if err != nil {
		return nil, fmt.Errorf("allow patterns: %w", err)
	}
	framework, err := compilePatterns(cfg.FrameworkPatterns)
	if err != nil {
		return nil, fmt.Errorf("framework patterns: %w", err)
	}
	responsive, err := compilePatterns(cfg.ResponsivePatterns)
	if err != nil {
		return nil, fmt.Errorf("responsive patterns: %w", err)
	}

	allow := NewClassSet(cfg.Allow...)
	media := make(ClassSet, len(mediaScoped))
	for name := range mediaScoped {
		media.Add(name)
	}
	explicit := allow.Union(media)

	c := &Classifier{
		allow:         explicit,
		allowPatterns: allowPatterns,
		responsive:    responsive,
		mediaScoped:   media,
	}

	c.rules = []Rule{
		{
			Name:        "allow-list",
			Disposition: DispositionExplicitAllow,
			Match:       explicit.Has,
		},
		{
			Name:        "allow-patterns",
			Disposition: DispositionPatternAllow,
			Match:       anyMatch(allowPatterns),
		},
		{
			Name:        "framework-patterns",
			Disposition: DispositionFrameworkGenerated,
			Match:       anyMatch(framework),
		},
		{
			Name:        "responsive-patterns",
			Disposition: DispositionResponsiveConvention,
			Match:       anyMatch(responsive),
		},
	}

	return c, nil
}

// Classify returns the disposition of the first matching rule
func (c *Classifier) Classify(className string) Disposition {
	d, _ := c.Explain(className)
	return d
}

// Explain returns the disposition and the name of the rule that decided it.
// The rule name is empty for DispositionNone.
func (c *Classifier) Explain(className string) (Disposition, string) {
	for _, rule := range c.rules {
		if rule.Match(className) {
			return rule.Disposition, rule.Name
		}
	}
	return DispositionNone, ""
}

// Rules returns a copy of the ordered rule list
func (c *Classifier) Rules() []Rule {
	out := make([]Rule, len(c.rules))
	copy(out, c.rules)
	return out
}

// IsResponsive reports whether a class looks responsive regardless of
// rule priority: it matches a responsive-convention pattern or is declared
// inside a media block.
func (c *Classifier) IsResponsive(className string) bool {
	if c.mediaScoped.Has(className) {
		return true
	}
	for _, re := range c.responsive {
		if re.MatchString(className) {
			return true
		}
	}
	return false
}

// Safelist returns the explicit and pattern allow rules for the purge step
func (c *Classifier) Safelist() Safelist {
	return Safelist{
		Standard: c.allow.Sorted(),
		Patterns: append([]*regexp.Regexp(nil), c.allowPatterns...),
	}
}

// compilePatterns compiles regex entries, turning plain words into prefixes
func compilePatterns(patterns []string) ([]*regexp.Regexp, error) {
	compiled := make([]*regexp.Regexp, 0, len(patterns))
	for _, p := range patterns {
		if p == "" {
			continue
		}
		expr := p
		if regexp.QuoteMeta(p) == p {
			expr = "^" + p
		}
		re, err := regexp.Compile(expr)
		if err != nil {
			return nil, fmt.Errorf("pattern %q: %w", p, err)
		}
		compiled = append(compiled, re)
	}
	return compiled, nil
}

func anyMatch(patterns []*regexp.Regexp) func(string) bool {
	return func(className string) bool {
		for _, re := range patterns {
			if re.MatchString(className) {
				return true
			}
		}
		return false
	}
}

// mergeUnique appends the entries of extra not already in base
func mergeUnique(base, extra []string) []string {
	out := append([]string(nil), base...)
	seen := make(map[string]bool, len(base))
	for _, s := range base {
		seen[s] = true
	}
	for _, s := range extra {
		s = strings.TrimSpace(s)
		if s == "" || seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
	}
	return out
}

// Extend returns a copy of cfg with the extra entries appended
func (cfg RuleConfig) Extend(extra RuleConfig) RuleConfig {
	return RuleConfig{
		Allow:              mergeUnique(cfg.Allow, extra.Allow),
		AllowPatterns:      mergeUnique(cfg.AllowPatterns, extra.AllowPatterns),
		FrameworkPatterns:  mergeUnique(cfg.FrameworkPatterns, extra.FrameworkPatterns),
		ResponsivePatterns: mergeUnique(cfg.ResponsivePatterns, extra.ResponsivePatterns),
	}
}
