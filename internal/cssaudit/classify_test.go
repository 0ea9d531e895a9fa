package cssaudit

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDefaultClassifier(t *testing.T, mediaScoped ...string) *Classifier {
	t.Helper()
	c, err := NewClassifier(DefaultRuleConfig(), NewClassSet(mediaScoped...))
	require.NoError(t, err)
	return c
}

func TestClassifierDefaults(t *testing.T) {
	c := newDefaultClassifier(t, "sidebar-collapsed")

	tests := []struct {
		class string
		want  Disposition
		rule  string
	}{
		{"btn-primary", DispositionNone, ""},
		{"card", DispositionNone, ""},
		{"active", DispositionExplicitAllow, "allow-list"},
		{"is-open", DispositionExplicitAllow, "allow-list"},
		{"sidebar-collapsed", DispositionExplicitAllow, "allow-list"},
		{"modal-backdrop", DispositionPatternAllow, "allow-patterns"},
		{"fa-user", DispositionPatternAllow, "allow-patterns"},
		{"mt-4", DispositionPatternAllow, "allow-patterns"},
		{"bg-blue-500", DispositionFrameworkGenerated, "framework-patterns"},
		{"text-white", DispositionFrameworkGenerated, "framework-patterns"},
		{"md:flex", DispositionFrameworkGenerated, "framework-patterns"},
		{"hover:bg-red-600", DispositionFrameworkGenerated, "framework-patterns"},
		{"w-[37px]", DispositionFrameworkGenerated, "framework-patterns"},
		{"flex", DispositionFrameworkGenerated, "framework-patterns"},
		{"rounded-lg", DispositionFrameworkGenerated, "framework-patterns"},
		{"menu-mobile", DispositionResponsiveConvention, "responsive-patterns"},
		{"desktop-only", DispositionResponsiveConvention, "responsive-patterns"},
		{"col-md-6", DispositionResponsiveConvention, "responsive-patterns"},
		{"nav-lg", DispositionResponsiveConvention, "responsive-patterns"},
	}

	for _, tt := range tests {
		t.Run(tt.class, func(t *testing.T) {
			got, rule := c.Explain(tt.class)
			assert.Equal(t, tt.want, got, "disposition for %q was %s", tt.class, got)
			assert.Equal(t, tt.rule, rule)
			assert.Equal(t, tt.want, c.Classify(tt.class))
		})
	}
}

func TestFrameworkPatternsRequireUtilityValues(t *testing.T) {
	c := newDefaultClassifier(t)

	// Component names that merely share a utility prefix stay unclassified
	handWritten := []string{
		"border-card", "shadow-card", "order-summary", "leading-text",
		"break-word", "fill-form", "touch-target", "outline-box",
		"transition-page", "grid-cols-layout", "ring-menu", "opacity-panel",
		"cursor-trail", "duration-badge", "basis-block", "gap-filler",
	}
	for _, class := range handWritten {
		t.Run(class, func(t *testing.T) {
			assert.Equal(t, DispositionNone, c.Classify(class))
		})
	}

	utilities := []string{
		"border", "border-2", "border-x", "border-dashed", "shadow", "shadow-lg",
		"order-first", "-order-1", "leading-6", "leading-tight", "align-top",
		"break-words", "fill-none", "touch-none", "outline-none",
		"outline-offset-2", "transition-colors", "grid-cols-3", "ring-2",
		"opacity-50", "cursor-pointer", "duration-300", "basis-1/2", "gap-px",
		"rounded-tl-lg", "translate-x-1/2", "backdrop-blur-sm", "z-10",
	}
	for _, class := range utilities {
		t.Run(class, func(t *testing.T) {
			assert.Equal(t, DispositionFrameworkGenerated, c.Classify(class))
		})
	}
}

func TestClassifierFirstMatchWins(t *testing.T) {
	// "menu-mobile" matches the responsive table, but a media-scoped
	// declaration registers it as explicitly allowed first
	plain := newDefaultClassifier(t)
	assert.Equal(t, DispositionResponsiveConvention, plain.Classify("menu-mobile"))

	scoped := newDefaultClassifier(t, "menu-mobile")
	assert.Equal(t, DispositionExplicitAllow, scoped.Classify("menu-mobile"))

	// An allow pattern shadows a framework pattern for the same name
	c, err := NewClassifier(RuleConfig{
		AllowPatterns:     []string{`^text-`},
		FrameworkPatterns: []string{`^text-`},
	}, nil)
	require.NoError(t, err)
	assert.Equal(t, DispositionPatternAllow, c.Classify("text-white"))
}

func TestClassifierRuleOrder(t *testing.T) {
	c := newDefaultClassifier(t)

	var names []string
	for _, rule := range c.Rules() {
		names = append(names, rule.Name)
	}
	require.Equal(t, []string{"allow-list", "allow-patterns", "framework-patterns", "responsive-patterns"}, names)

	// Rules returns a copy
	rules := c.Rules()
	rules[0] = Rule{Name: "mutated"}
	assert.Equal(t, "allow-list", c.Rules()[0].Name)
}

func TestClassifierPlainWordIsPrefix(t *testing.T) {
	c, err := NewClassifier(RuleConfig{AllowPatterns: []string{"js-"}}, nil)
	require.NoError(t, err)

	assert.Equal(t, DispositionPatternAllow, c.Classify("js-toggle"))
	assert.Equal(t, DispositionNone, c.Classify("no-js-toggle"))
}

func TestClassifierInvalidPattern(t *testing.T) {
	tests := []struct {
		name    string
		cfg     RuleConfig
		wantErr string
	}{
		{
			name:    "allow pattern",
			cfg:     RuleConfig{AllowPatterns: []string{"("}},
			wantErr: "allow patterns",
		},
		{
			name:    "framework pattern",
			cfg:     RuleConfig{FrameworkPatterns: []string{"[a-"}},
			wantErr: "framework patterns",
		},
		{
			name:    "responsive pattern",
			cfg:     RuleConfig{ResponsivePatterns: []string{"a**"}},
			wantErr: "responsive patterns",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewClassifier(tt.cfg, nil)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestClassifierIsResponsive(t *testing.T) {
	c := newDefaultClassifier(t, "sidebar")

	assert.True(t, c.IsResponsive("sidebar"), "media scoped")
	assert.True(t, c.IsResponsive("menu-mobile"), "responsive pattern")
	assert.False(t, c.IsResponsive("card"))
}

func TestClassifierSafelist(t *testing.T) {
	c, err := NewClassifier(RuleConfig{
		Allow:         []string{"open", "active"},
		AllowPatterns: []string{`^toast`},
	}, NewClassSet("drawer"))
	require.NoError(t, err)

	safelist := c.Safelist()
	assert.Equal(t, []string{"active", "drawer", "open"}, safelist.Standard)
	require.Len(t, safelist.Patterns, 1)

	assert.True(t, safelist.Matches("drawer"))
	assert.True(t, safelist.Matches("toast-error"))
	assert.False(t, safelist.Matches("card"))
}

func TestClassifierConcurrentUse(t *testing.T) {
	c := newDefaultClassifier(t)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				assert.Equal(t, DispositionFrameworkGenerated, c.Classify("bg-blue-500"))
			}
		}()
	}
	wg.Wait()
}

func TestRuleConfigExtend(t *testing.T) {
	base := RuleConfig{Allow: []string{"a"}, FrameworkPatterns: []string{"^x-"}}
	extended := base.Extend(RuleConfig{
		Allow:              []string{"a", " b ", ""},
		ResponsivePatterns: []string{"-wide$"},
	})

	assert.Equal(t, []string{"a", "b"}, extended.Allow)
	assert.Equal(t, []string{"^x-"}, extended.FrameworkPatterns)
	assert.Equal(t, []string{"-wide$"}, extended.ResponsivePatterns)

	// The receiver is untouched
	assert.Equal(t, []string{"a"}, base.Allow)
}

func TestDefaultRuleConfigIsACopy(t *testing.T) {
	cfg := DefaultRuleConfig()
	cfg.Allow[0] = "mutated"
	assert.NotEqual(t, "mutated", DefaultRuleConfig().Allow[0])
}

func TestDispositionString(t *testing.T) {
	assert.Equal(t, "none", DispositionNone.String())
	assert.Equal(t, "explicit-allow", DispositionExplicitAllow.String())
	assert.Equal(t, "pattern-allow", DispositionPatternAllow.String())
	assert.Equal(t, "framework-generated", DispositionFrameworkGenerated.String())
	assert.Equal(t, "responsive-convention", DispositionResponsiveConvention.String())
}
