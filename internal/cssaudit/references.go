package cssaudit

import (
	"regexp"
	"sort"
	"strings"
)

// referencePattern represents a regex for finding class attribute literals.
// The first capture group is the literal value.
type referencePattern struct {
	name  string
	regex *regexp.Regexp
	// directive patterns capture a single class name, not a class list
	directive bool
}

// attrPrefix keeps bound attributes (:class, v-bind:class, [class],
// data-class, x.class) from matching as literal class attributes.
const attrPrefix = `(?:^|[^\w:.\-\[@])`

var (
	// Patterns for finding class attribute literals
	// Ordered from most common to least common
	referencePatterns = []referencePattern{
		{
			name:  "class attribute with double quotes",
			regex: regexp.MustCompile(attrPrefix + `(?:(?i:class)|className)\s*=\s*"([^"]*)"`),
		},
		{
			name:  "class attribute with single quotes",
			regex: regexp.MustCompile(attrPrefix + `(?:(?i:class)|className)\s*=\s*'([^']*)'`),
		},
		{
			name:  "class with string literal in braces",
			regex: regexp.MustCompile(attrPrefix + `(?:(?i:class)|className)\s*=\s*\{\s*"([^"]*)"\s*[,}]`),
		},
		{
			name:  "class with single-quoted literal in braces",
			regex: regexp.MustCompile(attrPrefix + `(?:(?i:class)|className)\s*=\s*\{\s*'([^']*)'\s*[,}]`),
		},
		{
			name:  "class with template literal in braces",
			regex: regexp.MustCompile(attrPrefix + "(?:(?i:class)|className)\\s*=\\s*\\{\\s*`([^`]*)`\\s*\\}"),
		},
		{
			name:  "templ.Classes with string",
			regex: regexp.MustCompile(`templ\.Classes\(\s*"([^"]*)"`),
		},
		{
			name:  "templ.KV with string",
			regex: regexp.MustCompile(`templ\.KV\(\s*"([^"]*)"`),
		},
		{
			name:      "svelte class directive",
			regex:     regexp.MustCompile(`(?:^|\s)class:([A-Za-z0-9_-]+)`),
			directive: true,
		},
	}

	// Commented-out markup is not a reference
	htmlCommentPattern = regexp.MustCompile(`(?s)<!--.*?-->`)
)

// ExtractReferences builds a ReferenceIndex from file -> source text.
// A class found in several files is associated with every one of them.
func ExtractReferences(sources map[string]string) ReferenceIndex {
	files := make([]string, 0, len(sources))
	for f := range sources {
		files = append(files, f)
	}
	sort.Strings(files)

	idx := make(ReferenceIndex)
	for _, file := range files {
		for _, class := range ExtractFileReferences(sources[file]) {
			idx.Add(class, file)
		}
	}
	return idx
}

// ExtractFileReferences returns the literal class names referenced in one
// source text, deduplicated, in order of first appearance. Tokens that are
// part of an interpolation or expression are never returned.
func ExtractFileReferences(text string) []string {
	text = htmlCommentPattern.ReplaceAllString(text, "")

	seen := make(map[string]bool)
	var classes []string
	add := func(name string) {
		if name == "" || seen[name] {
			return
		}
		seen[name] = true
		classes = append(classes, name)
	}

	for _, pattern := range referencePatterns {
		for _, match := range pattern.regex.FindAllStringSubmatch(text, -1) {
			if len(match) < 2 {
				continue
			}
			if pattern.directive {
				add(match[1])
				continue
			}
			for _, token := range splitClassValue(match[1]) {
				add(token)
			}
		}
	}

	return classes
}

// splitClassValue splits an attribute value on whitespace into candidate
// class tokens. Whitespace inside an interpolation ({...}, ${...}, {{...}},
// <%...%>) does not split, and any token touching an interpolation or
// containing an expression delimiter is dropped:
//
//	"btn {active ? 'on' : ''} card"  -> [btn card]
//	"nav-{{ .Variant }} nav"          -> [nav]
func splitClassValue(value string) []string {
	var tokens []string
	var current strings.Builder
	tainted := false
	braceDepth := 0
	inTemplateTag := false

	flush := func() {
		if current.Len() > 0 && !tainted {
			tokens = append(tokens, current.String())
		}
		current.Reset()
		tainted = false
	}

	for i := 0; i < len(value); i++ {
		c := value[i]

		switch {
		case inTemplateTag:
			if c == '%' && i+1 < len(value) && value[i+1] == '>' {
				inTemplateTag = false
				i++
			}
			continue
		case c == '<' && i+1 < len(value) && value[i+1] == '%':
			inTemplateTag = true
			tainted = true
			i++
			continue
		case c == '{':
			braceDepth++
			tainted = true
			continue
		case c == '}':
			if braceDepth > 0 {
				braceDepth--
			}
			tainted = true
			continue
		case braceDepth > 0:
			continue
		case c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\f':
			flush()
			continue
		case c == '$' || c == '`':
			tainted = true
		}

		current.WriteByte(c)
	}
	flush()

	return tokens
}
