package cssaudit

import (
	"strconv"
	"strings"

	"github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
)

// cssToken is a lexer token copied out of the input buffer
type cssToken struct {
	tt   css.TokenType
	text string
}

// ExtractSelectors parses CSS content and partitions its class selectors
// into top-level and media-scoped sets.
func ExtractSelectors(content string) ExtractedClasses {
	topLevel, media := SplitMediaBlocks(content)

	regular := make(ClassSet)
	collectClasses(topLevel, regular)

	mediaScoped := make(ClassSet)
	collectClasses(media, mediaScoped)

	return ExtractedClasses{
		Regular:     regular,
		MediaScoped: mediaScoped,
		All:         regular.Union(mediaScoped),
	}
}

// SplitMediaBlocks separates CSS into the text outside any @media block and
// the concatenated inner text of every outermost @media block.
//
// Blocks are matched by brace depth over lexer tokens, so the closing brace
// of a media block is the one balancing its opening brace. Braces inside
// comments and strings are part of single tokens and never count.
// A stray closing brace at depth 0 is dropped. An unterminated media block
// is discarded entirely.
func SplitMediaBlocks(content string) (topLevel, media string) {
	var top, med, block, prelude strings.Builder

	lexer := css.NewLexer(parse.NewInputString(content))

	depth := 0
	mediaDepth := 0 // depth of the open media block's brace, 0 when outside
	awaitingBrace := false

	for {
		tt, data := lexer.Next()
		if tt == css.ErrorToken {
			// ErrorToken at EOF is normal
			break
		}
		text := string(data)

		if mediaDepth > 0 {
			switch tt {
			case css.LeftBraceToken:
				depth++
			case css.RightBraceToken:
				if depth == mediaDepth {
					depth--
					mediaDepth = 0
					med.WriteString(block.String())
					med.WriteString("\n")
					block.Reset()
					continue
				}
				depth--
			}
			block.WriteString(text)
			continue
		}

		if awaitingBrace {
			switch tt {
			case css.LeftBraceToken:
				depth++
				mediaDepth = depth
				awaitingBrace = false
				prelude.Reset()
			case css.SemicolonToken:
				// "@media print;" has no block; keep it as plain text
				top.WriteString(prelude.String())
				top.WriteString(text)
				awaitingBrace = false
				prelude.Reset()
			default:
				prelude.WriteString(text)
			}
			continue
		}

		switch tt {
		case css.AtKeywordToken:
			if strings.EqualFold(text, "@media") {
				awaitingBrace = true
				prelude.WriteString(text)
				continue
			}
		case css.LeftBraceToken:
			depth++
		case css.RightBraceToken:
			if depth == 0 {
				continue
			}
			depth--
		}
		top.WriteString(text)
	}

	return top.String(), med.String()
}

// collectClasses adds every class named in a rule prelude of content to set
func collectClasses(content string, set ClassSet) {
	forEachPrelude(content, func(prelude []cssToken) {
		for _, name := range preludeClasses(prelude) {
			set.Add(name)
		}
	})
}

// forEachPrelude calls fn with the tokens preceding each opening brace.
//
// A prelude is the run of tokens since the last ';', '{' or '}', which
// makes declarations reset the buffer and lets nested rules at any depth
// be seen. Comments are dropped.
func forEachPrelude(content string, fn func(prelude []cssToken)) {
	lexer := css.NewLexer(parse.NewInputString(content))

	var prelude []cssToken
	for {
		tt, data := lexer.Next()
		switch tt {
		case css.ErrorToken:
			return
		case css.CommentToken:
			continue
		case css.SemicolonToken, css.RightBraceToken:
			prelude = prelude[:0]
		case css.LeftBraceToken:
			fn(prelude)
			prelude = prelude[:0]
		default:
			prelude = append(prelude, cssToken{tt: tt, text: string(data)})
		}
	}
}

// preludeClasses returns the class names selected by a rule prelude.
// At-rule preludes yield nothing. Attribute selector contents are skipped,
// so [href$=.pdf] never registers "pdf".
func preludeClasses(prelude []cssToken) []string {
	start := 0
	for start < len(prelude) && prelude[start].tt == css.WhitespaceToken {
		start++
	}
	if start == len(prelude) || prelude[start].tt == css.AtKeywordToken {
		return nil
	}

	var names []string
	bracketDepth := 0
	for i := start; i < len(prelude); i++ {
		tok := prelude[i]
		switch tok.tt {
		case css.LeftBracketToken:
			bracketDepth++
			continue
		case css.RightBracketToken:
			if bracketDepth > 0 {
				bracketDepth--
			}
			continue
		}
		if bracketDepth > 0 {
			continue
		}

		// Class selector: '.' immediately followed by an identifier
		if tok.tt == css.DelimToken && tok.text == "." && i+1 < len(prelude) && prelude[i+1].tt == css.IdentToken {
			names = append(names, unescapeIdent(prelude[i+1].text))
			i++
		}
	}
	return names
}

// ClassesInSelector returns the class names in a selector string such as
// ".nav .item:hover" or ".btn.btn--primary::after"
func ClassesInSelector(selector string) []string {
	var names []string
	forEachPrelude(selector+"{}", func(prelude []cssToken) {
		names = append(names, preludeClasses(prelude)...)
	})
	return names
}

// NormalizeClassName turns a raw selector segment into a class name:
// the leading dot, pseudo-class/element suffixes and attribute suffixes are
// removed and CSS escapes are resolved (".md\:flex:hover" -> "md:flex").
func NormalizeClassName(raw string) string {
	raw = strings.TrimSpace(raw)
	raw = strings.TrimPrefix(raw, ".")

	// Cut at the first unescaped ':' or '['
	end := len(raw)
	for i := 0; i < len(raw); i++ {
		if raw[i] == '\\' {
			i++
			continue
		}
		if raw[i] == ':' || raw[i] == '[' {
			end = i
			break
		}
	}
	return unescapeIdent(raw[:end])
}

// unescapeIdent resolves CSS escapes: "\:" -> ":", "\31 0" -> "10"
func unescapeIdent(s string) string {
	if !strings.Contains(s, `\`) {
		return s
	}

	var b strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c != '\\' || i+1 >= len(s) {
			b.WriteByte(c)
			continue
		}

		// Hex escape: up to 6 hex digits, optionally followed by one space
		j := i + 1
		for j < len(s) && j-i-1 < 6 && isHex(s[j]) {
			j++
		}
		if j > i+1 {
			if r, err := strconv.ParseUint(s[i+1:j], 16, 32); err == nil {
				b.WriteRune(rune(r))
			}
			if j < len(s) && s[j] == ' ' {
				j++
			}
			i = j - 1
			continue
		}

		b.WriteByte(s[i+1])
		i++
	}
	return b.String()
}

func isHex(c byte) bool {
	return (c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}
