package cssaudit

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLexerPurger(t *testing.T) {
	req := PurgeRequest{
		Content: `<div class="btn card md:flex"><span class="toast-error"></span></div>`,
		CSS: []CSSSource{
			{
				Name: "styles/main.css",
				Text: `.btn { color: red }
.btn-primary { color: blue }
.card .card__title, .card { margin: 0 }
.md\:flex { display: flex }
.toast-info { x: y }
.open { x: y }
div > p { x: y }
@media (min-width: 768px) { .menu-mobile { display: none } }`,
			},
			{
				Name: "styles/empty.css",
				Text: `/* nothing */`,
			},
		},
		Safelist: Safelist{
			Standard: []string{"open"},
			Patterns: []*regexp.Regexp{regexp.MustCompile(`^toast`)},
		},
	}

	got, err := LexerPurger{}.Purge(context.Background(), req)
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{".btn-primary", ".card .card__title", ".menu-mobile"}, got["styles/main.css"])
	assert.Empty(t, got["styles/empty.css"])
	assert.Contains(t, got, "styles/empty.css")
}

func TestLexerPurgerCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := LexerPurger{}.Purge(ctx, PurgeRequest{
		CSS: []CSSSource{{Name: "a.css", Text: ".a{}"}},
	})
	require.ErrorIs(t, err, context.Canceled)
}

func TestDropSafelisted(t *testing.T) {
	safelist := Safelist{Patterns: []*regexp.Regexp{regexp.MustCompile(`^modal`)}}

	got := dropSafelisted([]string{
		".modal",
		".modal .modal-body",
		".modal .card",
		".card",
		"body",
	}, safelist)

	require.Equal(t, []string{".modal .card", ".card", "body"}, got)
}

func TestCommandPurgerNotConfigured(t *testing.T) {
	_, err := CommandPurger{}.Purge(context.Background(), PurgeRequest{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not configured")
}

func TestCommandPurgerMissingBinary(t *testing.T) {
	p := CommandPurger{
		Command: "cssaudit-purge-binary-that-does-not-exist",
		Timeout: 5 * time.Second,
	}

	_, err := p.Purge(context.Background(), PurgeRequest{
		Content: `<div class="a">`,
		CSS:     []CSSSource{{Name: "a.css", Text: ".a{}"}},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cssaudit-purge-binary-that-does-not-exist")
	assert.NotErrorIs(t, err, ErrPurgeTimeout)
}

func TestContentWords(t *testing.T) {
	words := contentWords(`<div class="md:flex w-1/2">text</div>`)

	assert.True(t, words.Has("md:flex"))
	assert.True(t, words.Has("md"))
	assert.True(t, words.Has("flex"))
	assert.True(t, words.Has("w-1/2"))
	assert.True(t, words.Has("text"))
	assert.False(t, words.Has("missing"))
}
