package identifier

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/moment-ml/preprocess/pkg/config"
)

func newTestGenerator() *Generator {
	return NewGenerator(config.IdentityConfig{HashLength: 8})
}

func TestBookID(t *testing.T) {
	g := newTestGenerator()

	assert.Equal(t, "gutenberg_1342", g.BookID(1342))
}

func TestPassageID(t *testing.T) {
	g := newTestGenerator()

	assert.Equal(t, "gutenberg_1342_passage_7", g.PassageID("gutenberg_1342", 7))
}

func TestUserIDShape(t *testing.T) {
	g := newTestGenerator()

	id := g.UserID("Mary Anne O'Brien")

	assert.True(t, strings.HasPrefix(id, "user_mary_anne_obrien_"), "got %s", id)
	parts := strings.Split(id, "_")
	assert.Len(t, parts[len(parts)-1], 8)
}

func TestUserIDIsDeterministic(t *testing.T) {
	g := newTestGenerator()

	assert.Equal(t, g.UserID("Alex Reed"), g.UserID("Alex Reed"))
	assert.NotEqual(t, g.UserID("Alex Reed"), g.UserID("Alex Reid"))
}

func TestInterpretationIDIsDeterministic(t *testing.T) {
	g := newTestGenerator()

	a := g.InterpretationID("user_a", "gutenberg_1_passage_1", "some interpretation text")
	b := g.InterpretationID("user_a", "gutenberg_1_passage_1", "some interpretation text")
	c := g.InterpretationID("user_a", "gutenberg_1_passage_1", "different text entirely")

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	assert.True(t, strings.HasPrefix(a, "moment_"))
	assert.Len(t, strings.TrimPrefix(a, "moment_"), 8)
}

func TestInterpretationIDUsesTextPrefixOnly(t *testing.T) {
	g := newTestGenerator()

	base := strings.Repeat("x", 100)
	a := g.InterpretationID("u", "p", base+" tail one")
	b := g.InterpretationID("u", "p", base+" tail two")

	// Only the first hundred characters participate, so long texts
	// that share a prefix share an ID.
	assert.Equal(t, a, b)
}

func TestUnknownBookIDIsStable(t *testing.T) {
	g := newTestGenerator()

	assert.Equal(t, g.UnknownBookID("Lost Title"), g.UnknownBookID("Lost Title"))
	assert.NotEqual(t, g.UnknownBookID("Lost Title"), g.UnknownBookID("Other Title"))
	assert.True(t, strings.HasPrefix(g.UnknownBookID("Lost Title"), "book_"))
}

func TestSlugify(t *testing.T) {
	cases := map[string]string{
		"Mary Anne":        "mary_anne",
		"Jean-Luc":         "jean_luc",
		"  spaced   out  ": "spaced_out",
		"Symbols!@# Here":  "symbols_here",
		"ALLCAPS":          "allcaps",
	}

	for input, want := range cases {
		assert.Equal(t, want, slugify(input), "input: %q", input)
	}
}

func TestSlugifyCapsLength(t *testing.T) {
	long := strings.Repeat("abcde", 20)
	assert.Len(t, slugify(long), 30)
}

func TestHashLengthIsConfigurable(t *testing.T) {
	g := NewGenerator(config.IdentityConfig{HashLength: 12})

	id := g.InterpretationID("u", "p", "text")
	assert.Len(t, strings.TrimPrefix(id, "moment_"), 12)
}
