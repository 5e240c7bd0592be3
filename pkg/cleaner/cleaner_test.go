package cleaner

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/moment-ml/preprocess/pkg/config"
)

func allCleaningOn() config.CleaningConfig {
	return config.CleaningConfig{
		FixEncoding:         true,
		RemoveURLs:          true,
		RemoveEmails:        true,
		NormalizeWhitespace: true,
	}
}

func newTestCleaner(t *testing.T, cfg config.CleaningConfig) *TextCleaner {
	t.Helper()
	c, err := NewTextCleaner(cfg, zap.NewNop())
	require.NoError(t, err)
	return c
}

func TestNewTextCleanerRequiresLogger(t *testing.T) {
	_, err := NewTextCleaner(config.CleaningConfig{}, nil)
	assert.Error(t, err)
}

func TestCleanFixesEncodingArtifacts(t *testing.T) {
	c := newTestCleaner(t, config.CleaningConfig{FixEncoding: true, NormalizeWhitespace: true})

	got := c.Clean("“It’s fine” – she said…")
	assert.Equal(t, `"It's fine" - she said...`, got)
}

func TestCleanCollapsesWhitespace(t *testing.T) {
	c := newTestCleaner(t, config.CleaningConfig{FixEncoding: true, NormalizeWhitespace: true})

	got := c.Clean("a  lot\tof\n\nspace ,  right ?")
	assert.Equal(t, "a lot of space, right?", got)
}

func TestCleanRemovesURLsWhenEnabled(t *testing.T) {
	c := newTestCleaner(t, config.CleaningConfig{RemoveURLs: true, NormalizeWhitespace: true})

	got := c.Clean("see https://example.com/page for details")
	assert.Equal(t, "see for details", got)
}

func TestCleanKeepsURLsWhenDisabled(t *testing.T) {
	c := newTestCleaner(t, config.CleaningConfig{NormalizeWhitespace: true})

	// Punctuation spacing may still reformat the URL, but its content
	// is not removed.
	got := c.Clean("see https://example.com/page for details")
	assert.Contains(t, got, "example")
	assert.Contains(t, got, "page")
}

func TestCleanRemovesEmailsWhenEnabled(t *testing.T) {
	c := newTestCleaner(t, config.CleaningConfig{RemoveEmails: true, NormalizeWhitespace: true})

	got := c.Clean("write to someone@example.com today")
	assert.Equal(t, "write to today", got)
}

func TestCleanRepairsPunctuationSpacing(t *testing.T) {
	c := newTestCleaner(t, config.CleaningConfig{NormalizeWhitespace: true})

	got := c.Clean("first part .Second part,third part")
	assert.Equal(t, "first part. Second part, third part", got)
}

func TestCleanAllFlagsOffIsIdentity(t *testing.T) {
	c := newTestCleaner(t, config.CleaningConfig{})

	inputs := []string{
		"“smart quotes” stay –  untouched…",
		"see https://example.com and a@b.com",
		"  spacing   preserved \t exactly  ",
	}

	for _, input := range inputs {
		assert.Equal(t, input, c.Clean(input))
	}
}

func TestCleanIsIdempotent(t *testing.T) {
	c := newTestCleaner(t, allCleaningOn())

	inputs := []string{
		"“quoted” text with  extra   spaces",
		"plain sentence, already clean.",
		"ends with ellipsis…",
	}

	for _, input := range inputs {
		once := c.Clean(input)
		twice := c.Clean(once)
		assert.Equal(t, once, twice, "cleaning should be idempotent for %q", input)
	}
}

func TestCleanEmptyInput(t *testing.T) {
	c := newTestCleaner(t, allCleaningOn())

	assert.Equal(t, "", c.Clean(""))
	assert.Equal(t, "", c.Clean("   \t\n  "))
}
