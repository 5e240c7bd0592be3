package detector

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/moment-ml/preprocess/pkg/config"
	"github.com/moment-ml/preprocess/pkg/model"
)

func newTestDetector(t *testing.T) *IssueDetector {
	t.Helper()
	d, err := NewIssueDetector(config.IssueConfig{
		ProfanityRatio: 0.30,
		CapsRatio:      0.50,
		PunctRatio:     0.10,
		WordRepeatFrac: 0.30,
	}, zap.NewNop())
	require.NoError(t, err)
	return d
}

func TestDetectCleanText(t *testing.T) {
	d := newTestDetector(t)

	report := d.Detect("A calm and thoughtful reflection on the passage, nothing more.")

	assert.False(t, report.HasPII)
	assert.False(t, report.HasProfanity)
	assert.False(t, report.IsSpam)
	assert.Empty(t, report.PIITypes)
	assert.Empty(t, report.SpamReasons)
}

func TestDetectEmptyText(t *testing.T) {
	d := newTestDetector(t)

	report := d.Detect("   ")

	assert.Equal(t, model.IssueReport{PIITypes: []model.PIIType{}, SpamReasons: []string{}}, report)
}

func TestDetectEmailPII(t *testing.T) {
	d := newTestDetector(t)

	report := d.Detect("you can reach me at reader.one@example.com if needed")

	assert.True(t, report.HasPII)
	assert.Contains(t, report.PIITypes, model.PIIEmail)
}

func TestDetectPhonePII(t *testing.T) {
	d := newTestDetector(t)

	report := d.Detect("call me at 555-123-4567 sometime")

	assert.True(t, report.HasPII)
	assert.Contains(t, report.PIITypes, model.PIIPhone)
}

func TestShortNumbersAreNotPhoneNumbers(t *testing.T) {
	d := newTestDetector(t)

	report := d.Detect("in 1999 there were about 365 days and 52 weeks")

	assert.NotContains(t, report.PIITypes, model.PIIPhone)
}

func TestDetectSSNAndCardPII(t *testing.T) {
	d := newTestDetector(t)

	report := d.Detect("my ssn is 123-45-6789 and card 4111 1111 1111 1111")

	assert.Contains(t, report.PIITypes, model.PIISSN)
	assert.Contains(t, report.PIITypes, model.PIICreditCard)
}

func TestProfanityRatioThreshold(t *testing.T) {
	d := newTestDetector(t)

	dense := d.Detect("damn shit fuck")
	assert.True(t, dense.HasProfanity)
	assert.InDelta(t, 1.0, dense.ProfanityRatio, 0.001)

	sparse := d.Detect("well damn that was quite a long and thoughtful passage about endings")
	assert.False(t, sparse.HasProfanity)
	assert.Greater(t, sparse.ProfanityRatio, 0.0)
}

func TestDetectSpamPhrasesAndCaps(t *testing.T) {
	d := newTestDetector(t)

	report := d.Detect("CLICK HERE TO WIN FREE MONEY TODAY")

	assert.True(t, report.IsSpam)
	assert.Contains(t, report.SpamReasons, "spam_phrase: 'click here'")
	assert.Contains(t, report.SpamReasons, "spam_phrase: 'free money'")

	foundCaps := false
	for _, reason := range report.SpamReasons {
		if len(reason) >= 14 && reason[:14] == "excessive_caps" {
			foundCaps = true
		}
	}
	assert.True(t, foundCaps, "expected an excessive_caps reason, got %v", report.SpamReasons)
}

func TestDetectRepeatedCharacters(t *testing.T) {
	d := newTestDetector(t)

	report := d.Detect("this is soooooo good, really really fine overall I think")

	assert.Contains(t, report.SpamReasons, "repeated_characters")
}

func TestDetectDoesNotMutateFindingsAcrossCalls(t *testing.T) {
	d := newTestDetector(t)

	first := d.Detect("plain text with no issues at all in it")
	second := d.Detect("plain text with no issues at all in it")

	assert.Equal(t, first, second)
}
