package validator

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/moment-ml/preprocess/pkg/config"
	"github.com/moment-ml/preprocess/pkg/model"
)

func testValidationConfig() config.ValidationConfig {
	return config.ValidationConfig{
		Interpretation: config.TextThresholds{
			MinWords: 10, MaxWords: 600,
			MinChars: 50, MaxChars: 4000,
			QualityThreshold: 0.5,
		},
		Passage: config.TextThresholds{
			MinWords: 20, MaxWords: 1000,
			MinChars: 100, MaxChars: 6000,
			QualityThreshold: 0.6,
		},
		Language: "eng",
	}
}

func newTestValidator(t *testing.T) *Validator {
	t.Helper()
	v, err := NewValidator(testValidationConfig(), zap.NewNop())
	require.NoError(t, err)
	return v
}

const goodInterpretation = "The quiet morning light spilled over the hills as the travelers " +
	"made their slow way toward the distant village, speaking softly about the road ahead " +
	"and the welcome that might be waiting for them there."

func TestValidateAcceptsGoodText(t *testing.T) {
	v := newTestValidator(t)

	result := v.Validate(goodInterpretation, model.KindInterpretation)

	assert.True(t, result.IsValid)
	assert.Empty(t, result.QualityIssues)
	assert.GreaterOrEqual(t, result.QualityScore, 0.5)
	assert.Equal(t, "eng", result.Language)
}

func TestValidateEmptyText(t *testing.T) {
	v := newTestValidator(t)

	for _, text := range []string{"", "   "} {
		result := v.Validate(text, model.KindInterpretation)

		assert.False(t, result.IsValid)
		assert.Equal(t, 0.0, result.QualityScore)
		assert.Equal(t, []string{"empty_text"}, result.QualityIssues)
	}
}

func TestValidateTooShort(t *testing.T) {
	v := newTestValidator(t)

	result := v.Validate("Only five words right here.", model.KindInterpretation)

	assert.False(t, result.IsValid)
	require.NotEmpty(t, result.QualityIssues)
	assert.Contains(t, result.QualityIssues[0], "too_short")
	assert.Less(t, result.QualityScore, 1.0)
}

func TestValidateTooLong(t *testing.T) {
	v := newTestValidator(t)

	text := strings.TrimSpace(strings.Repeat("word and more filler text here today ", 100))
	result := v.Validate(text, model.KindInterpretation)

	assert.False(t, result.IsValid)

	found := false
	for _, issue := range result.QualityIssues {
		if strings.HasPrefix(issue, "too_long") {
			found = true
		}
	}
	assert.True(t, found, "expected a too_long issue, got %v", result.QualityIssues)
}

func TestValidateGibberish(t *testing.T) {
	v := newTestValidator(t)

	text := "xkcd qwrtz plmnbv cxzqwrt psdfgh jklzxc vbnmq wrtzxcv bnmqwrt zxcvplmkn bhgfds qrtzxcvbnm sdfghjkl"
	result := v.Validate(text, model.KindInterpretation)

	assert.False(t, result.IsValid)
	assert.Contains(t, result.QualityIssues, "gibberish: abnormal vowel/consonant ratio")
}

func TestValidateRepetitive(t *testing.T) {
	v := newTestValidator(t)

	text := strings.TrimSpace(strings.Repeat("aaaaaaa ", 12))
	result := v.Validate(text, model.KindInterpretation)

	assert.False(t, result.IsValid)
	assert.Contains(t, result.QualityIssues, "repetitive: low character diversity")
}

func TestValidatePassageThresholdsAreStricter(t *testing.T) {
	v := newTestValidator(t)

	// Fifteen words clears the interpretation minimum but not the
	// passage minimum.
	text := "The river ran cold and fast beneath the old stone bridge near the village square."

	asInterpretation := v.Validate(text, model.KindInterpretation)
	asPassage := v.Validate(text, model.KindPassage)

	assert.True(t, asInterpretation.IsValid)
	assert.False(t, asPassage.IsValid)
}

func TestValidateScoreStaysInRange(t *testing.T) {
	v := newTestValidator(t)

	texts := []string{
		goodInterpretation,
		"short",
		strings.Repeat("zz ", 40),
		strings.Repeat("aaaa", 30),
	}

	for _, text := range texts {
		result := v.Validate(text, model.KindInterpretation)
		assert.GreaterOrEqual(t, result.QualityScore, 0.0)
		assert.LessOrEqual(t, result.QualityScore, 1.0)
	}
}

func TestTighterThresholdsNeverAdmitMoreTexts(t *testing.T) {
	texts := []string{
		goodInterpretation,
		"The river ran cold and fast beneath the old stone bridge near the village square.",
		"Only five words right here.",
	}

	loose, err := NewValidator(testValidationConfig(), zap.NewNop())
	require.NoError(t, err)

	tightCfg := testValidationConfig()
	tightCfg.Interpretation.MinWords = 30
	tight, err := NewValidator(tightCfg, zap.NewNop())
	require.NoError(t, err)

	looseValid, tightValid := 0, 0
	for _, text := range texts {
		if loose.Validate(text, model.KindInterpretation).IsValid {
			looseValid++
		}
		if tight.Validate(text, model.KindInterpretation).IsValid {
			tightValid++
		}
	}

	assert.LessOrEqual(t, tightValid, looseValid)
	assert.Less(t, tightValid, looseValid, "the fifteen word text should fail the raised minimum")
}

func TestValidateIsDeterministic(t *testing.T) {
	v := newTestValidator(t)

	first := v.Validate(goodInterpretation, model.KindInterpretation)
	second := v.Validate(goodInterpretation, model.KindInterpretation)

	assert.Equal(t, first, second)
}
