// pkg/validator/validator.go
package validator

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/abadojack/whatlanggo"
	"go.uber.org/zap"

	"github.com/moment-ml/preprocess/pkg/config"
	"github.com/moment-ml/preprocess/pkg/model"
)

const (
	// Texts shorter than this are assumed to be in the expected
	// language since detection is unreliable on tiny samples.
	minDetectChars = 20

	// Structural check guards. Texts below these sizes skip the
	// corresponding check rather than produce noisy flags.
	minGibberishLetters = 10
	minRepetitiveChars  = 20

	vowelRatioLow     = 0.15
	vowelRatioHigh    = 0.60
	repetitiveDomFrac = 0.40
)

// Score deductions per issue class. Deductions stack and the score is
// clamped to [0, 1] at the end.
const (
	penaltyLength     = 0.3
	penaltyChars      = 0.1
	penaltyLanguage   = 0.4
	penaltyGibberish  = 0.5
	penaltyRepetitive = 0.3
	bonusIdealLength  = 0.05
)

// Validator scores cleaned text against per-kind quality thresholds.
type Validator struct {
	cfg    config.ValidationConfig
	logger *zap.Logger
}

// NewValidator creates a new Validator instance
func NewValidator(cfg config.ValidationConfig, logger *zap.Logger) (*Validator, error) {
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}

	return &Validator{
		cfg:    cfg,
		logger: logger,
	}, nil
}

// Validate checks text against the thresholds for kind and returns the
// issues found plus a quality score in [0, 1]. A record is valid only
// when it has no issues and its score clears the kind's threshold.
func (v *Validator) Validate(text string, kind model.RecordKind) model.ValidationResult {
	thresholds := v.thresholdsFor(kind)

	if strings.TrimSpace(text) == "" {
		return model.ValidationResult{
			IsValid:       false,
			QualityScore:  0.0,
			QualityIssues: []string{"empty_text"},
			Language:      "unknown",
		}
	}

	wordCount := countWords(text)
	charCount := countNonSpaceChars(text)
	language := v.detectLanguage(text)

	var issues []string
	score := 1.0

	if wordCount < thresholds.MinWords {
		issues = append(issues, fmt.Sprintf("too_short: %d words (min: %d)", wordCount, thresholds.MinWords))
		score -= penaltyLength
	} else if wordCount > thresholds.MaxWords {
		issues = append(issues, fmt.Sprintf("too_long: %d words (max: %d)", wordCount, thresholds.MaxWords))
		score -= penaltyLength
	}

	if charCount < thresholds.MinChars {
		issues = append(issues, fmt.Sprintf("too_few_chars: %d chars (min: %d)", charCount, thresholds.MinChars))
		score -= penaltyChars
	} else if charCount > thresholds.MaxChars {
		issues = append(issues, fmt.Sprintf("too_many_chars: %d chars (max: %d)", charCount, thresholds.MaxChars))
		score -= penaltyChars
	}

	if language != v.cfg.Language && language != "unknown" {
		issues = append(issues, fmt.Sprintf("wrong_language: detected '%s' (expected: %s)", language, v.cfg.Language))
		score -= penaltyLanguage
	}

	if looksLikeGibberish(text) {
		issues = append(issues, "gibberish: abnormal vowel/consonant ratio")
		score -= penaltyGibberish
	}

	if isRepetitive(text) {
		issues = append(issues, "repetitive: low character diversity")
		score -= penaltyRepetitive
	}

	if wordCount >= thresholds.MinWords && wordCount <= thresholds.MaxWords/2 {
		score += bonusIdealLength
	}

	score = clamp01(score)

	result := model.ValidationResult{
		IsValid:       len(issues) == 0 && score >= thresholds.QualityThreshold,
		QualityScore:  score,
		QualityIssues: issues,
		WordCount:     wordCount,
		CharCount:     charCount,
		Language:      language,
	}

	if !result.IsValid {
		v.logger.Debug("text failed validation",
			zap.String("kind", string(kind)),
			zap.Float64("score", score),
			zap.Strings("issues", issues))
	}

	return result
}

func (v *Validator) thresholdsFor(kind model.RecordKind) config.TextThresholds {
	if kind == model.KindPassage {
		return v.cfg.Passage
	}
	return v.cfg.Interpretation
}

// detectLanguage returns a three-letter ISO 639-3 code, "unknown" when
// detection has nothing to work with.
func (v *Validator) detectLanguage(text string) string {
	if len(text) < minDetectChars {
		return v.cfg.Language
	}

	info := whatlanggo.Detect(text)
	if info.Lang == -1 {
		return "unknown"
	}
	return whatlanggo.LangToString(info.Lang)
}

func countWords(text string) int {
	return len(strings.Fields(text))
}

func countNonSpaceChars(text string) int {
	count := 0
	for _, r := range text {
		if !unicode.IsSpace(r) {
			count++
		}
	}
	return count
}

// looksLikeGibberish flags text whose vowel ratio among letters falls
// outside the range seen in natural English prose.
func looksLikeGibberish(text string) bool {
	letters, vowels := 0, 0
	for _, r := range strings.ToLower(text) {
		if !unicode.IsLetter(r) {
			continue
		}
		letters++
		if strings.ContainsRune("aeiou", r) {
			vowels++
		}
	}

	if letters < minGibberishLetters {
		return false
	}

	ratio := float64(vowels) / float64(letters)
	return ratio < vowelRatioLow || ratio > vowelRatioHigh
}

// isRepetitive flags text dominated by a single character.
func isRepetitive(text string) bool {
	counts := make(map[rune]int)
	total := 0
	for _, r := range text {
		if unicode.IsSpace(r) {
			continue
		}
		counts[r]++
		total++
	}

	if total < minRepetitiveChars {
		return false
	}

	max := 0
	for _, n := range counts {
		if n > max {
			max = n
		}
	}
	return float64(max)/float64(total) > repetitiveDomFrac
}

func clamp01(f float64) float64 {
	if f < 0 {
		return 0
	}
	if f > 1 {
		return 1
	}
	return f
}
