// pkg/detector/detector.go
package detector

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"go.uber.org/zap"

	"github.com/moment-ml/preprocess/pkg/config"
	"github.com/moment-ml/preprocess/pkg/model"
)

var (
	emailPattern = regexp.MustCompile(`\b[A-Za-z0-9._%+\-]+@[A-Za-z0-9.\-]+\.[A-Za-z]{2,}\b`)
	phonePattern = regexp.MustCompile(`(\+?1?\s?)?(\(?\d{3}\)?[\s.\-]?)(\d{3}[\s.\-]?\d{4})`)
	ssnPattern   = regexp.MustCompile(`\b\d{3}[-\s]\d{2}[-\s]\d{4}\b`)
	cardPattern  = regexp.MustCompile(`\b\d{4}[\s\-]?\d{4}[\s\-]?\d{4}[\s\-]?\d{4}\b`)

	wordPattern   = regexp.MustCompile(`\b[a-zA-Z]+\b`)
	repeatPattern = regexp.MustCompile(`(.)\1{3,}`)
	digitPattern  = regexp.MustCompile(`\d`)
)

// Words counted toward the profanity ratio. Matching is whole-token,
// case-insensitive.
var profanityWords = map[string]struct{}{
	"damn": {}, "hell": {}, "crap": {}, "ass": {}, "bastard": {},
	"bitch": {}, "shit": {}, "fuck": {}, "piss": {}, "dick": {},
	"cock": {}, "cunt": {}, "whore": {}, "slut": {}, "fag": {},
	"retard": {},
}

var spamPhrases = []string{
	"click here", "buy now", "free money", "you won",
	"congratulations you", "limited time offer", "act now",
	"call now", "order now", "visit our website",
}

// IssueDetector scans cleaned text for PII, profanity, and spam
// patterns. Detection never mutates the text; findings are advisory
// and recorded on the output record.
type IssueDetector struct {
	cfg    config.IssueConfig
	logger *zap.Logger
}

// NewIssueDetector creates a new IssueDetector instance
func NewIssueDetector(cfg config.IssueConfig, logger *zap.Logger) (*IssueDetector, error) {
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}

	return &IssueDetector{
		cfg:    cfg,
		logger: logger,
	}, nil
}

// Detect runs all issue scans over text and returns the combined report.
func (d *IssueDetector) Detect(text string) model.IssueReport {
	if strings.TrimSpace(text) == "" {
		return model.IssueReport{
			PIITypes:    []model.PIIType{},
			SpamReasons: []string{},
		}
	}

	piiTypes := d.detectPII(text)
	profanityRatio, hasProfanity := d.detectProfanity(text)
	spamReasons := d.detectSpam(text)

	report := model.IssueReport{
		HasPII:         len(piiTypes) > 0,
		PIITypes:       piiTypes,
		HasProfanity:   hasProfanity,
		ProfanityRatio: profanityRatio,
		IsSpam:         len(spamReasons) > 0,
		SpamReasons:    spamReasons,
	}

	if report.HasPII || report.HasProfanity || report.IsSpam {
		d.logger.Debug("content issues detected",
			zap.Int("pii_types", len(piiTypes)),
			zap.Bool("profanity", hasProfanity),
			zap.Strings("spam_reasons", spamReasons))
	}

	return report
}

// detectPII returns the distinct PII categories present in text.
func (d *IssueDetector) detectPII(text string) []model.PIIType {
	types := []model.PIIType{}

	if emailPattern.MatchString(text) {
		types = append(types, model.PIIEmail)
	}
	if hasPhoneNumber(text) {
		types = append(types, model.PIIPhone)
	}
	if ssnPattern.MatchString(text) {
		types = append(types, model.PIISSN)
	}
	if cardPattern.MatchString(text) {
		types = append(types, model.PIICreditCard)
	}

	return types
}

// hasPhoneNumber requires at least ten digits in the match so that
// ordinary prose numbers do not trigger the loose phone pattern.
func hasPhoneNumber(text string) bool {
	for _, m := range phonePattern.FindAllString(text, -1) {
		if len(digitPattern.FindAllString(m, -1)) >= 10 {
			return true
		}
	}
	return false
}

func (d *IssueDetector) detectProfanity(text string) (float64, bool) {
	tokens := wordPattern.FindAllString(strings.ToLower(text), -1)
	if len(tokens) == 0 {
		return 0, false
	}

	hits := 0
	for _, tok := range tokens {
		if _, ok := profanityWords[tok]; ok {
			hits++
		}
	}

	ratio := float64(hits) / float64(len(tokens))
	return ratio, hits > 0 && ratio >= d.cfg.ProfanityRatio
}

func (d *IssueDetector) detectSpam(text string) []string {
	reasons := []string{}

	if ratio, ok := capsRatio(text); ok && ratio > d.cfg.CapsRatio {
		reasons = append(reasons, fmt.Sprintf("excessive_caps: %.1f%% uppercase", ratio*100))
	}

	if ratio := punctRatio(text); ratio > d.cfg.PunctRatio {
		reasons = append(reasons, fmt.Sprintf("excessive_punctuation: %.1f%% punctuation", ratio*100))
	}

	if repeatPattern.MatchString(text) {
		reasons = append(reasons, "repeated_characters")
	}

	if word, frac, ok := dominantWord(text); ok && frac > d.cfg.WordRepeatFrac {
		reasons = append(reasons, fmt.Sprintf("repeated_word: '%s' is %.1f%% of text", word, frac*100))
	}

	lowered := strings.ToLower(text)
	for _, phrase := range spamPhrases {
		if strings.Contains(lowered, phrase) {
			reasons = append(reasons, fmt.Sprintf("spam_phrase: '%s'", phrase))
		}
	}

	return reasons
}

func capsRatio(text string) (float64, bool) {
	letters, upper := 0, 0
	for _, r := range text {
		if !unicode.IsLetter(r) {
			continue
		}
		letters++
		if unicode.IsUpper(r) {
			upper++
		}
	}
	if letters == 0 {
		return 0, false
	}
	return float64(upper) / float64(letters), true
}

func punctRatio(text string) float64 {
	if len(text) == 0 {
		return 0
	}
	punct := 0
	total := 0
	for _, r := range text {
		total++
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) && !unicode.IsSpace(r) && r != '_' {
			punct++
		}
	}
	return float64(punct) / float64(total)
}

// dominantWord reports the most frequent token and its share of all
// tokens.
func dominantWord(text string) (string, float64, bool) {
	tokens := wordPattern.FindAllString(strings.ToLower(text), -1)
	if len(tokens) < 5 {
		return "", 0, false
	}

	counts := make(map[string]int)
	for _, tok := range tokens {
		counts[tok]++
	}

	best, bestN := "", 0
	for tok, n := range counts {
		if n > bestN {
			best, bestN = tok, n
		}
	}
	return best, float64(bestN) / float64(len(tokens)), true
}
