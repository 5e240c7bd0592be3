// pkg/metrics/metrics.go
package metrics

import (
	"errors"
	"regexp"
	"strings"
	"unicode"

	"go.uber.org/zap"

	"github.com/moment-ml/preprocess/pkg/model"
)

// Flesch Reading Ease coefficients.
const (
	fleschBase     = 206.835
	fleschSentence = 1.015
	fleschSyllable = 84.6
)

var sentenceSplit = regexp.MustCompile(`[.!?]+(?:\s|$)|\n+`)

// Calculator derives descriptive text metrics for one record. All
// methods are pure; the calculator carries only a logger.
type Calculator struct {
	logger *zap.Logger
}

// NewCalculator creates a new Calculator instance
func NewCalculator(logger *zap.Logger) (*Calculator, error) {
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}

	return &Calculator{logger: logger}, nil
}

// Compute returns the metric set for text. Empty or whitespace-only
// text yields zeroed counts; sentence count is still 1 so it is always
// safe as a divisor downstream.
func (c *Calculator) Compute(text string) model.MetricsSet {
	if strings.TrimSpace(text) == "" {
		return model.MetricsSet{SentenceCount: 1}
	}

	words := strings.Fields(text)
	wordCount := len(words)
	charCount := countNonSpaceChars(text)
	sentenceCount := countSentences(text)

	avgWordLen := averageWordLength(words)
	avgSentenceLen := float64(wordCount) / float64(sentenceCount)

	return model.MetricsSet{
		WordCount:         wordCount,
		CharCount:         charCount,
		SentenceCount:     sentenceCount,
		AvgWordLength:     avgWordLen,
		AvgSentenceLength: avgSentenceLen,
		ReadabilityScore:  fleschReadingEase(words, wordCount, sentenceCount),
	}
}

// countSentences splits on sentence-ending punctuation or newlines and
// drops fragments too short to be sentences. Non-empty text always
// counts as at least one sentence.
func countSentences(text string) int {
	fragments := sentenceSplit.Split(text, -1)
	count := 0
	for _, f := range fragments {
		if len(strings.TrimSpace(f)) >= 3 {
			count++
		}
	}
	if count == 0 {
		count = 1
	}
	return count
}

// averageWordLength counts alphabetic characters only, so punctuation
// attached to words does not skew the average.
func averageWordLength(words []string) float64 {
	letters := 0
	for _, w := range words {
		for _, r := range w {
			if unicode.IsLetter(r) {
				letters++
			}
		}
	}
	return float64(letters) / float64(len(words))
}

// fleschReadingEase computes the standard readability formula, clamped
// to [0, 100].
func fleschReadingEase(words []string, wordCount, sentenceCount int) float64 {
	syllables := 0
	for _, w := range words {
		syllables += countSyllables(w)
	}

	score := fleschBase -
		fleschSentence*(float64(wordCount)/float64(sentenceCount)) -
		fleschSyllable*(float64(syllables)/float64(wordCount))

	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

// countSyllables approximates syllables as runs of consecutive vowels,
// with a silent-e adjustment. Every word counts at least one.
func countSyllables(word string) int {
	word = strings.ToLower(word)

	count := 0
	prevVowel := false
	for _, r := range word {
		isVowel := strings.ContainsRune("aeiouy", r)
		if isVowel && !prevVowel {
			count++
		}
		prevVowel = isVowel
	}

	// Trailing silent e does not add a syllable.
	if strings.HasSuffix(word, "e") && !strings.HasSuffix(word, "le") && count > 1 {
		count--
	}

	if count == 0 {
		count = 1
	}
	return count
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
