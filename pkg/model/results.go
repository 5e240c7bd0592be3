// pkg/model/results.go
package model

// ValidationResult is the validator's verdict for one cleaned text.
// Created once per record and never mutated afterwards.
type ValidationResult struct {
	IsValid       bool     `json:"is_valid"`
	QualityScore  float64  `json:"quality_score"`  // 0.0-1.0
	QualityIssues []string `json:"quality_issues"` // ordered reason codes
	WordCount     int      `json:"word_count"`
	CharCount     int      `json:"char_count"`
	Language      string   `json:"language"` // ISO 639-3 code or "unknown"
}

// PIIType is one kind of personally identifiable information.
type PIIType string

const (
	PIIEmail      PIIType = "email"
	PIIPhone      PIIType = "phone_number"
	PIISSN        PIIType = "ssn"
	PIICreditCard PIIType = "credit_card"
)

// IssueReport holds the issue detector's annotations for one text.
// Issues never reject a record; they only annotate it.
type IssueReport struct {
	HasPII         bool      `json:"has_pii"`
	PIITypes       []PIIType `json:"pii_types"`
	HasProfanity   bool      `json:"has_profanity"`
	ProfanityRatio float64   `json:"profanity_ratio"`
	IsSpam         bool      `json:"is_spam"`
	SpamReasons    []string  `json:"spam_reasons"`
}

// MetricsSet holds quantitative text metrics for one record.
type MetricsSet struct {
	WordCount         int     `json:"word_count"`
	CharCount         int     `json:"char_count"` // non-whitespace characters
	SentenceCount     int     `json:"sentence_count"`
	AvgWordLength     float64 `json:"avg_word_length"`
	AvgSentenceLength float64 `json:"avg_sentence_length"`
	ReadabilityScore  float64 `json:"readability_score"` // Flesch Reading Ease
}

// AnomalyReport holds batch-relative anomaly flags for one record.
// It can only exist after every record's metrics exist - it compares
// the record against the whole processed set, not against a rule.
type AnomalyReport struct {
	WordCountOutlier   bool     `json:"word_count_outlier"`
	ReadabilityOutlier bool     `json:"readability_outlier"`
	DuplicateRisk      bool     `json:"duplicate_risk"`
	DuplicateOf        string   `json:"duplicate_of,omitempty"` // earlier record's ID
	StyleMismatch      bool     `json:"style_mismatch"`
	AnomalyDetails     []string `json:"anomaly_details"`
}

// HasAnomaly reports whether any of the four checks fired.
func (a AnomalyReport) HasAnomaly() bool {
	return a.WordCountOutlier || a.ReadabilityOutlier ||
		a.DuplicateRisk || a.StyleMismatch
}
