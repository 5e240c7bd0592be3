// pkg/pipeline/tracker.go
package pipeline

import (
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/moment-ml/preprocess/pkg/model"
)

// RunTracker accumulates per-record outcomes into the run's validation
// report.
type RunTracker struct {
	mu     sync.Mutex
	logger *zap.Logger

	StartTime time.Time
	EndTime   time.Time

	TotalInterpretations   int
	ValidInterpretations   int
	InvalidInterpretations int
	TotalPassages          int
	ValidPassages          int
	TotalUsers             int
	AnomaliesDetected      int
	PIICount               int
	ProfanityCount         int
	SpamCount              int
	RecordErrors           int
}

// NewRunTracker creates a new RunTracker instance
func NewRunTracker(logger *zap.Logger) *RunTracker {
	return &RunTracker{
		StartTime: time.Now().UTC(),
		logger:    logger,
	}
}

// AddMoment records the outcome of one processed interpretation.
func (t *RunTracker) AddMoment(m *model.ProcessedMoment) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.TotalInterpretations++
	if m.Validation.IsValid {
		t.ValidInterpretations++
	} else {
		t.InvalidInterpretations++
	}

	if m.DetectedIssues.HasPII {
		t.PIICount++
	}
	if m.DetectedIssues.HasProfanity {
		t.ProfanityCount++
	}
	if m.DetectedIssues.IsSpam {
		t.SpamCount++
	}

	if m.Anomalies.HasAnomaly() {
		t.AnomaliesDetected++
	}
}

// AddBook records the outcome of one processed passage.
func (t *RunTracker) AddBook(b *model.ProcessedBook) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.TotalPassages++
	if b.Validation.IsValid {
		t.ValidPassages++
	}
}

// AddUser records one processed user.
func (t *RunTracker) AddUser() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.TotalUsers++
}

// AddRecordError counts one skipped record.
func (t *RunTracker) AddRecordError() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.RecordErrors++
}

// Complete marks the run as finished and logs the totals.
func (t *RunTracker) Complete() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.EndTime = time.Now().UTC()

	if t.logger != nil {
		t.logger.Info("Preprocessing run completed",
			zap.Duration("duration", t.EndTime.Sub(t.StartTime)),
			zap.Int("total_interpretations", t.TotalInterpretations),
			zap.Int("valid_interpretations", t.ValidInterpretations),
			zap.Int("total_passages", t.TotalPassages),
			zap.Int("total_users", t.TotalUsers),
			zap.Int("anomalies_detected", t.AnomaliesDetected),
			zap.Int("record_errors", t.RecordErrors))
	}
}

// ValidityRate returns the percentage of valid interpretations.
func (t *RunTracker) ValidityRate() float64 {
	total := t.TotalInterpretations
	if total == 0 {
		total = 1
	}
	return float64(t.ValidInterpretations) / float64(total) * 100
}

// Report builds the validation report for the run.
func (t *RunTracker) Report() *model.ValidationReport {
	t.mu.Lock()
	defer t.mu.Unlock()

	end := t.EndTime
	if end.IsZero() {
		end = time.Now().UTC()
	}

	total := t.TotalInterpretations
	if total == 0 {
		total = 1
	}

	return &model.ValidationReport{
		ProcessingStart:        t.StartTime.Format(time.RFC3339),
		ProcessingEnd:          end.Format(time.RFC3339),
		TotalInterpretations:   t.TotalInterpretations,
		ValidInterpretations:   t.ValidInterpretations,
		InvalidInterpretations: t.InvalidInterpretations,
		ValidityRate:           float64(t.ValidInterpretations) / float64(total) * 100,
		TotalPassages:          t.TotalPassages,
		ValidPassages:          t.ValidPassages,
		TotalUsers:             t.TotalUsers,
		AnomaliesDetected:      t.AnomaliesDetected,
		IssuesDetected: model.IssueTally{
			PII:       t.PIICount,
			Profanity: t.ProfanityCount,
			Spam:      t.SpamCount,
		},
		RecordErrors: t.RecordErrors,
	}
}
