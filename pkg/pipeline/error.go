// pkg/pipeline/error.go
package pipeline

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
)

// ErrorCategory defines categories of errors during preprocessing
type ErrorCategory int

const (
	// Error categories with increasing severity
	ErrorCategoryNone ErrorCategory = iota
	ErrorCategoryWarning
	ErrorCategoryParse
	ErrorCategoryLookup
	ErrorCategoryRecordLevel
	ErrorCategoryDatasetLevel
	ErrorCategorySystemLevel
	ErrorCategoryCritical
)

// String returns a string representation of the error category
func (ec ErrorCategory) String() string {
	switch ec {
	case ErrorCategoryNone:
		return "None"
	case ErrorCategoryWarning:
		return "Warning"
	case ErrorCategoryParse:
		return "Parse"
	case ErrorCategoryLookup:
		return "Lookup"
	case ErrorCategoryRecordLevel:
		return "RecordLevel"
	case ErrorCategoryDatasetLevel:
		return "DatasetLevel"
	case ErrorCategorySystemLevel:
		return "SystemLevel"
	case ErrorCategoryCritical:
		return "Critical"
	default:
		return fmt.Sprintf("Unknown(%d)", ec)
	}
}

// ErrorRecord represents a single error during preprocessing
type ErrorRecord struct {
	Category  ErrorCategory
	Dataset   string
	RecordID  string
	Error     error
	Message   string // Derived from Error but stored for serialization
	Timestamp time.Time
}

// NewErrorRecord creates a new error record with current timestamp
func NewErrorRecord(err error, category ErrorCategory) ErrorRecord {
	record := ErrorRecord{
		Category:  category,
		Error:     err,
		Timestamp: time.Now(),
	}

	if err != nil {
		record.Message = err.Error()
	}

	return record
}

// WithDataset adds dataset information to the error record
func (r ErrorRecord) WithDataset(dataset string) ErrorRecord {
	r.Dataset = dataset
	return r
}

// WithRecord adds record information to the error record
func (r ErrorRecord) WithRecord(recordID string) ErrorRecord {
	r.RecordID = recordID
	return r
}

// String returns a formatted error message
func (r ErrorRecord) String() string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("[%s] ", r.Category))

	if r.Dataset != "" {
		sb.WriteString(fmt.Sprintf("Dataset: %s ", r.Dataset))
	}

	if r.RecordID != "" {
		sb.WriteString(fmt.Sprintf("Record: %s ", r.RecordID))
	}

	if r.Error != nil {
		sb.WriteString(fmt.Sprintf("Error: %s", r.Error.Error()))
	} else if r.Message != "" {
		sb.WriteString(fmt.Sprintf("Error: %s", r.Message))
	}

	return sb.String()
}

// ErrorHandler manages error handling during preprocessing. Record
// level errors are tolerated up to a threshold; dataset and system
// level errors abort the run.
type ErrorHandler struct {
	logger          *zap.Logger
	errorThresholds map[ErrorCategory]int
	errorCounts     map[ErrorCategory]int
	sampleErrors    map[ErrorCategory][]ErrorRecord
	datasetErrors   map[string]int
	mu              sync.Mutex
	maxSamples      int
}

// NewErrorHandler creates a new error handler
func NewErrorHandler(logger *zap.Logger) *ErrorHandler {
	// Default error thresholds by category
	thresholds := map[ErrorCategory]int{
		ErrorCategoryWarning:      1000, // Many warnings are acceptable
		ErrorCategoryParse:        200,  // Quite a few parse errors acceptable
		ErrorCategoryLookup:       50,   // Lookup falls back, so tolerate some
		ErrorCategoryRecordLevel:  100,  // Bad records are skipped, not fatal
		ErrorCategoryDatasetLevel: 1,    // A whole dataset failing is fatal
		ErrorCategorySystemLevel:  1,    // Almost no system errors acceptable
		ErrorCategoryCritical:     0,    // No critical errors acceptable
	}

	return &ErrorHandler{
		logger:          logger,
		errorThresholds: thresholds,
		errorCounts:     make(map[ErrorCategory]int),
		sampleErrors:    make(map[ErrorCategory][]ErrorRecord),
		datasetErrors:   make(map[string]int),
		maxSamples:      5, // Store up to 5 sample errors per category
	}
}

// RecordError saves an error occurrence
func (eh *ErrorHandler) RecordError(record ErrorRecord) {
	eh.mu.Lock()
	defer eh.mu.Unlock()

	eh.errorCounts[record.Category]++

	// Save sample errors (up to max samples per category)
	samples := eh.sampleErrors[record.Category]
	if len(samples) < eh.maxSamples {
		eh.sampleErrors[record.Category] = append(samples, record)
	}

	if record.Dataset != "" {
		eh.datasetErrors[record.Dataset]++
	}

	if eh.logger != nil {
		logLevel := zap.InfoLevel
		switch record.Category {
		case ErrorCategoryWarning, ErrorCategoryLookup:
			logLevel = zap.WarnLevel
		case ErrorCategoryDatasetLevel, ErrorCategorySystemLevel, ErrorCategoryCritical:
			logLevel = zap.ErrorLevel
		}

		eh.logger.Log(logLevel, "Preprocessing error",
			zap.String("category", record.Category.String()),
			zap.String("dataset", record.Dataset),
			zap.String("record", record.RecordID),
			zap.String("error", record.Message))
	}
}

// ShouldAbort reports whether any error category has exceeded its
// threshold.
func (eh *ErrorHandler) ShouldAbort() bool {
	eh.mu.Lock()
	defer eh.mu.Unlock()

	for category, count := range eh.errorCounts {
		threshold, exists := eh.errorThresholds[category]
		if exists && count > threshold {
			if eh.logger != nil {
				eh.logger.Error("Error threshold exceeded",
					zap.String("category", category.String()),
					zap.Int("count", count),
					zap.Int("threshold", threshold))
			}
			return true
		}
	}

	return false
}

// TotalErrors returns the total number of recorded errors across all
// categories.
func (eh *ErrorHandler) TotalErrors() int {
	eh.mu.Lock()
	defer eh.mu.Unlock()

	total := 0
	for _, count := range eh.errorCounts {
		total += count
	}
	return total
}

// GetErrorSummary generates an error summary report
func (eh *ErrorHandler) GetErrorSummary() map[ErrorCategory]int {
	eh.mu.Lock()
	defer eh.mu.Unlock()

	summary := make(map[ErrorCategory]int)
	for category, count := range eh.errorCounts {
		summary[category] = count
	}

	return summary
}

// GetErrorSamples returns sample errors for each category
func (eh *ErrorHandler) GetErrorSamples() map[ErrorCategory][]ErrorRecord {
	eh.mu.Lock()
	defer eh.mu.Unlock()

	samples := make(map[ErrorCategory][]ErrorRecord)
	for category, records := range eh.sampleErrors {
		categorySamples := make([]ErrorRecord, len(records))
		copy(categorySamples, records)
		samples[category] = categorySamples
	}

	return samples
}
