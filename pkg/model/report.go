// pkg/model/report.go
package model

// IssueTally counts batch-level content issues across all moments.
type IssueTally struct {
	PII       int `json:"pii"`
	Profanity int `json:"profanity"`
	Spam      int `json:"spam"`
}

// ValidationReport summarizes one pipeline run. Written alongside the
// output datasets so downstream consumers can gate on validity_rate
// without re-scanning the data.
type ValidationReport struct {
	ProcessingStart        string     `json:"processing_start"`
	ProcessingEnd          string     `json:"processing_end"`
	TotalInterpretations   int        `json:"total_interpretations"`
	ValidInterpretations   int        `json:"valid_interpretations"`
	InvalidInterpretations int        `json:"invalid_interpretations"`
	ValidityRate           float64    `json:"validity_rate"`
	TotalPassages          int        `json:"total_passages"`
	ValidPassages          int        `json:"valid_passages"`
	TotalUsers             int        `json:"total_users"`
	AnomaliesDetected      int        `json:"anomalies_detected"`
	IssuesDetected         IssueTally `json:"issues_detected"`
	RecordErrors           int        `json:"record_errors"`
}
