// pkg/anomaly/anomaly.go
package anomaly

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/moment-ml/preprocess/pkg/config"
	"github.com/moment-ml/preprocess/pkg/metrics"
	"github.com/moment-ml/preprocess/pkg/model"
)

// Candidate carries the per-record features the detector needs. The
// slice order given to Detect is the processing order; duplicate
// tie-breaks depend on it.
type Candidate struct {
	ID               string
	UserID           string
	Text             string
	WordCount        int
	ReadabilityScore float64
}

// Detector finds batch-relative anomalies. It is two-phase: Fit
// computes batch statistics, Detect scores each record against them.
// Single records are never anomalous on their own.
type Detector struct {
	cfg    config.AnomalyConfig
	logger *zap.Logger

	fitted     bool
	wordCounts metrics.Distribution
	readability metrics.Distribution
}

// NewDetector creates a new Detector instance
func NewDetector(cfg config.AnomalyConfig, logger *zap.Logger) (*Detector, error) {
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}

	return &Detector{
		cfg:    cfg,
		logger: logger,
	}, nil
}

// Fit computes the batch statistics later Detect calls score against.
func (d *Detector) Fit(batch []Candidate) {
	wcs := make([]float64, len(batch))
	scores := make([]float64, len(batch))
	for i, c := range batch {
		wcs[i] = float64(c.WordCount)
		scores[i] = c.ReadabilityScore
	}

	d.wordCounts = metrics.Describe(wcs)
	d.readability = metrics.Describe(scores)
	d.fitted = true

	d.logger.Debug("fitted batch statistics",
		zap.Int("batch_size", len(batch)),
		zap.Float64("word_count_q1", d.wordCounts.Q1),
		zap.Float64("word_count_q3", d.wordCounts.Q3),
		zap.Float64("readability_mean", d.readability.Mean))
}

// Detect returns one report per candidate, aligned by index. Fit must
// have been called first.
func (d *Detector) Detect(batch []Candidate) ([]model.AnomalyReport, error) {
	if !d.fitted {
		return nil, errors.New("detector has not been fitted")
	}

	reports := make([]model.AnomalyReport, len(batch))
	for i := range reports {
		reports[i].AnomalyDetails = []string{}
	}

	for i, c := range batch {
		d.checkWordCount(c, &reports[i])
		d.checkReadability(c, &reports[i])
	}

	d.checkDuplicates(batch, reports)
	d.checkStyleGroups(batch, reports)

	flagged := 0
	for i := range reports {
		if reports[i].HasAnomaly() {
			flagged++
		}
	}
	d.logger.Info("anomaly detection complete",
		zap.Int("batch_size", len(batch)),
		zap.Int("flagged", flagged))

	return reports, nil
}

// checkWordCount flags counts strictly outside the Tukey fences. A
// value sitting exactly on a fence is not an outlier.
func (d *Detector) checkWordCount(c Candidate, report *model.AnomalyReport) {
	lower := d.wordCounts.Q1 - d.cfg.IQRMultiplier*d.wordCounts.IQR
	upper := d.wordCounts.Q3 + d.cfg.IQRMultiplier*d.wordCounts.IQR

	wc := float64(c.WordCount)
	switch {
	case wc < lower:
		report.WordCountOutlier = true
		report.AnomalyDetails = append(report.AnomalyDetails,
			fmt.Sprintf("word_count_low: %d words (below lower bound of %.1f)", c.WordCount, lower))
	case wc > upper:
		report.WordCountOutlier = true
		report.AnomalyDetails = append(report.AnomalyDetails,
			fmt.Sprintf("word_count_high: %d words (above upper bound of %.1f)", c.WordCount, upper))
	}
}

// checkReadability flags scores far from the batch mean. When the
// batch has zero variance no record is flagged.
func (d *Detector) checkReadability(c Candidate, report *model.AnomalyReport) {
	if d.readability.StdDev == 0 {
		return
	}

	z := (c.ReadabilityScore - d.readability.Mean) / d.readability.StdDev
	if z > d.cfg.ZScoreThreshold {
		report.ReadabilityOutlier = true
		report.AnomalyDetails = append(report.AnomalyDetails,
			fmt.Sprintf("readability_high: score=%.1f, z-score=%.2f", c.ReadabilityScore, z))
	} else if z < -d.cfg.ZScoreThreshold {
		report.ReadabilityOutlier = true
		report.AnomalyDetails = append(report.AnomalyDetails,
			fmt.Sprintf("readability_low: score=%.1f, z-score=%.2f", c.ReadabilityScore, z))
	}
}

// checkDuplicates compares each record against all earlier records and
// flags the later one. The earliest copy in processing order is never
// flagged, so one record of every near-duplicate cluster survives.
func (d *Detector) checkDuplicates(batch []Candidate, reports []model.AnomalyReport) {
	vectors := make([]termVector, len(batch))
	for i, c := range batch {
		vectors[i] = newTermVector(c.Text)
	}

	for i := 1; i < len(batch); i++ {
		for j := 0; j < i; j++ {
			sim := vectors[i].cosine(vectors[j])
			if sim >= d.cfg.SimilarityThreshold {
				reports[i].DuplicateRisk = true
				reports[i].DuplicateOf = batch[j].ID
				reports[i].AnomalyDetails = append(reports[i].AnomalyDetails,
					fmt.Sprintf("duplicate_risk: %.2f similarity with %s", sim, batch[j].ID))
				break
			}
		}
	}
}

// checkStyleGroups runs a word-count outlier test scoped to the
// records sharing a user, catching interpretations that break the
// reader's own pattern even when unremarkable batch-wide.
func (d *Detector) checkStyleGroups(batch []Candidate, reports []model.AnomalyReport) {
	groups := make(map[string][]int)
	for i, c := range batch {
		if c.UserID == "" {
			continue
		}
		groups[c.UserID] = append(groups[c.UserID], i)
	}

	for _, indices := range groups {
		if len(indices) < d.cfg.MinGroupSize {
			continue
		}

		wcs := make([]float64, len(indices))
		for k, i := range indices {
			wcs[k] = float64(batch[i].WordCount)
		}
		dist := metrics.Describe(wcs)

		lower := dist.Q1 - d.cfg.IQRMultiplier*dist.IQR
		upper := dist.Q3 + d.cfg.IQRMultiplier*dist.IQR

		for _, i := range indices {
			wc := float64(batch[i].WordCount)
			if wc < lower || wc > upper {
				reports[i].StyleMismatch = true
				reports[i].AnomalyDetails = append(reports[i].AnomalyDetails,
					fmt.Sprintf("style_mismatch: %d words outside user range [%.1f, %.1f]", batch[i].WordCount, lower, upper))
			}
		}
	}
}
