// pkg/pipeline/pipeline.go
package pipeline

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/moment-ml/preprocess/pkg/adapter"
	"github.com/moment-ml/preprocess/pkg/anomaly"
	"github.com/moment-ml/preprocess/pkg/cleaner"
	"github.com/moment-ml/preprocess/pkg/config"
	"github.com/moment-ml/preprocess/pkg/detector"
	"github.com/moment-ml/preprocess/pkg/identifier"
	"github.com/moment-ml/preprocess/pkg/lookup"
	"github.com/moment-ml/preprocess/pkg/metrics"
	"github.com/moment-ml/preprocess/pkg/model"
	"github.com/moment-ml/preprocess/pkg/validator"
)

// Preprocessor orchestrates the preprocessing run. Each record flows
// through the stages in a fixed order: clean, validate, detect issues,
// compute metrics, assign IDs. Anomaly detection runs afterward over
// the whole batch, since its statistics need every record first.
type Preprocessor struct {
	cfg          *config.Config
	reader       adapter.DatasetReader
	writer       adapter.DatasetWriter
	resolver     *lookup.BookResolver
	textCleaner  *cleaner.TextCleaner
	validator    *validator.Validator
	issues       *detector.IssueDetector
	calculator   *metrics.Calculator
	ids          *identifier.Generator
	anomalies    *anomaly.Detector
	errorHandler *ErrorHandler
	tracker      *RunTracker
	logger       *zap.Logger
}

// passageRef locates a processed passage for moments that reference it.
type passageRef struct {
	passageID string
	bookID    string
}

// NewPreprocessor creates a new preprocessor and its stage components
func NewPreprocessor(
	cfg *config.Config,
	reader adapter.DatasetReader,
	writer adapter.DatasetWriter,
	resolver *lookup.BookResolver,
	logger *zap.Logger,
) (*Preprocessor, error) {
	textCleaner, err := cleaner.NewTextCleaner(cfg.Cleaning, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create cleaner: %w", err)
	}

	v, err := validator.NewValidator(cfg.Validation, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create validator: %w", err)
	}

	issues, err := detector.NewIssueDetector(cfg.Issues, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create issue detector: %w", err)
	}

	calculator, err := metrics.NewCalculator(logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create metrics calculator: %w", err)
	}

	anomalies, err := anomaly.NewDetector(cfg.Anomaly, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create anomaly detector: %w", err)
	}

	return &Preprocessor{
		cfg:          cfg,
		reader:       reader,
		writer:       writer,
		resolver:     resolver,
		textCleaner:  textCleaner,
		validator:    v,
		issues:       issues,
		calculator:   calculator,
		ids:          identifier.NewGenerator(cfg.Identity),
		anomalies:    anomalies,
		errorHandler: NewErrorHandler(logger),
		tracker:      NewRunTracker(logger),
		logger:       logger,
	}, nil
}

// Run executes the full preprocessing batch and returns the validation
// report. Individual bad records are logged and skipped; Run fails only
// when a whole dataset cannot be read or written, or the record error
// threshold is exceeded.
func (p *Preprocessor) Run(ctx context.Context) (*model.ValidationReport, error) {
	runID := uuid.New().String()
	logger := p.logger.With(zap.String("run_id", runID))
	logger.Info("Starting preprocessing run")

	timestamp := p.tracker.StartTime.Format(time.RFC3339)

	rawMoments, err := p.reader.ReadInterpretations(ctx)
	if err != nil {
		p.errorHandler.RecordError(NewErrorRecord(err, ErrorCategoryDatasetLevel).WithDataset("moments"))
		return nil, fmt.Errorf("failed to read interpretations: %w", err)
	}

	rawPassages, err := p.reader.ReadPassages(ctx)
	if err != nil {
		p.errorHandler.RecordError(NewErrorRecord(err, ErrorCategoryDatasetLevel).WithDataset("passages"))
		return nil, fmt.Errorf("failed to read passages: %w", err)
	}

	rawCharacters, err := p.reader.ReadCharacters(ctx)
	if err != nil {
		p.errorHandler.RecordError(NewErrorRecord(err, ErrorCategoryDatasetLevel).WithDataset("users"))
		return nil, fmt.Errorf("failed to read characters: %w", err)
	}

	books := p.resolveBooks(ctx, logger, rawPassages, rawMoments)

	processedBooks, passageIndex := p.processPassages(logger, rawPassages, books, timestamp)
	processedMoments := p.processMoments(logger, rawMoments, books, passageIndex, timestamp)
	processedUsers := p.processUsers(logger, rawCharacters, processedMoments, timestamp)

	if p.errorHandler.ShouldAbort() {
		return nil, fmt.Errorf("aborting run: too many record errors (%d)", p.errorHandler.TotalErrors())
	}

	if err := p.writer.WriteMoments(ctx, processedMoments); err != nil {
		return nil, fmt.Errorf("failed to write moments: %w", err)
	}
	if err := p.writer.WriteBooks(ctx, processedBooks); err != nil {
		return nil, fmt.Errorf("failed to write books: %w", err)
	}
	if err := p.writer.WriteUsers(ctx, processedUsers); err != nil {
		return nil, fmt.Errorf("failed to write users: %w", err)
	}

	p.tracker.Complete()

	report := p.tracker.Report()
	report.RecordErrors = p.errorHandler.TotalErrors()
	if err := p.writer.WriteReport(ctx, report); err != nil {
		return nil, fmt.Errorf("failed to write validation report: %w", err)
	}

	logger.Info("Preprocessing run finished",
		zap.Float64("validity_rate", report.ValidityRate),
		zap.Int("record_errors", report.RecordErrors))

	return report, nil
}

// resolveBooks looks up metadata once per distinct title across both
// datasets.
func (p *Preprocessor) resolveBooks(
	ctx context.Context,
	logger *zap.Logger,
	passages []model.RawPassage,
	moments []model.RawInterpretation,
) map[string]model.BookMetadata {
	titles := make(map[string]struct{})
	for _, rp := range passages {
		if rp.BookTitle != "" {
			titles[rp.BookTitle] = struct{}{}
		}
	}
	for _, rm := range moments {
		if rm.Book != "" {
			titles[rm.Book] = struct{}{}
		}
	}

	books := make(map[string]model.BookMetadata, len(titles))
	for title := range titles {
		meta := p.resolver.Resolve(ctx, title)
		if !meta.Found {
			p.errorHandler.RecordError(NewErrorRecord(
				fmt.Errorf("no metadata for title %q", title), ErrorCategoryLookup).WithDataset("books"))
		}
		books[title] = meta
	}

	logger.Info("Resolved book metadata",
		zap.Int("titles", len(titles)),
		zap.Int("resolved", countFound(books)))

	return books
}

func countFound(books map[string]model.BookMetadata) int {
	n := 0
	for _, meta := range books {
		if meta.Found {
			n++
		}
	}
	return n
}

func (p *Preprocessor) bookIDFor(meta model.BookMetadata, title string) string {
	if meta.Found {
		return p.ids.BookID(meta.GutenbergID)
	}
	return p.ids.UnknownBookID(title)
}

// processPassages cleans, validates, and enriches each passage. The
// returned index maps book title and passage number to the generated
// IDs so moments can reference them.
func (p *Preprocessor) processPassages(
	logger *zap.Logger,
	rawPassages []model.RawPassage,
	books map[string]model.BookMetadata,
	timestamp string,
) ([]model.ProcessedBook, map[string]map[int]passageRef) {
	processed := make([]model.ProcessedBook, 0, len(rawPassages))
	index := make(map[string]map[int]passageRef)

	for i, raw := range rawPassages {
		if raw.PassageText == "" || raw.BookTitle == "" {
			p.errorHandler.RecordError(NewErrorRecord(
				fmt.Errorf("passage %d is missing title or text", i), ErrorCategoryRecordLevel).WithDataset("passages"))
			p.tracker.AddRecordError()
			continue
		}

		meta := books[raw.BookTitle]
		bookID := p.bookIDFor(meta, raw.BookTitle)
		passageID := p.ids.PassageID(bookID, raw.PassageNumber)

		cleaned := p.textCleaner.Clean(raw.PassageText)
		validation := p.validator.Validate(cleaned, model.KindPassage)

		chapter := raw.ChapterNumber
		if chapter == "" {
			chapter = meta.Chapter
		}

		book := model.ProcessedBook{
			BookID:        bookID,
			PassageID:     passageID,
			BookTitle:     raw.BookTitle,
			BookAuthor:    meta.Author,
			ChapterNumber: chapter,
			PassageTitle:  raw.PassageTitle,
			PassageNumber: raw.PassageNumber,
			CleanedText:   cleaned,
			Validation:    validation,
			Metrics:       p.calculator.Compute(cleaned),
			Timestamp:     timestamp,
		}

		processed = append(processed, book)
		p.tracker.AddBook(&book)

		if index[raw.BookTitle] == nil {
			index[raw.BookTitle] = make(map[int]passageRef)
		}
		index[raw.BookTitle][raw.PassageNumber] = passageRef{passageID: passageID, bookID: bookID}
	}

	logger.Info("Processed passages",
		zap.Int("total", len(rawPassages)),
		zap.Int("kept", len(processed)))

	return processed, index
}

// processMoments runs the per-record stages, then fits the anomaly
// detector on the whole batch and merges its reports back by index.
func (p *Preprocessor) processMoments(
	logger *zap.Logger,
	rawMoments []model.RawInterpretation,
	books map[string]model.BookMetadata,
	passageIndex map[string]map[int]passageRef,
	timestamp string,
) []model.ProcessedMoment {
	processed := make([]model.ProcessedMoment, 0, len(rawMoments))
	candidates := make([]anomaly.Candidate, 0, len(rawMoments))

	for i, raw := range rawMoments {
		if raw.Interpretation == "" || raw.CharacterName == "" {
			p.errorHandler.RecordError(NewErrorRecord(
				fmt.Errorf("interpretation %d is missing text or character", i), ErrorCategoryRecordLevel).WithDataset("moments"))
			p.tracker.AddRecordError()
			continue
		}

		meta := books[raw.Book]
		bookID := p.bookIDFor(meta, raw.Book)

		// Prefer the ID recorded by the passage dataset; derive it when
		// the passage itself was absent or skipped.
		passageID := p.ids.PassageID(bookID, raw.PassageID)
		if ref, ok := passageIndex[raw.Book][raw.PassageID]; ok {
			passageID = ref.passageID
			bookID = ref.bookID
		}

		cleaned := p.textCleaner.Clean(raw.Interpretation)
		validation := p.validator.Validate(cleaned, model.KindInterpretation)
		issues := p.issues.Detect(cleaned)
		metricSet := p.calculator.Compute(cleaned)

		userID := p.ids.UserID(raw.CharacterName)
		momentID := p.ids.InterpretationID(userID, passageID, cleaned)

		moment := model.ProcessedMoment{
			InterpretationID:      momentID,
			UserID:                userID,
			BookID:                bookID,
			PassageID:             passageID,
			BookTitle:             raw.Book,
			PassageNumber:         raw.PassageID,
			CharacterID:           raw.CharacterID,
			CharacterName:         raw.CharacterName,
			CleanedInterpretation: cleaned,
			OriginalWordCount:     raw.WordCount,
			Validation:            validation,
			DetectedIssues:        issues,
			Metrics:               metricSet,
			Anomalies:             model.AnomalyReport{AnomalyDetails: []string{}},
			Timestamp:             timestamp,
		}

		processed = append(processed, moment)
		candidates = append(candidates, anomaly.Candidate{
			ID:               momentID,
			UserID:           userID,
			Text:             cleaned,
			WordCount:        metricSet.WordCount,
			ReadabilityScore: metricSet.ReadabilityScore,
		})
	}

	p.anomalies.Fit(candidates)
	reports, err := p.anomalies.Detect(candidates)
	if err != nil {
		p.errorHandler.RecordError(NewErrorRecord(err, ErrorCategorySystemLevel).WithDataset("moments"))
	} else {
		for i := range processed {
			processed[i].Anomalies = reports[i]
		}
	}

	for i := range processed {
		p.tracker.AddMoment(&processed[i])
	}

	logger.Info("Processed interpretations",
		zap.Int("total", len(rawMoments)),
		zap.Int("kept", len(processed)))

	return processed
}

// processUsers builds one output record per reader profile, enriched
// with aggregates over that reader's processed interpretations.
func (p *Preprocessor) processUsers(
	logger *zap.Logger,
	rawCharacters []model.RawCharacter,
	moments []model.ProcessedMoment,
	timestamp string,
) []model.ProcessedUser {
	counts := make(map[string]int)
	bookSets := make(map[string]map[string]struct{})
	for _, m := range moments {
		counts[m.UserID]++
		if bookSets[m.UserID] == nil {
			bookSets[m.UserID] = make(map[string]struct{})
		}
		bookSets[m.UserID][m.BookID] = struct{}{}
	}

	processed := make([]model.ProcessedUser, 0, len(rawCharacters))
	for i, raw := range rawCharacters {
		if raw.Name == "" {
			p.errorHandler.RecordError(NewErrorRecord(
				fmt.Errorf("character %d has no name", i), ErrorCategoryRecordLevel).WithDataset("users"))
			p.tracker.AddRecordError()
			continue
		}

		userID := p.ids.UserID(raw.Name)

		books := make([]string, 0, len(bookSets[userID]))
		for bookID := range bookSets[userID] {
			books = append(books, bookID)
		}
		sort.Strings(books)

		styles := raw.Styles
		if styles == nil {
			styles = []string{}
		}

		processed = append(processed, model.ProcessedUser{
			UserID:               userID,
			CharacterName:        raw.Name,
			Gender:               raw.Gender,
			Age:                  raw.Age,
			Profession:           raw.Profession,
			DistributionCategory: raw.DistributionCategory,
			Personality:          raw.Personality,
			Interest:             raw.Interest,
			ReadingIntensity:     raw.ReadingIntensity,
			ReadingCount:         raw.ReadingCount,
			ExperienceLevel:      raw.ExperienceLevel,
			ExperienceCount:      raw.ExperienceCount,
			Journey:              raw.Journey,
			ReadingStyles:        styles,
			TotalInterpretations: counts[userID],
			BooksInterpreted:     books,
			Timestamp:            timestamp,
		})
		p.tracker.AddUser()
	}

	logger.Info("Processed users",
		zap.Int("total", len(rawCharacters)),
		zap.Int("kept", len(processed)))

	return processed
}
