// pkg/adapter/json.go
package adapter

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/moment-ml/preprocess/pkg/config"
	"github.com/moment-ml/preprocess/pkg/model"
)

// JSONReader reads raw datasets from JSON files. Records are decoded
// into generic maps first and coerced field by field, since the raw
// exports are not consistently typed.
type JSONReader struct {
	paths  config.PathConfig
	logger *zap.Logger
}

// NewJSONReader creates a new JSONReader instance
func NewJSONReader(paths config.PathConfig, logger *zap.Logger) (*JSONReader, error) {
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}

	return &JSONReader{
		paths:  paths,
		logger: logger,
	}, nil
}

func (r *JSONReader) ReadInterpretations(ctx context.Context) ([]model.RawInterpretation, error) {
	rows, err := readRows(ctx, r.paths.MomentsFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read interpretations: %w", err)
	}

	records := make([]model.RawInterpretation, 0, len(rows))
	for _, row := range rows {
		records = append(records, model.RawInterpretation{
			Book:           toString(row["book"]),
			PassageID:      toPassageNumber(row["passage_id"]),
			CharacterID:    toInt(row["character_id"]),
			CharacterName:  toString(row["character_name"]),
			Interpretation: toString(row["interpretation"]),
			WordCount:      toInt(row["word_count"]),
		})
	}

	r.logger.Info("loaded raw interpretations",
		zap.String("file", r.paths.MomentsFile),
		zap.Int("count", len(records)))

	return records, nil
}

func (r *JSONReader) ReadPassages(ctx context.Context) ([]model.RawPassage, error) {
	rows, err := readRows(ctx, r.paths.PassagesFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read passages: %w", err)
	}

	records := make([]model.RawPassage, 0, len(rows))
	for _, row := range rows {
		records = append(records, model.RawPassage{
			BookTitle:     toString(row["book_title"]),
			PassageNumber: toPassageNumber(row["passage_number"]),
			ChapterNumber: toString(row["chapter_number"]),
			PassageTitle:  toString(row["passage_title"]),
			PassageText:   toString(row["passage_text"]),
		})
	}

	r.logger.Info("loaded raw passages",
		zap.String("file", r.paths.PassagesFile),
		zap.Int("count", len(records)))

	return records, nil
}

func (r *JSONReader) ReadCharacters(ctx context.Context) ([]model.RawCharacter, error) {
	rows, err := readRows(ctx, r.paths.UsersFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read characters: %w", err)
	}

	records := make([]model.RawCharacter, 0, len(rows))
	for _, row := range rows {
		records = append(records, model.RawCharacter{
			Name:                 toString(row["name"]),
			Gender:               toString(row["gender"]),
			Age:                  toInt(row["age"]),
			Profession:           toString(row["profession"]),
			DistributionCategory: toString(row["distribution_category"]),
			Personality:          toString(row["personality"]),
			Interest:             toString(row["interest"]),
			ReadingIntensity:     toString(row["reading_intensity"]),
			ReadingCount:         toInt(row["reading_count"]),
			ExperienceLevel:      toString(row["experience_level"]),
			ExperienceCount:      toInt(row["experience_count"]),
			Journey:              toString(row["journey"]),
			Styles:               toStringSlice(row["styles"]),
		})
	}

	r.logger.Info("loaded raw characters",
		zap.String("file", r.paths.UsersFile),
		zap.Int("count", len(records)))

	return records, nil
}

func readRows(ctx context.Context, path string) ([]map[string]interface{}, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var rows []map[string]interface{}
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return rows, nil
}

// JSONWriter writes processed datasets as indented JSON files under
// the configured output directory.
type JSONWriter struct {
	outputDir string
	logger    *zap.Logger
}

// NewJSONWriter creates a new JSONWriter instance
func NewJSONWriter(outputDir string, logger *zap.Logger) (*JSONWriter, error) {
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}
	if outputDir == "" {
		return nil, errors.New("output directory cannot be empty")
	}

	return &JSONWriter{
		outputDir: outputDir,
		logger:    logger,
	}, nil
}

func (w *JSONWriter) WriteMoments(ctx context.Context, moments []model.ProcessedMoment) error {
	return w.writeFile(ctx, "moments_processed.json", moments, len(moments))
}

func (w *JSONWriter) WriteBooks(ctx context.Context, books []model.ProcessedBook) error {
	return w.writeFile(ctx, "books_processed.json", books, len(books))
}

func (w *JSONWriter) WriteUsers(ctx context.Context, users []model.ProcessedUser) error {
	return w.writeFile(ctx, "users_processed.json", users, len(users))
}

func (w *JSONWriter) WriteReport(ctx context.Context, report *model.ValidationReport) error {
	return w.writeFile(ctx, "validation_report.json", report, 1)
}

func (w *JSONWriter) writeFile(ctx context.Context, name string, v interface{}, count int) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if err := os.MkdirAll(w.outputDir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", name, err)
	}

	path := filepath.Join(w.outputDir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	w.logger.Info("wrote output file",
		zap.String("file", path),
		zap.Int("records", count))

	return nil
}
