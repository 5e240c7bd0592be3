// pkg/adapter/csv.go
package adapter

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"

	"github.com/moment-ml/preprocess/pkg/config"
	"github.com/moment-ml/preprocess/pkg/model"
)

// CSVReader reads raw datasets from CSV files with a header row. Field
// lookup is by header name, so column order does not matter.
type CSVReader struct {
	paths  config.PathConfig
	logger *zap.Logger
}

// NewCSVReader creates a new CSVReader instance
func NewCSVReader(paths config.PathConfig, logger *zap.Logger) (*CSVReader, error) {
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}

	return &CSVReader{
		paths:  paths,
		logger: logger,
	}, nil
}

func (r *CSVReader) ReadInterpretations(ctx context.Context) ([]model.RawInterpretation, error) {
	rows, err := readCSVRows(ctx, r.paths.MomentsFile)
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

func (r *CSVReader) ReadPassages(ctx context.Context) ([]model.RawPassage, error) {
	rows, err := readCSVRows(ctx, r.paths.PassagesFile)
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

func (r *CSVReader) ReadCharacters(ctx context.Context) ([]model.RawCharacter, error) {
	rows, err := readCSVRows(ctx, r.paths.UsersFile)
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

func readCSVRows(ctx context.Context, path string) ([]map[string]interface{}, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read header of %s: %w", path, err)
	}

	var rows []map[string]interface{}
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", path, err)
		}

		row := make(map[string]interface{}, len(header))
		for i, col := range header {
			if i < len(record) {
				row[col] = record[i]
			}
		}
		rows = append(rows, row)
	}

	return rows, nil
}
