// pkg/adapter/adapter.go
package adapter

import (
	"context"

	"github.com/moment-ml/preprocess/pkg/model"
)

// DatasetReader loads the three raw input datasets.
type DatasetReader interface {
	// ReadInterpretations loads the raw reader-interpretation records
	ReadInterpretations(ctx context.Context) ([]model.RawInterpretation, error)

	// ReadPassages loads the raw literary passage records
	ReadPassages(ctx context.Context) ([]model.RawPassage, error)

	// ReadCharacters loads the raw reader-profile records
	ReadCharacters(ctx context.Context) ([]model.RawCharacter, error)
}

// DatasetWriter persists the processed output datasets.
type DatasetWriter interface {
	// WriteMoments writes the processed interpretation dataset
	WriteMoments(ctx context.Context, moments []model.ProcessedMoment) error

	// WriteBooks writes the processed passage dataset
	WriteBooks(ctx context.Context, books []model.ProcessedBook) error

	// WriteUsers writes the processed user dataset
	WriteUsers(ctx context.Context, users []model.ProcessedUser) error

	// WriteReport writes the run's validation report
	WriteReport(ctx context.Context, report *model.ValidationReport) error
}
