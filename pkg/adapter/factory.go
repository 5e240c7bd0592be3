// pkg/adapter/factory.go
package adapter

import (
	"fmt"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/moment-ml/preprocess/pkg/config"
)

// Factory creates dataset readers and writers
type Factory struct {
	cfg    *config.Config
	logger *zap.Logger
}

// NewFactory creates a new adapter factory
func NewFactory(cfg *config.Config, logger *zap.Logger) *Factory {
	return &Factory{
		cfg:    cfg,
		logger: logger,
	}
}

// CreateReader picks a reader implementation from the extension of the
// interpretations file. All three input files must share a format.
func (f *Factory) CreateReader() (DatasetReader, error) {
	ext := strings.ToLower(filepath.Ext(f.cfg.Paths.MomentsFile))
	switch ext {
	case ".json":
		f.logger.Info("Creating JSON dataset reader")
		return NewJSONReader(f.cfg.Paths, f.logger)
	case ".csv":
		f.logger.Info("Creating CSV dataset reader")
		return NewCSVReader(f.cfg.Paths, f.logger)
	default:
		return nil, fmt.Errorf("unsupported input format %q", ext)
	}
}

// CreateWriter creates the JSON dataset writer
func (f *Factory) CreateWriter() (DatasetWriter, error) {
	f.logger.Info("Creating JSON dataset writer")
	return NewJSONWriter(f.cfg.Paths.OutputDir, f.logger)
}
