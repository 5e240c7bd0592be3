// pkg/cleaner/cleaner.go
package cleaner

import (
	"errors"

	"go.uber.org/zap"

	"github.com/moment-ml/preprocess/pkg/config"
)

// TextCleaner normalizes raw text before validation. All operations are
// idempotent: cleaning already-clean text returns it unchanged.
type TextCleaner struct {
	cfg    config.CleaningConfig
	logger *zap.Logger
}

// NewTextCleaner creates a new TextCleaner instance
func NewTextCleaner(cfg config.CleaningConfig, logger *zap.Logger) (*TextCleaner, error) {
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}

	return &TextCleaner{
		cfg:    cfg,
		logger: logger,
	}, nil
}

// Clean runs the full cleaning sequence on text. The order is fixed:
// encoding fixes run first so later passes see plain ASCII punctuation,
// and whitespace normalization runs last so it can repair spacing the
// earlier removals leave behind.
func (c *TextCleaner) Clean(text string) string {
	if text == "" {
		return ""
	}

	original := text

	if c.cfg.FixEncoding {
		text = fixEncodingArtifacts(text)
	}
	if c.cfg.RemoveURLs {
		text = removeURLs(text)
	}
	if c.cfg.RemoveEmails {
		text = removeEmails(text)
	}
	if c.cfg.NormalizeWhitespace {
		text = normalizeWhitespace(text)
	}

	if text != original {
		c.logger.Debug("cleaned text",
			zap.Int("original_length", len(original)),
			zap.Int("cleaned_length", len(text)))
	}

	return text
}
