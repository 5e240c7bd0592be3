// pkg/lookup/lookup.go
package lookup

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"go.uber.org/zap"

	"github.com/moment-ml/preprocess/pkg/config"
	"github.com/moment-ml/preprocess/pkg/model"
)

// BookResolver resolves book titles to Gutenberg metadata. Results are
// cached for the life of the resolver, and a configured fallback table
// keeps the pipeline running when the API is unreachable.
type BookResolver struct {
	cfg    config.LookupConfig
	client *http.Client
	logger *zap.Logger

	cache map[string]model.BookMetadata
}

// NewBookResolver creates a new BookResolver instance
func NewBookResolver(cfg config.LookupConfig, logger *zap.Logger) (*BookResolver, error) {
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}
	if cfg.BaseURL == "" {
		return nil, errors.New("lookup base URL cannot be empty")
	}

	return &BookResolver{
		cfg:    cfg,
		client: &http.Client{Timeout: cfg.Timeout.Std()},
		logger: logger,
	}, nil
}

// gutendexResponse mirrors the fields we read from the Gutendex books
// endpoint.
type gutendexResponse struct {
	Results []struct {
		ID      int    `json:"id"`
		Title   string `json:"title"`
		Authors []struct {
			Name string `json:"name"`
		} `json:"authors"`
	} `json:"results"`
}

// Resolve returns metadata for title. Resolution order is cache, then
// API, then configured fallback. A miss everywhere returns metadata
// with Found set to false rather than an error, so one unknown title
// never stops a batch.
func (r *BookResolver) Resolve(ctx context.Context, title string) model.BookMetadata {
	if r.cache == nil {
		r.cache = make(map[string]model.BookMetadata)
	}
	if meta, ok := r.cache[title]; ok {
		return meta
	}

	meta, err := r.queryAPI(ctx, title)
	if err != nil {
		r.logger.Warn("book lookup failed, trying fallback",
			zap.String("title", title),
			zap.Error(err))
		meta = r.fallbackFor(title)
	}

	r.cache[title] = meta
	return meta
}

func (r *BookResolver) queryAPI(ctx context.Context, title string) (model.BookMetadata, error) {
	endpoint := fmt.Sprintf("%s?search=%s", r.cfg.BaseURL, url.QueryEscape(title))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return model.BookMetadata{}, fmt.Errorf("failed to build request: %w", err)
	}

	resp, err := r.client.Do(req)
	if err != nil {
		return model.BookMetadata{}, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return model.BookMetadata{}, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	var payload gutendexResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return model.BookMetadata{}, fmt.Errorf("failed to decode response: %w", err)
	}

	if len(payload.Results) == 0 {
		return model.BookMetadata{}, fmt.Errorf("no results for title %q", title)
	}

	first := payload.Results[0]
	author := ""
	if len(first.Authors) > 0 {
		author = first.Authors[0].Name
	}

	r.logger.Debug("resolved book via API",
		zap.String("title", title),
		zap.Int("gutenberg_id", first.ID))

	return model.BookMetadata{
		BookTitle:   title,
		GutenbergID: first.ID,
		Author:      author,
		Found:       true,
	}, nil
}

func (r *BookResolver) fallbackFor(title string) model.BookMetadata {
	if fb, ok := r.cfg.Fallback[title]; ok {
		return model.BookMetadata{
			BookTitle:   title,
			GutenbergID: fb.GutenbergID,
			Author:      fb.Author,
			Chapter:     fb.Chapter,
			Found:       true,
		}
	}

	return model.BookMetadata{BookTitle: title}
}
