// pkg/config/config.go
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents the application configuration
type Config struct {
	// Stage settings
	Cleaning   CleaningConfig   `yaml:"cleaning"`
	Validation ValidationConfig `yaml:"validation"`
	Issues     IssueConfig      `yaml:"issues"`
	Anomaly    AnomalyConfig    `yaml:"anomaly"`
	Identity   IdentityConfig   `yaml:"identity"`

	// Book metadata lookup
	Lookup LookupConfig `yaml:"lookup"`

	// Input/output paths
	Paths PathConfig `yaml:"paths"`

	// Logging
	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"`
}

// Duration wraps time.Duration so YAML values like "10s" parse.
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	parsed, err := time.ParseDuration(value.Value)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", value.Value, err)
	}
	*d = Duration(parsed)
	return nil
}

// Std returns the wrapped time.Duration.
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

// CleaningConfig controls which text cleaning operations run. With
// every flag off, cleaning is the identity function.
type CleaningConfig struct {
	FixEncoding         bool `yaml:"fix_encoding"`
	RemoveURLs          bool `yaml:"remove_urls"`
	RemoveEmails        bool `yaml:"remove_emails"`
	NormalizeWhitespace bool `yaml:"normalize_whitespace"`
}

// TextThresholds holds validation limits for one record kind.
type TextThresholds struct {
	MinWords         int     `yaml:"min_words"`
	MaxWords         int     `yaml:"max_words"`
	MinChars         int     `yaml:"min_chars"`
	MaxChars         int     `yaml:"max_chars"`
	QualityThreshold float64 `yaml:"quality_threshold"`
}

// ValidationConfig holds per-kind thresholds and the expected language.
type ValidationConfig struct {
	Interpretation TextThresholds `yaml:"interpretation"`
	Passage        TextThresholds `yaml:"passage"`
	Language       string         `yaml:"language"`
}

// IssueConfig holds thresholds for the content issue detector.
type IssueConfig struct {
	ProfanityRatio float64 `yaml:"profanity_ratio"`
	CapsRatio      float64 `yaml:"caps_ratio"`
	PunctRatio     float64 `yaml:"punct_ratio"`
	WordRepeatFrac float64 `yaml:"word_repeat_frac"`
}

// AnomalyConfig holds thresholds for the batch anomaly detector.
type AnomalyConfig struct {
	IQRMultiplier       float64 `yaml:"iqr_multiplier"`
	ZScoreThreshold     float64 `yaml:"zscore_threshold"`
	SimilarityThreshold float64 `yaml:"similarity_threshold"`
	MinGroupSize        int     `yaml:"min_group_size"`
}

// IdentityConfig controls generated identifier shapes.
type IdentityConfig struct {
	HashLength int `yaml:"hash_length"`
}

// LookupConfig controls the Gutendex metadata client.
type LookupConfig struct {
	BaseURL string   `yaml:"base_url"`
	Timeout Duration `yaml:"timeout"`

	// Fallback metadata keyed by book title, used when the API is
	// unreachable or the title is not found.
	Fallback map[string]BookFallback `yaml:"fallback"`
}

// BookFallback is static book metadata for offline runs.
type BookFallback struct {
	GutenbergID int    `yaml:"gutenberg_id"`
	Author      string `yaml:"author"`
	Chapter     string `yaml:"chapter"`
}

// PathConfig holds input and output file locations.
type PathConfig struct {
	MomentsFile  string `yaml:"moments_file"`
	PassagesFile string `yaml:"passages_file"`
	UsersFile    string `yaml:"users_file"`
	OutputDir    string `yaml:"output_dir"`
}

// LoadConfig loads configuration with defaults, an optional YAML file,
// and environment variable overrides, in that order of precedence.
func LoadConfig(path string) (*Config, error) {
	cfg := defaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	applyEnvOverrides(cfg)

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func defaultConfig() *Config {
	return &Config{
		Cleaning: CleaningConfig{
			FixEncoding:         true,
			RemoveURLs:          true,
			RemoveEmails:        true,
			NormalizeWhitespace: true,
		},
		Validation: ValidationConfig{
			Interpretation: TextThresholds{
				MinWords:         10,
				MaxWords:         600,
				MinChars:         50,
				MaxChars:         4000,
				QualityThreshold: 0.5,
			},
			Passage: TextThresholds{
				MinWords:         20,
				MaxWords:         1000,
				MinChars:         100,
				MaxChars:         6000,
				QualityThreshold: 0.6,
			},
			Language: "eng",
		},
		Issues: IssueConfig{
			ProfanityRatio: 0.30,
			CapsRatio:      0.50,
			PunctRatio:     0.10,
			WordRepeatFrac: 0.30,
		},
		Anomaly: AnomalyConfig{
			IQRMultiplier:       1.5,
			ZScoreThreshold:     2.5,
			SimilarityThreshold: 0.85,
			MinGroupSize:        4,
		},
		Identity: IdentityConfig{
			HashLength: 8,
		},
		Lookup: LookupConfig{
			BaseURL: "https://gutendex.com/books",
			Timeout: Duration(10 * time.Second),
		},
		Paths: PathConfig{
			MomentsFile:  "data/raw/moments.json",
			PassagesFile: "data/raw/passages.json",
			UsersFile:    "data/raw/users.json",
			OutputDir:    "data/processed",
		},
		LogLevel:  "info",
		LogFormat: "json",
	}
}

func applyEnvOverrides(cfg *Config) {
	cfg.LogLevel = getEnv("LOG_LEVEL", cfg.LogLevel)
	cfg.LogFormat = getEnv("LOG_FORMAT", cfg.LogFormat)
	cfg.Lookup.BaseURL = getEnv("GUTENDEX_URL", cfg.Lookup.BaseURL)
	cfg.Lookup.Timeout = Duration(time.Duration(getEnvAsInt("GUTENDEX_TIMEOUT_MS", int(cfg.Lookup.Timeout.Std()/time.Millisecond))) * time.Millisecond)
	cfg.Paths.MomentsFile = getEnv("MOMENTS_FILE", cfg.Paths.MomentsFile)
	cfg.Paths.PassagesFile = getEnv("PASSAGES_FILE", cfg.Paths.PassagesFile)
	cfg.Paths.UsersFile = getEnv("USERS_FILE", cfg.Paths.UsersFile)
	cfg.Paths.OutputDir = getEnv("OUTPUT_DIR", cfg.Paths.OutputDir)
	cfg.Identity.HashLength = getEnvAsInt("ID_HASH_LENGTH", cfg.Identity.HashLength)
}

// Validate ensures all required configuration is present and valid
func (c *Config) Validate() error {
	if err := c.Validation.Interpretation.validate("interpretation"); err != nil {
		return err
	}
	if err := c.Validation.Passage.validate("passage"); err != nil {
		return err
	}

	if c.Validation.Language == "" {
		return errors.New("expected language is required")
	}

	if c.Anomaly.IQRMultiplier <= 0 {
		return errors.New("IQR multiplier must be positive")
	}

	if c.Anomaly.ZScoreThreshold <= 0 {
		return errors.New("z-score threshold must be positive")
	}

	if c.Anomaly.SimilarityThreshold <= 0 || c.Anomaly.SimilarityThreshold > 1 {
		return errors.New("similarity threshold must be in (0, 1]")
	}

	if c.Identity.HashLength <= 0 || c.Identity.HashLength > 64 {
		return errors.New("hash length must be between 1 and 64")
	}

	if c.Paths.OutputDir == "" {
		return errors.New("output directory is required")
	}

	return nil
}

func (t TextThresholds) validate(kind string) error {
	if t.MinWords <= 0 || t.MaxWords <= t.MinWords {
		return fmt.Errorf("%s word limits are invalid", kind)
	}
	if t.MinChars <= 0 || t.MaxChars <= t.MinChars {
		return fmt.Errorf("%s character limits are invalid", kind)
	}
	if t.QualityThreshold < 0 || t.QualityThreshold > 1 {
		return fmt.Errorf("%s quality threshold must be in [0, 1]", kind)
	}
	return nil
}

// Helper functions for environment variables
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}
