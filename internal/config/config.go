// Package config provides configuration loading and validation for the ranking pipeline.
package config

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"

	"github.com/jonathan/cv-ranker/internal/types"
)

// Config is the process-wide configuration: keyword sets, weights and runtime knobs.
// It is read once at startup and treated as immutable afterwards.
type Config struct {
	// Keyword sets
	Skills             []string `json:"skills,omitempty" validate:"required,min=1,dive,required"`
	ExperienceKeywords []string `json:"experience_keywords,omitempty" validate:"required,min=1,dive,required"`
	EducationKeywords  []string `json:"education_keywords,omitempty" validate:"required,min=1,dive,required"`

	// Weights applied to the per-category counts
	Weights *Weights `json:"weights,omitempty" validate:"required"`

	// Runtime
	Workers          int    `json:"workers,omitempty" validate:"gte=0"`           // 0 means one worker per CPU
	HistogramBuckets int    `json:"histogram_buckets,omitempty" validate:"gte=0"` // Buckets for score histograms
	DatabaseURL      string `json:"database_url,omitempty"`                       // PostgreSQL connection URL (optional)
	LogLevel         string `json:"log_level,omitempty" validate:"omitempty,oneof=trace debug info warn warning error"`
	Port             int    `json:"port,omitempty" validate:"gte=0,lte=65535"`
}

// Weights are the per-category multipliers of the score.
type Weights struct {
	Skill      float64 `json:"skill" validate:"gte=0"`
	Experience float64 `json:"experience" validate:"gte=0"`
	Education  float64 `json:"education" validate:"gte=0"`
}

// KeywordSets groups the three validated keyword sets.
type KeywordSets struct {
	Skills     types.KeywordSet
	Experience types.KeywordSet
	Education  types.KeywordSet
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Skills:             []string{"Python", "Machine Learning", "Data Analysis", "SQL", "Java", "Project Management"},
		ExperienceKeywords: []string{"years of experience", "experience", "worked at", "positions", "role"},
		EducationKeywords:  []string{"degree", "bachelor", "master", "PhD", "graduated", "BSc", "MSc", "doctoral"},
		Weights: &Weights{
			Skill:      0.5,
			Experience: 0.3,
			Education:  0.2,
		},
		HistogramBuckets: 10,
		LogLevel:         "info",
		Port:             8080,
	}
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// Resolve builds the effective configuration: the file at path (if any),
// environment overrides, then defaults for anything still unset.
// The result is validated; any problem is a *ConfigurationError.
func Resolve(path string) (*Config, error) {
	cfg := &Config{}
	if path != "" {
		loaded, err := LoadConfig(path)
		if err != nil {
			return nil, &ConfigurationError{Message: "cannot load config file", Cause: err}
		}
		cfg = loaded
	}

	ApplyEnv(cfg)
	merged := cfg.MergeWithDefaults(Default())

	if err := merged.Validate(); err != nil {
		return nil, err
	}
	return &merged, nil
}

// Validate checks that the configuration has valid values and that every
// keyword list forms a valid KeywordSet.
func (c *Config) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		return &ConfigurationError{Message: "invalid configuration", Cause: err}
	}

	w := c.Weights
	if w == nil {
		return &ConfigurationError{Field: "weights", Message: "missing"}
	}
	for name, value := range map[string]float64{"skill": w.Skill, "experience": w.Experience, "education": w.Education} {
		if math.IsNaN(value) || math.IsInf(value, 0) {
			return &ConfigurationError{Field: "weights." + name, Message: "must be a finite number"}
		}
	}
	if w.Skill+w.Experience+w.Education <= 0 {
		return &ConfigurationError{Field: "weights", Message: "at least one weight must be positive"}
	}

	if _, err := c.KeywordSets(); err != nil {
		return err
	}

	return nil
}

// KeywordSets builds the three keyword sets from the configured lists.
func (c *Config) KeywordSets() (KeywordSets, error) {
	skills, err := types.NewKeywordSet("skills", c.Skills)
	if err != nil {
		return KeywordSets{}, &ConfigurationError{Field: "skills", Message: "invalid keyword set", Cause: err}
	}
	experience, err := types.NewKeywordSet("experience", c.ExperienceKeywords)
	if err != nil {
		return KeywordSets{}, &ConfigurationError{Field: "experience_keywords", Message: "invalid keyword set", Cause: err}
	}
	education, err := types.NewKeywordSet("education", c.EducationKeywords)
	if err != nil {
		return KeywordSets{}, &ConfigurationError{Field: "education_keywords", Message: "invalid keyword set", Cause: err}
	}

	return KeywordSets{Skills: skills, Experience: experience, Education: education}, nil
}

// MergeWithDefaults returns a new Config with unset fields filled from defaults.
// Keyword lists are replaced as a whole, never merged term by term.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if len(result.Skills) == 0 {
		result.Skills = defaults.Skills
	}
	if len(result.ExperienceKeywords) == 0 {
		result.ExperienceKeywords = defaults.ExperienceKeywords
	}
	if len(result.EducationKeywords) == 0 {
		result.EducationKeywords = defaults.EducationKeywords
	}

	// A weights block is taken as given, so zero can switch a category off
	if result.Weights == nil && defaults.Weights != nil {
		w := *defaults.Weights
		result.Weights = &w
	}

	if result.Workers == 0 {
		result.Workers = defaults.Workers
	}
	if result.HistogramBuckets == 0 {
		result.HistogramBuckets = defaults.HistogramBuckets
	}
	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}
	if result.LogLevel == "" {
		result.LogLevel = defaults.LogLevel
	}
	if result.Port == 0 {
		result.Port = defaults.Port
	}

	return result
}
