// Package config provides configuration loading and validation for the CLI.
package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"

	"github.com/jonathan/resume-ranker/internal/ner"
	"github.com/jonathan/resume-ranker/internal/scoring"
)

// EnvPrefix is prepended to every environment override, e.g. RESUME_RANKER_WORKERS.
const EnvPrefix = "RESUME_RANKER"

// Config is the ranker configuration. Values come from defaults, then an
// optional YAML or JSON file, then RESUME_RANKER_* environment variables.
// CLI flags are applied on top by the caller.
type Config struct {
	// Job input: a text file path or a posting URL, never both
	Job    string `mapstructure:"job" json:"job,omitempty"`
	JobURL string `mapstructure:"job_url" json:"job_url,omitempty" validate:"omitempty,url"`

	// Scoring
	SkillWeight      float64 `mapstructure:"skill_weight" json:"skill_weight" validate:"gte=0,lte=1"`
	ExperienceWeight float64 `mapstructure:"experience_weight" json:"experience_weight" validate:"gte=0,lte=1"`
	PartialCredit    float64 `mapstructure:"partial_credit" json:"partial_credit" validate:"gt=0,lte=1"`
	PartialMinLength int     `mapstructure:"partial_min_length" json:"partial_min_length" validate:"gte=1"`

	// Processing
	Workers      int    `mapstructure:"workers" json:"workers" validate:"gte=1,lte=64"`
	NERProvider  string `mapstructure:"ner_provider" json:"ner_provider" validate:"oneof=prose heuristic none"`
	NERModelPath string `mapstructure:"ner_model_path" json:"ner_model_path,omitempty"`

	// Output
	TopN        int    `mapstructure:"top_n" json:"top_n" validate:"gte=0"`
	OutputDir   string `mapstructure:"output_dir" json:"output_dir,omitempty"`
	MetricsFile string `mapstructure:"metrics_file" json:"metrics_file,omitempty"`
	LogLevel    string `mapstructure:"log_level" json:"log_level" validate:"oneof=debug info warn error"`
	Verbose     bool   `mapstructure:"verbose" json:"verbose,omitempty"`
}

// Defaults returns the built-in configuration.
func Defaults() Config {
	p := scoring.DefaultPolicy()
	return Config{
		SkillWeight:      p.SkillWeight,
		ExperienceWeight: p.ExperienceWeight,
		PartialCredit:    p.PartialCredit,
		PartialMinLength: p.PartialMinLength,
		Workers:          4,
		NERProvider:      ner.KindProse,
		TopN:             5,
		LogLevel:         "info",
	}
}

func setDefaults(v *viper.Viper) {
	d := Defaults()
	v.SetDefault("job", d.Job)
	v.SetDefault("job_url", d.JobURL)
	v.SetDefault("skill_weight", d.SkillWeight)
	v.SetDefault("experience_weight", d.ExperienceWeight)
	v.SetDefault("partial_credit", d.PartialCredit)
	v.SetDefault("partial_min_length", d.PartialMinLength)
	v.SetDefault("workers", d.Workers)
	v.SetDefault("ner_provider", d.NERProvider)
	v.SetDefault("ner_model_path", d.NERModelPath)
	v.SetDefault("top_n", d.TopN)
	v.SetDefault("output_dir", d.OutputDir)
	v.SetDefault("metrics_file", d.MetricsFile)
	v.SetDefault("log_level", d.LogLevel)
	v.SetDefault("verbose", d.Verbose)
}

// LoadConfig builds a Config from defaults, the file at path and the
// environment. With an empty path, resume-ranker.{yaml,json} is looked up in
// the working directory and $HOME/.resume-ranker; a missing file is not an
// error in that case. An explicit path must exist.
func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		// Resolve path relative to current directory if not absolute
		if !filepath.IsAbs(path) {
			cwd, err := os.Getwd()
			if err != nil {
				return nil, fmt.Errorf("failed to get current directory: %w", err)
			}
			path = filepath.Join(cwd, path)
		}
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("resume-ranker")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.resume-ranker")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return &cfg, nil
}

// Validate checks that the configuration has valid values.
// Note: This doesn't check for required fields since those are handled
// by CLI flag validation after merging.
func (c *Config) Validate() error {
	if c.Job != "" && c.JobURL != "" {
		return fmt.Errorf("config error: 'job' and 'job_url' are mutually exclusive")
	}

	if err := validator.New().Struct(c); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
			fe := fieldErrs[0]
			return fmt.Errorf("config error: '%s' failed '%s' validation (got %v)", fe.Field(), fe.Tag(), fe.Value())
		}
		return fmt.Errorf("config error: %w", err)
	}

	if sum := c.SkillWeight + c.ExperienceWeight; math.Abs(sum-1) > 1e-9 {
		return fmt.Errorf("config error: 'skill_weight' and 'experience_weight' must sum to 1, got %.2f", sum)
	}

	if c.Job != "" {
		if _, err := os.Stat(c.Job); os.IsNotExist(err) {
			return fmt.Errorf("config error: job file not found: %s", c.Job)
		}
	}

	return nil
}

// MergeWithDefaults returns a new Config with zero-valued fields filled from
// defaults. TopN and Verbose are kept as given: a TopN of 0 hides the top
// candidates list.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.Job == "" {
		result.Job = defaults.Job
	}
	if result.JobURL == "" {
		result.JobURL = defaults.JobURL
	}
	if result.SkillWeight == 0 && result.ExperienceWeight == 0 {
		result.SkillWeight = defaults.SkillWeight
		result.ExperienceWeight = defaults.ExperienceWeight
	}
	if result.PartialCredit == 0 {
		result.PartialCredit = defaults.PartialCredit
	}
	if result.PartialMinLength == 0 {
		result.PartialMinLength = defaults.PartialMinLength
	}
	if result.Workers == 0 {
		result.Workers = defaults.Workers
	}
	if result.NERProvider == "" {
		result.NERProvider = defaults.NERProvider
	}
	if result.NERModelPath == "" {
		result.NERModelPath = defaults.NERModelPath
	}
	if result.OutputDir == "" {
		result.OutputDir = defaults.OutputDir
	}
	if result.MetricsFile == "" {
		result.MetricsFile = defaults.MetricsFile
	}
	if result.LogLevel == "" {
		result.LogLevel = defaults.LogLevel
	}

	return result
}

// ToPolicy returns the scoring policy described by the configuration.
func (c *Config) ToPolicy() scoring.Policy {
	return scoring.Policy{
		SkillWeight:      c.SkillWeight,
		ExperienceWeight: c.ExperienceWeight,
		PartialCredit:    c.PartialCredit,
		PartialMinLength: c.PartialMinLength,
	}
}
