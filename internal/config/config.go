// Package config loads pipeline settings from a YAML file plus
// environment overrides. A missing file yields the defaults; a malformed
// file is an error.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/dossou/afriwiki/internal/pivot"
	"github.com/dossou/afriwiki/internal/translator"
)

// EnvPrefix is the prefix for environment overrides, e.g.
// AFRIWIKI_ENGINES_OLLAMA_BASE_URL.
const EnvPrefix = "AFRIWIKI"

// Config is the full file shape.
type Config struct {
	// QualityMatrix overrides pair quality scores, keyed "src>tgt".
	QualityMatrix map[string]float64 `mapstructure:"quality_matrix"`
	// Affinity overrides linguistic affinity scores, keyed "l1>l2".
	Affinity map[string]float64 `mapstructure:"affinity"`
	// PreferredPivots maps a target language to its pivot preference order.
	PreferredPivots map[string][]string `mapstructure:"preferred_pivots"`
	// PivotCandidates is the global list of languages considered as pivots.
	PivotCandidates []string `mapstructure:"pivot_candidates"`
	// CulturalTerms extends the per-language protected vocabulary.
	CulturalTerms map[string][]string `mapstructure:"cultural_terms"`

	// TonalDataDir holds lexicon and sandhi rule files; empty uses the
	// built-in data.
	TonalDataDir string `mapstructure:"tonal_data_dir"`

	// DBPath is the SQLite database location.
	DBPath string `mapstructure:"db_path"`

	// Services is the engine priority order.
	Services []string `mapstructure:"services"`
	// Engines holds per-engine settings keyed by service name.
	Engines map[string]translator.ServiceConfig `mapstructure:"engines"`

	// Workers bounds pipeline concurrency over segments.
	Workers int `mapstructure:"workers"`
	// SegmentMaxLen caps translation unit length in runes.
	SegmentMaxLen int `mapstructure:"segment_max_len"`
	// FuzzyThreshold enables fuzzy memory lookups when > 0.
	FuzzyThreshold float64 `mapstructure:"fuzzy_threshold"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		DBPath:   "afriwiki.db",
		Services: []string{"mymemory", "ollama"},
		Engines: map[string]translator.ServiceConfig{
			"ollama": {BaseURL: "http://localhost:11434", Timeout: 120 * time.Second},
		},
		Workers:        4,
		SegmentMaxLen:  500,
		FuzzyThreshold: 0,
	}
}

// Load reads the config file at path, or searches the working directory
// and home for .afriwiki.yaml when path is empty. Environment variables
// prefixed AFRIWIKI_ override file values.
func Load(path string) (*Config, error) {
	v := viper.New()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME")
		v.SetConfigType("yaml")
		v.SetConfigName(".afriwiki")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	cfg := Default()

	if err := v.ReadInConfig(); err != nil {
		// Only an absent file is tolerated, and only when the caller did
		// not name one explicitly.
		if _, ok := err.(viper.ConfigFileNotFoundError); ok && path == "" {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	for key, score := range c.QualityMatrix {
		if !strings.Contains(key, ">") {
			return fmt.Errorf("quality_matrix key %q: want \"src>tgt\"", key)
		}
		if score < 0 || score > 1 {
			return fmt.Errorf("quality_matrix[%q] = %v: out of [0,1]", key, score)
		}
	}
	for key, score := range c.Affinity {
		if !strings.Contains(key, ">") {
			return fmt.Errorf("affinity key %q: want \"l1>l2\"", key)
		}
		if score < 0 || score > 1 {
			return fmt.Errorf("affinity[%q] = %v: out of [0,1]", key, score)
		}
	}
	if c.Workers < 0 {
		return fmt.Errorf("workers must be >= 0, got %d", c.Workers)
	}
	return nil
}

// Matrix builds the pair quality matrix: defaults overlaid with the
// file's overrides.
func (c *Config) Matrix() (*pivot.Matrix, error) {
	m := pivot.DefaultMatrix()
	if len(c.QualityMatrix) == 0 {
		return m, nil
	}
	overrides, err := pivot.NewMatrix(c.QualityMatrix)
	if err != nil {
		return nil, err
	}
	m.Merge(overrides)
	return m, nil
}

// AffinityTable builds the affinity scores, defaults overlaid with the
// file's overrides.
func (c *Config) AffinityTable() (*pivot.Affinity, error) {
	a := pivot.DefaultAffinity()
	if len(c.Affinity) == 0 {
		return a, nil
	}
	overrides, err := pivot.NewAffinity(c.Affinity)
	if err != nil {
		return nil, err
	}
	a.Merge(overrides)
	return a, nil
}
