package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/debitsync/debitsync/internal/amount"
	"github.com/debitsync/debitsync/internal/risk"
	"github.com/debitsync/debitsync/internal/schema"
)

// Config is the top-level debitsync.yaml configuration. Every list is
// optional; an empty list keeps the built-in default.
type Config struct {
	Parser ParserConfig `yaml:"parser"`
	Risk   RiskConfig   `yaml:"risk"`
}

// ParserConfig tunes header detection and column binding.
type ParserConfig struct {
	TimeTokens     []string      `yaml:"time_tokens,omitempty"`
	AmountTokens   []string      `yaml:"amount_tokens,omitempty"`
	OutflowMarkers []string      `yaml:"outflow_markers,omitempty"`
	Synonyms       []SynonymRule `yaml:"synonyms,omitempty"`
}

// SynonymRule replaces the synonym list for one canonical field.
// Omitted fields keep their defaults; rule priority order is fixed.
type SynonymRule struct {
	Field    string   `yaml:"field"`
	Synonyms []string `yaml:"synonyms"`
}

// RiskConfig tunes the risk scanner.
type RiskConfig struct {
	Keywords []string `yaml:"keywords,omitempty"`
}

// Load reads a debitsync.yaml file from disk.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return &cfg, nil
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Default returns a Config with the built-in tables spelled out, for
// writing a starter file a user can prune.
func Default() *Config {
	rules := schema.DefaultRules()
	synonyms := make([]SynonymRule, len(rules))
	for i, r := range rules {
		synonyms[i] = SynonymRule{Field: string(r.Field), Synonyms: r.Synonyms}
	}
	return &Config{
		Parser: ParserConfig{
			TimeTokens:     schema.DefaultTimeTokens(),
			AmountTokens:   schema.DefaultAmountTokens(),
			OutflowMarkers: amount.DefaultOutflowMarkers(),
			Synonyms:       synonyms,
		},
		Risk: RiskConfig{Keywords: risk.DefaultKeywords()},
	}
}

// NewParser builds a schema parser from the config, overlaying any
// synonym overrides on the default rule table. Rule priority order
// never changes; only the substring lists do.
func (c *Config) NewParser() (*schema.Parser, error) {
	overrides := make(map[string][]string, len(c.Parser.Synonyms))
	for _, s := range c.Parser.Synonyms {
		if !schema.KnownField(s.Field) {
			return nil, fmt.Errorf("config: unknown canonical field %q", s.Field)
		}
		overrides[s.Field] = s.Synonyms
	}

	rules := schema.DefaultRules()
	for i, r := range rules {
		if syn, ok := overrides[string(r.Field)]; ok && len(syn) > 0 {
			rules[i].Synonyms = syn
		}
	}

	norm := amount.New(c.Parser.OutflowMarkers)
	return schema.NewParserWith(rules, c.Parser.TimeTokens, c.Parser.AmountTokens, norm), nil
}

// NewScanner builds a risk scanner from the config.
func (c *Config) NewScanner() risk.Scanner {
	return risk.NewScanner(c.Risk.Keywords)
}
