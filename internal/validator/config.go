package validator

import (
	"fmt"
	"os"

	"github.com/goccy/go-yaml"
)

// RuleOverride adjusts a single rule's behavior: Enabled silences it
// entirely when false, and Level ("Warning" or "Error", checked when the
// config is loaded) promotes or demotes its severity. Both fields are optional: a zero-value override
// leaves the rule's default behavior untouched.
type RuleOverride struct {
	Enabled *bool   `yaml:"enabled"`
	Level   *string `yaml:"level"`
}

// Config is a rule-configuration document, keyed by the rule codes from
// spec.md §4.3 (e.g. "nameIsPascalCase"). This is not part of the core
// validator contract — spec.md §6 excludes on-disk formats from the
// core — it is an ambient convenience the CLI (cmd/wollok-lint) loads
// on top of it, the way a linter typically lets a project silence or
// re-grade individual checks.
type Config struct {
	Rules map[string]RuleOverride `yaml:"rules"`
}

// LoadConfig reads and parses a rule-configuration file. It rejects
// unknown rule codes eagerly, the way the teacher's symbol table rejects
// an inconsistent overload directive at definition time rather than
// silently ignoring it (internal/semantic/symbol_table.go, DefineOverload).
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("validator: reading config %s: %w", path, err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("validator: parsing config %s: %w", path, err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	known := knownRuleCodes()
	for code, override := range c.Rules {
		if !known[code] {
			return fmt.Errorf("validator: unknown rule code %q in config", code)
		}
		if override.Level != nil {
			switch *override.Level {
			case "Warning", "Error":
			default:
				return fmt.Errorf("validator: rule %q has invalid level %q (want Warning or Error)", code, *override.Level)
			}
		}
	}
	return nil
}

func knownRuleCodes() map[string]bool {
	codes := make(map[string]bool)
	for _, rules := range BuildDispatchTable() {
		for _, r := range rules {
			codes[r.Code] = true
		}
	}
	return codes
}

// Apply filters and re-levels a raw diagnostic list according to the
// config: a rule whose Enabled is explicitly false has its Problems
// dropped, and a rule with a Level override has its Problems re-graded.
// This is applied as a post-processing step over Validate's output
// rather than folded into the rule predicates themselves, so the
// predicates stay config-independent and spec.md §8's idempotence
// property ("validate ∘ validate equals validate" for a fixed config)
// holds trivially: Apply is a pure function of (config, problems).
func (c *Config) Apply(problems []Problem) []Problem {
	if c == nil {
		return problems
	}
	out := make([]Problem, 0, len(problems))
	for _, p := range problems {
		override, ok := c.Rules[p.Code]
		if !ok {
			out = append(out, p)
			continue
		}
		if override.Enabled != nil && !*override.Enabled {
			continue
		}
		if override.Level != nil {
			if *override.Level == "Error" {
				p.Level = Error
			} else {
				p.Level = Warning
			}
		}
		out = append(out, p)
	}
	return out
}
