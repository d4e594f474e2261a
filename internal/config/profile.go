// Package config loads lint profile configurations. A profile is a YAML
// file declaring extra rules to run alongside the built-in style sets.
package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"

	"github.com/Masterminds/semver/v3"
	"github.com/goccy/go-yaml"

	"github.com/codeadmin-peritiae/docs/internal/lint"
)

// Profile is a parsed lint profile.
type Profile struct {
	Metadata ProfileMetadata `yaml:"profile"`
	Rules    []RuleSpec      `yaml:"rules"`
}

// ProfileMetadata describes the profile and its tool requirements.
type ProfileMetadata struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description,omitempty"`
	// MinVersion is the lowest tool version this profile supports.
	MinVersion string `yaml:"min_version,omitempty"`
}

// RuleSpec declares one custom rule. Exactly one of Pattern and Expr must
// be set: Pattern passes a unit whose source matches the regexp, Expr
// evaluates an expression over source, path, and cell_type.
type RuleSpec struct {
	Name      string `yaml:"name"`
	Message   string `yaml:"message,omitempty"`
	Scope     string `yaml:"scope"`
	Condition string `yaml:"condition,omitempty"`
	Pattern   string `yaml:"pattern,omitempty"`
	Expr      string `yaml:"expr,omitempty"`
}

// Validate checks profile structure before any rule is built.
func (p *Profile) Validate() error {
	if p.Metadata.Name == "" {
		return fmt.Errorf("profile name is required")
	}
	if len(p.Rules) == 0 {
		return fmt.Errorf("profile %s declares no rules", p.Metadata.Name)
	}
	for i, spec := range p.Rules {
		if spec.Name == "" {
			return fmt.Errorf("profile %s: rule %d has no name", p.Metadata.Name, i)
		}
		if (spec.Pattern == "") == (spec.Expr == "") {
			return fmt.Errorf("profile %s: rule %s must set exactly one of pattern and expr",
				p.Metadata.Name, spec.Name)
		}
	}
	return nil
}

// CheckVersion verifies the running tool satisfies the profile's
// min_version requirement.
func (p *Profile) CheckVersion(toolVersion string) error {
	if p.Metadata.MinVersion == "" {
		return nil
	}
	minimum, err := semver.NewVersion(p.Metadata.MinVersion)
	if err != nil {
		return fmt.Errorf("profile %s: invalid min_version %q: %w",
			p.Metadata.Name, p.Metadata.MinVersion, err)
	}
	current, err := semver.NewVersion(toolVersion)
	if err != nil {
		return fmt.Errorf("invalid tool version %q: %w", toolVersion, err)
	}
	if current.LessThan(minimum) {
		return fmt.Errorf("profile %s requires nbcheck >= %s, running %s",
			p.Metadata.Name, minimum, current)
	}
	return nil
}

// BuildRules converts the profile's rule specs into lint rules, owned by a
// style set named after the profile.
func (p *Profile) BuildRules() ([]lint.Rule, error) {
	rules := make([]lint.Rule, 0, len(p.Rules))

	for _, spec := range p.Rules {
		opts := []lint.Option{
			lint.WithStyle(p.Metadata.Name),
			lint.WithMessage(spec.Message),
			lint.WithScope(lint.Scope(spec.Scope)),
		}
		if spec.Condition != "" {
			opts = append(opts, lint.WithCondition(lint.Condition(spec.Condition)))
		}

		var (
			rule lint.Rule
			err  error
		)
		if spec.Pattern != "" {
			rule, err = patternRule(spec, opts)
		} else {
			rule, err = lint.NewExprRule(spec.Name, spec.Expr, opts...)
		}
		if err != nil {
			return nil, fmt.Errorf("profile %s: %w", p.Metadata.Name, err)
		}
		rules = append(rules, rule)
	}

	return rules, nil
}

func patternRule(spec RuleSpec, opts []lint.Option) (lint.Rule, error) {
	re, err := regexp.Compile(spec.Pattern)
	if err != nil {
		return lint.Rule{}, fmt.Errorf("rule %s: invalid pattern: %w", spec.Name, err)
	}
	return lint.New(spec.Name,
		func(source string, _ lint.Unit, _ string) (bool, error) {
			return re.MatchString(source), nil
		},
		opts...)
}

// LoadProfile loads and validates a profile from a YAML file.
func LoadProfile(path string) (*Profile, error) {
	dir := filepath.Dir(path)
	base := filepath.Base(path)

	root, err := os.OpenRoot(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to open profile directory: %w", err)
	}
	defer func() {
		_ = root.Close() // Best-effort cleanup
	}()

	file, err := root.Open(base)
	if err != nil {
		return nil, fmt.Errorf("failed to open profile: %w", err)
	}
	defer func() {
		_ = file.Close() // Best-effort cleanup
	}()

	return LoadProfileFromReader(file)
}

// LoadProfileFromReader loads a profile from an io.Reader.
func LoadProfileFromReader(r io.Reader) (*Profile, error) {
	var profile Profile

	decoder := yaml.NewDecoder(r)
	if err := decoder.Decode(&profile); err != nil {
		return nil, fmt.Errorf("failed to decode profile YAML: %w", err)
	}

	if err := profile.Validate(); err != nil {
		return nil, fmt.Errorf("profile validation failed: %w", err)
	}

	return &profile, nil
}
