package styles

import (
	"fmt"
	"strings"

	"github.com/codeadmin-peritiae/docs/internal/lint"
	"github.com/spf13/viper"
	"github.com/zricethezav/gitleaks/v8/config"
	"github.com/zricethezav/gitleaks/v8/detect"
)

// Security returns rules that keep published notebooks free of leaked
// credentials. Detection is backed by the gitleaks default ruleset.
func Security() ([]lint.Rule, error) {
	detector, err := newSecretDetector()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize secret detector: %w", err)
	}

	style := lint.WithStyle("security")

	noSecrets := lint.MustNew("no_secrets",
		func(source string, _ lint.Unit, _ string) (bool, error) {
			if source == "" {
				return true, nil
			}
			findings := detector.Detect(detect.Fragment{Raw: source})
			return len(findings) == 0, nil
		},
		style,
		lint.WithMessage("Code cells must not contain credentials or API keys"),
		lint.WithScope(lint.ScopeCode),
		lint.WithCondition(lint.CondAll),
	)

	return []lint.Rule{noSecrets}, nil
}

// newSecretDetector builds a gitleaks detector from its bundled default
// configuration.
func newSecretDetector() (*detect.Detector, error) {
	v := viper.New()
	v.SetConfigType("toml")
	if err := v.ReadConfig(strings.NewReader(config.DefaultConfig)); err != nil {
		return nil, fmt.Errorf("failed to read gitleaks config: %w", err)
	}

	var vc config.ViperConfig
	if err := v.Unmarshal(&vc); err != nil {
		return nil, fmt.Errorf("failed to unmarshal gitleaks config: %w", err)
	}

	cfg, err := vc.Translate()
	if err != nil {
		return nil, fmt.Errorf("failed to translate gitleaks config: %w", err)
	}

	return detect.NewDetector(cfg), nil
}
