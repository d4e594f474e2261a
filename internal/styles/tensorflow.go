package styles

import (
	"path/filepath"
	"regexp"
	"strings"

	"github.com/codeadmin-peritiae/docs/internal/lint"
)

var (
	tfCopyrightRe = regexp.MustCompile(`Copyright 20[1-9][0-9] The TensorFlow\s.*?\s?Authors`)
	tfLicenseRe   = regexp.MustCompile(`#@title Licensed under the Apache License`)
)

// TensorFlow returns lint rules for the TensorFlow documentation guide.
// Non-exhaustive; see the docs contributor and style guides.
func TensorFlow() ([]lint.Rule, error) {
	style := lint.WithStyle("tensorflow")

	copyrightCheck := lint.MustNew("copyright_check",
		func(source string, _ lint.Unit, _ string) (bool, error) {
			return tfCopyrightRe.MatchString(source), nil
		},
		style,
		lint.WithMessage("TensorFlow copyright is required"),
		lint.WithScope(lint.ScopeText),
		lint.WithCondition(lint.CondAny),
	)

	licenseCheck := lint.MustNew("license_check",
		func(source string, _ lint.Unit, _ string) (bool, error) {
			return tfLicenseRe.MatchString(source), nil
		},
		style,
		lint.WithMessage("Apache license is required"),
		lint.WithScope(lint.ScopeCode),
		lint.WithCondition(lint.CondAny),
	)

	// Only English-language notebooks belong under site/; translations live
	// in their own repository.
	notTranslation := lint.MustNew("not_translation",
		func(_ string, _ lint.Unit, path string) (bool, error) {
			parts := strings.Split(filepath.ToSlash(path), "/")
			for i, part := range parts[:max(len(parts)-1, 0)] {
				if part != "site" {
					continue
				}
				if i+1 < len(parts)-1 && parts[i+1] == "en" {
					continue
				}
				return false, nil
			}
			return true, nil
		},
		style,
		lint.WithMessage("Only English notebooks belong under site/en"),
		lint.WithScope(lint.ScopeFile),
	)

	return []lint.Rule{copyrightCheck, licenseCheck, notTranslation}, nil
}
