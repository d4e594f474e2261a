package styles

import (
	"regexp"
	"strings"

	"github.com/codeadmin-peritiae/docs/internal/lint"
)

var (
	googleCopyrightRe = regexp.MustCompile(`Copyright 20[1-9][0-9]`)
	googleLicenseRe   = regexp.MustCompile(`#@title Licensed under the Apache License`)
)

// Google returns the baseline docs style: a copyright line somewhere in the
// prose, the Apache license form somewhere in the code, and a sane filename.
func Google() ([]lint.Rule, error) {
	style := lint.WithStyle("google")

	copyrightCheck := lint.MustNew("copyright_check",
		func(source string, _ lint.Unit, _ string) (bool, error) {
			return googleCopyrightRe.MatchString(source), nil
		},
		style,
		lint.WithMessage("Copyright is required"),
		lint.WithScope(lint.ScopeText),
		lint.WithCondition(lint.CondAny),
	)

	licenseCheck := lint.MustNew("license_check",
		func(source string, _ lint.Unit, _ string) (bool, error) {
			return googleLicenseRe.MatchString(source), nil
		},
		style,
		lint.WithMessage("Apache license is required"),
		lint.WithScope(lint.ScopeCode),
		lint.WithCondition(lint.CondAny),
	)

	// Colab fails to open notebooks with spaces in the filename.
	filenameSpaces := lint.MustNew("filename_spaces",
		func(_ string, _ lint.Unit, path string) (bool, error) {
			return !strings.Contains(path, " "), nil
		},
		style,
		lint.WithMessage("Notebook filename must not contain spaces"),
		lint.WithScope(lint.ScopeFile),
	)

	return []lint.Rule{copyrightCheck, licenseCheck, filenameSpaces}, nil
}
