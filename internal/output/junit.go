package output

import (
	"encoding/xml"
	"fmt"
	"io"

	"github.com/codeadmin-peritiae/docs/internal/runner"
)

// JUnitFormatter formats run results as JUnit XML: one test suite per
// notebook, one test case per top-level check.
type JUnitFormatter struct {
	writer io.Writer
}

// NewJUnitFormatter creates a new JUnit formatter.
func NewJUnitFormatter(w io.Writer) *JUnitFormatter {
	return &JUnitFormatter{
		writer: w,
	}
}

// JUnitTestSuites JUnit XML structures
type JUnitTestSuites struct {
	XMLName    xml.Name         `xml:"testsuites"`
	Name       string           `xml:"name,attr"`
	Tests      int              `xml:"tests,attr"`
	Failures   int              `xml:"failures,attr"`
	Time       float64          `xml:"time,attr"`
	TestSuites []JUnitTestSuite `xml:"testsuite"`
}

type JUnitTestSuite struct {
	XMLName   xml.Name        `xml:"testsuite"`
	Name      string          `xml:"name,attr"`
	Tests     int             `xml:"tests,attr"`
	Failures  int             `xml:"failures,attr"`
	Skipped   int             `xml:"skipped,attr"`
	TestCases []JUnitTestCase `xml:"testcase"`
}

type JUnitTestCase struct {
	XMLName   xml.Name      `xml:"testcase"`
	Name      string        `xml:"name,attr"`
	ClassName string        `xml:"classname,attr"`
	Failure   *JUnitFailure `xml:"failure,omitempty"`
	Skipped   *JUnitSkipped `xml:"skipped,omitempty"`
}

type JUnitFailure struct {
	Message string `xml:"message,attr"`
	Content string `xml:",chardata"`
}

type JUnitSkipped struct {
	Message string `xml:"message,attr,omitempty"`
}

// Format writes the run result as JUnit XML.
func (f *JUnitFormatter) Format(result *runner.RunResult) error {
	suites := JUnitTestSuites{
		Name:     "nbcheck",
		Tests:    result.Summary.TotalChecks,
		Failures: result.Summary.FailedChecks,
		Time:     result.Duration.Seconds(),
	}

	for _, file := range result.Files {
		suite := JUnitTestSuite{Name: file.Path}

		if file.Skipped {
			suite.Tests = 1
			suite.Skipped = 1
			suite.TestCases = []JUnitTestCase{{
				Name:      "load",
				ClassName: file.Path,
				Skipped:   &JUnitSkipped{Message: file.SkipReason},
			}}
			suites.TestSuites = append(suites.TestSuites, suite)
			continue
		}

		for _, entry := range file.Entries {
			if entry.Member {
				continue
			}
			c := JUnitTestCase{
				Name:      entry.Name,
				ClassName: entry.Style,
			}
			suite.Tests++
			if !entry.Success {
				suite.Failures++
				message := entry.Message
				if message == "" {
					message = fmt.Sprintf("check %s failed", entry.Name)
				}
				c.Failure = &JUnitFailure{
					Message: message,
					Content: fmt.Sprintf("rule %s failed on %s", entry.Rule, file.Path),
				}
			}
			suite.TestCases = append(suite.TestCases, c)
		}

		suites.TestSuites = append(suites.TestSuites, suite)
	}

	if _, err := f.writer.Write([]byte(xml.Header)); err != nil {
		return err
	}

	encoder := xml.NewEncoder(f.writer)
	encoder.Indent("", "  ")
	if err := encoder.Encode(suites); err != nil {
		return fmt.Errorf("failed to encode JUnit XML: %w", err)
	}

	_, err := f.writer.Write([]byte("\n"))
	return err
}
