package csfix

import (
	"encoding/xml"
	"fmt"
	"os"
	"strings"
)

// trxRun mirrors the slice of a Visual Studio test results file that the
// summarizer cares about. Tag names are unqualified so the usual TeamTest
// namespace and namespace-less files both parse.
type trxRun struct {
	XMLName xml.Name    `xml:"TestRun"`
	Results []trxResult `xml:"Results>UnitTestResult"`
}

type trxResult struct {
	TestName string    `xml:"testName,attr"`
	Outcome  string    `xml:"outcome,attr"`
	Output   trxOutput `xml:"Output"`
}

type trxOutput struct {
	ErrorInfo trxErrorInfo `xml:"ErrorInfo"`
}

type trxErrorInfo struct {
	Message    string `xml:"Message"`
	StackTrace string `xml:"StackTrace"`
}

// TestFailure is one failed test pulled out of a report.
type TestFailure struct {
	Name       string
	Message    string
	StackTrace string
}

// ReportSummary aggregates a test report by outcome.
type ReportSummary struct {
	Total    int
	Passed   int
	Failures []TestFailure
}

// ParseReport reads a TRX results file and extracts its failures. A report
// that cannot be parsed is a fatal error, unlike per-file rewrite failures.
func ParseReport(path string) (*ReportSummary, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not read report %s: %w", path, err)
	}

	summary, err := parseReportBytes(raw)
	if err != nil {
		return nil, fmt.Errorf("could not parse report %s: %w", path, err)
	}
	return summary, nil
}

func parseReportBytes(raw []byte) (*ReportSummary, error) {
	var run trxRun
	if err := xml.Unmarshal(raw, &run); err != nil {
		return nil, err
	}

	summary := &ReportSummary{Total: len(run.Results)}
	for _, r := range run.Results {
		switch r.Outcome {
		case "Passed":
			summary.Passed++
		case "Failed":
			summary.Failures = append(summary.Failures, TestFailure{
				Name:       r.TestName,
				Message:    strings.TrimSpace(r.Output.ErrorInfo.Message),
				StackTrace: strings.TrimSpace(r.Output.ErrorInfo.StackTrace),
			})
		}
	}
	return summary, nil
}

// FormatReport renders the failure count followed by one block per failing
// test: ordinal, name, message and the first stack frame.
func FormatReport(s *ReportSummary) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Total failures: %d\n", len(s.Failures))
	for i, f := range s.Failures {
		fmt.Fprintf(&sb, "\n%d. %s\n", i+1, f.Name)
		fmt.Fprintf(&sb, "   Error: %s\n", f.Message)
		if f.StackTrace != "" {
			firstLine := strings.SplitN(f.StackTrace, "\n", 2)[0]
			fmt.Fprintf(&sb, "   Stack: %s\n", firstLine)
		}
	}
	return sb.String()
}
