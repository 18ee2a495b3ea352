package csfix

import "fmt"

// Outcome classifies what happened to one file during a run.
type Outcome int

const (
	OutcomeUnchanged Outcome = iota
	OutcomeRewritten
	OutcomeError
)

func (o Outcome) String() string {
	switch o {
	case OutcomeRewritten:
		return "rewritten"
	case OutcomeError:
		return "error"
	default:
		return "unchanged"
	}
}

// FileResult is the per-file record of a batch run. A failed file carries its
// error here instead of aborting the batch.
type FileResult struct {
	Path    string
	Outcome Outcome
	Err     error
}

// RunReport collects one result per processed file.
type RunReport struct {
	Results []FileResult
}

func (r *RunReport) add(res FileResult) {
	r.Results = append(r.Results, res)
}

// RewrittenCount returns the number of files whose content changed.
func (r *RunReport) RewrittenCount() int {
	n := 0
	for _, res := range r.Results {
		if res.Outcome == OutcomeRewritten {
			n++
		}
	}
	return n
}

// Summary flattens the report into display lists.
func (r *RunReport) Summary() Summary {
	var s Summary
	for _, res := range r.Results {
		switch res.Outcome {
		case OutcomeRewritten:
			s.Rewritten = append(s.Rewritten, res.Path)
		case OutcomeError:
			entry := res.Path
			if res.Err != nil {
				entry = fmt.Sprintf("%s: %v", res.Path, res.Err)
			}
			s.Failed = append(s.Failed, entry)
		default:
			s.Unchanged = append(s.Unchanged, res.Path)
		}
	}
	return s
}

type Summary struct {
	Rewritten []string
	Unchanged []string
	Failed    []string
	Message   string
}
