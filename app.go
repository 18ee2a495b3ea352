package csfix

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime/debug"
)

type Config struct {
	Path       string   // file or directory to rewrite, "-" for stdin
	Extensions []string // extensions matched during directory walks, dot included
	Passes     []string // subset of pass names, empty means all
	RulesFile  string   // optional rule table replacing the built-in one
	Diff       bool     // print unified diffs instead of writing
	Clipboard  bool     // rewrite the clipboard instead of files
}

type ProgressUpdate func(done, total int, path string)

type App struct {
	cfg              *Config
	pathResolver     *PathResolver
	fixer            *FileFixer
	progressCallback ProgressUpdate
}

type DetailedError struct {
	Err   error
	Stack []byte
}

func (e *DetailedError) Error() string { return e.Err.Error() }

func NewApp(cfg *Config) (*App, error) {
	pr, err := NewPathResolver()
	if err != nil {
		return nil, err
	}

	rules, err := loadConfiguredRules(cfg.RulesFile, pr)
	if err != nil {
		return nil, err
	}

	pipeline, err := NewPipeline(rules, cfg.Passes)
	if err != nil {
		return nil, err
	}

	fixer := NewFileFixer(pipeline)
	if cfg.Diff {
		fixer.DiffTo = os.Stdout
	}

	return &App{cfg: cfg, pathResolver: pr, fixer: fixer}, nil
}

func loadConfiguredRules(path string, pr *PathResolver) (*CompiledRules, error) {
	if path == "" {
		return DefaultRules().Compile()
	}

	rf, err := LoadRules(pr.Resolve(path))
	if err != nil {
		return nil, err
	}
	return rf.Compile()
}

func (a *App) SetProgressCallback(cb ProgressUpdate) { a.progressCallback = cb }

func (a *App) Execute() (summary Summary, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &DetailedError{Err: fmt.Errorf("panic: %v", r), Stack: debug.Stack()}
		}
	}()

	switch {
	case a.cfg.Clipboard:
		return a.fixClipboard()
	case a.cfg.Path == "-":
		return a.fixStream()
	default:
		return a.fixTree()
	}
}

func (a *App) fixTree() (Summary, error) {
	if a.cfg.Path == "" {
		return Summary{}, fmt.Errorf("no path given")
	}

	root := a.pathResolver.Resolve(a.cfg.Path)
	files, err := DiscoverFiles(root, a.cfg.Extensions)
	if err != nil {
		return Summary{}, err
	}
	if len(files) == 0 {
		return Summary{Message: "Nothing to do"}, nil
	}

	total := len(files)
	report := a.fixer.FixFiles(files, func(done int, path string) {
		a.reportProgress(done, total, path)
	})

	var rewritten []string
	for _, res := range report.Results {
		if res.Outcome == OutcomeRewritten {
			rewritten = append(rewritten, res.Path)
		}
		if res.Err != nil {
			slog.Error("rewrite failed", "path", res.Path, "error", res.Err)
		}
	}
	if !a.cfg.Diff {
		a.notifyEditor(rewritten)
	}

	a.relativizeReport(&report)
	return report.Summary(), nil
}

func (a *App) fixClipboard() (Summary, error) {
	a.reportProgress(1, 1, "clipboard")
	var report RunReport
	report.add(a.fixer.FixClipboard())
	return report.Summary(), nil
}

// fixStream rewrites stdin to stdout. The summary stays empty so nothing
// pollutes the pipe.
func (a *App) fixStream() (Summary, error) {
	if err := a.fixer.FixStream(os.Stdin, os.Stdout); err != nil {
		return Summary{}, err
	}
	return Summary{}, nil
}

func (a *App) notifyEditor(rewritten []string) {
	if len(rewritten) == 0 {
		return
	}

	notifier, err := NewNvimNotifier()
	if err != nil {
		slog.Debug("nvim unavailable", "error", err)
		return
	}
	if notifier == nil {
		return
	}
	defer notifier.Close()

	if err := notifier.ReloadFiles(rewritten); err != nil {
		slog.Debug("nvim reload failed", "error", err)
	}
}

func (a *App) reportProgress(done, total int, path string) {
	if a.progressCallback != nil {
		a.progressCallback(done, total, path)
	}
}

func (a *App) relativizeReport(report *RunReport) {
	wd, err := os.Getwd()
	if err != nil {
		return
	}

	for i, res := range report.Results {
		if rel, err := filepath.Rel(wd, res.Path); err == nil {
			report.Results[i].Path = rel
		}
	}
}
