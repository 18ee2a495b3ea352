package csfix

import (
	"bytes"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
)

type PathResolver struct {
	wd string
}

func NewPathResolver() (*PathResolver, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("could not get current working directory: %w", err)
	}
	return &PathResolver{wd: wd}, nil
}

func (r *PathResolver) Resolve(relativePath string) string {
	if filepath.IsAbs(relativePath) {
		return filepath.Clean(relativePath)
	}
	return filepath.Join(r.wd, relativePath)
}

// DiscoverFiles returns the files under root matching the extension filter,
// in lexical walk order. A root that is itself a file is returned as-is,
// whatever its extension. Entries the walk cannot read are logged and
// skipped; only a bad root fails discovery.
func DiscoverFiles(root string, extensions []string) ([]string, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("could not stat %s: %w", root, err)
	}
	if !info.IsDir() {
		return []string{root}, nil
	}

	var files []string
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			slog.Warn("skipping unreadable path", "path", path, "error", walkErr)
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}
		if hasAnyExtension(path, extensions) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("could not walk %s: %w", root, err)
	}
	return files, nil
}

func hasAnyExtension(path string, extensions []string) bool {
	ext := filepath.Ext(path)
	for _, e := range extensions {
		if ext == e {
			return true
		}
	}
	return false
}

// FileFixer runs a pipeline over files on disk. A file is written back only
// when its transformed bytes differ from what was read, so an already-clean
// file keeps its mtime. When DiffTo is set the rewrite is printed as a
// unified diff instead of being written.
type FileFixer struct {
	pipeline Pipeline
	DiffTo   io.Writer
}

func NewFileFixer(p Pipeline) *FileFixer {
	return &FileFixer{pipeline: p}
}

// FixFiles processes every file in order. Failures are recorded per file and
// never stop the batch.
func (f *FileFixer) FixFiles(paths []string, progressCb func(done int, path string)) RunReport {
	var report RunReport
	for i, path := range paths {
		if progressCb != nil {
			progressCb(i+1, path)
		}
		report.add(f.FixFile(path))
	}
	return report
}

// FixFile rewrites one file in place, preserving its mode, encoding and line
// endings.
func (f *FileFixer) FixFile(path string) FileResult {
	info, err := os.Stat(path)
	if err != nil {
		return errorResult(path, fmt.Errorf("could not stat %s: %w", path, err))
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return errorResult(path, fmt.Errorf("could not read %s: %w", path, err))
	}

	text, codec, err := decodeDocument(raw)
	if err != nil {
		return errorResult(path, fmt.Errorf("could not decode %s: %w", path, err))
	}

	fixed := f.transform(path, text)

	out, err := codec.encode(fixed)
	if err != nil {
		return errorResult(path, fmt.Errorf("could not encode %s: %w", path, err))
	}

	if bytes.Equal(raw, out) {
		return FileResult{Path: path, Outcome: OutcomeUnchanged}
	}

	if f.DiffTo != nil {
		fmt.Fprint(f.DiffTo, UnifiedDiff(path, text, fixed))
		return FileResult{Path: path, Outcome: OutcomeRewritten}
	}

	if err := os.WriteFile(path, out, info.Mode()); err != nil {
		return errorResult(path, fmt.Errorf("could not write %s: %w", path, err))
	}
	return FileResult{Path: path, Outcome: OutcomeRewritten}
}

func (f *FileFixer) transform(path, text string) string {
	if isMarkdownPath(path) {
		return FixMarkdownSnippets(text, f.pipeline)
	}
	return f.pipeline.Transform(text)
}

func isMarkdownPath(path string) bool {
	ext := filepath.Ext(path)
	return ext == ".md" || ext == ".markdown"
}

func errorResult(path string, err error) FileResult {
	return FileResult{Path: path, Outcome: OutcomeError, Err: err}
}
