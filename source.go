package csfix

import (
	"fmt"
	"io"
	"os"

	"github.com/atotto/clipboard"
)

// stdinIsPiped reports whether stdin carries piped data rather than a
// terminal.
func stdinIsPiped() bool {
	stat, err := os.Stdin.Stat()
	if err != nil {
		return false
	}
	return stat.Mode()&os.ModeCharDevice == 0
}

// FixStream reads one document from r and writes the transformed text to w,
// so the tool can sit in a shell pipeline.
func (f *FileFixer) FixStream(r io.Reader, w io.Writer) error {
	raw, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("could not read input: %w", err)
	}

	text, codec, err := decodeDocument(raw)
	if err != nil {
		return err
	}

	out, err := codec.encode(f.pipeline.Transform(text))
	if err != nil {
		return err
	}

	_, err = w.Write(out)
	return err
}

// FixClipboard rewrites the clipboard in place. The result carries the
// pseudo-path "clipboard" so it folds into the usual run summary.
func (f *FileFixer) FixClipboard() FileResult {
	const path = "clipboard"

	content, err := clipboard.ReadAll()
	if err != nil {
		return errorResult(path, fmt.Errorf("could not read clipboard: %w", err))
	}

	text, codec, err := decodeDocument([]byte(content))
	if err != nil {
		return errorResult(path, err)
	}

	fixed := f.pipeline.Transform(text)
	out, err := codec.encode(fixed)
	if err != nil {
		return errorResult(path, err)
	}

	if string(out) == content {
		return FileResult{Path: path, Outcome: OutcomeUnchanged}
	}

	if f.DiffTo != nil {
		fmt.Fprint(f.DiffTo, UnifiedDiff(path, text, fixed))
		return FileResult{Path: path, Outcome: OutcomeRewritten}
	}

	if err := clipboard.WriteAll(string(out)); err != nil {
		return errorResult(path, fmt.Errorf("could not write clipboard: %w", err))
	}
	return FileResult{Path: path, Outcome: OutcomeRewritten}
}
