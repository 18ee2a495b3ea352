package csfix

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestAppExecute tests a full run over a directory tree, from discovery to
// the summarized report.
func TestAppExecute(t *testing.T) {
	t.Setenv("NVIM", "")
	t.Setenv("NVIM_LISTEN_ADDRESS", "")

	t.Run("rewrites a tree and reports relative paths", func(t *testing.T) {
		dir := t.TempDir()
		dirty := filepath.Join(dir, "dirty.cs")
		clean := filepath.Join(dir, "clean.cs")
		writeTestFile(t, dirty, "if (ready) Fire();\n")
		writeTestFile(t, clean, "namespace App\n{\n}\n")

		app, err := NewApp(&Config{Path: dir, Extensions: []string{".cs"}})
		require.NoError(t, err)

		var updates []int
		app.SetProgressCallback(func(done, total int, path string) {
			assert.Equal(t, 2, total)
			updates = append(updates, done)
		})

		summary, err := app.Execute()
		require.NoError(t, err)

		wd, err := os.Getwd()
		require.NoError(t, err)
		relDirty, err := filepath.Rel(wd, dirty)
		require.NoError(t, err)
		relClean, err := filepath.Rel(wd, clean)
		require.NoError(t, err)

		assert.Equal(t, []string{relDirty}, summary.Rewritten)
		assert.Equal(t, []string{relClean}, summary.Unchanged)
		assert.Empty(t, summary.Failed)
		assert.Equal(t, []int{1, 2}, updates)

		got, err := os.ReadFile(dirty)
		require.NoError(t, err)
		assert.Equal(t, "if (ready)\n{\n    Fire();\n}\n", string(got))
	})

	t.Run("diff mode logs per-file failures", func(t *testing.T) {
		dir := t.TempDir()
		writeTestFile(t, filepath.Join(dir, "clean.cs"), "namespace App\n{\n}\n")
		require.NoError(t, os.Symlink(filepath.Join(dir, "gone"), filepath.Join(dir, "broken.cs")))

		app, err := NewApp(&Config{Path: dir, Extensions: []string{".cs"}, Diff: true})
		require.NoError(t, err)

		var logs bytes.Buffer
		prev := slog.Default()
		slog.SetDefault(slog.New(slog.NewTextHandler(&logs, nil)))
		defer slog.SetDefault(prev)

		summary, err := app.Execute()
		require.NoError(t, err)

		require.Len(t, summary.Failed, 1)
		assert.Contains(t, summary.Failed[0], "broken.cs")
		assert.Contains(t, logs.String(), "rewrite failed")
		assert.Contains(t, logs.String(), "broken.cs")
	})

	t.Run("empty tree reports nothing to do", func(t *testing.T) {
		app, err := NewApp(&Config{Path: t.TempDir(), Extensions: []string{".cs"}})
		require.NoError(t, err)

		summary, err := app.Execute()
		require.NoError(t, err)
		assert.Equal(t, "Nothing to do", summary.Message)
	})

	t.Run("missing path fails", func(t *testing.T) {
		app, err := NewApp(&Config{Path: filepath.Join(t.TempDir(), "absent"), Extensions: []string{".cs"}})
		require.NoError(t, err)

		_, err = app.Execute()
		assert.ErrorContains(t, err, "could not stat")
	})

	t.Run("no path fails", func(t *testing.T) {
		app, err := NewApp(&Config{Extensions: []string{".cs"}})
		require.NoError(t, err)

		_, err = app.Execute()
		assert.ErrorContains(t, err, "no path given")
	})
}
