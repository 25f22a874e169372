package fileutil

import (
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harrison/dsckit/internal/config"
)

// writeTree creates the given relative files under root.
func writeTree(t *testing.T, root string, files ...string) {
	t.Helper()
	for _, f := range files {
		full := filepath.Join(root, filepath.FromSlash(f))
		require.NoError(t, os.MkdirAll(filepath.Dir(full), 0755))
		require.NoError(t, os.WriteFile(full, []byte("# Title\n"), 0644))
	}
}

func relAll(t *testing.T, root string, paths []string) []string {
	t.Helper()
	out := make([]string, 0, len(paths))
	for _, p := range paths {
		rel, err := filepath.Rel(root, p)
		require.NoError(t, err)
		out = append(out, filepath.ToSlash(rel))
	}
	return out
}

func TestBuildPatterns(t *testing.T) {
	tests := []struct {
		name     string
		opts     config.LintOptions
		expected []string
	}{
		{
			name:     "no flags",
			opts:     config.LintOptions{},
			expected: []string{},
		},
		{
			name:     "resource path only",
			opts:     config.LintOptions{ResourcePaths: []string{"resources"}},
			expected: []string{"resources/**/*.md"},
		},
		{
			name:     "root path only",
			opts:     config.LintOptions{RootPaths: []string{"./docs"}},
			expected: []string{"./docs/*.md"},
		},
		{
			name: "resource patterns precede root patterns",
			opts: config.LintOptions{
				RootPaths:     []string{"repo"},
				ResourcePaths: []string{"a", "b/"},
			},
			expected: []string{"a/**/*.md", "b/**/*.md", "repo/*.md"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, BuildPatterns(tt.opts))
		})
	}
}

func TestExpandPatterns_TopLevelOnly(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, "a.md", "b.md", "notes.txt", "sub/c.md")

	files, err := ExpandPatterns([]string{TopLevelPattern(root)})
	require.NoError(t, err)

	assert.Equal(t, []string{"a.md", "b.md"}, relAll(t, root, files))
}

func TestExpandPatterns_Recursive(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, "a.md", "sub/c.md", "sub/deeper/d.md", "sub/skip.txt")

	files, err := ExpandPatterns([]string{RecursivePattern(root)})
	require.NoError(t, err)

	got := relAll(t, root, files)
	sort.Strings(got)
	assert.Equal(t, []string{"a.md", "sub/c.md", "sub/deeper/d.md"}, got)
}

func TestExpandPatterns_KeepsDuplicates(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, "README.md")

	files, err := ExpandPatterns([]string{RecursivePattern(root), TopLevelPattern(root)})
	require.NoError(t, err)

	assert.Equal(t, []string{"README.md", "README.md"}, relAll(t, root, files))
}

func TestExpandPatterns_SkipsDirectoriesNamedLikeFiles(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "folder.md"), 0755))
	writeTree(t, root, "real.md")

	files, err := ExpandPatterns([]string{TopLevelPattern(root)})
	require.NoError(t, err)

	assert.Equal(t, []string{"real.md"}, relAll(t, root, files))
}

func TestExpandPatterns_SkipsHidden(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, "visible.md", ".hidden.md", ".git/notes.md", "sub/.cache/x.md")

	files, err := ExpandPatterns([]string{RecursivePattern(root)})
	require.NoError(t, err)

	assert.Equal(t, []string{"visible.md"}, relAll(t, root, files))
}

func TestExpandPatterns_MissingBase(t *testing.T) {
	files, err := ExpandPatterns([]string{TopLevelPattern(filepath.Join(t.TempDir(), "absent"))})

	require.NoError(t, err)
	assert.Empty(t, files)
}

func TestWalkPattern_BadPattern(t *testing.T) {
	err := WalkPattern("docs/[unterminated/*.md", func(string) error { return nil })

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrBadPattern)
}

func TestWalkPattern_StopsOnCallbackError(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, "a.md", "b.md")

	stop := assert.AnError
	calls := 0
	err := WalkPattern(TopLevelPattern(root), func(string) error {
		calls++
		return stop
	})

	assert.ErrorIs(t, err, stop)
	assert.Equal(t, 1, calls)
}
