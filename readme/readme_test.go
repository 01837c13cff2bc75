package readme

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeDoc(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "README.md")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func readDoc(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func TestReplace(t *testing.T) {
	in := "# Hi\n\n<!-- PR_TABLE_START -->\nold\n<!-- PR_TABLE_END -->\n\nfooter\n"

	out, ok := Replace(in, "newtable")
	assert.True(t, ok)
	assert.Equal(t, "# Hi\n\n<!-- PR_TABLE_START -->\nnewtable\n<!-- PR_TABLE_END -->\n\nfooter\n", out)
}

func TestReplaceOnlyFirstSpan(t *testing.T) {
	in := "<!-- PR_TABLE_START -->a<!-- PR_TABLE_END -->\n<!-- PR_TABLE_START -->b<!-- PR_TABLE_END -->"

	out, ok := Replace(in, "x")
	assert.True(t, ok)
	assert.Equal(t, "<!-- PR_TABLE_START -->\nx\n<!-- PR_TABLE_END -->\n<!-- PR_TABLE_START -->b<!-- PR_TABLE_END -->", out)
}

func TestReplaceTableIsLiteral(t *testing.T) {
	in := "<!-- PR_TABLE_START --><!-- PR_TABLE_END -->"

	out, ok := Replace(in, "cost $1 ${2}")
	assert.True(t, ok)
	assert.Equal(t, "<!-- PR_TABLE_START -->\ncost $1 ${2}\n<!-- PR_TABLE_END -->", out)
}

func TestReplaceMissingMarkers(t *testing.T) {
	for _, in := range []string{
		"no markers here",
		"<!-- PR_TABLE_START -->\nonly start",
		"<!-- PR_TABLE_END -->\n<!-- PR_TABLE_START -->",
	} {
		out, ok := Replace(in, "t")
		assert.False(t, ok, in)
		assert.Equal(t, in, out)
	}
}

func TestUpdate(t *testing.T) {
	path := writeDoc(t, "intro\n<!-- PR_TABLE_START -->\nold\n<!-- PR_TABLE_END -->\noutro")

	require.NoError(t, Update(path, "newtable"))
	assert.Equal(t, "intro\n<!-- PR_TABLE_START -->\nnewtable\n<!-- PR_TABLE_END -->\noutro", readDoc(t, path))
}

func TestUpdateIsIdempotent(t *testing.T) {
	path := writeDoc(t, "a\n<!-- PR_TABLE_START -->\nold\nrows\n<!-- PR_TABLE_END -->\nb\n")

	require.NoError(t, Update(path, "| t |"))
	first := readDoc(t, path)
	require.NoError(t, Update(path, "| t |"))
	assert.Equal(t, first, readDoc(t, path))
}

func TestUpdateWithoutMarkersKeepsContent(t *testing.T) {
	path := writeDoc(t, "nothing to see\n")

	require.NoError(t, Update(path, "table"))
	assert.Equal(t, "nothing to see\n", readDoc(t, path))
}

func TestUpdateMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.md")

	err := Update(path, "table")
	require.Error(t, err)

	var fae *FileAccessError
	require.True(t, errors.As(err, &fae))
	assert.Equal(t, "read", fae.Op)
	assert.Equal(t, path, fae.Path)
	assert.True(t, errors.Is(err, fs.ErrNotExist))
}
