package content

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writePostDir(t *testing.T, root, dir, title string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Join(root, dir), 0o755))
	doc := `{
  "file_path": "entry.md",
  "post_dir": "` + dir + `",
  "format": "markdown",
  "static_dir": null,
  "title": "` + title + `",
  "authors": ["Ann"],
  "day": 1,
  "month": 1,
  "year": 2024,
  "description": "summary",
  "thumbnail": "thumb.png",
  "projects": null,
  "tags": []
}`
	require.NoError(t, os.WriteFile(filepath.Join(root, dir, "post.json"), []byte(doc), 0o644))
}

func TestCollect_FindsDescriptorsInImmediateSubdirectories(t *testing.T) {
	root := t.TempDir()
	writePostDir(t, root, "alpha", "Alpha")
	writePostDir(t, root, "beta", "Beta")

	items, err := Collect(KindPost, root)
	require.NoError(t, err)
	require.Len(t, items, 2)

	dirs := []string{items[0].Directory, items[1].Directory}
	require.ElementsMatch(t, []string{"alpha", "beta"}, dirs)
}

func TestCollect_SkipsDirectoriesWithoutDescriptor(t *testing.T) {
	root := t.TempDir()
	writePostDir(t, root, "alpha", "Alpha")
	require.NoError(t, os.MkdirAll(filepath.Join(root, "not-a-post"), 0o755))

	items, err := Collect(KindPost, root)
	require.NoError(t, err)
	require.Len(t, items, 1)
}

func TestCollect_DoesNotRecurseBeyondOneLevel(t *testing.T) {
	root := t.TempDir()
	writePostDir(t, root, filepath.Join("outer", "nested"), "Nested")

	items, err := Collect(KindPost, root)
	require.NoError(t, err)
	require.Empty(t, items)
}

func TestCollect_EmptySourceTree_ReturnsEmptySlice(t *testing.T) {
	items, err := Collect(KindPost, t.TempDir())
	require.NoError(t, err)
	require.NotNil(t, items)
	require.Empty(t, items)
}

func TestCollect_MissingSourceDir_ReturnsEmptySlice(t *testing.T) {
	items, err := Collect(KindPost, filepath.Join(t.TempDir(), "absent"))
	require.NoError(t, err)
	require.Empty(t, items)
}

func TestCollect_MalformedDescriptor_NamesTheDirectory(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "broken"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "broken", "post.json"), []byte("{"), 0o644))

	_, err := Collect(KindPost, root)
	require.ErrorIs(t, err, ErrMalformedMetadata)
	require.Contains(t, err.Error(), "broken")
}

func TestCollect_DuplicateDirectory_ReturnsError(t *testing.T) {
	root := t.TempDir()
	writePostDir(t, root, "alpha", "Alpha")
	// A second folder whose descriptor claims the same post_dir.
	require.NoError(t, os.MkdirAll(filepath.Join(root, "alpha2"), 0o755))
	doc := `{
  "file_path": "entry.md",
  "post_dir": "alpha",
  "format": "markdown",
  "static_dir": null,
  "title": "Alpha Again",
  "authors": ["Ann"],
  "day": 2,
  "month": 1,
  "year": 2024,
  "description": "summary",
  "thumbnail": "thumb.png",
  "projects": null,
  "tags": []
}`
	require.NoError(t, os.WriteFile(filepath.Join(root, "alpha2", "post.json"), []byte(doc), 0o644))

	_, err := Collect(KindPost, root)
	require.ErrorIs(t, err, ErrDuplicateDirectory)
}
