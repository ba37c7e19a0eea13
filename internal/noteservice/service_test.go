package noteservice

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/starford/acropad/internal/apperr"
	"github.com/starford/acropad/internal/checksum"
	"github.com/starford/acropad/internal/render"
	"github.com/starford/acropad/internal/vault"
)

func testService(t *testing.T) (*Service, string) {
	t.Helper()
	root := t.TempDir()
	return NewService(vault.New(), render.New(), root), root
}

func TestSaveReadRoundTrip(t *testing.T) {
	svc, root := testService(t)
	ctx := context.Background()
	p := filepath.Join(root, "note.md")

	saved, err := svc.SaveFile(ctx, p, "# Hi\n")
	require.NoError(t, err)
	got, err := svc.ReadFile(ctx, p)
	require.NoError(t, err)

	assert.Equal(t, "# Hi\n", got.Content)
	assert.Equal(t, saved.Checksum, got.Checksum)
	assert.Equal(t, checksum.Sum("# Hi\n"), got.Checksum)
}

func TestScanUsesDefaultRoot(t *testing.T) {
	svc, root := testService(t)
	ctx := context.Background()
	_, err := svc.SaveFile(ctx, filepath.Join(root, "a.md"), "apple")
	require.NoError(t, err)

	files, err := svc.Scan(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, []string{"a.md"}, files)

	hits, err := svc.Search(ctx, "", "APPLE")
	require.NoError(t, err)
	assert.Len(t, hits, 1)
}

func TestReadFile_NotFound(t *testing.T) {
	svc, root := testService(t)
	_, err := svc.ReadFile(context.Background(), filepath.Join(root, "ghost.md"))
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestRenderFile(t *testing.T) {
	svc, root := testService(t)
	ctx := context.Background()
	p := filepath.Join(root, "page.md")
	_, err := svc.SaveFile(ctx, p, "# Title\n\nlink to [[other]]\n")
	require.NoError(t, err)

	out, err := svc.RenderFile(ctx, p)
	require.NoError(t, err)
	assert.Contains(t, out.HTML, "<h1>Title</h1>")
	assert.Equal(t, []string{"other"}, out.Links)
}

func TestRenderFile_NoLinksIsEmptySlice(t *testing.T) {
	svc, root := testService(t)
	ctx := context.Background()
	p := filepath.Join(root, "plain.txt")
	_, err := svc.SaveFile(ctx, p, "just text")
	require.NoError(t, err)

	out, err := svc.RenderFile(ctx, p)
	require.NoError(t, err)
	assert.NotNil(t, out.Links)
	assert.Empty(t, out.Links)
}

func TestCreateNote_DefaultsToVaultRoot(t *testing.T) {
	svc, root := testService(t)
	ctx := context.Background()

	created, err := svc.CreateNote(ctx, "", "idea.md")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "idea.md"), created.Path)
	assert.Equal(t, "idea.md", created.Name)
	assert.Equal(t, checksum.Sum(vault.NewNoteContent), created.Checksum)

	files, err := svc.Scan(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, []string{"idea.md"}, files)

	_, err = svc.CreateNote(ctx, "", "idea.md")
	assert.ErrorIs(t, err, apperr.ErrExists)
}

func TestRenameAndDelete(t *testing.T) {
	svc, root := testService(t)
	ctx := context.Background()
	from := filepath.Join(root, "a.md")
	to := filepath.Join(root, "b.md")
	_, err := svc.SaveFile(ctx, from, "x")
	require.NoError(t, err)

	res, err := svc.RenameFile(ctx, from, to)
	require.NoError(t, err)
	assert.Equal(t, &RenameResult{From: from, To: to}, res)

	require.NoError(t, svc.DeleteFile(ctx, to))
	_, err = os.Stat(to)
	assert.ErrorIs(t, err, os.ErrNotExist)

	assert.ErrorIs(t, svc.DeleteFile(ctx, to), apperr.ErrNotFound)
}

func TestMakeDir(t *testing.T) {
	svc, root := testService(t)
	dir := filepath.Join(root, "a", "b")
	require.NoError(t, svc.MakeDir(context.Background(), dir))
	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestGreet(t *testing.T) {
	svc, _ := testService(t)
	assert.Equal(t, vault.Greet(), svc.Greet())
}
