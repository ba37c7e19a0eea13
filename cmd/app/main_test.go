package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/starford/acropad/internal/vault"
)

func runApp(t *testing.T, input string, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	oldIn, oldOut := stdin, stdout
	stdin, stdout = strings.NewReader(input), &out
	t.Cleanup(func() { stdin, stdout = oldIn, oldOut })

	cfg := filepath.Join(t.TempDir(), "absent.yaml")
	argv := append([]string{"acropad", "--config", cfg}, args...)
	err := newApp().Run(context.Background(), argv)
	return out.String(), err
}

func TestCLI_SaveReadScanSearch(t *testing.T) {
	root := t.TempDir()
	note := filepath.Join(root, "notes", "a.md")
	require.NoError(t, os.MkdirAll(filepath.Dir(note), 0o755))

	_, err := runApp(t, "apple pie\n", "save", note)
	require.NoError(t, err)
	_, err = runApp(t, "", "save", "--content", "banana", filepath.Join(root, "notes", "b.txt"))
	require.NoError(t, err)

	out, err := runApp(t, "", "read", note)
	require.NoError(t, err)
	assert.Equal(t, "apple pie\n", out)

	out, err = runApp(t, "", "scan", root)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("notes", "a.md")+"\n"+filepath.Join("notes", "b.txt")+"\n", out)

	out, err = runApp(t, "", "search", "--root", root, "PIE")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("notes", "a.md")+"\n", out)
}

func TestCLI_Greet(t *testing.T) {
	out, err := runApp(t, "", "greet")
	require.NoError(t, err)
	assert.Contains(t, out, "active")
}

func TestCLI_ReadMissing(t *testing.T) {
	_, err := runApp(t, "", "read", filepath.Join(t.TempDir(), "nope.md"))
	assert.Error(t, err, "read of missing file should fail")

	_, err = runApp(t, "", "read")
	assert.Error(t, err, "read without a path should fail")
}

func TestCLI_CreateRenameDelete(t *testing.T) {
	root := t.TempDir()
	dir := filepath.Join(root, "ideas")

	out, err := runApp(t, "", "mkdir", dir)
	require.NoError(t, err)
	assert.Empty(t, out)

	out, err = runApp(t, "", "create", "--dir", dir, "first.md")
	require.NoError(t, err)
	first := filepath.Join(dir, "first.md")
	assert.Equal(t, first+"\n", out)

	out, err = runApp(t, "", "read", first)
	require.NoError(t, err)
	assert.Equal(t, vault.NewNoteContent, out)

	_, err = runApp(t, "", "create", "--dir", dir, "first.md")
	assert.Error(t, err, "create must not overwrite")

	second := filepath.Join(dir, "second.md")
	out, err = runApp(t, "", "rename", first, second)
	require.NoError(t, err)
	assert.Contains(t, out, "renamed")

	_, err = runApp(t, "", "rename", second)
	assert.Error(t, err, "rename needs two arguments")

	_, err = runApp(t, "", "delete", second)
	require.NoError(t, err)
	_, err = os.Stat(second)
	assert.True(t, os.IsNotExist(err))
}
