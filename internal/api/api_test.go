package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/starford/acropad/internal/noteservice"
	"github.com/starford/acropad/internal/render"
	"github.com/starford/acropad/internal/testutil"
	"github.com/starford/acropad/internal/vault"
)

// testEnv sets up a temp vault, service, and router for testing.
// A non-empty authToken enables token mode.
func testEnv(t *testing.T, authToken string) (http.Handler, string) {
	t.Helper()
	vaultDir := t.TempDir()
	svc := noteservice.NewService(vault.New(), render.New(), vaultDir)
	return NewRouter(svc, authToken != "", authToken), vaultDir
}

func do(t *testing.T, router http.Handler, method, target string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, target, &buf)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

func fileURL(base, path string) string {
	return base + "?path=" + url.QueryEscape(path)
}

func TestGreet(t *testing.T) {
	router, _ := testEnv(t, "")
	w := do(t, router, http.MethodGet, "/greet", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, vault.Greet(), decode[GreetResponse](t, w).Message)
}

func TestSaveAndReadFile(t *testing.T) {
	router, vaultDir := testEnv(t, "")
	p := filepath.Join(vaultDir, "hello.md")

	w := do(t, router, http.MethodPut, "/files", SaveFileRequest{Path: p, Content: "# Hello\nWorld"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	saved := decode[SaveResult](t, w)

	w = do(t, router, http.MethodGet, fileURL("/files", p), nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	file := decode[FileDetail](t, w)
	assert.Equal(t, "# Hello\nWorld", file.Content)
	assert.Equal(t, saved.Checksum, file.Checksum)
}

func TestSaveEmptyContent(t *testing.T) {
	router, vaultDir := testEnv(t, "")
	p := filepath.Join(vaultDir, "empty.md")

	w := do(t, router, http.MethodPut, "/files", SaveFileRequest{Path: p})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = do(t, router, http.MethodGet, fileURL("/files", p), nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, decode[FileDetail](t, w).Content)
}

func TestSaveFile_Errors(t *testing.T) {
	router, vaultDir := testEnv(t, "")

	w := do(t, router, http.MethodPut, "/files", SaveFileRequest{Content: "x"})
	assert.Equal(t, http.StatusBadRequest, w.Code, "missing path")

	req := httptest.NewRequest(http.MethodPut, "/files", bytes.NewReader([]byte("{not json")))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code, "bad json")

	w = do(t, router, http.MethodPut, "/files", SaveFileRequest{Path: filepath.Join(vaultDir, "no", "such", "dir.md")})
	assert.Equal(t, http.StatusInternalServerError, w.Code, "missing parent")
}

func TestReadFile_NotFound(t *testing.T) {
	router, vaultDir := testEnv(t, "")
	w := do(t, router, http.MethodGet, fileURL("/files", filepath.Join(vaultDir, "nope.md")), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestReadFile_InvalidEncoding(t *testing.T) {
	router, vaultDir := testEnv(t, "")
	p := filepath.Join(vaultDir, "bin.md")
	require.NoError(t, os.WriteFile(p, []byte{0xff, 0xfe}, 0o644))

	w := do(t, router, http.MethodGet, fileURL("/files", p), nil)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestReadFile_MissingPath(t *testing.T) {
	router, _ := testEnv(t, "")
	w := do(t, router, http.MethodGet, "/files", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestScanAndSearch(t *testing.T) {
	router, vaultDir := testEnv(t, "")
	testutil.WriteTree(t, vaultDir, map[string]string{
		"a.md":  "apple pie",
		"b.txt": "banana",
		"c.png": "binary",
	})

	w := do(t, router, http.MethodGet, "/vault/scan", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []string{"a.md", "b.txt"}, decode[FileListResponse](t, w).Files)

	w = do(t, router, http.MethodGet, "/vault/search?q=PIE&root="+url.QueryEscape(vaultDir), nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []string{"a.md"}, decode[FileListResponse](t, w).Files)

	w = do(t, router, http.MethodGet, "/vault/search?q=", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[FileListResponse](t, w).Files, 2)
}

func TestScan_NonexistentRoot(t *testing.T) {
	router, vaultDir := testEnv(t, "")
	w := do(t, router, http.MethodGet, "/vault/scan?root="+url.QueryEscape(filepath.Join(vaultDir, "missing")), nil)
	require.Equal(t, http.StatusOK, w.Code)

	resp := decode[map[string]any](t, w)
	files, ok := resp["files"].([]any)
	require.True(t, ok, "files must be a JSON array, got %v", resp["files"])
	assert.Empty(t, files)
}

func TestSearchMissingQuery(t *testing.T) {
	router, _ := testEnv(t, "")
	w := do(t, router, http.MethodGet, "/vault/search", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRenderFile(t *testing.T) {
	router, vaultDir := testEnv(t, "")
	testutil.WriteTree(t, vaultDir, map[string]string{"page.md": "# Page\n\n[[other]]"})
	p := filepath.Join(vaultDir, "page.md")

	w := do(t, router, http.MethodGet, fileURL("/files/render", p), nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	out := decode[RenderedFile](t, w)
	assert.Contains(t, out.HTML, "<h1>Page</h1>")
	assert.Equal(t, []string{"other"}, out.Links)
}

func TestCreateNote(t *testing.T) {
	router, vaultDir := testEnv(t, "")

	w := do(t, router, http.MethodPost, "/files", CreateNoteRequest{Name: "idea.md"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	created := decode[CreatedNote](t, w)
	assert.Equal(t, filepath.Join(vaultDir, "idea.md"), created.Path)
	assert.Equal(t, "idea.md", created.Name)

	w = do(t, router, http.MethodPost, "/files", CreateNoteRequest{Name: "idea.md"})
	assert.Equal(t, http.StatusConflict, w.Code)

	w = do(t, router, http.MethodPost, "/files", CreateNoteRequest{Name: "../escape.md"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, router, http.MethodPost, "/files", CreateNoteRequest{Dir: filepath.Join(vaultDir, "sub")})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Regexp(t, `^Untitled-\d+\.md$`, decode[CreatedNote](t, w).Name)
}

func TestDeleteFile(t *testing.T) {
	router, vaultDir := testEnv(t, "")
	testutil.WriteTree(t, vaultDir, map[string]string{"gone.md": "x"})
	p := filepath.Join(vaultDir, "gone.md")

	w := do(t, router, http.MethodDelete, fileURL("/files", p), nil)
	require.Equal(t, http.StatusNoContent, w.Code, w.Body.String())

	w = do(t, router, http.MethodDelete, fileURL("/files", p), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = do(t, router, http.MethodDelete, "/files", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRenameFile(t *testing.T) {
	router, vaultDir := testEnv(t, "")
	testutil.WriteTree(t, vaultDir, map[string]string{"a.md": "a", "b.md": "b"})
	a := filepath.Join(vaultDir, "a.md")
	b := filepath.Join(vaultDir, "b.md")
	c := filepath.Join(vaultDir, "c.md")

	w := do(t, router, http.MethodPost, "/files/rename", RenameFileRequest{From: a, To: b})
	assert.Equal(t, http.StatusConflict, w.Code)

	w = do(t, router, http.MethodPost, "/files/rename", RenameFileRequest{From: a, To: c})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, RenameResult{From: a, To: c}, decode[RenameResult](t, w))

	w = do(t, router, http.MethodPost, "/files/rename", RenameFileRequest{From: a, To: c})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = do(t, router, http.MethodPost, "/files/rename", RenameFileRequest{From: c})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestMakeDir(t *testing.T) {
	router, vaultDir := testEnv(t, "")
	dir := filepath.Join(vaultDir, "projects", "2026")

	w := do(t, router, http.MethodPost, "/dirs", MakeDirRequest{Path: dir})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Equal(t, dir, decode[PathResponse](t, w).Path)
	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())

	w = do(t, router, http.MethodPost, "/dirs", MakeDirRequest{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	router, _ := testEnv(t, "secret123")
	req := httptest.NewRequest(http.MethodGet, "/vault/scan", nil)
	req.Header.Set("Authorization", "Bearer secret123")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAuthMiddleware_MissingToken(t *testing.T) {
	router, _ := testEnv(t, "secret123")
	w := do(t, router, http.MethodGet, "/vault/scan", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddleware_WrongToken(t *testing.T) {
	router, _ := testEnv(t, "secret123")
	req := httptest.NewRequest(http.MethodGet, "/greet", nil)
	req.Header.Set("Authorization", "Bearer wrong")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
