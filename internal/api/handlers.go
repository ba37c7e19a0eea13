package api

import (
	"errors"
	"log/slog"
	"net/http"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	json "github.com/goccy/go-json"

	"github.com/starford/acropad/internal/apperr"
	"github.com/starford/acropad/internal/noteservice"
)

const maxBodyBytes = 10 << 20

// Handler holds API route handlers.
type Handler struct {
	svc *noteservice.Service
}

// NewHandler creates a new Handler.
func NewHandler(svc *noteservice.Service) *Handler {
	return &Handler{svc: svc}
}

// Greet handles GET /api/greet.
//
//	@Summary		Liveness probe of the vault layer
//	@Tags			vault
//	@Produce		json
//	@Success		200	{object}	GreetResponse
//	@Router			/greet [get]
func (h *Handler) Greet(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, GreetResponse{Message: h.svc.Greet()})
}

// Scan handles GET /api/vault/scan.
//
//	@Summary		List note files under a vault root, sorted
//	@Tags			vault
//	@Produce		json
//	@Param			root	query		string	false	"Vault root (defaults to the configured vault)"
//	@Success		200		{object}	FileListResponse
//	@Failure		500		{object}	errResponse
//	@Security		BearerAuth
//	@Router			/vault/scan [get]
func (h *Handler) Scan(w http.ResponseWriter, r *http.Request) {
	root := h.svc.Root(r.URL.Query().Get("root"))
	files, err := h.svc.Scan(r.Context(), root)
	if err != nil {
		writeError(w, "scan", root, err)
		return
	}
	writeJSON(w, http.StatusOK, FileListResponse{Root: root, Files: files})
}

// Search handles GET /api/vault/search.
//
//	@Summary		Case-insensitive substring search over note contents
//	@Tags			vault
//	@Produce		json
//	@Param			root	query		string	false	"Vault root (defaults to the configured vault)"
//	@Param			q		query		string	true	"Substring to find; may be empty"
//	@Success		200		{object}	FileListResponse
//	@Failure		400		{object}	errResponse
//	@Security		BearerAuth
//	@Router			/vault/search [get]
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	if !q.Has("q") {
		writeJSON(w, http.StatusBadRequest, errorBody("query parameter 'q' is required"))
		return
	}
	root := h.svc.Root(q.Get("root"))
	files, err := h.svc.Search(r.Context(), root, q.Get("q"))
	if err != nil {
		writeError(w, "search", root, err)
		return
	}
	writeJSON(w, http.StatusOK, FileListResponse{Root: root, Files: files})
}

// ReadFile handles GET /api/files.
//
//	@Summary		Read a file's full text
//	@Tags			files
//	@Produce		json
//	@Param			path	query		string	true	"File path"
//	@Success		200		{object}	FileDetail
//	@Failure		404		{object}	errResponse
//	@Failure		422		{object}	errResponse
//	@Security		BearerAuth
//	@Router			/files [get]
func (h *Handler) ReadFile(w http.ResponseWriter, r *http.Request) {
	path := r.URL.Query().Get("path")
	if path == "" {
		writeJSON(w, http.StatusBadRequest, errorBody("path is required"))
		return
	}
	file, err := h.svc.ReadFile(r.Context(), path)
	if err != nil {
		writeError(w, "read", path, err)
		return
	}
	writeJSON(w, http.StatusOK, file)
}

// SaveFile handles PUT /api/files.
//
//	@Summary		Overwrite a file's full text
//	@Tags			files
//	@Accept			json
//	@Produce		json
//	@Param			body	body		SaveFileRequest	true	"File to write"
//	@Success		200		{object}	SaveResult
//	@Failure		400		{object}	errResponse
//	@Security		BearerAuth
//	@Router			/files [put]
func (h *Handler) SaveFile(w http.ResponseWriter, r *http.Request) {
	var req SaveFileRequest
	if !decodeBody(w, r, &req) {
		return
	}
	res, err := h.svc.SaveFile(r.Context(), req.Path, req.Content)
	if err != nil {
		writeError(w, "save", req.Path, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// RenderFile handles GET /api/files/render.
//
//	@Summary		Render a note to HTML
//	@Tags			files
//	@Produce		json
//	@Param			path	query		string	true	"File path"
//	@Success		200		{object}	RenderedFile
//	@Failure		404		{object}	errResponse
//	@Security		BearerAuth
//	@Router			/files/render [get]
func (h *Handler) RenderFile(w http.ResponseWriter, r *http.Request) {
	path := r.URL.Query().Get("path")
	if path == "" {
		writeJSON(w, http.StatusBadRequest, errorBody("path is required"))
		return
	}
	out, err := h.svc.RenderFile(r.Context(), path)
	if err != nil {
		writeError(w, "render", path, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

// CreateNote handles POST /api/files.
//
//	@Summary		Create a new note from the starter template
//	@Tags			files
//	@Accept			json
//	@Produce		json
//	@Param			body	body		CreateNoteRequest	true	"Where to create the note"
//	@Success		201		{object}	CreatedNote
//	@Failure		400		{object}	errResponse
//	@Failure		409		{object}	errResponse
//	@Security		BearerAuth
//	@Router			/files [post]
func (h *Handler) CreateNote(w http.ResponseWriter, r *http.Request) {
	var req CreateNoteRequest
	if !decodeBody(w, r, &req) {
		return
	}
	res, err := h.svc.CreateNote(r.Context(), req.Dir, req.Name)
	if err != nil {
		writeError(w, "create", req.Dir, err)
		return
	}
	writeJSON(w, http.StatusCreated, res)
}

// DeleteFile handles DELETE /api/files.
//
//	@Summary		Delete a file
//	@Tags			files
//	@Param			path	query	string	true	"File path"
//	@Success		204
//	@Failure		404		{object}	errResponse
//	@Security		BearerAuth
//	@Router			/files [delete]
func (h *Handler) DeleteFile(w http.ResponseWriter, r *http.Request) {
	path := r.URL.Query().Get("path")
	if path == "" {
		writeJSON(w, http.StatusBadRequest, errorBody("path is required"))
		return
	}
	if err := h.svc.DeleteFile(r.Context(), path); err != nil {
		writeError(w, "delete", path, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// RenameFile handles POST /api/files/rename.
//
//	@Summary		Rename a file without overwriting
//	@Tags			files
//	@Accept			json
//	@Produce		json
//	@Param			body	body		RenameFileRequest	true	"Source and destination"
//	@Success		200		{object}	RenameResult
//	@Failure		404		{object}	errResponse
//	@Failure		409		{object}	errResponse
//	@Security		BearerAuth
//	@Router			/files/rename [post]
func (h *Handler) RenameFile(w http.ResponseWriter, r *http.Request) {
	var req RenameFileRequest
	if !decodeBody(w, r, &req) {
		return
	}
	res, err := h.svc.RenameFile(r.Context(), req.From, req.To)
	if err != nil {
		writeError(w, "rename", req.From, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// MakeDir handles POST /api/dirs.
//
//	@Summary		Create a directory and its parents
//	@Tags			files
//	@Accept			json
//	@Produce		json
//	@Param			body	body		MakeDirRequest	true	"Directory to create"
//	@Success		201		{object}	PathResponse
//	@Security		BearerAuth
//	@Router			/dirs [post]
func (h *Handler) MakeDir(w http.ResponseWriter, r *http.Request) {
	var req MakeDirRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if err := h.svc.MakeDir(r.Context(), req.Path); err != nil {
		writeError(w, "mkdir", req.Path, err)
		return
	}
	writeJSON(w, http.StatusCreated, PathResponse{Path: req.Path})
}

// decodeBody reads a size-limited JSON body into req and validates it. On
// failure it writes a 400 response and returns false.
func decodeBody(w http.ResponseWriter, r *http.Request, req validation.Validatable) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return false
	}
	if err := req.Validate(); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody(err.Error()))
		return false
	}
	return true
}

// writeError maps vault error categories to HTTP statuses.
func writeError(w http.ResponseWriter, op, path string, err error) {
	switch {
	case errors.Is(err, apperr.ErrNotFound):
		writeJSON(w, http.StatusNotFound, errorBody("not found"))
	case errors.Is(err, apperr.ErrInvalidPath):
		writeJSON(w, http.StatusBadRequest, errorBody(err.Error()))
	case errors.Is(err, apperr.ErrExists):
		writeJSON(w, http.StatusConflict, errorBody("already exists"))
	case errors.Is(err, apperr.ErrInvalidEncoding):
		writeJSON(w, http.StatusUnprocessableEntity, errorBody("file is not valid UTF-8 text"))
	default:
		slog.Error(op+" failed", slog.String("path", path), slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
	}
}
