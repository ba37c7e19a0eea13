package api

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/starford/acropad/internal/noteservice"
)

// SaveFileRequest is the request body for overwriting a file.
type SaveFileRequest struct {
	Path    string `json:"path" example:"/home/me/vault/notes/hello.md" validate:"required"`
	Content string `json:"content" example:"# Hello\nWorld"`
}

// Validate validates the request. Empty content is allowed.
func (r SaveFileRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Path, validation.Required),
	)
}

// CreateNoteRequest is the request body for creating a note. Both fields
// are optional: Dir defaults to the configured vault and an empty Name picks
// an "Untitled-<millis>.md" file.
type CreateNoteRequest struct {
	Dir  string `json:"dir" example:"/home/me/vault/ideas"`
	Name string `json:"name" example:"new-idea.md"`
}

// Validate validates the request.
func (r CreateNoteRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Length(0, 255)),
	)
}

// RenameFileRequest is the request body for renaming a file.
type RenameFileRequest struct {
	From string `json:"from" example:"/home/me/vault/old.md" validate:"required"`
	To   string `json:"to" example:"/home/me/vault/new.md" validate:"required"`
}

// Validate validates the request.
func (r RenameFileRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.From, validation.Required),
		validation.Field(&r.To, validation.Required),
	)
}

// MakeDirRequest is the request body for creating a directory.
type MakeDirRequest struct {
	Path string `json:"path" example:"/home/me/vault/projects" validate:"required"`
}

// Validate validates the request.
func (r MakeDirRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Path, validation.Required),
	)
}

// PathResponse echoes the path an operation acted on.
type PathResponse struct {
	Path string `json:"path"`
}

// GreetResponse is the liveness payload.
type GreetResponse struct {
	Message string `json:"message" example:"Hello from Go! Acropad vault access layer is active."`
}

// FileListResponse wraps the relative paths returned by scan and search.
type FileListResponse struct {
	Root  string   `json:"root" example:"./vault"`
	Files []string `json:"files" validate:"required"`
}

// FileDetail is the read response (aliased from the domain layer).
type FileDetail = noteservice.FileDetail

// SaveResult is the save response (aliased from the domain layer).
type SaveResult = noteservice.SaveResult

// RenderedFile is the render response (aliased from the domain layer).
type RenderedFile = noteservice.RenderedFile

// CreatedNote is the create response (aliased from the domain layer).
type CreatedNote = noteservice.CreatedNote

// RenameResult is the rename response (aliased from the domain layer).
type RenameResult = noteservice.RenameResult
