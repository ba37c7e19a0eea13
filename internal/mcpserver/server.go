// Package mcpserver provides an MCP (Model Context Protocol) server that
// exposes the vault access layer as tools over stdio.
package mcpserver

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/starford/acropad/internal/apperr"
	"github.com/starford/acropad/internal/noteservice"
)

// Server wraps the MCP server with vault tools.
type Server struct {
	mcp *server.MCPServer
	svc *noteservice.Service
}

// New creates a new MCP server with all vault tools registered.
func New(svc *noteservice.Service, version string) *Server {
	s := &Server{svc: svc}

	s.mcp = server.NewMCPServer(
		"Acropad",
		version,
		server.WithToolCapabilities(false),
	)

	s.mcp.AddTool(mcp.NewTool("greet",
		mcp.WithDescription("Confirm the vault access layer is reachable."),
	), s.greet)

	s.mcp.AddTool(mcp.NewTool("scan_vault",
		mcp.WithDescription("List markdown and text notes under a vault directory, sorted by relative path."),
		mcp.WithString("path", mcp.Description("Vault root directory (defaults to the configured vault)")),
	), s.scanVault)

	s.mcp.AddTool(mcp.NewTool("read_file",
		mcp.WithDescription("Read the full UTF-8 text of a file."),
		mcp.WithString("path", mcp.Required(), mcp.Description("Path to the file")),
	), s.readFile)

	s.mcp.AddTool(mcp.NewTool("save_file",
		mcp.WithDescription("Overwrite a file with the given text, creating it if absent. "+
			"The parent directory must already exist."),
		mcp.WithString("path", mcp.Required(), mcp.Description("Path to the file")),
		mcp.WithString("content", mcp.Required(), mcp.Description("Full new content; may be empty")),
	), s.saveFile)

	s.mcp.AddTool(mcp.NewTool("search_vault",
		mcp.WithDescription("Find notes whose content contains the query, ignoring case. "+
			"An empty query matches every readable note."),
		mcp.WithString("vault_path", mcp.Description("Vault root directory (defaults to the configured vault)")),
		mcp.WithString("query", mcp.Required(), mcp.Description("Substring to search for")),
	), s.searchVault)

	s.mcp.AddTool(mcp.NewTool("render_file",
		mcp.WithDescription("Render a markdown or text note to HTML."),
		mcp.WithString("path", mcp.Required(), mcp.Description("Path to the file")),
	), s.renderFile)

	s.mcp.AddTool(mcp.NewTool("create_note",
		mcp.WithDescription("Create a new note from the starter template. Never overwrites an existing file."),
		mcp.WithString("dir", mcp.Description("Directory for the note (defaults to the configured vault); created if missing")),
		mcp.WithString("name", mcp.Description("File name such as idea.md (defaults to Untitled-<millis>.md)")),
	), s.createNote)

	s.mcp.AddTool(mcp.NewTool("delete_file",
		mcp.WithDescription("Delete a single file. Directories are refused."),
		mcp.WithString("path", mcp.Required(), mcp.Description("Path to the file")),
	), s.deleteFile)

	s.mcp.AddTool(mcp.NewTool("rename_file",
		mcp.WithDescription("Rename or move a file. Fails if the destination already exists."),
		mcp.WithString("from", mcp.Required(), mcp.Description("Current path")),
		mcp.WithString("to", mcp.Required(), mcp.Description("New path; its parent directory must exist")),
	), s.renameFile)

	s.mcp.AddTool(mcp.NewTool("make_dir",
		mcp.WithDescription("Create a directory and any missing parents."),
		mcp.WithString("path", mcp.Required(), mcp.Description("Directory path")),
	), s.makeDir)

	return s
}

// Listen serves MCP requests read from in and writes responses to out until
// in is exhausted or ctx is cancelled.
func (s *Server) Listen(ctx context.Context, in io.Reader, out io.Writer) error {
	return server.NewStdioServer(s.mcp).Listen(ctx, in, out)
}

// MCPServer returns the underlying server for testing.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcp
}

func (s *Server) greet(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultText(s.svc.Greet()), nil
}

func (s *Server) scanVault(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	files, err := s.svc.Scan(ctx, req.GetString("path", ""))
	if err != nil {
		return toolError(err), nil
	}
	return mcp.NewToolResultText(strings.Join(files, "\n")), nil
}

func (s *Server) readFile(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := req.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	file, err := s.svc.ReadFile(ctx, path)
	if err != nil {
		return toolError(err), nil
	}
	return mcp.NewToolResultText(file.Content), nil
}

func (s *Server) saveFile(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := req.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	content, err := req.RequireString("content")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	res, err := s.svc.SaveFile(ctx, path, content)
	if err != nil {
		return toolError(err), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("saved: %s (%s)", res.Path, res.Checksum)), nil
}

func (s *Server) searchVault(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, err := req.RequireString("query")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	files, err := s.svc.Search(ctx, req.GetString("vault_path", ""), query)
	if err != nil {
		return toolError(err), nil
	}
	return mcp.NewToolResultText(strings.Join(files, "\n")), nil
}

func (s *Server) renderFile(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := req.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	out, err := s.svc.RenderFile(ctx, path)
	if err != nil {
		return toolError(err), nil
	}
	return mcp.NewToolResultText(out.HTML), nil
}

func (s *Server) createNote(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	res, err := s.svc.CreateNote(ctx, req.GetString("dir", ""), req.GetString("name", ""))
	if err != nil {
		return toolError(err), nil
	}
	return mcp.NewToolResultText(res.Path), nil
}

func (s *Server) deleteFile(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := req.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if err := s.svc.DeleteFile(ctx, path); err != nil {
		return toolError(err), nil
	}
	return mcp.NewToolResultText("deleted: " + path), nil
}

func (s *Server) renameFile(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	from, err := req.RequireString("from")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	to, err := req.RequireString("to")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	res, err := s.svc.RenameFile(ctx, from, to)
	if err != nil {
		return toolError(err), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("renamed: %s -> %s", res.From, res.To)), nil
}

func (s *Server) makeDir(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := req.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if err := s.svc.MakeDir(ctx, path); err != nil {
		return toolError(err), nil
	}
	return mcp.NewToolResultText("created: " + path), nil
}

// toolError reports err to the model with its category up front.
func toolError(err error) *mcp.CallToolResult {
	switch {
	case errors.Is(err, apperr.ErrNotFound):
		return mcp.NewToolResultError("not found: " + err.Error())
	case errors.Is(err, apperr.ErrInvalidEncoding):
		return mcp.NewToolResultError("invalid encoding: " + err.Error())
	case errors.Is(err, apperr.ErrInvalidPath):
		return mcp.NewToolResultError("invalid path: " + err.Error())
	case errors.Is(err, apperr.ErrExists):
		return mcp.NewToolResultError("already exists: " + err.Error())
	default:
		return mcp.NewToolResultError(err.Error())
	}
}
