// Package mcp exposes the note collection to agents as MCP tools over the
// streamable HTTP transport.
package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/kavia-common/personal-notes-manager-17829-17842/internal/notes"
)

const listPreviewLines = 3

// Handler implements MCP tool call handling over the note collection.
type Handler struct {
	collection *notes.Collection
}

// NewHandler creates a new MCP handler.
func NewHandler(collection *notes.Collection) *Handler {
	return &Handler{collection: collection}
}

// createToolHandler returns a tool handler function for the given tool name.
func (h *Handler) createToolHandler(name string) func(ctx context.Context, req *mcp.CallToolRequest, args map[string]any) (*mcp.CallToolResult, any, error) {
	return func(ctx context.Context, req *mcp.CallToolRequest, args map[string]any) (*mcp.CallToolResult, any, error) {
		result, err := h.HandleToolCall(ctx, name, args)
		return result, nil, err
	}
}

// HandleToolCall routes tool calls to appropriate handlers.
func (h *Handler) HandleToolCall(ctx context.Context, name string, arguments map[string]any) (*mcp.CallToolResult, error) {
	switch name {
	case "note_list":
		return h.handleNoteList()
	case "note_view":
		return h.handleNoteView(arguments)
	case "note_create":
		return h.handleNoteCreate(ctx, arguments)
	case "note_update":
		return h.handleNoteUpdate(ctx, arguments)
	case "note_edit":
		return h.handleNoteEdit(ctx, arguments)
	case "note_duplicate":
		return h.handleNoteDuplicate(ctx, arguments)
	case "note_delete":
		return h.handleNoteDelete(ctx, arguments)
	case "note_search":
		return h.handleNoteSearch(arguments)
	default:
		return newToolResultError(fmt.Sprintf("unknown tool: %s", name)), nil
	}
}

// newToolResultText creates a successful tool result with text content.
func newToolResultText(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: text},
		},
	}
}

// newToolResultError creates a tool result indicating an error.
func newToolResultError(message string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: message},
		},
		IsError: true,
	}
}

func marshalToolJSON(value any) string {
	data, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return fmt.Sprintf(`{"error":"failed to marshal response","detail":%q}`, err.Error())
	}
	return string(data)
}

// noteListItem is a note summarized for list and search responses.
type noteListItem struct {
	ID         string `json:"id"`
	Title      string `json:"title"`
	Preview    string `json:"preview"`
	TotalLines int    `json:"total_lines"`
	UpdatedAt  int64  `json:"updatedAt"`
	Selected   bool   `json:"selected,omitempty"`
}

// noteViewResult is a full note plus derived metadata.
type noteViewResult struct {
	ID         string `json:"id"`
	Title      string `json:"title"`
	Content    string `json:"content"`
	TotalLines int    `json:"total_lines"`
	UpdatedAt  int64  `json:"updatedAt"`
}

func listItem(n notes.Note, selectedID string) noteListItem {
	return noteListItem{
		ID:         n.ID,
		Title:      n.Title,
		Preview:    notes.ContentPreview(n.Content, listPreviewLines),
		TotalLines: notes.CountLines(n.Content),
		UpdatedAt:  n.UpdatedAt,
		Selected:   n.ID == selectedID,
	}
}

func viewResult(n notes.Note) noteViewResult {
	return noteViewResult{
		ID:         n.ID,
		Title:      n.Title,
		Content:    n.Content,
		TotalLines: notes.CountLines(n.Content),
		UpdatedAt:  n.UpdatedAt,
	}
}

func (h *Handler) handleNoteList() (*mcp.CallToolResult, error) {
	all := h.collection.Notes()
	selectedID := h.collection.SelectedID()

	items := make([]noteListItem, 0, len(all))
	for _, n := range all {
		items = append(items, listItem(n, selectedID))
	}

	return newToolResultText(marshalToolJSON(map[string]any{
		"notes":       items,
		"total_count": len(items),
	})), nil
}

func (h *Handler) handleNoteView(args map[string]any) (*mcp.CallToolResult, error) {
	id, ok := args["id"].(string)
	if !ok {
		return newToolResultError("id must be a string"), nil
	}

	note := h.collection.Get(id)
	if note == nil {
		return newToolResultError(fmt.Sprintf("note not found: %s", id)), nil
	}
	return newToolResultText(marshalToolJSON(viewResult(*note))), nil
}

func (h *Handler) handleNoteCreate(ctx context.Context, args map[string]any) (*mcp.CallToolResult, error) {
	note, err := h.collection.Create(ctx)
	if err != nil {
		return newToolResultError(fmt.Sprintf("failed to create note: %v", err)), nil
	}

	patch := patchFromArgs(args)
	if patch.Title != nil || patch.Content != nil {
		note, err = h.collection.Update(ctx, note.ID, patch)
		if err != nil {
			return newToolResultError(fmt.Sprintf("failed to apply initial fields: %v", err)), nil
		}
	}

	return newToolResultText(marshalToolJSON(viewResult(*note))), nil
}

func (h *Handler) handleNoteUpdate(ctx context.Context, args map[string]any) (*mcp.CallToolResult, error) {
	id, ok := args["id"].(string)
	if !ok {
		return newToolResultError("id must be a string"), nil
	}

	updated, err := h.collection.Update(ctx, id, patchFromArgs(args))
	if err != nil {
		return newToolResultError(fmt.Sprintf("failed to update note: %v", err)), nil
	}
	if updated == nil {
		return newToolResultError(fmt.Sprintf("note not found: %s", id)), nil
	}
	return newToolResultText(marshalToolJSON(viewResult(*updated))), nil
}

func (h *Handler) handleNoteEdit(ctx context.Context, args map[string]any) (*mcp.CallToolResult, error) {
	id, ok := args["id"].(string)
	if !ok {
		return newToolResultError("id must be a string"), nil
	}
	oldStr, ok := args["old_string"].(string)
	if !ok {
		return newToolResultError("old_string must be a string"), nil
	}
	newStr, ok := args["new_string"].(string)
	if !ok {
		return newToolResultError("new_string must be a string"), nil
	}
	replaceAll, _ := args["replace_all"].(bool)

	updated, replacements, err := h.collection.ReplaceInContent(ctx, id, oldStr, newStr, replaceAll)
	if errors.Is(err, notes.ErrNoMatch) {
		return newToolResultError(fmt.Sprintf("%v. Use note_view to see the current content.", err)), nil
	}
	if errors.Is(err, notes.ErrAmbiguousMatch) {
		return newToolResultError(fmt.Sprintf("%v. Set replace_all to true, or provide more surrounding context.", err)), nil
	}
	if err != nil {
		return newToolResultError(fmt.Sprintf("failed to edit note: %v", err)), nil
	}

	return newToolResultText(marshalToolJSON(map[string]any{
		"note":         viewResult(*updated),
		"replacements": replacements,
	})), nil
}

func (h *Handler) handleNoteDuplicate(ctx context.Context, args map[string]any) (*mcp.CallToolResult, error) {
	id, ok := args["id"].(string)
	if !ok {
		return newToolResultError("id must be a string"), nil
	}

	dup, err := h.collection.Duplicate(ctx, id)
	if err != nil {
		return newToolResultError(fmt.Sprintf("failed to duplicate note: %v", err)), nil
	}
	if dup == nil {
		return newToolResultError(fmt.Sprintf("note not found: %s", id)), nil
	}
	return newToolResultText(marshalToolJSON(viewResult(*dup))), nil
}

func (h *Handler) handleNoteDelete(ctx context.Context, args map[string]any) (*mcp.CallToolResult, error) {
	id, ok := args["id"].(string)
	if !ok {
		return newToolResultError("id must be a string"), nil
	}

	if err := h.collection.Delete(ctx, id); err != nil {
		return newToolResultError(fmt.Sprintf("failed to delete note: %v", err)), nil
	}
	return newToolResultText(marshalToolJSON(map[string]any{
		"deleted":     id,
		"total_count": h.collection.Len(),
	})), nil
}

func (h *Handler) handleNoteSearch(args map[string]any) (*mcp.CallToolResult, error) {
	query, ok := args["query"].(string)
	if !ok {
		return newToolResultError("query must be a string"), nil
	}

	// Search here is a read-only view; it does not change the query the
	// web UI is displaying.
	matches := notes.Filter(h.collection.Notes(), query)
	selectedID := h.collection.SelectedID()

	items := make([]noteListItem, 0, len(matches))
	for _, n := range matches {
		items = append(items, listItem(n, selectedID))
	}

	return newToolResultText(marshalToolJSON(map[string]any{
		"query":       query,
		"notes":       items,
		"total_count": len(items),
	})), nil
}

func patchFromArgs(args map[string]any) notes.Patch {
	var patch notes.Patch
	if title, ok := args["title"].(string); ok {
		patch.Title = &title
	}
	if content, ok := args["content"].(string); ok {
		patch.Content = &content
	}
	return patch
}
