package mcp

import "github.com/modelcontextprotocol/go-sdk/mcp"

// ToolDefinitions returns the notes MCP tool definitions.
func ToolDefinitions() []*mcp.Tool {
	return []*mcp.Tool{
		{
			Name:        "note_list",
			Description: "List every note in order with a short content preview, line count, and updated timestamp. Use note_view to read a note's full content.",
			InputSchema: map[string]any{
				"type":       "object",
				"properties": map[string]any{},
			},
		},
		{
			Name:        "note_view",
			Description: "Read a note's full content by id. The response includes the title, content, total line count, and updated timestamp (epoch milliseconds).",
			InputSchema: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"id": map[string]any{
						"type":        "string",
						"description": "The unique identifier of the note to retrieve",
					},
				},
				"required": []string{"id"},
			},
		},
		{
			Name:        "note_create",
			Description: "Create a new note. The note is created with the default title and empty content, then the optional title and content are applied. The new note becomes the current selection. Returns the created note.",
			InputSchema: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"title": map[string]any{
						"type":        "string",
						"description": "Optional title for the note (defaults to \"Untitled Note\")",
					},
					"content": map[string]any{
						"type":        "string",
						"description": "Optional content/body of the note",
					},
				},
			},
		},
		{
			Name:        "note_update",
			Description: "Update a note's title and/or content. Pass 'title' to change the title, 'content' to replace the full body, or both; omitted fields are left unchanged. Updating refreshes the note's timestamp. Unknown ids are reported as not found. For surgical edits use note_edit instead.",
			InputSchema: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"id": map[string]any{
						"type":        "string",
						"description": "The unique identifier of the note to update",
					},
					"title": map[string]any{
						"type":        "string",
						"description": "The new title for the note (optional)",
					},
					"content": map[string]any{
						"type":        "string",
						"description": "The new content for the note (optional)",
					},
				},
				"required": []string{"id"},
			},
		},
		{
			Name:        "note_edit",
			Description: "Make a surgical text edit within a note using find-and-replace. Pass 'old_string' (the exact text to find) and 'new_string' (the replacement). The edit fails if old_string is not found, or matches multiple locations while 'replace_all' is false. Returns the updated note and the replacement count.",
			InputSchema: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"id": map[string]any{
						"type":        "string",
						"description": "The unique identifier of the note to edit",
					},
					"old_string": map[string]any{
						"type":        "string",
						"description": "The exact text to find in the note content",
					},
					"new_string": map[string]any{
						"type":        "string",
						"description": "The replacement text",
					},
					"replace_all": map[string]any{
						"type":        "boolean",
						"description": "Replace all occurrences of old_string (default false)",
					},
				},
				"required": []string{"id", "old_string", "new_string"},
			},
		},
		{
			Name:        "note_duplicate",
			Description: "Duplicate a note. The copy gets a fresh id, the source title suffixed with \" (Copy)\", and is placed immediately after the source note. The copy becomes the current selection. Returns the copy.",
			InputSchema: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"id": map[string]any{
						"type":        "string",
						"description": "The unique identifier of the note to duplicate",
					},
				},
				"required": []string{"id"},
			},
		},
		{
			Name:        "note_delete",
			Description: "Delete a note by id. Deleting the selected note moves the selection to the note now at the same position (or the new last note). Unknown ids are a no-op.",
			InputSchema: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"id": map[string]any{
						"type":        "string",
						"description": "The unique identifier of the note to delete",
					},
				},
				"required": []string{"id"},
			},
		},
		{
			Name:        "note_search",
			Description: "Search notes by case-insensitive substring match against title and content. Returns matching notes in collection order with previews. An empty query returns every note.",
			InputSchema: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"query": map[string]any{
						"type":        "string",
						"description": "The substring to search for",
					},
				},
				"required": []string{"query"},
			},
		},
	}
}
