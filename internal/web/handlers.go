package web

import (
	"net/http"
	"net/url"

	"github.com/kavia-common/personal-notes-manager-17829-17842/internal/errs"
	"github.com/kavia-common/personal-notes-manager-17829-17842/internal/notes"
	"github.com/kavia-common/personal-notes-manager-17829-17842/internal/obs"
)

// Handler provides HTTP handlers for the notes web UI.
type Handler struct {
	renderer   *Renderer
	collection *notes.Collection
}

// NewHandler creates a new web handler.
func NewHandler(renderer *Renderer, collection *notes.Collection) *Handler {
	return &Handler{
		renderer:   renderer,
		collection: collection,
	}
}

// RegisterRoutes registers all web UI routes on the given mux.
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /{$}", h.handleIndex)
	mux.HandleFunc("GET /notes", h.handleList)
	mux.HandleFunc("POST /notes", h.handleCreate)
	mux.HandleFunc("GET /notes/{id}", h.handleSelect)
	mux.HandleFunc("POST /notes/{id}", h.handleUpdate)
	mux.HandleFunc("POST /notes/{id}/delete", h.handleDelete)
	mux.HandleFunc("POST /notes/{id}/duplicate", h.handleDuplicate)
}

// notesPage is the data passed to the notes/list.html template.
type notesPage struct {
	Notes      []notes.Note
	Selected   *notes.Note
	Query      string
	TotalCount int
}

func (h *Handler) handleIndex(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/notes", http.StatusSeeOther)
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	// Only an explicit q parameter changes the active query; plain
	// navigation keeps the current search.
	if r.URL.Query().Has("q") {
		h.collection.SetQuery(r.URL.Query().Get("q"))
	}
	h.renderNotes(w, r)
}

func (h *Handler) handleSelect(w http.ResponseWriter, r *http.Request) {
	// A stale id is harmless: selection stays where it was.
	h.collection.Select(r.PathValue("id"))
	h.renderNotes(w, r)
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	note, err := h.collection.Create(r.Context())
	if err != nil {
		h.failMutation(w, r, "create note", err)
		return
	}
	h.redirectToNote(w, r, note.ID)
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.renderer.RenderError(w, http.StatusBadRequest, "malformed form")
		return
	}

	// Only fields present in the form become part of the patch, so a
	// title-only form leaves content alone.
	var patch notes.Patch
	if r.PostForm.Has("title") {
		title := r.PostForm.Get("title")
		patch.Title = &title
	}
	if r.PostForm.Has("content") {
		content := r.PostForm.Get("content")
		patch.Content = &content
	}

	id := r.PathValue("id")
	if _, err := h.collection.Update(r.Context(), id, patch); err != nil {
		h.failMutation(w, r, "update note", err)
		return
	}
	h.redirectToNote(w, r, id)
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.collection.Delete(r.Context(), r.PathValue("id")); err != nil {
		h.failMutation(w, r, "delete note", err)
		return
	}
	http.Redirect(w, r, "/notes", http.StatusSeeOther)
}

func (h *Handler) handleDuplicate(w http.ResponseWriter, r *http.Request) {
	dup, err := h.collection.Duplicate(r.Context(), r.PathValue("id"))
	if err != nil {
		h.failMutation(w, r, "duplicate note", err)
		return
	}
	if dup == nil {
		// Stale id, nothing copied.
		http.Redirect(w, r, "/notes", http.StatusSeeOther)
		return
	}
	h.redirectToNote(w, r, dup.ID)
}

func (h *Handler) renderNotes(w http.ResponseWriter, r *http.Request) {
	filtered := h.collection.Filtered()
	page := notesPage{
		Notes:      filtered,
		Selected:   h.collection.Selected(),
		Query:      h.collection.Query(),
		TotalCount: h.collection.Len(),
	}

	if err := h.renderer.Render(w, "notes/list.html", page); err != nil {
		obs.From(r.Context()).With("pkg", "web").Error("render_failed", "error", err)
		h.renderer.RenderError(w, http.StatusInternalServerError, "failed to render page")
	}
}

func (h *Handler) redirectToNote(w http.ResponseWriter, r *http.Request, id string) {
	http.Redirect(w, r, "/notes/"+url.PathEscape(id), http.StatusSeeOther)
}

func (h *Handler) failMutation(w http.ResponseWriter, r *http.Request, op string, err error) {
	obs.From(r.Context()).With("pkg", "web").Error("mutation_failed", "op", op, "error", err)
	h.renderer.RenderError(w, errs.HTTPStatus(errs.CodeOf(err)), errs.MessageOf(err))
}
