package http

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/vncsmyrnk/jarvis/internal/core/domain"
	"github.com/vncsmyrnk/jarvis/internal/core/ports"
	"github.com/vncsmyrnk/jarvis/internal/logging"
)

type NoteHandler struct {
	service ports.NoteService
	log     logging.Logger
}

func NewNoteHandler(service ports.NoteService, log logging.Logger) *NoteHandler {
	return &NoteHandler{
		service: service,
		log:     log,
	}
}

type noteRequest struct {
	Title   *string `json:"title"`
	Content *string `json:"content"`
}

type messageResponse struct {
	Message string `json:"message"`
}

// ListNotes godoc
// @Summary      Lists the caller's notes
// @Tags         notes
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.Note
// @Failure      401  {object}  errorResponse
// @Router       /notes [get]
func (h *NoteHandler) ListNotes(w http.ResponseWriter, r *http.Request) {
	owner, ok := h.owner(w, r)
	if !ok {
		return
	}

	notes, err := h.service.List(r.Context(), owner)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, notes)
}

// GetNote godoc
// @Summary      Returns one of the caller's notes
// @Tags         notes
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Note ID"
// @Success      200  {object}  domain.Note
// @Failure      404  {object}  errorResponse  "Note not found"
// @Router       /notes/{id} [get]
func (h *NoteHandler) GetNote(w http.ResponseWriter, r *http.Request) {
	owner, ok := h.owner(w, r)
	if !ok {
		return
	}
	id, ok := h.noteID(w, r)
	if !ok {
		return
	}

	note, err := h.service.Get(r.Context(), owner, id)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, note)
}

// CreateNote godoc
// @Summary      Creates a note owned by the caller
// @Tags         notes
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      noteRequest  true  "Title and content"
// @Success      201   {object}  domain.Note
// @Failure      422   {object}  errorResponse
// @Router       /notes [post]
func (h *NoteHandler) CreateNote(w http.ResponseWriter, r *http.Request) {
	owner, ok := h.owner(w, r)
	if !ok {
		return
	}

	var req noteRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, h.log, err)
		return
	}

	note, err := h.service.Create(r.Context(), owner, ports.CreateNoteInput{Title: req.Title, Content: req.Content})
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusCreated, note)
}

// UpdateNote godoc
// @Summary      Updates the given fields of a note
// @Description  Absent fields keep their value. The path id wins over any id in the body.
// @Tags         notes
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int          true  "Note ID"
// @Param        body  body      noteRequest  true  "Fields to change"
// @Success      200   {object}  domain.Note
// @Failure      404   {object}  errorResponse  "Note not found"
// @Router       /notes/{id} [put]
func (h *NoteHandler) UpdateNote(w http.ResponseWriter, r *http.Request) {
	owner, ok := h.owner(w, r)
	if !ok {
		return
	}
	id, ok := h.noteID(w, r)
	if !ok {
		return
	}

	var req noteRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, h.log, err)
		return
	}

	note, err := h.service.Update(r.Context(), owner, id, domain.NotePatch{Title: req.Title, Content: req.Content})
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, note)
}

// DeleteNote godoc
// @Summary      Deletes one of the caller's notes
// @Tags         notes
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Note ID"
// @Success      200  {object}  messageResponse
// @Failure      404  {object}  errorResponse  "Note not found"
// @Router       /notes/{id} [delete]
func (h *NoteHandler) DeleteNote(w http.ResponseWriter, r *http.Request) {
	owner, ok := h.owner(w, r)
	if !ok {
		return
	}
	id, ok := h.noteID(w, r)
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), owner, id); err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, messageResponse{Message: "Note deleted successfully"})
}

func (h *NoteHandler) owner(w http.ResponseWriter, r *http.Request) (int64, bool) {
	ident, ok := IdentityFromContext(r.Context())
	if !ok {
		writeError(w, r, h.log, domain.ErrUnauthenticated)
		return 0, false
	}
	return ident.ID, true
}

func (h *NoteHandler) noteID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, r, h.log, fmt.Errorf("%w: note id must be an integer", domain.ErrInvalidInput))
		return 0, false
	}
	return id, true
}
