package server

import (
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/jonathan/resume-builder/internal/db"
	"github.com/jonathan/resume-builder/internal/types"
)

// DraftListResponse is the response for GET /drafts
type DraftListResponse struct {
	Drafts []types.ResumeDraft `json:"drafts"`
	Count  int                 `json:"count"`
}

// requireDrafts writes 503 and returns false when no draft store is configured.
func (s *Server) requireDrafts(w http.ResponseWriter, r *http.Request) bool {
	if s.drafts == nil {
		s.failure(w, r, &ErrUnavailable{Feature: "drafts"})
		return false
	}
	return true
}

func parseDraftID(r *http.Request) (uuid.UUID, error) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		return uuid.Nil, &ErrValidation{Field: "id", Message: "must be a UUID"}
	}
	return id, nil
}

// loadDraft fetches the draft named in the path, mapping a missing row to ErrNotFound.
func (s *Server) loadDraft(r *http.Request) (*types.ResumeDraft, error) {
	id, err := parseDraftID(r)
	if err != nil {
		return nil, err
	}
	draft, err := s.drafts.GetDraft(r.Context(), id)
	if err != nil {
		return nil, err
	}
	if draft == nil {
		return nil, &ErrNotFound{Resource: "draft", ID: id.String()}
	}
	return draft, nil
}

// handleSaveDraft saves the live document as a draft
func (s *Server) handleSaveDraft(w http.ResponseWriter, r *http.Request) {
	if !s.requireDrafts(w, r) {
		return
	}

	var req types.SaveDraftRequest
	if r.ContentLength != 0 {
		if err := decodeBody(w, r, &req); err != nil {
			s.failure(w, r, err)
			return
		}
	}
	if err := req.Validate(); err != nil {
		s.failure(w, r, &ErrValidation{Field: "draft", Message: err.Error()})
		return
	}

	input := &db.DraftInput{
		ID:          req.ID,
		Title:       req.Title,
		Payload:     s.workspace.Snapshot(),
		TemplateKey: req.TemplateKey,
		ATSScore:    req.ATSScore,
	}
	if input.TemplateKey == "" {
		input.TemplateKey = s.workspace.TemplateKey()
	}
	if input.ATSScore == nil {
		if rep := s.workspace.Report(); rep != nil {
			score := rep.ATSScore
			input.ATSScore = &score
		}
	}

	draft, err := s.drafts.SaveDraft(r.Context(), input)
	if err != nil {
		s.failure(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusCreated, draft)
}

// handleListDrafts lists recent drafts
func (s *Server) handleListDrafts(w http.ResponseWriter, r *http.Request) {
	if !s.requireDrafts(w, r) {
		return
	}

	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			s.failure(w, r, &ErrValidation{Field: "limit", Message: "must be a non-negative integer"})
			return
		}
		limit = n
	}

	drafts, err := s.drafts.ListDrafts(r.Context(), limit)
	if err != nil {
		s.failure(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, DraftListResponse{Drafts: drafts, Count: len(drafts)})
}

// handleGetDraft returns one draft
func (s *Server) handleGetDraft(w http.ResponseWriter, r *http.Request) {
	if !s.requireDrafts(w, r) {
		return
	}
	draft, err := s.loadDraft(r)
	if err != nil {
		s.failure(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, draft)
}

// handleDeleteDraft deletes one draft
func (s *Server) handleDeleteDraft(w http.ResponseWriter, r *http.Request) {
	if !s.requireDrafts(w, r) {
		return
	}
	id, err := parseDraftID(r)
	if err != nil {
		s.failure(w, r, err)
		return
	}
	deleted, err := s.drafts.DeleteDraft(r.Context(), id)
	if err != nil {
		s.failure(w, r, err)
		return
	}
	if !deleted {
		s.failure(w, r, &ErrNotFound{Resource: "draft", ID: id.String()})
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleRestoreDraft makes a saved draft the live document
func (s *Server) handleRestoreDraft(w http.ResponseWriter, r *http.Request) {
	if !s.requireDrafts(w, r) {
		return
	}
	draft, err := s.loadDraft(r)
	if err != nil {
		s.failure(w, r, err)
		return
	}
	if err := s.workspace.Restore(r.Context(), draft.Payload, draft.TemplateKey); err != nil {
		s.failure(w, r, err)
		return
	}
	s.stateResponse(w, http.StatusOK, s.workspace.Snapshot())
}
