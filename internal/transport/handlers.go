package transport

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rpggio/keydeck/internal/domain/board"
	"github.com/rpggio/keydeck/internal/domain/project"
)

// FilterRequest updates the board filter. Omitted fields are left alone.
type FilterRequest struct {
	Query  *string `json:"query,omitempty"`
	Status *string `json:"status,omitempty"`
}

// DialogRequest opens or closes the creation dialog.
type DialogRequest struct {
	Open bool `json:"open"`
}

// DraftRequest edits the draft. Omitted fields are left alone.
type DraftRequest struct {
	Name   *string `json:"name,omitempty"`
	APIKey *string `json:"api_key,omitempty"`
}

// ToggleRequest flips one integration in the draft.
type ToggleRequest struct {
	Integration string `json:"integration"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (s *Server) handleIntegrations(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, project.Catalog())
}

func (s *Server) handleOpenBoard(w http.ResponseWriter, r *http.Request) {
	view, err := s.boards.Open(r.Context())
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, view)
}

func (s *Server) handleGetBoard(w http.ResponseWriter, r *http.Request) {
	view, err := s.boards.View(r.Context(), chi.URLParam(r, "boardID"))
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (s *Server) handleCloseBoard(w http.ResponseWriter, r *http.Request) {
	if err := s.boards.Close(r.Context(), chi.URLParam(r, "boardID")); err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleSetFilter(w http.ResponseWriter, r *http.Request) {
	var req FilterRequest
	if !decodeBody(w, r, &req) {
		return
	}

	var actions []board.Action
	if req.Query != nil {
		actions = append(actions, board.SetQuery(*req.Query))
	}
	if req.Status != nil {
		actions = append(actions, board.SetStatus(*req.Status))
	}
	s.dispatch(w, r, actions...)
}

func (s *Server) handleSetDialog(w http.ResponseWriter, r *http.Request) {
	var req DialogRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Open {
		s.dispatch(w, r, board.OpenDialog())
		return
	}
	s.dispatch(w, r, board.CloseDialog())
}

func (s *Server) handleEditDraft(w http.ResponseWriter, r *http.Request) {
	var req DraftRequest
	if !decodeBody(w, r, &req) {
		return
	}

	var actions []board.Action
	if req.Name != nil {
		actions = append(actions, board.EditName(*req.Name))
	}
	if req.APIKey != nil {
		actions = append(actions, board.EditAPIKey(*req.APIKey))
	}
	s.dispatch(w, r, actions...)
}

func (s *Server) handleToggleIntegration(w http.ResponseWriter, r *http.Request) {
	var req ToggleRequest
	if !decodeBody(w, r, &req) {
		return
	}
	s.dispatch(w, r, board.ToggleIntegration(req.Integration))
}

func (s *Server) handleSubmit(w http.ResponseWriter, r *http.Request) {
	result, err := s.boards.Submit(r.Context(), chi.URLParam(r, "boardID"))
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleGetProject(w http.ResponseWriter, r *http.Request) {
	proj, err := s.projects.Get(r.Context(), chi.URLParam(r, "boardID"), chi.URLParam(r, "projectID"))
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, proj)
}

func (s *Server) dispatch(w http.ResponseWriter, r *http.Request, actions ...board.Action) {
	view, err := s.boards.Dispatch(r.Context(), chi.URLParam(r, "boardID"), actions...)
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func decodeBody(w http.ResponseWriter, r *http.Request, out any) bool {
	if err := json.NewDecoder(r.Body).Decode(out); err != nil {
		writeError(w, http.StatusBadRequest, ErrCodeInvalidRequest, "invalid request body")
		return false
	}
	return true
}
