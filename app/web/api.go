package web

import (
	"encoding/json"
	"errors"
	"net/http"

	log "github.com/go-pkgz/lgr"

	"github.com/umputun/jobsrc/app/enums"
	"github.com/umputun/jobsrc/app/persistence"
	"github.com/umputun/jobsrc/app/sources"
)

// createSourceRequest is the JSON body for POST /api/v1/sources
type createSourceRequest struct {
	Label string `json:"label"`
}

// deleteSourceResponse is the JSON response for DELETE /api/v1/sources/{id}
type deleteSourceResponse struct {
	Success bool                  `json:"success"`
	Source  persistence.JobSource `json:"source"`
}

// handleListSources returns job sources created by the caller
func (s *Server) handleListSources(w http.ResponseWriter, r *http.Request) {
	res, err := s.sources.ListForUser(r.Context(), userFromContext(r.Context()))
	if err != nil {
		s.writeSourcesError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, res)
}

// handleListAllSources returns every job source, no authentication required
func (s *Server) handleListAllSources(w http.ResponseWriter, r *http.Request) {
	res, err := s.sources.ListAll(r.Context())
	if err != nil {
		s.writeSourcesError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, res)
}

// handleCreateSource upserts job source by label
func (s *Server) handleCreateSource(w http.ResponseWriter, r *http.Request) {
	var req createSourceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeJSONError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	src, err := s.sources.CreateOrUpdate(r.Context(), userFromContext(r.Context()), req.Label)
	if err != nil {
		s.writeSourcesError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, src)
}

// handleDeleteSource deletes job source by id and returns the removed source
func (s *Server) handleDeleteSource(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		s.writeJSONError(w, http.StatusBadRequest, "source ID required")
		return
	}

	src, err := s.sources.DeleteByID(r.Context(), userFromContext(r.Context()), id)
	if err != nil {
		s.writeSourcesError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, deleteSourceResponse{Success: true, Source: src})
}

// writeSourcesError maps manager error to http status, the error message goes to the client as is
func (s *Server) writeSourcesError(w http.ResponseWriter, err error) {
	var e *sources.Error
	if !errors.As(err, &e) {
		log.Printf("[ERROR] unexpected sources error: %v", err)
		s.writeJSONError(w, http.StatusInternalServerError, "internal error")
		return
	}
	s.writeJSONError(w, statusFor(e.Kind), e.Message)
}

func statusFor(kind enums.ErrorKind) int {
	switch kind {
	case enums.ErrorKindAuthentication:
		return http.StatusUnauthorized
	case enums.ErrorKindValidation:
		return http.StatusBadRequest
	case enums.ErrorKindConflict:
		return http.StatusConflict
	case enums.ErrorKindNotFound:
		return http.StatusNotFound
	case enums.ErrorKindPathSecurity:
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

// writeJSON writes a JSON response
func (s *Server) writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("[WARN] failed to encode JSON response: %v", err)
	}
}

// writeJSONError writes a JSON error response
func (s *Server) writeJSONError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	resp := map[string]string{"error": message}
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		log.Printf("[WARN] failed to encode JSON error response: %v", err)
	}
}
