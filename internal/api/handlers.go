package api

import (
	"encoding/json"
	"net/http"

	"github.com/genomap/genomap/pkg/digest"
	"github.com/genomap/genomap/pkg/errors"
	"github.com/genomap/genomap/pkg/pipeline"
	"github.com/genomap/genomap/pkg/plot"
	"github.com/genomap/genomap/pkg/seqmap"
)

// renderRequest is the POST /render body. Options are the serializable
// subset of pipeline.Options; Source paths are rejected because the API
// never reads the server's filesystem.
type renderRequest struct {
	pipeline.Options
}

// renderResponse carries the layout plus rendered artifacts. Artifact bytes
// are base64 in JSON per encoding/json convention.
type renderResponse struct {
	RequestID   string              `json:"request_id"`
	RecordHash  string              `json:"record_hash"`
	Layout      plot.Layout         `json:"layout"`
	Artifacts   map[string][]byte   `json:"artifacts"`
	Diagnostics []seqmap.Diagnostic `json:"diagnostics,omitempty"`
	Stats       pipeline.Stats      `json:"stats"`
	CacheInfo   pipeline.CacheInfo  `json:"cache_info"`
}

// errorResponse is the JSON error envelope.
type errorResponse struct {
	RequestID string `json:"request_id"`
	Code      string `json:"code"`
	Error     string `json:"error"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleEnzymes lists the built-in enzyme set.
func (s *Server) handleEnzymes(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, digest.DefaultEnzymes())
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	var req renderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, r, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode request body"))
		return
	}
	if req.Source != "" {
		s.writeError(w, r, errors.New(errors.ErrCodeInvalidInput, "source paths are not accepted, send content"))
		return
	}
	if req.Content == "" {
		s.writeError(w, r, errors.New(errors.ErrCodeInvalidInput, "content is required"))
		return
	}

	result, err := s.runner.Execute(r.Context(), req.Options)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, renderResponse{
		RequestID:   RequestID(r.Context()),
		RecordHash:  result.RecordHash,
		Layout:      result.Layout,
		Artifacts:   result.Artifacts,
		Diagnostics: result.Diagnostics,
		Stats:       result.Stats,
		CacheInfo:   result.CacheInfo,
	})
}

// writeError maps error codes onto HTTP statuses.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	switch errors.GetCode(err) {
	case errors.ErrCodeInvalidInput, errors.ErrCodeInvalidRecord, errors.ErrCodeInvalidLocation,
		errors.ErrCodeInvalidFormat, errors.ErrCodeInvalidStyle, errors.ErrCodeInvalidView,
		errors.ErrCodeInvalidEnzyme, errors.ErrCodeEmptySequence:
		status = http.StatusBadRequest
	case errors.ErrCodeNotFound, errors.ErrCodeFileNotFound, errors.ErrCodeEnzymeNotFound:
		status = http.StatusNotFound
	}

	s.logger.Error("request failed",
		"id", RequestID(r.Context()),
		"code", errors.GetCode(err),
		"err", err)

	writeJSON(w, status, errorResponse{
		RequestID: RequestID(r.Context()),
		Code:      string(errors.GetCode(err)),
		Error:     errors.UserMessage(err),
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
