// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/pdiddy/ir-outreach/internal/outreach"
	"github.com/pdiddy/ir-outreach/pkg/types"
)

const maxBodyBytes = 1 << 20

type errorResponse struct {
	Error             string           `json:"error"`
	Details           string           `json:"details,omitempty"`
	UpdatedTranscript types.Transcript `json:"updatedTranscript,omitempty"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleGenerate handles POST /api/generate-email.
func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	var in outreach.GenerateInput
	if !s.decode(w, r, &in) {
		return
	}
	out, err := s.svc.Generate(r.Context(), in)
	if err != nil {
		s.respondFailure(w, err, "Failed to generate email", nil)
		return
	}
	s.respondJSON(w, http.StatusOK, out)
}

// handleRefine handles POST /api/refine-email.
func (s *Server) handleRefine(w http.ResponseWriter, r *http.Request) {
	var in outreach.RefineInput
	if !s.decode(w, r, &in) {
		return
	}
	out, err := s.svc.Refine(r.Context(), in)
	if err != nil {
		var transcript types.Transcript
		if out != nil {
			transcript = out.UpdatedTranscript
		}
		s.respondFailure(w, err, "Failed to refine email", transcript)
		return
	}
	s.respondJSON(w, http.StatusOK, out)
}

// handleCompare handles POST /api/compare-email.
func (s *Server) handleCompare(w http.ResponseWriter, r *http.Request) {
	var in outreach.GenerateInput
	if !s.decode(w, r, &in) {
		return
	}
	out, err := s.svc.Compare(r.Context(), in)
	if err != nil {
		s.respondFailure(w, err, "Failed to compare prompt versions", nil)
		return
	}
	s.respondJSON(w, http.StatusOK, out)
}

// handlePromptInfo handles GET /api/prompt-info.
func (s *Server) handlePromptInfo(w http.ResponseWriter, _ *http.Request) {
	s.respondJSON(w, http.StatusOK, s.svc.PromptInfo())
}

// decode reads a JSON body into v. It writes a 400 and returns false on
// malformed input.
func (s *Server) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		s.respondJSON(w, http.StatusBadRequest, errorResponse{
			Error: fmt.Sprintf("invalid request body: %v", err),
		})
		return false
	}
	return true
}

// respondFailure maps validation errors to 400 and everything else to 500.
func (s *Server) respondFailure(w http.ResponseWriter, err error, summary string, transcript types.Transcript) {
	var ve *types.ValidationError
	if errors.As(err, &ve) {
		s.respondJSON(w, http.StatusBadRequest, errorResponse{Error: ve.Error()})
		return
	}
	s.log.WithError(err).Error(summary)
	s.respondJSON(w, http.StatusInternalServerError, errorResponse{
		Error:             summary,
		Details:           err.Error(),
		UpdatedTranscript: transcript,
	})
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.log.WithError(err).Error("failed to encode JSON response")
	}
}
