package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/keyturn-crm/keyturn/internal/intake"
	"github.com/keyturn-crm/keyturn/internal/model"
)

// IngestRequest carries the raw note to classify.
type IngestRequest struct {
	Text string `json:"text"`
}

// ConfirmRequest carries the human's choice plus the echoed draft.
type ConfirmRequest struct {
	Choice string      `json:"choice"`
	Draft  model.Draft `json:"draft"`
}

// handleIngest runs the propose half of the intake protocol. It always
// answers with a question; nothing is persisted here.
func (s *Server) handleIngest(w http.ResponseWriter, r *http.Request) {
	var req IngestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequestResponse(w, fmt.Sprintf("invalid request body: %v", err))
		return
	}

	decision := s.workflow.Propose(req.Text)
	writeJSONResponse(w, http.StatusOK, decision)
}

// handleIngestConfirm runs the commit half. Rejected commits come back as
// 400 with the workflow's fixed reason; store failures are 500.
func (s *Server) handleIngestConfirm(w http.ResponseWriter, r *http.Request) {
	var req ConfirmRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequestResponse(w, fmt.Sprintf("invalid request body: %v", err))
		return
	}

	decision, err := s.workflow.Commit(r.Context(), req.Choice, req.Draft)
	if err != nil {
		if errors.Is(err, intake.ErrInvalidChoice) || errors.Is(err, intake.ErrTransactionRefs) {
			writeBadRequestResponse(w, err.Error())
			return
		}
		writeErrorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSONResponse(w, http.StatusOK, decision)
}
