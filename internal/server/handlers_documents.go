package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/keyturn-crm/keyturn/internal/common"
	"github.com/keyturn-crm/keyturn/internal/model"
)

// maxUploadBytes caps document uploads at 32 MiB.
const maxUploadBytes = 32 << 20

// handleUploadDocument accepts a multipart upload: a "file" part plus
// optional contact_id/property_id/transaction_id links and an attrs JSON
// form field.
func (s *Server) handleUploadDocument(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeBadRequestResponse(w, fmt.Sprintf("invalid multipart form: %v", err))
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeBadRequestResponse(w, "file form field is required")
		return
	}
	defer func() { _ = file.Close() }()

	data, err := io.ReadAll(file)
	if err != nil {
		writeErrorResponse(w, http.StatusInternalServerError, fmt.Sprintf("failed to read upload: %v", err))
		return
	}

	attrs := map[string]any{}
	if raw := r.FormValue("attrs"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &attrs); err != nil {
			writeBadRequestResponse(w, "attrs must be valid JSON")
			return
		}
	}

	doc := &model.Document{
		Filename: header.Filename,
		MimeType: header.Header.Get("Content-Type"),
		Attrs:    attrs,
		Data:     data,
	}
	for field, dest := range map[string]**int64{
		"contact_id":     &doc.ContactID,
		"property_id":    &doc.PropertyID,
		"transaction_id": &doc.TransactionID,
	} {
		if raw := r.FormValue(field); raw != "" {
			id, err := strconv.ParseInt(raw, 10, 64)
			if err != nil {
				writeBadRequestResponse(w, fmt.Sprintf("%s must be an integer", field))
				return
			}
			*dest = &id
		}
	}

	id, err := s.store.SaveDocument(r.Context(), doc)
	if err != nil {
		writeErrorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSONResponse(w, http.StatusCreated, map[string]any{
		"id":       id,
		"filename": doc.Filename,
		"size":     doc.Size,
	})
}

func (s *Server) handleListDocuments(w http.ResponseWriter, r *http.Request) {
	docs, err := s.store.ListDocuments(r.Context())
	if err != nil {
		writeErrorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}
	if docs == nil {
		docs = []model.Document{}
	}
	writeJSONResponse(w, http.StatusOK, docs)
}

// handleDownloadDocument streams the stored bytes with the stored MIME type.
func (s *Server) handleDownloadDocument(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	doc, err := s.store.GetDocument(r.Context(), id)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			writeErrorResponse(w, http.StatusNotFound, err.Error())
			return
		}
		writeErrorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	w.Header().Set("Content-Type", doc.MimeType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", doc.Filename))
	w.Header().Set("Content-Length", strconv.FormatInt(doc.Size, 10))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(doc.Data)
}
