package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/keyturn-crm/keyturn/internal/model"
)

func (s *Server) handleCreateContact(w http.ResponseWriter, r *http.Request) {
	var contact model.Contact
	if err := json.NewDecoder(r.Body).Decode(&contact); err != nil {
		writeBadRequestResponse(w, fmt.Sprintf("invalid request body: %v", err))
		return
	}
	if contact.Status == "" {
		contact.Status = "new"
	}

	if _, err := s.store.CreateContact(r.Context(), &contact); err != nil {
		writeBadRequestResponse(w, err.Error())
		return
	}
	writeJSONResponse(w, http.StatusCreated, contact)
}

func (s *Server) handleListContacts(w http.ResponseWriter, r *http.Request) {
	contacts, err := s.store.ListContacts(r.Context())
	if err != nil {
		writeErrorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}
	if contacts == nil {
		contacts = []model.Contact{}
	}
	writeJSONResponse(w, http.StatusOK, contacts)
}

func (s *Server) handleCreateProperty(w http.ResponseWriter, r *http.Request) {
	var property model.Property
	if err := json.NewDecoder(r.Body).Decode(&property); err != nil {
		writeBadRequestResponse(w, fmt.Sprintf("invalid request body: %v", err))
		return
	}
	if property.Country == "" {
		property.Country = "Canada"
	}
	if property.Status == "" {
		property.Status = "prospect"
	}

	if _, err := s.store.CreateProperty(r.Context(), &property); err != nil {
		writeBadRequestResponse(w, err.Error())
		return
	}
	writeJSONResponse(w, http.StatusCreated, property)
}

func (s *Server) handleListProperties(w http.ResponseWriter, r *http.Request) {
	properties, err := s.store.ListProperties(r.Context())
	if err != nil {
		writeErrorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}
	if properties == nil {
		properties = []model.Property{}
	}
	writeJSONResponse(w, http.StatusOK, properties)
}

func (s *Server) handleCreateTransaction(w http.ResponseWriter, r *http.Request) {
	var txn model.Transaction
	if err := json.NewDecoder(r.Body).Decode(&txn); err != nil {
		writeBadRequestResponse(w, fmt.Sprintf("invalid request body: %v", err))
		return
	}
	if txn.Side == "" {
		txn.Side = model.SideBuy
	}
	if txn.Stage == "" {
		txn.Stage = model.StageLead
	}

	if _, err := s.store.CreateTransaction(r.Context(), &txn); err != nil {
		writeBadRequestResponse(w, err.Error())
		return
	}
	writeJSONResponse(w, http.StatusCreated, txn)
}

func (s *Server) handleListTransactions(w http.ResponseWriter, r *http.Request) {
	transactions, err := s.store.ListTransactions(r.Context())
	if err != nil {
		writeErrorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}
	if transactions == nil {
		transactions = []model.Transaction{}
	}
	writeJSONResponse(w, http.StatusOK, transactions)
}

func (s *Server) handleSearchContactsByAttr(w http.ResponseWriter, r *http.Request) {
	key := r.URL.Query().Get("key")
	equals := r.URL.Query().Get("equals")
	if key == "" || equals == "" {
		writeBadRequestResponse(w, "key and equals query parameters are required")
		return
	}

	contacts, err := s.store.SearchContactsByAttr(r.Context(), key, equals)
	if err != nil {
		writeErrorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}
	if contacts == nil {
		contacts = []model.Contact{}
	}
	writeJSONResponse(w, http.StatusOK, contacts)
}

func (s *Server) handleSearchPropertiesByNumberAttr(w http.ResponseWriter, r *http.Request) {
	key := r.URL.Query().Get("key")
	if key == "" {
		writeBadRequestResponse(w, "key query parameter is required")
		return
	}
	gte, err := strconv.ParseFloat(r.URL.Query().Get("gte"), 64)
	if err != nil {
		writeBadRequestResponse(w, "gte query parameter must be a number")
		return
	}

	properties, err := s.store.SearchPropertiesByNumberAttr(r.Context(), key, gte)
	if err != nil {
		writeErrorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}
	if properties == nil {
		properties = []model.Property{}
	}
	writeJSONResponse(w, http.StatusOK, properties)
}
