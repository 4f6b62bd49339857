// SPDX-License-Identifier: GPL-3.0-or-later
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/tkarrer/mailtriage/domain"
	"github.com/tkarrer/mailtriage/log"
	"github.com/tkarrer/mailtriage/triage"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
)

// Server is a thin pass-through layer over the engine. No triage logic lives
// here.
type Server struct {
	engine *triage.Engine
	router *mux.Router

	l *logrus.Logger
}

func NewServer(engine *triage.Engine) *Server {
	s := &Server{
		engine: engine,
		router: mux.NewRouter(),
		l:      log.Logger(log.LOG_API),
	}

	s.router.Use(s.requestLogger)
	s.router.HandleFunc("/messages", s.listMessages).Methods(http.MethodGet)
	s.router.HandleFunc("/messages/{id}/classification", s.updateClassification).Methods(http.MethodPost)
	s.router.HandleFunc("/bulk/apply", s.bulkApply).Methods(http.MethodPost)
	s.router.HandleFunc("/analyze/holistic", s.analyzeHolistically).Methods(http.MethodPost)
	s.router.HandleFunc("/folders", s.listFolders).Methods(http.MethodGet)
	s.router.HandleFunc("/conversations/{id}", s.getConversation).Methods(http.MethodGet)

	return s
}

func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) ListenAndServe(addr string) error {
	s.l.WithField("addr", addr).Info("Listening")
	return http.ListenAndServe(addr, s.router)
}

func (s *Server) listMessages(w http.ResponseWriter, r *http.Request) {
	folder := r.URL.Query().Get("folder")
	source := r.URL.Query().Get("source")
	limit := queryInt(r, "limit", 50)
	offset := queryInt(r, "offset", 0)

	messages, total, err := s.engine.GetEnrichedMessages(r.Context(), folder, limit, offset, source)
	if err != nil {
		s.writeError(w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, map[string]interface{}{
		"messages": messages,
		"total":    total,
	})
}

func (s *Server) updateClassification(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	request := struct {
		Category  string `json:"category"`
		Propagate bool   `json:"propagate"`
	}{}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		s.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	if request.Category == "" {
		s.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "category is required"})
		return
	}

	outcome, err := s.engine.UpdateClassification(r.Context(), id, request.Category, request.Propagate)
	if err != nil {
		s.writeError(w, err)
		return
	}

	response := map[string]interface{}{
		"id":                   id,
		"category":             request.Category,
		"propagationAttempted": outcome.Attempted,
	}
	if outcome.Err != nil {
		response["propagationError"] = outcome.Err.Error()
	}

	s.writeJSON(w, http.StatusOK, response)
}

func (s *Server) bulkApply(w http.ResponseWriter, r *http.Request) {
	request := struct {
		IDs []string `json:"ids"`
	}{}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		s.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	result, err := s.engine.BulkApply(r.Context(), request.IDs)
	if err != nil {
		s.writeError(w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, result)
}

func (s *Server) analyzeHolistically(w http.ResponseWriter, r *http.Request) {
	request := struct {
		IDs []string `json:"ids"`
	}{}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		s.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	result, err := s.engine.AnalyzeHolistically(r.Context(), request.IDs)
	if err != nil {
		s.writeError(w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, result)
}

func (s *Server) listFolders(w http.ResponseWriter, r *http.Request) {
	folders, err := s.engine.Folders(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, map[string]interface{}{"folders": folders})
}

func (s *Server) getConversation(w http.ResponseWriter, r *http.Request) {
	messages, err := s.engine.Conversation(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		s.writeError(w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, map[string]interface{}{"messages": messages})
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError

	parseErr := &domain.AIResponseParseError{}
	switch {
	case errors.Is(err, domain.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, domain.ErrSourceUnavailable), errors.Is(err, domain.ErrAIClientNotConfigured):
		status = http.StatusServiceUnavailable
	case errors.Is(err, domain.ErrNoValidInput):
		status = http.StatusUnprocessableEntity
	case errors.As(err, &parseErr):
		status = http.StatusBadGateway
	}

	s.writeJSON(w, status, map[string]string{"error": err.Error()})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		s.l.WithField("error", err).Error("Could not write response")
	}
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		requestID := uuid.NewString()
		next.ServeHTTP(w, r)
		s.l.WithFields(logrus.Fields{"request": requestID, "method": r.Method, "path": r.URL.Path, "duration": time.Since(start)}).Debug("Handled request")
	})
}

func queryInt(r *http.Request, key string, fallback int) int {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value < 0 {
		return fallback
	}

	return value
}
