package server

import (
	"net/http"
	"time"

	"studypal/internal/llm"
)

type explainRequest struct {
	Query      string `json:"query"`
	Difficulty string `json:"difficulty"`
}

// handleExplain handles POST /api/ai/explain
func (s *Server) handleExplain(w http.ResponseWriter, r *http.Request) {
	if s.deps.Tutor == nil {
		s.respondError(w, http.StatusServiceUnavailable, "AI tutor is not configured")
		return
	}

	var req explainRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}
	if req.Query == "" {
		s.respondError(w, http.StatusBadRequest, "Query is required")
		return
	}

	explanation, err := s.deps.Tutor.Explain(r.Context(), req.Query, req.Difficulty)
	if err != nil {
		s.respondMappedError(w, err, "Failed to generate AI explanation")
		return
	}

	s.respondSuccess(w, http.StatusOK, "AI explanation generated successfully", map[string]any{
		"query":        req.Query,
		"difficulty":   req.Difficulty,
		"explanation":  explanation,
		"generated_at": time.Now().UTC().Format(time.RFC3339),
	})
}

type chatRequest struct {
	Message     string        `json:"message"`
	Context     string        `json:"context"`
	ChatHistory []llm.Message `json:"chat_history"`
}

// handleChat handles POST /api/ai/chat
func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	if s.deps.Tutor == nil {
		s.respondError(w, http.StatusServiceUnavailable, "AI tutor is not configured")
		return
	}

	var req chatRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}
	if req.Message == "" {
		s.respondError(w, http.StatusBadRequest, "Message is required")
		return
	}

	response, err := s.deps.Tutor.Chat(r.Context(), req.Message, req.Context, req.ChatHistory)
	if err != nil {
		s.respondMappedError(w, err, "Failed to generate AI response")
		return
	}

	s.respondSuccess(w, http.StatusOK, "AI chat response generated", map[string]any{
		"response":  response,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

type notesRequest struct {
	Topic    string `json:"topic"`
	Subject  string `json:"subject"`
	NoteType string `json:"note_type"`
}

// handleStudyNotes handles POST /api/ai/notes
func (s *Server) handleStudyNotes(w http.ResponseWriter, r *http.Request) {
	if s.deps.Tutor == nil {
		s.respondError(w, http.StatusServiceUnavailable, "AI tutor is not configured")
		return
	}

	var req notesRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}
	if req.Topic == "" || req.Subject == "" {
		s.respondError(w, http.StatusBadRequest, "Topic and subject are required")
		return
	}

	notes, err := s.deps.Tutor.StudyNotes(r.Context(), req.Topic, req.Subject, req.NoteType)
	if err != nil {
		s.respondMappedError(w, err, "Failed to generate study notes")
		return
	}

	s.respondSuccess(w, http.StatusOK, "Study notes generated successfully", map[string]any{
		"topic":        req.Topic,
		"subject":      req.Subject,
		"note_type":    req.NoteType,
		"notes":        notes,
		"generated_at": time.Now().UTC().Format(time.RFC3339),
	})
}
