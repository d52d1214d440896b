package server

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"studypal/internal/auth"
	"studypal/internal/core"
	"studypal/internal/store"
)

type createScheduleRequest struct {
	Subject     string `json:"subject"`
	Topic       string `json:"topic"`
	Date        string `json:"date"`
	Time        string `json:"time"`
	Description string `json:"description"`
	Priority    string `json:"priority"`
}

// handleCreateSchedule handles POST /api/schedules
func (s *Server) handleCreateSchedule(w http.ResponseWriter, r *http.Request) {
	var req createScheduleRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}

	created, err := s.deps.Store.CreateSchedule(r.Context(), auth.UserID(r.Context()), core.Schedule{
		Subject:     req.Subject,
		Topic:       req.Topic,
		Date:        req.Date,
		Time:        req.Time,
		Description: req.Description,
		Priority:    req.Priority,
	})
	if err != nil {
		s.respondMappedError(w, err, "Failed to create study schedule")
		return
	}

	s.respondSuccess(w, http.StatusCreated, "Study schedule created successfully", map[string]any{
		"schedule": created,
	})
}

// handleListSchedules handles GET /api/schedules
func (s *Server) handleListSchedules(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	limit := 0
	if raw := query.Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			s.respondError(w, http.StatusBadRequest, "Limit must be a positive integer")
			return
		}
		limit = parsed
	}

	schedules, err := s.deps.Store.ListSchedules(r.Context(), auth.UserID(r.Context()), store.ScheduleFilter{
		Status:  query.Get("status"),
		Date:    query.Get("date"),
		Subject: query.Get("subject"),
		Limit:   limit,
	})
	if err != nil {
		s.respondMappedError(w, err, "Failed to retrieve schedules")
		return
	}

	s.respondSuccess(w, http.StatusOK, "Schedules retrieved successfully", map[string]any{
		"schedules": schedules,
		"count":     len(schedules),
	})
}

type updateScheduleRequest struct {
	Subject     *string `json:"subject"`
	Topic       *string `json:"topic"`
	Date        *string `json:"date"`
	Time        *string `json:"time"`
	Description *string `json:"description"`
	Priority    *string `json:"priority"`
	Status      *string `json:"status"`
}

// handleUpdateSchedule handles PUT /api/schedules/{id}
func (s *Server) handleUpdateSchedule(w http.ResponseWriter, r *http.Request) {
	var req updateScheduleRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}

	updated, err := s.deps.Store.UpdateSchedule(r.Context(), auth.UserID(r.Context()), chi.URLParam(r, "id"), store.ScheduleUpdate{
		Subject:     req.Subject,
		Topic:       req.Topic,
		Date:        req.Date,
		Time:        req.Time,
		Description: req.Description,
		Priority:    req.Priority,
		Status:      req.Status,
	})
	if err != nil {
		s.respondMappedError(w, err, "Failed to update schedule")
		return
	}

	s.respondSuccess(w, http.StatusOK, "Schedule updated successfully", map[string]any{
		"schedule": updated,
	})
}

// handleDeleteSchedule handles DELETE /api/schedules/{id}
func (s *Server) handleDeleteSchedule(w http.ResponseWriter, r *http.Request) {
	err := s.deps.Store.DeleteSchedule(r.Context(), auth.UserID(r.Context()), chi.URLParam(r, "id"))
	if err != nil {
		s.respondMappedError(w, err, "Failed to delete schedule")
		return
	}

	s.respondSuccess(w, http.StatusOK, "Schedule deleted successfully", nil)
}

// handleUpcomingTasks handles GET /api/schedules/upcoming
func (s *Server) handleUpcomingTasks(w http.ResponseWriter, r *http.Request) {
	tasks, err := s.deps.Store.UpcomingTasks(r.Context(), auth.UserID(r.Context()))
	if err != nil {
		s.respondMappedError(w, err, "Failed to retrieve upcoming tasks")
		return
	}

	s.respondSuccess(w, http.StatusOK, "Upcoming tasks retrieved successfully", map[string]any{
		"tasks": tasks,
		"count": len(tasks),
	})
}

// handleScheduleStats handles GET /api/schedules/stats
func (s *Server) handleScheduleStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.deps.Store.ScheduleStats(r.Context(), auth.UserID(r.Context()))
	if err != nil {
		s.respondMappedError(w, err, "Failed to retrieve schedule stats")
		return
	}

	s.respondSuccess(w, http.StatusOK, "Schedule stats retrieved successfully", map[string]any{
		"stats": stats,
	})
}
