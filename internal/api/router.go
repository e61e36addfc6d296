// Package api exposes the tracker over HTTP as a JSON API. Identity is
// out of scope; the X-User-ID header is the seam where a session layer
// would plug in, defaulting to a single local user.
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/rcliao/pulse/internal/domain"
	"github.com/rcliao/pulse/internal/service"
)

const (
	userHeader     = "X-User-ID"
	defaultUserID  = "local"
	requestTimeout = 15 * time.Second
)

type Router struct {
	tasks    *service.TaskService
	insights *service.InsightService
	mux      *chi.Mux
}

func NewRouter(tasks *service.TaskService, insights *service.InsightService) *Router {
	r := &Router{
		tasks:    tasks,
		insights: insights,
		mux:      chi.NewRouter(),
	}

	r.mux.Use(middleware.Recoverer)
	r.mux.Use(middleware.Logger)
	r.mux.Use(middleware.Timeout(requestTimeout))

	r.mux.Get("/healthz", r.handleHealth)
	r.mux.Route("/api", func(api chi.Router) {
		api.Route("/tasks", func(t chi.Router) {
			t.Get("/", r.handleListTasks)
			t.Post("/", r.handleCreateTask)
			t.Get("/{id}", r.handleGetTask)
			t.Patch("/{id}", r.handleUpdateTask)
			t.Delete("/{id}", r.handleDeleteTask)
			t.Post("/{id}/complete", r.handleCompleteTask)
			t.Post("/{id}/reopen", r.handleReopenTask)
		})
		api.Route("/insights", func(i chi.Router) {
			i.Get("/ranked", r.handleRanked)
			i.Get("/alerts", r.handleAlerts)
			i.Get("/tip", r.handleTip)
			i.Get("/analytics", r.handleAnalytics)
			i.Get("/dashboard", r.handleDashboard)
		})
	})

	return r
}

// Handler returns the HTTP handler.
func (r *Router) Handler() http.Handler {
	return r.mux
}

func userID(req *http.Request) string {
	if id := req.Header.Get(userHeader); id != "" {
		return id
	}
	return defaultUserID
}

func (r *Router) handleHealth(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (r *Router) handleListTasks(w http.ResponseWriter, req *http.Request) {
	user := userID(req)
	filter := domain.TaskFilter{UserID: &user}

	if v := req.URL.Query().Get("completed"); v != "" {
		completed := v == "true"
		filter.Completed = &completed
	}
	if v := req.URL.Query().Get("priority"); v != "" {
		priority := domain.Priority(v)
		filter.Priority = &priority
	}

	tasks, err := r.tasks.List(filter)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, tasks)
}

func (r *Router) handleCreateTask(w http.ResponseWriter, req *http.Request) {
	var input service.CreateTaskInput
	if err := json.NewDecoder(req.Body).Decode(&input); err != nil {
		respondJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}

	task, err := r.tasks.Create(userID(req), input)
	if err != nil {
		respondJSON(w, http.StatusBadRequest, errorBody(err.Error()))
		return
	}
	respondJSON(w, http.StatusCreated, task)
}

func (r *Router) handleGetTask(w http.ResponseWriter, req *http.Request) {
	task, err := r.tasks.Get(chi.URLParam(req, "id"))
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, task)
}

type updateTaskRequest struct {
	Title          *string          `json:"title"`
	Notes          *string          `json:"notes"`
	Priority       *domain.Priority `json:"priority"`
	Deadline       *time.Time       `json:"deadline"`
	ClearDeadline  bool             `json:"clearDeadline"`
	EstimatedHours *float64         `json:"estimatedHours"`
}

func (r *Router) handleUpdateTask(w http.ResponseWriter, req *http.Request) {
	var body updateTaskRequest
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		respondJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}

	task, err := r.tasks.Update(chi.URLParam(req, "id"), domain.TaskUpdate{
		Title:          body.Title,
		Notes:          body.Notes,
		Priority:       body.Priority,
		Deadline:       body.Deadline,
		ClearDeadline:  body.ClearDeadline,
		EstimatedHours: body.EstimatedHours,
	})
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, task)
}

func (r *Router) handleDeleteTask(w http.ResponseWriter, req *http.Request) {
	if err := r.tasks.Delete(chi.URLParam(req, "id")); err != nil {
		respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (r *Router) handleCompleteTask(w http.ResponseWriter, req *http.Request) {
	task, err := r.tasks.Complete(chi.URLParam(req, "id"))
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, task)
}

func (r *Router) handleReopenTask(w http.ResponseWriter, req *http.Request) {
	task, err := r.tasks.Reopen(chi.URLParam(req, "id"))
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, task)
}

func (r *Router) handleRanked(w http.ResponseWriter, req *http.Request) {
	ranked, err := r.insights.Ranked(userID(req))
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, ranked)
}

func (r *Router) handleAlerts(w http.ResponseWriter, req *http.Request) {
	alerts, err := r.insights.Alerts(userID(req))
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, alerts)
}

func (r *Router) handleTip(w http.ResponseWriter, req *http.Request) {
	tip, err := r.insights.Tip(userID(req))
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"tip": tip})
}

func (r *Router) handleAnalytics(w http.ResponseWriter, req *http.Request) {
	stats, err := r.insights.Analytics(userID(req))
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, stats)
}

func (r *Router) handleDashboard(w http.ResponseWriter, req *http.Request) {
	dash, err := r.insights.Dashboard(userID(req))
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, dash)
}

func respondError(w http.ResponseWriter, err error) {
	if errors.Is(err, domain.ErrNotFound) {
		respondJSON(w, http.StatusNotFound, errorBody(err.Error()))
		return
	}
	respondJSON(w, http.StatusInternalServerError, errorBody(err.Error()))
}

func errorBody(msg string) map[string]string {
	return map[string]string{"error": msg}
}

func respondJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
