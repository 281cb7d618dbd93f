package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/ssargent/recordcast/pkg/task"
)

// Server serves task state over HTTP
type Server struct {
	tracker *task.Tracker
	metrics *Metrics
	config  ServerConfig
	started time.Time
}

// NewServer creates a new status server. tracker may be nil.
func NewServer(tracker *task.Tracker, config ServerConfig, metrics *Metrics) *Server {
	return &Server{
		tracker: tracker,
		metrics: metrics,
		config:  config,
		started: time.Now(),
	}
}

// handleHealth godoc
// @Summary      Health check
// @Tags         system
// @Produce      json
// @Success      200  {object}  APIResponse{data=HealthResponse}
// @Router       /health [get]
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.metrics.RecordHealthCheck(true)
	running := 0
	if s.tracker != nil {
		running = s.tracker.Running()
	}
	sendSuccess(w, HealthResponse{
		Status:  "healthy",
		Uptime:  time.Since(s.started).Round(time.Second).String(),
		Running: running,
	})
}

// handleListTasks godoc
// @Summary      List tasks
// @Tags         tasks
// @Produce      json
// @Success      200  {object}  APIResponse{data=[]task.Snapshot}
// @Router       /tasks [get]
func (s *Server) handleListTasks(w http.ResponseWriter, _ *http.Request) {
	sendSuccess(w, s.tracker.Snapshots())
}

// handleGetTask godoc
// @Summary      Get a task
// @Tags         tasks
// @Produce      json
// @Param        id   path      string  true  "Task ID"
// @Success      200  {object}  APIResponse{data=task.Snapshot}
// @Failure      404  {object}  APIResponse
// @Router       /tasks/{id} [get]
func (s *Server) handleGetTask(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	snap, ok := s.tracker.Get(id)
	if !ok {
		sendError(w, "Task not found", http.StatusNotFound)
		return
	}
	sendSuccess(w, snap)
}

// handleStopTask godoc
// @Summary      Stop a task
// @Tags         tasks
// @Produce      json
// @Param        id   path      string  true  "Task ID"
// @Success      200  {object}  APIResponse
// @Failure      404  {object}  APIResponse
// @Router       /tasks/{id} [delete]
func (s *Server) handleStopTask(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if !s.tracker.Stop(id) {
		sendError(w, "Task not found", http.StatusNotFound)
		return
	}
	sendSuccess(w, map[string]string{"message": "Stop requested"})
}
