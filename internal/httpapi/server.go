package httpapi

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"gorm.io/gorm"

	"task-tracker/internal/model"
	"task-tracker/internal/repository"
	"task-tracker/internal/service"
)

// Deps are the collaborators the API serves from.
type Deps struct {
	Users     *repository.UserRepository
	Analytics *service.AnalyticsService
	Board     *service.BoardService
	Dashboard *service.DashboardService
	Projects  *service.ProjectService
	Tasks     *service.TaskService
	Logger    *log.Logger
}

// Server exposes the tracker over JSON HTTP.
type Server struct {
	deps Deps
	now  func() time.Time
}

func New(deps Deps) *Server {
	if deps.Logger == nil {
		deps.Logger = log.Default()
	}
	return &Server{deps: deps, now: time.Now}
}

// Handler returns the routed handler wrapped in the middleware chain.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /api/users", s.createUser)
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"ok": true})
	})

	authed := func(h http.HandlerFunc) http.Handler { return s.withUser(h) }
	mux.Handle("GET /api/analytics", authed(s.getAnalytics))
	mux.Handle("GET /api/analytics/export", authed(s.exportAnalytics))
	mux.Handle("GET /api/board", authed(s.getBoard))
	mux.Handle("GET /api/dashboard", authed(s.getDashboard))

	mux.Handle("GET /api/projects", authed(s.listProjects))
	mux.Handle("POST /api/projects", authed(s.createProject))
	mux.Handle("GET /api/projects/{id}", authed(s.getProject))
	mux.Handle("PUT /api/projects/{id}", authed(s.updateProject))
	mux.Handle("DELETE /api/projects/{id}", authed(s.deleteProject))
	mux.Handle("POST /api/projects/{id}/members", authed(s.addMembers))
	mux.Handle("DELETE /api/projects/{id}/members/{userID}", authed(s.removeMember))
	mux.Handle("GET /api/projects/{id}/tasks", authed(s.listProjectTasks))
	mux.Handle("POST /api/projects/{id}/tasks", authed(s.createTask))
	mux.Handle("DELETE /api/projects/{id}/tasks/{taskID}", authed(s.deleteProjectTask))

	mux.Handle("GET /api/tasks", authed(s.listMyTasks))
	mux.Handle("PUT /api/tasks/{id}", authed(s.updateTask))
	mux.Handle("PATCH /api/tasks/{id}/status", authed(s.changeStatus))
	mux.Handle("PATCH /api/tasks/{id}/assignee", authed(s.assignTask))
	mux.Handle("DELETE /api/tasks/{id}", authed(s.deleteTask))

	return Chain(mux,
		WithRequestID,
		WithAccessLog(s.deps.Logger),
		WithRecover(s.deps.Logger),
	)
}

// withUser resolves the X-User-ID header to a stored user.
func (s *Server) withUser(next http.HandlerFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.ParseUint(strings.TrimSpace(r.Header.Get("X-User-ID")), 10, 64)
		if err != nil || id == 0 {
			writeErr(w, http.StatusUnauthorized, "missing or invalid X-User-ID")
			return
		}
		user, err := s.deps.Users.FindByID(r.Context(), uint(id))
		if errors.Is(err, gorm.ErrRecordNotFound) {
			writeErr(w, http.StatusUnauthorized, "unknown user")
			return
		}
		if err != nil {
			writeErr(w, http.StatusInternalServerError, err.Error())
			return
		}
		next(w, r.WithContext(context.WithValue(r.Context(), ctxUser, user)))
	})
}

func currentUser(r *http.Request) *model.User {
	u, _ := r.Context().Value(ctxUser).(*model.User)
	return u
}
