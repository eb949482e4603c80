package httpapi

import (
	"net/http"

	"task-tracker/internal/model"
	"task-tracker/internal/service"
)

// GET /api/projects/{id}/tasks?status=
func (s *Server) listProjectTasks(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeErr(w, http.StatusBadRequest, "bad project id")
		return
	}
	tasks, err := s.deps.Tasks.ListForProject(r.Context(), id, r.URL.Query().Get("status"))
	if err != nil {
		writeServiceErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, nonNil(tasks))
}

// POST /api/projects/{id}/tasks
func (s *Server) createTask(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeErr(w, http.StatusBadRequest, "bad project id")
		return
	}
	var in service.TaskInput
	if err := decodeJSON(r, &in); err != nil {
		writeErr(w, http.StatusBadRequest, "bad json")
		return
	}
	task, err := s.deps.Tasks.CreateTask(r.Context(), id, in)
	if err != nil {
		writeServiceErr(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, task)
}

// PUT /api/tasks/{id}
func (s *Server) updateTask(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeErr(w, http.StatusBadRequest, "bad task id")
		return
	}
	var in service.TaskInput
	if err := decodeJSON(r, &in); err != nil {
		writeErr(w, http.StatusBadRequest, "bad json")
		return
	}
	task, err := s.deps.Tasks.UpdateTask(r.Context(), id, in)
	if err != nil {
		writeServiceErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, task)
}

// DELETE /api/projects/{id}/tasks/{taskID}; tasks of other projects are not found.
func (s *Server) deleteProjectTask(w http.ResponseWriter, r *http.Request) {
	projectID, ok := pathID(r, "id")
	if !ok {
		writeErr(w, http.StatusBadRequest, "bad project id")
		return
	}
	taskID, ok := pathID(r, "taskID")
	if !ok {
		writeErr(w, http.StatusBadRequest, "bad task id")
		return
	}
	if err := s.deps.Tasks.DeleteProjectTask(r.Context(), projectID, taskID); err != nil {
		writeServiceErr(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GET /api/tasks lists the caller's assigned tasks.
func (s *Server) listMyTasks(w http.ResponseWriter, r *http.Request) {
	tasks, err := s.deps.Tasks.ListAssigned(r.Context(), currentUser(r).ID)
	if err != nil {
		writeErr(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, nonNil(tasks))
}

type statusIn struct {
	Status string `json:"status"`
}

// PATCH /api/tasks/{id}/status
func (s *Server) changeStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeErr(w, http.StatusBadRequest, "bad task id")
		return
	}
	var in statusIn
	if err := decodeJSON(r, &in); err != nil {
		writeErr(w, http.StatusBadRequest, "bad json")
		return
	}
	if err := s.deps.Tasks.ChangeStatus(r.Context(), id, in.Status); err != nil {
		writeServiceErr(w, err)
		return
	}
	s.writeTask(w, r, id)
}

type assigneeIn struct {
	UserID *uint `json:"userId"`
}

// PATCH /api/tasks/{id}/assignee; a null userId unassigns.
func (s *Server) assignTask(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeErr(w, http.StatusBadRequest, "bad task id")
		return
	}
	var in assigneeIn
	if err := decodeJSON(r, &in); err != nil {
		writeErr(w, http.StatusBadRequest, "bad json")
		return
	}
	if err := s.deps.Tasks.AssignUser(r.Context(), id, in.UserID); err != nil {
		writeServiceErr(w, err)
		return
	}
	s.writeTask(w, r, id)
}

// DELETE /api/tasks/{id}
func (s *Server) deleteTask(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeErr(w, http.StatusBadRequest, "bad task id")
		return
	}
	if err := s.deps.Tasks.DeleteTask(r.Context(), id); err != nil {
		writeServiceErr(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) writeTask(w http.ResponseWriter, r *http.Request, id uint) {
	task, err := s.deps.Tasks.GetTask(r.Context(), id)
	if err != nil {
		writeServiceErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, task)
}

func nonNil(tasks []model.Task) []model.Task {
	if tasks == nil {
		return []model.Task{}
	}
	return tasks
}
