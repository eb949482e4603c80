package httpapi

import (
	"net/http"
	"strings"

	"task-tracker/internal/model"
	"task-tracker/internal/service"
)

type userCreate struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	TelegramID *int64 `json:"telegramId"`
}

// POST /api/users
func (s *Server) createUser(w http.ResponseWriter, r *http.Request) {
	var in userCreate
	if err := decodeJSON(r, &in); err != nil {
		writeErr(w, http.StatusBadRequest, "bad json")
		return
	}
	name := strings.TrimSpace(in.Name)
	if name == "" {
		writeErr(w, http.StatusBadRequest, "name is required")
		return
	}
	user := model.User{Name: name, TelegramID: in.TelegramID}
	if email := strings.TrimSpace(in.Email); email != "" {
		user.Email = &email
	}
	if err := s.deps.Users.Create(r.Context(), &user); err != nil {
		writeErr(w, http.StatusConflict, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, user)
}

// GET /api/projects
func (s *Server) listProjects(w http.ResponseWriter, r *http.Request) {
	projects, err := s.deps.Projects.ListForUser(r.Context(), currentUser(r).ID)
	if err != nil {
		writeErr(w, http.StatusInternalServerError, err.Error())
		return
	}
	if projects == nil {
		projects = []model.Project{}
	}
	writeJSON(w, http.StatusOK, projects)
}

// POST /api/projects. The caller always becomes a member.
func (s *Server) createProject(w http.ResponseWriter, r *http.Request) {
	var in service.ProjectInput
	if err := decodeJSON(r, &in); err != nil {
		writeErr(w, http.StatusBadRequest, "bad json")
		return
	}
	in.MemberIDs = append(in.MemberIDs, currentUser(r).ID)

	project, err := s.deps.Projects.Create(r.Context(), in)
	if err != nil {
		writeServiceErr(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, project)
}

// GET /api/projects/{id}
func (s *Server) getProject(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeErr(w, http.StatusBadRequest, "bad project id")
		return
	}
	project, err := s.deps.Projects.Get(r.Context(), id)
	if err != nil {
		writeServiceErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, project)
}

// PUT /api/projects/{id}
func (s *Server) updateProject(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeErr(w, http.StatusBadRequest, "bad project id")
		return
	}
	var in service.ProjectInput
	if err := decodeJSON(r, &in); err != nil {
		writeErr(w, http.StatusBadRequest, "bad json")
		return
	}
	project, err := s.deps.Projects.Update(r.Context(), id, in)
	if err != nil {
		writeServiceErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, project)
}

// DELETE /api/projects/{id}
func (s *Server) deleteProject(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeErr(w, http.StatusBadRequest, "bad project id")
		return
	}
	if err := s.deps.Projects.Delete(r.Context(), id); err != nil {
		writeServiceErr(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type membersIn struct {
	UserIDs []uint `json:"userIds"`
	Email   string `json:"email"`
}

// POST /api/projects/{id}/members takes either user ids or a single email.
func (s *Server) addMembers(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeErr(w, http.StatusBadRequest, "bad project id")
		return
	}
	var in membersIn
	if err := decodeJSON(r, &in); err != nil {
		writeErr(w, http.StatusBadRequest, "bad json")
		return
	}
	if strings.TrimSpace(in.Email) != "" {
		if _, _, err := s.deps.Projects.AddMemberByEmail(r.Context(), id, in.Email); err != nil {
			writeServiceErr(w, err)
			return
		}
	} else if err := s.deps.Projects.AddMembers(r.Context(), id, in.UserIDs); err != nil {
		writeServiceErr(w, err)
		return
	}
	project, err := s.deps.Projects.Get(r.Context(), id)
	if err != nil {
		writeServiceErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, project)
}

// DELETE /api/projects/{id}/members/{userID}
func (s *Server) removeMember(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeErr(w, http.StatusBadRequest, "bad project id")
		return
	}
	userID, ok := pathID(r, "userID")
	if !ok {
		writeErr(w, http.StatusBadRequest, "bad user id")
		return
	}
	removed, err := s.deps.Projects.RemoveMember(r.Context(), id, userID)
	if err != nil {
		writeServiceErr(w, err)
		return
	}
	if !removed {
		writeErr(w, http.StatusNotFound, "user is not a member")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
