package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"
	"unicode/utf8"

	"github.com/gorilla/mux"

	"taskdeck/internal/auth"
	"taskdeck/internal/files"
	"taskdeck/internal/models"
	"taskdeck/internal/utils"
)

// Server holds the stores and services the handlers operate on.
type Server struct {
	Tasks *files.TaskStore
	Tags  *files.TagStore
	Users *files.UserStore
	Auth  *auth.Authenticator
	Log   *utils.Logger
}

// NewServer wires a Server from its dependencies.
func NewServer(tasks *files.TaskStore, tags *files.TagStore, users *files.UserStore, a *auth.Authenticator, log *utils.Logger) *Server {
	return &Server{Tasks: tasks, Tags: tags, Users: users, Auth: a, Log: log}
}

// writeJSON writes a JSON body with the given status.
func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

// writeMessage writes the {"message": ...} error body the API uses everywhere.
func writeMessage(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"message": message})
}

// ===== Auth =====

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterHandler creates a new user account.
func (s *Server) RegisterHandler(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Username == "" || req.Email == "" || req.Password == "" {
		writeMessage(w, http.StatusUnprocessableEntity, "username, email and password are required")
		return
	}
	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		writeMessage(w, http.StatusInternalServerError, "Internal server error while registering user")
		return
	}
	user, err := s.Users.Create(req.Username, req.Email, hash)
	if err != nil {
		if errors.Is(err, files.ErrUserExists) {
			writeMessage(w, http.StatusConflict, "A user with that username already exists")
			return
		}
		s.Log.Error("register: " + err.Error())
		writeMessage(w, http.StatusInternalServerError, "Internal server error while registering user")
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{
		"user_id":  user.UserID,
		"username": user.Username,
	})
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginHandler checks credentials and issues an access token.
func (s *Server) LoginHandler(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}
	user, err := s.Users.GetByUsername(req.Username)
	if err != nil || !auth.CheckPasswordHash(req.Password, user.PasswordHash) {
		writeMessage(w, http.StatusUnauthorized, "Invalid username or password")
		return
	}
	token, err := s.Auth.GenerateToken(user.UserID)
	if err != nil {
		s.Log.Error("login: " + err.Error())
		writeMessage(w, http.StatusInternalServerError, "Internal server error while logging in")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"token": token})
}

// ===== Tags =====

// ListTagsHandler returns every selectable tag.
func (s *Server) ListTagsHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"data": s.Tags.All()})
}

// ===== Tasks =====

// ListTasksHandler returns the authenticated user's tasks joined with their
// tag names.
func (s *Server) ListTasksHandler(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserID(r.Context())
	tasks := s.Tasks.ByUser(userID)
	rows := make([]models.TaskRow, 0, len(tasks))
	for _, t := range tasks {
		tag, err := s.Tags.Get(t.TagID)
		if err != nil {
			s.Log.Error(fmt.Sprintf("list tasks: tag %d for task %d: %v", t.TagID, t.ID, err))
			writeMessage(w, http.StatusInternalServerError, "Internal server error while fetching tasks on user")
			return
		}
		rows = append(rows, models.TaskRow{
			ID:        t.ID,
			Title:     t.Title,
			Content:   t.Content,
			Status:    t.Status,
			CreatedAt: t.CreatedAt,
			TagName:   tag.Name,
		})
	}
	writeJSON(w, http.StatusOK, map[string]any{"data": rows})
}

// createTaskRequest is the create-task wire payload. TagID arrives in its
// string form and Status as its upper-case tag.
type createTaskRequest struct {
	Title   string            `json:"title"`
	Content string            `json:"content"`
	TagID   string            `json:"tagId"`
	Status  models.TaskStatus `json:"status"`
}

// validateTaskFields applies the same bounds the form enforces client-side.
// Returns an empty string when the payload is acceptable.
func (s *Server) validateTaskFields(title, content string, status models.TaskStatus) string {
	if title == "" {
		return "title is required"
	}
	if utf8.RuneCountInString(title) > 40 {
		return "max length is 40 characters"
	}
	if content == "" {
		return "content is required"
	}
	if utf8.RuneCountInString(content) > 600 {
		return "max length is 600 characters"
	}
	if !status.Valid() {
		return "status is required"
	}
	return ""
}

// CreateTaskHandler creates a task for the authenticated user.
func (s *Server) CreateTaskHandler(w http.ResponseWriter, r *http.Request) {
	var req createTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if msg := s.validateTaskFields(req.Title, req.Content, req.Status); msg != "" {
		writeMessage(w, http.StatusUnprocessableEntity, msg)
		return
	}
	tagID, err := strconv.Atoi(req.TagID)
	if err != nil {
		writeMessage(w, http.StatusUnprocessableEntity, "tag is required")
		return
	}
	if _, err := s.Tags.Get(tagID); err != nil {
		writeMessage(w, http.StatusUnprocessableEntity, "tag is required")
		return
	}
	task := models.Task{
		Title:     req.Title,
		Content:   req.Content,
		Status:    req.Status,
		CreatedAt: time.Now().UTC(),
		UserID:    auth.UserID(r.Context()),
		TagID:     tagID,
	}
	created, err := s.Tasks.Create(task)
	if err != nil {
		s.Log.Error("create task: " + err.Error())
		writeMessage(w, http.StatusInternalServerError, "Internal server error while creating task")
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

// updateTaskRequest carries the updatable task fields; nil means unchanged.
type updateTaskRequest struct {
	Title   *string            `json:"title"`
	Content *string            `json:"content"`
	Status  *models.TaskStatus `json:"status"`
}

// UpdateTaskHandler updates a task the authenticated user owns.
func (s *Server) UpdateTaskHandler(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		writeMessage(w, http.StatusNotFound, "Task not found")
		return
	}
	var req updateTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}
	task, err := s.Tasks.Get(id)
	if err != nil || task.UserID != auth.UserID(r.Context()) {
		writeMessage(w, http.StatusNotFound, "Task not found")
		return
	}
	if req.Title != nil {
		task.Title = *req.Title
	}
	if req.Content != nil {
		task.Content = *req.Content
	}
	if req.Status != nil {
		task.Status = *req.Status
	}
	if msg := s.validateTaskFields(task.Title, task.Content, task.Status); msg != "" {
		writeMessage(w, http.StatusUnprocessableEntity, msg)
		return
	}
	if err := s.Tasks.Update(task); err != nil {
		s.Log.Error("update task: " + err.Error())
		writeMessage(w, http.StatusInternalServerError, "Internal server error while updating task")
		return
	}
	writeJSON(w, http.StatusOK, task)
}

// DeleteTaskHandler deletes a task the authenticated user owns.
func (s *Server) DeleteTaskHandler(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		writeMessage(w, http.StatusNotFound, "Task not found")
		return
	}
	task, err := s.Tasks.Get(id)
	if err != nil || task.UserID != auth.UserID(r.Context()) {
		writeMessage(w, http.StatusNotFound, "Task not found")
		return
	}
	if err := s.Tasks.Delete(id); err != nil {
		s.Log.Error("delete task: " + err.Error())
		writeMessage(w, http.StatusInternalServerError, "Internal server error while deleting task")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
