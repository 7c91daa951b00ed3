package api

import (
	"fmt"
	"net/http"

	"github.com/gorilla/mux"
)

// Router builds the HTTP router for the task API.
func (s *Server) Router() *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintln(w, "OK")
	}).Methods("GET")

	r.HandleFunc("/auth/register", s.RegisterHandler).Methods("POST")
	r.HandleFunc("/auth/login", s.LoginHandler).Methods("POST")

	protected := r.NewRoute().Subrouter()
	protected.Use(s.Auth.Middleware)
	protected.HandleFunc("/tags", s.ListTagsHandler).Methods("GET")
	protected.HandleFunc("/tasks", s.ListTasksHandler).Methods("GET")
	protected.HandleFunc("/tasks", s.CreateTaskHandler).Methods("POST")
	protected.HandleFunc("/tasks/{id}", s.UpdateTaskHandler).Methods("PUT")
	protected.HandleFunc("/tasks/{id}", s.DeleteTaskHandler).Methods("DELETE")
	return r
}
