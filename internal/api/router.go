package api

import (
	"net/http"

	"github.com/gorilla/mux"
)

func NewRouter(s *Server) *mux.Router {
	r := mux.NewRouter()

	r.HandleFunc("/health", s.health).Methods(http.MethodGet)
	r.HandleFunc("/validate", s.validate).Methods(http.MethodPost)
	r.HandleFunc("/holidays", s.listHolidays).Methods(http.MethodGet)

	return r
}
