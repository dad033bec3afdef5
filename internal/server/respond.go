package server

import (
	"errors"
	"net/http"
	"strings"

	json "github.com/goccy/go-json"
	"github.com/jackc/pgx/v5/pgconn"

	"league-tracker/internal/domain"
)

type errorBody struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
	Code    string `json:"code,omitempty"`
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error().Err(err).Msg("failed to encode response")
	}
}

// writeError maps the error taxonomy onto status codes: NotFound is a user
// error (404), everything else is a store failure (500) with the underlying
// message and, for Postgres errors, the SQLSTATE code passed through.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	var nf *domain.NotFoundError
	if errors.As(err, &nf) {
		s.writeJSON(w, http.StatusNotFound, errorBody{
			Error: capitalize(nf.Entity) + " not found.",
		})
		return
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		s.logger.Error().Err(err).Str("sqlstate", pgErr.Code).Msg("store failure")
		s.writeJSON(w, http.StatusInternalServerError, errorBody{
			Error:   "Database error",
			Message: pgErr.Message,
			Code:    pgErr.Code,
		})
		return
	}

	s.logger.Error().Err(err).Msg("store failure")
	s.writeJSON(w, http.StatusInternalServerError, errorBody{
		Error:   "Database error",
		Message: err.Error(),
	})
}

func (s *Server) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		s.writeJSON(w, http.StatusBadRequest, errorBody{Error: "Invalid request body.", Message: err.Error()})
		return false
	}
	return true
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
