package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/ukaji3/xltables-go/pkg/xltables"
)

type errorResponse struct {
	Detail string `json:"detail"`
}

type tablesResponse struct {
	Tables []string `json:"tables_list"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (s *Server) handleListTables(w http.ResponseWriter, r *http.Request) {
	names, err := xltables.ListTables(r.Context(), s.opts)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, tablesResponse{Tables: names})
}

func (s *Server) handleTableDetails(w http.ResponseWriter, r *http.Request) {
	table, ok := s.requireQuery(w, r, "table_name")
	if !ok {
		return
	}

	rows, err := xltables.TableRows(r.Context(), s.opts, table)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, rows.AsMap())
}

func (s *Server) handleRowSum(w http.ResponseWriter, r *http.Request) {
	table, ok := s.requireQuery(w, r, "table_name")
	if !ok {
		return
	}
	row, ok := s.requireQuery(w, r, "row_name")
	if !ok {
		return
	}

	sum, err := xltables.RowSum(r.Context(), s.opts, table, row)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, sum)
}

// requireQuery reads a mandatory query parameter; an empty value is allowed.
func (s *Server) requireQuery(w http.ResponseWriter, r *http.Request, key string) (string, bool) {
	query := r.URL.Query()
	if !query.Has(key) {
		s.writeJSON(w, http.StatusUnprocessableEntity, errorResponse{
			Detail: fmt.Sprintf("query parameter '%s' is required", key),
		})
		return "", false
	}
	return query.Get(key), true
}

// statusFor maps extraction errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, xltables.ErrTableNotFound), errors.Is(err, xltables.ErrRowNotFound):
		return http.StatusNotFound
	case errors.Is(err, xltables.ErrSourceUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed: %v", err)
	} else {
		s.logger.Debug("lookup failed: %v", err)
	}
	s.writeJSON(w, status, errorResponse{Detail: err.Error()})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		s.logger.Error("encode response: %v", err)
	}
}
