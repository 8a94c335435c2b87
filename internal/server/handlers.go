package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	apperrors "github.com/agbru/vecsolve/internal/errors"
	"github.com/agbru/vecsolve/internal/logging"
	"github.com/agbru/vecsolve/internal/service"
	"github.com/agbru/vecsolve/internal/solver"
)

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeErrorResponse(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}
	s.writeJSONResponse(w, http.StatusOK, map[string]any{
		"status":    "healthy",
		"timestamp": time.Now().Unix(),
	})
}

func (s *Server) handleSolvers(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeErrorResponse(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}
	s.writeJSONResponse(w, http.StatusOK, map[string]any{
		"solvers": s.service.Solvers(),
	})
}

// handleSolve parses the six coefficients and the optional algo and width
// parameters, runs the solve and writes a SolveResponse.
func (s *Server) handleSolve(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeErrorResponse(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	req, err := parseSolveParams(r.URL.Query())
	if err != nil {
		var pe ParseError
		if errors.As(err, &pe) {
			s.writeErrorResponse(w, pe.StatusCode, pe.Message)
		} else {
			s.writeErrorResponse(w, http.StatusBadRequest, err.Error())
		}
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), s.timeouts.RequestTimeout)
	defer cancel()

	start := time.Now()
	res, err := s.service.Solve(ctx, req)
	duration := time.Since(start)
	if err != nil {
		status := statusForError(err)
		if status >= http.StatusInternalServerError {
			s.logger.Error("solve failed", err, logging.String("coefficients", req.Coefficients.String()))
		}
		s.writeErrorResponse(w, status, err.Error())
		return
	}

	s.writeJSONResponse(w, http.StatusOK, buildSolveResponse(res, duration))
}

// statusForError maps service errors to HTTP status codes.
func statusForError(err error) int {
	var contract *solver.ContractError
	var unknown *solver.UnknownSolverError
	var invalid apperrors.ValidationError
	switch {
	case errors.As(err, &contract),
		errors.As(err, &unknown),
		errors.As(err, &invalid),
		errors.Is(err, solver.ErrInvalidWidth):
		return http.StatusBadRequest
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	case errors.Is(err, context.Canceled):
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}

var coefficientParams = []string{"xa", "xb", "x", "ya", "yb", "y"}

// parseSolveParams reads xa, xb, x, ya, yb, y (required, non-negative) and
// algo and width (optional).
func parseSolveParams(q url.Values) (service.Request, error) {
	var vals [6]uint64
	for i, name := range coefficientParams {
		raw := q.Get(name)
		if raw == "" {
			return service.Request{}, ParseError{
				Message:    fmt.Sprintf("Missing '%s' parameter", name),
				StatusCode: http.StatusBadRequest,
			}
		}
		v, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			return service.Request{}, ParseError{
				Message:    fmt.Sprintf("Invalid '%s' parameter: must be a non-negative integer", name),
				StatusCode: http.StatusBadRequest,
			}
		}
		vals[i] = v
	}

	req := service.Request{
		Solver: strings.ToLower(q.Get("algo")),
		Coefficients: solver.Coefficients{
			Xa: vals[0], Xb: vals[1], X: vals[2],
			Ya: vals[3], Yb: vals[4], Y: vals[5],
		},
	}
	if raw := q.Get("width"); raw != "" {
		w, err := strconv.Atoi(raw)
		if err != nil || w < 0 {
			return service.Request{}, ParseError{
				Message:    "Invalid 'width' parameter: must be a power of two",
				StatusCode: http.StatusBadRequest,
			}
		}
		req.Width = w
	}
	return req, nil
}

func buildSolveResponse(res solver.Result, duration time.Duration) SolveResponse {
	resp := SolveResponse{
		Solver:     res.Solver,
		Width:      res.Width,
		Found:      res.Found,
		Candidates: res.Stats.Candidates,
		Rejected:   res.Stats.Rejected,
		Duration:   duration.String(),
	}
	if res.Found {
		a, b := res.Solution.A, res.Solution.B
		resp.A, resp.B = &a, &b
	}
	return resp
}

func (s *Server) writeJSONResponse(w http.ResponseWriter, statusCode int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Error("encoding JSON response", err)
	}
}

func (s *Server) writeErrorResponse(w http.ResponseWriter, statusCode int, message string) {
	s.writeJSONResponse(w, statusCode, ErrorResponse{
		Error:   http.StatusText(statusCode),
		Message: message,
	})
}
