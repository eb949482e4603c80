package httpapi

import (
	"context"
	"errors"
	"net/http"

	"task-tracker/internal/service"
)

func rangeRequest(r *http.Request) service.RangeRequest {
	q := r.URL.Query()
	return service.RangeRequest{
		Selector: q.Get("range"),
		Start:    parseDate(q.Get("start")),
		End:      parseDate(q.Get("end")),
	}
}

// GET /api/analytics?range=7|30|90|custom&start=&end=
func (s *Server) getAnalytics(w http.ResponseWriter, r *http.Request) {
	report, err := s.deps.Analytics.Report(r.Context(), currentUser(r).ID, rangeRequest(r))
	if err != nil {
		s.writeReportErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

// GET /api/analytics/export
func (s *Server) exportAnalytics(w http.ResponseWriter, r *http.Request) {
	user := currentUser(r)
	report, err := s.deps.Analytics.Report(r.Context(), user.ID, rangeRequest(r))
	if err != nil {
		s.writeReportErr(w, err)
		return
	}
	doc := service.Render(report, user.Name, service.FormatText, s.now())

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="analytics.txt"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(doc + "\n"))
}

func (s *Server) writeReportErr(w http.ResponseWriter, err error) {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		writeErr(w, http.StatusServiceUnavailable, "request cancelled")
		return
	}
	s.deps.Logger.Printf("analytics: %v", err)
	writeErr(w, http.StatusInternalServerError, "could not build analytics")
}

// GET /api/board
func (s *Server) getBoard(w http.ResponseWriter, r *http.Request) {
	board, err := s.deps.Board.Board(r.Context(), currentUser(r).ID)
	if err != nil {
		writeErr(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, board)
}

// GET /api/dashboard
func (s *Server) getDashboard(w http.ResponseWriter, r *http.Request) {
	d, err := s.deps.Dashboard.Dashboard(r.Context(), currentUser(r).ID)
	if err != nil {
		writeErr(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, d)
}
