package web

import (
	"errors"
	"net/http"

	"powerpump/internal/application/projections"
)

// handleMemberAttendance handles GET /api/members/{id}/attendance, newest first.
// History outlives the member record, so an unknown ID yields an empty list.
func (s *server) handleMemberAttendance(w http.ResponseWriter, r *http.Request) {
	records, err := projections.QueryHistoryForMember(r.Context(), r.PathValue("id"), s.attendanceDeps())
	if err != nil {
		internalError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, records)
}

// handleAttendanceRange handles GET /api/attendance?start=YYYY-MM-DD&end=YYYY-MM-DD.
// Both bounds are inclusive and required.
func (s *server) handleAttendanceRange(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	start, err := parseDateParam("start", q.Get("start"))
	if err != nil {
		badRequest(w, err.Error())
		return
	}
	end, err := parseDateParam("end", q.Get("end"))
	if err != nil {
		badRequest(w, err.Error())
		return
	}

	records, err := projections.QueryRecordsInRange(r.Context(), projections.RecordsInRangeQuery{Start: start, End: end}, s.attendanceDeps())
	switch {
	case errors.Is(err, projections.ErrInvalidRange):
		badRequest(w, err.Error())
		return
	case err != nil:
		internalError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, records)
}

// handleAttendanceToday handles GET /api/attendance/today.
func (s *server) handleAttendanceToday(w http.ResponseWriter, r *http.Request) {
	records, err := projections.QueryRecordsForToday(r.Context(), s.attendanceDeps())
	if err != nil {
		internalError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, records)
}

// handleStats handles GET /api/stats.
func (s *server) handleStats(w http.ResponseWriter, r *http.Request) {
	stats, err := projections.QueryComputeStats(r.Context(), s.dashboardDeps())
	if err != nil {
		internalError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}
