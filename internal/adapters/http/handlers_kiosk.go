package web

import (
	"net/http"
	"strings"

	"powerpump/internal/application/orchestrators"
	"powerpump/internal/application/projections"
	"powerpump/internal/domain/member"
)

// checkinRequest is the body accepted by POST /checkin.
// An empty Action toggles; clock_in or clock_out forces one direction.
type checkinRequest struct {
	GymID  string
	Action string
}

// handleGetCheckinForm handles GET /checkin, the front-desk kiosk.
func (s *server) handleGetCheckinForm(w http.ResponseWriter, r *http.Request) {
	renderTemplate(w, r, "checkin.html", map[string]any{})
}

// handlePostCheckin handles POST /checkin.
// The typed gym ID is clocked out if the member has an open session today, otherwise clocked in.
// Refusals are answered with 200 and Success=false so the kiosk can show the message.
func (s *server) handlePostCheckin(w http.ResponseWriter, r *http.Request) {
	var req checkinRequest
	if isJSONRequest(r) {
		if err := strictDecode(w, r, &req); err != nil {
			badRequest(w, "invalid request")
			return
		}
	} else {
		if err := parseForm(w, r); err != nil {
			badRequest(w, "invalid form submission")
			return
		}
		req.GymID = r.FormValue("GymID")
		req.Action = r.FormValue("Action")
	}
	if strings.TrimSpace(req.GymID) == "" {
		badRequest(w, "GymID is required")
		return
	}

	input := orchestrators.ClockInput{GymID: member.NormalizeGymID(req.GymID)}
	var result orchestrators.ClockResult
	var err error
	switch req.Action {
	case "":
		result, err = orchestrators.ExecuteKioskToggle(r.Context(), input, s.clockDeps())
	case orchestrators.ActionClockIn:
		result, err = orchestrators.ExecuteClockIn(r.Context(), input, s.clockDeps())
	case orchestrators.ActionClockOut:
		result, err = orchestrators.ExecuteClockOut(r.Context(), input, s.clockDeps())
	default:
		badRequest(w, "Action must be clock_in or clock_out")
		return
	}
	if err != nil {
		internalError(w, r, err)
		return
	}

	if isJSONRequest(r) || !isHTMLRequest(r) {
		writeJSON(w, http.StatusOK, result)
		return
	}
	renderTemplate(w, r, "checkin.html", map[string]any{
		"Result": result,
	})
}

// handleKioskLookup handles GET /api/kiosk/lookup?gym_id=.
// The kiosk calls it while the ID is typed to show the member's name and the right button.
func (s *server) handleKioskLookup(w http.ResponseWriter, r *http.Request) {
	deps := projections.KioskLookupDeps{
		MemberStore:     s.stores.MemberStore,
		AttendanceStore: s.stores.AttendanceStore,
		Clock:           s.clock(),
	}
	result, err := projections.QueryKioskLookup(r.Context(), r.URL.Query().Get("gym_id"), deps)
	if err != nil {
		internalError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}
