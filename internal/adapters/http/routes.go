package web

import (
	"net/http"
	"strings"

	"powerpump/internal/adapters/http/middleware"
)

func (s *server) registerRoutes(mux *http.ServeMux) {
	admin := func(h http.HandlerFunc) http.Handler { return middleware.RequireAdmin(h) }

	// Public
	mux.HandleFunc("GET /{$}", s.handleLanding)
	mux.HandleFunc("GET /healthz", s.handleHealthz)
	mux.Handle("GET /metrics", s.opts.Metrics.Handler())
	mux.HandleFunc("GET /checkin", s.handleGetCheckinForm)
	mux.HandleFunc("POST /checkin", s.handlePostCheckin)
	mux.HandleFunc("GET /api/kiosk/lookup", s.handleKioskLookup)

	// Session
	mux.HandleFunc("GET /admin/login", s.handleGetLogin)
	mux.HandleFunc("POST /admin/login", s.handlePostLogin)
	mux.HandleFunc("POST /admin/logout", s.handleLogout)

	// Admin
	mux.Handle("GET /admin", admin(s.handleAdminDashboard))
	mux.Handle("GET /api/members", admin(s.handleListMembers))
	mux.Handle("POST /api/members", admin(s.handleAddMember))
	mux.Handle("GET /api/members/{id}", admin(s.handleGetMember))
	mux.Handle("PATCH /api/members/{id}", admin(s.handleUpdateMember))
	mux.Handle("DELETE /api/members/{id}", admin(s.handleDeleteMember))
	mux.Handle("GET /api/members/{id}/attendance", admin(s.handleMemberAttendance))
	mux.Handle("GET /api/attendance", admin(s.handleAttendanceRange))
	mux.Handle("GET /api/attendance/today", admin(s.handleAttendanceToday))
	mux.Handle("GET /api/stats", admin(s.handleStats))
}

// knownRoutes are the fixed paths reported as their own metric label.
var knownRoutes = map[string]bool{
	"/":                     true,
	"/healthz":              true,
	"/metrics":              true,
	"/checkin":              true,
	"/api/kiosk/lookup":     true,
	"/admin":                true,
	"/admin/login":          true,
	"/admin/logout":         true,
	"/api/members":          true,
	"/api/attendance":       true,
	"/api/attendance/today": true,
	"/api/stats":            true,
}

// routeLabel maps a request path to a bounded metric label.
// Member IDs collapse to {id}; anything unrouted is "other".
func routeLabel(path string) string {
	if knownRoutes[path] {
		return path
	}
	rest, ok := strings.CutPrefix(path, "/api/members/")
	if !ok || rest == "" {
		return "other"
	}
	id, tail, _ := strings.Cut(rest, "/")
	switch {
	case id == "":
		return "other"
	case tail == "":
		return "/api/members/{id}"
	case tail == "attendance":
		return "/api/members/{id}/attendance"
	}
	return "other"
}
