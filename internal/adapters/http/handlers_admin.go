package web

import (
	"errors"
	"net/http"

	"powerpump/internal/adapters/http/middleware"
	"powerpump/internal/application/listutil"
	"powerpump/internal/application/orchestrators"
	"powerpump/internal/application/projections"
)

// loginRequest is the JSON body accepted by POST /admin/login.
type loginRequest struct {
	Email    string
	Password string
}

// handleGetLogin handles GET /admin/login.
func (s *server) handleGetLogin(w http.ResponseWriter, r *http.Request) {
	if sess, ok := middleware.GetSessionFromContext(r.Context()); ok && sess.IsAdmin() {
		http.Redirect(w, r, "/admin", http.StatusSeeOther)
		return
	}
	renderTemplate(w, r, "login.html", map[string]any{})
}

// handlePostLogin handles POST /admin/login from the form or a JSON client.
func (s *server) handlePostLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	jsonClient := isJSONRequest(r)
	if jsonClient {
		if err := strictDecode(w, r, &req); err != nil {
			badRequest(w, "invalid request")
			return
		}
	} else {
		if err := parseForm(w, r); err != nil {
			badRequest(w, "invalid form submission")
			return
		}
		req.Email = r.FormValue("Email")
		req.Password = r.FormValue("Password")
	}

	result, err := orchestrators.ExecuteAdminLogin(r.Context(),
		orchestrators.AdminLoginInput{Email: req.Email, Password: req.Password},
		orchestrators.AdminLoginDeps{Verifier: s.opts.Verifier})
	if errors.Is(err, orchestrators.ErrInvalidCredentials) {
		if jsonClient {
			http.Error(w, err.Error(), http.StatusUnauthorized)
			return
		}
		renderTemplateStatus(w, r, http.StatusUnauthorized, "login.html", map[string]any{"Error": err.Error()})
		return
	}
	if err != nil {
		internalError(w, r, err)
		return
	}

	token, err := s.sessions.Create(result.Email, result.Role)
	if err != nil {
		internalError(w, r, err)
		return
	}
	middleware.SetSessionCookie(w, token)

	if jsonClient {
		writeJSON(w, http.StatusOK, result)
		return
	}
	http.Redirect(w, r, "/admin", http.StatusSeeOther)
}

// handleLogout handles POST /admin/logout.
func (s *server) handleLogout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(middleware.SessionCookieName); err == nil {
		s.sessions.Delete(cookie.Value)
	}
	middleware.ClearSessionCookie(w)
	if isJSONRequest(r) {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	http.Redirect(w, r, "/admin/login", http.StatusSeeOther)
}

// handleAdminDashboard handles GET /admin: stats, today's entries and the member list.
func (s *server) handleAdminDashboard(w http.ResponseWriter, r *http.Request) {
	s.renderAdminDashboard(w, r, http.StatusOK, "")
}

// renderAdminDashboard renders the dashboard, showing formErr above the add-member form.
func (s *server) renderAdminDashboard(w http.ResponseWriter, r *http.Request, status int, formErr string) {
	ctx := r.Context()

	stats, err := projections.QueryComputeStats(ctx, s.dashboardDeps())
	if err != nil {
		internalError(w, r, err)
		return
	}
	today, err := projections.QueryRecordsForToday(ctx, s.attendanceDeps())
	if err != nil {
		internalError(w, r, err)
		return
	}

	lp := listutil.ParseListParams(r.URL.Query(), projections.MemberListSortColumns, projections.MemberListFilterKeys)
	members, err := projections.QueryGetMemberList(ctx, projections.GetMemberListQuery{ListParams: lp},
		projections.GetMemberListDeps{MemberStore: s.stores.MemberStore})
	if err != nil {
		internalError(w, r, err)
		return
	}

	renderTemplateStatus(w, r, status, "admin.html", map[string]any{
		"Stats":   stats,
		"Today":   today,
		"Members": members,
		"Search":  lp.Search,
		"Status":  lp.Filters["status"],
		"Error":   formErr,
	})
}
