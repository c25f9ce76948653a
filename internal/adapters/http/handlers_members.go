package web

import (
	"errors"
	"net/http"

	"powerpump/internal/application/listutil"
	"powerpump/internal/application/orchestrators"
	"powerpump/internal/application/projections"
	"powerpump/internal/domain/member"
)

// handleListMembers handles GET /api/members with search, filters, sorting and paging.
func (s *server) handleListMembers(w http.ResponseWriter, r *http.Request) {
	lp := listutil.ParseListParams(r.URL.Query(), projections.MemberListSortColumns, projections.MemberListFilterKeys)
	result, err := projections.QueryGetMemberList(r.Context(), projections.GetMemberListQuery{ListParams: lp},
		projections.GetMemberListDeps{MemberStore: s.stores.MemberStore})
	if err != nil {
		internalError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// handleAddMember handles POST /api/members.
// JSON clients get 201 with the stored member. Form posts from the admin page redirect back,
// or re-render the dashboard with the error when the input is refused.
func (s *server) handleAddMember(w http.ResponseWriter, r *http.Request) {
	var input orchestrators.AddMemberInput
	fromForm := !isJSONRequest(r)
	if fromForm {
		if err := parseForm(w, r); err != nil {
			badRequest(w, "invalid form submission")
			return
		}
		var err error
		if input, err = addMemberInputFromForm(r); err != nil {
			s.renderAdminDashboard(w, r, http.StatusBadRequest, err.Error())
			return
		}
	} else if err := strictDecode(w, r, &input); err != nil {
		badRequest(w, "invalid request")
		return
	}

	m, err := orchestrators.ExecuteAddMember(r.Context(), input, s.addMemberDeps())
	switch {
	case errors.Is(err, member.ErrInvalid) && fromForm:
		s.renderAdminDashboard(w, r, http.StatusBadRequest, errorMessage(err))
		return
	case errors.Is(err, member.ErrInvalid):
		badRequest(w, errorMessage(err))
		return
	case err != nil:
		internalError(w, r, err)
		return
	}

	if fromForm {
		http.Redirect(w, r, "/admin", http.StatusSeeOther)
		return
	}
	writeJSON(w, http.StatusCreated, m)
}

func addMemberInputFromForm(r *http.Request) (orchestrators.AddMemberInput, error) {
	start, err := parseDateParam("StartDate", r.FormValue("StartDate"))
	if err != nil {
		return orchestrators.AddMemberInput{}, err
	}
	end, err := parseDateParam("EndDate", r.FormValue("EndDate"))
	if err != nil {
		return orchestrators.AddMemberInput{}, err
	}
	return orchestrators.AddMemberInput{
		Name:           r.FormValue("Name"),
		Phone:          r.FormValue("Phone"),
		Address:        r.FormValue("Address"),
		Email:          r.FormValue("Email"),
		MembershipType: r.FormValue("MembershipType"),
		StartDate:      start,
		EndDate:        end,
		Status:         r.FormValue("Status"),
	}, nil
}

// handleGetMember handles GET /api/members/{id}.
func (s *server) handleGetMember(w http.ResponseWriter, r *http.Request) {
	m, err := projections.QueryGetMember(r.Context(), r.PathValue("id"), projections.MemberLookupDeps{MemberStore: s.stores.MemberStore})
	switch {
	case errors.Is(err, member.ErrNotFound):
		http.Error(w, "member not found", http.StatusNotFound)
		return
	case err != nil:
		internalError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, m)
}

// handleUpdateMember handles PATCH /api/members/{id}. Absent fields are left unchanged.
func (s *server) handleUpdateMember(w http.ResponseWriter, r *http.Request) {
	var patch member.Patch
	if err := strictDecode(w, r, &patch); err != nil {
		badRequest(w, "invalid request")
		return
	}

	m, err := orchestrators.ExecuteUpdateMember(r.Context(), orchestrators.UpdateMemberInput{ID: r.PathValue("id"), Patch: patch}, s.memberWriteDeps())
	switch {
	case errors.Is(err, member.ErrNotFound):
		http.Error(w, "member not found", http.StatusNotFound)
		return
	case errors.Is(err, member.ErrInvalid):
		badRequest(w, errorMessage(err))
		return
	case err != nil:
		internalError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, m)
}

// handleDeleteMember handles DELETE /api/members/{id}.
// Attendance history for the member is kept.
func (s *server) handleDeleteMember(w http.ResponseWriter, r *http.Request) {
	removed, err := orchestrators.ExecuteDeleteMember(r.Context(), orchestrators.DeleteMemberInput{ID: r.PathValue("id")}, s.memberWriteDeps())
	if err != nil {
		internalError(w, r, err)
		return
	}
	if !removed {
		http.Error(w, "member not found", http.StatusNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
