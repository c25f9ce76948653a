package projections

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"strings"

	"powerpump/internal/application/listutil"
	domainMember "powerpump/internal/domain/member"
)

// MemberListSortColumns are the columns the member list may be sorted by.
var MemberListSortColumns = []string{"name", "gym_id", "created_at", "end_date"}

// MemberListFilterKeys are the recognised exact-match filters.
var MemberListFilterKeys = []string{"status", "membership_type"}

// GetMemberListQuery carries query parameters.
type GetMemberListQuery struct {
	listutil.ListParams
}

// GetMemberListResult carries one page of members plus paging metadata.
type GetMemberListResult struct {
	Members []domainMember.Member
	Page    listutil.PageInfo
}

// GetMemberListDeps holds dependencies for GetMemberList.
type GetMemberListDeps struct {
	MemberStore MemberStore
}

// QueryGetMemberList searches, filters, sorts and pages the registry.
// Search matches a case-insensitive name substring or an upper-cased gym ID substring.
// PRE: ListParams come from listutil parsing
// POST: Members holds at most PerPage entries; Page.Total counts all matches
func QueryGetMemberList(ctx context.Context, query GetMemberListQuery, deps GetMemberListDeps) (GetMemberListResult, error) {
	members, err := deps.MemberStore.Load(ctx)
	if err != nil {
		return GetMemberListResult{}, fmt.Errorf("load members: %w", err)
	}

	matched := make([]domainMember.Member, 0, len(members))
	for _, m := range members {
		if matchesSearch(m, query.Search) && matchesFilters(m, query.Filters) {
			matched = append(matched, m)
		}
	}
	sortMembers(matched, query.SortParams)

	page := listutil.NewPageInfo(query.Page, query.PerPage, len(matched))
	start := min(page.Offset(), len(matched))
	end := min(start+page.PerPage, len(matched))
	return GetMemberListResult{Members: matched[start:end], Page: page}, nil
}

func matchesSearch(m domainMember.Member, search string) bool {
	search = strings.TrimSpace(search)
	if search == "" {
		return true
	}
	return strings.Contains(strings.ToLower(m.Name), strings.ToLower(search)) ||
		strings.Contains(m.GymID, strings.ToUpper(search))
}

func matchesFilters(m domainMember.Member, filters map[string]string) bool {
	if v, ok := filters["status"]; ok && m.Status != v {
		return false
	}
	if v, ok := filters["membership_type"]; ok && m.MembershipType != v {
		return false
	}
	return true
}

// sortMembers keeps stored order when no sort column is given.
func sortMembers(members []domainMember.Member, sp listutil.SortParams) {
	var compare func(a, b domainMember.Member) int
	switch sp.Sort {
	case "name":
		compare = func(a, b domainMember.Member) int { return cmp.Compare(strings.ToLower(a.Name), strings.ToLower(b.Name)) }
	case "gym_id":
		compare = func(a, b domainMember.Member) int { return cmp.Compare(a.GymID, b.GymID) }
	case "created_at":
		compare = func(a, b domainMember.Member) int { return a.CreatedAt.Compare(b.CreatedAt) }
	case "end_date":
		compare = func(a, b domainMember.Member) int {
			switch {
			case a.EndDate.Before(b.EndDate):
				return -1
			case a.EndDate.After(b.EndDate):
				return 1
			}
			return 0
		}
	default:
		return
	}
	if sp.Dir == "desc" {
		asc := compare
		compare = func(a, b domainMember.Member) int { return asc(b, a) }
	}
	slices.SortStableFunc(members, compare)
}
