package listutil

import (
	"net/url"
	"testing"
)

// TestParsePageParams verifies page parsing and defaults.
func TestParsePageParams(t *testing.T) {
	tests := []struct {
		name        string
		q           url.Values
		wantPage    int
		wantPerPage int
	}{
		{"defaults", url.Values{}, 1, DefaultPerPage},
		{"valid", url.Values{"page": {"3"}, "per_page": {"50"}}, 3, 50},
		{"per_page not offered", url.Values{"per_page": {"25"}}, 1, DefaultPerPage},
		{"negative page", url.Values{"page": {"-1"}}, 1, DefaultPerPage},
		{"garbage", url.Values{"page": {"two"}, "per_page": {"x"}}, 1, DefaultPerPage},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := ParsePageParams(tt.q)
			if p.Page != tt.wantPage || p.PerPage != tt.wantPerPage {
				t.Errorf("got (%d, %d), want (%d, %d)", p.Page, p.PerPage, tt.wantPage, tt.wantPerPage)
			}
		})
	}
}

// TestParseSortParams verifies column allow-listing and direction defaults.
func TestParseSortParams(t *testing.T) {
	cols := []string{"name", "gym_id"}
	tests := []struct {
		name     string
		q        url.Values
		wantSort string
		wantDir  string
	}{
		{"valid", url.Values{"sort": {"name"}, "dir": {"desc"}}, "name", "desc"},
		{"upper-case dir", url.Values{"sort": {"gym_id"}, "dir": {"DESC"}}, "gym_id", "desc"},
		{"disallowed column", url.Values{"sort": {"password"}}, "", "asc"},
		{"invalid dir", url.Values{"sort": {"name"}, "dir": {"sideways"}}, "name", "asc"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := ParseSortParams(tt.q, cols)
			if s.Sort != tt.wantSort || s.Dir != tt.wantDir {
				t.Errorf("got (%q, %q), want (%q, %q)", s.Sort, s.Dir, tt.wantSort, tt.wantDir)
			}
		})
	}
}

// TestParseFilterParams verifies only recognised keys are kept.
func TestParseFilterParams(t *testing.T) {
	q := url.Values{"q": {"  john "}, "status": {"active"}, "membership_type": {""}, "unknown": {"x"}}
	fp := ParseFilterParams(q, []string{"status", "membership_type"})
	if fp.Search != "john" {
		t.Errorf("search = %q, want john", fp.Search)
	}
	if fp.Filters["status"] != "active" {
		t.Errorf("status filter = %q, want active", fp.Filters["status"])
	}
	if _, ok := fp.Filters["membership_type"]; ok {
		t.Error("empty filter should be dropped")
	}
	if _, ok := fp.Filters["unknown"]; ok {
		t.Error("unrecognised key should be dropped")
	}
}

// TestNewPageInfo verifies pagination metadata computation.
func TestNewPageInfo(t *testing.T) {
	tests := []struct {
		name                          string
		page, perPage, total          int
		wantPage, wantPages, wantOffs int
		wantNext                      bool
	}{
		{"first page", 1, 20, 45, 1, 3, 0, true},
		{"middle page", 2, 20, 45, 2, 3, 20, true},
		{"last page", 3, 20, 45, 3, 3, 40, false},
		{"past the end clamps", 9, 20, 45, 3, 3, 40, false},
		{"empty list", 1, 20, 0, 1, 1, 0, false},
		{"zero per page defaults", 1, 0, 45, 1, 3, 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pi := NewPageInfo(tt.page, tt.perPage, tt.total)
			if pi.Page != tt.wantPage || pi.TotalPages != tt.wantPages || pi.Offset() != tt.wantOffs || pi.HasNext() != tt.wantNext {
				t.Errorf("got %+v offset=%d next=%v", pi, pi.Offset(), pi.HasNext())
			}
		})
	}
}
