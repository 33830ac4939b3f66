package pagination

import "testing"

func TestPaginationParamsValidate(t *testing.T) {
	tests := []struct {
		name        string
		page        int
		perPage     int
		wantPage    int
		wantPerPage int
	}{
		{name: "defaults applied", page: 0, perPage: 0, wantPage: 1, wantPerPage: 15},
		{name: "negative page clamped", page: -3, perPage: 10, wantPage: 1, wantPerPage: 10},
		{name: "per page capped", page: 2, perPage: 500, wantPage: 2, wantPerPage: 100},
		{name: "valid values untouched", page: 3, perPage: 25, wantPage: 3, wantPerPage: 25},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &PaginationParams{Page: tt.page, PerPage: tt.perPage}
			p.Validate()
			if p.Page != tt.wantPage || p.PerPage != tt.wantPerPage {
				t.Errorf("Validate() = (%d, %d), want (%d, %d)", p.Page, p.PerPage, tt.wantPage, tt.wantPerPage)
			}
		})
	}
}

func TestOffset(t *testing.T) {
	p := &PaginationParams{Page: 3, PerPage: 20}
	if got := p.Offset(); got != 40 {
		t.Errorf("Offset() = %d, want 40", got)
	}
}

func TestNewPagination(t *testing.T) {
	pag := NewPagination(2, 15, 31)
	if pag.TotalPages != 3 {
		t.Errorf("TotalPages = %d, want 3", pag.TotalPages)
	}
	if !pag.HasNext || !pag.HasPrev {
		t.Errorf("HasNext = %v, HasPrev = %v, want both true on a middle page", pag.HasNext, pag.HasPrev)
	}

	last := NewPagination(3, 15, 31)
	if last.HasNext {
		t.Error("last page must not report HasNext")
	}
}
