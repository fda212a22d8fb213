package pagination

import (
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"
)

func TestFromRequest_Absent(t *testing.T) {
	r := httptest.NewRequest("GET", "/", nil)
	pg, requested := FromRequest(r, DefaultPerPage)
	if requested {
		t.Error("expected no page requested")
	}
	if pg.Number != 1 {
		t.Errorf("expected page 1, got %d", pg.Number)
	}
	if pg.PerPage != DefaultPerPage {
		t.Errorf("expected per_page %d, got %d", DefaultPerPage, pg.PerPage)
	}
}

func TestFromRequest_PageOnly(t *testing.T) {
	r := httptest.NewRequest("GET", "/?page=3&per_page=25", nil)
	pg, requested := FromRequest(r, DefaultPerPage)
	if !requested {
		t.Error("expected page requested")
	}
	if pg.Number != 3 {
		t.Errorf("expected page 3, got %d", pg.Number)
	}
	if pg.PerPage != DefaultPerPage {
		t.Errorf("per_page must stay fixed at %d, got %d", DefaultPerPage, pg.PerPage)
	}
}

func TestFromRequest_InvalidPage(t *testing.T) {
	r := httptest.NewRequest("GET", "/?page=abc", nil)
	pg, requested := FromRequest(r, DefaultPerPage)
	if requested {
		t.Error("non-numeric page should be ignored")
	}
	if pg.Number != 1 {
		t.Errorf("expected page 1, got %d", pg.Number)
	}
}

func TestFromRequest_NegativeLeftForClamp(t *testing.T) {
	r := httptest.NewRequest("GET", "/?page=-4", nil)
	pg, requested := FromRequest(r, DefaultPerPage)
	if !requested || pg.Number != -4 {
		t.Errorf("got page %d requested=%v, want -4 true", pg.Number, requested)
	}
	if got := Clamp(pg.Number, 3); got != 1 {
		t.Errorf("Clamp = %d, want 1", got)
	}
}

func TestApply(t *testing.T) {
	pg := Page{Number: 2, PerPage: 5}
	pg.Apply(12)
	if pg.Total != 12 {
		t.Errorf("expected total 12, got %d", pg.Total)
	}
	if !pg.HasPrev {
		t.Error("expected HasPrev true")
	}
	if !pg.HasNext {
		t.Error("expected HasNext true")
	}
	if pg.TotalPages() != 3 {
		t.Errorf("expected 3 total pages, got %d", pg.TotalPages())
	}
}

func TestSlice_TwelveItems(t *testing.T) {
	items := make([]int, 12)
	for i := range items {
		items[i] = i
	}

	tests := []struct {
		page  int
		first int
		count int
	}{
		{1, 0, 5},
		{2, 5, 5},
		{3, 10, 2},
	}
	for _, tt := range tests {
		got := Slice(items, tt.page, DefaultPerPage)
		if len(got) != tt.count {
			t.Errorf("page %d: expected %d items, got %d", tt.page, tt.count, len(got))
			continue
		}
		if got[0] != tt.first {
			t.Errorf("page %d: expected first item %d, got %d", tt.page, tt.first, got[0])
		}
	}

	last := Page{Number: 3, PerPage: DefaultPerPage}
	last.Apply(len(items))
	if last.HasNext {
		t.Error("last page should not have next")
	}
	if !last.HasPrev {
		t.Error("expected HasPrev true")
	}
}

func TestSlice_BeyondRange(t *testing.T) {
	if result := Slice([]int{1, 2, 3}, 99, 5); result != nil {
		t.Errorf("expected nil for out-of-range page, got %v", result)
	}
}

func TestTotalPages(t *testing.T) {
	tests := []struct {
		total, perPage, want int
	}{
		{0, 5, 1},
		{1, 5, 1},
		{5, 5, 1},
		{6, 5, 2},
		{12, 5, 3},
		{100, 5, 20},
	}
	for _, tt := range tests {
		if got := TotalPages(tt.total, tt.perPage); got != tt.want {
			t.Errorf("TotalPages(%d, %d) = %d, want %d", tt.total, tt.perPage, got, tt.want)
		}
	}
}

func TestClamp(t *testing.T) {
	if got := Clamp(0, 3); got != 1 {
		t.Errorf("Clamp(0, 3) = %d", got)
	}
	if got := Clamp(7, 3); got != 3 {
		t.Errorf("Clamp(7, 3) = %d", got)
	}
	if got := Clamp(2, 3); got != 2 {
		t.Errorf("Clamp(2, 3) = %d", got)
	}
}

func TestWindow(t *testing.T) {
	const E = Ellipsis
	tests := []struct {
		name           string
		current, total int
		want           []int
	}{
		{"middle", 5, 10, []int{1, E, 3, 4, 5, 6, 7, E, 10}},
		{"first page", 1, 10, []int{1, 2, 3, E, 10}},
		{"last page", 10, 10, []int{1, E, 8, 9, 10}},
		{"no leading gap", 4, 10, []int{1, 2, 3, 4, 5, 6, E, 10}},
		{"no trailing gap", 7, 10, []int{1, E, 5, 6, 7, 8, 9, 10}},
		{"single page", 1, 1, []int{1}},
		{"two pages", 2, 2, []int{1, 2}},
		{"few pages", 3, 5, []int{1, 2, 3, 4, 5}},
		{"current past end", 99, 4, []int{1, 2, 3, 4}},
		{"no pages", 1, 0, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Window(tt.current, tt.total, Delta)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Window(%d, %d) = %v, want %v", tt.current, tt.total, got, tt.want)
			}
		})
	}
}

func TestView_URLs(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/results?q=ana&view=grid", nil)
	pg := Page{Number: 2, PerPage: 5}
	pg.Apply(30)
	v := pg.View(r)

	if v.PrevURL != "/results?q=ana&view=grid" {
		t.Errorf("unexpected prev URL: %s", v.PrevURL)
	}
	if v.NextURL != "/results?page=3&q=ana&view=grid" {
		t.Errorf("unexpected next URL: %s", v.NextURL)
	}
}

func TestView_Links(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/results?page=5", nil)
	pg := Page{Number: 5, PerPage: 5}
	pg.Apply(50)
	v := pg.View(r)

	if len(v.Links) != 9 {
		t.Fatalf("expected 9 links, got %d: %+v", len(v.Links), v.Links)
	}
	if v.Links[0].URL != "/results" {
		t.Errorf("page 1 URL = %q, want /results", v.Links[0].URL)
	}
	if !v.Links[1].Ellipsis || !v.Links[7].Ellipsis {
		t.Errorf("expected ellipses at positions 1 and 7: %+v", v.Links)
	}
	if !v.Links[4].Current || v.Links[4].Number != 5 {
		t.Errorf("expected page 5 current: %+v", v.Links[4])
	}
	if v.Links[8].URL != "/results?page=10" {
		t.Errorf("last URL = %q", v.Links[8].URL)
	}
}

func TestView_FirstPage_NoPrevURL(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/results", nil)
	pg := Page{Number: 1, PerPage: 5}
	pg.Apply(4)
	v := pg.View(r)
	if v.HasPrev {
		t.Error("first page should not have prev")
	}
	if v.HasNext {
		t.Error("single page should not have next")
	}
	if v.PrevURL != "" {
		t.Error("expected empty prev URL")
	}
}
