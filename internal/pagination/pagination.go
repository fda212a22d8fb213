// Package pagination provides offset pagination over fetched result sets.
package pagination

import (
	"net/http"
	"strconv"
)

const (
	DefaultPerPage = 5

	// Delta is how many page numbers are shown on each side of the current one.
	Delta = 2

	// Ellipsis marks a collapsed gap in a page window.
	Ellipsis = 0
)

// Page holds pagination state for templates.
type Page struct {
	Number  int // current page (1-based)
	PerPage int
	Total   int
	HasNext bool
	HasPrev bool
}

// TotalPages returns the number of pages for p.Total items.
func (p Page) TotalPages() int {
	return TotalPages(p.Total, p.PerPage)
}

// TotalPages returns the number of pages needed for total items; an empty
// set still has one page.
func TotalPages(total, perPage int) int {
	if perPage <= 0 {
		perPage = DefaultPerPage
	}
	if total <= 0 {
		return 1
	}
	return (total + perPage - 1) / perPage
}

// Clamp limits page to [1, totalPages].
func Clamp(page, totalPages int) int {
	if page > totalPages {
		page = totalPages
	}
	if page < 1 {
		page = 1
	}
	return page
}

// FromRequest reads the page query parameter. The page size is fixed by the
// caller. requested is false when the parameter is absent or not a number,
// in which case Number is 1.
func FromRequest(r *http.Request, perPage int) (p Page, requested bool) {
	if perPage <= 0 {
		perPage = DefaultPerPage
	}
	p = Page{Number: 1, PerPage: perPage}
	if s := r.URL.Query().Get("page"); s != "" {
		if n, err := strconv.Atoi(s); err == nil {
			p.Number = n
			requested = true
		}
	}
	return p, requested
}

// Apply sets Total from a count and computes HasPrev/HasNext.
func (p *Page) Apply(total int) {
	p.Total = total
	p.HasPrev = p.Number > 1
	p.HasNext = p.Number < p.TotalPages()
}

// Slice returns items[(page-1)*perPage : page*perPage], truncated to the
// slice bounds. Out-of-range pages yield nil.
func Slice[T any](items []T, page, perPage int) []T {
	if page < 1 || perPage <= 0 {
		return nil
	}
	start := (page - 1) * perPage
	if start >= len(items) {
		return nil
	}
	end := start + perPage
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}

// Window returns the page numbers to show for current out of totalPages:
// page 1, the last page, and every page within delta of current. Gaps
// between those groups are marked with Ellipsis. current is clamped first.
func Window(current, totalPages, delta int) []int {
	if totalPages < 1 {
		return nil
	}
	current = Clamp(current, totalPages)

	pages := []int{1}
	if current > delta+2 {
		pages = append(pages, Ellipsis)
	}

	start := max(2, current-delta)
	end := min(totalPages-1, current+delta)
	for i := start; i <= end; i++ {
		pages = append(pages, i)
	}

	if current < totalPages-(delta+1) {
		pages = append(pages, Ellipsis)
	}
	if totalPages > 1 {
		pages = append(pages, totalPages)
	}

	return dedupe(pages)
}

// dedupe drops repeated page numbers, keeping every ellipsis marker.
func dedupe(pages []int) []int {
	seen := make(map[int]bool, len(pages))
	out := pages[:0]
	for _, n := range pages {
		if n != Ellipsis {
			if seen[n] {
				continue
			}
			seen[n] = true
		}
		out = append(out, n)
	}
	return out
}

// PageLink is one entry of a rendered page window.
type PageLink struct {
	Number   int
	URL      string
	Current  bool
	Ellipsis bool
}

// PageView is the template-friendly representation including URLs.
type PageView struct {
	Number  int
	PerPage int
	Total   int
	HasNext bool
	HasPrev bool
	PrevURL string
	NextURL string
	Links   []PageLink
}

// TotalPages returns total pages.
func (v PageView) TotalPages() int {
	return TotalPages(v.Total, v.PerPage)
}

// View builds a template-friendly PageView with prev/next and page-number
// URLs that preserve existing query parameters.
func (p Page) View(r *http.Request) PageView {
	v := PageView{
		Number:  p.Number,
		PerPage: p.PerPage,
		Total:   p.Total,
		HasNext: p.HasNext,
		HasPrev: p.HasPrev,
	}
	if p.HasPrev {
		v.PrevURL = buildPageURL(r, p.Number-1)
	}
	if p.HasNext {
		v.NextURL = buildPageURL(r, p.Number+1)
	}
	for _, n := range Window(p.Number, p.TotalPages(), Delta) {
		if n == Ellipsis {
			v.Links = append(v.Links, PageLink{Ellipsis: true})
			continue
		}
		v.Links = append(v.Links, PageLink{
			Number:  n,
			URL:     buildPageURL(r, n),
			Current: n == p.Number,
		})
	}
	return v
}

func buildPageURL(r *http.Request, page int) string {
	q := r.URL.Query()
	if page <= 1 {
		q.Del("page")
	} else {
		q.Set("page", strconv.Itoa(page))
	}
	if r.URL.Path == "" {
		return "?" + q.Encode()
	}
	if len(q) == 0 {
		return r.URL.Path
	}
	return r.URL.Path + "?" + q.Encode()
}
