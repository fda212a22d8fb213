// Package search holds the query state shared by the web and terminal front
// ends: the text being searched, the fetched result set, the current page
// and the selected profile.
package search

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/acgh213/peoplefinder/internal/metrics"
	"github.com/acgh213/peoplefinder/internal/pagination"
	"github.com/acgh213/peoplefinder/internal/peopleapi"
	"github.com/acgh213/peoplefinder/internal/people"
)

// User-facing messages.
const (
	MsgEmptyQuery   = "Please enter a name to search"
	MsgSearchFailed = "Failed to fetch data. Please try again."
	MsgUserFailed   = "Failed to fetch user details. Please try again."
	MsgNoResults    = "No matching names found"
)

// PerPage is the fixed number of results shown per page.
const PerPage = pagination.DefaultPerPage

var (
	ErrEmptyQuery = errors.New("empty query")

	// ErrSuperseded is returned when a newer action started while the
	// request was in flight; its response was dropped.
	ErrSuperseded = errors.New("superseded by a newer request")
)

// API is the subset of the people API the controller needs.
type API interface {
	Search(ctx context.Context, name string) (*people.SearchResult, error)
	User(ctx context.Context, username string) (*people.DetailedPerson, error)
}

// State is the controller's state. Results is the full fetched set; pages
// are sliced from it locally.
type State struct {
	Query      string
	Loading    bool
	Error      string
	Searched   bool
	Results    []people.Person
	Pagination *people.PaginationInfo
	Page       int
	Selected   *people.DetailedPerson
}

// Controller issues searches and profile lookups and tracks their outcome.
// It is safe for concurrent use. Searches and profile lookups each carry a
// generation; a response from an older generation is discarded. A new
// search or Clear supersedes both kinds, a profile lookup only supersedes
// earlier lookups.
type Controller struct {
	api API

	mu        sync.Mutex
	state     State
	searchGen uint64
	userGen   uint64

	searching    bool
	fetchingUser bool
}

func NewController(api API) *Controller {
	return &Controller{api: api, state: State{Page: 1}}
}

// Search replaces the result set with the results for name. Blank input is
// rejected without a request and clears prior results.
func (c *Controller) Search(ctx context.Context, name string) error {
	trimmed := strings.TrimSpace(name)

	c.mu.Lock()
	c.reset()
	gen := c.searchGen
	c.state.Query = name
	c.state.Searched = true
	if trimmed == "" {
		c.state.Error = MsgEmptyQuery
		c.mu.Unlock()
		metrics.SearchesTotal.WithLabelValues("invalid").Inc()
		return ErrEmptyQuery
	}
	c.searching = true
	c.syncLoading()
	c.mu.Unlock()

	res, err := c.api.Search(ctx, trimmed)

	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.searchGen {
		return ErrSuperseded
	}
	c.searching = false
	c.syncLoading()

	if err != nil {
		c.state.Error = userMessage(err, MsgSearchFailed)
		metrics.SearchesTotal.WithLabelValues("failed").Inc()
		return err
	}

	c.state.Results = res.Results
	info := res.Pagination
	c.state.Pagination = &info
	if len(res.Results) == 0 {
		metrics.SearchesTotal.WithLabelValues("empty").Inc()
	} else {
		metrics.SearchesTotal.WithLabelValues("results").Inc()
	}
	return nil
}

// SelectUser fetches the profile for username. On failure any previously
// selected profile is dropped so the list shows again with the error; the
// results, query and page are kept.
func (c *Controller) SelectUser(ctx context.Context, username string) error {
	c.mu.Lock()
	c.userGen++
	gen := c.userGen
	c.state.Error = ""
	c.fetchingUser = true
	c.syncLoading()
	c.mu.Unlock()

	p, err := c.api.User(ctx, username)

	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.userGen {
		return ErrSuperseded
	}
	c.fetchingUser = false
	c.syncLoading()

	if err != nil {
		c.state.Selected = nil
		c.state.Error = userMessage(err, MsgUserFailed)
		return err
	}
	c.state.Selected = p
	return nil
}

// SetQuery records the text being typed. Blank text resets the results the
// same way Clear does but keeps the text.
func (c *Controller) SetQuery(q string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if strings.TrimSpace(q) == "" {
		c.reset()
	}
	c.state.Query = q
}

// Clear returns the controller to its initial state and drops any response
// still in flight.
func (c *Controller) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.reset()
}

func (c *Controller) reset() {
	c.searchGen++
	c.userGen++
	c.searching = false
	c.fetchingUser = false
	c.state = State{Page: 1}
}

// syncLoading derives the exposed loading flag from the requests in flight.
// Must be called with c.mu held.
func (c *Controller) syncLoading() {
	c.state.Loading = c.searching || c.fetchingUser
}

// Back discards the selected profile and returns to the list.
func (c *Controller) Back() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.Selected = nil
	c.state.Error = ""
}

// SetPage moves to page n, clamped to the available pages. It never fetches.
func (c *Controller) SetPage(n int) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.setPage(n)
}

func (c *Controller) NextPage() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.setPage(c.state.Page + 1)
}

func (c *Controller) PrevPage() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.setPage(c.state.Page - 1)
}

func (c *Controller) setPage(n int) int {
	c.state.Page = pagination.Clamp(n, c.totalPages())
	return c.state.Page
}

// Loading reports whether a request is in flight.
func (c *Controller) Loading() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.Loading
}

// State returns a copy of the current state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

func (c *Controller) totalPages() int {
	return pagination.TotalPages(len(c.state.Results), PerPage)
}

// View is a render-ready snapshot of the controller.
type View struct {
	State
	Visible    []people.Person
	TotalPages int
	Window     []int
	HasPrev    bool
	HasNext    bool
	NoResults  bool
}

// ShowPagination reports whether page controls are worth rendering.
func (v View) ShowPagination() bool {
	return v.TotalPages > 1
}

// ShowList reports whether the result list is visible.
func (v View) ShowList() bool {
	return v.Selected == nil && len(v.Visible) > 0
}

// TotalResults prefers the server's count and falls back to the fetched set.
func (v View) TotalResults() int {
	if v.Pagination != nil && v.Pagination.TotalResults > 0 {
		return v.Pagination.TotalResults
	}
	return len(v.Results)
}

// View returns the visible slice and page window for the current page.
func (c *Controller) View() View {
	c.mu.Lock()
	defer c.mu.Unlock()

	total := c.totalPages()
	page := pagination.Clamp(c.state.Page, total)
	v := View{
		State:      c.state,
		Visible:    pagination.Slice(c.state.Results, page, PerPage),
		TotalPages: total,
		HasPrev:    page > 1,
		HasNext:    page < total,
		NoResults:  c.state.Searched && !c.state.Loading && len(c.state.Results) == 0 && c.state.Error == "",
	}
	v.Page = page
	if len(c.state.Results) > 0 {
		v.Window = pagination.Window(page, total, pagination.Delta)
	}
	return v
}

func userMessage(err error, fallback string) string {
	var apiErr *peopleapi.APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback
}
