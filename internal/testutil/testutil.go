// Package testutil provides an in-process fake of the people-search API.
//
// The fake serves the same two endpoints and envelope as the real API so
// client, controller and handler tests run without network access.
package testutil

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/acgh213/peoplefinder/internal/pagination"
	"github.com/acgh213/peoplefinder/internal/people"
)

// FakeAPI is a people API backed by in-memory records.
type FakeAPI struct {
	Server *httptest.Server

	mu          sync.Mutex
	people      []people.Person
	profiles    map[string]people.DetailedPerson
	rejections  map[string]string
	searchCalls int
	userCalls   int
}

// NewFakeAPI starts a fake API serving the given people. It is closed when
// the test ends.
func NewFakeAPI(t *testing.T, list ...people.Person) *FakeAPI {
	t.Helper()

	f := &FakeAPI{
		people:     list,
		profiles:   make(map[string]people.DetailedPerson),
		rejections: make(map[string]string),
	}

	r := chi.NewRouter()
	r.Get("/api/search/{name}", f.handleSearch)
	r.Get("/api/user/{username}", f.handleUser)

	f.Server = httptest.NewServer(r)
	t.Cleanup(f.Server.Close)
	return f
}

// URL is the base URL to hand to a client.
func (f *FakeAPI) URL() string {
	return f.Server.URL
}

// AddProfile registers the detail record for p.Username.
func (f *FakeAPI) AddProfile(p people.DetailedPerson) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.profiles[p.Username] = p
}

// Reject makes requests for key (a search name or a username) answer with
// success=false and message.
func (f *FakeAPI) Reject(key, message string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.rejections[key] = message
}

func (f *FakeAPI) SearchCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.searchCalls
}

func (f *FakeAPI) UserCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.userCalls
}

func (f *FakeAPI) handleSearch(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	f.mu.Lock()
	defer f.mu.Unlock()
	f.searchCalls++

	if msg, ok := f.rejections[name]; ok {
		writeEnvelope(w, false, nil, msg)
		return
	}

	var matches []people.Person
	for _, p := range f.people {
		if strings.Contains(strings.ToLower(p.Name), strings.ToLower(name)) {
			matches = append(matches, p)
		}
	}
	if len(matches) == 0 {
		writeEnvelope(w, false, nil, "No matching names found")
		return
	}

	writeEnvelope(w, true, people.SearchResult{
		Results: matches,
		Pagination: people.PaginationInfo{
			TotalResults: len(matches),
			TotalPages:   pagination.TotalPages(len(matches), pagination.DefaultPerPage),
			ItemsPerPage: pagination.DefaultPerPage,
		},
	}, "")
}

func (f *FakeAPI) handleUser(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")

	f.mu.Lock()
	defer f.mu.Unlock()
	f.userCalls++

	if msg, ok := f.rejections[username]; ok {
		writeEnvelope(w, false, nil, msg)
		return
	}
	p, ok := f.profiles[username]
	if !ok {
		writeEnvelope(w, false, nil, "Not enough data available")
		return
	}
	writeEnvelope(w, true, p, "")
}

func writeEnvelope(w http.ResponseWriter, success bool, data any, message string) {
	w.Header().Set("Content-Type", "application/json")
	body := map[string]any{"success": success}
	if data != nil {
		body["data"] = data
	}
	if message != "" {
		body["message"] = message
	}
	_ = json.NewEncoder(w).Encode(body)
}

// MakePeople returns n people named "<prefix> <i>" with usernames
// "<prefix>-<i>", numbered from 1.
func MakePeople(prefix string, n int) []people.Person {
	list := make([]people.Person, n)
	for i := range list {
		list[i] = people.Person{
			Username:             fmt.Sprintf("%s-%d", strings.ToLower(prefix), i+1),
			Name:                 fmt.Sprintf("%s %d", prefix, i+1),
			ProfessionalHeadline: "Engineer",
			Picture:              fmt.Sprintf("https://img.example/%d.jpg", i+1),
		}
	}
	return list
}
