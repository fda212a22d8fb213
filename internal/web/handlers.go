package web

import (
	"errors"
	"fmt"
	"html/template"
	"net"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"
	"github.com/justinas/nosurf"

	"github.com/acgh213/peoplefinder/internal/markdown"
	"github.com/acgh213/peoplefinder/internal/pagination"
	"github.com/acgh213/peoplefinder/internal/search"
	"github.com/acgh213/peoplefinder/internal/session"
)

const appTitle = "People Search"

type PageData struct {
	Title     string
	CSRFToken string
	Content   any
	Error     string
}

// SearchPageData is the content of the index page: either the result list
// or the selected profile.
type SearchPageData struct {
	CSRFToken  string
	View       search.View
	Pagination *pagination.PageView
	BioHTML    template.HTML
}

func (s *Server) newPageData(r *http.Request) PageData {
	return PageData{
		Title:     appTitle,
		CSRFToken: nosurf.Token(r),
	}
}

func (s *Server) render(w http.ResponseWriter, r *http.Request, name string, data PageData) {
	if flash := popFlashError(w, r); flash != "" && data.Error == "" {
		data.Error = flash
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.templates.ExecuteTemplate(w, name, data); err != nil {
		s.logger.Error("template render error", "template", name, "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}

func controllerFrom(r *http.Request) *search.Controller {
	return session.FromContext(r.Context()).Controller
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	ctrl := controllerFrom(r)

	pg, requested := pagination.FromRequest(r, search.PerPage)
	if requested {
		ctrl.SetPage(pg.Number)
	}

	view := ctrl.View()
	data := s.newPageData(r)
	content := SearchPageData{CSRFToken: data.CSRFToken, View: view}

	if view.Selected != nil {
		bio, err := markdown.Render(view.Selected.SummaryOfBio)
		if err != nil {
			s.logger.Error("failed to render bio", "username", view.Selected.Username, "error", err)
		}
		content.BioHTML = template.HTML(bio)
	} else if view.ShowPagination() {
		pg.Number = view.Page
		pg.Apply(len(view.Results))
		pv := pg.View(r)
		content.Pagination = &pv
	}

	if view.Selected != nil {
		data.Title = view.Selected.Name + " - " + appTitle
	}
	data.Error = view.Error
	data.Content = content
	s.render(w, r, "index.html", data)
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		setFlashError(w, "Invalid form data")
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	if ok, retry := s.limiter.Allow(clientIP(r)); !ok {
		s.logger.Warn("search rate limited", "ip", clientIP(r), "retry_after", retry)
		setFlashError(w, fmt.Sprintf("Too many searches. Please try again in %d seconds.", int(retry.Seconds())+1))
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	ctrl := controllerFrom(r)
	err := ctrl.Search(r.Context(), r.FormValue("q"))
	switch {
	case err == nil, errors.Is(err, search.ErrEmptyQuery), errors.Is(err, search.ErrSuperseded):
	default:
		s.logger.Error("search failed", "error", err)
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) handleSelectUser(w http.ResponseWriter, r *http.Request) {
	username := pathParam(r, "username")

	ctrl := controllerFrom(r)
	if err := ctrl.SelectUser(r.Context(), username); err != nil && !errors.Is(err, search.ErrSuperseded) {
		s.logger.Error("failed to fetch user", "username", username, "error", err)
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) handleBack(w http.ResponseWriter, r *http.Request) {
	controllerFrom(r).Back()
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// handleClear resets the view and forgets the session; the next request
// starts a fresh one.
func (s *Server) handleClear(w http.ResponseWriter, r *http.Request) {
	sess := session.FromContext(r.Context())
	sess.Controller.Clear()
	s.sessions.Delete(sess.ID.String())
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// clientIP returns the request's address without the port. RealIP has
// already replaced RemoteAddr when a proxy header was present.
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// pathParam returns the decoded URL parameter key. chi matches against the
// raw path when the request path carried escapes, so the value is still
// encoded in that case.
func pathParam(r *http.Request, key string) string {
	v := chi.URLParam(r, key)
	if r.URL.RawPath == "" {
		return v
	}
	if decoded, err := url.PathUnescape(v); err == nil {
		return decoded
	}
	return v
}
