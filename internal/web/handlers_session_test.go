package web_test

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/acgh213/peoplefinder/internal/session"
	"github.com/acgh213/peoplefinder/internal/testutil"
)

func TestSession_UnknownCookieStartsNewSession(t *testing.T) {
	router, _, store := newTestServer(t, 30)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: session.CookieName, Value: "not-a-session"})
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("GET /: got %d, want 200", rr.Code)
	}
	var found bool
	for _, c := range rr.Result().Cookies() {
		if c.Name == session.CookieName && c.Value != "not-a-session" {
			found = true
		}
	}
	if !found {
		t.Error("expected a fresh view session cookie")
	}
	if store.Len() != 1 {
		t.Errorf("sessions = %d, want 1", store.Len())
	}
}

func TestSession_ExpiredSessionLosesResults(t *testing.T) {
	router, _, store := newTestServer(t, 30, testutil.MakePeople("Ana", 3)...)
	b := newBrowser(t, router)
	b.search("ana")

	store.Delete(b.cookies[session.CookieName].Value)

	body := b.get("/").Body.String()
	assertNotContains(t, body, `id="person-ana-1"`)
}

func TestCSRF_PostWithoutTokenRejected(t *testing.T) {
	router, api, _ := newTestServer(t, 30, testutil.MakePeople("Ana", 3)...)

	form := url.Values{"q": {"ana"}}
	req := httptest.NewRequest(http.MethodPost, "/search", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Origin", "http://example.com")
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusBadRequest && rr.Code != http.StatusForbidden {
		t.Errorf("expected 400 or 403 for missing CSRF, got %d", rr.Code)
	}
	if api.SearchCalls() != 0 {
		t.Errorf("search calls = %d, want 0", api.SearchCalls())
	}
}

func TestCSRF_WrongTokenRejected(t *testing.T) {
	router, _, _ := newTestServer(t, 30)
	b := newBrowser(t, router)
	b.get("/")

	b.csrf = "bogus-token"
	rr := b.do(http.MethodPost, "/clear", url.Values{"csrf_token": {"bogus-token"}})
	if rr.Code != http.StatusBadRequest && rr.Code != http.StatusForbidden {
		t.Errorf("expected 400 or 403 for wrong CSRF, got %d", rr.Code)
	}
}
