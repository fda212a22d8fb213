// Package people holds the records returned by the people-search API.
package people

import (
	"html"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// DefaultPicture is shown when a profile has no picture URL.
const DefaultPicture = "/static/img/default-profile.svg"

// Person is a summary search result. Username is the unique key within one
// search response.
type Person struct {
	Username             string `json:"username"`
	Name                 string `json:"name"`
	ProfessionalHeadline string `json:"professionalHeadline"`
	Picture              string `json:"picture"`
}

// PictureURL returns the picture URL or the default profile image.
func (p Person) PictureURL() string {
	if strings.TrimSpace(p.Picture) == "" {
		return DefaultPicture
	}
	return p.Picture
}

// Unescape decodes HTML entities the API leaves in text fields.
func (p Person) Unescape() Person {
	p.Name = html.UnescapeString(p.Name)
	p.ProfessionalHeadline = html.UnescapeString(p.ProfessionalHeadline)
	return p
}

// DetailedPerson is the full profile fetched when a result is selected.
type DetailedPerson struct {
	Person
	SummaryOfBio string       `json:"summaryOfBio"`
	Location     string       `json:"location"`
	Links        []SocialLink `json:"links"`
}

func (d DetailedPerson) Unescape() DetailedPerson {
	d.Person = d.Person.Unescape()
	d.SummaryOfBio = html.UnescapeString(d.SummaryOfBio)
	d.Location = html.UnescapeString(d.Location)
	return d
}

// VisibleLinks returns the links that resolve to an address, in order.
func (d DetailedPerson) VisibleLinks() []SocialLink {
	var out []SocialLink
	for _, l := range d.Links {
		if l.URL() != "" {
			out = append(out, l)
		}
	}
	return out
}

// SocialLink is one entry of a profile's link list.
type SocialLink struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Address string `json:"address"`
}

var handleURLs = map[string]string{
	"medium":    "https://medium.com/@",
	"twitter":   "https://twitter.com/",
	"instagram": "https://instagram.com/",
	"github":    "https://github.com/",
}

// URL expands a bare handle into a full address for known platforms.
// An empty address yields "".
func (l SocialLink) URL() string {
	addr := strings.TrimSpace(l.Address)
	if addr == "" {
		return ""
	}
	if strings.HasPrefix(addr, "http") {
		return addr
	}
	if prefix, ok := handleURLs[l.Platform()]; ok {
		return prefix + addr
	}
	return addr
}

// Platform is the lower-cased platform name, used for CSS classes and lookups.
func (l SocialLink) Platform() string {
	return strings.ToLower(strings.TrimSpace(l.Name))
}

// Label is the display name of the platform.
func (l SocialLink) Label() string {
	if l.Platform() == "" {
		return "Link"
	}
	return cases.Title(language.English).String(l.Platform())
}

// PaginationInfo is the server-reported paging metadata of a search.
type PaginationInfo struct {
	TotalResults int `json:"total_results"`
	TotalPages   int `json:"total_pages"`
	ItemsPerPage int `json:"items_per_page"`
}

// SearchResult is the data payload of a successful search.
type SearchResult struct {
	Results    []Person       `json:"results"`
	Pagination PaginationInfo `json:"pagination"`
}
