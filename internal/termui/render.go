// Package termui renders search state for a terminal.
package termui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/acgh213/peoplefinder/internal/pagination"
	"github.com/acgh213/peoplefinder/internal/people"
	"github.com/acgh213/peoplefinder/internal/search"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("86")).
			Background(lipgloss.Color("235")).
			Padding(0, 1).
			Margin(0, 0, 1, 0)

	nameStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("214"))

	metaStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Italic(true)

	errorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("196"))

	noDataStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Italic(true).
			Margin(1, 0)

	currentPageStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("86"))

	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(1, 2)

	urlStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("33"))
)

// Render draws whatever the view currently shows: the selected profile, the
// result page, or the empty and error states.
func Render(v search.View) string {
	var out strings.Builder

	if v.Error != "" {
		out.WriteString(errorStyle.Render(v.Error))
		out.WriteString("\n")
	}

	switch {
	case v.Loading:
		out.WriteString(noDataStyle.Render("Loading..."))
		out.WriteString("\n")
	case v.Selected != nil:
		out.WriteString(Detail(v.Selected))
	case v.ShowList():
		out.WriteString(List(v))
	case v.NoResults:
		out.WriteString(noDataStyle.Render(search.MsgNoResults))
		out.WriteString("\n")
	}
	return out.String()
}

// List draws the visible page of results, numbered from 1 within the page,
// followed by the page controls.
func List(v search.View) string {
	var out strings.Builder

	total := v.TotalResults()
	suffix := "s"
	if total == 1 {
		suffix = ""
	}
	out.WriteString(titleStyle.Render(fmt.Sprintf("%d result%s for %q", total, suffix, strings.TrimSpace(v.Query))))
	out.WriteString("\n")

	for i, p := range v.Visible {
		fmt.Fprintf(&out, "%2d. %s %s\n", i+1, nameStyle.Render(p.Name), metaStyle.Render("@"+p.Username))
		if p.ProfessionalHeadline != "" {
			fmt.Fprintf(&out, "    %s\n", p.ProfessionalHeadline)
		}
	}

	if v.ShowPagination() {
		out.WriteString("\n")
		out.WriteString(PageBar(v.Window, v.Page, v.HasPrev, v.HasNext))
		out.WriteString("\n")
	}
	return out.String()
}

// PageBar draws the page window, marking the current page with brackets.
func PageBar(window []int, current int, hasPrev, hasNext bool) string {
	parts := make([]string, 0, len(window)+2)
	if hasPrev {
		parts = append(parts, "< prev")
	}
	for _, n := range window {
		switch {
		case n == pagination.Ellipsis:
			parts = append(parts, "...")
		case n == current:
			parts = append(parts, currentPageStyle.Render("["+strconv.Itoa(n)+"]"))
		default:
			parts = append(parts, strconv.Itoa(n))
		}
	}
	if hasNext {
		parts = append(parts, "next >")
	}
	return strings.Join(parts, " ")
}

// Detail draws a profile card.
func Detail(p *people.DetailedPerson) string {
	var body strings.Builder

	body.WriteString(nameStyle.Render(p.Name))
	body.WriteString("\n")
	if p.ProfessionalHeadline != "" {
		body.WriteString(p.ProfessionalHeadline)
		body.WriteString("\n")
	}
	if p.Location != "" {
		body.WriteString(metaStyle.Render(p.Location))
		body.WriteString("\n")
	}
	if p.SummaryOfBio != "" {
		body.WriteString("\n")
		body.WriteString(strings.TrimSpace(p.SummaryOfBio))
		body.WriteString("\n")
	}

	if links := p.VisibleLinks(); len(links) > 0 {
		body.WriteString("\n")
		for _, l := range links {
			fmt.Fprintf(&body, "%s: %s\n", l.Label(), urlStyle.Render(l.URL()))
		}
	}

	return cardStyle.Render(strings.TrimRight(body.String(), "\n")) + "\n"
}
