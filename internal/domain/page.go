package domain

import (
	"net/url"
	"strings"
)

// Page identifies which funnel page emitted an event.
type Page string

const (
	PageQuiz      Page = "quiz"
	PageSales     Page = "sales"
	PageDashboard Page = "dashboard"
	PageUnknown   Page = "unknown"
)

// ClassifyPage maps a page URL onto one of the known funnel pages.
// Unparseable or unrecognized URLs classify as unknown.
func ClassifyPage(rawURL string) Page {
	if rawURL == "" {
		return PageUnknown
	}

	path := rawURL
	if u, err := url.Parse(rawURL); err == nil && u.Path != "" {
		path = u.Path
	}
	path = strings.ToLower(path)

	switch {
	case strings.Contains(path, "quiz"):
		return PageQuiz
	case strings.Contains(path, "sales"), strings.Contains(path, "vendas"):
		return PageSales
	case strings.Contains(path, "dashboard"):
		return PageDashboard
	default:
		return PageUnknown
	}
}
