// Package navigation holds the page context of the portal: breadcrumbs, the
// active section and the side menu filtered by the permissions of the principal.
package navigation

import (
	"github.com/portal-prestadores/portal/internal/gate"
	"github.com/portal-prestadores/portal/internal/permission"
)

// Sections of the portal menu.
const (
	SectionDashboard     = "dashboard"
	SectionUsers         = "usuarios"
	SectionContracts     = "contratos"
	SectionAnnouncements = "avisos"
)

// BreadcrumbItem represents a single breadcrumb link.
type BreadcrumbItem struct {
	Title  string
	URL    string
	Active bool
}

// Context represents the navigation context for a page.
type Context struct {
	ActiveSection string
	ActivePage    string
	Breadcrumbs   []BreadcrumbItem
	PageTitle     string
}

// NewContext creates a new navigation context.
func NewContext(pageTitle, activeSection, activePage string) *Context {
	return &Context{
		PageTitle:     pageTitle,
		ActiveSection: activeSection,
		ActivePage:    activePage,
		Breadcrumbs:   make([]BreadcrumbItem, 0),
	}
}

// AddBreadcrumb adds a breadcrumb item to the context.
func (c *Context) AddBreadcrumb(title, url string, active bool) *Context {
	c.Breadcrumbs = append(c.Breadcrumbs, BreadcrumbItem{
		Title:  title,
		URL:    url,
		Active: active,
	})

	return c
}

// IsActive checks if the given section and page match the current context.
func (c *Context) IsActive(section, page string) bool {
	return c.ActiveSection == section && c.ActivePage == page
}

// IsSectionActive checks if the given section is active.
func (c *Context) IsSectionActive(section string) bool {
	return c.ActiveSection == section
}

// MenuItem is an entry of the side menu.
type MenuItem struct {
	Section string
	Title   string
	URL     string
	Gate    gate.Gate
}

// DefaultMenu is the side menu of the portal.
func DefaultMenu() []MenuItem {
	return []MenuItem{
		{Section: SectionDashboard, Title: "Início", URL: "/dashboard"},
		{Section: SectionUsers, Title: "Usuários", URL: "/usuarios", Gate: gate.One(permission.ViewUsers)},
		{
			Section: SectionContracts,
			Title:   "Contratos",
			URL:     "/contratos",
			Gate:    gate.Any(permission.ViewContracts, permission.DeleteContract),
		},
		{Section: SectionAnnouncements, Title: "Avisos", URL: "/avisos", Gate: gate.One(permission.ViewAnnouncements)},
	}
}

// Visible returns the items of menu whose gate allows s.
func Visible(s gate.Subject, menu []MenuItem) []MenuItem {
	out := make([]MenuItem, 0, len(menu))

	for _, item := range menu {
		if item.Gate.Allows(s) {
			out = append(out, item)
		}
	}

	return out
}
