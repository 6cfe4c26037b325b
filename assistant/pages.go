package assistant

import (
	"fmt"
	"sort"
	"strings"

	"github.com/dashwise/dashwise/store"
)

// PageDescriptor is static metadata for one navigable frontend page.
type PageDescriptor struct {
	Name        string
	Route       string
	Description string
	Endpoints   map[string]string // method name (get/post) -> endpoint path
}

// Catalog is the universe of pages the assistant can point at.
// It is built once at startup and read-only afterwards.
type Catalog struct {
	pages  []PageDescriptor
	byName map[string]PageDescriptor
}

func NewCatalog(pages []PageDescriptor) *Catalog {
	byName := make(map[string]PageDescriptor, len(pages))
	for _, page := range pages {
		byName[page.Name] = page
	}
	return &Catalog{pages: pages, byName: byName}
}

// DefaultCatalog returns the built-in page catalog, mirroring the seeded
// page rows.
func DefaultCatalog() *Catalog {
	return NewCatalog([]PageDescriptor{
		{
			Name:        "users",
			Route:       "/users",
			Description: "Manage users, view user list, create new users",
			Endpoints:   map[string]string{"get": "/api/users", "post": "/api/users"},
		},
		{
			Name:        "roles",
			Route:       "/roles",
			Description: "Manage roles and permissions, create new roles",
			Endpoints:   map[string]string{"get": "/api/roles", "post": "/api/roles"},
		},
	})
}

// CatalogFromPages builds a catalog from stored page rows, falling back to
// the defaults when the store holds none.
func CatalogFromPages(pages []*store.Page) *Catalog {
	if len(pages) == 0 {
		return DefaultCatalog()
	}
	descriptors := make([]PageDescriptor, 0, len(pages))
	for _, page := range pages {
		descriptor := PageDescriptor{
			Name:      page.Name,
			Route:     page.Route,
			Endpoints: page.APIEndpoints,
		}
		if page.Description != nil {
			descriptor.Description = *page.Description
		}
		descriptors = append(descriptors, descriptor)
	}
	return NewCatalog(descriptors)
}

func (c *Catalog) Pages() []PageDescriptor {
	return c.pages
}

func (c *Catalog) ByName(name string) (PageDescriptor, bool) {
	page, ok := c.byName[name]
	return page, ok
}

// EmbeddingText renders the text that gets embedded for this page.
func (p PageDescriptor) EmbeddingText() string {
	return fmt.Sprintf("%s page: %s - Frontend route: %s - API endpoints: %s",
		p.Name, p.Description, p.Route, p.EndpointSummary())
}

// ContextLine renders the page as one entry of the prompt context blob.
func (p PageDescriptor) ContextLine() string {
	return fmt.Sprintf("- %s: Frontend route %s - %s\n  API endpoints: %s",
		p.Name, p.Route, p.Description, p.EndpointSummary())
}

// EndpointSummary renders the endpoint map as human-readable text,
// e.g. "GET /api/users (list), POST /api/users (create)".
func (p PageDescriptor) EndpointSummary() string {
	if len(p.Endpoints) == 0 {
		return "none"
	}

	labels := map[string]string{"get": "list", "post": "create"}
	methods := make([]string, 0, len(p.Endpoints))
	for method := range p.Endpoints {
		methods = append(methods, method)
	}
	// get before post, anything else alphabetical after
	sort.Slice(methods, func(i, j int) bool {
		rank := func(m string) string {
			switch m {
			case "get":
				return "0"
			case "post":
				return "1"
			}
			return "2" + m
		}
		return rank(methods[i]) < rank(methods[j])
	})

	parts := make([]string, 0, len(methods))
	for _, method := range methods {
		part := strings.ToUpper(method) + " " + p.Endpoints[method]
		if label, ok := labels[method]; ok {
			part += " (" + label + ")"
		}
		parts = append(parts, part)
	}
	return strings.Join(parts, ", ")
}

// FallbackContext renders the full catalog; used whenever the semantic
// index cannot answer.
func (c *Catalog) FallbackContext() string {
	lines := make([]string, 0, len(c.pages))
	for _, page := range c.pages {
		lines = append(lines, page.ContextLine())
	}
	return strings.Join(lines, "\n")
}
