package store

import "context"

// Page describes a navigable frontend page and its backing API endpoints.
// Pages are seeded at startup and are the universe the assistant can point at.
type Page struct {
	ID           int32
	Name         string
	Route        string
	Description  *string
	APIEndpoints map[string]string // method name (get/post) -> endpoint path
	CreatedTs    int64
}

// FindPage is the filter for listing pages.
type FindPage struct {
	ID    *int32
	Name  *string
	Limit *int
}

func (s *Store) CreatePage(ctx context.Context, create *Page) (*Page, error) {
	return s.driver.CreatePage(ctx, create)
}

func (s *Store) ListPages(ctx context.Context, find *FindPage) ([]*Page, error) {
	return s.driver.ListPages(ctx, find)
}
