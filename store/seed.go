package store

import (
	"context"
	"log/slog"
)

// seedPages are the dashboard pages known at first boot.
var seedPages = []*Page{
	{
		Name:        "users",
		Route:       "/users",
		Description: stringPtr("Manage users, view user list, create new users"),
		APIEndpoints: map[string]string{
			"get":  "/api/users",
			"post": "/api/users",
		},
	},
	{
		Name:        "roles",
		Route:       "/roles",
		Description: stringPtr("Manage roles and permissions, create new roles"),
		APIEndpoints: map[string]string{
			"get":  "/api/roles",
			"post": "/api/roles",
		},
	},
}

// SeedPages inserts the initial page catalog. Existing rows are left untouched.
func (s *Store) SeedPages(ctx context.Context) error {
	existing, err := s.ListPages(ctx, &FindPage{})
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		slog.Debug("pages already exist, skipping seed", "count", len(existing))
		return nil
	}

	for _, page := range seedPages {
		if _, err := s.CreatePage(ctx, page); err != nil {
			return err
		}
	}
	slog.Info("seeded page catalog", "count", len(seedPages))
	return nil
}

func stringPtr(s string) *string {
	return &s
}
