package store

import "context"

// Role is a permission group assignable to users.
type Role struct {
	ID          int32
	Name        string
	Description *string
	Permissions []string
	CreatedTs   int64
}

// FindRole is the filter for listing roles.
type FindRole struct {
	ID    *int32
	Name  *string
	Limit *int
}

func (s *Store) CreateRole(ctx context.Context, create *Role) (*Role, error) {
	return s.driver.CreateRole(ctx, create)
}

func (s *Store) ListRoles(ctx context.Context, find *FindRole) ([]*Role, error) {
	return s.driver.ListRoles(ctx, find)
}
