package store

import "context"

// User is a managed dashboard user.
type User struct {
	ID          int32
	Name        string
	PhoneNumber string
	Email       *string
	CreatedTs   int64
}

// FindUser is the filter for listing users.
type FindUser struct {
	ID    *int32
	Name  *string
	Limit *int
}

func (s *Store) CreateUser(ctx context.Context, create *User) (*User, error) {
	return s.driver.CreateUser(ctx, create)
}

func (s *Store) ListUsers(ctx context.Context, find *FindUser) ([]*User, error) {
	return s.driver.ListUsers(ctx, find)
}
