package store

import (
	"context"
	"database/sql"
)

// Driver is an interface for database access.
type Driver interface {
	GetDB() *sql.DB
	Close() error

	Migrate(ctx context.Context) error

	// User model related methods.
	CreateUser(ctx context.Context, create *User) (*User, error)
	ListUsers(ctx context.Context, find *FindUser) ([]*User, error)

	// Role model related methods.
	CreateRole(ctx context.Context, create *Role) (*Role, error)
	ListRoles(ctx context.Context, find *FindRole) ([]*Role, error)

	// Page model related methods.
	CreatePage(ctx context.Context, create *Page) (*Page, error)
	ListPages(ctx context.Context, find *FindPage) ([]*Page, error)

	// Page embedding model related methods.
	UpsertPageEmbedding(ctx context.Context, upsert *PageEmbedding) (*PageEmbedding, error)
	DeleteAllPageEmbeddings(ctx context.Context, model string) error
	SearchPageEmbeddings(ctx context.Context, opts *SearchPageEmbeddingsOptions) ([]*PageMatch, error)
}
