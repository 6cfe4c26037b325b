package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/dashwise/dashwise/store"
)

func (d *DB) CreatePage(ctx context.Context, create *store.Page) (*store.Page, error) {
	var endpoints any
	if create.APIEndpoints != nil {
		raw, err := json.Marshal(create.APIEndpoints)
		if err != nil {
			return nil, errors.Wrap(err, "failed to marshal api endpoints")
		}
		endpoints = string(raw)
	}

	createdTs := create.CreatedTs
	if createdTs == 0 {
		createdTs = time.Now().Unix()
	}

	stmt := `
		INSERT INTO page (name, route, description, api_endpoints, created_ts)
		VALUES (?, ?, ?, ?, ?)
		RETURNING id, created_ts
	`
	err := d.db.QueryRowContext(ctx, stmt,
		create.Name,
		create.Route,
		create.Description,
		endpoints,
		createdTs,
	).Scan(&create.ID, &create.CreatedTs)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create page")
	}

	return create, nil
}

func (d *DB) ListPages(ctx context.Context, find *store.FindPage) ([]*store.Page, error) {
	where, args := []string{"1 = 1"}, []any{}

	if find.ID != nil {
		where, args = append(where, "id = ?"), append(args, *find.ID)
	}
	if find.Name != nil {
		where, args = append(where, "name = ?"), append(args, *find.Name)
	}

	query := `
		SELECT id, name, route, description, api_endpoints, created_ts
		FROM page
		WHERE ` + strings.Join(where, " AND ") + `
		ORDER BY id
	`
	if find.Limit != nil {
		query += " LIMIT ?"
		args = append(args, *find.Limit)
	}

	rows, err := d.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list pages")
	}
	defer rows.Close()

	list := []*store.Page{}
	for rows.Next() {
		page, err := scanPage(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, page)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return list, nil
}

func scanPage(rows *sql.Rows) (*store.Page, error) {
	var page store.Page
	var endpoints sql.NullString
	if err := rows.Scan(
		&page.ID,
		&page.Name,
		&page.Route,
		&page.Description,
		&endpoints,
		&page.CreatedTs,
	); err != nil {
		return nil, errors.Wrap(err, "failed to scan page")
	}
	if endpoints.Valid && endpoints.String != "" {
		if err := json.Unmarshal([]byte(endpoints.String), &page.APIEndpoints); err != nil {
			return nil, errors.Wrap(err, "failed to unmarshal api endpoints")
		}
	}
	return &page, nil
}
