package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/dashwise/dashwise/store"
)

func (d *DB) CreateRole(ctx context.Context, create *store.Role) (*store.Role, error) {
	var permissions any
	if create.Permissions != nil {
		raw, err := json.Marshal(create.Permissions)
		if err != nil {
			return nil, errors.Wrap(err, "failed to marshal permissions")
		}
		permissions = string(raw)
	}

	createdTs := create.CreatedTs
	if createdTs == 0 {
		createdTs = time.Now().Unix()
	}

	stmt := `
		INSERT INTO role (name, description, permissions, created_ts)
		VALUES (` + placeholders(4) + `)
		RETURNING id, created_ts
	`
	err := d.db.QueryRowContext(ctx, stmt,
		create.Name,
		create.Description,
		permissions,
		createdTs,
	).Scan(&create.ID, &create.CreatedTs)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create role")
	}

	return create, nil
}

func (d *DB) ListRoles(ctx context.Context, find *store.FindRole) ([]*store.Role, error) {
	where, args := []string{"1 = 1"}, []any{}

	if find.ID != nil {
		where, args = append(where, "id = "+placeholder(len(args)+1)), append(args, *find.ID)
	}
	if find.Name != nil {
		where, args = append(where, "name = "+placeholder(len(args)+1)), append(args, *find.Name)
	}

	query := `
		SELECT id, name, description, permissions, created_ts
		FROM role
		WHERE ` + strings.Join(where, " AND ") + `
		ORDER BY id
	`
	if find.Limit != nil {
		args = append(args, *find.Limit)
		query += " LIMIT " + placeholder(len(args))
	}

	rows, err := d.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list roles")
	}
	defer rows.Close()

	list := []*store.Role{}
	for rows.Next() {
		var role store.Role
		var permissions sql.NullString
		if err := rows.Scan(
			&role.ID,
			&role.Name,
			&role.Description,
			&permissions,
			&role.CreatedTs,
		); err != nil {
			return nil, errors.Wrap(err, "failed to scan role")
		}
		if permissions.Valid && permissions.String != "" {
			if err := json.Unmarshal([]byte(permissions.String), &role.Permissions); err != nil {
				return nil, errors.Wrap(err, "failed to unmarshal permissions")
			}
		}
		list = append(list, &role)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return list, nil
}
