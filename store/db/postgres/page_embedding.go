package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/pgvector/pgvector-go"
	"github.com/pkg/errors"

	"github.com/dashwise/dashwise/store"
)

// UpsertPageEmbedding inserts or updates a page embedding.
func (d *DB) UpsertPageEmbedding(ctx context.Context, upsert *store.PageEmbedding) (*store.PageEmbedding, error) {
	stmt := `
		INSERT INTO page_embedding (page_id, embedding, model, updated_ts)
		VALUES (` + placeholders(4) + `)
		ON CONFLICT (page_id, model)
		DO UPDATE SET
			embedding = EXCLUDED.embedding,
			updated_ts = EXCLUDED.updated_ts
		RETURNING id, updated_ts
	`

	updatedTs := upsert.UpdatedTs
	if updatedTs == 0 {
		updatedTs = time.Now().Unix()
	}

	vector := pgvector.NewVector(upsert.Embedding)
	err := d.db.QueryRowContext(ctx, stmt,
		upsert.PageID,
		vector,
		upsert.Model,
		updatedTs,
	).Scan(&upsert.ID, &upsert.UpdatedTs)
	if err != nil {
		return nil, errors.Wrap(err, "failed to upsert page embedding")
	}

	return upsert, nil
}

// DeleteAllPageEmbeddings clears the index for the given model.
func (d *DB) DeleteAllPageEmbeddings(ctx context.Context, model string) error {
	stmt := `DELETE FROM page_embedding WHERE model = ` + placeholder(1)
	if _, err := d.db.ExecContext(ctx, stmt, model); err != nil {
		return errors.Wrap(err, "failed to delete page embeddings")
	}
	return nil
}

// SearchPageEmbeddings performs vector similarity search using pgvector.
func (d *DB) SearchPageEmbeddings(ctx context.Context, opts *store.SearchPageEmbeddingsOptions) ([]*store.PageMatch, error) {
	limit := opts.Limit
	if limit <= 0 {
		limit = 5
	}

	// The <=> operator computes cosine distance (1 - cosine_similarity),
	// so ordering by distance ASC returns the most similar pages first.
	query := `
		SELECT
			p.id, p.name, p.route, p.description, p.api_endpoints, p.created_ts,
			1 - (e.embedding <=> ` + placeholder(1) + `) AS score
		FROM page p
		INNER JOIN page_embedding e ON p.id = e.page_id
		WHERE e.model = ` + placeholder(2) + `
		ORDER BY e.embedding <=> ` + placeholder(3) + `
		LIMIT ` + placeholder(4)

	vector := pgvector.NewVector(opts.Vector)
	rows, err := d.db.QueryContext(ctx, query, vector, opts.Model, vector, limit)
	if err != nil {
		return nil, errors.Wrap(err, "failed to search page embeddings")
	}
	defer rows.Close()

	results := []*store.PageMatch{}
	for rows.Next() {
		var match store.PageMatch
		var page store.Page
		var endpoints sql.NullString

		if err := rows.Scan(
			&page.ID,
			&page.Name,
			&page.Route,
			&page.Description,
			&endpoints,
			&page.CreatedTs,
			&match.Score,
		); err != nil {
			return nil, errors.Wrap(err, "failed to scan page match")
		}
		if endpoints.Valid && endpoints.String != "" {
			if err := json.Unmarshal([]byte(endpoints.String), &page.APIEndpoints); err != nil {
				return nil, errors.Wrap(err, "failed to unmarshal api endpoints")
			}
		}

		match.Page = &page
		results = append(results, &match)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return results, nil
}
