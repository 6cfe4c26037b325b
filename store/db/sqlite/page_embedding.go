package sqlite

import (
	"context"
	"encoding/json"
	"math"
	"sort"
	"time"

	"github.com/pkg/errors"

	"github.com/dashwise/dashwise/store"
)

// UpsertPageEmbedding inserts or updates a page embedding.
// Vectors are stored as JSON arrays; similarity is computed in the
// application layer.
func (d *DB) UpsertPageEmbedding(ctx context.Context, upsert *store.PageEmbedding) (*store.PageEmbedding, error) {
	raw, err := json.Marshal(upsert.Embedding)
	if err != nil {
		return nil, errors.Wrap(err, "failed to marshal embedding")
	}

	updatedTs := upsert.UpdatedTs
	if updatedTs == 0 {
		updatedTs = time.Now().Unix()
	}

	stmt := `
		INSERT INTO page_embedding (page_id, embedding, model, updated_ts)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (page_id, model)
		DO UPDATE SET
			embedding = excluded.embedding,
			updated_ts = excluded.updated_ts
		RETURNING id, updated_ts
	`
	err = d.db.QueryRowContext(ctx, stmt,
		upsert.PageID,
		string(raw),
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
	if _, err := d.db.ExecContext(ctx, `DELETE FROM page_embedding WHERE model = ?`, model); err != nil {
		return errors.Wrap(err, "failed to delete page embeddings")
	}
	return nil
}

// SearchPageEmbeddings loads all candidate embeddings and ranks them by
// cosine similarity in the application layer.
func (d *DB) SearchPageEmbeddings(ctx context.Context, opts *store.SearchPageEmbeddingsOptions) ([]*store.PageMatch, error) {
	limit := opts.Limit
	if limit <= 0 {
		limit = 5
	}

	query := `
		SELECT
			p.id, p.name, p.route, p.description, p.api_endpoints, p.created_ts,
			e.embedding
		FROM page p
		INNER JOIN page_embedding e ON p.id = e.page_id
		WHERE e.model = ?
	`
	rows, err := d.db.QueryContext(ctx, query, opts.Model)
	if err != nil {
		return nil, errors.Wrap(err, "failed to search page embeddings")
	}
	defer rows.Close()

	type candidate struct {
		page      *store.Page
		embedding []float32
	}
	candidates := []candidate{}

	for rows.Next() {
		var page store.Page
		var endpoints, rawEmbedding *string
		if err := rows.Scan(
			&page.ID,
			&page.Name,
			&page.Route,
			&page.Description,
			&endpoints,
			&page.CreatedTs,
			&rawEmbedding,
		); err != nil {
			return nil, errors.Wrap(err, "failed to scan page embedding candidate")
		}
		if endpoints != nil && *endpoints != "" {
			if err := json.Unmarshal([]byte(*endpoints), &page.APIEndpoints); err != nil {
				return nil, errors.Wrap(err, "failed to unmarshal api endpoints")
			}
		}
		var vector []float32
		if rawEmbedding != nil {
			if err := json.Unmarshal([]byte(*rawEmbedding), &vector); err != nil {
				return nil, errors.Wrap(err, "failed to unmarshal embedding")
			}
		}
		candidates = append(candidates, candidate{page: &page, embedding: vector})
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	results := make([]*store.PageMatch, 0, len(candidates))
	for _, cand := range candidates {
		results = append(results, &store.PageMatch{
			Page:  cand.page,
			Score: cosineSimilarity(opts.Vector, cand.embedding),
		})
	}

	// Sort by similarity (descending)
	sort.Slice(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	if len(results) > limit {
		results = results[:limit]
	}
	return results, nil
}

// cosineSimilarity computes cosine similarity between two vectors.
func cosineSimilarity(a, b []float32) float32 {
	if len(a) != len(b) {
		return 0
	}

	var dotProduct float32
	var normA float32
	var normB float32

	for i := 0; i < len(a); i++ {
		dotProduct += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}

	if normA == 0 || normB == 0 {
		return 0
	}

	return dotProduct / (float32(math.Sqrt(float64(normA))) * float32(math.Sqrt(float64(normB))))
}
