package store

import "context"

// PageEmbedding is the stored vector for one page description.
type PageEmbedding struct {
	ID        int32
	PageID    int32
	Embedding []float32
	Model     string
	UpdatedTs int64
}

// SearchPageEmbeddingsOptions are the options for vector similarity search over pages.
type SearchPageEmbeddingsOptions struct {
	Vector []float32
	Model  string
	Limit  int
}

// PageMatch is one page search hit with its cosine similarity score.
type PageMatch struct {
	Page  *Page
	Score float32
}

func (s *Store) UpsertPageEmbedding(ctx context.Context, upsert *PageEmbedding) (*PageEmbedding, error) {
	return s.driver.UpsertPageEmbedding(ctx, upsert)
}

// DeleteAllPageEmbeddings clears the semantic index for a model.
// Rebuilding the index is destructive and runs once at process start.
func (s *Store) DeleteAllPageEmbeddings(ctx context.Context, model string) error {
	return s.driver.DeleteAllPageEmbeddings(ctx, model)
}

func (s *Store) SearchPageEmbeddings(ctx context.Context, opts *SearchPageEmbeddingsOptions) ([]*PageMatch, error) {
	return s.driver.SearchPageEmbeddings(ctx, opts)
}
