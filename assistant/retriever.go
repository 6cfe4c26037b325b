package assistant

import (
	"context"
	"log/slog"
	"strings"

	"github.com/dashwise/dashwise/store"
)

// Embedder is the slice of the embedding service the retriever needs.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)
}

// PageSearcher is the slice of the store the retriever needs.
// *store.Store satisfies it.
type PageSearcher interface {
	SearchPageEmbeddings(ctx context.Context, opts *store.SearchPageEmbeddingsOptions) ([]*store.PageMatch, error)
}

// ContextRetriever renders the context blob fed into the resolver prompt:
// the pages most relevant to the query, one line per page. Every failure
// path converges to the static catalog rendering, so Retrieve never fails
// outward and the resolver consumes one format regardless.
type ContextRetriever struct {
	embedder Embedder // nil disables the semantic path
	searcher PageSearcher
	catalog  *Catalog
	metrics  *Metrics
	model    string
	topK     int
}

func NewContextRetriever(embedder Embedder, searcher PageSearcher, catalog *Catalog, metrics *Metrics, model string, topK int) *ContextRetriever {
	if catalog == nil {
		catalog = DefaultCatalog()
	}
	if topK <= 0 {
		topK = 5
	}
	return &ContextRetriever{
		embedder: embedder,
		searcher: searcher,
		catalog:  catalog,
		metrics:  metrics,
		model:    model,
		topK:     topK,
	}
}

// Retrieve returns a non-empty context blob for the query.
func (r *ContextRetriever) Retrieve(ctx context.Context, query string) string {
	if r.embedder == nil || r.searcher == nil {
		return r.fallbackContext("semantic_disabled")
	}

	vector, err := r.embedder.Embed(ctx, query)
	if err != nil {
		slog.Warn("query embedding failed, using static context", "error", err)
		return r.fallbackContext("embed_error")
	}

	matches, err := r.searcher.SearchPageEmbeddings(ctx, &store.SearchPageEmbeddingsOptions{
		Vector: vector,
		Model:  r.model,
		Limit:  r.topK,
	})
	if err != nil {
		slog.Warn("page search failed, using static context", "error", err)
		return r.fallbackContext("search_error")
	}
	if len(matches) == 0 {
		return r.fallbackContext("empty_result")
	}

	lines := make([]string, 0, len(matches))
	for _, match := range matches {
		if match.Page == nil {
			continue
		}
		descriptor := PageDescriptor{
			Name:      match.Page.Name,
			Route:     match.Page.Route,
			Endpoints: match.Page.APIEndpoints,
		}
		if match.Page.Description != nil {
			descriptor.Description = *match.Page.Description
		}
		lines = append(lines, descriptor.ContextLine())
	}
	if len(lines) == 0 {
		return r.fallbackContext("empty_result")
	}

	return strings.Join(lines, "\n")
}

func (r *ContextRetriever) fallbackContext(reason string) string {
	r.metrics.RecordRetrievalFallback(reason)
	return r.catalog.FallbackContext()
}
