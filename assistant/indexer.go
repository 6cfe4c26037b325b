package assistant

import (
	"context"
	"log/slog"

	"github.com/pkg/errors"

	"github.com/dashwise/dashwise/store"
)

// PageIndexer builds the semantic index over the stored page catalog.
type PageIndexer struct {
	store    *store.Store
	embedder Embedder
	model    string
}

func NewPageIndexer(storeInstance *store.Store, embedder Embedder, model string) *PageIndexer {
	return &PageIndexer{
		store:    storeInstance,
		embedder: embedder,
		model:    model,
	}
}

// BuildIndex embeds every stored page description and replaces the previous
// index for the model. The rebuild is destructive and expected to run once
// at process start; request handling never calls it.
func (i *PageIndexer) BuildIndex(ctx context.Context) error {
	if i.embedder == nil {
		return errors.New("embedding service not configured")
	}

	pages, err := i.store.ListPages(ctx, &store.FindPage{})
	if err != nil {
		return errors.Wrap(err, "failed to list pages")
	}
	if len(pages) == 0 {
		slog.Warn("no pages to index")
		return nil
	}

	texts := make([]string, 0, len(pages))
	for _, page := range pages {
		descriptor := PageDescriptor{
			Name:      page.Name,
			Route:     page.Route,
			Endpoints: page.APIEndpoints,
		}
		if page.Description != nil {
			descriptor.Description = *page.Description
		}
		texts = append(texts, descriptor.EmbeddingText())
	}

	vectors, err := i.embedder.EmbedBatch(ctx, texts)
	if err != nil {
		return errors.Wrap(err, "failed to embed page descriptions")
	}
	if len(vectors) != len(pages) {
		return errors.Errorf("embedding count mismatch: %d pages, %d vectors", len(pages), len(vectors))
	}

	if err := i.store.DeleteAllPageEmbeddings(ctx, i.model); err != nil {
		return errors.Wrap(err, "failed to clear page index")
	}
	for idx, page := range pages {
		if _, err := i.store.UpsertPageEmbedding(ctx, &store.PageEmbedding{
			PageID:    page.ID,
			Embedding: vectors[idx],
			Model:     i.model,
		}); err != nil {
			return errors.Wrapf(err, "failed to index page %q", page.Name)
		}
	}

	slog.Info("page index built", "pages", len(pages), "model", i.model)
	return nil
}
