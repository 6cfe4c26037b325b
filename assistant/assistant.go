package assistant

import (
	"context"
	"time"
)

// Assistant is the pipeline facade the API layer talks to.
type Assistant struct {
	retriever  *ContextRetriever
	resolver   *IntentResolver
	normalizer *Normalizer
	metrics    *Metrics
}

// Config carries the pipeline collaborators. Nil Embedder, Searcher or LLM
// disable the corresponding stage; the pipeline still answers via rules.
type Config struct {
	Retriever  *ContextRetriever
	Resolver   *IntentResolver
	Normalizer *Normalizer
	Metrics    *Metrics
}

func New(cfg Config) *Assistant {
	retriever := cfg.Retriever
	if retriever == nil {
		retriever = NewContextRetriever(nil, nil, nil, cfg.Metrics, "", 0)
	}
	resolver := cfg.Resolver
	if resolver == nil {
		resolver = NewIntentResolver(nil, NewRuleEngine(nil), cfg.Metrics, 0)
	}
	normalizer := cfg.Normalizer
	if normalizer == nil {
		normalizer = NewNormalizer(nil, nil)
	}
	return &Assistant{
		retriever:  retriever,
		resolver:   resolver,
		normalizer: normalizer,
		metrics:    cfg.Metrics,
	}
}

// HandleQuery runs the full pipeline for one query.
func (a *Assistant) HandleQuery(ctx context.Context, query string) Action {
	start := time.Now()

	contextBlob := a.retriever.Retrieve(ctx, query)
	action := a.resolver.Resolve(ctx, query, contextBlob)
	action = a.normalizer.Normalize(action, query)

	a.metrics.RecordQuery(action.ActionType, time.Since(start).Seconds())
	return action
}
