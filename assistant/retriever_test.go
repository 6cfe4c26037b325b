package assistant

import (
	"context"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"

	"github.com/dashwise/dashwise/store"
)

type fakeEmbedder struct {
	vector []float32
	err    error
}

func (f *fakeEmbedder) Embed(context.Context, string) ([]float32, error) {
	return f.vector, f.err
}

func (f *fakeEmbedder) EmbedBatch(_ context.Context, texts []string) ([][]float32, error) {
	if f.err != nil {
		return nil, f.err
	}
	vectors := make([][]float32, len(texts))
	for i := range texts {
		vectors[i] = f.vector
	}
	return vectors, nil
}

type fakeSearcher struct {
	matches []*store.PageMatch
	err     error
	gotOpts *store.SearchPageEmbeddingsOptions
}

func (f *fakeSearcher) SearchPageEmbeddings(_ context.Context, opts *store.SearchPageEmbeddingsOptions) ([]*store.PageMatch, error) {
	f.gotOpts = opts
	return f.matches, f.err
}

func descriptionPtr(s string) *string { return &s }

func TestRetrieverRendersMatches(t *testing.T) {
	searcher := &fakeSearcher{
		matches: []*store.PageMatch{
			{
				Page: &store.Page{
					Name:         "users",
					Route:        "/users",
					Description:  descriptionPtr("Manage users, view user list, create new users"),
					APIEndpoints: map[string]string{"get": "/api/users", "post": "/api/users"},
				},
				Score: 0.92,
			},
		},
	}
	retriever := NewContextRetriever(&fakeEmbedder{vector: []float32{1, 0}}, searcher, nil, nil, "nomic-embed-text", 5)

	blob := retriever.Retrieve(context.Background(), "show me users")
	require.Equal(t,
		"- users: Frontend route /users - Manage users, view user list, create new users\n"+
			"  API endpoints: GET /api/users (list), POST /api/users (create)",
		blob)

	require.NotNil(t, searcher.gotOpts)
	require.Equal(t, []float32{1, 0}, searcher.gotOpts.Vector)
	require.Equal(t, "nomic-embed-text", searcher.gotOpts.Model)
	require.Equal(t, 5, searcher.gotOpts.Limit)
}

func TestRetrieverFallsBackWithoutServices(t *testing.T) {
	retriever := NewContextRetriever(nil, nil, nil, nil, "", 0)

	blob := retriever.Retrieve(context.Background(), "anything")
	require.Equal(t, DefaultCatalog().FallbackContext(), blob)
	require.Contains(t, blob, "- users: Frontend route /users")
	require.Contains(t, blob, "- roles: Frontend route /roles")
}

func TestRetrieverFallsBackOnEmbedError(t *testing.T) {
	retriever := NewContextRetriever(
		&fakeEmbedder{err: errors.New("model not loaded")},
		&fakeSearcher{},
		nil, nil, "m", 5)

	blob := retriever.Retrieve(context.Background(), "show me users")
	require.Equal(t, DefaultCatalog().FallbackContext(), blob)
}

func TestRetrieverFallsBackOnSearchError(t *testing.T) {
	retriever := NewContextRetriever(
		&fakeEmbedder{vector: []float32{1}},
		&fakeSearcher{err: errors.New("db gone")},
		nil, nil, "m", 5)

	blob := retriever.Retrieve(context.Background(), "show me users")
	require.Equal(t, DefaultCatalog().FallbackContext(), blob)
}

func TestRetrieverFallsBackOnEmptyResult(t *testing.T) {
	retriever := NewContextRetriever(
		&fakeEmbedder{vector: []float32{1}},
		&fakeSearcher{},
		nil, nil, "m", 5)

	blob := retriever.Retrieve(context.Background(), "show me users")
	require.Equal(t, DefaultCatalog().FallbackContext(), blob)
}

func TestAssistantPipelineWithoutAI(t *testing.T) {
	assistant := New(Config{})

	action := assistant.HandleQuery(context.Background(), "show me users")
	require.Equal(t, ActionNavigate, action.ActionType)
	require.Equal(t, "/users", action.Route)

	action = assistant.HandleQuery(context.Background(), "create user name Eve phone 12")
	require.Equal(t, ActionCreate, action.ActionType)
	require.Equal(t, "Eve", action.APICall.Data["name"])
	require.Equal(t, "12", action.APICall.Data["phone_number"])

	action = assistant.HandleQuery(context.Background(), "tell me a joke")
	require.Equal(t, ActionGeneral, action.ActionType)
	require.Equal(t, helpMessage, action.Message)
}

func TestEmbeddingTextFormat(t *testing.T) {
	descriptor := PageDescriptor{
		Name:        "users",
		Route:       "/users",
		Description: "Manage users, view user list, create new users",
		Endpoints:   map[string]string{"post": "/api/users", "get": "/api/users"},
	}
	require.Equal(t,
		"users page: Manage users, view user list, create new users - Frontend route: /users - API endpoints: GET /api/users (list), POST /api/users (create)",
		descriptor.EmbeddingText())
}
