package assistant

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func newTestNormalizer() *Normalizer {
	catalog := DefaultCatalog()
	return NewNormalizer(catalog, NewRuleEngine(catalog))
}

func TestNormalizeForcesCanonicalRoute(t *testing.T) {
	normalizer := newTestNormalizer()

	action := normalizer.Normalize(Action{
		ActionType: ActionNavigate,
		TargetPage: "users",
		Route:      "/users/list", // model invention
		Message:    "Navigating to users page",
	}, "show me users")

	require.Equal(t, "/users", action.Route)
	require.Equal(t, "users", action.TargetPage)
}

func TestNormalizeNavigateUnknownPage(t *testing.T) {
	normalizer := newTestNormalizer()

	action := normalizer.Normalize(Action{
		ActionType: ActionNavigate,
		TargetPage: "settings",
		Message:    "Navigating to settings page",
	}, "go to settings")

	require.Equal(t, "/settings", action.Route)
}

func TestNormalizeRepairsIncompleteCreate(t *testing.T) {
	normalizer := newTestNormalizer()

	// model said "create" but forgot the API call
	action := normalizer.Normalize(Action{
		ActionType: ActionCreate,
		TargetPage: "users",
		Message:    "Creating new user John",
	}, "create user name John phone 123456")

	require.Equal(t, ActionCreate, action.ActionType)
	require.NotNil(t, action.APICall)
	require.Equal(t, "POST", action.APICall.Method)
	require.Equal(t, "/api/users", action.APICall.Endpoint)
	require.Equal(t, "John", action.APICall.Data["name"])
	require.Equal(t, "123456", action.APICall.Data["phone_number"])
	require.Equal(t, "Creating new user John", action.Message)
}

func TestNormalizeCreateNonCreationQuery(t *testing.T) {
	normalizer := newTestNormalizer()

	// model hallucinated a create for a query the rules cannot repair
	action := normalizer.Normalize(Action{
		ActionType: ActionCreate,
		Message:    "Creating something",
	}, "what is the weather")

	require.Equal(t, ActionGeneral, action.ActionType)
	require.Nil(t, action.APICall)
	require.Equal(t, helpMessage, action.Message)
}

func TestNormalizeFillsEmptyMessage(t *testing.T) {
	normalizer := newTestNormalizer()

	action := normalizer.Normalize(Action{
		ActionType: ActionShow,
	}, "show stats")

	require.Equal(t, defaultMessage, action.Message)
}

func TestNormalizeUnknownActionType(t *testing.T) {
	normalizer := newTestNormalizer()

	action := normalizer.Normalize(Action{
		ActionType: "delete",
		Route:      "/users",
		APICall:    &APICall{Method: "DELETE", Endpoint: "/api/users/1"},
		Message:    "Deleting",
	}, "delete user 1")

	require.Equal(t, ActionGeneral, action.ActionType)
	require.Empty(t, action.Route)
	require.Nil(t, action.APICall)
	require.Equal(t, "Deleting", action.Message)
}

func TestNormalizeIsIdempotent(t *testing.T) {
	normalizer := newTestNormalizer()

	inputs := []struct {
		action Action
		query  string
	}{
		{Action{ActionType: ActionNavigate, TargetPage: "users", Route: "/wrong"}, "show users"},
		{Action{ActionType: ActionCreate, TargetPage: "users"}, "create user name Ada phone 42"},
		{Action{ActionType: ActionCreate}, "nonsense"},
		{Action{ActionType: ActionGeneral}, "hello"},
		{Action{ActionType: "bogus"}, "hello"},
	}
	for _, input := range inputs {
		once := normalizer.Normalize(input.action, input.query)
		twice := normalizer.Normalize(once, input.query)
		require.Equal(t, once, twice, "query %q", input.query)
	}
}
