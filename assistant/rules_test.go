package assistant

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRuleEngineNavigate(t *testing.T) {
	engine := NewRuleEngine(nil)

	for _, query := range []string{
		"show me users",
		"SHOW ME USERS",
		"view the user",
		"list users please",
		"go to users",
		"can I see users",
	} {
		action := engine.Resolve(query)
		require.Equal(t, ActionNavigate, action.ActionType, "query %q", query)
		require.Equal(t, "users", action.TargetPage)
		require.Equal(t, "/users", action.Route)
		require.Equal(t, "Navigating to users page", action.Message)
		require.Nil(t, action.APICall)
	}

	action := engine.Resolve("show roles")
	require.Equal(t, ActionNavigate, action.ActionType)
	require.Equal(t, "roles", action.TargetPage)
	require.Equal(t, "/roles", action.Route)
}

func TestRuleEngineCreateUser(t *testing.T) {
	engine := NewRuleEngine(nil)

	action := engine.Resolve("create user name John phone 123456")
	require.Equal(t, ActionCreate, action.ActionType)
	require.Equal(t, "users", action.TargetPage)
	require.NotNil(t, action.APICall)
	require.Equal(t, "POST", action.APICall.Method)
	require.Equal(t, "/api/users", action.APICall.Endpoint)
	require.Equal(t, "John", action.APICall.Data["name"])
	require.Equal(t, "123456", action.APICall.Data["phone_number"])
	require.Equal(t, "Creating new user John", action.Message)
}

func TestRuleEngineCreateUserNameVariants(t *testing.T) {
	engine := NewRuleEngine(nil)

	tests := []struct {
		query string
		name  string
		phone string
	}{
		{"create user with name John and phone 123456", "John", "123456"},
		{"add user name Mary Jane phone 555", "Mary Jane", "555"},
		{"new user name bob", "bob", ""},
		{"create user name Ana and email a@b.c", "Ana", ""},
	}
	for _, test := range tests {
		action := engine.Resolve(test.query)
		require.Equal(t, ActionCreate, action.ActionType, "query %q", test.query)
		require.NotNil(t, action.APICall)
		require.Equal(t, test.name, action.APICall.Data["name"], "query %q", test.query)
		if test.phone == "" {
			require.NotContains(t, action.APICall.Data, "phone_number", "query %q", test.query)
		} else {
			require.Equal(t, test.phone, action.APICall.Data["phone_number"], "query %q", test.query)
		}
	}
}

func TestRuleEngineCreateWithoutName(t *testing.T) {
	engine := NewRuleEngine(nil)

	action := engine.Resolve("create a user")
	require.Equal(t, ActionCreate, action.ActionType)
	require.NotNil(t, action.APICall)
	require.Empty(t, action.APICall.Data)
	require.Equal(t, "Creating new user", action.Message)
}

func TestRuleEngineCreateRoleNeverGetsPhone(t *testing.T) {
	engine := NewRuleEngine(nil)

	action := engine.Resolve("create role name Admin phone 999")
	require.Equal(t, ActionCreate, action.ActionType)
	require.Equal(t, "roles", action.TargetPage)
	require.NotNil(t, action.APICall)
	require.Equal(t, "/api/roles", action.APICall.Endpoint)
	require.Equal(t, "Admin", action.APICall.Data["name"])
	require.NotContains(t, action.APICall.Data, "phone_number")
}

func TestRuleEngineViewWinsOverCreate(t *testing.T) {
	engine := NewRuleEngine(nil)

	// both verb classes present: viewing is checked first
	action := engine.Resolve("show me how to create users")
	require.Equal(t, ActionNavigate, action.ActionType)
	require.Equal(t, "users", action.TargetPage)
}

func TestRuleEngineGeneralFallback(t *testing.T) {
	engine := NewRuleEngine(nil)

	for _, query := range []string{
		"",
		"what is the weather",
		"users",        // keyword without a verb
		"create stuff", // verb without a keyword
	} {
		action := engine.Resolve(query)
		require.Equal(t, ActionGeneral, action.ActionType, "query %q", query)
		require.Equal(t, helpMessage, action.Message)
		require.Empty(t, action.Route)
		require.Nil(t, action.APICall)
	}
}

func TestExtractName(t *testing.T) {
	tests := []struct {
		query string
		want  string
		ok    bool
	}{
		{"name John", "John", true},
		{"name John phone 1", "John", true},
		{"name John and phone 1", "John", true},
		{"name Mary Jane Watson", "Mary Jane Watson", true},
		{"NAME shouty", "shouty", true},
		{"no marker here", "", false},
		{"name ", "", false},
	}
	for _, test := range tests {
		got, ok := extractName(test.query)
		require.Equal(t, test.ok, ok, "query %q", test.query)
		require.Equal(t, test.want, got, "query %q", test.query)
	}
}

func TestExtractPhone(t *testing.T) {
	got, ok := extractPhone("phone 123456")
	require.True(t, ok)
	require.Equal(t, "123456", got)

	_, ok = extractPhone("phone soon")
	require.False(t, ok)

	_, ok = extractPhone("no number")
	require.False(t, ok)
}
