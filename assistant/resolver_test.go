package assistant

import (
	"context"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"

	"github.com/dashwise/dashwise/ai/llm"
)

type fakeLLM struct {
	response string
	err      error
	prompts  []string
}

func (f *fakeLLM) Chat(_ context.Context, messages []llm.Message) (string, error) {
	for _, message := range messages {
		f.prompts = append(f.prompts, message.Content)
	}
	return f.response, f.err
}

func (f *fakeLLM) Warmup(context.Context) {}

func TestResolverUsesLLMResponse(t *testing.T) {
	fake := &fakeLLM{
		response: `Sure! {"action_type": "navigate", "target_page": "users", "route": "/users", "message": "Navigating to users page"}`,
	}
	resolver := NewIntentResolver(fake, NewRuleEngine(nil), nil, 0)

	action := resolver.Resolve(context.Background(), "show me users", "ctx")
	require.Equal(t, ActionNavigate, action.ActionType)
	require.Equal(t, "users", action.TargetPage)
	require.Equal(t, "/users", action.Route)
	require.Equal(t, "Navigating to users page", action.Message)

	require.Len(t, fake.prompts, 1)
	require.Contains(t, fake.prompts[0], "show me users")
	require.Contains(t, fake.prompts[0], "ctx")
}

func TestResolverFallsBackWithoutLLM(t *testing.T) {
	resolver := NewIntentResolver(nil, NewRuleEngine(nil), nil, 0)

	action := resolver.Resolve(context.Background(), "show me users", "ctx")
	require.Equal(t, ActionNavigate, action.ActionType)
	require.Equal(t, "users", action.TargetPage)
}

func TestResolverFallsBackOnLLMError(t *testing.T) {
	fake := &fakeLLM{err: errors.New("connection refused")}
	resolver := NewIntentResolver(fake, NewRuleEngine(nil), nil, 0)

	action := resolver.Resolve(context.Background(), "create user name Bo phone 7", "ctx")
	require.Equal(t, ActionCreate, action.ActionType)
	require.Equal(t, "Bo", action.APICall.Data["name"])
}

func TestResolverFallsBackOnGarbageResponse(t *testing.T) {
	tests := []struct {
		name     string
		response string
	}{
		{"no json", "I cannot help with that."},
		{"invalid json", `{"action_type": "navigate",`},
		{"wrong shape", `{"action_type": {"nested": true}}`},
		{"missing action type", `{"message": "hi"}`},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			fake := &fakeLLM{response: test.response}
			resolver := NewIntentResolver(fake, NewRuleEngine(nil), nil, 0)

			action := resolver.Resolve(context.Background(), "show me roles", "ctx")
			require.Equal(t, ActionNavigate, action.ActionType)
			require.Equal(t, "roles", action.TargetPage)
		})
	}
}

func TestResolverFillsEmptyMessage(t *testing.T) {
	fake := &fakeLLM{response: `{"action_type": "general"}`}
	resolver := NewIntentResolver(fake, NewRuleEngine(nil), nil, 0)

	action := resolver.Resolve(context.Background(), "hello", "ctx")
	require.Equal(t, ActionGeneral, action.ActionType)
	require.Equal(t, defaultMessage, action.Message)
}

func TestResolverCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	fake := &fakeLLM{response: `{"action_type": "general", "message": "hi"}`}
	resolver := NewIntentResolver(fake, NewRuleEngine(nil), nil, 0)

	action := resolver.Resolve(ctx, "show users", "ctx")
	require.Equal(t, ActionNavigate, action.ActionType)
}

func TestExtractJSON(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
		ok   bool
	}{
		{"bare object", `{"a": 1}`, `{"a": 1}`, true},
		{"prose around", `here: {"a": 1} done`, `{"a": 1}`, true},
		{"markdown fence", "```json\n{\"a\": 1}\n```", `{"a": 1}`, true},
		{"nested braces", `{"a": {"b": "}"}}`, `{"a": {"b": "}"}}`, true},
		{"escaped quote", `{"a": "say \"hi\" {now}"}`, `{"a": "say \"hi\" {now}"}`, true},
		{"second object valid", `{"a": } then {"b": 2}`, `{"b": 2}`, true},
		{"no object", "nothing here", "", false},
		{"unbalanced", `{"a": 1`, "", false},
		{"empty", "", "", false},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			raw, ok := ExtractJSON(test.text)
			require.Equal(t, test.ok, ok)
			if test.ok {
				require.Equal(t, test.want, string(raw))
			}
		})
	}
}
