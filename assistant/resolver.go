package assistant

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"golang.org/x/sync/semaphore"

	"github.com/dashwise/dashwise/ai/llm"
)

const promptTemplate = `You are a smart dashboard assistant. Based on the user query and available context, determine the appropriate action.

Available pages and their routes:
%s

User query: %s

Analyze the query and respond with a JSON object containing:
1. action_type: "navigate" (go to page), "create" (create resource), "show" (display data), or "general" (other)
2. target_page: name of the page if applicable
3. route: route to navigate to if applicable
4. api_call: object with method, endpoint, and data if API call needed
5. message: helpful response to user

Examples:
- "show me users" -> {"action_type": "navigate", "target_page": "users", "route": "/users", "message": "Navigating to users page"}
- "create user name John phone 123456" -> {"action_type": "create", "target_page": "users", "api_call": {"method": "POST", "endpoint": "/api/users", "data": {"name": "John", "phone_number": "123456"}}, "message": "Creating new user John"}

Respond only with valid JSON:`

// IntentResolver turns (query, context blob) into a candidate action.
// The language model is the primary path; every model failure downgrades to
// the rule engine, never to an error.
type IntentResolver struct {
	llm     llm.Service // nil disables the model path
	rules   *RuleEngine
	metrics *Metrics
	sem     *semaphore.Weighted
}

func NewIntentResolver(llmService llm.Service, rules *RuleEngine, metrics *Metrics, maxConcurrentInference int64) *IntentResolver {
	if maxConcurrentInference <= 0 {
		maxConcurrentInference = 4
	}
	return &IntentResolver{
		llm:     llmService,
		rules:   rules,
		metrics: metrics,
		sem:     semaphore.NewWeighted(maxConcurrentInference),
	}
}

// Resolve never returns an error; the worst case is the rule engine's
// generic help action.
func (r *IntentResolver) Resolve(ctx context.Context, query, contextBlob string) Action {
	if r.llm == nil {
		return r.fallback(query, "llm_disabled")
	}

	if err := r.sem.Acquire(ctx, 1); err != nil {
		return r.fallback(query, "cancelled")
	}
	response, err := r.llm.Chat(ctx, []llm.Message{
		llm.UserMessage(fmt.Sprintf(promptTemplate, contextBlob, query)),
	})
	r.sem.Release(1)
	if err != nil {
		slog.Warn("intent resolution via LLM failed, using rule engine", "error", err)
		return r.fallback(query, "llm_error")
	}

	raw, ok := ExtractJSON(response)
	if !ok {
		slog.Warn("LLM response carried no JSON object, using rule engine",
			"response_length", len(response))
		return r.fallback(query, "no_json")
	}

	var action Action
	if err := json.Unmarshal(raw, &action); err != nil {
		slog.Warn("LLM JSON did not match the action shape, using rule engine", "error", err)
		return r.fallback(query, "bad_shape")
	}
	if action.ActionType == "" {
		return r.fallback(query, "missing_action_type")
	}
	if action.Message == "" {
		action.Message = defaultMessage
	}
	return action
}

func (r *IntentResolver) fallback(query, reason string) Action {
	r.metrics.RecordResolutionFallback(reason)
	return r.rules.Resolve(query)
}

// ExtractJSON returns the first balanced JSON object embedded in free text,
// or ok=false when none parses. Model output often wraps the object in
// prose or markdown fences.
func ExtractJSON(text string) (json.RawMessage, bool) {
	start := -1
	depth := 0
	inString := false
	escaped := false

	for i := 0; i < len(text); i++ {
		c := text[i]

		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}

		switch c {
		case '"':
			if depth > 0 {
				inString = true
			}
		case '{':
			if depth == 0 {
				start = i
			}
			depth++
		case '}':
			if depth == 0 {
				continue
			}
			depth--
			if depth == 0 {
				candidate := text[start : i+1]
				if json.Valid([]byte(candidate)) {
					return json.RawMessage(candidate), true
				}
				// keep scanning; a later object may still parse
				start = -1
			}
		}
	}

	return nil, false
}
