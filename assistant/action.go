// Package assistant resolves natural-language dashboard queries into
// structured actions: navigate to a page, create a resource through the
// API, or answer generically. Resolution prefers the language model and
// degrades to a deterministic rule engine; the caller always receives a
// well-formed action.
package assistant

import "encoding/json"

// ActionType classifies what the frontend should do with an action.
type ActionType string

const (
	ActionNavigate ActionType = "navigate"
	ActionCreate   ActionType = "create"
	ActionShow     ActionType = "show"
	ActionGeneral  ActionType = "general"
)

// APICall describes the follow-up HTTP request for a create action.
type APICall struct {
	Method   string         `json:"method"`
	Endpoint string         `json:"endpoint"`
	Data     map[string]any `json:"data"`
}

// Action is the resolved result of interpreting one query.
type Action struct {
	ActionType ActionType `json:"action_type"`
	TargetPage string     `json:"target_page,omitempty"`
	Route      string     `json:"route,omitempty"`
	APICall    *APICall   `json:"api_call,omitempty"`
	Message    string     `json:"message"`
}

// String renders the action as compact JSON for logs.
func (a Action) String() string {
	raw, err := json.Marshal(a)
	if err != nil {
		return string(a.ActionType)
	}
	return string(raw)
}
