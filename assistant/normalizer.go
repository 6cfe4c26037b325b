package assistant

// Normalizer makes resolver output safe to hand to a frontend: canonical
// routes for navigation, complete API calls for creation, and a non-empty
// message in every case. Normalizing an already-normalized action changes
// nothing.
type Normalizer struct {
	catalog *Catalog
	rules   *RuleEngine
}

func NewNormalizer(catalog *Catalog, rules *RuleEngine) *Normalizer {
	if catalog == nil {
		catalog = DefaultCatalog()
	}
	if rules == nil {
		rules = NewRuleEngine(catalog)
	}
	return &Normalizer{catalog: catalog, rules: rules}
}

// Normalize repairs the action in place relative to the originating query.
func (n *Normalizer) Normalize(action Action, query string) Action {
	switch action.ActionType {
	case ActionNavigate:
		action = n.normalizeNavigate(action)
	case ActionCreate:
		action = n.normalizeCreate(action, query)
	case ActionShow, ActionGeneral:
		// nothing structural to repair
	default:
		// unknown action types degrade to a general response
		action.ActionType = ActionGeneral
		action.Route = ""
		action.APICall = nil
	}

	if action.Message == "" {
		action.Message = defaultMessage
	}
	return action
}

// normalizeNavigate forces the catalog route for known target pages; the
// model occasionally invents routes like "/user" or "/users/list".
func (n *Normalizer) normalizeNavigate(action Action) Action {
	if page, ok := n.catalog.ByName(action.TargetPage); ok {
		action.Route = page.Route
	} else if action.Route == "" && action.TargetPage != "" {
		action.Route = "/" + action.TargetPage
	}
	return action
}

// normalizeCreate fills a missing or incomplete API call from the rule
// engine, which re-extracts the name and phone number from the query.
func (n *Normalizer) normalizeCreate(action Action, query string) Action {
	if action.APICall != nil && action.APICall.Method != "" && action.APICall.Endpoint != "" {
		if action.APICall.Data == nil {
			action.APICall.Data = map[string]any{}
		}
		return action
	}

	repaired := n.rules.Resolve(query)
	if repaired.ActionType != ActionCreate || repaired.APICall == nil {
		// the query does not look like a creation request after all
		return repaired
	}

	if action.TargetPage == "" {
		action.TargetPage = repaired.TargetPage
	}
	if action.Route == "" {
		action.Route = repaired.Route
	}
	if action.APICall == nil {
		action.APICall = repaired.APICall
	} else {
		if action.APICall.Method == "" {
			action.APICall.Method = repaired.APICall.Method
		}
		if action.APICall.Endpoint == "" {
			action.APICall.Endpoint = repaired.APICall.Endpoint
		}
		if action.APICall.Data == nil {
			action.APICall.Data = repaired.APICall.Data
		}
	}
	return action
}
