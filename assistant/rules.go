package assistant

import (
	"regexp"
	"strings"
)

// helpMessage is returned when no rule matches the query.
const helpMessage = "I can help you navigate to users or roles pages, or create new users. " +
	"Try saying 'show me users' or 'create user with name John and phone 123456'."

// defaultMessage fills in when an upstream resolver produced none.
const defaultMessage = "I'm here to help!"

var (
	viewingVerbPattern  = regexp.MustCompile(`(?i)\b(show|view|see|list|go)\b`)
	creationVerbPattern = regexp.MustCompile(`(?i)\b(create|add|new)\b`)
	userWordPattern     = regexp.MustCompile(`(?i)\busers?\b`)
	roleWordPattern     = regexp.MustCompile(`(?i)\broles?\b`)

	// Name is the word sequence after "name", stopping before "and"/"phone"
	// or end of input. Phone is digits only.
	namePattern  = regexp.MustCompile(`(?i)\bname\s+(.+?)(?:\s+(?:and|phone)\b|$)`)
	phonePattern = regexp.MustCompile(`(?i)\bphone\s+([0-9]+)`)
)

// ruleCategory binds the keyword patterns for one record kind to its page.
type ruleCategory struct {
	word     *regexp.Regexp
	page     string // catalog page name
	singular string // for create messages
	hasPhone bool   // users carry phone numbers, roles do not
}

var ruleCategories = []ruleCategory{
	{word: userWordPattern, page: "users", singular: "user", hasPhone: true},
	{word: roleWordPattern, page: "roles", singular: "role", hasPhone: false},
}

// RuleEngine is the deterministic resolution path: keyword and regex rules
// applied directly to the query text. It is used when the language model is
// unavailable or returns garbage, and by the normalizer to repair create
// actions.
type RuleEngine struct {
	catalog *Catalog
}

func NewRuleEngine(catalog *Catalog) *RuleEngine {
	if catalog == nil {
		catalog = DefaultCatalog()
	}
	return &RuleEngine{catalog: catalog}
}

// Resolve maps the query to an action using keyword rules.
// For each category the viewing check runs before the creation check, so a
// query carrying both verbs navigates instead of creating.
func (e *RuleEngine) Resolve(query string) Action {
	for _, category := range ruleCategories {
		if !category.word.MatchString(query) {
			continue
		}
		if viewingVerbPattern.MatchString(query) {
			return e.navigateAction(category)
		}
		if creationVerbPattern.MatchString(query) {
			return e.createAction(category, query)
		}
	}

	return Action{
		ActionType: ActionGeneral,
		Message:    helpMessage,
	}
}

func (e *RuleEngine) navigateAction(category ruleCategory) Action {
	route := "/" + category.page
	if page, ok := e.catalog.ByName(category.page); ok {
		route = page.Route
	}
	return Action{
		ActionType: ActionNavigate,
		TargetPage: category.page,
		Route:      route,
		Message:    "Navigating to " + category.page + " page",
	}
}

func (e *RuleEngine) createAction(category ruleCategory, query string) Action {
	route := "/" + category.page
	endpoint := "/api/" + category.page
	if page, ok := e.catalog.ByName(category.page); ok {
		route = page.Route
		if post, ok := page.Endpoints["post"]; ok {
			endpoint = post
		}
	}

	data := map[string]any{}
	message := "Creating new " + category.singular
	if name, ok := extractName(query); ok {
		data["name"] = name
		message = "Creating new " + category.singular + " " + name
	}
	if category.hasPhone {
		if phone, ok := extractPhone(query); ok {
			data["phone_number"] = phone
		}
	}

	return Action{
		ActionType: ActionCreate,
		TargetPage: category.page,
		Route:      route,
		APICall: &APICall{
			Method:   "POST",
			Endpoint: endpoint,
			Data:     data,
		},
		Message: message,
	}
}

// extractName returns the words following "name", original casing kept.
func extractName(query string) (string, bool) {
	match := namePattern.FindStringSubmatch(query)
	if match == nil {
		return "", false
	}
	name := strings.TrimSpace(match[1])
	if name == "" {
		return "", false
	}
	return name, true
}

// extractPhone returns the digit run following "phone".
func extractPhone(query string) (string, bool) {
	match := phonePattern.FindStringSubmatch(query)
	if match == nil {
		return "", false
	}
	return match[1], true
}
