// Package intent classifies free-text chat messages into warehouse
// actions. Resolution is an ordered list of pattern-action rules; the
// first matching rule wins and no natural-language understanding beyond
// the fixed patterns is attempted.
package intent

import (
	"regexp"
	"sort"
	"strings"

	"github.com/vthunder/optslot/internal/catalog"
	"github.com/vthunder/optslot/internal/logging"
)

// Actions a resolved intent can carry. They are the tool names the agent
// dispatches to; ActionNone means plain conversation.
const (
	ActionAssign    = "change_slot_assignment"
	ActionStatus    = "get_warehouse_status"
	ActionFindSlots = "find_available_slots"
	ActionNone      = ""
)

// Rule is a single pattern-action rule. Patterns are matched against the
// lowercased message; higher priority rules are tried first, and rules
// with equal priority keep their registration order.
type Rule struct {
	Name     string `yaml:"name"`
	Pattern  string `yaml:"pattern"`
	Action   string `yaml:"action"`
	Priority int    `yaml:"priority"`

	compiled *regexp.Regexp
}

// Intent is the result of resolving one message
type Intent struct {
	Action  string
	Params  map[string]any
	Rule    string // name of the matched rule, empty when no rule matched
	Pattern string // the pattern that matched
}

// Resolver matches messages against its rule list and resolves item
// descriptions against the catalog. It is state-free between calls.
type Resolver struct {
	rules    []*Rule
	store    *catalog.Store
	synonyms map[string]string
}

// NewResolver creates a resolver with the built-in rules and synonym table
func NewResolver(store *catalog.Store) *Resolver {
	r := &Resolver{
		store:    store,
		synonyms: defaultSynonyms(),
	}
	r.rules = builtinRules()
	r.compileRules()
	r.sortRules()
	return r
}

// compileRules compiles any uncompiled patterns. Rules with bad patterns
// are left uncompiled and skipped during resolution. Rules are only added
// at construction and load time, so Resolve itself is safe for concurrent
// use.
func (r *Resolver) compileRules() {
	for _, rule := range r.rules {
		if rule.compiled != nil {
			continue
		}
		compiled, err := regexp.Compile(rule.Pattern)
		if err != nil {
			logging.Warn("intent", "bad pattern in rule %s: %v", rule.Name, err)
			continue
		}
		rule.compiled = compiled
	}
}

// sortRules orders by priority descending, stable so registration order
// breaks ties. Scenario behavior depends on assignment rules outranking
// status rules outranking slot-search rules.
func (r *Resolver) sortRules() {
	sort.SliceStable(r.rules, func(i, j int) bool {
		return r.rules[i].Priority > r.rules[j].Priority
	})
}

// Resolve maps a message to an intent. Messages that match no rule come
// back with ActionNone and are treated as plain conversation. Resolve
// never fails; unresolvable parameters are passed through empty and
// surface as not-found at the tool layer.
func (r *Resolver) Resolve(message string) Intent {
	message = strings.ToLower(strings.TrimSpace(message))

	for _, rule := range r.rules {
		if rule.compiled == nil {
			continue
		}

		match := rule.compiled.FindStringSubmatch(message)
		if match == nil {
			continue
		}

		logging.Debug("intent", "rule %s matched %q", rule.Name, logging.Truncate(message, 60))

		return Intent{
			Action:  rule.Action,
			Params:  r.extractParams(rule.Action, match),
			Rule:    rule.Name,
			Pattern: rule.Pattern,
		}
	}

	return Intent{Action: ActionNone, Params: map[string]any{}}
}

// extractParams pulls tool parameters out of the regex capture groups
func (r *Resolver) extractParams(action string, match []string) map[string]any {
	switch action {
	case ActionAssign:
		return r.extractAssignment(match)
	case ActionFindSlots:
		return r.extractFindSlots(match)
	default:
		return map[string]any{}
	}
}

// extractAssignment expects group 1 = item description, group 2 = slot id.
// The description is resolved to an item id; failure leaves item_id empty
// so the tool reports not-found rather than failing here.
func (r *Resolver) extractAssignment(match []string) map[string]any {
	params := map[string]any{}
	if len(match) < 3 {
		return params
	}

	description := strings.TrimSpace(match[1])
	params["slot_id"] = strings.ToUpper(match[2])
	params["item_description"] = description
	params["item_id"] = r.FindItemByDescription(description)
	return params
}

// extractFindSlots handles the optional capture group: a single zone
// letter becomes a zone filter; anything else is treated as an item
// description. If the description resolves to nothing the search runs
// unfiltered (deliberately looser than the assignment path).
func (r *Resolver) extractFindSlots(match []string) map[string]any {
	params := map[string]any{}
	if len(match) < 2 {
		return params
	}

	text := strings.TrimSpace(match[1])
	text = strings.TrimSpace(strings.TrimRight(text, punctuation))
	if text == "" {
		return params
	}

	if len(text) == 1 && isZone(text) {
		params["zone"] = strings.ToUpper(text)
		return params
	}

	if itemID := r.FindItemByDescription(text); itemID != "" {
		params["item_id"] = itemID
	}
	return params
}

// punctuation is the ASCII punctuation set stripped from trailing text
const punctuation = "!\"#$%&'()*+,-./:;<=>?@[\\]^_`{|}~"

func isZone(letter string) bool {
	for _, zone := range catalog.Zones {
		if strings.EqualFold(zone, letter) {
			return true
		}
	}
	return false
}
