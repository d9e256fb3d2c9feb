package intent

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/vthunder/optslot/internal/logging"
)

// Built-in rule priorities. The relative order is load-bearing:
// assignment verbs must win over status phrases, and status phrases over
// slot-search phrases, because several search patterns would also match
// eagerly.
const (
	priorityAssign = 300
	priorityStatus = 200
	prioritySearch = 100
	priorityCustom = 50 // default for rules loaded from YAML
)

// slotIDPattern matches slot ids like a-01-01-05 in lowercased input
const slotIDPattern = `([a-z]-\d+-\d+-\d+)`

// builtinRules returns the fixed rule set. Patterns run against the
// lowercased message, so they are written lowercase.
func builtinRules() []*Rule {
	assign := []string{
		`assign\s+(.+?)\s+to\s+slot\s+` + slotIDPattern,
		`assign\s+(.+?)\s+to\s+` + slotIDPattern,
		`put\s+(.+?)\s+in\s+slot\s+` + slotIDPattern,
		`put\s+(.+?)\s+in\s+` + slotIDPattern,
		`move\s+(.+?)\s+to\s+slot\s+` + slotIDPattern,
		`move\s+(.+?)\s+to\s+` + slotIDPattern,
	}
	status := []string{
		`show\s+warehouse\s+status`,
		`warehouse\s+status`,
		`get\s+status`,
		`show\s+occupancy`,
		`how\s+full\s+is\s+the\s+warehouse`,
	}
	search := []string{
		`find\s+empty\s+slots`,
		`show\s+available\s+slots`,
		`list\s+empty\s+slots`,
		`find\s+slots\s+for\s+(.+)`,
		`where\s+can\s+i\s+put\s+(.+)`,
		`find\s+slots\s+in\s+zone\s+([abc])`,
		`show\s+slots\s+in\s+zone\s+([abc])`,
	}

	var rules []*Rule
	add := func(patterns []string, action, name string, priority int) {
		for i, pattern := range patterns {
			rules = append(rules, &Rule{
				Name:     fmt.Sprintf("%s-%d", name, i+1),
				Pattern:  pattern,
				Action:   action,
				Priority: priority,
			})
		}
	}
	add(assign, ActionAssign, "assign", priorityAssign)
	add(status, ActionStatus, "status", priorityStatus)
	add(search, ActionFindSlots, "find-slots", prioritySearch)
	return rules
}

// defaultSynonyms is the hardcoded description shortcut table. The
// scenario "assign monitor to slot ..." depends on these entries.
func defaultSynonyms() map[string]string {
	return map[string]string{
		"monitor": "ITEM_006",
		"laptop":  "ITEM_001",
	}
}

// LoadRulesDir loads additional rules from *.yaml files in dir, one rule
// per file (name/pattern/action/priority). Missing dir is fine. Loaded
// rules default below the built-ins so they cannot shadow the fixed
// behavior unless a priority is set explicitly.
func (r *Resolver) LoadRulesDir(dir string) error {
	entries, err := filepath.Glob(filepath.Join(dir, "*.yaml"))
	if err != nil {
		return fmt.Errorf("failed to glob rules dir: %w", err)
	}
	ymlEntries, err := filepath.Glob(filepath.Join(dir, "*.yml"))
	if err != nil {
		return fmt.Errorf("failed to glob rules dir: %w", err)
	}
	entries = append(entries, ymlEntries...)

	loaded := 0
	for _, path := range entries {
		rule, err := loadRuleFile(path)
		if err != nil {
			logging.Warn("intent", "skipping rule file %s: %v", path, err)
			continue
		}
		r.rules = append(r.rules, rule)
		loaded++
	}

	if loaded > 0 {
		r.compileRules()
		r.sortRules()
		logging.Info("intent", "loaded %d custom rules from %s", loaded, dir)
	}
	return nil
}

func loadRuleFile(path string) (*Rule, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var rule Rule
	if err := yaml.Unmarshal(data, &rule); err != nil {
		return nil, fmt.Errorf("failed to parse rule: %w", err)
	}

	if rule.Pattern == "" {
		return nil, fmt.Errorf("rule has no pattern")
	}
	switch rule.Action {
	case ActionAssign, ActionStatus, ActionFindSlots:
	default:
		return nil, fmt.Errorf("unknown action %q", rule.Action)
	}
	if rule.Name == "" {
		rule.Name = filepath.Base(path)
	}
	if rule.Priority == 0 {
		rule.Priority = priorityCustom
	}
	return &rule, nil
}
