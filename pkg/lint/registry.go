package lint

import (
	"slices"
	"sync"
)

// Registry holds all registered rule groups in registration order.
// Groups run in that order, so registration order is part of the output
// contract for anything that depends on emission order.
type Registry struct {
	mu      sync.RWMutex
	ordered []Rule
	byID    map[string]Rule
	byName  map[string]Rule
	byIssue map[string]Rule // rule identifier -> emitting group
}

// NewRegistry creates an empty rule registry.
func NewRegistry() *Registry {
	return &Registry{
		byID:    make(map[string]Rule),
		byName:  make(map[string]Rule),
		byIssue: make(map[string]Rule),
	}
}

// Register adds a rule group to the registry.
// If a group with the same ID already exists, it is replaced in place.
func (r *Registry) Register(rule Rule) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if existing, ok := r.byID[rule.ID()]; ok {
		idx := slices.IndexFunc(r.ordered, func(other Rule) bool { return other.ID() == rule.ID() })
		r.ordered[idx] = rule
		delete(r.byName, existing.Name())
		for _, id := range existing.IssueIDs() {
			delete(r.byIssue, id)
		}
	} else {
		r.ordered = append(r.ordered, rule)
	}

	r.byID[rule.ID()] = rule
	r.byName[rule.Name()] = rule
	for _, id := range rule.IssueIDs() {
		r.byIssue[id] = rule
	}
}

// Get retrieves a rule group by ID or name.
// It tries ID first, then falls back to name lookup.
func (r *Registry) Get(key string) (Rule, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if rule, ok := r.byID[key]; ok {
		return rule, true
	}
	if rule, ok := r.byName[key]; ok {
		return rule, true
	}
	return nil, false
}

// GroupFor returns the group that emits the given rule identifier.
func (r *Registry) GroupFor(issueID string) (Rule, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rule, ok := r.byIssue[issueID]
	return rule, ok
}

// Rules returns all registered groups in registration order.
func (r *Registry) Rules() []Rule {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Clone(r.ordered)
}

// IDs returns all registered group IDs in registration order.
func (r *Registry) IDs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]string, 0, len(r.ordered))
	for _, rule := range r.ordered {
		result = append(result, rule.ID())
	}
	return result
}

// IsKnown reports whether key names a registered group (by ID or name),
// a rule identifier one of them emits, or a structural identifier.
func (r *Registry) IsKnown(key string) bool {
	if IsStructural(key) {
		return true
	}
	if _, ok := r.Get(key); ok {
		return true
	}
	_, ok := r.GroupFor(key)
	return ok
}

// DefaultRegistry is the global registry for built-in rule groups.
// Rules register themselves during init().
//
//nolint:gochecknoglobals // Global registry is intentional for rule registration
var DefaultRegistry = NewRegistry()
