package validator

// Registry holds rules in registration order.
type Registry struct {
	rules []Rule
	keys  map[string]int
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{keys: make(map[string]int)}
}

// Register adds a rule, replacing any rule already registered under its key.
func (r *Registry) Register(rule Rule) {
	if i, ok := r.keys[rule.RuleKey()]; ok {
		r.rules[i] = rule
		return
	}
	r.keys[rule.RuleKey()] = len(r.rules)
	r.rules = append(r.rules, rule)
}

// Get returns the rule for a given key, or nil if not found.
func (r *Registry) Get(key string) Rule {
	i, ok := r.keys[key]
	if !ok {
		return nil
	}
	return r.rules[i]
}

// All returns the rules in registration order.
func (r *Registry) All() []Rule {
	return r.rules
}

// DefaultRegistry returns a registry holding the built-in rules.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	for _, rule := range BuiltinRules() {
		r.Register(rule)
	}
	return r
}
