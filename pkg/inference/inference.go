// Package inference fills empty specification fields from correlated
// evidence on the same record. Rules are declarative (predicate plus value),
// evaluated in declaration order, first match per target field wins. The
// pass is single and deterministic: a rule may read fields filled earlier in
// the same pass, but the engine never loops to a fixpoint.
package inference

import (
	"regexp"
	"strings"

	"github.com/RolandGoud/bikescraper/pkg/catalog"
)

// Predicate decides whether a rule applies to a record. Predicates must be
// pure functions of the record.
type Predicate func(*catalog.Record) bool

// Producer computes the value a matching rule fills in. An empty result
// means the rule declines and evaluation moves on.
type Producer func(*catalog.Record) string

// Rule is one inference rule: when the predicate holds and the target field
// is still empty, the produced value is written with provenance Inferred.
type Rule struct {
	Name   string
	Target catalog.Field
	When   Predicate
	Value  Producer
}

// Engine evaluates a fixed rule table over records.
type Engine struct {
	rules []Rule
}

// New creates an engine with the given rules. Priority is declaration order.
func New(rules ...Rule) *Engine {
	return &Engine{rules: rules}
}

// Len returns the number of rules.
func (e *Engine) Len() int {
	return len(e.rules)
}

// Infer runs the single pass over one record and returns the number of
// fields filled. Fields with no matching rule stay empty; that is not an
// error.
func (e *Engine) Infer(r *catalog.Record) int {
	filled := 0
	for _, rule := range e.rules {
		if !r.Spec(rule.Target).IsEmpty() {
			continue
		}
		if rule.When != nil && !rule.When(r) {
			continue
		}
		value := rule.Value(r)
		if value == "" {
			continue
		}
		r.SetSpec(rule.Target, catalog.InferredValue(value))
		filled++
	}
	return filled
}

// InferSnapshot runs the pass over every record in a snapshot and returns
// the total number of fields filled.
func (e *Engine) InferSnapshot(records []*catalog.Record) int {
	total := 0
	for _, r := range records {
		total += e.Infer(r)
	}
	return total
}

// Static returns a producer with a fixed value.
func Static(value string) Producer {
	return func(*catalog.Record) string { return value }
}

// Always is a predicate that matches every record.
func Always() Predicate {
	return func(*catalog.Record) bool { return true }
}

// All combines predicates with logical AND.
func All(preds ...Predicate) Predicate {
	return func(r *catalog.Record) bool {
		for _, p := range preds {
			if !p(r) {
				return false
			}
		}
		return true
	}
}

// Any combines predicates with logical OR.
func Any(preds ...Predicate) Predicate {
	return func(r *catalog.Record) bool {
		for _, p := range preds {
			if p(r) {
				return true
			}
		}
		return false
	}
}

// Not negates a predicate.
func Not(p Predicate) Predicate {
	return func(r *catalog.Record) bool { return !p(r) }
}

// SpecContains matches when the field's value contains any of the given
// substrings, case-insensitively.
func SpecContains(field catalog.Field, substrings ...string) Predicate {
	return func(r *catalog.Record) bool {
		return containsAny(r.Spec(field).Value, substrings)
	}
}

// SpecMatches matches the field's value against a regular expression.
// The pattern is compiled once, at table construction.
func SpecMatches(field catalog.Field, pattern string) Predicate {
	re := regexp.MustCompile("(?i)" + pattern)
	return func(r *catalog.Record) bool {
		return re.MatchString(r.Spec(field).Value)
	}
}

// ModelContains matches against the record's model name.
func ModelContains(substrings ...string) Predicate {
	return func(r *catalog.Record) bool {
		return containsAny(r.Model, substrings)
	}
}

// CategoryContains matches against the record's category.
func CategoryContains(substrings ...string) Predicate {
	return func(r *catalog.Record) bool {
		return containsAny(r.Category, substrings)
	}
}

func containsAny(value string, substrings []string) bool {
	value = strings.ToLower(value)
	for _, s := range substrings {
		if strings.Contains(value, strings.ToLower(s)) {
			return true
		}
	}
	return false
}
