// Package bump resolves which bump kinds a set of source strings triggers and
// picks the effective release type from them.
package bump

import (
	"fmt"

	"github.com/MyCarrier-DevOps/go-prsemver/internal/pattern"
)

// Rule pairs a bump kind with the configuration string that triggers it.
type Rule struct {
	Kind    string
	Pattern string
}

// Mapping is an ordered list of rules. Declaration order is precedence order.
type Mapping []Rule

// Kinds returns the kind of every rule in declaration order.
func (m Mapping) Kinds() []string {
	kinds := make([]string, 0, len(m))
	for _, r := range m {
		kinds = append(kinds, r.Kind)
	}
	return kinds
}

// Resolve returns, in mapping order, every kind whose pattern matches at least
// one source. Nothing matching is not an error; the result is then empty.
// The only failure is a pattern that does not compile or match.
func Resolve(sources []string, mapping Mapping) ([]string, error) {
	found := []string{}
	for _, rule := range mapping {
		p, err := pattern.Compile(rule.Pattern)
		if err != nil {
			return nil, fmt.Errorf("compiling %s pattern: %w", rule.Kind, err)
		}

		matched, err := matchAny(p, sources)
		if err != nil {
			return nil, fmt.Errorf("evaluating %s pattern: %w", rule.Kind, err)
		}
		if matched {
			found = append(found, rule.Kind)
		}
	}
	return found, nil
}

func matchAny(p *pattern.Pattern, sources []string) (bool, error) {
	for _, s := range sources {
		ok, err := p.MatchString(s)
		if err != nil {
			return false, err
		}
		if ok {
			return true, nil
		}
	}
	return false, nil
}
