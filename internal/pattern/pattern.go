// Package pattern compiles bump-pattern configuration strings into matchers.
//
// A configuration string takes one of two forms. The delimited form
// "/body/flags" carries a regular expression body and an optional flag set
// drawn from g, i, m and y. Anything else is the plain form, and the whole
// string is handed to the regex engine as-is.
package pattern

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/dlclark/regexp2"
)

// Kind identifies which lexical form a configuration string took.
type Kind int

const (
	KindPlain Kind = iota
	KindDelimited
)

func (k Kind) String() string {
	switch k {
	case KindPlain:
		return "Plain"
	case KindDelimited:
		return "Delimited"
	default:
		return "Unknown"
	}
}

// delimitedForm classifies a configuration string. The body capture is
// non-greedy but the expression is anchored, so the body runs from the first
// "/" up to the last "/" that is followed only by flag characters.
var delimitedForm = regexp.MustCompile(`^/(.*?)/([gimy]*)$`)

// Spec is a parsed configuration string.
type Spec struct {
	Kind  Kind
	Body  string
	Flags string
}

// Parse classifies raw. It never fails: every string is either delimited or plain.
func Parse(raw string) Spec {
	if m := delimitedForm.FindStringSubmatch(raw); m != nil {
		return Spec{Kind: KindDelimited, Body: m[1], Flags: m[2]}
	}
	return Spec{Kind: KindPlain, Body: raw}
}

// String renders s back into configuration form.
func (s Spec) String() string {
	if s.Kind == KindDelimited {
		return "/" + s.Body + "/" + s.Flags
	}
	return s.Body
}

// Compile builds a Pattern from s.
func (s Spec) Compile() (*Pattern, error) {
	opts := regexp2.RegexOptions(regexp2.ECMAScript)
	p := &Pattern{spec: s}

	for _, f := range s.Flags {
		if strings.Count(s.Flags, string(f)) > 1 {
			return nil, &CompilationError{Config: s.String(), Err: fmt.Errorf("duplicate flag %q", f)}
		}
		switch f {
		case 'i':
			opts |= regexp2.IgnoreCase
		case 'm':
			opts |= regexp2.Multiline
		case 'y':
			p.sticky = true
		case 'g':
			// A boolean test reports the first match whether or not the search is global.
		}
	}

	re, err := regexp2.Compile(s.Body, opts)
	if err != nil {
		return nil, &CompilationError{Config: s.String(), Err: err}
	}
	p.re = re
	return p, nil
}

// Compile parses and compiles a configuration string in one step.
func Compile(raw string) (*Pattern, error) {
	return Parse(raw).Compile()
}

// MustCompile is like Compile but panics on error. For package-level defaults and tests.
func MustCompile(raw string) *Pattern {
	p, err := Compile(raw)
	if err != nil {
		panic(err)
	}
	return p
}

// Pattern is a compiled matcher. It is safe for concurrent use.
type Pattern struct {
	spec   Spec
	re     *regexp2.Regexp
	sticky bool
}

// Spec returns the parsed configuration the pattern was compiled from.
func (p *Pattern) Spec() Spec {
	return p.spec
}

// MatchString reports whether s contains a match anywhere, or at index 0 when
// the sticky flag is set.
func (p *Pattern) MatchString(s string) (bool, error) {
	if !p.sticky {
		ok, err := p.re.MatchString(s)
		if err != nil {
			return false, fmt.Errorf("matching %q against %s: %w", s, p.spec, err)
		}
		return ok, nil
	}

	// The engine scans left to right, so a match anchored at 0 is found first if one exists.
	m, err := p.re.FindStringMatch(s)
	if err != nil {
		return false, fmt.Errorf("matching %q against %s: %w", s, p.spec, err)
	}
	return m != nil && m.Index == 0, nil
}

// CompilationError reports a configuration string the regex engine rejected.
type CompilationError struct {
	Config string
	Err    error
}

func (e *CompilationError) Error() string {
	return fmt.Sprintf("invalid pattern %q: %v", e.Config, e.Err)
}

func (e *CompilationError) Unwrap() error {
	return e.Err
}
