package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/MyCarrier-DevOps/go-prsemver/internal/bump"
	"github.com/MyCarrier-DevOps/go-prsemver/internal/pattern"
	"github.com/MyCarrier-DevOps/go-prsemver/internal/release"
)

const arrowPrefix = "→"

// WriteExplanation writes which pattern matched which source string, the
// selected release type and the resulting version change.
func WriteExplanation(w io.Writer, mapping bump.Mapping, res release.Result) error {
	fmt.Fprintln(w, "Sources:")
	if len(res.Sources) == 0 {
		fmt.Fprintln(w, "  (none)")
	}
	for _, s := range res.Sources {
		fmt.Fprintf(w, "  %q\n", s)
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Patterns evaluated:")
	for _, rule := range mapping {
		matched, err := matchingSources(rule.Pattern, res.Sources)
		if err != nil {
			return fmt.Errorf("explaining %s pattern: %w", rule.Kind, err)
		}

		label := rule.Kind + ":"
		if len(matched) == 0 {
			fmt.Fprintf(w, "  %-7s %s (no match)\n", label, rule.Pattern)
			continue
		}
		fmt.Fprintf(w, "  %-7s %s\n", label, rule.Pattern)
		for _, s := range matched {
			fmt.Fprintf(w, "    %s %q\n", arrowPrefix, s)
		}
	}

	fmt.Fprintln(w)
	if len(res.Triggered) > 1 {
		fmt.Fprintf(w, "Selected: %s (also matched: %s)\n", res.ReleaseType, strings.Join(res.Triggered[1:], ", "))
	} else {
		fmt.Fprintf(w, "Selected: %s\n", res.ReleaseType)
	}

	if res.NewVersion != "" {
		fmt.Fprintln(w)
		fmt.Fprintf(w, "Result: %s %s %s\n", res.PreviousVersionMaster, arrowPrefix, res.NewVersion)
	}
	return nil
}

func matchingSources(raw string, sources []string) ([]string, error) {
	p, err := pattern.Compile(raw)
	if err != nil {
		return nil, err
	}
	var matched []string
	for _, s := range sources {
		ok, err := p.MatchString(s)
		if err != nil {
			return nil, err
		}
		if ok {
			matched = append(matched, s)
		}
	}
	return matched, nil
}

// FormatExplanation returns the explain output as a string.
func FormatExplanation(mapping bump.Mapping, res release.Result) string {
	var sb strings.Builder
	_ = WriteExplanation(&sb, mapping, res)
	return sb.String()
}
