package bump

import (
	"errors"
	"fmt"
)

// ErrNoBumpTriggered is returned by Select when no pattern matched.
var ErrNoBumpTriggered = errors.New("nothing found triggering bump")

// Decision is the outcome of release-type selection.
type Decision struct {
	// ReleaseType is the first triggered kind in mapping order.
	ReleaseType string
	// Triggered holds every kind that matched, in mapping order.
	Triggered []string
	// Ambiguous is set when more than one kind matched.
	Ambiguous bool
}

// Select picks the first triggered kind. More than one triggered kind is not
// an error, the caller surfaces Warning instead.
func Select(triggered []string) (Decision, error) {
	if len(triggered) == 0 {
		return Decision{}, ErrNoBumpTriggered
	}
	return Decision{
		ReleaseType: triggered[0],
		Triggered:   append([]string(nil), triggered...),
		Ambiguous:   len(triggered) > 1,
	}, nil
}

// Warning returns the ambiguity message, or "" when the decision is unambiguous.
func (d Decision) Warning() string {
	if !d.Ambiguous {
		return ""
	}
	return fmt.Sprintf("More than one version label found on PR. Using %s", d.ReleaseType)
}
