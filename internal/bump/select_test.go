package bump

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSelect_None(t *testing.T) {
	_, err := Select([]string{})
	require.ErrorIs(t, err, ErrNoBumpTriggered)

	_, err = Select(nil)
	require.ErrorIs(t, err, ErrNoBumpTriggered)
}

func TestSelect_Single(t *testing.T) {
	d, err := Select([]string{"patch"})
	require.NoError(t, err)
	require.Equal(t, "patch", d.ReleaseType)
	require.False(t, d.Ambiguous)
	require.Empty(t, d.Warning())
}

func TestSelect_AmbiguousPicksFirst(t *testing.T) {
	triggered := []string{"major", "minor"}
	d, err := Select(triggered)
	require.NoError(t, err)
	require.Equal(t, "major", d.ReleaseType)
	require.True(t, d.Ambiguous)
	require.Equal(t, []string{"major", "minor"}, d.Triggered)
	require.Equal(t, "More than one version label found on PR. Using major", d.Warning())

	// The decision owns its copy.
	triggered[0] = "patch"
	require.Equal(t, "major", d.Triggered[0])
}

func TestResolveThenSelect(t *testing.T) {
	kinds, err := Resolve([]string{"feat/", "major"}, mapping("major", "^feat/", "fix/"))
	require.NoError(t, err)

	d, err := Select(kinds)
	require.NoError(t, err)
	require.Equal(t, "major", d.ReleaseType)
	require.True(t, d.Ambiguous)
}
