package actions

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"
)

func TestLoadEnvironment(t *testing.T) {
	t.Setenv("GITHUB_ACTIONS", "true")
	t.Setenv("GITHUB_WORKSPACE", "/home/runner/work/app")
	t.Setenv("GITHUB_REPOSITORY", "acme/app")
	t.Setenv("GITHUB_EVENT_PATH", "/tmp/event.json")
	t.Setenv("GITHUB_OUTPUT", "/tmp/out")
	t.Setenv("RUNNER_DEBUG", "1")

	env := LoadEnvironment()
	require.True(t, env.Actions)
	require.Equal(t, "/home/runner/work/app", env.Workspace)
	require.Equal(t, "acme/app", env.Repository)
	require.Equal(t, "/tmp/event.json", env.EventPath)
	require.Equal(t, "/tmp/out", env.OutputPath)
	require.True(t, env.Debug)
}

func TestLoadEnvironment_Local(t *testing.T) {
	t.Setenv("GITHUB_ACTIONS", "")
	t.Setenv("RUNNER_DEBUG", "")
	env := LoadEnvironment()
	require.False(t, env.Actions)
	require.False(t, env.Debug)
}

func TestInput(t *testing.T) {
	t.Setenv("INPUT_MAJOR_PATTERN", "  /^major/i \n")
	require.Equal(t, "/^major/i", Input("major_pattern"))
	require.Equal(t, "/^major/i", Input("MAJOR_PATTERN"))
	require.Equal(t, "", Input("unset_input"))
}

func TestOwnerRepo(t *testing.T) {
	owner, repo, err := OwnerRepo("acme/app")
	require.NoError(t, err)
	require.Equal(t, "acme", owner)
	require.Equal(t, "app", repo)

	for _, bad := range []string{"", "app", "/app", "acme/", "a/b/c"} {
		_, _, err := OwnerRepo(bad)
		require.Error(t, err, bad)
	}
}

func TestReadEvent(t *testing.T) {
	tests := []struct {
		name    string
		payload string
		want    Event
	}{
		{
			"pull_request event",
			`{"number": 7, "pull_request": {"number": 7, "base": {"ref": "main"}}}`,
			Event{Number: 7, BaseRef: "main"},
		},
		{
			"issue_comment event",
			`{"issue": {"number": 9}}`,
			Event{Number: 9},
		},
		{
			"top-level number",
			`{"number": 3}`,
			Event{Number: 3},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := afero.NewMemMapFs()
			require.NoError(t, afero.WriteFile(fs, "/event.json", []byte(tt.payload), 0o644))
			ev, err := ReadEvent(fs, "/event.json")
			require.NoError(t, err)
			require.Equal(t, tt.want, ev)
		})
	}
}

func TestReadEvent_Errors(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/push.json", []byte(`{"ref": "refs/heads/main"}`), 0o644))
	require.NoError(t, afero.WriteFile(fs, "/bad.json", []byte(`{`), 0o644))

	_, err := ReadEvent(fs, "")
	require.ErrorContains(t, err, "GITHUB_EVENT_PATH")

	_, err = ReadEvent(fs, "/missing.json")
	require.ErrorContains(t, err, "reading event payload")

	_, err = ReadEvent(fs, "/bad.json")
	require.ErrorContains(t, err, "parsing event payload")

	_, err = ReadEvent(fs, "/push.json")
	require.ErrorContains(t, err, "does not reference a pull request")
}
