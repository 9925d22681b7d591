package config

// Default patterns. Each is evaluated independently, so a title such as
// "release: feat" triggers both major and minor.
const (
	DefaultMajorPattern = `/^(major|release)/i`
	DefaultMinorPattern = `/^feat/i`
	DefaultPatchPattern = `/^fix/i`
)

// CreateDefaultConfiguration returns a Config with all default values populated.
func CreateDefaultConfiguration() *Config {
	return &Config{
		Source:          sourcePtr(SourceTitle),
		MajorPattern:    stringPtr(DefaultMajorPattern),
		MinorPattern:    stringPtr(DefaultMinorPattern),
		PatchPattern:    stringPtr(DefaultPatchPattern),
		ManifestPath:    stringPtr("package.json"),
		DefaultBranch:   stringPtr("remotes/origin/master"),
		PreviousVersion: stringPtr(""),
		PullRequest:     intPtr(0),
		Fetch:           boolPtr(true),
		BaseFrom:        stringPtr(BaseFromGit),
	}
}
