package output

import (
	"strings"

	"github.com/MyCarrier-DevOps/go-prsemver/internal/release"
)

// GetVariables flattens a bump result into the named output variables.
func GetVariables(res release.Result) map[string]string {
	return map[string]string{
		"previous_version_master": res.PreviousVersionMaster,
		"previous_version":        res.PreviousVersion,
		"new_version":             res.NewVersion,
		"release_type":            res.ReleaseType,
		"bump_types":              strings.Join(res.Triggered, ","),
	}
}
