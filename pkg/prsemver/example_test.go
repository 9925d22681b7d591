package prsemver_test

import (
	"fmt"

	"github.com/MyCarrier-DevOps/go-prsemver/pkg/prsemver"
)

func ExampleNext() {
	next, decision, err := prsemver.Next("1.4.2", []string{"feat: dark mode"}, prsemver.DefaultPatterns())
	if err != nil {
		panic(err)
	}
	fmt.Println(decision.ReleaseType, next)
	// Output: minor 1.5.0
}

func ExampleResolve() {
	decision, err := prsemver.Resolve([]string{"fix", "feat"}, prsemver.DefaultPatterns())
	if err != nil {
		panic(err)
	}
	fmt.Println(decision.ReleaseType)
	fmt.Println(decision.Warning)
	// Output:
	// minor
	// More than one version label found on PR. Using minor
}
