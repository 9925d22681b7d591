// Example program demonstrating the prsemver library API.
//
// Run from the repo root:
//
//	go run ./example/ "feat: add export" 1.2.3
//
// With a pull request (set GITHUB_TOKEN first):
//
//	GITHUB_TOKEN=ghp_xxx PR_REPO=myorg/myrepo PR_NUMBER=42 go run ./example/
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/MyCarrier-DevOps/go-prsemver/pkg/prsemver"
)

func main() {
	title, previous := "feat: add export", "1.2.3"
	if len(os.Args) > 2 {
		title, previous = os.Args[1], os.Args[2]
	}
	localDecision(title, previous)

	if os.Getenv("GITHUB_TOKEN") != "" && os.Getenv("PR_REPO") != "" {
		pullRequestDecision()
	}
}

func localDecision(title, previous string) {
	next, decision, err := prsemver.Next(previous, []string{title}, prsemver.DefaultPatterns())
	if err != nil {
		log.Fatalf("resolving %q failed: %v", title, err)
	}

	fmt.Println("=== Title ===")
	fmt.Printf("%-14s %s\n", "title", title)
	fmt.Printf("%-14s %s\n", "release_type", decision.ReleaseType)
	fmt.Printf("%-14s %s -> %s\n", "version", previous, next)
	fmt.Println()
}

func pullRequestDecision() {
	owner, repo, _ := strings.Cut(os.Getenv("PR_REPO"), "/")
	number, err := strconv.Atoi(os.Getenv("PR_NUMBER"))
	if err != nil {
		log.Fatalf("invalid PR_NUMBER: %v", err)
	}

	decision, err := prsemver.ResolvePullRequest(context.Background(), prsemver.PullRequestOptions{
		Owner:  owner,
		Repo:   repo,
		Number: number,
		Source: "label",
		Token:  os.Getenv("GITHUB_TOKEN"),
	})
	if err != nil {
		log.Fatalf("pull request resolution failed: %v", err)
	}

	fmt.Println("=== Pull Request Labels ===")
	fmt.Printf("%-14s %s\n", "release_type", decision.ReleaseType)
	fmt.Printf("%-14s %s\n", "triggered", strings.Join(decision.Triggered, ","))
	if decision.Warning != "" {
		fmt.Printf("%-14s %s\n", "warning", decision.Warning)
	}
}
