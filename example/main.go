// Example program demonstrating the mergecheck library API.
//
// Run from the repo root:
//
//	go run ./example/
//
// With remote mode (set GITHUB_TOKEN first):
//
//	GITHUB_TOKEN=ghp_xxx go run ./example/ myorg/myrepo
package main

import (
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/yujunjiex/git-merge-checker/pkg/mergecheck"
)

func main() {
	if len(os.Args) > 1 && os.Getenv("GITHUB_TOKEN") != "" {
		remoteCheck(os.Args[1])
		return
	}
	localCheck()
}

func localCheck() {
	report, err := mergecheck.Check(mergecheck.LocalOptions{
		Path: ".",
	})
	if err != nil {
		log.Fatalf("check failed: %v", err)
	}

	printReport(report)
}

func remoteCheck(ownerRepo string) {
	parts := strings.SplitN(ownerRepo, "/", 2)
	if len(parts) != 2 {
		log.Fatalf("expected owner/repo, got %q", ownerRepo)
	}

	report, err := mergecheck.CheckRemote(mergecheck.RemoteOptions{
		Owner: parts[0],
		Repo:  parts[1],
		Token: os.Getenv("GITHUB_TOKEN"),
	})
	if err != nil {
		log.Fatalf("remote check failed: %v", err)
	}

	printReport(report)
}

func printReport(report *mergecheck.Report) {
	fmt.Printf("target: %s\n", report.Target)
	for _, r := range report.Results {
		line := fmt.Sprintf("  %s: %s", r.Branch.FriendlyName(), r.State)
		if !r.MergeCommit.IsEmpty() {
			line += fmt.Sprintf(" via %s at %s", r.MergeCommit.ShortSha(), r.MergeCommit.When)
		}
		fmt.Println(line)
	}
}
