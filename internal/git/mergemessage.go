package git

import (
	"regexp"
	"strconv"
)

// MergeMessageFormat defines a named regex pattern for merge messages.
type MergeMessageFormat struct {
	Name    string
	Pattern *regexp.Regexp
}

// MergeMessage represents a parsed merge commit message. It names the
// branch that was brought in, which report rows use to annotate a merge
// that the branch tip alone does not reveal.
type MergeMessage struct {
	FormatName          string
	MergedBranch        string
	TargetBranch        string
	PullRequestNumber   int
	IsMergedPullRequest bool
}

// IsEmpty returns true if the merge message did not match any format.
func (m MergeMessage) IsEmpty() bool {
	return m.FormatName == ""
}

// defaultFormats are the built-in merge message formats, covering the
// messages produced by git itself and the major hosting platforms.
var defaultFormats = []MergeMessageFormat{
	{
		Name:    "Default",
		Pattern: regexp.MustCompile(`(?i)^Merge (branch|tag) '(?P<SourceBranch>[^']*)'(?: into (?P<TargetBranch>\S*))*`),
	},
	{
		Name:    "RemoteTracking",
		Pattern: regexp.MustCompile(`(?i)^Merge remote-tracking branch '(?P<SourceBranch>[^']*)'(?: into (?P<TargetBranch>\S*))*`),
	},
	{
		Name:    "GitHubPull",
		Pattern: regexp.MustCompile(`(?i)^Merge pull request #(?P<PullRequestNumber>\d+) (?:from|in) (?P<SourceBranch>\S*)(?: into (?P<TargetBranch>\S*))*`),
	},
	{
		Name:    "BitBucketPull",
		Pattern: regexp.MustCompile(`(?i)^Merge pull request #(?P<PullRequestNumber>\d+) (?:from|in) (?P<Source>.*) from (?P<SourceBranch>\S*) to (?P<TargetBranch>\S*)`),
	},
	{
		Name:    "BitBucketPullv7",
		Pattern: regexp.MustCompile(`(?is)^Pull request #(?P<PullRequestNumber>\d+).*\n\nMerge in (?P<Source>.*) from (?P<SourceBranch>\S*) to (?P<TargetBranch>\S*)`),
	},
	{
		Name:    "BitBucketMergedIn",
		Pattern: regexp.MustCompile(`(?i)^Merged in (?P<SourceBranch>\S*) \(pull request #(?P<PullRequestNumber>\d+)\)`),
	},
	{
		Name:    "SmartGit",
		Pattern: regexp.MustCompile(`(?i)^Finish (?P<SourceBranch>\S*)(?: into (?P<TargetBranch>\S*))*`),
	},
}

// ParseMergeMessage parses a commit message against all known merge
// formats. Returns a zero MergeMessage if no format matches.
func ParseMergeMessage(message string) MergeMessage {
	for _, format := range defaultFormats {
		match := format.Pattern.FindStringSubmatch(message)
		if match == nil {
			continue
		}

		result := MergeMessage{FormatName: format.Name}
		for i, name := range format.Pattern.SubexpNames() {
			if i == 0 || name == "" || match[i] == "" {
				continue
			}
			switch name {
			case "SourceBranch":
				result.MergedBranch = match[i]
			case "TargetBranch":
				result.TargetBranch = match[i]
			case "PullRequestNumber":
				if n, err := strconv.Atoi(match[i]); err == nil {
					result.PullRequestNumber = n
					result.IsMergedPullRequest = true
				}
			}
		}
		return result
	}

	return MergeMessage{}
}
