// Package output renders merge-check reports as a console table, JSON, or
// a single-branch detail view.
package output

import (
	"time"

	"github.com/yujunjiex/git-merge-checker/internal/checker"
)

// mergedAtFormat is the timestamp format used for merge times.
const mergedAtFormat = "2006-01-02 15:04:05 -0700"

// Row is the flat, render-ready form of one branch result.
type Row struct {
	Branch   string `json:"branch"`
	State    string `json:"state"`
	Commit   string `json:"commit,omitempty"`
	MergedAt string `json:"mergedAt,omitempty"`
	Title    string `json:"title,omitempty"`
	Via      string `json:"via,omitempty"`
}

// Rows converts report results into render-ready rows. A merged branch
// carries its merge commit, merge time, and title; a directly merged
// branch carries its own tip commit with the merge time left unknown; an
// unmerged branch carries no commit details.
func Rows(report *checker.Report) []Row {
	rows := make([]Row, 0, len(report.Results))
	for _, r := range report.Results {
		row := Row{
			Branch: r.Branch.FriendlyName(),
			State:  r.State.String(),
		}

		switch r.State {
		case checker.StateMerged:
			row.Commit = r.MergeCommit.ShortSha()
			row.MergedAt = r.MergeCommit.When.In(time.Local).Format(mergedAtFormat)
			row.Title = r.MergeCommit.Title()
			row.Via = r.MergedVia
		case checker.StateMergedDirectly:
			if r.Branch.Tip != nil {
				row.Commit = r.Branch.Tip.ShortSha()
				row.Title = r.Branch.Tip.Title()
			}
		}

		rows = append(rows, row)
	}
	return rows
}
