package output

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/yujunjiex/git-merge-checker/internal/checker"
)

// WriteTable writes the report as an aligned console table.
func WriteTable(w io.Writer, report *checker.Report) error {
	if _, err := fmt.Fprintf(w, "Merge status against %s\n\n", report.Target); err != nil {
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "BRANCH\tSTATE\tCOMMIT\tMERGED AT\tTITLE")

	for _, row := range Rows(report) {
		mergedAt := row.MergedAt
		if row.State == checker.StateMergedDirectly.String() {
			mergedAt = "unknown"
		}
		title := row.Title
		if row.Via != "" {
			title = fmt.Sprintf("%s (via %s)", title, row.Via)
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", row.Branch, row.State, row.Commit, mergedAt, title)
	}

	if err := tw.Flush(); err != nil {
		return fmt.Errorf("writing table output: %w", err)
	}
	return nil
}

// WriteBranch writes the detail view for a single branch, key=value per
// line, or fails if the branch is not in the report.
func WriteBranch(w io.Writer, report *checker.Report, branch string) error {
	for _, row := range Rows(report) {
		if row.Branch != branch {
			continue
		}

		fmt.Fprintf(w, "branch=%s\n", row.Branch)
		fmt.Fprintf(w, "state=%s\n", row.State)
		if row.Commit != "" {
			fmt.Fprintf(w, "commit=%s\n", row.Commit)
		}
		if row.MergedAt != "" {
			fmt.Fprintf(w, "mergedAt=%s\n", row.MergedAt)
		}
		if row.Title != "" {
			fmt.Fprintf(w, "title=%s\n", row.Title)
		}
		if row.Via != "" {
			fmt.Fprintf(w, "via=%s\n", row.Via)
		}
		return nil
	}

	return fmt.Errorf("branch %q not present in report", branch)
}
