package output

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/yujunjiex/git-merge-checker/internal/checker"
)

// jsonReport is the JSON wire shape of a report.
type jsonReport struct {
	Target   string `json:"target"`
	Tip      string `json:"tip,omitempty"`
	Branches []Row  `json:"branches"`
}

// WriteJSON writes the report as pretty-printed JSON to the writer.
func WriteJSON(w io.Writer, report *checker.Report) error {
	doc := jsonReport{
		Target:   report.Target,
		Tip:      report.TargetTip.Sha,
		Branches: Rows(report),
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling report to JSON: %w", err)
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("writing JSON output: %w", err)
	}
	_, err = w.Write([]byte("\n"))
	return err
}
