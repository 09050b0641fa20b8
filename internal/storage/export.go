package storage

import (
	"fmt"
	"io"
	"time"

	"github.com/gocarina/gocsv"
)

// runRecord is the CSV row for one run.
type runRecord struct {
	Mode     string  `csv:"mode"`
	Floor    int     `csv:"floor"`
	Score    int     `csv:"score"`
	MaxCombo int     `csv:"max_combo"`
	Seconds  float64 `csv:"seconds"`
	Date     string  `csv:"date"`
}

// ExportCSV writes runs to w with a header row.
func ExportCSV(w io.Writer, runs []RunEntry) error {
	records := make([]runRecord, 0, len(runs))
	for _, r := range runs {
		rec := runRecord{
			Mode:     r.Mode,
			Floor:    r.Floor,
			Score:    r.Score,
			MaxCombo: r.MaxCombo,
			Seconds:  r.Duration.Seconds(),
		}
		if !r.CreatedAt.IsZero() {
			rec.Date = r.CreatedAt.UTC().Format(time.RFC3339)
		}
		records = append(records, rec)
	}

	if err := gocsv.Marshal(records, w); err != nil {
		return fmt.Errorf("storage: cannot write csv: %w", err)
	}
	return nil
}
