package burndown

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

var (
	totalsHeader  = []string{"date", "remaining_story_points"}
	detailsHeader = []string{"date", "issue", "status", "story_points", "remaining_for_issue"}
)

func TotalsFileName(sprintID string) string {
	return fmt.Sprintf("sprint_%s_remaining.csv", sprintID)
}

func DetailsFileName(sprintID string) string {
	return fmt.Sprintf("sprint_%s_remaining_details.csv", sprintID)
}

// WriteTotalsCSV writes one row per day with the total rounded to two decimals.
func WriteTotalsCSV(w io.Writer, totals []DailyTotal) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(totalsHeader); err != nil {
		return err
	}
	for _, t := range totals {
		record := []string{t.Date.Format(DateLayout), strconv.FormatFloat(t.Remaining, 'f', 2, 64)}
		if err := writer.Write(record); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

func WriteDetailsCSV(w io.Writer, details []DailyRecord) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(detailsHeader); err != nil {
		return err
	}
	for _, r := range details {
		record := []string{
			r.Date.Format(DateLayout),
			r.Issue,
			r.Status,
			FormatPoints(r.StoryPoints),
			FormatPoints(r.Remaining),
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

// FormatPoints renders the shortest decimal that round-trips, keeping a
// trailing ".0" on whole numbers (3 -> "3.0", 2.5 -> "2.5").
func FormatPoints(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.ContainsAny(s, ".eEnN") {
		s += ".0"
	}
	return s
}

// WriteFiles writes both tables into dir. Each table goes to a temporary file
// first, so a failure never leaves a truncated table behind.
func (r Report) WriteFiles(dir string) (string, string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", "", fmt.Errorf("create output dir: %w", err)
	}

	totalsTmp, err := writeTemp(dir, func(w io.Writer) error { return WriteTotalsCSV(w, r.Totals) })
	if err != nil {
		return "", "", fmt.Errorf("write daily totals: %w", err)
	}
	detailsTmp, err := writeTemp(dir, func(w io.Writer) error { return WriteDetailsCSV(w, r.Details) })
	if err != nil {
		os.Remove(totalsTmp)
		return "", "", fmt.Errorf("write details: %w", err)
	}

	totalsPath := filepath.Join(dir, TotalsFileName(r.Sprint.ID))
	detailsPath := filepath.Join(dir, DetailsFileName(r.Sprint.ID))
	if err := os.Rename(totalsTmp, totalsPath); err != nil {
		os.Remove(totalsTmp)
		os.Remove(detailsTmp)
		return "", "", fmt.Errorf("write daily totals: %w", err)
	}
	if err := os.Rename(detailsTmp, detailsPath); err != nil {
		os.Remove(detailsTmp)
		os.Remove(totalsPath)
		return "", "", fmt.Errorf("write details: %w", err)
	}
	return totalsPath, detailsPath, nil
}

func writeTemp(dir string, write func(io.Writer) error) (string, error) {
	f, err := os.CreateTemp(dir, ".burndown-*.csv.tmp")
	if err != nil {
		return "", err
	}
	if err := f.Chmod(0o644); err != nil {
		f.Close()
		os.Remove(f.Name())
		return "", err
	}
	if err := write(f); err != nil {
		f.Close()
		os.Remove(f.Name())
		return "", err
	}
	if err := f.Close(); err != nil {
		os.Remove(f.Name())
		return "", err
	}
	return f.Name(), nil
}
