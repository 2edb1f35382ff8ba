package dataset

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"pulse-insights-go/internal/types"
)

// timeLayouts are tried in order for the submission time column.
var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
	"01-02-06 15:04",
	"1/2/06 15:04",
	"1/2/2006",
}

// Row is a check-in form read from a sheet. Line is the 1-based sheet row, so
// the header is line 1.
type Row struct {
	Line int
	Form types.EntryForm
}

// Load reads check-in forms from the first sheet of an xlsx file. Columns are
// detected from header keywords; rows with every cell blank are skipped.
func Load(path string) ([]Row, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer f.Close()
	return read(f)
}

func LoadReader(r io.Reader) ([]Row, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open reader: %w", err)
	}
	defer f.Close()
	return read(f)
}

type columns struct {
	name, dept, mood, energy, stress, collab, productivity, notes, when int
}

func detect(header []string) columns {
	c := columns{-1, -1, -1, -1, -1, -1, -1, -1, -1}
	set := func(idx *int, i int) {
		if *idx == -1 {
			*idx = i
		}
	}
	for i, h := range header {
		l := strings.ToLower(strings.TrimSpace(h))
		switch {
		case strings.Contains(l, "name") || strings.Contains(l, "employee"):
			set(&c.name, i)
		case strings.Contains(l, "dept") || strings.Contains(l, "department"):
			set(&c.dept, i)
		case strings.Contains(l, "mood"):
			set(&c.mood, i)
		case strings.Contains(l, "energy"):
			set(&c.energy, i)
		case strings.Contains(l, "stress"):
			set(&c.stress, i)
		case strings.Contains(l, "collab"):
			set(&c.collab, i)
		case strings.Contains(l, "productiv"):
			set(&c.productivity, i)
		case strings.Contains(l, "note") || strings.Contains(l, "comment"):
			set(&c.notes, i)
		case strings.Contains(l, "time") || strings.Contains(l, "date") || strings.Contains(l, "submitted"):
			set(&c.when, i)
		}
	}
	return c
}

func read(f *excelize.File) ([]Row, error) {
	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("no sheets")
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read rows: %w", err)
	}
	if len(rows) <= 1 {
		return nil, fmt.Errorf("no data rows")
	}
	cols := detect(rows[0])
	if cols.name == -1 || cols.mood == -1 {
		return nil, fmt.Errorf("header must name at least the employee and mood columns")
	}

	var out []Row
	for i, r := range rows {
		if i == 0 || blank(r) {
			continue
		}
		cell := func(idx int) string {
			if idx >= 0 && idx < len(r) {
				return strings.TrimSpace(r[idx])
			}
			return ""
		}
		form := types.EntryForm{
			EmployeeName:         cell(cols.name),
			Department:           normalizeKey(cell(cols.dept)),
			OverallMood:          normalizeKey(cell(cols.mood)),
			EnergyLevel:          normalizeKey(cell(cols.energy)),
			StressLevel:          normalizeKey(cell(cols.stress)),
			CollaborationFeeling: normalizeKey(cell(cols.collab)),
			ProductivityFeeling:  normalizeKey(cell(cols.productivity)),
			Notes:                cell(cols.notes),
		}
		if raw := cell(cols.when); raw != "" {
			t, err := parseTime(raw)
			if err != nil {
				return nil, fmt.Errorf("row %d: %w", i+1, err)
			}
			form.SubmissionTime = t
		}
		out = append(out, Row{Line: i + 1, Form: form})
	}
	return out, nil
}

// normalizeKey accepts display labels ("Customer Service") as well as keys.
func normalizeKey(s string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), " ", "_")
}

func parseTime(raw string) (time.Time, error) {
	for _, layout := range timeLayouts {
		if t, err := time.ParseInLocation(layout, raw, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognised submission time %q", raw)
}

func blank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
