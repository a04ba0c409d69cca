package reporting

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"github.com/yourusername/favstats/internal/models"
)

// Output formats
const (
	FormatTable = "table"
	FormatCSV   = "csv"
	FormatJSON  = "json"
)

const consoleUnknown = "NaN"

// Tables bundles the two output tables
type Tables struct {
	Races      []RaceRecord       `json:"races"`
	Statistics []StatisticsRecord `json:"statistics"`
}

// NewTables converts pipeline output into table records
func NewTables(rows []models.RaceRow, statistics []models.StatisticsRow) Tables {
	t := Tables{
		Races:      make([]RaceRecord, len(rows)),
		Statistics: make([]StatisticsRecord, len(statistics)),
	}
	for i, row := range rows {
		t.Races[i] = NewRaceRecord(row)
	}
	for i, stat := range statistics {
		t.Statistics[i] = NewStatisticsRecord(stat)
	}
	return t
}

// Render writes both tables to w in the requested format
func Render(w io.Writer, format string, tables Tables) error {
	switch format {
	case FormatTable, "":
		if err := WriteRaceTable(w, tables.Races); err != nil {
			return err
		}
		if _, err := io.WriteString(w, "\n"); err != nil {
			return err
		}
		return WriteStatisticsTable(w, tables.Statistics)
	case FormatCSV:
		if err := WriteRaceCSV(w, tables.Races); err != nil {
			return err
		}
		if _, err := io.WriteString(w, "\n"); err != nil {
			return err
		}
		return WriteStatisticsCSV(w, tables.Statistics)
	case FormatJSON:
		return WriteJSON(w, tables)
	default:
		return fmt.Errorf("unsupported report format: %s", format)
	}
}

// WriteRaceTable formats the per-race table for terminal output
func WriteRaceTable(w io.Writer, races []RaceRecord) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	writeTabRow(tw, RaceColumns)
	for _, r := range races {
		writeTabRow(tw, r.Cells(consoleUnknown))
	}
	return tw.Flush()
}

// WriteStatisticsTable formats the per-cohort table for terminal output
func WriteStatisticsTable(w io.Writer, statistics []StatisticsRecord) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	writeTabRow(tw, StatisticsColumns)
	for _, s := range statistics {
		writeTabRow(tw, s.Cells(2, consoleUnknown))
	}
	return tw.Flush()
}

// WriteRaceCSV exports the per-race table; unknown values are empty cells
func WriteRaceCSV(w io.Writer, races []RaceRecord) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(RaceColumns); err != nil {
		return err
	}
	for _, r := range races {
		if err := cw.Write(r.Cells("")); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteStatisticsCSV exports the per-cohort table; undefined values are empty cells
func WriteStatisticsCSV(w io.Writer, statistics []StatisticsRecord) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(StatisticsColumns); err != nil {
		return err
	}
	for _, s := range statistics {
		if err := cw.Write(s.Cells(-1, "")); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteJSON exports both tables; unknown values are null
func WriteJSON(w io.Writer, tables Tables) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(tables)
}

// ExportFiles writes races.<ext> and statistics.<ext> into dir and returns
// the written paths
func ExportFiles(dir, format string, tables Tables) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	if format == FormatJSON {
		path := filepath.Join(dir, "report.json")
		if err := writeFile(path, func(w io.Writer) error { return WriteJSON(w, tables) }); err != nil {
			return nil, err
		}
		return []string{path}, nil
	}

	ext, raceWriter, statWriter := "txt", WriteRaceTable, WriteStatisticsTable
	if format == FormatCSV {
		ext, raceWriter, statWriter = "csv", WriteRaceCSV, WriteStatisticsCSV
	}

	racesPath := filepath.Join(dir, "races."+ext)
	if err := writeFile(racesPath, func(w io.Writer) error { return raceWriter(w, tables.Races) }); err != nil {
		return nil, err
	}
	statsPath := filepath.Join(dir, "statistics."+ext)
	if err := writeFile(statsPath, func(w io.Writer) error { return statWriter(w, tables.Statistics) }); err != nil {
		return nil, err
	}
	return []string{racesPath, statsPath}, nil
}

func writeFile(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := write(f); err != nil {
		f.Close()
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return f.Close()
}

func writeTabRow(w io.Writer, cells []string) {
	fmt.Fprintln(w, strings.Join(cells, "\t")+"\t")
}
