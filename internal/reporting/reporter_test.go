package reporting

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/favstats/internal/models"
)

func intPtr(v int) *int { return &v }

func floatPtr(v float64) *float64 { return &v }

func boolPtr(v bool) *bool { return &v }

func oddsPtr(v int64) *decimal.Decimal {
	d := decimal.NewFromInt(v)
	return &d
}

func sampleTables() Tables {
	rows := []models.RaceRow{
		{
			Race:     0,
			GameType: "V75",
			GameID:   "V75_1",
			Favorites: [3]models.Favorite{
				{Name: "Mellby Jinx", WinOdds: oddsPtr(100), Placement: intPtr(1)},
				{Name: "Hail Mary", WinOdds: oddsPtr(250), Placement: intPtr(4)},
				{Name: "Don Fanucci Zet", WinOdds: oddsPtr(310)},
			},
			FavWon: boolPtr(true),
		},
		{
			Race:     1,
			GameType: "V75",
			GameID:   "V75_1",
			Favorites: [3]models.Favorite{
				{Name: "Hohneck", WinOdds: oddsPtr(180)},
				{Name: "Propulsion", WinOdds: oddsPtr(220), Placement: intPtr(2)},
				{Name: "Click Bait"},
			},
		},
	}
	statistics := []models.StatisticsRow{
		{GameType: "V75", WinRate: floatPtr(100), MedianPlacement: floatPtr(1), MeanPlacement: floatPtr(1)},
		{GameType: "V86"},
	}
	return NewTables(rows, statistics)
}

func TestNewRaceRecord(t *testing.T) {
	tables := sampleTables()
	require.Len(t, tables.Races, 2)

	won := tables.Races[0]
	assert.Equal(t, "Mellby Jinx", won.FavName)
	assert.Equal(t, "Hail Mary", won.SecondFavName)
	assert.Equal(t, "Don Fanucci Zet", won.ThirdFavName)
	require.NotNil(t, won.FavOdds)
	assert.Equal(t, 100.0, *won.FavOdds)
	require.NotNil(t, won.FavWon)
	assert.Equal(t, 1, *won.FavWon)

	unknown := tables.Races[1]
	assert.Nil(t, unknown.FavPlacement)
	assert.Nil(t, unknown.FavWon)
	assert.Nil(t, unknown.ThirdFavOdds)
}

func TestCellsUnknownMarkers(t *testing.T) {
	tables := sampleTables()

	cells := tables.Races[1].Cells("NaN")
	assert.Equal(t, []string{"1", "V75", "Hohneck", "Propulsion", "Click Bait", "180", "220", "NaN", "NaN", "NaN"}, cells)

	statCells := tables.Statistics[1].Cells(2, "")
	assert.Equal(t, []string{"V86", "", "", ""}, statCells)

	statCells = tables.Statistics[0].Cells(2, "NaN")
	assert.Equal(t, []string{"V75", "100.00", "1.00", "1.00"}, statCells)
}

func TestRenderTable(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, FormatTable, sampleTables()))

	out := buf.String()
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 7)
	assert.Contains(t, lines[0], "fav_name")
	assert.Contains(t, lines[0], "fav_won")
	assert.Contains(t, lines[2], "NaN")
	assert.Equal(t, "", lines[3])
	assert.Contains(t, lines[4], "% fav wins")
	assert.Contains(t, lines[6], "V86")
	assert.Equal(t, 3, strings.Count(lines[6], "NaN"))
}

func TestRenderCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, FormatCSV, sampleTables()))

	expected := strings.Join([]string{
		"race,game_type,fav_name,second_fav_name,third_fav_name,fav_odds,second_fav_odds,third_fav_odds,fav_placement,fav_won",
		"0,V75,Mellby Jinx,Hail Mary,Don Fanucci Zet,100,250,310,1,1",
		"1,V75,Hohneck,Propulsion,Click Bait,180,220,,,",
		"",
		"game_type,% fav wins,median fav finish,mean fav finish",
		"V75,100,1,1",
		"V86,,,",
		"",
	}, "\n")
	assert.Equal(t, expected, buf.String())
}

func TestRenderJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, FormatJSON, sampleTables()))

	var decoded map[string][]map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))

	require.Len(t, decoded["races"], 2)
	assert.Nil(t, decoded["races"][1]["fav_won"])
	assert.Equal(t, 1.0, decoded["races"][0]["fav_won"])

	require.Len(t, decoded["statistics"], 2)
	v86 := decoded["statistics"][1]
	assert.Equal(t, "V86", v86["game_type"])
	assert.Contains(t, v86, "% fav wins")
	assert.Nil(t, v86["% fav wins"])
	assert.Nil(t, v86["median fav finish"])
}

func TestRenderUnsupportedFormat(t *testing.T) {
	err := Render(&bytes.Buffer{}, "html", sampleTables())
	assert.Error(t, err)
}

func TestRenderDeterministic(t *testing.T) {
	for _, format := range []string{FormatTable, FormatCSV, FormatJSON} {
		t.Run(format, func(t *testing.T) {
			var a, b bytes.Buffer
			require.NoError(t, Render(&a, format, sampleTables()))
			require.NoError(t, Render(&b, format, sampleTables()))
			assert.Equal(t, a.Bytes(), b.Bytes())
		})
	}
}

func TestExportFiles(t *testing.T) {
	tests := []struct {
		format string
		files  []string
	}{
		{FormatCSV, []string{"races.csv", "statistics.csv"}},
		{FormatTable, []string{"races.txt", "statistics.txt"}},
		{FormatJSON, []string{"report.json"}},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			dir := filepath.Join(t.TempDir(), "out")

			paths, err := ExportFiles(dir, tt.format, sampleTables())
			require.NoError(t, err)
			require.Len(t, paths, len(tt.files))

			for i, name := range tt.files {
				assert.Equal(t, filepath.Join(dir, name), paths[i])
				info, err := os.Stat(paths[i])
				require.NoError(t, err)
				assert.Greater(t, info.Size(), int64(0))
			}
		})
	}
}
