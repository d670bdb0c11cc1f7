package cli

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/vastr/panchanga/internal/domain/elements"
	"github.com/vastr/panchanga/internal/domain/panchanga"
)

var (
	colorCyan   = lipgloss.Color("36")
	colorGreen  = lipgloss.Color("35")
	colorRed    = lipgloss.Color("167")
	colorGray   = lipgloss.Color("245")
	colorDim    = lipgloss.Color("240")
	styleTitle  = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	styleDim    = lipgloss.NewStyle().Foreground(colorDim)
	styleHeader = lipgloss.NewStyle().Foreground(colorGray).Bold(true)
)

// favorabilityColumn is the table column styled by favorability.
const favorabilityColumn = 3

func renderResponse(w io.Writer, resp panchanga.Response) {
	fprintln(w, styleTitle.Render(fmt.Sprintf("Panchanga at %s (%s)", resp.Datetime, resp.Timezone)))
	fprintln(w, styleDim.Render(fmt.Sprintf("lat %.4f  lon %.4f  elev %.0fm  sunrise %s  sunset %s",
		resp.Location.Latitude, resp.Location.Longitude, resp.Location.Elevation,
		clock(resp.Times.Sunrise), clock(resp.Times.Sunset))))

	rows := [][]string{
		{"Vara", itoa(resp.Vara.Number), resp.Vara.Name + " (" + resp.Vara.Sanskrit + ")", string(resp.Vara.Favorability), resp.Times.Sunrise, resp.Times.NextSunrise},
		{"Tithi", itoa(resp.Tithi.Number), resp.Tithi.Name + " " + string(resp.Tithi.Paksha), string(resp.Tithi.Favorability), resp.Tithi.Start, resp.Tithi.End},
		{"Nakshatra", itoa(resp.Nakshatra.Number), resp.Nakshatra.Name, string(resp.Nakshatra.Favorability), resp.Nakshatra.Start, resp.Nakshatra.End},
		{"Yoga", itoa(resp.Yoga.Number), resp.Yoga.Name, string(resp.Yoga.Favorability), resp.Yoga.Start, resp.Yoga.End},
		{"Karana", itoa(resp.Karana.Number), resp.Karana.Name, string(resp.Karana.Favorability), resp.Karana.Start, resp.Karana.End},
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Limb", "#", "Name", "Quality", "Start", "End").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			base := lipgloss.NewStyle().Padding(0, 1)
			if row == table.HeaderRow {
				return styleHeader.Padding(0, 1)
			}
			if col == favorabilityColumn && row >= 0 && row < len(rows) {
				return base.Foreground(favorabilityColor(elements.Favorability(rows[row][col])))
			}
			return base
		})
	fprintln(w, t.String())
}

func renderHistory(w io.Writer, entries []panchanga.HistoryEntry) {
	if len(entries) == 0 {
		fprintln(w, styleDim.Render("no computations recorded"))
		return
	}
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Instant", "Place", "Vara", "Tithi", "Nakshatra", "Yoga", "Karana").
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return styleHeader.Padding(0, 1)
			}
			return lipgloss.NewStyle().Padding(0, 1)
		})
	for _, e := range entries {
		t.Row(
			e.Instant.UTC().Format(time.RFC3339),
			fmt.Sprintf("%.4f,%.4f", e.Latitude, e.Longitude),
			e.Vara, e.Tithi, e.Nakshatra, e.Yoga, e.Karana,
		)
	}
	fprintln(w, t.String())
}

func favorabilityColor(f elements.Favorability) lipgloss.Color {
	switch f {
	case elements.Favorable:
		return colorGreen
	case elements.Unfavorable:
		return colorRed
	default:
		return colorGray
	}
}

// clock trims an RFC3339 timestamp to its local wall clock.
func clock(ts string) string {
	t, err := time.Parse(time.RFC3339, ts)
	if err != nil {
		return ts
	}
	return t.Format("15:04")
}
