package render

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

// Theme holds the colors of the text view.
type Theme struct {
	Title   lipgloss.Color
	Success lipgloss.Color
	Warning lipgloss.Color
	Border  lipgloss.Color
	Hint    lipgloss.Color
}

// DefaultTheme is used by WriteReport and WriteComparison.
var DefaultTheme = Theme{
	Title:   lipgloss.Color("#5FAFD7"), // light blue
	Success: lipgloss.Color("#00D787"), // green
	Warning: lipgloss.Color("#FFAF00"), // amber
	Border:  lipgloss.Color("#6C6C6C"), // dim gray
	Hint:    lipgloss.Color("#6C6C6C"),
}

func (t Theme) titleStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.Title).Bold(true)
}

func (t Theme) costStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.Success).Bold(true)
}

func (t Theme) warningStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.Warning).Bold(true)
}

func (t Theme) hintStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.Hint).Italic(true)
}

func (t Theme) table(headers ...string) *table.Table {
	header := lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cell := lipgloss.NewStyle().Padding(0, 1)
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(t.Border)).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return header
			}
			return cell
		}).
		Headers(headers...)
}

// Report renders one run: layout table, cost line, trace and (when attached)
// the input matrices.
func (t Theme) Report(r Report) string {
	var sb strings.Builder

	sb.WriteString(t.titleStyle().Render(fmt.Sprintf("%s · n=%d", algorithmTitle(r.Algorithm), r.N)))
	sb.WriteByte('\n')

	if r.Flow != nil {
		sb.WriteString(lipgloss.JoinHorizontal(lipgloss.Top,
			t.matrixTable("FLOW", r.Flow), "  ", t.matrixTable("DISTANCE", r.Distance)))
		sb.WriteByte('\n')
	}

	if len(r.Layout) > 0 {
		rows := make([][]string, len(r.Layout))
		for dept, loc := range r.Layout {
			rows[dept] = []string{strconv.Itoa(dept + 1), "→", strconv.Itoa(loc + 1)}
		}
		sb.WriteString(t.table("Department", "", "Location").Rows(rows...).Render())
		sb.WriteByte('\n')
	}

	label := "Minimum cost"
	if r.Algorithm == "pairwise" {
		label = "Local optimum cost"
	}
	sb.WriteString(fmt.Sprintf("%s: %s\n", label, t.costStyle().Render(formatFloat(r.Cost))))
	if !r.Complete {
		msg := "best effort: the search was stopped before it finished"
		if r.Warning != "" {
			msg += " (" + r.Warning + ")"
		}
		sb.WriteString(t.warningStyle().Render(msg))
		sb.WriteByte('\n')
	}
	sb.WriteString(t.hintStyle().Render(fmt.Sprintf("%d evaluations in %.3f ms", r.Evaluations, r.ElapsedMS)))
	sb.WriteByte('\n')

	if len(r.Trace) > 0 {
		sb.WriteString(t.traceTable(r.Trace))
		sb.WriteByte('\n')
	}

	return sb.String()
}

// Comparison renders both runs and the gap between them.
func (t Theme) Comparison(c Comparison) string {
	var sb strings.Builder
	if c.Exact != nil {
		sb.WriteString(t.Report(*c.Exact))
		sb.WriteByte('\n')
	}
	sb.WriteString(t.Report(c.Heuristic))
	sb.WriteByte('\n')

	if c.Gap != nil {
		gap := fmt.Sprintf("Gap: %s (%.2f%%)", formatFloat(*c.Gap), 100*derefOr(c.RelativeGap))
		switch {
		case c.Warning != "":
			sb.WriteString(t.warningStyle().Render(gap + " · provisional"))
		case *c.Gap == 0:
			sb.WriteString(t.costStyle().Render(gap + " · pairwise exchange found the optimum"))
		default:
			sb.WriteString(t.warningStyle().Render(gap))
		}
		sb.WriteByte('\n')
	}
	if c.Warning != "" {
		sb.WriteString(t.warningStyle().Render("comparison incomplete: " + c.Warning))
		sb.WriteByte('\n')
	}

	return sb.String()
}

func derefOr(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}

func (t Theme) traceTable(trace []Step) string {
	rows := make([][]string, len(trace))
	for i, s := range trace {
		swap := "-"
		if len(s.Swap) == 2 {
			swap = fmt.Sprintf("%d ↔ %d", s.Swap[0]+1, s.Swap[1]+1)
		}
		rows[i] = []string{strconv.Itoa(s.Iteration), oneBased(s.Layout), swap, formatFloat(s.Cost)}
	}
	return t.table("Round", "Layout", "Swap", "Cost").Rows(rows...).Render()
}

func (t Theme) matrixTable(title string, m [][]float64) string {
	headers := make([]string, len(m)+1)
	headers[0] = title
	rows := make([][]string, len(m))
	for i, row := range m {
		headers[i+1] = strconv.Itoa(i + 1)
		rows[i] = make([]string, len(row)+1)
		rows[i][0] = strconv.Itoa(i + 1)
		for j, v := range row {
			if i == j {
				rows[i][j+1] = "-"
				continue
			}
			rows[i][j+1] = formatFloat(v)
		}
	}
	return t.table(headers...).Rows(rows...).Render()
}

func algorithmTitle(name string) string {
	switch name {
	case "exhaustive":
		return "Exhaustive search"
	case "pairwise":
		return "Pairwise exchange"
	default:
		return name
	}
}

// oneBased prints a 0-based layout with 1-based locations.
func oneBased(layout []int) string {
	parts := make([]string, len(layout))
	for i, loc := range layout {
		parts[i] = strconv.Itoa(loc + 1)
	}
	return strings.Join(parts, " ")
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
