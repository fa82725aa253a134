package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/muesli/termenv"
	"go.trai.ch/chroma/internal/core/domain"
	"go.trai.ch/chroma/internal/core/ports"
	"go.trai.ch/chroma/internal/ui/style"
	"go.trai.ch/zerr"
)

const null = "-"

// TextRenderer writes views as bordered tables.
type TextRenderer struct {
	profile func(io.Writer) termenv.Profile
}

var _ ports.Renderer = (*TextRenderer)(nil)

// NewTextRenderer creates a TextRenderer. profile picks the color profile for
// each destination.
func NewTextRenderer(profile func(io.Writer) termenv.Profile) *TextRenderer {
	return &TextRenderer{profile: profile}
}

// styles are bound to one destination's renderer.
type styles struct {
	renderer  *lipgloss.Renderer
	title     lipgloss.Style
	header    lipgloss.Style
	cell      lipgloss.Style
	highlight lipgloss.Style
	border    lipgloss.Style
	muted     lipgloss.Style
}

func (t *TextRenderer) styles(w io.Writer) styles {
	r := lipgloss.NewRenderer(w)
	r.SetColorProfile(t.profile(w))
	return styles{
		renderer:  r,
		title:     r.NewStyle().Bold(true).Foreground(style.Iris),
		header:    r.NewStyle().Bold(true).Foreground(style.Iris).Padding(0, 1),
		cell:      r.NewStyle().Padding(0, 1),
		highlight: r.NewStyle().Padding(0, 1).Foreground(style.Green),
		border:    r.NewStyle().Foreground(style.Slate),
		muted:     r.NewStyle().Foreground(style.Slate),
	}
}

// grid is a rendered table before styling. marked rows are highlighted.
type grid struct {
	title   string
	headers []string
	rows    [][]string
	marked  []bool
}

func (st styles) render(g grid) string {
	tbl := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(st.border).
		Headers(g.headers...).
		Rows(g.rows...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return st.header
			case row >= 0 && row < len(g.marked) && g.marked[row]:
				return st.highlight
			default:
				return st.cell
			}
		})
	return st.title.Render(g.title) + "\n" + tbl.String() + "\n"
}

func write(w io.Writer, parts ...string) error {
	if _, err := io.WriteString(w, strings.Join(parts, "\n")); err != nil {
		return zerr.Wrap(domain.ErrRenderFailed, err.Error())
	}
	return nil
}

// RenderTable writes the grouped view matching the settings, or the flat ion
// view when the table was exploded.
func (t *TextRenderer) RenderTable(w io.Writer, tbl domain.DerivedTable, s domain.Settings) error {
	st := t.styles(w)
	f := formatter{display: s.Display}

	var g grid
	switch {
	case s.Explode:
		g = explodedGrid(tbl, s.Sort, f)
	case s.Sort == domain.SortMassToCharge:
		g = chromatogramGrid(tbl, f)
	default:
		g = spectrumGrid(tbl, f)
	}

	footer := st.muted.Render(fmt.Sprintf("%d groups, %d selected, table %016x", tbl.Len(), countSelected(tbl), tbl.Hash()))
	return write(w, st.render(g), footer+"\n")
}

func countSelected(tbl domain.DerivedTable) int {
	var n int
	for _, row := range tbl.All() {
		if row.Filter {
			n++
		}
	}
	return n
}

func spectrumGrid(tbl domain.DerivedTable, f formatter) grid {
	g := grid{
		title: "Mass spectra by retention time",
		headers: []string{
			"RT (" + f.display.RetentionTimeUnits.String() + ")", "Ions", "m/z min", "m/z max",
			"Signal min", "Signal max", "Signal sum", "Rolling mean", "Rolling std", "Selected",
		},
	}
	for _, row := range tbl.All() {
		g.rows = append(g.rows, append([]string{
			f.minutes(row.Key),
			strconv.Itoa(len(row.MassSpectrum)),
		}, f.summaryCells(row, f.massToCharge)...))
		g.marked = append(g.marked, row.Filter)
	}
	return g
}

func chromatogramGrid(tbl domain.DerivedTable, f formatter) grid {
	units := f.display.RetentionTimeUnits.String()
	g := grid{
		title: "Extracted ion chromatograms by m/z",
		headers: []string{
			"m/z", "Samples", "RT min (" + units + ")", "RT max (" + units + ")",
			"Signal min", "Signal max", "Signal sum", "Rolling mean", "Rolling std", "Selected",
		},
	}
	for _, row := range tbl.All() {
		g.rows = append(g.rows, append([]string{
			f.massToCharge(row.Key),
			strconv.Itoa(len(row.Chromatogram)),
		}, f.summaryCells(row, f.milliseconds)...))
		g.marked = append(g.marked, row.Filter)
	}
	return g
}

func explodedGrid(tbl domain.DerivedTable, sort domain.Sort, f formatter) grid {
	g := grid{
		title:   "Ions",
		headers: []string{"RT (" + f.display.RetentionTimeUnits.String() + ")", "m/z", "Signal"},
	}
	for _, row := range tbl.All() {
		if sort == domain.SortMassToCharge {
			for _, p := range row.Chromatogram {
				g.rows = append(g.rows, []string{
					f.milliseconds(domain.Some(p.RetentionTime)), f.massToCharge(row.Key), f.signal(p.Signal),
				})
			}
			continue
		}
		for _, p := range row.MassSpectrum {
			mz := domain.Optional[float64]{Value: float64(p.MassToCharge.Value), Valid: p.MassToCharge.Valid}
			g.rows = append(g.rows, []string{f.minutes(row.Key), f.massToCharge(mz), f.signal(p.Signal)})
		}
	}
	return g
}

// RenderPlot writes the mass spectra, the bar legend, the signal statistics
// and the rolling mean series.
func (t *TextRenderer) RenderPlot(w io.Writer, plot domain.PlotValue, s domain.Settings) error {
	st := t.styles(w)
	f := formatter{display: s.Display}
	units := s.Display.RetentionTimeUnits.String()

	spectra := grid{
		title:   "Mass spectra",
		headers: []string{"RT (" + units + ")", "Ions", "Base peak m/z", "Base peak signal", "Total signal"},
	}
	for _, ms := range plot.MassSpectra {
		base, total := basePeak(ms.Points)
		row := []string{f.minutes(domain.Some(ms.RetentionTime)), strconv.Itoa(len(ms.Points)), null, null, f.signal(domain.Some(total))}
		if base.Valid {
			row[2] = f.massToCharge(domain.Some(base.Value.X))
			row[3] = f.signal(domain.Some(base.Value.Y))
		}
		spectra.rows = append(spectra.rows, row)
	}
	parts := []string{st.render(spectra)}

	if s.Plot.Legend {
		legend := grid{
			title:   "Bars",
			headers: []string{"m/z", "Bars", "Max height", "Top"},
		}
		for _, group := range plot.Bars {
			var height, top float64
			for _, bar := range group.Bars {
				height = max(height, bar.Height)
				top = max(top, bar.Base+bar.Height)
			}
			legend.rows = append(legend.rows, []string{
				group.Bars[0].Name, strconv.Itoa(len(group.Bars)), f.signal(domain.Some(height)), f.signal(domain.Some(top)),
			})
		}
		parts = append(parts, st.render(legend))
	}

	if plot.Mean.Valid || plot.Median.Valid {
		parts = append(parts, st.muted.Render(fmt.Sprintf("mean %s, median %s", f.signal(plot.Mean), f.signal(plot.Median)))+"\n")
	}

	if len(plot.RollingMean) > 0 {
		rolling := grid{
			title:   "Rolling mean",
			headers: []string{"RT (" + units + ")", "Signal"},
		}
		for _, p := range plot.RollingMean {
			rolling.rows = append(rolling.rows, []string{f.minutes(domain.Some(p.X)), f.signal(domain.Some(p.Y))})
		}
		parts = append(parts, st.render(rolling))
	}

	return write(w, parts...)
}

func basePeak(points []domain.Point) (domain.Optional[domain.Point], float64) {
	var (
		base  domain.Optional[domain.Point]
		total float64
	)
	for _, p := range points {
		total += p.Y
		if !base.Valid || p.Y > base.Value.Y {
			base = domain.Some(p)
		}
	}
	return base, total
}
