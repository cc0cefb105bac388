package pdfdoc

import (
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/ledongthuc/pdf"
)

const (
	// defaultFontSize is used when a glyph carries no font size.
	defaultFontSize = 10.0

	// lineTolerance is the baseline distance, in points, within which
	// glyphs belong to the same line.
	lineTolerance = 2.0

	// cellGapEm is the horizontal gap, in ems, that starts a new cell.
	cellGapEm = 1.5

	// wordGapEm is the gap, in ems, rendered as a space inside a cell.
	wordGapEm = 0.15

	// glyphEm estimates the advance of a glyph whose font has no width
	// table, such as the standard 14 fonts.
	glyphEm = 0.5
)

// Line is one visual line of a page: the glyphs sharing a baseline.
type Line struct {
	Y      float64
	Glyphs []pdf.Text
}

// GroupLines buckets positioned glyphs into lines, top line first. Glyphs
// within lineTolerance of a line's first baseline join that line; content
// order is kept inside a line.
func GroupLines(glyphs []pdf.Text) []Line {
	if len(glyphs) == 0 {
		return nil
	}

	sorted := make([]pdf.Text, len(glyphs))
	copy(sorted, glyphs)
	// PDF user space grows upwards, so the top line has the largest Y.
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Y > sorted[j].Y })

	var lines []Line
	for _, g := range sorted {
		if n := len(lines); n > 0 && lines[n-1].Y-g.Y <= lineTolerance {
			lines[n-1].Glyphs = append(lines[n-1].Glyphs, g)
			continue
		}
		lines = append(lines, Line{Y: g.Y, Glyphs: []pdf.Text{g}})
	}
	return lines
}

// SplitCells joins the glyphs of one line into cells. Glyphs separated by
// more than cellGapEm become separate cells; smaller visible gaps become
// spaces.
func SplitCells(glyphs []pdf.Text) []string {
	if len(glyphs) == 0 {
		return nil
	}

	sorted := make([]pdf.Text, len(glyphs))
	copy(sorted, glyphs)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].X < sorted[j].X })

	var (
		cells   []string
		current strings.Builder
		prev    *pdf.Text
	)
	flush := func() {
		if cell := strings.Join(strings.Fields(current.String()), " "); cell != "" {
			cells = append(cells, cell)
		}
		current.Reset()
	}

	for i := range sorted {
		g := &sorted[i]
		if prev != nil {
			gap := g.X - (prev.X + advance(prev))
			em := emSize(prev, g)
			switch {
			case gap > cellGapEm*em:
				flush()
			case gap > wordGapEm*em:
				current.WriteByte(' ')
			}
		}
		current.WriteString(g.S)
		prev = g
	}
	flush()

	return cells
}

// LinesToGrids groups consecutive multi-cell lines into grids, top to
// bottom. A line with fewer than two cells ends the current grid. Every
// cell of a grid is present; blank cells never survive SplitCells.
func LinesToGrids(lines []Line) [][][]string {
	var (
		grids [][][]string
		grid  [][]string
	)
	for _, line := range lines {
		cells := SplitCells(line.Glyphs)
		if len(cells) < 2 {
			if len(grid) > 0 {
				grids = append(grids, grid)
				grid = nil
			}
			continue
		}
		grid = append(grid, cells)
	}
	if len(grid) > 0 {
		grids = append(grids, grid)
	}
	return grids
}

// LinesToText renders lines as newline separated text with cells joined by
// a single space.
func LinesToText(lines []Line) string {
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		cells := SplitCells(line.Glyphs)
		if len(cells) == 0 {
			continue
		}
		out = append(out, strings.Join(cells, " "))
	}
	return strings.Join(out, "\n")
}

// advance is the horizontal extent of g. Fonts without a width table leave
// W at zero and do not move the pen, so the width is estimated.
func advance(g *pdf.Text) float64 {
	if g.W > 0 {
		return g.W
	}
	size := g.FontSize
	if size <= 0 {
		size = defaultFontSize
	}
	return float64(utf8.RuneCountInString(g.S)) * glyphEm * size
}

func emSize(a, b *pdf.Text) float64 {
	size := a.FontSize
	if b.FontSize > size {
		size = b.FontSize
	}
	if size <= 0 {
		return defaultFontSize
	}
	return size
}
