package cli

import (
	"context"
	"fmt"
	"math"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/thrackle/pkg/geom"
	"github.com/matzehuels/thrackle/pkg/thrackle"
	"github.com/matzehuels/thrackle/pkg/thrackle/synth"
)

var (
	plotEdgeStyle    = lipgloss.NewStyle().Foreground(colorGray)
	plotVertexStyle  = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	plotLegalStyle   = lipgloss.NewStyle().Foreground(colorGreen)
	plotIllegalStyle = lipgloss.NewStyle().Foreground(colorRed)
	helpStyle        = lipgloss.NewStyle().Foreground(colorDim)
)

const (
	minPlotWidth  = 20
	minPlotHeight = 8
)

// drawFunc produces the drawing for a request.
type drawFunc func(context.Context, synth.Request) (*thrackle.Graph, error)

// saveFunc stores a drawing and returns a reference to it.
type saveFunc func(context.Context, *thrackle.Graph, string) (string, error)

type drawnMsg struct {
	req synth.Request
	g   *thrackle.Graph
	err error
}

type savedMsg struct {
	ref string
	err error
}

// ViewModel is the bubbletea model of the view command. It redraws the
// current request whenever n, k or the variant change.
type ViewModel struct {
	ctx  context.Context
	draw drawFunc
	save saveFunc

	Req    synth.Request
	Graph  *thrackle.Graph
	Err    error
	Status string

	Width, Height int
}

func newViewModel(ctx context.Context, req synth.Request, draw drawFunc, save saveFunc) ViewModel {
	return ViewModel{ctx: ctx, draw: draw, save: save, Req: req, Width: 72, Height: 20}
}

func (m ViewModel) redraw() tea.Cmd {
	req := m.Req
	return func() tea.Msg {
		g, err := m.draw(m.ctx, req)
		return drawnMsg{req: req, g: g, err: err}
	}
}

func (m ViewModel) Init() tea.Cmd {
	return m.redraw()
}

func (m ViewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.Width = max(msg.Width-4, minPlotWidth)
		m.Height = max(msg.Height-8, minPlotHeight)
	case drawnMsg:
		if msg.req != m.Req {
			return m, nil
		}
		m.Err = msg.err
		if msg.err == nil {
			m.Graph = msg.g
		}
	case savedMsg:
		if msg.err != nil {
			m.Status = StyleError.Render("save failed: " + msg.err.Error())
		} else {
			m.Status = StyleSuccess.Render("saved " + msg.ref)
		}
	}
	return m, nil
}

func (m ViewModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	prev := m.Req
	switch msg.String() {
	case "q", "ctrl+c", "esc":
		return m, tea.Quit
	case "left", "h":
		if m.Req.K > 0 {
			m.Req.K--
		}
	case "right", "l":
		m.Req.K++
	case "up", "+":
		m.Req.N++
	case "down", "-":
		if m.Req.N > minVertices(m.Req.Shape) {
			m.Req.N--
		}
	case "v":
		m.Req.Variant = nextVariant(m.Req.Shape, m.Req.Variant)
	case "s":
		if m.Graph == nil || m.save == nil {
			return m, nil
		}
		g, label := m.Graph, describe(m.Req)
		return m, func() tea.Msg {
			ref, err := m.save(m.ctx, g, label)
			return savedMsg{ref: ref, err: err}
		}
	}
	if m.Req == prev {
		return m, nil
	}
	m.Status = ""
	return m, m.redraw()
}

func minVertices(shape string) int {
	if shape == synth.ShapeCycle {
		return 3
	}
	return 2
}

func nextVariant(shape, current string) string {
	vs := synth.Variants[shape]
	for i, v := range vs {
		if v == current {
			return vs[(i+1)%len(vs)]
		}
	}
	if len(vs) > 1 {
		return vs[1]
	}
	return current
}

func describe(r synth.Request) string {
	variant := r.Variant
	if variant == "" {
		variant = synth.Variants[r.Shape][0]
	}
	return fmt.Sprintf("%s %d · %s · k=%d", r.Shape, r.N, variant, r.K)
}

func (m ViewModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render(describe(m.Req)))
	b.WriteString("\n")
	switch {
	case m.Err != nil:
		b.WriteString(StyleError.Render(m.Err.Error()))
	case m.Graph != nil:
		b.WriteString(StyleDim.Render(fmt.Sprintf("%d of %d crossings · curve complexity %d",
			len(m.Graph.Crossings()), m.Graph.ThrackleNumber(), m.Graph.CurveComplexity())))
	default:
		b.WriteString(StyleDim.Render("drawing…"))
	}
	b.WriteString("\n\n")

	if m.Graph != nil {
		b.WriteString(plot(m.Graph, m.Width, m.Height))
		b.WriteString("\n")
	}
	if m.Status != "" {
		b.WriteString(m.Status + "\n")
	}
	b.WriteString(helpStyle.Render("←/→ k  ↑/↓ n  v variant  s save  q quit"))
	return b.String()
}

type cell struct {
	r     rune
	style lipgloss.Style
}

// plot rasterizes g into a w×h character grid: edges as dots, vertices as
// circles and crossings as crosses.
func plot(g *thrackle.Graph, w, h int) string {
	var pts []geom.Point
	for _, v := range g.Vertices() {
		pts = append(pts, v.Pos())
	}
	for _, b := range g.Bends() {
		pts = append(pts, b.Pos())
	}
	if len(pts) == 0 {
		return ""
	}
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, p := range pts {
		minX, maxX = math.Min(minX, p.X), math.Max(maxX, p.X)
		minY, maxY = math.Min(minY, p.Y), math.Max(maxY, p.Y)
	}
	spanX, spanY := math.Max(maxX-minX, 1), math.Max(maxY-minY, 1)
	project := func(p geom.Point) (int, int) {
		col := int(math.Round((p.X - minX) / spanX * float64(w-1)))
		row := int(math.Round((p.Y - minY) / spanY * float64(h-1)))
		return col, row
	}

	grid := make([][]cell, h)
	for i := range grid {
		grid[i] = make([]cell, w)
	}
	set := func(col, row int, r rune, s lipgloss.Style) {
		if row >= 0 && row < h && col >= 0 && col < w {
			grid[row][col] = cell{r, s}
		}
	}

	for _, e := range g.Edges() {
		for _, s := range e.SubEdges() {
			c0, r0 := project(s.Segment.Start)
			c1, r1 := project(s.Segment.End)
			steps := max(abs(c1-c0), abs(r1-r0), 1)
			for i := 0; i <= steps; i++ {
				t := float64(i) / float64(steps)
				set(int(math.Round(float64(c0)+t*float64(c1-c0))), int(math.Round(float64(r0)+t*float64(r1-r0))), '·', plotEdgeStyle)
			}
		}
	}
	for _, c := range g.Crossings() {
		col, row := project(c.At)
		style := plotLegalStyle
		if !c.Legal {
			style = plotIllegalStyle
		}
		set(col, row, '×', style)
	}
	for _, v := range g.Vertices() {
		col, row := project(v.Pos())
		set(col, row, '●', plotVertexStyle)
	}

	var b strings.Builder
	for i, line := range grid {
		if i > 0 {
			b.WriteByte('\n')
		}
		for _, c := range line {
			if c.r == 0 {
				b.WriteByte(' ')
				continue
			}
			b.WriteString(c.style.Render(string(c.r)))
		}
	}
	return b.String()
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
