package cli

import (
	"context"
	"fmt"
	"image"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/mehinger01/garage-layout-planner/pkg/camera"
	"github.com/mehinger01/garage-layout-planner/pkg/layout"
	"github.com/mehinger01/garage-layout-planner/pkg/observability"
	"github.com/mehinger01/garage-layout-planner/pkg/pick"
	"github.com/mehinger01/garage-layout-planner/pkg/render"
	"github.com/mehinger01/garage-layout-planner/pkg/scene"
)

const (
	sidebarWidth = 30
	chromeRows   = 2 // header + footer

	// Terminal cells are coarser than the web canvas the orbit constants
	// assume, so cell deltas get amplified before they reach the camera.
	dragScaleX = 4.0
	dragScaleY = 8.0
	wheelStep  = 60.0

	frameInterval = time.Second / 30
)

// viewCommand creates the interactive terminal viewer.
func (c *CLI) viewCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "view <plan>",
		Short: "Explore a layout plan interactively",
		Long: `View opens a terminal viewer of the composed scene. Drag to orbit,
scroll to zoom, click a zone to select it. Number keys toggle zone
categories; c/t/f/s jump to the corner, top, front, and side presets.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			plan, err := c.loadPlan(args[0])
			if err != nil {
				return err
			}
			return runViewer(cmd.Context(), plan)
		},
	}
}

func runViewer(ctx context.Context, plan *layout.Plan) error {
	m := newViewerModel(ctx, plan)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())

	loopCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	loop := render.NewLoop(frameInterval, func() {
		p.Send(frameTickMsg{})
	})
	go func() { _ = loop.Run(loopCtx) }()

	_, err := p.Run()
	return err
}

// frameTickMsg asks the model to redraw if its state changed.
type frameTickMsg struct{}

// viewerModel is the bubbletea model for the interactive viewer.
type viewerModel struct {
	ctx    context.Context
	plan   *layout.Plan
	sc     *scene.Scene
	cam    *camera.Orbit
	picker *pick.Picker
	rend   *render.Renderer

	termWidth  int
	termHeight int
	canvasW    int // pixels, one per cell column
	canvasH    int // pixels, two per cell row

	view  camera.View
	frame string
	dirty bool

	dragging bool
	moved    bool
	lastX    int
	lastY    int
}

func newViewerModel(ctx context.Context, plan *layout.Plan) *viewerModel {
	return &viewerModel{
		ctx:    ctx,
		plan:   plan,
		sc:     composeScene(ctx, plan),
		cam:    camera.New(plan.Envelope),
		picker: pick.New(1, 1),
		view:   camera.ViewCorner,
		dirty:  true,
	}
}

func (m *viewerModel) Init() tea.Cmd {
	return nil
}

func (m *viewerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)

	case frameTickMsg:
		if m.dirty && m.rend != nil {
			m.frame = m.renderFrame()
			m.dirty = false
		}

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		m.handleMouse(msg)
	}
	return m, nil
}

func (m *viewerModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c", "esc":
		return m, tea.Quit
	case "c":
		m.setView(camera.ViewCorner)
	case "t":
		m.setView(camera.ViewTop)
	case "f":
		m.setView(camera.ViewFront)
	case "s":
		m.setView(camera.ViewSide)
	case "x":
		m.picker.Clear()
		m.dirty = true
	case "1", "2", "3", "4", "5":
		idx := int(msg.String()[0] - '1')
		if idx < len(layout.Types) {
			m.sc.Toggle(layout.Types[idx])
			m.dirty = true
		}
	}
	return m, nil
}

func (m *viewerModel) setView(v camera.View) {
	if err := m.cam.SetView(v); err == nil {
		m.view = v
		m.dirty = true
	}
}

func (m *viewerModel) handleMouse(msg tea.MouseMsg) {
	// Wheel events arrive as presses of the wheel buttons.
	switch msg.Button {
	case tea.MouseButtonWheelUp:
		m.cam.Zoom(-wheelStep)
		m.dirty = true
		return
	case tea.MouseButtonWheelDown:
		m.cam.Zoom(wheelStep)
		m.dirty = true
		return
	}

	// The canvas starts below the header row.
	cy := msg.Y - 1
	if msg.X >= m.canvasW || cy < 0 || cy >= m.canvasH {
		if msg.Action == tea.MouseActionRelease {
			m.dragging = false
		}
		return
	}

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button == tea.MouseButtonLeft {
			m.dragging = true
			m.moved = false
			m.lastX, m.lastY = msg.X, cy
		}
	case tea.MouseActionMotion:
		if m.dragging {
			dx := float64(msg.X-m.lastX) * dragScaleX
			dy := float64(cy-m.lastY) * dragScaleY
			if dx != 0 || dy != 0 {
				m.cam.Rotate(dx, dy)
				m.moved = true
				m.dirty = true
			}
			m.lastX, m.lastY = msg.X, cy
		}
	case tea.MouseActionRelease:
		if m.dragging && !m.moved {
			z := m.picker.Click(m.sc, m.cam, float64(msg.X), float64(cy*2))
			name := ""
			if z != nil {
				name = z.Name
			}
			observability.Scene().OnPick(m.ctx, name, z != nil)
			m.dirty = true
		}
		m.dragging = false
	}
}

func (m *viewerModel) resize(width, height int) {
	m.termWidth = width
	m.termHeight = height

	w := width - sidebarWidth
	h := height - chromeRows
	if w < 1 || h < 1 {
		return
	}
	m.canvasW = w
	m.canvasH = h

	rend, err := render.New(w, h*2)
	if err != nil {
		return
	}
	m.rend = rend
	m.cam.SetViewport(w, h*2)
	m.picker.SetViewport(w, h*2)
	m.dirty = true
}

func (m *viewerModel) renderFrame() string {
	img := m.rend.Frame(m.sc, m.cam)
	return halfBlocks(img)
}

// halfBlocks folds an image into terminal rows using the upper half block,
// two pixel rows per cell with truecolor foreground and background.
func halfBlocks(img *image.RGBA) string {
	b := img.Bounds()
	var sb strings.Builder
	sb.Grow(b.Dx() * b.Dy() * 10)

	for y := b.Min.Y; y < b.Max.Y; y += 2 {
		prevTop, prevBot := "", ""
		for x := b.Min.X; x < b.Max.X; x++ {
			tr, tg, tb, _ := img.At(x, y).RGBA()
			br, bg, bb, _ := img.At(x, y+1).RGBA()
			top := fmt.Sprintf("%d;%d;%d", tr>>8, tg>>8, tb>>8)
			bot := fmt.Sprintf("%d;%d;%d", br>>8, bg>>8, bb>>8)
			if top != prevTop || bot != prevBot {
				sb.WriteString("\x1b[38;2;" + top + "m\x1b[48;2;" + bot + "m")
				prevTop, prevBot = top, bot
			}
			sb.WriteString("▀")
		}
		sb.WriteString("\x1b[0m\n")
	}
	return strings.TrimSuffix(sb.String(), "\n")
}

func (m *viewerModel) View() string {
	if m.rend == nil {
		return "loading..."
	}

	canvas := m.frame
	header := StyleTitle.Render(" garage3d ") +
		StyleDim.Render(fmt.Sprintf(" %s view · drag orbit · wheel zoom · click select", m.view))
	footer := StyleDim.Render(" c/t/f/s views · 1-5 toggle categories · x clear · q quit")

	body := lipgloss.JoinHorizontal(lipgloss.Top, canvas, m.sidebar())
	return header + "\n" + body + "\n" + footer
}

func (m *viewerModel) sidebar() string {
	var sb strings.Builder

	sb.WriteString(StyleTitle.Render("Zones"))
	sb.WriteString("\n\n")

	counts := m.plan.CountByType()
	for i, t := range layout.Types {
		n := counts[t]
		if n == 0 {
			continue
		}
		info := t.Info()
		mark := StyleSuccess.Render("●")
		if !m.sc.Visible(t) {
			mark = StyleDim.Render("○")
		}
		swatch := lipgloss.NewStyle().Foreground(zoneColor(info.Color)).Render("■")
		sb.WriteString(fmt.Sprintf("%s %s %s %s\n",
			StyleDim.Render(fmt.Sprintf("%d", i+1)), mark, swatch,
			StyleValue.Render(fmt.Sprintf("%s (%d)", info.Label, n))))
	}

	if z := m.picker.Selected(); z != nil {
		sb.WriteString("\n")
		sb.WriteString(StyleTitle.Render("Selected"))
		sb.WriteString("\n")
		sb.WriteString(StyleHighlight.Render(z.Name) + "\n")
		sb.WriteString(StyleDim.Render(string(z.Type)) + "\n")
		sb.WriteString(StyleDim.Render(fmt.Sprintf("at %.0f\",%.0f\"", z.X, z.Y)) + "\n")
		sb.WriteString(StyleDim.Render(fmt.Sprintf("%.0f × %.0f × %.0f in", z.Width, z.Depth, z.Height)) + "\n")
	}

	azimuth, polar, distance := m.cam.Angles()
	sb.WriteString("\n")
	sb.WriteString(StyleDim.Render(fmt.Sprintf("θ %.2f φ %.2f r %.1f", azimuth, polar, distance)))

	return lipgloss.NewStyle().
		Width(sidebarWidth - 2).
		Padding(0, 1).
		Render(sb.String())
}

// zoneColor converts a "0xrrggbb" zone color to a lipgloss color.
func zoneColor(hex string) lipgloss.Color {
	c := layout.ParseColor(hex)
	return lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B))
}
