package mapview

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	sessiondto "mapty/internal/modules/session/dto"
	"mapty/internal/platform/geo"
	"mapty/internal/ui/theme"
)

// One terminal cell covers cellW×cellH world pixels; cells are roughly
// twice as tall as they are wide.
const (
	cellW = 8.0
	cellH = 16.0
)

// ─── port ────────────────────────────────────────────────────────────────────

// Surface is the map state this view draws and forwards clicks to.
type Surface interface {
	Center() (lat, lng float64, ok bool)
	Zoom() int
	SetZoom(zoom int)
	Recenter(lat, lng float64)
	Pins() []sessiondto.PinOutput
	Click(lat, lng float64) bool
}

// ─── messages ────────────────────────────────────────────────────────────────

// ClickedMsg reports a click on the map. Delivered is false when nobody
// listens for clicks yet.
type ClickedMsg struct {
	Lat       float64
	Lng       float64
	Delivered bool
}

// ─── model ───────────────────────────────────────────────────────────────────

type Model struct {
	surface  Surface
	spinner  spinner.Model
	locating bool
	failed   bool
	cursorX  int
	cursorY  int
	originX  int
	originY  int
	width    int
	height   int
}

func New(surface Surface) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Lavender)
	return Model{surface: surface, spinner: sp, locating: true}
}

func (m Model) Init() tea.Cmd {
	return m.spinner.Tick
}

// SetLocated ends the locating spinner. A failed lookup leaves the map blank
// for the rest of the session.
func (m *Model) SetLocated(failed bool) {
	m.locating = false
	m.failed = failed
}

// SetOrigin records where the view's top-left cell sits on screen so mouse
// coordinates can be translated.
func (m *Model) SetOrigin(x, y int) {
	m.originX = x
	m.originY = y
}

func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.cursorX = width / 2
	m.cursorY = height / 2
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		if m.locating {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}

	case tea.MouseMsg:
		if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
			return m, nil
		}
		col, row := msg.X-m.originX, msg.Y-m.originY
		if col < 0 || row < 0 || col >= m.width || row >= m.height {
			return m, nil
		}
		m.cursorX, m.cursorY = col, row
		return m, m.click()

	case tea.KeyMsg:
		switch msg.String() {
		case "left", "h":
			m.cursorX = max(m.cursorX-1, 0)
		case "right", "l":
			m.cursorX = min(m.cursorX+1, m.width-1)
		case "up", "k":
			m.cursorY = max(m.cursorY-1, 0)
		case "down", "j":
			m.cursorY = min(m.cursorY+1, m.height-1)
		case "H":
			m.pan(-m.width/4, 0)
		case "L":
			m.pan(m.width/4, 0)
		case "K":
			m.pan(0, -m.height/4)
		case "J":
			m.pan(0, m.height/4)
		case "+", "=":
			m.surface.SetZoom(m.surface.Zoom() + 1)
		case "-":
			m.surface.SetZoom(m.surface.Zoom() - 1)
		case "enter", " ":
			return m, m.click()
		}
	}
	return m, nil
}

func (m Model) View() string {
	if m.width <= 0 || m.height <= 0 {
		return ""
	}
	lat, lng, ok := m.surface.Center()
	switch {
	case m.failed:
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
			theme.Alert.Render("Could not access your location."))
	case m.locating || !ok:
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
			m.spinner.View()+" Locating…")
	}

	zoom := m.surface.Zoom()
	cx, cy := geo.Project(lat, lng, zoom)
	grid := m.graticule(cx, cy)
	cursor := "+"
	for _, pin := range m.surface.Pins() {
		px, py := geo.Project(pin.Lat, pin.Lng, zoom)
		col, row := m.cellAt(px-cx, py-cy)
		if col < 0 || row < 0 || col >= m.width || row >= m.height {
			continue
		}
		grid[row][col] = theme.Kind(pin.Kind).Render(pinGlyph(pin.Kind))
		if col == m.cursorX && row == m.cursorY {
			cursor = pinGlyph(pin.Kind)
		}
	}
	if m.cursorY >= 0 && m.cursorY < len(grid) && m.cursorX >= 0 && m.cursorX < len(grid[m.cursorY]) {
		grid[m.cursorY][m.cursorX] = theme.Cursor.Reverse(cursor != "+").Render(cursor)
	}

	rows := make([]string, len(grid))
	for i, row := range grid {
		rows[i] = strings.Join(row, "")
	}
	return strings.Join(rows, "\n")
}

// Cursor returns the coordinates under the cursor.
func (m Model) Cursor() (lat, lng float64, ok bool) {
	return m.coordsAt(m.cursorX, m.cursorY)
}

// CursorLabel is the cursor position formatted for the status bar.
func (m Model) CursorLabel() string {
	lat, lng, ok := m.Cursor()
	if !ok {
		return ""
	}
	return fmt.Sprintf("%.5f, %.5f  z%d", lat, lng, m.surface.Zoom())
}

// ─── private ─────────────────────────────────────────────────────────────────

func (m Model) click() tea.Cmd {
	lat, lng, ok := m.Cursor()
	if !ok {
		return nil
	}
	delivered := m.surface.Click(lat, lng)
	return func() tea.Msg { return ClickedMsg{Lat: lat, Lng: lng, Delivered: delivered} }
}

func (m Model) coordsAt(col, row int) (float64, float64, bool) {
	lat, lng, ok := m.surface.Center()
	if !ok || m.failed {
		return 0, 0, false
	}
	zoom := m.surface.Zoom()
	cx, cy := geo.Project(lat, lng, zoom)
	x := cx + (float64(col-m.width/2)+0.5)*cellW
	y := cy + (float64(row-m.height/2)+0.5)*cellH
	size := geo.WorldSize(zoom)
	x = math.Mod(math.Mod(x, size)+size, size)
	plat, plng := geo.Unproject(x, y, zoom)
	return plat, plng, true
}

func (m Model) cellAt(dx, dy float64) (int, int) {
	return m.width/2 + int(math.Floor(dx/cellW)), m.height/2 + int(math.Floor(dy/cellH))
}

func (m *Model) pan(cols, rows int) {
	lat, lng, ok := m.coordsAt(m.width/2+cols, m.height/2+rows)
	if ok {
		m.surface.Recenter(lat, lng)
	}
}

// graticule marks tile corners and edges so panning and zooming read.
func (m Model) graticule(cx, cy float64) [][]string {
	dot := theme.Graticule.Render("·")
	line := theme.Graticule.Render("┼")
	grid := make([][]string, m.height)
	for row := range grid {
		grid[row] = make([]string, m.width)
		y0 := cy + float64(row-m.height/2)*cellH
		rowEdge := crossesTile(y0, cellH)
		for col := range grid[row] {
			x0 := cx + float64(col-m.width/2)*cellW
			switch {
			case rowEdge && crossesTile(x0, cellW):
				grid[row][col] = line
			case (row+col)%4 == 0:
				grid[row][col] = dot
			default:
				grid[row][col] = " "
			}
		}
	}
	return grid
}

func crossesTile(start, span float64) bool {
	return math.Floor(start/geo.TileSize) != math.Floor((start+span)/geo.TileSize)
}

func pinGlyph(kind string) string {
	switch kind {
	case "running":
		return "R"
	case "cycling":
		return "C"
	case "position":
		return "◉"
	default:
		return "*"
	}
}
