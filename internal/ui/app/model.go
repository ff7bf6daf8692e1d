package app

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	sessiondto "mapty/internal/modules/session/dto"
	workoutdto "mapty/internal/modules/workout/dto"
	"mapty/internal/ui/components"
	"mapty/internal/ui/theme"
	"mapty/internal/ui/views/mapview"
	"mapty/internal/ui/views/workouts"
)

// ─── ports ───────────────────────────────────────────────────────────────────

type sessionPort interface {
	Start(ctx context.Context) (sessiondto.Lookup, error)
	Resolve(result sessiondto.LocationResult) error
	Submit(ctx context.Context, input sessiondto.FormInput) (sessiondto.SubmitOutput, error)
	ChangeType(activityType string) error
	Cancel() error
	Status() sessiondto.StatusOutput
	Logged(ctx context.Context) ([]sessiondto.LoggedWorkout, error)
}

type workoutPort interface {
	Stats(ctx context.Context) (workoutdto.StatsOutput, error)
}

// Deps are the pieces the model shares with the session controller: the
// controller draws on Surface, Form and Status, the model renders them.
type Deps struct {
	Session  sessionPort
	Workouts workoutPort
	Surface  mapview.Surface
	Form     *components.WorkoutForm
	Status   *components.StatusLine
}

// ─── panes ───────────────────────────────────────────────────────────────────

type paneID int

const (
	paneMap paneID = iota
	paneWorkouts
	paneCount
)

// ─── async messages ──────────────────────────────────────────────────────────

type locatedMsg struct {
	result sessiondto.LocationResult
}

// ─── key bindings ────────────────────────────────────────────────────────────

type keyMap struct {
	Pane  key.Binding
	Move  key.Binding
	Pan   key.Binding
	Zoom  key.Binding
	Click key.Binding
	Help  key.Binding
	Quit  key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Pane:  key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "switch pane")),
		Move:  key.NewBinding(key.WithKeys("left", "right", "up", "down"), key.WithHelp("←↑↓→", "cursor")),
		Pan:   key.NewBinding(key.WithKeys("H", "J", "K", "L"), key.WithHelp("HJKL", "pan")),
		Zoom:  key.NewBinding(key.WithKeys("+", "-"), key.WithHelp("+/-", "zoom")),
		Click: key.NewBinding(key.WithKeys("enter", " "), key.WithHelp("enter", "log here")),
		Help:  key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:  key.NewBinding(key.WithKeys("ctrl+c", "q"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Click, k.Pane, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Move, k.Pan, k.Zoom, k.Click},
		{k.Pane, k.Help, k.Quit},
	}
}

// ─── model ───────────────────────────────────────────────────────────────────

// Model is the root Bubble Tea model. It starts the session, routes input
// to the map, the form or the workout list, and redraws after each step.
type Model struct {
	session  sessionPort
	surface  mapview.Surface
	form     *components.WorkoutForm
	status   *components.StatusLine
	mapView  mapview.Model
	listView workouts.Model

	active   paneID
	keys     keyMap
	help     help.Model
	showHelp bool
	width    int
	height   int
}

func NewModel(deps Deps) Model {
	return Model{
		session:  deps.Session,
		surface:  deps.Surface,
		form:     deps.Form,
		status:   deps.Status,
		mapView:  mapview.New(deps.Surface),
		listView: workouts.New(workoutsBridge{session: deps.Session, workouts: deps.Workouts}),
		active:   paneMap,
		keys:     defaultKeys(),
		help:     help.New(),
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.mapView.Init(),
		m.listView.Init(),
		m.locateCmd(),
	)
}

// ─── update ──────────────────────────────────────────────────────────────────

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = m.width
		m.layout()
		return m, nil

	case locatedMsg:
		err := m.session.Resolve(msg.result)
		m.mapView.SetLocated(m.session.Status().Failed)
		if err == nil {
			m.status.Notify("Click the map to log a workout.")
		}
		return m, nil

	case mapview.ClickedMsg:
		if m.form.Visible() {
			return m, textinput.Blink
		}
		return m, nil

	case workouts.FocusMsg:
		m.surface.Recenter(msg.Lat, msg.Lng)
		m.active = paneMap
		return m, nil

	case components.FormSubmitMsg:
		if _, err := m.session.Submit(context.Background(), msg.Input); err != nil {
			return m, nil
		}
		return m, m.listView.Refresh()

	case components.FormTypeMsg:
		_ = m.session.ChangeType(msg.Type)
		return m, nil

	case components.FormCancelMsg:
		_ = m.session.Cancel()
		m.status.Notify("Cancelled.")
		return m, nil

	case workouts.LoadedMsg:
		var cmd tea.Cmd
		m.listView, cmd = m.listView.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		// The open form takes every key.
		if m.form.Visible() {
			return m, m.form.Update(msg)
		}
		if m.showHelp {
			if msg.String() == "?" || msg.String() == "esc" {
				m.showHelp = false
			}
			return m, nil
		}
		if m.active == paneWorkouts && m.listView.Filtering() {
			break
		}
		switch msg.String() {
		case "q":
			return m, tea.Quit
		case "tab":
			m.active = (m.active + 1) % paneCount
			return m, nil
		case "?":
			m.showHelp = true
			return m, nil
		}

	case tea.MouseMsg:
		if m.form.Visible() {
			return m, nil
		}
		var cmd tea.Cmd
		m.mapView, cmd = m.mapView.Update(msg)
		return m, cmd
	}

	if _, ok := msg.(tea.KeyMsg); !ok {
		var mCmd, lCmd tea.Cmd
		m.mapView, mCmd = m.mapView.Update(msg)
		m.listView, lCmd = m.listView.Update(msg)
		cmds = append(cmds, mCmd, lCmd)
		if m.form.Visible() {
			cmds = append(cmds, m.form.Update(msg))
		}
		return m, tea.Batch(cmds...)
	}

	var cmd tea.Cmd
	switch m.active {
	case paneMap:
		m.mapView, cmd = m.mapView.Update(msg)
	case paneWorkouts:
		m.listView, cmd = m.listView.Update(msg)
	}
	return m, cmd
}

// ─── view ────────────────────────────────────────────────────────────────────

func (m Model) View() string {
	header := m.renderHeader()
	statusBar := m.renderStatusBar()

	if m.showHelp {
		contentH := max(m.height-lipgloss.Height(header)-lipgloss.Height(statusBar), 1)
		content := lipgloss.NewStyle().Width(m.width).Height(contentH).Render(m.help.View(m.keys))
		return lipgloss.JoinVertical(lipgloss.Left, header, content, statusBar)
	}

	mapW, sideW := m.split()
	side := m.listView.View()
	if m.form.Visible() {
		side = lipgloss.JoinVertical(lipgloss.Left, m.form.View(), side)
	}
	sideStyle := theme.Pane
	if m.active == paneWorkouts || m.form.Visible() {
		sideStyle = theme.PaneActive
	}
	sidePane := sideStyle.Width(max(sideW-4, 10)).Height(max(m.height-4, 1)).Render(side)
	mapPane := lipgloss.NewStyle().Width(mapW).Render(m.mapView.View())

	body := lipgloss.JoinHorizontal(lipgloss.Top, mapPane, sidePane)
	return lipgloss.JoinVertical(lipgloss.Left, header, body, statusBar)
}

func (m Model) renderHeader() string {
	title := theme.Title.Render("mapty")
	state := theme.Muted.Render(m.session.Status().State)
	cursor := theme.Muted.Render(m.mapView.CursorLabel())
	gap := max(m.width-lipgloss.Width(title)-lipgloss.Width(state)-lipgloss.Width(cursor)-4, 1)
	bar := title + "  " + state + strings.Repeat(" ", gap) + cursor
	return lipgloss.NewStyle().Background(theme.Mantle).Width(m.width).Render(bar)
}

func (m Model) renderStatusBar() string {
	left := m.status.View()
	right := theme.Muted.Render(m.help.ShortHelpView(m.keys.ShortHelp()))
	gap := max(m.width-lipgloss.Width(left)-lipgloss.Width(right), 1)
	bar := left + strings.Repeat(" ", gap) + right
	return lipgloss.NewStyle().Background(theme.Mantle).Width(m.width).Render(bar)
}

// ─── helpers ─────────────────────────────────────────────────────────────────

func (m Model) split() (mapW, sideW int) {
	sideW = max(m.width*4/10, 30)
	mapW = max(m.width-sideW, 0)
	return mapW, sideW
}

func (m *Model) layout() {
	mapW, sideW := m.split()
	bodyH := max(m.height-2, 1)
	m.mapView.SetSize(mapW, bodyH)
	// Header is one line; the map starts right under it.
	m.mapView.SetOrigin(0, 1)
	m.listView.SetSize(max(sideW-6, 10), max(bodyH-2, 1))
	m.form.SetWidth(max(sideW-6, 20))
}

// ─── async commands ──────────────────────────────────────────────────────────

// locateCmd moves the session out of Idle on the event loop and runs the
// blocking lookup in the command goroutine. Resolve happens on locatedMsg.
func (m Model) locateCmd() tea.Cmd {
	lookup, err := m.session.Start(context.Background())
	if err != nil {
		return nil
	}
	return func() tea.Msg {
		return locatedMsg{result: lookup()}
	}
}

// ─── port bridges ────────────────────────────────────────────────────────────

type workoutsBridge struct {
	session  sessionPort
	workouts workoutPort
}

func (b workoutsBridge) Logged(ctx context.Context) ([]sessiondto.LoggedWorkout, error) {
	return b.session.Logged(ctx)
}

func (b workoutsBridge) Stats(ctx context.Context) (workoutdto.StatsOutput, error) {
	return b.workouts.Stats(ctx)
}
