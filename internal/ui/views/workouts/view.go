package workouts

import (
	"context"
	"fmt"
	"strconv"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	sessiondto "mapty/internal/modules/session/dto"
	workoutdto "mapty/internal/modules/workout/dto"
	"mapty/internal/ui/theme"
)

// ─── port ────────────────────────────────────────────────────────────────────

type Port interface {
	Logged(ctx context.Context) ([]sessiondto.LoggedWorkout, error)
	Stats(ctx context.Context) (workoutdto.StatsOutput, error)
}

// ─── messages ────────────────────────────────────────────────────────────────

type LoadedMsg struct {
	Workouts []sessiondto.LoggedWorkout
	Stats    workoutdto.StatsOutput
	Err      error
}

// FocusMsg asks the map to move to a workout.
type FocusMsg struct {
	Lat float64
	Lng float64
}

// ─── list item ───────────────────────────────────────────────────────────────

type workoutItem struct {
	logged sessiondto.LoggedWorkout
}

func (i workoutItem) Title() string { return i.logged.Workout.Description }

func (i workoutItem) Description() string {
	w := i.logged.Workout
	switch w.Kind {
	case "running":
		return fmt.Sprintf("%s km · %s min · %.1f min/km", trim(w.DistanceKm), trim(w.DurationMin), w.PaceMinPerKm)
	case "cycling":
		return fmt.Sprintf("%s km · %s min · %.1f km/h", trim(w.DistanceKm), trim(w.DurationMin), w.SpeedKmh)
	}
	return w.Kind
}

func (i workoutItem) FilterValue() string { return i.logged.Workout.Description }

// ─── model ───────────────────────────────────────────────────────────────────

type Model struct {
	port     Port
	list     list.Model
	popup    viewport.Model
	renderer *glamour.TermRenderer
	stats    workoutdto.StatsOutput
	err      error
	width    int
	height   int
}

func New(port Port) Model {
	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = delegate.Styles.SelectedTitle.Foreground(theme.Lavender).BorderForeground(theme.Lavender)
	delegate.Styles.SelectedDesc = delegate.Styles.SelectedDesc.Foreground(theme.Sapphire).BorderForeground(theme.Lavender)

	l := list.New(nil, delegate, 0, 0)
	l.Title = "Workouts"
	l.Styles.Title = theme.Title
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(true)
	l.SetShowHelp(false)
	l.SetStatusBarItemName("workout", "workouts")

	vp := viewport.New(0, 0)
	vp.Style = lipgloss.NewStyle().Foreground(theme.Text)

	r, _ := glamour.NewTermRenderer(
		glamour.WithStylePath("dark"),
		glamour.WithWordWrap(0),
	)

	return Model{port: port, list: l, popup: vp, renderer: r}
}

func (m Model) Init() tea.Cmd {
	return m.Refresh()
}

// Refresh reloads the list after a workout was logged.
func (m Model) Refresh() tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		logged, err := m.port.Logged(ctx)
		if err != nil {
			return LoadedMsg{Err: err}
		}
		stats, err := m.port.Stats(ctx)
		return LoadedMsg{Workouts: logged, Stats: stats, Err: err}
	}
}

func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.resize()
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case LoadedMsg:
		m.err = msg.Err
		if msg.Err != nil {
			return m, nil
		}
		m.stats = msg.Stats
		// Newest first.
		items := make([]list.Item, len(msg.Workouts))
		for i, w := range msg.Workouts {
			items[len(items)-1-i] = workoutItem{logged: w}
		}
		cmds = append(cmds, m.list.SetItems(items))
		m.list.Select(0)
		m.showSelected()
		return m, tea.Batch(cmds...)

	case tea.KeyMsg:
		if msg.String() == "enter" && m.list.FilterState() != list.Filtering {
			if item, ok := m.list.SelectedItem().(workoutItem); ok {
				lat, lng := item.logged.Workout.Lat, item.logged.Workout.Lng
				return m, func() tea.Msg { return FocusMsg{Lat: lat, Lng: lng} }
			}
		}
	}

	prev := m.list.Index()
	var lCmd tea.Cmd
	m.list, lCmd = m.list.Update(msg)
	cmds = append(cmds, lCmd)
	if m.list.Index() != prev {
		m.showSelected()
	}
	return m, tea.Batch(cmds...)
}

func (m Model) View() string {
	header := m.renderStats()
	if m.err != nil {
		header = theme.Alert.Render("workouts: " + m.err.Error())
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		header,
		m.list.View(),
		theme.Pane.Width(max(m.width-4, 10)).Render(m.popup.View()),
	)
}

// Filtering reports whether the list's search filter is active. The app
// model checks this to avoid consuming global keys during a search.
func (m Model) Filtering() bool {
	return m.list.FilterState() == list.Filtering
}

func (m Model) Len() int {
	return len(m.list.Items())
}

// ─── private ─────────────────────────────────────────────────────────────────

func (m *Model) resize() {
	popupH := max(m.height/3, 4)
	m.list.SetSize(m.width, max(m.height-popupH-3, 3))
	m.popup.Width = max(m.width-6, 10)
	m.popup.Height = popupH
	m.showSelected()
}

func (m *Model) showSelected() {
	item, ok := m.list.SelectedItem().(workoutItem)
	if !ok {
		m.popup.SetContent(theme.Muted.Render("Click the map to log a workout."))
		return
	}
	m.popup.SetContent(m.render(item.logged.Label))
	m.popup.GotoTop()
}

func (m Model) render(label string) string {
	if m.renderer == nil {
		return label
	}
	out, err := m.renderer.Render(label)
	if err != nil {
		return label
	}
	return out
}

func (m Model) renderStats() string {
	s := m.stats
	if s.Count == 0 {
		return theme.Muted.Render("No workouts yet")
	}
	return fmt.Sprintf("%s  %s  %s",
		theme.Hot.Render(strconv.Itoa(s.Count)+" logged"),
		theme.Running.Render(strconv.Itoa(s.Running)+" run")+theme.Muted.Render(" / ")+theme.Cycling.Render(strconv.Itoa(s.Cycling)+" ride"),
		theme.Muted.Render(trim(s.DistanceKm)+" km · "+trim(s.DurationMin)+" min"),
	)
}

func trim(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
