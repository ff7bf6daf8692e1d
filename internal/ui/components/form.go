package components

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"mapty/internal/modules/session/domain"
	sessiondto "mapty/internal/modules/session/dto"
	"mapty/internal/ui/theme"
)

// FormSubmitMsg is emitted when the user presses enter in the form.
type FormSubmitMsg struct{ Input sessiondto.FormInput }

// FormCancelMsg is emitted when the user presses esc.
type FormCancelMsg struct{}

// FormTypeMsg asks for the other activity type.
type FormTypeMsg struct{ Type string }

const (
	fieldDistance = iota
	fieldDuration
	fieldCadence
	fieldElevation
	fieldCount
)

var fieldLabels = [fieldCount]string{"Distance", "Duration", "Cadence", "Elev Gain"}

var fieldPlaceholders = [fieldCount]string{"km", "min", "step/min", "meters"}

var formStyle = lipgloss.NewStyle().
	BorderStyle(lipgloss.RoundedBorder()).
	BorderForeground(theme.Peach).
	Background(theme.Mantle).
	Foreground(theme.Text).
	Padding(0, 1)

// WorkoutForm is the workout entry overlay. The session controller drives
// its visibility through the pointer; the app feeds it key messages.
type WorkoutForm struct {
	inputs  [fieldCount]textinput.Model
	kind    domain.ActivityType
	visible bool
	focus   int
	width   int
}

func NewWorkoutForm() *WorkoutForm {
	f := &WorkoutForm{kind: domain.ActivityRunning}
	for i := range f.inputs {
		ti := textinput.New()
		ti.Placeholder = fieldPlaceholders[i]
		ti.CharLimit = 16
		ti.Width = 12
		f.inputs[i] = ti
	}
	return f
}

func (f *WorkoutForm) Show() { f.visible = true }

func (f *WorkoutForm) Hide() {
	f.visible = false
	for i := range f.inputs {
		f.inputs[i].Blur()
	}
}

// Focus puts the cursor in the distance field.
func (f *WorkoutForm) Focus() {
	f.setFocus(fieldDistance)
}

func (f *WorkoutForm) Clear() {
	for i := range f.inputs {
		f.inputs[i].SetValue("")
	}
}

// ShowField swaps the type-specific field. Focus moves off the hidden one.
func (f *WorkoutForm) ShowField(kind domain.ActivityType) {
	f.kind = kind
	if !f.fieldVisible(f.focus) {
		f.setFocus(f.typeField())
	}
}

func (f *WorkoutForm) Visible() bool { return f.visible }

func (f *WorkoutForm) Kind() domain.ActivityType { return f.kind }

func (f *WorkoutForm) SetWidth(w int) { f.width = w }

// Value returns the raw text of the form as it would be submitted.
func (f *WorkoutForm) Value() sessiondto.FormInput {
	input := sessiondto.FormInput{
		Type:     string(f.kind),
		Distance: f.inputs[fieldDistance].Value(),
		Duration: f.inputs[fieldDuration].Value(),
	}
	if f.kind == domain.ActivityCycling {
		input.Elevation = f.inputs[fieldElevation].Value()
	} else {
		input.Cadence = f.inputs[fieldCadence].Value()
	}
	return input
}

func (f *WorkoutForm) Update(msg tea.Msg) tea.Cmd {
	if !f.visible {
		return nil
	}
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "esc":
			return func() tea.Msg { return FormCancelMsg{} }
		case "enter":
			input := f.Value()
			return func() tea.Msg { return FormSubmitMsg{Input: input} }
		case "ctrl+t":
			next := string(f.kind.Toggle())
			return func() tea.Msg { return FormTypeMsg{Type: next} }
		case "tab", "down":
			f.setFocus(f.step(1))
			return textinput.Blink
		case "shift+tab", "up":
			f.setFocus(f.step(-1))
			return textinput.Blink
		}
	}
	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return cmd
}

func (f *WorkoutForm) View() string {
	if !f.visible {
		return ""
	}
	var sb strings.Builder
	sb.WriteString(theme.Title.Render("New workout") + "  ")
	sb.WriteString(theme.Kind(string(f.kind)).Render("● "+string(f.kind)) + "\n\n")
	for _, i := range f.order() {
		label := lipgloss.NewStyle().Width(10).Render(fieldLabels[i])
		if i == f.focus {
			label = theme.Hot.Render(label)
		} else {
			label = theme.Muted.Render(label)
		}
		sb.WriteString(label + " " + f.inputs[i].View() + "\n")
	}
	sb.WriteString("\n" + theme.Muted.Render("enter: log  ctrl+t: type  tab: next  esc: cancel"))

	w := f.width
	if w < 20 {
		w = 40
	}
	return formStyle.Width(w - 2).Render(sb.String())
}

func (f *WorkoutForm) typeField() int {
	if f.kind == domain.ActivityCycling {
		return fieldElevation
	}
	return fieldCadence
}

func (f *WorkoutForm) fieldVisible(i int) bool {
	return i == fieldDistance || i == fieldDuration || i == f.typeField()
}

func (f *WorkoutForm) order() []int {
	return []int{fieldDistance, fieldDuration, f.typeField()}
}

func (f *WorkoutForm) step(delta int) int {
	order := f.order()
	pos := 0
	for i, field := range order {
		if field == f.focus {
			pos = i
		}
	}
	pos = (pos + delta + len(order)) % len(order)
	return order[pos]
}

func (f *WorkoutForm) setFocus(field int) {
	for i := range f.inputs {
		if i == field {
			f.inputs[i].Focus()
		} else {
			f.inputs[i].Blur()
		}
	}
	f.focus = field
}
