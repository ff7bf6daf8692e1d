package components

import "mapty/internal/ui/theme"

// StatusLine shows the latest message from the session. Alerts stay red
// until the next message replaces them.
type StatusLine struct {
	text  string
	alert bool
}

func NewStatusLine(text string) *StatusLine {
	return &StatusLine{text: text}
}

func (s *StatusLine) Alert(message string) {
	s.text = message
	s.alert = true
}

func (s *StatusLine) Notify(message string) {
	s.text = message
	s.alert = false
}

func (s *StatusLine) Text() string { return s.text }

func (s *StatusLine) Alerting() bool { return s.alert }

func (s *StatusLine) View() string {
	if s.alert {
		return theme.Alert.Render("! " + s.text)
	}
	return s.text
}
