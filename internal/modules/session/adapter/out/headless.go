package out

import (
	hclog "github.com/hashicorp/go-hclog"

	"mapty/internal/modules/session/domain"
)

// HeadlessForm tracks what a visible form would show when there is no
// screen to draw it on.
type HeadlessForm struct {
	Visible bool
	Focused bool
	Field   domain.ActivityType
}

func (f *HeadlessForm) Show() { f.Visible = true }

func (f *HeadlessForm) Hide() {
	f.Visible = false
	f.Focused = false
}

func (f *HeadlessForm) Focus() { f.Focused = true }

func (f *HeadlessForm) Clear() {}

func (f *HeadlessForm) ShowField(activityType domain.ActivityType) { f.Field = activityType }

type LogNotifier struct {
	logger hclog.Logger
}

func NewLogNotifier(logger hclog.Logger) LogNotifier {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return LogNotifier{logger: logger.Named("notify")}
}

func (n LogNotifier) Alert(message string) {
	n.logger.Warn(message)
}

func (n LogNotifier) Notify(message string) {
	n.logger.Info(message)
}
