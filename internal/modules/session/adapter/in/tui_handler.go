package in

import (
	"context"

	sessiondto "mapty/internal/modules/session/dto"
	sessionin "mapty/internal/modules/session/port/in"
)

type TUIHandler struct {
	controller sessionin.Controller
}

func NewTUIHandler(controller sessionin.Controller) TUIHandler {
	return TUIHandler{controller: controller}
}

func (h TUIHandler) Start(ctx context.Context) (sessiondto.Lookup, error) {
	return h.controller.Start(ctx)
}

func (h TUIHandler) Resolve(result sessiondto.LocationResult) error {
	return h.controller.Resolve(result)
}

func (h TUIHandler) Submit(ctx context.Context, input sessiondto.FormInput) (sessiondto.SubmitOutput, error) {
	return h.controller.Submit(ctx, input)
}

func (h TUIHandler) ChangeType(activityType string) error {
	return h.controller.ChangeType(activityType)
}

func (h TUIHandler) Cancel() error {
	return h.controller.Cancel()
}

func (h TUIHandler) Status() sessiondto.StatusOutput {
	return h.controller.Status()
}

func (h TUIHandler) Logged(ctx context.Context) ([]sessiondto.LoggedWorkout, error) {
	return h.controller.Logged(ctx)
}
