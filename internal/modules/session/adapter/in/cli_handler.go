package in

import (
	"context"

	sessiondto "mapty/internal/modules/session/dto"
	sessionin "mapty/internal/modules/session/port/in"
)

type CLIHandler struct {
	controller sessionin.Controller
}

func NewCLIHandler(controller sessionin.Controller) CLIHandler {
	return CLIHandler{controller: controller}
}

// LogWorkout drives one whole interaction without a screen: locate, click
// at lat/lng, pick the type, submit the fields.
func (h CLIHandler) LogWorkout(ctx context.Context, lat, lng float64, input sessiondto.FormInput) (sessiondto.SubmitOutput, error) {
	if !h.controller.Status().Ready {
		if err := h.controller.Run(ctx); err != nil {
			return sessiondto.SubmitOutput{}, err
		}
	}
	if err := h.controller.MapClicked(lat, lng); err != nil {
		return sessiondto.SubmitOutput{}, err
	}
	if input.Type != "" {
		if err := h.controller.ChangeType(input.Type); err != nil {
			_ = h.controller.Cancel()
			return sessiondto.SubmitOutput{}, err
		}
	}
	out, err := h.controller.Submit(ctx, input)
	if err != nil {
		_ = h.controller.Cancel()
		return sessiondto.SubmitOutput{}, err
	}
	return out, nil
}

func (h CLIHandler) Logged(ctx context.Context) ([]sessiondto.LoggedWorkout, error) {
	return h.controller.Logged(ctx)
}
