package in

import (
	"context"

	"mapty/internal/modules/session/dto"
)

type Controller interface {
	Start(ctx context.Context) (dto.Lookup, error)
	Resolve(result dto.LocationResult) error
	Run(ctx context.Context) error
	MapClicked(lat, lng float64) error
	Submit(ctx context.Context, input dto.FormInput) (dto.SubmitOutput, error)
	ChangeType(activityType string) error
	Cancel() error
	Status() dto.StatusOutput
	Logged(ctx context.Context) ([]dto.LoggedWorkout, error)
}
