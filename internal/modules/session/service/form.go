package service

import (
	"math"
	"strconv"
	"strings"

	"mapty/internal/modules/session/domain"
	"mapty/internal/modules/session/dto"
)

type ParsedForm struct {
	Type           domain.ActivityType
	DistanceKm     float64
	DurationMin    float64
	CadenceSPM     float64
	ElevationGainM float64
}

// ParseForm turns raw field text into numbers. fallback is used when the
// form does not name an activity type. Range checks are left to the
// workout constructors.
func ParseForm(input dto.FormInput, fallback domain.ActivityType) (ParsedForm, error) {
	rawType := input.Type
	if strings.TrimSpace(rawType) == "" {
		rawType = string(fallback)
	}
	activityType, err := domain.ParseActivityType(rawType)
	if err != nil {
		return ParsedForm{}, err
	}
	return ParsedForm{
		Type:           activityType,
		DistanceKm:     parseNumber(input.Distance),
		DurationMin:    parseNumber(input.Duration),
		CadenceSPM:     parseNumber(input.Cadence),
		ElevationGainM: parseNumber(input.Elevation),
	}, nil
}

// parseNumber reads an empty field as zero and anything unparsable as NaN,
// which the constructors reject.
func parseNumber(raw string) float64 {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return math.NaN()
	}
	return v
}
