package id

import "github.com/google/uuid"

// Generator creates opaque identifiers.
type Generator interface {
	New() string
}

// TimeOrdered issues UUIDv7 values: the leading 48 bits carry the creation
// time in milliseconds, the remainder is random, so identifiers minted in
// the same millisecond still differ.
type TimeOrdered struct{}

func (TimeOrdered) New() string {
	u, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return u.String()
}
