package domain

import "time"

type ParkState string

const (
	ParkOpen   ParkState = "open"
	ParkClosed ParkState = "closed"
)

// ParkStatus reports whether the park is currently admitting visitors.
type ParkStatus struct {
	Status   ParkState
	OpensAt  time.Time
	ClosesAt time.Time
	Message  string
}
