package catbot

import (
	"math"
)

// Bounds are the safety bounds outside of which the robot is
// considered to have fallen
type Bounds struct {
	MinHeight   float64
	MaxHeight   float64
	AbsMaxRoll  float64
	AbsMaxPitch float64
}

// HeightOK returns whether the absolute base height lies in
// [MinHeight, MaxHeight)
func (b Bounds) HeightOK(s *Snapshot) bool {
	h := s.Height()
	return h >= b.MinHeight && h < b.MaxHeight
}

// OrientationOK returns whether the absolute roll and pitch are both
// strictly below their maximums. Yaw is unconstrained.
func (b Bounds) OrientationOK(s *Snapshot) bool {
	roll, pitch, _ := s.RPY()
	return math.Abs(roll) < b.AbsMaxRoll && math.Abs(pitch) < b.AbsMaxPitch
}

// Done returns whether the Snapshot violates the bounds
func (b Bounds) Done(s *Snapshot) bool {
	return !(b.HeightOK(s) && b.OrientationOK(s))
}

// Status is the state of the robot within an episode
type Status int

const (
	Alive Status = iota
	Fallen
)

func (s Status) String() string {
	switch s {
	case Alive:
		return "Alive"
	case Fallen:
		return "Fallen"
	}
	return "Unknown"
}

// Termination tracks whether the robot has fallen during the current
// episode. Once Fallen, it stays Fallen until Reset.
type Termination struct {
	bounds Bounds
	status Status
}

// NewTermination returns a new Termination in the Alive state
func NewTermination(b Bounds) *Termination {
	return &Termination{bounds: b, status: Alive}
}

// Check updates the status with the Snapshot and returns whether the
// robot has fallen
func (t *Termination) Check(s Snapshot) bool {
	if t.status == Alive && t.bounds.Done(&s) {
		t.status = Fallen
	}
	return t.status == Fallen
}

// Status returns the current status
func (t *Termination) Status() Status {
	return t.status
}

// Bounds returns the safety bounds
func (t *Termination) Bounds() Bounds {
	return t.bounds
}

// Reset returns the Termination to the Alive state
func (t *Termination) Reset() {
	t.status = Alive
}
