package catbot

import (
	"context"
	"fmt"
	"math"
	"strings"
	"sync"
	"time"

	"gonum.org/v1/gonum/num/quat"
	"gonum.org/v1/gonum/spatial/r3"
)

// DefaultPoll is the default interval between readiness checks in
// Sensors.WaitReady
const DefaultPoll = 100 * time.Millisecond

// quatEps is four times machine epsilon. Quaternions with a smaller
// squared norm are treated as the identity rotation.
const quatEps = 4 * 0x1p-52

// Snapshot is the most recent reading of every Catbot sensor.
//
// The orientation quaternion stores w in Real and x, y, z in Imag,
// Jmag, and Kmag respectively. Joint readings are in feed order.
type Snapshot struct {
	Position           r3.Vec
	Orientation        quat.Number
	LinearAcceleration r3.Vec
	LeftContactForce   r3.Vec
	RightContactForce  r3.Vec
	JointPositions     [NumJoints]float64
	JointVelocities    [NumJoints]float64
	JointEfforts       [NumJoints]float64
}

// Height returns the absolute height of the robot's base
func (s *Snapshot) Height() float64 {
	return math.Abs(s.Position.Z)
}

// DistanceTo returns the Euclidean distance from the robot's base to
// the point p
func (s *Snapshot) DistanceTo(p r3.Vec) float64 {
	return r3.Norm(r3.Sub(s.Position, p))
}

// LeftContactMagnitude returns the magnitude of the left foot's
// contact force
func (s *Snapshot) LeftContactMagnitude() float64 {
	return r3.Norm(s.LeftContactForce)
}

// RightContactMagnitude returns the magnitude of the right foot's
// contact force
func (s *Snapshot) RightContactMagnitude() float64 {
	return r3.Norm(s.RightContactForce)
}

// RPY returns the roll, pitch, and yaw of the robot's base, extracted
// from the orientation quaternion with static x-y-z axes. The
// quaternion need not be normalized; a zero quaternion is treated as
// no rotation.
func (s *Snapshot) RPY() (roll, pitch, yaw float64) {
	return EulerFromQuaternion(s.Orientation)
}

// EulerFromQuaternion converts a quaternion to roll, pitch, and yaw
// about static x, y, and z axes through the equivalent rotation matrix
func EulerFromQuaternion(q quat.Number) (roll, pitch, yaw float64) {
	nq := q.Real*q.Real + q.Imag*q.Imag + q.Jmag*q.Jmag + q.Kmag*q.Kmag
	if nq < quatEps {
		return 0, 0, 0
	}

	w, x, y, z := q.Real, q.Imag, q.Jmag, q.Kmag
	scale := 2 / nq

	m00 := 1 - scale*(y*y+z*z)
	m10 := scale * (x*y + w*z)
	m20 := scale * (x*z - w*y)
	m21 := scale * (y*z + w*x)
	m22 := 1 - scale*(x*x+y*y)

	cy := math.Hypot(m00, m10)
	if cy > 1e-12 {
		return math.Atan2(m21, m22), math.Atan2(-m20, cy), math.Atan2(m10, m00)
	}

	// Gimbal lock: yaw is folded into roll
	m11 := 1 - scale*(x*x+z*z)
	m12 := scale * (y*z - w*x)
	return math.Atan2(-m12, m11), math.Atan2(-m20, cy), 0
}

// Feed identifies one of the sensor feeds that update a Snapshot
type Feed uint8

const (
	FeedOdometry Feed = 1 << iota
	FeedIMU
	FeedLeftContact
	FeedRightContact
	FeedJointStates

	// AllFeeds is the set of every feed
	AllFeeds = FeedOdometry | FeedIMU | FeedLeftContact | FeedRightContact |
		FeedJointStates
)

var feedNames = []struct {
	Feed
	name string
}{
	{FeedOdometry, "odometry"},
	{FeedIMU, "imu"},
	{FeedLeftContact, "left contact"},
	{FeedRightContact, "right contact"},
	{FeedJointStates, "joint states"},
}

// String returns the names of the feeds in the set
func (f Feed) String() string {
	var names []string
	for _, n := range feedNames {
		if f&n.Feed != 0 {
			names = append(names, n.name)
		}
	}
	if len(names) == 0 {
		return "none"
	}
	return strings.Join(names, ", ")
}

// Sensors holds the latest Snapshot of the robot's sensors. Sensor
// feeds update it through the Update methods; each update replaces the
// whole Snapshot so that readers never observe a partially applied
// update. Sensors is safe for concurrent use.
type Sensors struct {
	mu   sync.RWMutex
	snap Snapshot
	seen Feed
}

// NewSensors returns a new Sensors with a zero Snapshot and no feeds
// seen
func NewSensors() *Sensors {
	return &Sensors{}
}

// Snapshot returns a copy of the latest Snapshot
func (s *Sensors) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snap
}

// update applies f to a copy of the current Snapshot and swaps the
// copy in
func (s *Sensors) update(feed Feed, f func(*Snapshot)) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.snap
	f(&next)
	s.snap = next
	s.seen |= feed
}

// Replace replaces the Snapshot wholesale and marks every feed seen
func (s *Sensors) Replace(snap Snapshot) {
	s.update(AllFeeds, func(next *Snapshot) {
		*next = snap
	})
}

// UpdateOdometry records the position of the robot's base
func (s *Sensors) UpdateOdometry(position r3.Vec) {
	s.update(FeedOdometry, func(next *Snapshot) {
		next.Position = position
	})
}

// UpdateIMU records the base orientation and linear acceleration
func (s *Sensors) UpdateIMU(orientation quat.Number, linearAcc r3.Vec) {
	s.update(FeedIMU, func(next *Snapshot) {
		next.Orientation = orientation
		next.LinearAcceleration = linearAcc
	})
}

// UpdateLeftContact records the total contact force on the left foot
func (s *Sensors) UpdateLeftContact(force r3.Vec) {
	s.update(FeedLeftContact, func(next *Snapshot) {
		next.LeftContactForce = force
	})
}

// UpdateRightContact records the total contact force on the right foot
func (s *Sensors) UpdateRightContact(force r3.Vec) {
	s.update(FeedRightContact, func(next *Snapshot) {
		next.RightContactForce = force
	})
}

// UpdateJointStates records joint positions, velocities, and efforts,
// each given in feed order
func (s *Sensors) UpdateJointStates(positions, velocities,
	efforts []float64) error {
	for _, readings := range [][]float64{positions, velocities, efforts} {
		if len(readings) != NumJoints {
			return fmt.Errorf("updateJointStates: %w: have(%d) want(%d)",
				ErrJointCount, len(readings), NumJoints)
		}
	}

	s.update(FeedJointStates, func(next *Snapshot) {
		copy(next.JointPositions[:], positions)
		copy(next.JointVelocities[:], velocities)
		copy(next.JointEfforts[:], efforts)
	})
	return nil
}

// Seen returns the set of feeds which have delivered at least one
// reading
func (s *Sensors) Seen() Feed {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.seen
}

// Ready returns whether every feed has delivered at least one reading
func (s *Sensors) Ready() bool {
	return s.Seen() == AllFeeds
}

// WaitReady blocks until every feed has delivered at least one
// reading, checking every poll. If ctx is done first, WaitReady
// returns an error wrapping ErrSensorsNotReady which names the feeds
// still missing.
func (s *Sensors) WaitReady(ctx context.Context, poll time.Duration) error {
	if poll <= 0 {
		poll = DefaultPoll
	}

	tick := time.NewTicker(poll)
	defer tick.Stop()

	for !s.Ready() {
		select {
		case <-ctx.Done():
			missing := AllFeeds &^ s.Seen()
			return fmt.Errorf("waitReady: %w: missing %v: %v",
				ErrSensorsNotReady, missing, ctx.Err())
		case <-tick.C:
		}
	}
	return nil
}

// ContactForceFromStates folds the total forces of the contact states
// reported for one foot in a single message. The last state wins, and
// a message with no contact states means no force.
func ContactForceFromStates(forces []r3.Vec) r3.Vec {
	if len(forces) == 0 {
		return r3.Vec{}
	}
	return forces[len(forces)-1]
}
