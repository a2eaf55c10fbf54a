// Package sensorlog records and replays Catbot sensor readings as
// JSON lines, one Record per control step.
//
// A Player replays a log into a catbot.Sensors and implements
// catbot.Actuator, so that a recorded rollout can be stepped through
// the environment without a simulator.
package sensorlog

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"gonum.org/v1/gonum/num/quat"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/catbotrl/catbot/environment/catbot"
)

// ErrExhausted is returned when a Player has no more records to replay
var ErrExhausted = errors.New("sensor log exhausted")

// Record holds the sensor readings of one control step as published by
// the simulator. Contact forces hold the total force of each contact
// state reported in the step's contact message. If JointNames is set,
// joint readings are listed in the order of the names; otherwise they
// are in feed order.
type Record struct {
	Episode            int          `json:"episode"`
	Position           [3]float64   `json:"position"`
	Orientation        [4]float64   `json:"orientation"` // x, y, z, w
	LinearAcceleration [3]float64   `json:"linear_acceleration"`
	LeftContactStates  [][3]float64 `json:"left_contact_states,omitempty"`
	RightContactStates [][3]float64 `json:"right_contact_states,omitempty"`
	JointNames         []string     `json:"joint_names,omitempty"`
	JointPositions     []float64    `json:"joint_positions"`
	JointVelocities    []float64    `json:"joint_velocities"`
	JointEfforts       []float64    `json:"joint_efforts"`
}

// FromSnapshot returns the Record of a Snapshot in the given episode
func FromSnapshot(episode int, s catbot.Snapshot) Record {
	q := s.Orientation
	return Record{
		Episode:            episode,
		Position:           [3]float64{s.Position.X, s.Position.Y, s.Position.Z},
		Orientation:        [4]float64{q.Imag, q.Jmag, q.Kmag, q.Real},
		LinearAcceleration: vecArray(s.LinearAcceleration),
		LeftContactStates:  [][3]float64{vecArray(s.LeftContactForce)},
		RightContactStates: [][3]float64{vecArray(s.RightContactForce)},
		JointPositions:     append([]float64(nil), s.JointPositions[:]...),
		JointVelocities:    append([]float64(nil), s.JointVelocities[:]...),
		JointEfforts:       append([]float64(nil), s.JointEfforts[:]...),
	}
}

func vecArray(v r3.Vec) [3]float64 {
	return [3]float64{v.X, v.Y, v.Z}
}

func arrayVec(a [3]float64) r3.Vec {
	return r3.Vec{X: a[0], Y: a[1], Z: a[2]}
}

func contactForce(states [][3]float64) r3.Vec {
	forces := make([]r3.Vec, len(states))
	for i, s := range states {
		forces[i] = arrayVec(s)
	}
	return catbot.ContactForceFromStates(forces)
}

// Snapshot returns the readings of the Record as a Snapshot with
// joint readings in feed order
func (r Record) Snapshot() (catbot.Snapshot, error) {
	pos, vel, eff := r.JointPositions, r.JointVelocities, r.JointEfforts
	if len(r.JointNames) > 0 {
		var err error
		if pos, err = catbot.JointsInFeedOrder(r.JointNames, pos); err != nil {
			return catbot.Snapshot{}, fmt.Errorf("snapshot: positions: %w",
				err)
		}
		if vel, err = catbot.JointsInFeedOrder(r.JointNames, vel); err != nil {
			return catbot.Snapshot{}, fmt.Errorf("snapshot: velocities: %w",
				err)
		}
		if eff, err = catbot.JointsInFeedOrder(r.JointNames, eff); err != nil {
			return catbot.Snapshot{}, fmt.Errorf("snapshot: efforts: %w", err)
		}
	}
	for _, readings := range [][]float64{pos, vel, eff} {
		if len(readings) != catbot.NumJoints {
			return catbot.Snapshot{}, fmt.Errorf("snapshot: %w: have(%d) "+
				"want(%d)", catbot.ErrJointCount, len(readings),
				catbot.NumJoints)
		}
	}

	o := r.Orientation
	snap := catbot.Snapshot{
		Position:           arrayVec(r.Position),
		Orientation:        quat.Number{Real: o[3], Imag: o[0], Jmag: o[1], Kmag: o[2]},
		LinearAcceleration: arrayVec(r.LinearAcceleration),
		LeftContactForce:   contactForce(r.LeftContactStates),
		RightContactForce:  contactForce(r.RightContactStates),
	}
	copy(snap.JointPositions[:], pos)
	copy(snap.JointVelocities[:], vel)
	copy(snap.JointEfforts[:], eff)
	return snap, nil
}

// Apply replaces the Snapshot held by s with the readings of the
// Record in a single update. If the Record is invalid, s is not
// modified.
func (r Record) Apply(s *catbot.Sensors) error {
	snap, err := r.Snapshot()
	if err != nil {
		return fmt.Errorf("apply: %w", err)
	}
	s.Replace(snap)
	return nil
}

// Read reads all Records from a JSON lines stream. Blank lines are
// skipped.
func Read(r io.Reader) ([]Record, error) {
	var records []Record

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for line := 1; scanner.Scan(); line++ {
		text := scanner.Bytes()
		if len(text) == 0 {
			continue
		}

		var rec Record
		if err := json.Unmarshal(text, &rec); err != nil {
			return nil, fmt.Errorf("read: line %d: %w", line, err)
		}
		records = append(records, rec)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read: %w", err)
	}
	return records, nil
}

// Writer writes Records as JSON lines
type Writer struct {
	enc *json.Encoder
}

// NewWriter returns a new Writer writing to w
func NewWriter(w io.Writer) *Writer {
	return &Writer{json.NewEncoder(w)}
}

// Write writes a single Record
func (w *Writer) Write(r Record) error {
	if err := w.enc.Encode(r); err != nil {
		return fmt.Errorf("write: %w", err)
	}
	return nil
}
