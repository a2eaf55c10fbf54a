package catbot

import (
	"context"
	"errors"
	"math"
	"strings"
	"sync"
	"testing"
	"time"

	"gonum.org/v1/gonum/floats/scalar"
	"gonum.org/v1/gonum/num/quat"
	"gonum.org/v1/gonum/spatial/r3"
)

// axisAngle returns the unit quaternion rotating by angle about axis
func axisAngle(angle float64, axis r3.Vec) quat.Number {
	axis = r3.Unit(axis)
	s := math.Sin(angle / 2)
	return quat.Number{
		Real: math.Cos(angle / 2),
		Imag: s * axis.X,
		Jmag: s * axis.Y,
		Kmag: s * axis.Z,
	}
}

func TestEulerFromQuaternion(t *testing.T) {
	const tol = 1e-12

	tests := []struct {
		name             string
		q                quat.Number
		roll, pitch, yaw float64
	}{
		{"identity", quat.Number{Real: 1}, 0, 0, 0},
		{"zero", quat.Number{}, 0, 0, 0},
		{"roll", axisAngle(0.3, r3.Vec{X: 1}), 0.3, 0, 0},
		{"pitch", axisAngle(-0.4, r3.Vec{Y: 1}), 0, -0.4, 0},
		{"yaw", axisAngle(1.2, r3.Vec{Z: 1}), 0, 0, 1.2},
		{"unnormalized yaw", quat.Scale(3, axisAngle(1.2, r3.Vec{Z: 1})),
			0, 0, 1.2},
		{"gimbal lock", axisAngle(math.Pi/2, r3.Vec{Y: 1}), 0, math.Pi / 2,
			0},
	}

	for _, test := range tests {
		roll, pitch, yaw := EulerFromQuaternion(test.q)
		if !scalar.EqualWithinAbs(roll, test.roll, tol) ||
			!scalar.EqualWithinAbs(pitch, test.pitch, 1e-6) ||
			!scalar.EqualWithinAbs(yaw, test.yaw, tol) {
			t.Errorf("eulerFromQuaternion %v: have(%v, %v, %v) "+
				"want(%v, %v, %v)", test.name, roll, pitch, yaw, test.roll,
				test.pitch, test.yaw)
		}
	}
}

func TestEulerNearZeroQuaternion(t *testing.T) {
	tests := []struct {
		name string
		q    quat.Number
		roll float64
	}{
		{"zero", quat.Number{}, 0},
		{"below epsilon", quat.Number{Imag: 2e-8}, 0},
		{"above epsilon", quat.Number{Imag: 1e-7}, math.Pi},
	}

	for _, test := range tests {
		roll, pitch, yaw := EulerFromQuaternion(test.q)
		if !scalar.EqualWithinAbs(roll, test.roll, 1e-9) || pitch != 0 ||
			yaw != 0 {
			t.Errorf("%v: have(%v, %v, %v) want(%v, 0, 0)", test.name, roll,
				pitch, yaw, test.roll)
		}
	}
}

func TestEulerComposed(t *testing.T) {
	// Static x-y-z axes: roll first, then pitch, then yaw, so that
	// q = yaw * pitch * roll
	roll, pitch, yaw := 0.2, -0.3, 0.5
	q := quat.Mul(axisAngle(yaw, r3.Vec{Z: 1}),
		quat.Mul(axisAngle(pitch, r3.Vec{Y: 1}), axisAngle(roll,
			r3.Vec{X: 1})))

	r, p, y := EulerFromQuaternion(q)
	if !scalar.EqualWithinAbs(r, roll, 1e-12) ||
		!scalar.EqualWithinAbs(p, pitch, 1e-12) ||
		!scalar.EqualWithinAbs(y, yaw, 1e-12) {
		t.Errorf("eulerFromQuaternion: have(%v, %v, %v) want(%v, %v, %v)",
			r, p, y, roll, pitch, yaw)
	}
}

func TestSnapshotMeasures(t *testing.T) {
	s := Snapshot{
		Position:          r3.Vec{X: 1, Y: 2, Z: -2},
		LeftContactForce:  r3.Vec{X: 3, Y: 4},
		RightContactForce: r3.Vec{Z: -5},
	}

	if s.Height() != 2 {
		t.Errorf("height: have(%v) want(2)", s.Height())
	}
	if d := s.DistanceTo(r3.Vec{X: 1, Y: 2, Z: 1}); d != 3 {
		t.Errorf("distanceTo: have(%v) want(3)", d)
	}
	if s.LeftContactMagnitude() != 5 || s.RightContactMagnitude() != 5 {
		t.Errorf("contact magnitudes: have(%v, %v) want(5, 5)",
			s.LeftContactMagnitude(), s.RightContactMagnitude())
	}
}

func TestSensorsUpdate(t *testing.T) {
	s := NewSensors()
	if s.Ready() {
		t.Fatal("ready: new sensors should not be ready")
	}

	pos := make([]float64, NumJoints)
	pos[KneeRight] = 0.25
	zeros := make([]float64, NumJoints)

	s.UpdateOdometry(r3.Vec{Z: 1})
	s.UpdateIMU(quat.Number{Real: 1}, r3.Vec{Z: -9.81})
	s.UpdateLeftContact(r3.Vec{Z: 7})
	if s.Ready() {
		t.Fatal("ready: sensors should not be ready before every feed")
	}
	if err := s.UpdateJointStates(pos, zeros, zeros); err != nil {
		t.Fatal(err)
	}
	s.UpdateRightContact(r3.Vec{Z: 8})

	if !s.Ready() {
		t.Fatalf("ready: have(%v) want(%v)", s.Seen(), AllFeeds)
	}

	snap := s.Snapshot()
	if snap.Position.Z != 1 || snap.LinearAcceleration.Z != -9.81 ||
		snap.LeftContactForce.Z != 7 || snap.RightContactForce.Z != 8 ||
		snap.JointPositions[KneeRight] != 0.25 {
		t.Errorf("snapshot: have(%+v)", snap)
	}

	// Snapshots are copies
	pos[KneeRight] = 1
	snap.JointPositions[KneeRight] = 2
	if have := s.Snapshot().JointPositions[KneeRight]; have != 0.25 {
		t.Errorf("snapshot: copy was not independent, have(%v) want(0.25)",
			have)
	}
}

func TestSensorsJointCount(t *testing.T) {
	s := NewSensors()
	short := make([]float64, NumJoints-1)
	full := make([]float64, NumJoints)

	err := s.UpdateJointStates(full, short, full)
	if !errors.Is(err, ErrJointCount) {
		t.Errorf("updateJointStates: have(%v) want(%v)", err, ErrJointCount)
	}
	if s.Seen()&FeedJointStates != 0 {
		t.Error("updateJointStates: a rejected update marked the feed seen")
	}
}

func TestSensorsNoTornReads(t *testing.T) {
	s := NewSensors()

	var wg sync.WaitGroup
	stop := make(chan struct{})
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; ; i++ {
			select {
			case <-stop:
				return
			default:
			}
			var snap Snapshot
			v := float64(i)
			snap.Position = r3.Vec{X: v, Y: v, Z: v}
			for j := range snap.JointPositions {
				snap.JointPositions[j] = v
			}
			s.Replace(snap)
		}
	}()

	for k := 0; k < 1000; k++ {
		snap := s.Snapshot()
		v := snap.Position.X
		if snap.Position.Z != v || snap.JointPositions[NumJoints-1] != v {
			t.Errorf("snapshot: torn read %+v", snap)
			break
		}
	}
	close(stop)
	wg.Wait()
}

func TestWaitReady(t *testing.T) {
	s := NewSensors()

	go func() {
		time.Sleep(20 * time.Millisecond)
		s.Replace(Snapshot{})
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.WaitReady(ctx, time.Millisecond); err != nil {
		t.Fatal(err)
	}
}

func TestWaitReadyTimeout(t *testing.T) {
	s := NewSensors()
	s.UpdateOdometry(r3.Vec{Z: 1})

	ctx, cancel := context.WithTimeout(context.Background(),
		20*time.Millisecond)
	defer cancel()

	err := s.WaitReady(ctx, time.Millisecond)
	if !errors.Is(err, ErrSensorsNotReady) {
		t.Fatalf("waitReady: have(%v) want(%v)", err, ErrSensorsNotReady)
	}
	if strings.Contains(err.Error(), "odometry") {
		t.Errorf("waitReady: odometry reported missing: %v", err)
	}
	if !strings.Contains(err.Error(), "joint states") {
		t.Errorf("waitReady: joint states not reported missing: %v", err)
	}
}

func TestContactForceFromStates(t *testing.T) {
	if f := ContactForceFromStates(nil); f != (r3.Vec{}) {
		t.Errorf("contactForceFromStates: have(%v) want(zero)", f)
	}

	states := []r3.Vec{{Z: 1}, {Z: 2}, {X: 1, Z: 3}}
	if f := ContactForceFromStates(states); f != states[2] {
		t.Errorf("contactForceFromStates: have(%v) want(%v)", f, states[2])
	}
}

func TestFeedString(t *testing.T) {
	if have := (FeedIMU | FeedRightContact).String(); have !=
		"imu, right contact" {
		t.Errorf("string: have(%q) want(%q)", have, "imu, right contact")
	}
	if have := Feed(0).String(); have != "none" {
		t.Errorf("string: have(%q) want(%q)", have, "none")
	}
}
