package catbot

import (
	"fmt"
)

// Joint indexes one of the Catbot's actuated joints. The order of the
// constants is the order in which the sensor feed reports joint
// readings and the order of joint targets sent to the actuators.
type Joint int

const (
	BumZLJ Joint = iota
	BumXLJ
	BumYLJ
	KneeLeft
	AnkleLJ
	FootLJ
	BumZRJ
	BumXRJ
	BumYRJ
	KneeRight
	AnkleRJ
	FootRJ
	ShoulderZLJ
	ShoulderXLJ
	ShoulderYLJ
	ForearmYLJ
	ShoulderZRJ
	ShoulderXRJ
	ShoulderYRJ
	ForearmYRJ

	// NumJoints is the number of actuated joints
	NumJoints int = iota
)

var jointNames = [NumJoints]string{
	"bum_zlj",
	"bum_xlj",
	"bum_ylj",
	"knee_left",
	"ankle_lj",
	"foot_lj",
	"bum_zrj",
	"bum_xrj",
	"bum_yrj",
	"knee_right",
	"ankle_rj",
	"foot_rj",
	"shoulder_zlj",
	"shoulder_xlj",
	"shoulder_ylj",
	"forearm_ylj",
	"shoulder_zrj",
	"shoulder_xrj",
	"shoulder_yrj",
	"forearm_yrj",
}

// String returns the joint's name as used by the robot description
func (j Joint) String() string {
	if !j.valid() {
		return fmt.Sprintf("Joint(%d)", int(j))
	}
	return jointNames[j]
}

func (j Joint) valid() bool {
	return j >= 0 && int(j) < NumJoints
}

// JointByName returns the joint with the given name
func JointByName(name string) (Joint, error) {
	for j, n := range jointNames {
		if n == name {
			return Joint(j), nil
		}
	}
	return 0, fmt.Errorf("jointByName: no joint named %q", name)
}

// Joints returns all joints in feed order
func Joints() []Joint {
	joints := make([]Joint, NumJoints)
	for i := range joints {
		joints[i] = Joint(i)
	}
	return joints
}

// JointsInFeedOrder reorders joint readings reported under the given
// names into feed order. Joint state messages published by the
// simulator list joints alphabetically, so readings have to be
// permuted before being handed to Sensors.UpdateJointStates.
//
// Every joint must be named exactly once.
func JointsInFeedOrder(names []string, values []float64) ([]float64, error) {
	if len(names) != len(values) {
		return nil, fmt.Errorf("jointsInFeedOrder: %w: %d names for %d "+
			"values", ErrJointCount, len(names), len(values))
	}
	if len(names) != NumJoints {
		return nil, fmt.Errorf("jointsInFeedOrder: %w: have(%d) want(%d)",
			ErrJointCount, len(names), NumJoints)
	}

	ordered := make([]float64, NumJoints)
	var seen [NumJoints]bool
	for i, name := range names {
		j, err := JointByName(name)
		if err != nil {
			return nil, fmt.Errorf("jointsInFeedOrder: %v", err)
		}
		if seen[j] {
			return nil, fmt.Errorf("jointsInFeedOrder: joint %v reported "+
				"twice", j)
		}
		seen[j] = true
		ordered[j] = values[i]
	}
	return ordered, nil
}
