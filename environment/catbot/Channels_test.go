package catbot

import (
	"errors"
	"testing"
)

func TestChannelNames(t *testing.T) {
	if NumChannels != 26 {
		t.Fatalf("numChannels: have(%d) want(26)", NumChannels)
	}

	for _, c := range Channels() {
		have, err := ChannelByName(c.String())
		if err != nil {
			t.Fatal(err)
		}
		if have != c {
			t.Errorf("channelByName(%v): have(%v) want(%v)", c.String(),
				have, c)
		}
	}

	if JointChannel(ForearmYRJ).String() != "joint_states_forearm_yrj" {
		t.Errorf("string: have(%v) want(joint_states_forearm_yrj)",
			JointChannel(ForearmYRJ))
	}
}

func TestChannelByNameUnknown(t *testing.T) {
	if _, err := ChannelByName("tail_wag"); !errors.Is(err,
		ErrUnknownChannel) {
		t.Errorf("channelByName: have(%v) want(%v)", err, ErrUnknownChannel)
	}

	c := DefaultConfig()
	c.Observations = []string{"base_roll", "tail_wag"}
	if _, err := NewObservationSpec(c); !errors.Is(err, ErrUnknownChannel) {
		t.Errorf("newObservationSpec: have(%v) want(%v)", err,
			ErrUnknownChannel)
	}
}

func TestChannelJoint(t *testing.T) {
	if _, ok := BaseYaw.Joint(); ok {
		t.Error("joint: base_yaw should not observe a joint")
	}
	for _, j := range Joints() {
		have, ok := JointChannel(j).Joint()
		if !ok || have != j {
			t.Errorf("joint: have(%v, %v) want(%v, true)", have, ok, j)
		}
	}
}

func TestObservationSpecSubset(t *testing.T) {
	c := DefaultConfig()
	c.Observations = []string{"joint_states_knee_left", "base_pitch"}

	o, err := NewObservationSpec(c)
	if err != nil {
		t.Fatal(err)
	}

	if o.Len() != 2 {
		t.Fatalf("len: have(%d) want(2)", o.Len())
	}
	names := o.Names()
	if names[0] != "joint_states_knee_left" || names[1] != "base_pitch" {
		t.Errorf("names: have(%v) want([joint_states_knee_left "+
			"base_pitch])", names)
	}

	s := o.Spec()
	if s.LowerBound.AtVec(1) != -c.AbsMaxPitch ||
		s.UpperBound.AtVec(1) != c.AbsMaxPitch {
		t.Errorf("spec: pitch bounds have([%v, %v]) want([%v, %v])",
			s.LowerBound.AtVec(1), s.UpperBound.AtVec(1), -c.AbsMaxPitch,
			c.AbsMaxPitch)
	}
}

func TestJointsInFeedOrder(t *testing.T) {
	// Names as published by the simulator, sorted alphabetically
	names := []string{
		"ankle_lj", "ankle_rj", "bum_xlj", "bum_xrj", "bum_ylj",
		"bum_yrj", "bum_zlj", "bum_zrj", "foot_lj", "foot_rj",
		"forearm_ylj", "forearm_yrj", "knee_left", "knee_right",
		"shoulder_xlj", "shoulder_xrj", "shoulder_ylj", "shoulder_yrj",
		"shoulder_zlj", "shoulder_zrj",
	}
	values := make([]float64, len(names))
	for i, name := range names {
		j, err := JointByName(name)
		if err != nil {
			t.Fatal(err)
		}
		values[i] = float64(j)
	}

	ordered, err := JointsInFeedOrder(names, values)
	if err != nil {
		t.Fatal(err)
	}
	for j, v := range ordered {
		if v != float64(j) {
			t.Errorf("jointsInFeedOrder: index %d have(%v) want(%d)", j, v, j)
		}
	}

	names[1] = names[0]
	if _, err := JointsInFeedOrder(names, values); err == nil {
		t.Error("jointsInFeedOrder: expected an error for a repeated joint")
	}
	if _, err := JointsInFeedOrder(names[:3], values[:3]); !errors.Is(err,
		ErrJointCount) {
		t.Errorf("jointsInFeedOrder: have(%v) want(%v)", err, ErrJointCount)
	}
}
