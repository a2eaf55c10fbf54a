package catbot

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r1"

	"github.com/catbotrl/catbot/spec"
)

// Channel identifies one scalar dimension of the observation vector
type Channel int

const (
	DistanceFromDesiredPoint Channel = iota
	BaseRoll
	BasePitch
	BaseYaw
	ContactForceLeftLeg
	ContactForceRightLeg

	// firstJointChannel is the channel of joint BumZLJ. Joint j is
	// observed on channel firstJointChannel + j.
	firstJointChannel

	// NumChannels is the number of defined observation channels
	NumChannels int = int(firstJointChannel) + NumJoints
)

var bodyChannelNames = [firstJointChannel]string{
	"distance_from_desired_point",
	"base_roll",
	"base_pitch",
	"base_yaw",
	"contact_force_left_leg",
	"contact_force_right_leg",
}

const jointChannelPrefix = "joint_states_"

// JointChannel returns the channel on which joint j's position is
// observed
func JointChannel(j Joint) Channel {
	return firstJointChannel + Channel(j)
}

// Joint returns the joint observed on the channel. The boolean is
// false if the channel does not observe a joint.
func (c Channel) Joint() (Joint, bool) {
	if c < firstJointChannel || int(c) >= NumChannels {
		return 0, false
	}
	return Joint(c - firstJointChannel), true
}

func (c Channel) valid() bool {
	return c >= 0 && int(c) < NumChannels
}

// String returns the channel's name
func (c Channel) String() string {
	if j, ok := c.Joint(); ok {
		return jointChannelPrefix + j.String()
	}
	if c.valid() {
		return bodyChannelNames[c]
	}
	return fmt.Sprintf("Channel(%d)", int(c))
}

// ChannelByName returns the channel with the given name
func ChannelByName(name string) (Channel, error) {
	for c := Channel(0); int(c) < NumChannels; c++ {
		if c.String() == name {
			return c, nil
		}
	}
	return 0, fmt.Errorf("channelByName: %w: %q", ErrUnknownChannel, name)
}

// Channels returns every defined channel in canonical order
func Channels() []Channel {
	channels := make([]Channel, NumChannels)
	for i := range channels {
		channels[i] = Channel(i)
	}
	return channels
}

// ChannelSpec describes the physical range of a single channel and
// the number of bin edges used to discretize it
type ChannelSpec struct {
	Channel
	Range r1.Interval
	Bins  int
}

// ObservationSpec is the ordered list of channels that make up an
// observation. Observations, bin tables, and discrete states all
// correspond to an ObservationSpec positionally.
type ObservationSpec struct {
	channels []ChannelSpec
}

// NewObservationSpec returns the ObservationSpec described by a
// Config. If the Config lists no observation names, all channels are
// used in canonical order.
func NewObservationSpec(c Config) (ObservationSpec, error) {
	if err := c.Validate(); err != nil {
		return ObservationSpec{}, fmt.Errorf("newObservationSpec: %w", err)
	}

	channels := Channels()
	if len(c.Observations) > 0 {
		channels = channels[:0]
		for _, name := range c.Observations {
			ch, err := ChannelByName(name)
			if err != nil {
				return ObservationSpec{}, fmt.Errorf("newObservationSpec: %w",
					err)
			}
			channels = append(channels, ch)
		}
	}

	specs := make([]ChannelSpec, len(channels))
	for i, ch := range channels {
		rng, err := c.channelRange(ch)
		if err != nil {
			return ObservationSpec{}, fmt.Errorf("newObservationSpec: %w", err)
		}
		if !(rng.Max > rng.Min) {
			return ObservationSpec{}, fmt.Errorf("newObservationSpec: %w: "+
				"channel %v has range [%v, %v]", ErrInvalidConfig, ch,
				rng.Min, rng.Max)
		}
		specs[i] = ChannelSpec{Channel: ch, Range: rng, Bins: c.Bins}
	}

	return ObservationSpec{specs}, nil
}

// Len returns the number of channels in the spec
func (o ObservationSpec) Len() int {
	return len(o.channels)
}

// At returns the ChannelSpec at position i
func (o ObservationSpec) At(i int) ChannelSpec {
	return o.channels[i]
}

// Names returns the channel names in spec order
func (o ObservationSpec) Names() []string {
	names := make([]string, len(o.channels))
	for i, c := range o.channels {
		names[i] = c.String()
	}
	return names
}

// Spec returns the continuous observation specification with each
// channel bounded by its configured range
func (o ObservationSpec) Spec() spec.Environment {
	n := len(o.channels)
	lower := mat.NewVecDense(n, nil)
	upper := mat.NewVecDense(n, nil)
	for i, c := range o.channels {
		lower.SetVec(i, c.Range.Min)
		upper.SetVec(i, c.Range.Max)
	}

	return spec.NewEnvironment(mat.NewVecDense(n, nil), spec.Observation,
		lower, upper, spec.Continuous)
}

// channelRange returns the configured physical range of a channel.
// Body channel ranges are derived from the safety bounds; joint
// channel ranges come from the joint range table.
func (c Config) channelRange(ch Channel) (r1.Interval, error) {
	if j, ok := ch.Joint(); ok {
		return c.jointRange(j), nil
	}

	switch ch {
	case DistanceFromDesiredPoint:
		// The allowed height band bounds how far the robot can be
		// from the goal
		delta := c.MaxHeight - c.MinHeight
		return r1.Interval{Min: -delta, Max: delta}, nil

	case BaseRoll:
		return r1.Interval{Min: -c.AbsMaxRoll, Max: c.AbsMaxRoll}, nil

	case BasePitch:
		return r1.Interval{Min: -c.AbsMaxPitch, Max: c.AbsMaxPitch}, nil

	case BaseYaw:
		return r1.Interval{Min: -2 * math.Pi, Max: 2 * math.Pi}, nil

	case ContactForceLeftLeg, ContactForceRightLeg:
		return r1.Interval{Min: 0, Max: 2 * c.DesiredForce}, nil
	}

	return r1.Interval{}, fmt.Errorf("channelRange: %w: %v",
		ErrUnknownChannel, ch)
}
