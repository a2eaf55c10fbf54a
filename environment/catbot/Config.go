package catbot

import (
	"fmt"

	"gonum.org/v1/gonum/spatial/r1"
)

// Default configuration values. The desired contact force is the peak
// force measured when the robot is dropped onto a foot from about 5cm.
const (
	DefaultMaxHeight      float64 = 3.0
	DefaultMinHeight      float64 = 0.6
	DefaultAbsMaxRoll     float64 = 0.7
	DefaultAbsMaxPitch    float64 = 0.7
	DefaultJointIncrement float64 = 0.05
	DefaultDoneReward     float64 = -1000.0
	DefaultAliveReward    float64 = 10.0
	DefaultDesiredForce   float64 = 7.08
	DefaultDesiredYaw     float64 = 0.0
	DefaultWeight         float64 = 1.0
	DefaultBins           int     = 10
)

// defaultJointRanges are the joint position ranges (radians) used to
// discretize joint channels. Some are asymmetric or one-sided because
// they follow the robot's mechanical limits.
var defaultJointRanges = [NumJoints]r1.Interval{
	BumZLJ:      {Min: -0.354, Max: 0.354},
	BumXLJ:      {Min: -0.345, Max: 1},
	BumYLJ:      {Min: 0, Max: 1},
	KneeLeft:    {Min: -1.3, Max: 0},
	AnkleLJ:     {Min: -1.3, Max: 0.3},
	FootLJ:      {Min: -0.4, Max: 0.7},
	BumZRJ:      {Min: -0.345, Max: 0.345},
	BumXRJ:      {Min: -1, Max: 0.345},
	BumYRJ:      {Min: 0, Max: 1},
	KneeRight:   {Min: -1.3, Max: 0},
	AnkleRJ:     {Min: -1.3, Max: 0.3},
	FootRJ:      {Min: -0.4, Max: 0.7},
	ShoulderZLJ: {Min: -1.65, Max: 0.1},
	ShoulderXLJ: {Min: -0.1, Max: 1.6},
	ShoulderYLJ: {Min: -3, Max: 0},
	ForearmYLJ:  {Min: -1.6, Max: 0},
	ShoulderZRJ: {Min: -0.345, Max: 1.65},
	ShoulderXRJ: {Min: -0.1, Max: 1.6},
	ShoulderYRJ: {Min: 0, Max: 3},
	ForearmYRJ:  {Min: -1.6, Max: 0},
}

// Range is a closed interval of physical values. It is serializable,
// unlike r1.Interval.
type Range struct {
	Min float64 `json:"min" yaml:"min"`
	Max float64 `json:"max" yaml:"max"`
}

// Weights holds the weight of each reward penalty term. The contact
// force weight applies to each foot separately.
type Weights struct {
	JointPosition float64 `json:"joint_position" yaml:"joint_position"`
	JointEffort   float64 `json:"joint_effort" yaml:"joint_effort"`
	ContactForce  float64 `json:"contact_force" yaml:"contact_force"`
	Orientation   float64 `json:"orientation" yaml:"orientation"`
	Distance      float64 `json:"distance" yaml:"distance"`
}

// Config configures the Catbot environment. Configs are JSON and YAML
// serializable. A Config should not be changed once an environment
// has been constructed from it.
type Config struct {
	// Safety bounds. The robot has fallen when the absolute height of
	// its base leaves [MinHeight, MaxHeight) or when the absolute roll
	// or pitch reach their maximums.
	MaxHeight   float64 `json:"max_height" yaml:"max_height"`
	MinHeight   float64 `json:"min_height" yaml:"min_height"`
	AbsMaxRoll  float64 `json:"abs_max_roll" yaml:"abs_max_roll"`
	AbsMaxPitch float64 `json:"abs_max_pitch" yaml:"abs_max_pitch"`

	// JointIncrement is the joint position change caused by an action
	JointIncrement float64 `json:"joint_increment_value" yaml:"joint_increment_value"`

	DoneReward   float64 `json:"done_reward" yaml:"done_reward"`
	AliveReward  float64 `json:"alive_reward" yaml:"alive_reward"`
	DesiredForce float64 `json:"desired_force" yaml:"desired_force"`
	DesiredYaw   float64 `json:"desired_yaw" yaml:"desired_yaw"`
	Weights      Weights `json:"weights" yaml:"weights"`

	// Bins is the number of bin edges per channel
	Bins int `json:"discrete_division" yaml:"discrete_division"`

	// Observations optionally selects and orders observation channels
	// by name. If empty, all channels are observed in canonical order.
	Observations []string `json:"observations,omitempty" yaml:"observations,omitempty"`

	// JointRanges overrides the default range of joint channels,
	// keyed by joint name
	JointRanges map[string]Range `json:"joint_ranges,omitempty" yaml:"joint_ranges,omitempty"`
}

// DefaultConfig returns the default Catbot configuration
func DefaultConfig() Config {
	return Config{
		MaxHeight:      DefaultMaxHeight,
		MinHeight:      DefaultMinHeight,
		AbsMaxRoll:     DefaultAbsMaxRoll,
		AbsMaxPitch:    DefaultAbsMaxPitch,
		JointIncrement: DefaultJointIncrement,
		DoneReward:     DefaultDoneReward,
		AliveReward:    DefaultAliveReward,
		DesiredForce:   DefaultDesiredForce,
		DesiredYaw:     DefaultDesiredYaw,
		Weights: Weights{
			JointPosition: DefaultWeight,
			JointEffort:   DefaultWeight,
			ContactForce:  DefaultWeight,
			Orientation:   DefaultWeight,
			Distance:      DefaultWeight,
		},
		Bins: DefaultBins,
	}
}

// Validate ensures that the Config is valid
func (c Config) Validate() error {
	if c.Bins < 2 {
		return fmt.Errorf("validate: %w: need at least 2 bins, have %d",
			ErrInvalidConfig, c.Bins)
	}
	if !(c.MaxHeight > c.MinHeight) {
		return fmt.Errorf("validate: %w: max height %v must exceed min "+
			"height %v", ErrInvalidConfig, c.MaxHeight, c.MinHeight)
	}
	if !(c.AbsMaxRoll > 0) || !(c.AbsMaxPitch > 0) {
		return fmt.Errorf("validate: %w: roll and pitch bounds must be "+
			"positive, have (%v, %v)", ErrInvalidConfig, c.AbsMaxRoll,
			c.AbsMaxPitch)
	}
	if !(c.DesiredForce > 0) {
		return fmt.Errorf("validate: %w: desired force must be positive, "+
			"have %v", ErrInvalidConfig, c.DesiredForce)
	}
	if !(c.JointIncrement > 0) {
		return fmt.Errorf("validate: %w: joint increment must be "+
			"positive, have %v", ErrInvalidConfig, c.JointIncrement)
	}

	for name, rng := range c.JointRanges {
		if _, err := JointByName(name); err != nil {
			return fmt.Errorf("validate: %w: %v", ErrInvalidConfig, err)
		}
		if !(rng.Max > rng.Min) {
			return fmt.Errorf("validate: %w: joint %v has range [%v, %v]",
				ErrInvalidConfig, name, rng.Min, rng.Max)
		}
	}
	return nil
}

// jointRange returns the range of joint j's channel
func (c Config) jointRange(j Joint) r1.Interval {
	if rng, ok := c.JointRanges[j.String()]; ok {
		return r1.Interval{Min: rng.Min, Max: rng.Max}
	}
	return defaultJointRanges[j]
}

// bounds returns the safety bounds of the Config
func (c Config) bounds() Bounds {
	return Bounds{
		MinHeight:   c.MinHeight,
		MaxHeight:   c.MaxHeight,
		AbsMaxRoll:  c.AbsMaxRoll,
		AbsMaxPitch: c.AbsMaxPitch,
	}
}
