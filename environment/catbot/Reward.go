package catbot

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/spatial/r3"
)

// RewardTerms holds the weighted penalty terms of a shaped reward.
// Every term is non-negative when its weight is.
type RewardTerms struct {
	JointPosition     float64
	JointEffort       float64
	LeftContactForce  float64
	RightContactForce float64
	Orientation       float64
	Distance          float64
}

// Penalty returns the sum of all terms
func (r RewardTerms) Penalty() float64 {
	return r.JointPosition + r.JointEffort + r.LeftContactForce +
		r.RightContactForce + r.Orientation + r.Distance
}

// String returns a string representation of the terms
func (r RewardTerms) String() string {
	return fmt.Sprintf("Joint Position: %.4f | Joint Effort: %.4f | "+
		"Contact Force: (%.4f, %.4f) | Orientation: %.4f | "+
		"Distance: %.4f", r.JointPosition, r.JointEffort,
		r.LeftContactForce, r.RightContactForce, r.Orientation, r.Distance)
}

// RewardEngine computes the shaped reward of a Snapshot: a flat alive
// bonus minus weighted penalties for joint displacement, joint effort,
// contact force deviation on each foot, orientation deviation, and
// distance from the goal.
type RewardEngine struct {
	weights      Weights
	alive        float64
	desiredForce float64
	desiredYaw   float64
}

// NewRewardEngine returns a new RewardEngine configured by c
func NewRewardEngine(c Config) *RewardEngine {
	return &RewardEngine{
		weights:      c.Weights,
		alive:        c.AliveReward,
		desiredForce: c.DesiredForce,
		desiredYaw:   c.DesiredYaw,
	}
}

// Terms returns the weighted penalty terms of the Snapshot
func (r *RewardEngine) Terms(s Snapshot, goal r3.Vec) RewardTerms {
	roll, pitch, yaw := s.RPY()
	w := r.weights

	return RewardTerms{
		JointPosition: w.JointPosition * floats.Norm(s.JointPositions[:], 1),
		JointEffort:   w.JointEffort * floats.Norm(s.JointEfforts[:], 1),
		LeftContactForce: w.ContactForce *
			math.Abs(s.LeftContactMagnitude()-r.desiredForce),
		RightContactForce: w.ContactForce *
			math.Abs(s.RightContactMagnitude()-r.desiredForce),
		Orientation: w.Orientation *
			(math.Abs(roll) + math.Abs(pitch) + math.Abs(yaw-r.desiredYaw)),
		Distance: w.Distance * s.DistanceTo(goal),
	}
}

// Reward returns the shaped reward of the Snapshot
func (r *RewardEngine) Reward(s Snapshot, goal r3.Vec) float64 {
	return r.alive - r.Terms(s, goal).Penalty()
}

// Max returns the largest shaped reward possible. With non-negative
// weights this is the alive bonus.
func (r *RewardEngine) Max() float64 {
	w := r.weights
	for _, weight := range []float64{w.JointPosition, w.JointEffort,
		w.ContactForce, w.Orientation, w.Distance} {
		if weight < 0 {
			return math.Inf(1)
		}
	}
	return r.alive
}
