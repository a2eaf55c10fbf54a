package catbot

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r3"
)

// Observation holds one physical value per channel of an
// ObservationSpec, in spec order
type Observation []float64

// Vec returns a copy of the observation as a vector
func (o Observation) Vec() *mat.VecDense {
	data := make([]float64, len(o))
	copy(data, o)
	return mat.NewVecDense(len(data), data)
}

// features caches quantities derived from a Snapshot that more than
// one channel needs
type features struct {
	snap             *Snapshot
	goal             r3.Vec
	roll, pitch, yaw float64
}

func newFeatures(s *Snapshot, goal r3.Vec) *features {
	f := &features{snap: s, goal: goal}
	f.roll, f.pitch, f.yaw = s.RPY()
	return f
}

// bodyHandlers computes each non-joint channel, indexed by channel
var bodyHandlers = [firstJointChannel]func(*features) float64{
	DistanceFromDesiredPoint: func(f *features) float64 {
		return f.snap.DistanceTo(f.goal)
	},
	BaseRoll:  func(f *features) float64 { return f.roll },
	BasePitch: func(f *features) float64 { return f.pitch },
	BaseYaw:   func(f *features) float64 { return f.yaw },
	ContactForceLeftLeg: func(f *features) float64 {
		return f.snap.LeftContactMagnitude()
	},
	ContactForceRightLeg: func(f *features) float64 {
		return f.snap.RightContactMagnitude()
	},
}

// channelValue computes the value of a single channel
func channelValue(c Channel, f *features) (float64, error) {
	if j, ok := c.Joint(); ok {
		return f.snap.JointPositions[j], nil
	}
	if c < 0 || c >= firstJointChannel || bodyHandlers[c] == nil {
		return 0, fmt.Errorf("channelValue: %w: %v", ErrUnknownChannel, c)
	}
	return bodyHandlers[c](f), nil
}

// Assemble computes the observation of a Snapshot given the goal
// point, with one value per channel of o in spec order
func Assemble(o ObservationSpec, s Snapshot, goal r3.Vec) (Observation,
	error) {
	f := newFeatures(&s, goal)

	obs := make(Observation, o.Len())
	for i := range obs {
		v, err := channelValue(o.At(i).Channel, f)
		if err != nil {
			return nil, fmt.Errorf("assemble: %w", err)
		}
		obs[i] = v
	}
	return obs, nil
}
