package catbot

import (
	"fmt"
)

// NumActions is the number of discrete actions, one per joint and
// direction
const NumActions int = 2 * NumJoints

// Action moves a single joint by one increment in the direction of
// Sign, which is either +1 or -1
type Action struct {
	Joint
	Sign float64
}

func (a Action) String() string {
	if a.Sign > 0 {
		return a.Joint.String() + "+"
	}
	return a.Joint.String() + "-"
}

// actionTable maps action 2k to joint k moving forward and action
// 2k+1 to joint k moving backward
var actionTable = func() [NumActions]Action {
	var table [NumActions]Action
	for _, j := range Joints() {
		table[2*int(j)] = Action{Joint: j, Sign: 1}
		table[2*int(j)+1] = Action{Joint: j, Sign: -1}
	}
	return table
}()

// ActionFor returns the Action with the given id
func ActionFor(id int) (Action, error) {
	if id < 0 || id >= NumActions {
		return Action{}, fmt.Errorf("actionFor: %w: id %d not in [0, %d)",
			ErrInvalidAction, id, NumActions)
	}
	return actionTable[id], nil
}

// ActionDecoder converts action ids into joint position targets
type ActionDecoder struct {
	step float64
}

// NewActionDecoder returns a new ActionDecoder which moves joints by
// step per action
func NewActionDecoder(step float64) *ActionDecoder {
	return &ActionDecoder{step}
}

// Step returns the joint increment of each action
func (a *ActionDecoder) Step() float64 {
	return a.step
}

// Decode returns the joint targets reached by taking action id from
// the given joint positions. The positions are not modified. Targets
// are not clamped to the joints' mechanical limits.
func (a *ActionDecoder) Decode(id int, positions []float64) ([]float64,
	error) {
	action, err := ActionFor(id)
	if err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	if len(positions) != NumJoints {
		return nil, fmt.Errorf("decode: %w: have(%d) want(%d)",
			ErrJointCount, len(positions), NumJoints)
	}

	targets := make([]float64, NumJoints)
	copy(targets, positions)
	targets[action.Joint] += action.Sign * a.step
	return targets, nil
}
