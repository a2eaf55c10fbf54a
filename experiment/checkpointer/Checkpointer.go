// Package checkpointer implements Checkpointers, which periodically
// save snapshots of experiment data while an experiment runs
package checkpointer

import (
	ts "github.com/catbotrl/catbot/timestep"
)

// Serializable is an object that can save itself to a named file.
// All Trackers in the trackers package are Serializable.
type Serializable interface {
	SaveAs(filename string) error
}

// Checkpointer checkpoints/saves serializable objects based on
// timestep.TimeSteps
type Checkpointer interface {
	Checkpoint(ts.TimeStep) error
}
