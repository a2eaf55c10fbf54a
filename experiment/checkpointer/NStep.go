package checkpointer

import (
	"fmt"

	ts "github.com/catbotrl/catbot/timestep"
)

// nStep implements checkpointing every N steps of an experiment.
// Steps are counted over the whole experiment rather than per episode.
type nStep struct {
	interval int
	steps    int
	object   Serializable // Object to save

	// filename returns the string filename of the file to save the object
	// in.
	//
	// If each checkpoint should be saved in a separate file with each
	// file having an incremented number as a suffix (e.g. file-1.bin,
	// file-2.bin, ..., file-K.bin), then use FilenameEnumerator.
	// Otherwise, if the filename does not matter, use FileTimer:
	//
	// n, err := NewNStep(10, object, FileTimer("filename", "bin"))
	//
	// To overwrite a single checkpoint file, return the same name on
	// every call.
	filename func() string
}

// NewNStep returns a checkpointer that checkpoints every n steps.
func NewNStep(n int, object Serializable,
	filename func() string) (Checkpointer, error) {
	if n <= 0 {
		return nil, fmt.Errorf("newNStep: interval must be positive, "+
			"got %v", n)
	}

	return &nStep{
		interval: n,
		object:   object,
		filename: filename,
	}, nil
}

// Checkpoint counts a step and saves the Checkpointer's tracked object
// on every n-th step
func (n *nStep) Checkpoint(t ts.TimeStep) error {
	n.steps++
	if n.steps%n.interval != 0 {
		return nil
	}

	if err := n.object.SaveAs(n.filename()); err != nil {
		return fmt.Errorf("checkpoint: step %v: %w", n.steps, err)
	}
	return nil
}
