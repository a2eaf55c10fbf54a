package trackers

import (
	"fmt"

	"github.com/catbotrl/catbot/experiment/tracker"
	"github.com/catbotrl/catbot/timestep"
)

// EpisodeLength tracks and saves the lengths of episodes in an
// experiment along with why each episode ended.
//
// Note that an episode must finish for this Tracker to save its data.
// If the last episode in an experiment does not finish, that episode's
// length will not be saved.
type EpisodeLength struct {
	episodeLengths []int
	falls          int
	filename       string
}

// NewEpisodeLength returns a new EpisodeLength Tracker which will save
// its data at the specified location filename
func NewEpisodeLength(filename string) *EpisodeLength {
	return &EpisodeLength{filename: filename}
}

// Track caches the episode length if the timestep passed to it is the
// last timestep in the episode
func (e *EpisodeLength) Track(t timestep.TimeStep) {
	if t.Last() {
		e.episodeLengths = append(e.episodeLengths, t.Number)
		if t.EndType() == timestep.TerminalStateReached {
			e.falls++
		}
	}
}

// Lengths returns the lengths of all finished episodes
func (e *EpisodeLength) Lengths() []int {
	return e.episodeLengths
}

// Falls returns the number of finished episodes that ended in a
// terminal state rather than a timeout
func (e *EpisodeLength) Falls() int {
	return e.falls
}

// Save saves the data tracked by the EpisodeLength Tracker to disk
func (e *EpisodeLength) Save() error {
	return e.SaveAs(e.filename)
}

// SaveAs saves the data tracked by the EpisodeLength Tracker to
// filename
func (e *EpisodeLength) SaveAs(filename string) error {
	if err := tracker.Save(filename, e.episodeLengths); err != nil {
		return fmt.Errorf("save: %w", err)
	}
	return nil
}
