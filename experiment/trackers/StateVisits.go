package trackers

import (
	"fmt"
	"sort"

	"github.com/catbotrl/catbot/experiment/tracker"
	"github.com/catbotrl/catbot/timestep"
)

// StateVisits counts how often each discrete state is visited, keyed
// by the timestep state key. Visit counts show how much of the
// discrete state space a policy explores.
type StateVisits struct {
	visits   map[string]int
	filename string
}

// NewStateVisits returns a new StateVisits Tracker which will save its
// data at the specified location filename
func NewStateVisits(filename string) *StateVisits {
	return &StateVisits{visits: make(map[string]int), filename: filename}
}

// Track counts a visit to the state of the timestep
func (s *StateVisits) Track(t timestep.TimeStep) {
	s.visits[t.StateKey]++
}

// Visits returns the number of visits to the state with key
func (s *StateVisits) Visits(key string) int {
	return s.visits[key]
}

// Distinct returns the number of distinct states visited
func (s *StateVisits) Distinct() int {
	return len(s.visits)
}

// StateCount is the number of visits to a single state
type StateCount struct {
	Key    string
	Visits int
}

// MostVisited returns the n most visited states in decreasing order of
// visits. Ties are broken by key.
func (s *StateVisits) MostVisited(n int) []StateCount {
	counts := make([]StateCount, 0, len(s.visits))
	for k, v := range s.visits {
		counts = append(counts, StateCount{k, v})
	}

	sort.Slice(counts, func(i, j int) bool {
		if counts[i].Visits != counts[j].Visits {
			return counts[i].Visits > counts[j].Visits
		}
		return counts[i].Key < counts[j].Key
	})

	if n < len(counts) {
		counts = counts[:n]
	}
	return counts
}

// Save saves the data tracked by the StateVisits Tracker to disk
func (s *StateVisits) Save() error {
	return s.SaveAs(s.filename)
}

// SaveAs saves the data tracked by the StateVisits Tracker to filename
func (s *StateVisits) SaveAs(filename string) error {
	if err := tracker.Save(filename, s.visits); err != nil {
		return fmt.Errorf("save: %w", err)
	}
	return nil
}
