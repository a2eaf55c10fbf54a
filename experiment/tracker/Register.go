package tracker

import (
	"github.com/catbotrl/catbot/environment"
	"github.com/catbotrl/catbot/timestep"
)

// registeredTracker registers an Environment with some Tracker so
// that the Tracker tracks data from the registered Environment only.
// registeredTracker itself is a Tracker.
//
// This is useful when an experiment runs on an Environment wrapper but
// the data of the wrapped Environment is needed. For example, if an
// experiment is run on an AverageReward wrapper around the Catbot, a
// Return Tracker registered with the Catbot tracks the shaped return
// instead of the differential return of episodes.
type registeredTracker struct {
	Tracker
	env environment.Environment
}

// Register registers a Tracker with an Environment, to track data
// from the registered Environment only. Register returns a copy of the
// argument Tracker that is registered with the argument Environment.
//
// Note: the underlying concrete type of the registered Tracker is
// lost when registering an Environment with a Tracker.
func Register(t Tracker, env environment.Environment) Tracker {
	return &registeredTracker{t, env}
}

// Track calls Track() on the embedded Tracker using the most recent
// TimeStep from the registered Environment. The TimeStep argument is
// ignored.
func (r *registeredTracker) Track(timestep.TimeStep) {
	r.Tracker.Track(r.env.LastTimeStep())
}
