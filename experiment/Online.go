package experiment

import (
	"errors"
	"fmt"

	"github.com/catbotrl/catbot/agent"
	env "github.com/catbotrl/catbot/environment"
	"github.com/catbotrl/catbot/experiment/checkpointer"
	"github.com/catbotrl/catbot/experiment/tracker"
	ts "github.com/catbotrl/catbot/timestep"
)

// Online is an Experiment that runs an agent online only. No offline
// evaluation is performed.
type Online struct {
	environment   env.Environment
	agent         agent.Agent
	maxSteps      uint
	currentSteps  uint
	episodes      int
	trackers      []tracker.Tracker
	checkpointers []checkpointer.Checkpointer
	progress      Progress
}

// NewOnline creates and returns a new online experiment on a given
// environment with a given agent. The steps parameter determines how
// many timesteps the experiment is run for, the t parameter determines
// what data is tracked and the c parameter determines what is
// checkpointed while the experiment runs.
//
// The first episode starts from the environment's current timestep if
// that is a first timestep. Otherwise the environment is reset.
func NewOnline(e env.Environment, a agent.Agent, steps uint,
	t []tracker.Tracker, c []checkpointer.Checkpointer) *Online {
	return &Online{
		environment:   e,
		agent:         a,
		maxSteps:      steps,
		trackers:      t,
		checkpointers: c,
	}
}

// Register adds a tracker.Tracker to the experiment so that data
// generated during the experiment can be tracked and saved
func (o *Online) Register(t tracker.Tracker) {
	o.trackers = append(o.trackers, t)
}

// SetProgress sets the Progress which is incremented on each step of
// the experiment
func (o *Online) SetProgress(p Progress) {
	o.progress = p
}

// Steps returns the number of steps taken so far
func (o *Online) Steps() uint {
	return o.currentSteps
}

// Episodes returns the number of episodes started so far
func (o *Online) Episodes() int {
	return o.episodes
}

// start returns the first timestep of the next episode
func (o *Online) start() (ts.TimeStep, error) {
	if o.episodes == 0 {
		if step := o.environment.LastTimeStep(); step.First() {
			return step, nil
		}
	}
	return o.environment.Reset()
}

// RunEpisode runs a single episode of the experiment and returns
// whether the maximum number of steps has been reached
func (o *Online) RunEpisode() (bool, error) {
	step, err := o.start()
	if err != nil {
		return false, fmt.Errorf("runEpisode: %w", err)
	}
	o.episodes++

	if err := o.agent.ObserveFirst(step); err != nil {
		return false, fmt.Errorf("runEpisode: %w", err)
	}
	if err := o.track(step); err != nil {
		return false, fmt.Errorf("runEpisode: %w", err)
	}

	// Run the next timestep
	for !step.Last() && o.currentSteps < o.maxSteps {
		o.currentSteps++

		// Select action, step in environment
		action := o.agent.SelectAction(step)
		step, _, err = o.environment.Step(action)
		if err != nil {
			return false, fmt.Errorf("runEpisode: step %v: %w",
				o.currentSteps, err)
		}

		// Cache the environment step in each Tracker
		if err := o.track(step); err != nil {
			return false, fmt.Errorf("runEpisode: %w", err)
		}

		// Observe the timestep and step the agent
		if err := o.agent.Observe(action, step); err != nil {
			return false, fmt.Errorf("runEpisode: %w", err)
		}
		if err := o.agent.Step(); err != nil {
			return false, fmt.Errorf("runEpisode: %w", err)
		}

		if o.progress != nil {
			o.progress.Increment()
		}
	}

	if step.Last() {
		o.agent.EndEpisode()
	}
	if o.progress != nil {
		o.progress.Display()
	}

	// Return whether or not the max timestep limit has been reached
	return o.currentSteps >= o.maxSteps, nil
}

// Run runs the entire experiment for all timesteps
func (o *Online) Run() error {
	for {
		ended, err := o.RunEpisode()
		if err != nil {
			return fmt.Errorf("run: %w", err)
		}
		if ended {
			return nil
		}
	}
}

// Save saves all the data cached by the Trackers to disk. Every
// Tracker is saved even if some fail.
func (o *Online) Save() error {
	var errs []error
	for _, t := range o.trackers {
		if err := t.Save(); err != nil {
			errs = append(errs, err)
		}
	}

	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("save: %w", err)
	}
	return nil
}

// track tracks the current timestep in each tracker and checkpoints it
func (o *Online) track(t ts.TimeStep) error {
	for _, tr := range o.trackers {
		tr.Track(t)
	}
	for _, c := range o.checkpointers {
		if err := c.Checkpoint(t); err != nil {
			return err
		}
	}
	return nil
}
