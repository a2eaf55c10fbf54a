// Package experiment implements functionality for running an experiment
package experiment

import (
	"fmt"

	"github.com/catbotrl/catbot/agent/random"
	"github.com/catbotrl/catbot/environment/catbot"
	"github.com/catbotrl/catbot/environment/envconfig"
	"github.com/catbotrl/catbot/experiment/checkpointer"
	"github.com/catbotrl/catbot/experiment/tracker"
)

// Interface Experiment outlines structs that can run experiments.
// Experiments track environment TimeSteps, caching each TimeStep's
// data in RAM to be later saved to disk. The Save() function
// will then take all cached data and save it to disk. This is usually
// performed after an experiment has been run. The Run() method will
// run all episodes until the maximum timestep limit is reached, or some
// error occurs. The RunEpisode() function will run a single episode.
//
// In order to save data, Experiments use Trackers. Trackers determine
// which data generated during the experiment is saved. Experiments
// send each TimeStep to Trackers using the Tracker's Track() method.
// New Trackers can be registered with an Experiment through the
// constructor or through an Experiment's Register() function.
type Experiment interface {
	Run() error

	// RunEpisode returns whether the experiment's step limit was reached
	RunEpisode() (bool, error)

	// Save all tracked data to disk
	Save() error

	// Adds a new tracker.Tracker to the (possibly already running)
	// experiment. Useful if you want to track data only after a
	// specified event.
	Register(t tracker.Tracker)

	// SetProgress sets the Progress reported to on each step
	SetProgress(p Progress)
}

// Progress reports the progress of an experiment. Increment is called
// after each step and Display after each episode.
// *progressbar.ProgressBar is a Progress.
type Progress interface {
	Increment()
	Display()
}

// Type names an experiment type
type Type string

const (
	OnlineExp Type = "OnlineExperiment"
)

// Config represents a configuration of an experiment
type Config struct {
	Type      Type             `json:"type" yaml:"type"`
	MaxSteps  uint             `json:"max_steps" yaml:"max_steps"`
	EnvConf   envconfig.Config `json:"environment" yaml:"environment"`
	AgentConf random.Config    `json:"agent" yaml:"agent"`
}

// Validate returns an error describing whether or not the
// configuration is valid
func (c Config) Validate() error {
	if c.Type != OnlineExp {
		return fmt.Errorf("validate: no such experiment type %q", c.Type)
	}
	if c.MaxSteps == 0 {
		return fmt.Errorf("validate: experiment must run for at least " +
			"one step")
	}
	if err := c.EnvConf.Validate(); err != nil {
		return fmt.Errorf("validate: %w", err)
	}
	if err := c.AgentConf.Validate(); err != nil {
		return fmt.Errorf("validate: %w", err)
	}
	return nil
}

// CreateExp creates the experiment that the Config describes. The
// environment reads the robot's state from sensors and commands joint
// targets through actuator. The created environment is returned so
// that Trackers can be registered with it.
func (c Config) CreateExp(seed uint64, sensors *catbot.Sensors,
	actuator catbot.Actuator, t []tracker.Tracker,
	check []checkpointer.Checkpointer) (Experiment, *catbot.Catbot, error) {
	if err := c.Validate(); err != nil {
		return nil, nil, fmt.Errorf("createExp: %w", err)
	}

	env, _, err := c.EnvConf.Create(seed, sensors, actuator)
	if err != nil {
		return nil, nil, fmt.Errorf("createExp: could not create "+
			"environment: %w", err)
	}

	agent, err := c.AgentConf.CreateAgent(env, seed)
	if err != nil {
		return nil, nil, fmt.Errorf("createExp: could not create agent: %w",
			err)
	}

	switch c.Type {
	case OnlineExp:
		return NewOnline(env, agent, c.MaxSteps, t, check), env, nil
	}

	return nil, nil, fmt.Errorf("createExp: no such experiment type %v",
		c.Type)
}
