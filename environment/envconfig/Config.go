// Package envconfig provides configuration structs for configuring
// environments with default parameters and tasks. Environment
// configurations in this package are JSON and YAML serializable.
package envconfig

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gonum.org/v1/gonum/spatial/r1"
	"gopkg.in/yaml.v3"

	env "github.com/catbotrl/catbot/environment"
	"github.com/catbotrl/catbot/environment/catbot"
	ts "github.com/catbotrl/catbot/timestep"
)

// EnvName stores the name of environments that can be configured with
// this package
type EnvName string

// Environments available for configuration
const (
	Catbot EnvName = "Catbot"
)

// TaskName stores the tasks that can be configured with this package
type TaskName string

// Tasks available for configuration
const (
	Stand TaskName = "Stand"
)

// GoalBox is the box from which goal points are sampled uniformly at
// the start of each episode. A degenerate range fixes that coordinate.
type GoalBox struct {
	X catbot.Range `json:"x" yaml:"x"`
	Y catbot.Range `json:"y" yaml:"y"`
	Z catbot.Range `json:"z" yaml:"z"`
}

func (g GoalBox) intervals() []r1.Interval {
	return []r1.Interval{
		{Min: g.X.Min, Max: g.X.Max},
		{Min: g.Y.Min, Max: g.Y.Max},
		{Min: g.Z.Min, Max: g.Z.Max},
	}
}

// Config implements a specific configuration of a specific environment
// and specific task
type Config struct {
	Environment   EnvName       `json:"environment" yaml:"environment"`
	Task          TaskName      `json:"task" yaml:"task"`
	EpisodeCutoff uint          `json:"episode_cutoff" yaml:"episode_cutoff"`
	Discount      float64       `json:"discount" yaml:"discount"`
	Goal          GoalBox       `json:"goal" yaml:"goal"`
	Catbot        catbot.Config `json:"catbot" yaml:"catbot"`
}

// Default returns the default environment Config: the Stand task with
// a fixed goal at the origin and episodes cut off after 1000 steps
func Default() Config {
	return Config{
		Environment:   Catbot,
		Task:          Stand,
		EpisodeCutoff: 1000,
		Discount:      0.99,
		Catbot:        catbot.DefaultConfig(),
	}
}

// Validate ensures that the Config is valid
func (c Config) Validate() error {
	if c.Environment != Catbot {
		return fmt.Errorf("validate: no such environment %q", c.Environment)
	}
	if c.Task != Stand {
		return fmt.Errorf("validate: %v environment has no task %q",
			c.Environment, c.Task)
	}
	if c.Discount < 0 || c.Discount > 1 {
		return fmt.Errorf("validate: discount %v not in [0, 1]", c.Discount)
	}
	for i, b := range c.Goal.intervals() {
		if b.Max < b.Min {
			return fmt.Errorf("validate: goal dimension %d has max %v < "+
				"min %v", i, b.Max, b.Min)
		}
	}
	return c.Catbot.Validate()
}

// Load reads a Config from a JSON or YAML file, chosen by the file
// extension. Fields missing from the file keep their default values.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("load: %w", err)
	}

	c := Default()
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		err = json.Unmarshal(data, &c)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &c)
	default:
		return Config{}, fmt.Errorf("load: unknown config format %q", ext)
	}
	if err != nil {
		return Config{}, fmt.Errorf("load: %v: %w", path, err)
	}

	if err := c.Validate(); err != nil {
		return Config{}, fmt.Errorf("load: %v: %w", path, err)
	}
	return c, nil
}

// Save writes the Config to a JSON or YAML file, chosen by the file
// extension
func (c Config) Save(path string) error {
	var data []byte
	var err error
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		data, err = json.MarshalIndent(c, "", "  ")
	case ".yaml", ".yml":
		data, err = yaml.Marshal(c)
	default:
		return fmt.Errorf("save: unknown config format %q", ext)
	}
	if err != nil {
		return fmt.Errorf("save: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("save: %w", err)
	}
	return nil
}

// Create returns the environment described by the Config as well as
// the first timestep of the environment. The environment reads the
// robot's state from sensors and sends joint targets to actuator.
func (c Config) Create(seed uint64, sensors *catbot.Sensors,
	actuator catbot.Actuator) (*catbot.Catbot, ts.TimeStep, error) {
	if err := c.Validate(); err != nil {
		return nil, ts.TimeStep{}, fmt.Errorf("create: %w", err)
	}

	task, err := CreateStand(c.Goal, int(c.EpisodeCutoff), seed, c.Catbot)
	if err != nil {
		return nil, ts.TimeStep{}, fmt.Errorf("create: %w", err)
	}

	cb, step, err := catbot.New(task, sensors, actuator, c.Catbot,
		c.Discount)
	if err != nil {
		return nil, ts.TimeStep{}, fmt.Errorf("create: %w", err)
	}
	return cb, step, nil
}

// CreateStand is a factory for creating the Stand task with goals
// sampled uniformly from a box
func CreateStand(goal GoalBox, cutoff int, seed uint64,
	c catbot.Config) (*catbot.Stand, error) {
	s, err := env.NewUniformStarter(goal.intervals(), seed)
	if err != nil {
		return nil, fmt.Errorf("createStand: %w", err)
	}
	return catbot.NewStand(s, cutoff, c)
}
