// Package experiment implements functionality for running an experiment
package experiment

import (
	"fmt"

	"github.com/smartroom/gohvac/agent"
	"github.com/smartroom/gohvac/environment/envconfig"
	"github.com/smartroom/gohvac/experiment/tracker"
	ts "github.com/smartroom/gohvac/timestep"
)

// Interface Experiment outlines structs that can run experiments.
// Experiments track environment TimeSteps, caching data from each
// TimeStep in RAM to be later saved to disk by the Save() function.
// The Run() method runs episodes until the maximum timestep limit is
// reached, and the RunEpisode() function runs a single episode.
//
// In order to save data, Experiments use Trackers. Trackers determine
// which data generated during the experiment is saved. Experiments
// send each TimeStep to Trackers using the Tracker's Track() method.
// New Trackers can be registered with an Experiment through the
// constructor or through an Experiment's Register() function.
type Experiment interface {
	Run()
	RunEpisode() bool // Returns whether or not the experiment finished

	// Tracks current timestep by sending it to Trackers
	track(ts.TimeStep)

	// Save all tracked data to disk
	Save()

	// Register adds a new tracker.Tracker to the (possibly already
	// running) experiment
	Register(t tracker.Tracker)
}

// Type determines the type of an experiment
type Type string

const (
	OnlineExp Type = "OnlineExperiment"
)

// Config represents a configuration of an experiment
type Config struct {
	Type
	MaxSteps    uint
	EnvConfig   envconfig.Config
	AgentConfig agent.Config
}

// CreateExp creates the experiment described by the Config
func (c Config) CreateExp(seed uint64, t []tracker.Tracker) Experiment {
	env, _ := c.EnvConfig.Create(seed)
	a, err := c.AgentConfig.CreateAgent(env, seed)
	if err != nil {
		panic(fmt.Sprintf("createExp: could not create agent: %v", err))
	}

	switch c.Type {
	case OnlineExp:
		return NewOnline(env, a, c.MaxSteps, t...)
	}

	panic(fmt.Sprintf("createExp: no such experiment type %v", c.Type))
}
