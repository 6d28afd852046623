// Package envconfig provides configuration structs for configuring
// environments with default physical parameters and tasks. Environment
// configurations in this package are JSON serializable.
package envconfig

import (
	"fmt"

	"gonum.org/v1/gonum/spatial/r1"

	env "github.com/smartroom/gohvac/environment"
	"github.com/smartroom/gohvac/environment/smartroom"
	ts "github.com/smartroom/gohvac/timestep"
)

// EnvName stores the name of environments that can be configured with
// this package
type EnvName string

// Environments available for configuration
const (
	SmartRoom EnvName = "SmartRoom"
)

// TaskName stores the tasks that can be configured with this package
type TaskName string

// Tasks available for configuration
const (
	Comfort TaskName = "Comfort"
)

// ClimateName stores the climates that the SmartRoom environment can
// be configured with
type ClimateName string

// Climates available for configuration
const (
	Hot  ClimateName = "Hot"
	Cool ClimateName = "Cool"
)

// Config implements a specific configuration of a specific environment
// and specific task
type Config struct {
	Environment   EnvName
	Task          TaskName
	Climate       ClimateName
	EpisodeCutoff uint
	Discount      float64
}

// NewConfig returns a new environment Config
func NewConfig(envName EnvName, taskName TaskName, climate ClimateName,
	episodeCutoff uint, discount float64) Config {
	return Config{
		Environment:   envName,
		Task:          taskName,
		Climate:       climate,
		EpisodeCutoff: episodeCutoff,
		Discount:      discount,
	}
}

// Create returns the environment described by the Config as well as
// the first timestep of the environment
func (c Config) Create(seed uint64) (env.Environment, ts.TimeStep) {
	switch c.Environment {
	case SmartRoom:
		return CreateSmartRoom(c.Task, c.Climate, int(c.EpisodeCutoff),
			seed, c.Discount)
	}

	panic(fmt.Sprintf("create: cannot create environment %v, no such "+
		"environment", c.Environment))
}

// CreateSmartRoom is a factory for creating the SmartRoom environment
// with default physical parameters and default task parameters. The
// starting indoor air temperature and CO2 concentration are drawn
// uniformly from fixed intervals.
func CreateSmartRoom(taskName TaskName, climateName ClimateName, cutoff int,
	seed uint64, discount float64) (env.Environment, ts.TimeStep) {
	airTemp := r1.Interval{Min: 17.0, Max: 28.0}
	co2 := r1.Interval{Min: smartroom.AmbientCO2, Max: 900.0}

	s := env.NewUniformStarter([]r1.Interval{airTemp, co2}, seed)

	var task env.Task
	switch taskName {
	case Comfort:
		task = smartroom.NewComfort(s, cutoff)

	default:
		panic(fmt.Sprintf("createSmartRoom: SmartRoom environment has "+
			"no task %v", taskName))
	}

	var climate smartroom.Climate
	switch climateName {
	case Hot:
		climate = smartroom.HotClimate()

	case Cool:
		climate = smartroom.CoolClimate()

	default:
		panic(fmt.Sprintf("createSmartRoom: SmartRoom environment has "+
			"no climate %v", climateName))
	}

	return smartroom.NewDiscrete(task, climate, discount, seed)
}
