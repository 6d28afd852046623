// Package agent defines an agent interface
package agent

import (
	"gonum.org/v1/gonum/mat"

	"github.com/smartroom/gohvac/timestep"
)

// Agent determines the implementation details of an agent or algorithm
//
// An Agent is composed of a Learner, which adapts the agent from
// experience, and a Policy, which chooses actions in each state. Fixed
// controllers implement the Learner methods as no-ops.
type Agent interface {
	Learner
	Policy
}

// Learner implements an algorithm that defines how an agent adapts
// from the transitions it experiences
type Learner interface {
	// Step performs a single update to the learner
	Step() error

	// Observe records that an action led to some timestep
	Observe(action mat.Vector, nextObs timestep.TimeStep) error

	// ObserveFirst records the first timestep in an episode
	ObserveFirst(timestep.TimeStep) error

	// EndEpisode performs cleanup at the end of an episode
	EndEpisode()
}

// Policy represents a policy that an agent can have.
//
// Policies determine how agents select actions. Policies should not
// adapt themselves; any adaptation goes through the agent's Learner.
type Policy interface {
	SelectAction(t timestep.TimeStep) *mat.VecDense
}
