package smartroom

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	env "github.com/smartroom/gohvac/environment"
	ts "github.com/smartroom/gohvac/timestep"
)

// Discrete implements the discrete-action smart room environment.
//
// State features are the 15 observation features indexed by the
// constants in this package. Actions are 1-dimensional and discrete in
// [MinDiscreteAction, MaxDiscreteAction]. Each action is an index into
// the actuator table and decodes to a (heating setpoint, cooling
// setpoint, HVAC fan flag, window-fan speed) tuple; see Actions().
// Actions outside the legal range result in a panic.
//
// Discrete implements the environment.Environment interface.
type Discrete struct {
	*base
}

// NewDiscrete creates a new discrete-action smart room environment
// with the argument task and climate
func NewDiscrete(t env.Task, climate Climate, discount float64,
	seed uint64) (*Discrete, ts.TimeStep) {
	baseEnv, firstStep := newBase(t, climate, discount, seed)

	return &Discrete{baseEnv}, firstStep
}

// ActionSpec returns the action specification of the environment
func (d *Discrete) ActionSpec() env.Spec {
	shape := mat.NewVecDense(ActionDims, nil)
	lowerBound := mat.NewVecDense(ActionDims,
		[]float64{float64(MinDiscreteAction)})
	upperBound := mat.NewVecDense(ActionDims,
		[]float64{float64(MaxDiscreteAction)})

	return env.NewSpec(shape, env.Action, lowerBound, upperBound,
		env.Discrete)
}

// Step takes one environmental step given action a and returns the
// next timestep and a bool indicating whether or not the episode has
// ended. Legal actions are discrete indices in [MinDiscreteAction,
// MaxDiscreteAction]. Actions outside this range cause a panic.
func (d *Discrete) Step(a *mat.VecDense) (ts.TimeStep, bool) {
	if a.Len() != ActionDims {
		panic(fmt.Sprintf("step: actions should be %v-dimensional",
			ActionDims))
	}

	action := int(a.AtVec(0))

	// Actuators panics on illegal actions
	heatingSetpoint, coolingSetpoint, fan, windowFanSpeed :=
		Actuators(action)

	newState := d.nextState(heatingSetpoint, coolingSetpoint, fan,
		windowFanSpeed)

	return d.update(a, newState)
}
