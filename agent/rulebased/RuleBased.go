// Package rulebased implements a fixed rule-based climate controller
// for the smart room environment.
//
// The controller reads three observation features: the month, the
// indoor air temperature, and the indoor CO2 concentration. It holds
// the temperature within a seasonal comfort band and the CO2 below a
// health threshold by selecting one of the 40 discrete actuator
// settings of the environment. The decision proceeds in three stages:
// piecewise rules map the observation to desired continuous actuator
// settings, optional patience escalation intensifies those settings
// the longer the room stays out of band, and nearest-neighbor
// quantization snaps the desired settings onto the discrete action
// table.
package rulebased

import (
	"fmt"
	"log"
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r1"

	"github.com/smartroom/gohvac/agent"
	env "github.com/smartroom/gohvac/environment"
	"github.com/smartroom/gohvac/environment/smartroom"
	ts "github.com/smartroom/gohvac/timestep"
	"github.com/smartroom/gohvac/utils/floatutils"
	"github.com/smartroom/gohvac/utils/intutils"
	"github.com/smartroom/gohvac/utils/quantize"
)

// Setpoint bounds used when climate control is active
var (
	heatingBounds = r1.Interval{Min: 21.0, Max: 29.0}
	coolingBounds = r1.Interval{Min: 22.0, Max: 30.0}
)

// Off-like actuator settings selected while climate control is
// inactive. The setpoints are sentinels the plant will never chase,
// not physically meaningful targets.
const (
	offHeatingSetpoint float64 = 5.0
	offCoolingSetpoint float64 = 50.0
)

// Controller computes discrete climate control actions from
// observations using fixed piecewise rules.
//
// A Controller holds only its configuration and the immutable actuator
// tables. Each decision is a pure computation over the observation and
// the caller-supplied patience State, so a single Controller is safe
// for concurrent use.
type Controller struct {
	winter     map[int]bool
	activation Activation
	margin     float64
	escalate   bool
	threshold  int

	actions *quantize.Table
	pairs   *quantize.Table
	speeds  []float64
}

// NewController returns a new Controller with the argument
// configuration
func NewController(config Config) (*Controller, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("newController: %v", err)
	}

	winter := make(map[int]bool, len(config.WinterMonths))
	for _, month := range config.WinterMonths {
		winter[month] = true
	}

	return &Controller{
		winter:     winter,
		activation: config.Activation,
		margin:     config.ComfortMargin,
		escalate:   config.Escalate,
		threshold:  config.PatienceThreshold,
		actions:    smartroom.Actions(),
		pairs:      smartroom.SetpointPairs(),
		speeds:     smartroom.FanSpeeds(),
	}, nil
}

// Act computes the discrete action to take given an observation and
// the patience State carried over from the previous decision. It
// returns the action, in [smartroom.MinDiscreteAction,
// smartroom.MaxDiscreteAction], and the updated State to thread into
// the next call. At episode start callers pass the zero State.
//
// Act returns an error if the observation does not have
// smartroom.ObservationDims features or if a consumed feature is not
// finite. Otherwise Act is a total function: it always returns a legal
// action.
func (c *Controller) Act(obs mat.Vector, prev State) (int, State, error) {
	if obs == nil || obs.Len() != smartroom.ObservationDims {
		return 0, prev, fmt.Errorf("act: observations must have %v "+
			"features", smartroom.ObservationDims)
	}

	month := obs.AtVec(smartroom.Month)
	airTemp := obs.AtVec(smartroom.AirTemp)
	co2 := obs.AtVec(smartroom.AirCO2)
	for _, feature := range []float64{month, airTemp, co2} {
		if math.IsNaN(feature) || math.IsInf(feature, 0) {
			return 0, prev, fmt.Errorf("act: non-finite observation "+
				"feature %v", feature)
		}
	}

	band := c.comfortRange(int(month))

	state := prev.next(airTemp > band.Max || airTemp < band.Min,
		co2 > smartroom.CO2Threshold)

	active := c.active(airTemp, band)
	windowFan := windowFanSpeed(co2)

	var heating, cooling, fan float64
	if !active {
		heating = offHeatingSetpoint
		cooling = offCoolingSetpoint
		fan = 0.0
	} else {
		target := 0.5 * (band.Min + band.Max)
		heating = floatutils.ClipInterval(math.Floor(target), heatingBounds)
		cooling = floatutils.ClipInterval(heating+1.0, coolingBounds)
		fan = 1.0
	}

	if c.escalate {
		heating, cooling, windowFan = c.escalated(state, active, airTemp,
			band, heating, cooling, windowFan)
	}

	action := c.actions.Nearest([]float64{heating, cooling, fan, windowFan})
	if action < smartroom.MinDiscreteAction ||
		action > smartroom.MaxDiscreteAction {
		// Unreachable while the quantizer and action table are
		// consistent; a clamp here means one of them is broken
		log.Printf("act: quantizer returned out-of-range action %v, "+
			"clamping to %v", action, smartroom.MaxDiscreteAction)
		action = smartroom.MaxDiscreteAction
	}

	return action, state, nil
}

// escalated intensifies the desired actuator settings in proportion to
// how long the room has been out of band. The desired setpoint pair
// and window-fan speed are first snapped onto their own tables, the
// table indices are then shifted by the patience residuals, and the
// shifted entries are read back as the desired continuous settings.
//
// Setpoints escalate toward cooler entries while too hot, flooring at
// index 1 so that active cooling never degenerates into the off-like
// pair, and toward warmer entries while too cold. The window-fan speed
// only ever escalates upward: stale air needs more ventilation, never
// less.
func (c *Controller) escalated(state State, active bool, airTemp float64,
	band r1.Interval, heating, cooling, windowFan float64) (float64,
	float64, float64) {
	tempResidual := state.TempPatience / c.threshold
	co2Residual := state.CO2Patience / c.threshold

	pair := c.pairs.Nearest([]float64{heating, cooling})
	switch {
	case !active:
		pair = 0
	case airTemp > band.Max:
		pair = intutils.Max(pair-tempResidual, 1)
	case airTemp < band.Min:
		pair = intutils.Min(pair+tempResidual, c.pairs.Len()-1)
	}
	pair = intutils.Clip(pair, 0, c.pairs.Len()-1)

	speed := quantize.Nearest1D(c.speeds, windowFan)
	speed = intutils.Clip(speed+co2Residual, 0, len(c.speeds)-1)

	setpoints := c.pairs.Row(pair)
	return setpoints[0], setpoints[1], c.speeds[speed]
}

// Agent wraps a Controller into an agent.Agent, threading the patience
// State across SelectAction calls within an episode and resetting it
// between episodes. All Learner methods are no-ops apart from the
// episode-boundary resets: the controller never adapts.
type Agent struct {
	*Controller
	state State
}

// New returns a new rule-based Agent for the argument environment. The
// environment must use the smart room observation layout and discrete
// action table; New returns an error otherwise.
func New(e env.Environment, config Config) (agent.Agent, error) {
	if obs := e.ObservationSpec().Shape.Len(); obs != smartroom.ObservationDims {
		return nil, fmt.Errorf("new: environment emits %v-feature "+
			"observations, controller needs %v", obs,
			smartroom.ObservationDims)
	}

	if high := e.ActionSpec().UpperBound.AtVec(0); int(high) != smartroom.MaxDiscreteAction {
		return nil, fmt.Errorf("new: environment has %v legal actions, "+
			"controller selects among %v", int(high)+1,
			smartroom.MaxDiscreteAction+1)
	}

	controller, err := NewController(config)
	if err != nil {
		return nil, fmt.Errorf("new: %v", err)
	}

	return &Agent{Controller: controller}, nil
}

// SelectAction selects an action for the argument timestep. It panics
// on malformed observations, which indicate a broken environment.
func (a *Agent) SelectAction(t ts.TimeStep) *mat.VecDense {
	action, next, err := a.Act(t.Observation, a.state)
	if err != nil {
		panic(fmt.Sprintf("selectAction: %v", err))
	}

	a.state = next
	return mat.NewVecDense(1, []float64{float64(action)})
}

// ObserveFirst records the first timestep in an episode, resetting the
// patience counters
func (a *Agent) ObserveFirst(ts.TimeStep) error {
	a.state = State{}
	return nil
}

// Observe records that an action led to some timestep. The controller
// does not learn from transitions.
func (a *Agent) Observe(_ mat.Vector, _ ts.TimeStep) error { return nil }

// Step performs a single update to the learner. The controller has
// nothing to update.
func (a *Agent) Step() error { return nil }

// EndEpisode performs cleanup at the end of an episode
func (a *Agent) EndEpisode() {
	a.state = State{}
}
