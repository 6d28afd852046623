package smartroom

import (
	"time"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r1"

	"github.com/smartroom/gohvac/environment"
	"github.com/smartroom/gohvac/timestep"
	"github.com/smartroom/gohvac/utils/floatutils"
)

// Default reward weights for the Comfort task
const (
	DefaultComfortWeight float64 = 1.0
	DefaultEnergyWeight  float64 = 0.5
	DefaultCO2Weight     float64 = 0.001
)

// Seasonal comfort temperature bands
var (
	WinterComfort = r1.Interval{Min: 20.0, Max: 23.0}
	SummerComfort = r1.Interval{Min: 23.0, Max: 26.0}
)

// winterMonths are the months during which the winter comfort band
// applies
var winterMonths = map[time.Month]bool{
	time.November: true,
	time.December: true,
	time.January:  true,
	time.February: true,
	time.March:    true,
}

// ComfortBand returns the comfort temperature band applying in the
// argument month
func ComfortBand(month time.Month) r1.Interval {
	if winterMonths[month] {
		return WinterComfort
	}
	return SummerComfort
}

// Comfort implements the climate control task in the smart room. The
// goal is to hold the indoor air temperature within the seasonal
// comfort band and the indoor CO2 concentration below CO2Threshold
// while spending as little actuation energy as possible.
//
// Rewards are non-positive: on each step the task charges a penalty
// linear in the temperature's distance outside the comfort band, the
// electricity used by the HVAC plant and window fan, and the CO2
// concentration above CO2Threshold.
//
// Episodes end after a step limit (a timeout) or if the indoor air
// temperature ever leaves its physical bounds, which indicates the
// simulation has diverged.
type Comfort struct {
	environment.Starter
	stepEnder   environment.Ender
	boundsEnder environment.Ender

	comfortWeight float64
	energyWeight  float64
	co2Weight     float64
}

// NewComfort creates and returns a new Comfort task with default
// reward weights, given a Starter which determines starting states and
// the maximum number of episode steps
func NewComfort(s environment.Starter, episodeSteps int) *Comfort {
	return NewWeightedComfort(s, episodeSteps, DefaultComfortWeight,
		DefaultEnergyWeight, DefaultCO2Weight)
}

// NewWeightedComfort creates and returns a new Comfort task with the
// argument reward weights
func NewWeightedComfort(s environment.Starter, episodeSteps int,
	comfortWeight, energyWeight, co2Weight float64) *Comfort {
	stepEnder := environment.NewStepLimit(episodeSteps)
	boundsEnder := environment.NewIntervalLimit([]r1.Interval{airTempBounds},
		[]int{AirTemp}, timestep.TerminalStateReached)

	return &Comfort{s, stepEnder, boundsEnder, comfortWeight, energyWeight,
		co2Weight}
}

// GetReward returns the reward for taking an action in some state,
// resulting in nextState
func (c *Comfort) GetReward(_ mat.Vector, _ mat.Vector,
	nextState mat.Vector) float64 {
	band := ComfortBand(time.Month(int(nextState.AtVec(Month))))
	temp := nextState.AtVec(AirTemp)

	var violation float64
	if temp > band.Max {
		violation = temp - band.Max
	} else if temp < band.Min {
		violation = band.Min - temp
	}

	energy := nextState.AtVec(HVACElectricity) +
		nextState.AtVec(WindowFanEnergy)
	co2Excess := floatutils.Max(0, nextState.AtVec(AirCO2)-CO2Threshold)

	return -(c.comfortWeight*violation + c.energyWeight*energy +
		c.co2Weight*co2Excess)
}

// AtGoal returns whether the argument state is a goal state: indoor
// temperature within the seasonal comfort band and CO2 below the
// health threshold
func (c *Comfort) AtGoal(state mat.Matrix) bool {
	band := ComfortBand(time.Month(int(state.At(Month, 0))))
	temp := state.At(AirTemp, 0)

	return temp >= band.Min && temp <= band.Max &&
		state.At(AirCO2, 0) < CO2Threshold
}

// Min returns the minimum attainable reward over all timesteps
func (c *Comfort) Min() float64 {
	worstViolation := floatutils.Max(WinterComfort.Min-airTempBounds.Min,
		airTempBounds.Max-SummerComfort.Max)
	worstEnergy := (heatPower + hvacFanPower + windowFanPower) * stepHours
	worstCO2 := 10000 - CO2Threshold

	return -(c.comfortWeight*worstViolation + c.energyWeight*worstEnergy +
		c.co2Weight*worstCO2)
}

// Max returns the maximum attainable reward over all timesteps
func (c *Comfort) Max() float64 { return 0.0 }

// RewardSpec returns the reward specification of the Task
func (c *Comfort) RewardSpec() environment.Spec {
	shape := mat.NewVecDense(1, nil)
	lowerBound := mat.NewVecDense(1, []float64{c.Min()})
	upperBound := mat.NewVecDense(1, []float64{c.Max()})

	return environment.NewSpec(shape, environment.Reward, lowerBound,
		upperBound, environment.Continuous)
}

// End determines if a timestep is the last timestep in the episode.
// If so, it changes the TimeStep's StepType to timestep.Last and sets
// its EndType. This function returns true if the argument timestep is
// the last timestep in the episode and false otherwise.
func (c *Comfort) End(t *timestep.TimeStep) bool {
	if end := c.boundsEnder.End(t); end {
		return true
	}

	if end := c.stepEnder.End(t); end {
		return true
	}
	return false
}
