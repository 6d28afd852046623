// Package smartroom implements a simulated single-zone smart room with
// discrete HVAC and window-fan actuation
package smartroom

import (
	"fmt"
	"math"
	"time"

	"golang.org/x/exp/rand"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r1"
	"gonum.org/v1/gonum/stat/distuv"

	env "github.com/smartroom/gohvac/environment"
	ts "github.com/smartroom/gohvac/timestep"
	"github.com/smartroom/gohvac/utils/floatutils"
)

// Indices of the features within the 15-dimensional observation vector
const (
	Month int = iota
	DayOfMonth
	Hour
	OutdoorTemp
	OutdoorHumidity
	HeatingSetpoint
	CoolingSetpoint
	AirTemp
	AirHumidity
	Occupants
	AirCO2
	WindowFanEnergy
	PMV
	PPD
	HVACElectricity

	// ObservationDims is the dimensionality of observations
	ObservationDims int = 15
)

const (
	// StepMinutes is the simulated wall-clock duration of one
	// environmental step
	StepMinutes int = 15

	stepHours float64 = 0.25

	// AmbientCO2 is the outdoor CO2 concentration (ppm). Indoor CO2
	// never drops below this level.
	AmbientCO2 float64 = 420.0

	// CO2Threshold is the indoor CO2 concentration (ppm) above which
	// air quality is considered unhealthy
	CO2Threshold float64 = 800.0

	// Zone physical parameters
	envelopeLeak   float64 = 0.15 // fraction/hour coupling to outdoors
	heatRate       float64 = 2.5  // °C/hour heating drive
	coolRate       float64 = 2.5  // °C/hour cooling drive
	ventMix        float64 = 0.6  // fraction/hour air mixing at full fan
	co2PerOccupant float64 = 130.0
	co2VentRate    float64 = 1.4 // fraction/hour toward ambient at full fan

	// Plant power draws (kW)
	heatPower      float64 = 3.5
	coolPower      float64 = 3.0
	hvacFanPower   float64 = 0.25
	windowFanPower float64 = 0.12
)

// Bounds on the indoor air temperature. Leaving these bounds means the
// simulation has diverged and the episode ends.
var airTempBounds = r1.Interval{Min: -10.0, Max: 60.0}

// Climate parameterizes the outdoor weather generator. Outdoor
// temperature follows a seasonal and a diurnal sinusoid around
// MeanTemp with additive Gaussian noise on each step.
type Climate struct {
	MeanTemp      float64
	SeasonalSwing float64
	DailySwing    float64
	MeanHumidity  float64
	NoiseStdDev   float64
	Start         time.Time
}

// HotClimate returns the Climate of a hot, dry site
func HotClimate() Climate {
	return Climate{
		MeanTemp:      24.0,
		SeasonalSwing: 10.0,
		DailySwing:    6.0,
		MeanHumidity:  35.0,
		NoiseStdDev:   0.75,
		Start:         time.Date(1991, time.January, 1, 0, 0, 0, 0, time.UTC),
	}
}

// CoolClimate returns the Climate of a cool, humid site
func CoolClimate() Climate {
	return Climate{
		MeanTemp:      12.0,
		SeasonalSwing: 12.0,
		DailySwing:    5.0,
		MeanHumidity:  65.0,
		NoiseStdDev:   0.75,
		Start:         time.Date(1991, time.January, 1, 0, 0, 0, 0, time.UTC),
	}
}

// outdoorTemp returns the noiseless outdoor temperature at clock time t
func (c Climate) outdoorTemp(t time.Time) float64 {
	day := float64(t.YearDay())
	hour := float64(t.Hour()) + float64(t.Minute())/60.0

	// Seasonal peak near day 200, diurnal peak at 15:00
	seasonal := c.SeasonalSwing * math.Sin(2*math.Pi*(day-109)/365)
	diurnal := c.DailySwing * math.Sin(2*math.Pi*(hour-9)/24)

	return c.MeanTemp + seasonal + diurnal
}

// base implements the underlying smart room simulation. It tracks the
// simulated clock, the zone air state, and the weather, but does not
// decode actions. The Discrete struct embeds a base environment and
// translates discrete actions into actuator settings.
//
// The zone model is first order: indoor air couples to outdoor air
// through the envelope, the HVAC plant drives the air temperature
// toward its setpoints while its fan runs, and the window fan mixes
// indoor with outdoor air, which both tempers the zone and purges CO2.
// Occupants add CO2 on a workday schedule.
type base struct {
	env.Task
	climate Climate

	clock           time.Time
	airTemp         float64
	airHumidity     float64
	co2             float64
	outdoorTemp     float64
	outdoorHumidity float64

	noise    distuv.Normal
	lastStep ts.TimeStep
	discount float64
}

// newBase creates a new base environment with the argument task
func newBase(t env.Task, climate Climate, discount float64,
	seed uint64) (*base, ts.TimeStep) {
	room := &base{
		Task:     t,
		climate:  climate,
		discount: discount,
		noise: distuv.Normal{
			Mu:    0,
			Sigma: climate.NoiseStdDev,
			Src:   rand.NewSource(seed),
		},
	}

	firstStep := room.Reset()
	return room, firstStep
}

// Reset resets the environment and returns a starting state drawn from
// the environment Starter
func (b *base) Reset() ts.TimeStep {
	start := b.Start()
	validateStart(start)

	b.clock = b.climate.Start
	b.airTemp = start.AtVec(0)
	b.co2 = floatutils.Max(start.AtVec(1), AmbientCO2)
	b.outdoorTemp = b.climate.outdoorTemp(b.clock) + b.noise.Rand()
	b.outdoorHumidity = b.humidity(b.climate.MeanHumidity)
	b.airHumidity = b.outdoorHumidity

	// All actuators are off on the first step of an episode
	obs := b.observation(5.0, 50.0, 0, 0.0, 0.0)

	startStep := ts.New(ts.First, 0, b.discount, obs, 0)
	b.lastStep = startStep

	return startStep
}

// CurrentObservation returns the most recent observation of the
// environment
func (b *base) CurrentObservation() mat.Vector {
	return b.lastStep.Observation
}

// ObservationSpec returns the observation specification of the
// environment
func (b *base) ObservationSpec() env.Spec {
	shape := mat.NewVecDense(ObservationDims, nil)

	lower := make([]float64, ObservationDims)
	upper := make([]float64, ObservationDims)

	lower[Month], upper[Month] = 1, 12
	lower[DayOfMonth], upper[DayOfMonth] = 1, 31
	lower[Hour], upper[Hour] = 0, 23
	lower[OutdoorTemp], upper[OutdoorTemp] = -40, 60
	lower[OutdoorHumidity], upper[OutdoorHumidity] = 0, 100
	lower[HeatingSetpoint], upper[HeatingSetpoint] = 5, 50
	lower[CoolingSetpoint], upper[CoolingSetpoint] = 5, 50
	lower[AirTemp], upper[AirTemp] = airTempBounds.Min, airTempBounds.Max
	lower[AirHumidity], upper[AirHumidity] = 0, 100
	lower[Occupants], upper[Occupants] = 0, 20
	lower[AirCO2], upper[AirCO2] = AmbientCO2, 10000
	lower[WindowFanEnergy], upper[WindowFanEnergy] = 0, windowFanPower*stepHours
	lower[PMV], upper[PMV] = -3.5, 3.5
	lower[PPD], upper[PPD] = 0, 100
	lower[HVACElectricity] = 0
	upper[HVACElectricity] = (heatPower + hvacFanPower) * stepHours

	return env.NewSpec(shape, env.Observation, mat.NewVecDense(
		ObservationDims, lower), mat.NewVecDense(ObservationDims, upper),
		env.Continuous)
}

// DiscountSpec returns the discounting specification of the environment
func (b *base) DiscountSpec() env.Spec {
	shape := mat.NewVecDense(1, nil)
	bound := mat.NewVecDense(1, []float64{b.discount})

	return env.NewSpec(shape, env.Discount, bound, bound, env.Continuous)
}

// nextState advances the simulation by one step under the argument
// actuator settings and returns the resulting observation
func (b *base) nextState(heatingSetpoint, coolingSetpoint, fan,
	windowFanSpeed float64) mat.Vector {
	b.clock = b.clock.Add(time.Duration(StepMinutes) * time.Minute)
	b.outdoorTemp = b.climate.outdoorTemp(b.clock) + b.noise.Rand()
	b.outdoorHumidity = b.humidity(b.climate.MeanHumidity)

	occupants := b.occupants()

	// Envelope coupling to outdoors
	b.airTemp += envelopeLeak * (b.outdoorTemp - b.airTemp) * stepHours

	// HVAC plant: while the fan runs, drive the air temperature toward
	// the deadband between the setpoints
	var plantPower float64
	if fan > 0 {
		plantPower = hvacFanPower
		if b.airTemp < heatingSetpoint {
			delta := floatutils.Min(heatRate*stepHours,
				heatingSetpoint-b.airTemp)
			b.airTemp += delta
			plantPower += heatPower
		} else if b.airTemp > coolingSetpoint {
			delta := floatutils.Min(coolRate*stepHours,
				b.airTemp-coolingSetpoint)
			b.airTemp -= delta
			plantPower += coolPower
		}
	}

	// Window fan mixes indoor with outdoor air. The air temperature is
	// deliberately not clipped here: the Comfort task ends the episode
	// if it ever leaves its physical bounds.
	b.airTemp += ventMix * windowFanSpeed * (b.outdoorTemp - b.airTemp) *
		stepHours

	// CO2 balance: occupants generate, the window fan purges
	b.co2 += co2PerOccupant * occupants * stepHours
	b.co2 -= co2VentRate * windowFanSpeed * (b.co2 - AmbientCO2) * stepHours
	b.co2 = floatutils.Max(b.co2, AmbientCO2)

	// Indoor humidity relaxes toward outdoors
	b.airHumidity += (envelopeLeak + ventMix*windowFanSpeed) *
		(b.outdoorHumidity - b.airHumidity) * stepHours

	hvacEnergy := plantPower * stepHours
	windowFanEnergy := windowFanSpeed * windowFanPower * stepHours

	return b.observation(heatingSetpoint, coolingSetpoint, occupants,
		windowFanEnergy, hvacEnergy)
}

// update changes the last state of the environment to newState,
// computes the reward for the transition as defined by the Task, and
// checks whether the new TimeStep is the last in the episode, adjusting
// its StepType accordingly. It returns the next TimeStep and whether it
// is the last in the episode.
func (b *base) update(action, newState mat.Vector) (ts.TimeStep, bool) {
	reward := b.GetReward(b.lastStep.Observation, action, newState)
	nextStep := ts.New(ts.Mid, reward, b.discount, newState,
		b.lastStep.Number+1)

	last := b.End(&nextStep)

	b.lastStep = nextStep
	return nextStep, last
}

// observation packages the current simulation state into the
// 15-dimensional observation vector
func (b *base) observation(heatingSetpoint, coolingSetpoint, occupants,
	windowFanEnergy, hvacEnergy float64) mat.Vector {
	obs := make([]float64, ObservationDims)

	obs[Month] = float64(b.clock.Month())
	obs[DayOfMonth] = float64(b.clock.Day())
	obs[Hour] = float64(b.clock.Hour())
	obs[OutdoorTemp] = b.outdoorTemp
	obs[OutdoorHumidity] = b.outdoorHumidity
	obs[HeatingSetpoint] = heatingSetpoint
	obs[CoolingSetpoint] = coolingSetpoint
	obs[AirTemp] = b.airTemp
	obs[AirHumidity] = b.airHumidity
	obs[Occupants] = occupants
	obs[AirCO2] = b.co2
	obs[WindowFanEnergy] = windowFanEnergy

	pmv := predictedMeanVote(b.airTemp)
	obs[PMV] = pmv
	obs[PPD] = percentDissatisfied(pmv)

	obs[HVACElectricity] = hvacEnergy

	return mat.NewVecDense(ObservationDims, obs)
}

// occupants returns the number of people in the zone at the current
// clock time. The zone follows an office schedule: occupied on
// workdays between 08:00 and 18:00, with a lunchtime dip.
func (b *base) occupants() float64 {
	switch b.clock.Weekday() {
	case time.Saturday, time.Sunday:
		return 0
	}

	switch h := b.clock.Hour(); {
	case h < 8 || h >= 18:
		return 0
	case h == 8 || h == 17:
		return 2
	case h == 12:
		return 3
	default:
		return 6
	}
}

// humidity returns a noisy relative humidity around mean
func (b *base) humidity(mean float64) float64 {
	return floatutils.Clip(mean+2*b.noise.Rand(), 5, 100)
}

// predictedMeanVote approximates the Fanger PMV comfort index from the
// air temperature alone, with thermal neutrality at 23.5 °C
func predictedMeanVote(airTemp float64) float64 {
	return floatutils.Clip((airTemp-23.5)/2.5, -3.5, 3.5)
}

// percentDissatisfied returns the Fanger PPD (%) for a PMV value
func percentDissatisfied(pmv float64) float64 {
	return 100 - 95*math.Exp(-0.03353*math.Pow(pmv, 4)-0.2179*pmv*pmv)
}

// validateStart ensures that a starting state is valid: the sampled
// air temperature must be within physical bounds and the sampled CO2
// concentration non-negative
func validateStart(state mat.Vector) {
	if state.Len() != 2 {
		panic(fmt.Sprintf("starting states must be (air temperature, "+
			"CO2), got %v features", state.Len()))
	}

	temp, co2 := state.AtVec(0), state.AtVec(1)
	if temp < airTempBounds.Min || temp > airTempBounds.Max {
		panic(fmt.Sprintf("starting air temperature %v ∉ [%v, %v]",
			temp, airTempBounds.Min, airTempBounds.Max))
	}
	if co2 < 0 || math.IsNaN(co2) || math.IsInf(co2, 0) {
		panic(fmt.Sprintf("illegal starting CO2 concentration %v", co2))
	}
}
