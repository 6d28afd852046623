package smartroom

import (
	"fmt"

	"github.com/smartroom/gohvac/utils/quantize"
)

const (
	// ActionDims is the dimensionality of actions in the environment.
	// Actions are single discrete indices into the action table.
	ActionDims int = 1

	// Legal discrete actions
	MinDiscreteAction int = 0
	MaxDiscreteAction int = 39

	// ActuatorDims is the number of actuator settings a discrete
	// action decodes to
	ActuatorDims int = 4
)

// discreteActions maps each legal discrete action to its actuator
// settings (heating setpoint °C, cooling setpoint °C, HVAC fan flag,
// window-fan speed fraction). The table is never mutated. Rows 36-39
// are the "HVAC off-like" settings: setpoints the plant will never
// chase, with only the window fan selectable.
var discreteActions = quantize.NewTable([][]float64{
	{21, 22, 1.0, 0.0},  // 0
	{21, 22, 1.0, 0.5},  // 1
	{21, 22, 1.0, 0.75}, // 2
	{21, 22, 1.0, 1.0},  // 3
	{22, 23, 1.0, 0.0},  // 4
	{22, 23, 1.0, 0.5},  // 5
	{22, 23, 1.0, 0.75}, // 6
	{22, 23, 1.0, 1.0},  // 7
	{23, 24, 1.0, 0.0},  // 8
	{23, 24, 1.0, 0.5},  // 9
	{23, 24, 1.0, 0.75}, // 10
	{23, 24, 1.0, 1.0},  // 11
	{24, 25, 1.0, 0.0},  // 12
	{24, 25, 1.0, 0.5},  // 13
	{24, 25, 1.0, 0.75}, // 14
	{24, 25, 1.0, 1.0},  // 15
	{25, 26, 1.0, 0.0},  // 16
	{25, 26, 1.0, 0.5},  // 17
	{25, 26, 1.0, 0.75}, // 18
	{25, 26, 1.0, 1.0},  // 19
	{26, 27, 1.0, 0.0},  // 20
	{26, 27, 1.0, 0.5},  // 21
	{26, 27, 1.0, 0.75}, // 22
	{26, 27, 1.0, 1.0},  // 23
	{27, 28, 1.0, 0.0},  // 24
	{27, 28, 1.0, 0.5},  // 25
	{27, 28, 1.0, 0.75}, // 26
	{27, 28, 1.0, 1.0},  // 27
	{28, 29, 1.0, 0.0},  // 28
	{28, 29, 1.0, 0.5},  // 29
	{28, 29, 1.0, 0.75}, // 30
	{28, 29, 1.0, 1.0},  // 31
	{29, 30, 1.0, 0.0},  // 32
	{29, 30, 1.0, 0.5},  // 33
	{29, 30, 1.0, 0.75}, // 34
	{29, 30, 1.0, 1.0},  // 35
	{5, 50, 0.0, 0.0},   // 36
	{5, 50, 0.0, 0.5},   // 37
	{5, 50, 0.0, 0.75},  // 38
	{5, 50, 0.0, 1.0},   // 39
})

// setpointPairs lists the selectable (heating, cooling) setpoint
// pairs. Index 0 is the off-like pair.
var setpointPairs = quantize.NewTable([][]float64{
	{5, 50}, // 0, off-like
	{21, 22},
	{22, 23},
	{23, 24},
	{24, 25},
	{25, 26},
	{26, 27},
	{27, 28},
	{28, 29},
	{29, 30},
})

// fanSpeeds lists the selectable window-fan speed fractions in
// ascending order
var fanSpeeds = []float64{0.0, 0.5, 0.75, 1.0}

// Actions returns the discrete action table. Each row holds the
// actuator settings for the action whose identifier is the row index.
func Actions() *quantize.Table {
	return discreteActions
}

// SetpointPairs returns the table of selectable (heating, cooling)
// setpoint pairs
func SetpointPairs() *quantize.Table {
	return setpointPairs
}

// FanSpeeds returns the selectable window-fan speed fractions in
// ascending order
func FanSpeeds() []float64 {
	speeds := make([]float64, len(fanSpeeds))
	copy(speeds, fanSpeeds)
	return speeds
}

// Actuators decodes a discrete action into its actuator settings.
// Actions outside [MinDiscreteAction, MaxDiscreteAction] cause a panic.
func Actuators(action int) (heatingSetpoint, coolingSetpoint, fan,
	windowFanSpeed float64) {
	if action < MinDiscreteAction || action > MaxDiscreteAction {
		panic(fmt.Sprintf("actuators: illegal action %v ∉ [%v, %v]",
			action, MinDiscreteAction, MaxDiscreteAction))
	}

	row := discreteActions.Row(action)
	return row[0], row[1], row[2], row[3]
}
