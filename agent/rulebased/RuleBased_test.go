package rulebased

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/mat"

	"github.com/smartroom/gohvac/environment/smartroom"
	ts "github.com/smartroom/gohvac/timestep"
)

// makeObs builds an observation with the argument month, air
// temperature, and CO2 concentration. All other features are zero; the
// controller must ignore them.
func makeObs(month, airTemp, co2 float64) *mat.VecDense {
	obs := make([]float64, smartroom.ObservationDims)
	obs[smartroom.Month] = month
	obs[smartroom.AirTemp] = airTemp
	obs[smartroom.AirCO2] = co2
	return mat.NewVecDense(smartroom.ObservationDims, obs)
}

func act(t *testing.T, c *Controller, obs *mat.VecDense, state State) (int,
	State) {
	t.Helper()

	action, next, err := c.Act(obs, state)
	if err != nil {
		t.Fatalf("act: %v", err)
	}
	return action, next
}

// A winter morning 1 °C below the band with fresh air: heat toward the
// band midpoint with the window fan off
func TestActWinterHeating(t *testing.T) {
	config := NewConfig()
	config.Activation = Margin
	controller := newTestController(t, config)

	action, state := act(t, controller, makeObs(1, 19.0, 500), State{})

	// Band (20, 23): floor(21.5) = 21, cooling 22, fan on, window fan
	// off is exactly action 0
	if action != 0 {
		t.Errorf("action = %v, want 0", action)
	}
	if state.TempPatience != 1 || state.CO2Patience != 0 {
		t.Errorf("state = %+v, want temperature patience 1", state)
	}
}

// A hot, stuffy summer afternoon: cool toward the band midpoint with
// the window fan at full speed
func TestActSummerCooling(t *testing.T) {
	controller := newTestController(t, NewConfig())

	action, _ := act(t, controller, makeObs(7, 30.0, 1300), State{})

	// Band (23, 26): floor(24.5) = 24, cooling 25, fan on, window fan
	// 1.0 is exactly action 15
	if action != 15 {
		t.Errorf("action = %v, want 15", action)
	}
}

// Comfortable and fresh: everything off
func TestActComfortable(t *testing.T) {
	controller := newTestController(t, NewConfig())

	action, state := act(t, controller, makeObs(6, 24.5, 400), State{})

	if action != 36 {
		t.Errorf("action = %v, want the off-like 36", action)
	}
	if state.TempPatience != 0 || state.CO2Patience != 0 {
		t.Errorf("state = %+v, want zero counters", state)
	}
}

// The longer the room stays too hot, the cooler the selected setpoint
// pair, flooring one entry above the off-like pair
func TestActEscalatesWhileTooHot(t *testing.T) {
	config := NewConfig()
	config.Escalate = true
	controller := newTestController(t, config)

	obs := makeObs(7, 30.0, 500)
	var state State

	// Base pair for (24, 25) is index 4; each consecutive hot step
	// pulls it one entry cooler, never below index 1 (21, 22)
	wantActions := []int{8, 4, 0, 0}
	for i, want := range wantActions {
		var action int
		action, state = act(t, controller, obs, state)

		if action != want {
			t.Errorf("step %v: action = %v, want %v", i+1, action, want)
		}
		if state.TempPatience != i+1 {
			t.Errorf("step %v: temperature patience = %v, want %v", i+1,
				state.TempPatience, i+1)
		}
	}
}

// The longer the room stays too cold, the warmer the selected setpoint
// pair, capping at the warmest entry
func TestActEscalatesWhileTooCold(t *testing.T) {
	config := NewConfig()
	config.Escalate = true
	controller := newTestController(t, config)

	obs := makeObs(1, 15.0, 500)
	var state State

	// Base pair for (21, 22) is index 1; each consecutive cold step
	// pushes it one entry warmer, saturating at (29, 30)
	wantActions := []int{4, 8, 12, 16, 20, 24, 28, 32, 32, 32}
	for i, want := range wantActions {
		var action int
		action, state = act(t, controller, obs, state)

		if action != want {
			t.Errorf("step %v: action = %v, want %v", i+1, action, want)
		}
	}
}

// The window-fan speed index only ever escalates upward while the air
// stays stale
func TestActEscalatesVentilationWithCO2(t *testing.T) {
	config := NewConfig()
	config.Escalate = true
	controller := newTestController(t, config)

	// Comfortable temperature, rising CO2
	var state State
	var lastAction int
	for i, co2 := range []float64{900, 1000, 1100, 1300} {
		var action int
		action, state = act(t, controller, makeObs(6, 24.5, co2), state)

		// Inactive climate control with a running window fan selects
		// among the off-like actions 37-39
		if action < 37 || action > 39 {
			t.Fatalf("step %v: action = %v, want an off-like action with "+
				"ventilation", i+1, action)
		}
		if action < lastAction {
			t.Errorf("step %v: ventilation fell from action %v to %v",
				i+1, lastAction, action)
		}
		lastAction = action

		if state.CO2Patience != i+1 {
			t.Errorf("step %v: CO2 patience = %v, want %v", i+1,
				state.CO2Patience, i+1)
		}
	}
}

// Counters reset the step after their condition clears
func TestActPatienceResets(t *testing.T) {
	config := NewConfig()
	config.Escalate = true
	controller := newTestController(t, config)

	var state State
	_, state = act(t, controller, makeObs(7, 30.0, 1300), state)
	_, state = act(t, controller, makeObs(7, 30.0, 1300), state)
	if state.TempPatience != 2 || state.CO2Patience != 2 {
		t.Fatalf("state = %+v, want both counters at 2", state)
	}

	action, state := act(t, controller, makeObs(7, 24.5, 500), state)
	if state.TempPatience != 0 || state.CO2Patience != 0 {
		t.Errorf("state = %+v, want both counters reset", state)
	}
	if action != 36 {
		t.Errorf("action = %v, want the off-like 36", action)
	}
}

// A slower escalation threshold needs that many consecutive bad steps
// per escalation unit
func TestActPatienceThreshold(t *testing.T) {
	config := NewConfig()
	config.Escalate = true
	config.PatienceThreshold = 2
	controller := newTestController(t, config)

	obs := makeObs(7, 30.0, 500)
	var state State

	// Residual is patience / 2: steps 1 stays at the base pair index
	// 4, steps 2-3 shift one entry, step 4 shifts two
	wantActions := []int{12, 8, 8, 4}
	for i, want := range wantActions {
		var action int
		action, state = act(t, controller, obs, state)

		if action != want {
			t.Errorf("step %v: action = %v, want %v", i+1, action, want)
		}
	}
}

func TestActValidatesObservations(t *testing.T) {
	controller := newTestController(t, NewConfig())

	if _, _, err := controller.Act(nil, State{}); err == nil {
		t.Error("expected an error for a nil observation")
	}

	short := mat.NewVecDense(3, []float64{1, 2, 3})
	if _, _, err := controller.Act(short, State{}); err == nil {
		t.Error("expected an error for a short observation")
	}

	if _, _, err := controller.Act(makeObs(7, math.NaN(), 500),
		State{}); err == nil {
		t.Error("expected an error for a NaN air temperature")
	}

	if _, _, err := controller.Act(makeObs(7, math.Inf(1), 500),
		State{}); err == nil {
		t.Error("expected an error for an infinite air temperature")
	}
}

func TestNewControllerValidatesConfig(t *testing.T) {
	bad := NewConfig()
	bad.WinterMonths = []int{13}
	if _, err := NewController(bad); err == nil {
		t.Error("expected an error for winter month 13")
	}

	bad = NewConfig()
	bad.Activation = "Fuzzy"
	if _, err := NewController(bad); err == nil {
		t.Error("expected an error for an unknown activation rule")
	}

	bad = NewConfig()
	bad.ComfortMargin = -1
	if _, err := NewController(bad); err == nil {
		t.Error("expected an error for a negative comfort margin")
	}

	bad = NewConfig()
	bad.PatienceThreshold = 0
	if _, err := NewController(bad); err == nil {
		t.Error("expected an error for a zero patience threshold")
	}
}

// The Agent adapter threads the patience state across SelectAction
// calls and resets it at episode boundaries
func TestAgentThreadsPatienceAcrossSteps(t *testing.T) {
	controller := newTestController(t, Config{
		WinterMonths:      DefaultWinterMonths(),
		Activation:        Strict,
		ComfortMargin:     0.5,
		Escalate:          true,
		PatienceThreshold: 1,
	})
	agent := &Agent{Controller: controller}

	hot := ts.New(ts.Mid, 0, 1, makeObs(7, 30.0, 500), 1)

	if got := agent.SelectAction(hot).AtVec(0); got != 8 {
		t.Errorf("first hot action = %v, want 8", got)
	}
	if got := agent.SelectAction(hot).AtVec(0); got != 4 {
		t.Errorf("second hot action = %v, want 4", got)
	}

	// A new episode starts from unescalated setpoints
	if err := agent.ObserveFirst(ts.New(ts.First, 0, 1,
		makeObs(7, 30.0, 500), 0)); err != nil {
		t.Fatalf("observeFirst: %v", err)
	}
	if got := agent.SelectAction(hot).AtVec(0); got != 8 {
		t.Errorf("hot action after reset = %v, want 8", got)
	}
}
