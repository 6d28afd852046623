package smartroom

import "testing"

// Every action table entry must quantize back to its own index, so
// that a desired vector equal to a table row always selects exactly
// that action.
func TestActionsQuantizeToThemselves(t *testing.T) {
	actions := Actions()
	for i := 0; i < actions.Len(); i++ {
		if got := actions.Nearest(actions.Row(i)); got != i {
			t.Errorf("action %v quantized to %v", i, got)
		}
	}
}

func TestSetpointPairsQuantizeToThemselves(t *testing.T) {
	pairs := SetpointPairs()
	for i := 0; i < pairs.Len(); i++ {
		if got := pairs.Nearest(pairs.Row(i)); got != i {
			t.Errorf("setpoint pair %v quantized to %v", i, got)
		}
	}
}

func TestActionsTableShape(t *testing.T) {
	if got := Actions().Len(); got != MaxDiscreteAction+1 {
		t.Errorf("action table has %v rows, want %v", got,
			MaxDiscreteAction+1)
	}
	if got := Actions().Dims(); got != ActuatorDims {
		t.Errorf("action table rows have %v features, want %v", got,
			ActuatorDims)
	}
}

func TestActuatorsDecodesTableRows(t *testing.T) {
	heating, cooling, fan, windowFan := Actuators(15)
	if heating != 24 || cooling != 25 || fan != 1.0 || windowFan != 1.0 {
		t.Errorf("action 15 decoded to (%v, %v, %v, %v)", heating, cooling,
			fan, windowFan)
	}

	heating, cooling, fan, windowFan = Actuators(36)
	if heating != 5 || cooling != 50 || fan != 0.0 || windowFan != 0.0 {
		t.Errorf("action 36 decoded to (%v, %v, %v, %v)", heating, cooling,
			fan, windowFan)
	}
}

func TestActuatorsPanicsOnIllegalAction(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected a panic for an illegal action")
		}
	}()

	Actuators(MaxDiscreteAction + 1)
}

func TestFanSpeedsReturnsACopy(t *testing.T) {
	speeds := FanSpeeds()
	speeds[0] = 100

	if got := FanSpeeds()[0]; got != 0.0 {
		t.Errorf("mutating returned fan speeds changed the table: got %v",
			got)
	}
}
