package rulebased

import (
	"testing"
)

func newTestController(t *testing.T, config Config) *Controller {
	t.Helper()

	controller, err := NewController(config)
	if err != nil {
		t.Fatalf("could not create controller: %v", err)
	}
	return controller
}

func TestComfortRangeByMonth(t *testing.T) {
	controller := newTestController(t, NewConfig())

	for month := 1; month <= 12; month++ {
		band := controller.comfortRange(month)

		winter := month <= 3 || month >= 11
		if winter && (band.Min != 20.0 || band.Max != 23.0) {
			t.Errorf("month %v: got band %v, want (20, 23)", month, band)
		}
		if !winter && (band.Min != 23.0 || band.Max != 26.0) {
			t.Errorf("month %v: got band %v, want (23, 26)", month, band)
		}
	}
}

func TestComfortRangeCustomWinterMonths(t *testing.T) {
	config := NewConfig()
	config.WinterMonths = []int{6, 7}
	controller := newTestController(t, config)

	if band := controller.comfortRange(6); band.Min != 20.0 {
		t.Errorf("June configured as winter, got band %v", band)
	}
	if band := controller.comfortRange(1); band.Min != 23.0 {
		t.Errorf("January not configured as winter, got band %v", band)
	}
}

func TestWindowFanSpeedThresholds(t *testing.T) {
	tests := []struct {
		co2  float64
		want float64
	}{
		{0, 0.0},
		{500, 0.0},
		{799, 0.0},
		{800, 0.5},
		{999, 0.5},
		{1000, 0.75},
		{1199, 0.75},
		{1200, 1.0},
		{5000, 1.0},
	}

	for _, test := range tests {
		if got := windowFanSpeed(test.co2); got != test.want {
			t.Errorf("CO2 %v: got speed %v, want %v", test.co2, got,
				test.want)
		}
	}
}

// Higher CO2 never asks for less ventilation
func TestWindowFanSpeedIsMonotonic(t *testing.T) {
	previous := 0.0
	for co2 := 0.0; co2 <= 2000.0; co2 += 1.0 {
		speed := windowFanSpeed(co2)
		if speed < previous {
			t.Fatalf("speed fell from %v to %v at CO2 %v", previous, speed,
				co2)
		}
		previous = speed
	}
}

func TestStrictActivation(t *testing.T) {
	controller := newTestController(t, NewConfig())
	band := controller.comfortRange(1) // winter: (20, 23)

	tests := []struct {
		airTemp float64
		want    bool
	}{
		{19.99, true},
		{20.0, false},
		{21.5, false},
		{23.0, false},
		{23.01, true},
	}

	for _, test := range tests {
		if got := controller.active(test.airTemp, band); got != test.want {
			t.Errorf("air temperature %v: active = %v, want %v",
				test.airTemp, got, test.want)
		}
	}
}

// At exactly margin degrees beyond the band the controller stays
// inactive; the boundary is strictly greater than the margin
func TestMarginActivationBoundary(t *testing.T) {
	config := NewConfig()
	config.Activation = Margin
	controller := newTestController(t, config)
	band := controller.comfortRange(1) // winter: (20, 23)

	tests := []struct {
		airTemp float64
		want    bool
	}{
		{19.5, false},
		{19.49, true},
		{20.0, false},
		{23.0, false},
		{23.5, false},
		{23.51, true},
	}

	for _, test := range tests {
		if got := controller.active(test.airTemp, band); got != test.want {
			t.Errorf("air temperature %v: active = %v, want %v",
				test.airTemp, got, test.want)
		}
	}
}
