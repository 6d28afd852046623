package rulebased

import (
	"gonum.org/v1/gonum/spatial/r1"
)

// Seasonal comfort temperature bands (°C)
var (
	winterBand = r1.Interval{Min: 20.0, Max: 23.0}
	summerBand = r1.Interval{Min: 23.0, Max: 26.0}
)

// comfortRange returns the comfort temperature band applying in the
// argument month. Months outside 1-12 fall into the summer band, like
// any other non-winter month.
func (c *Controller) comfortRange(month int) r1.Interval {
	if c.winter[month] {
		return winterBand
	}
	return summerBand
}

// active decides whether active heating or cooling is required given
// the air temperature and the comfort band
func (c *Controller) active(airTemp float64, band r1.Interval) bool {
	if c.activation == Margin {
		return airTemp > band.Max+c.margin || airTemp < band.Min-c.margin
	}
	return airTemp > band.Max || airTemp < band.Min
}

// windowFanSpeed returns the desired window-fan speed for a CO2
// concentration (ppm). The rule is a monotonic non-decreasing
// staircase; each band includes its lower bound.
func windowFanSpeed(co2 float64) float64 {
	switch {
	case co2 < 800.0:
		return 0.0
	case co2 < 1000.0:
		return 0.5
	case co2 < 1200.0:
		return 0.75
	default:
		return 1.0
	}
}
