package rulebased

import (
	"fmt"

	"github.com/smartroom/gohvac/agent"
	env "github.com/smartroom/gohvac/environment"
)

// Activation selects the rule deciding when climate control engages
type Activation string

const (
	// Strict engages climate control whenever the air temperature is
	// strictly outside the comfort band
	Strict Activation = "Strict"

	// Margin engages climate control only once the air temperature is
	// more than ComfortMargin beyond the comfort band. The margin
	// forms a dead-band around the comfort band which reduces actuator
	// chattering near the band edges.
	Margin Activation = "Margin"
)

// DefaultWinterMonths returns the calendar months during which the
// winter comfort band applies by default: November through March
func DefaultWinterMonths() []int {
	return []int{11, 12, 1, 2, 3}
}

// Config represents a configuration of the rule-based controller.
// Config is JSON serializable.
type Config struct {
	// WinterMonths are the calendar months (1-12) during which the
	// winter comfort band (20-23 °C) applies. All other months use the
	// summer band (23-26 °C).
	WinterMonths []int

	// Activation selects when climate control engages: Strict or
	// Margin
	Activation Activation

	// ComfortMargin is the width of the dead-band beyond each side of
	// the comfort band when Activation is Margin. Ignored under
	// Strict activation.
	ComfortMargin float64

	// Escalate enables patience escalation: the longer the air
	// temperature stays outside the comfort band, or the CO2
	// concentration above the health threshold, the more aggressive
	// the selected setpoints and window-fan speed become.
	Escalate bool

	// PatienceThreshold is the number of consecutive out-of-band steps
	// required per unit of escalation. At the default of 1, every
	// consecutive out-of-band step escalates the selected setpoints by
	// one table entry.
	PatienceThreshold int
}

// NewConfig returns a Config with the default controller settings:
// strict activation, no escalation, and the default winter months
func NewConfig() Config {
	return Config{
		WinterMonths:      DefaultWinterMonths(),
		Activation:        Strict,
		ComfortMargin:     0.5,
		Escalate:          false,
		PatienceThreshold: 1,
	}
}

// CreateAgent creates the rule-based agent that the Config describes.
// The seed is ignored: the controller is deterministic.
func (c Config) CreateAgent(e env.Environment, _ uint64) (agent.Agent, error) {
	return New(e, c)
}

// Validate returns an error if the Config describes no valid
// controller
func (c Config) Validate() error {
	for _, month := range c.WinterMonths {
		if month < 1 || month > 12 {
			return fmt.Errorf("config: winter month %v ∉ [1, 12]",
				month)
		}
	}

	switch c.Activation {
	case Strict, Margin:
	default:
		return fmt.Errorf("config: no such activation rule %v",
			c.Activation)
	}

	if c.ComfortMargin < 0 {
		return fmt.Errorf("config: comfort margin must be non-negative, "+
			"got %v", c.ComfortMargin)
	}

	if c.PatienceThreshold < 1 {
		return fmt.Errorf("config: patience threshold must be positive, "+
			"got %v", c.PatienceThreshold)
	}

	return nil
}
