package rulebased

// State holds the controller's patience counters: the number of
// consecutive prior steps on which the air temperature was outside the
// comfort band, and on which the CO2 concentration was above the
// health threshold. The zero value is the state at episode start.
//
// The controller itself is stateless. Callers thread the State
// returned by one Act call into the next; the counters are the only
// state carried between decisions.
type State struct {
	TempPatience int
	CO2Patience  int
}

// next returns the State after one step on which the argument
// conditions held. Each counter increments while its condition holds
// and resets to zero the instant it clears.
func (s State) next(tempOutOfBand, co2High bool) State {
	if tempOutOfBand {
		s.TempPatience++
	} else {
		s.TempPatience = 0
	}

	if co2High {
		s.CO2Patience++
	} else {
		s.CO2Patience = 0
	}

	return s
}
