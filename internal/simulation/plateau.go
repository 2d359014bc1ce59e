package simulation

// LongDisturbanceMinutes is both the nominal length above which a disturbance
// counts as long and the number of minutes spent inside one that trips a fault.
const LongDisturbanceMinutes = 3

// plateau holds the temperature at a fixed value for the length of one
// sustained disturbance.
type plateau struct {
	active      bool
	target      float64
	intensity   float64
	remaining   int
	nominal     int
	consecutive int // minutes spent inside the current plateau
}

func (p *plateau) begin(current, intensity float64, minutes, nominal int) {
	*p = plateau{
		active:    true,
		target:    current + intensity,
		intensity: intensity,
		remaining: max(minutes, 1),
		nominal:   nominal,
	}
}

// tick consumes one minute of the plateau and returns the held temperature.
func (p *plateau) tick() float64 {
	p.consecutive++
	p.remaining--
	return p.target
}

// longFault reports whether the current plateau has tripped the fault rule.
// Accounting is per plateau: the counter restarts with every new plateau.
func (p *plateau) longFault() bool {
	return p.nominal > LongDisturbanceMinutes && p.consecutive >= LongDisturbanceMinutes
}

// release clears the plateau once its last minute has been consumed.
func (p *plateau) release() {
	if p.remaining <= 0 {
		*p = plateau{}
	}
}
