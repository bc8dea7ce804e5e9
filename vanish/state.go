package vanish

// State is the scheduling state of a Controller.
type State uint8

const (
	// StateIdle: nothing typed yet, no timer pending.
	StateIdle State = iota
	// StateCountingDown: the one-shot countdown is pending.
	StateCountingDown
	// StateVanishing: the recurring tick is live. Only Dispose leaves it.
	StateVanishing
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateCountingDown:
		return "counting-down"
	case StateVanishing:
		return "vanishing"
	default:
		return "unknown"
	}
}
