package checker

// State is a step of one update check.
type State uint8

const (
	StateIdle State = iota
	StateLockPending
	StateOfficialCheck
	StateAURCheck
	StateAggregated
	StateNotifying
	StateDone
	StateFailed
)

var stateNames = [...]string{
	StateIdle:          "idle",
	StateLockPending:   "lock_pending",
	StateOfficialCheck: "official_check",
	StateAURCheck:      "aur_check",
	StateAggregated:    "aggregated",
	StateNotifying:     "notifying",
	StateDone:          "done",
	StateFailed:        "failed",
}

func (s State) String() string {
	if int(s) < len(stateNames) {
		return stateNames[s]
	}
	return "unknown"
}

// Terminal reports whether no further transition follows s.
func (s State) Terminal() bool {
	return s == StateDone || s == StateFailed
}
