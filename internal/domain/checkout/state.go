package checkout

// State is the checkout lifecycle state
type State string

const (
	StateFilling    State = "FILLING"
	StateSubmitting State = "SUBMITTING"
	StateComplete   State = "COMPLETE"
)

// IsValid checks if the state is known
func (s State) IsValid() bool {
	switch s {
	case StateFilling, StateSubmitting, StateComplete:
		return true
	}
	return false
}

// String returns the string representation of State
func (s State) String() string {
	return string(s)
}

// CanTransitionTo checks if the state can transition to the target state.
// Submitting only ever leaves to Complete or back to Filling.
func (s State) CanTransitionTo(target State) bool {
	switch s {
	case StateFilling:
		return target == StateSubmitting
	case StateSubmitting:
		return target == StateComplete || target == StateFilling
	case StateComplete:
		return target == StateFilling
	}
	return false
}
