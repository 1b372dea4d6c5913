package agent

// TurnState is the position of the loop within a user turn.
type TurnState string

const (
	StateAwaitingUserInput TurnState = "awaiting_user_input"
	StateReasoning         TurnState = "reasoning"
	StateToolDispatch      TurnState = "tool_dispatch"
	StateToolObserved      TurnState = "tool_observed"
	StateAnswered          TurnState = "answered"
)

// String returns the string representation of the state
func (s TurnState) String() string {
	return string(s)
}

// IsValid checks if the state is one of the defined turn states
func (s TurnState) IsValid() bool {
	switch s {
	case StateAwaitingUserInput, StateReasoning, StateToolDispatch, StateToolObserved, StateAnswered:
		return true
	default:
		return false
	}
}

// validTransitions lists the states reachable from each state.
var validTransitions = map[TurnState][]TurnState{
	StateAwaitingUserInput: {StateReasoning},
	StateReasoning:         {StateToolDispatch, StateAnswered, StateAwaitingUserInput},
	StateToolDispatch:      {StateToolObserved, StateAwaitingUserInput},
	StateToolObserved:      {StateReasoning},
	StateAnswered:          {StateAwaitingUserInput},
}

// CanTransitionTo reports whether the loop may move from s to target. Any
// failure mid-turn returns to StateAwaitingUserInput.
func (s TurnState) CanTransitionTo(target TurnState) bool {
	for _, next := range validTransitions[s] {
		if next == target {
			return true
		}
	}
	return false
}
