package diary

// State is a position in the publish state machine
type State int

const (
	StateNotInitialized State = iota
	StateInitialized
	StateRemoteVerified
	StateEntryWritten
	StatePruned
	StatePublished
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateNotInitialized:
		return "not-initialized"
	case StateInitialized:
		return "initialized"
	case StateRemoteVerified:
		return "remote-verified"
	case StateEntryWritten:
		return "entry-written"
	case StatePruned:
		return "pruned"
	case StatePublished:
		return "published"
	case StateFailed:
		return "failed"
	}

	return "unknown"
}

// next is the state a successful transition out of s reaches, and the step
// that performs it.
func (s State) next() (State, Step, bool) {
	switch s {
	case StateNotInitialized:
		return StateInitialized, StepInitRepository, true
	case StateInitialized:
		return StateRemoteVerified, StepVerifyRemote, true
	case StateRemoteVerified:
		return StateEntryWritten, StepWriteEntry, true
	case StateEntryWritten:
		return StatePruned, StepPruneEntries, true
	case StatePruned:
		return StatePublished, StepPublish, true
	}

	return s, "", false
}
