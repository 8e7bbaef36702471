package diary

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestState_Sequence(t *testing.T) {
	var (
		got   []State
		steps []Step
	)

	for s := StateNotInitialized; ; {
		next, step, ok := s.next()
		if !ok {
			break
		}

		got = append(got, next)
		steps = append(steps, step)
		s = next
	}

	assert.Equal(t, []State{StateInitialized, StateRemoteVerified, StateEntryWritten, StatePruned, StatePublished}, got)
	assert.Equal(t, []Step{StepInitRepository, StepVerifyRemote, StepWriteEntry, StepPruneEntries, StepPublish}, steps)

	_, _, ok := StateFailed.next()
	assert.False(t, ok)
}

func TestState_String(t *testing.T) {
	assert.Equal(t, "not-initialized", StateNotInitialized.String())
	assert.Equal(t, "published", StatePublished.String())
	assert.Equal(t, "failed", StateFailed.String())
	assert.Equal(t, "unknown", State(42).String())
}
