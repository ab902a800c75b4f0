package publish

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var allSignals = []Signal{SignalPublish, SignalUnpublish, SignalRemove, SignalUnremove}
var allStates = []ItemState{StateNormal, StatePublish, StateRemove}

type recordingHandler struct {
	calls []string
}

func (h *recordingHandler) Update(id string, status *ItemStatus) {
	h.calls = append(h.calls, id+":"+status.State().String())
}

func TestNewItemStatusDisabledNeverStartsPublished(t *testing.T) {
	s := NewItemStatus("a", StatePublish, true, nil)
	assert.Equal(t, StateNormal, s.State())
	assert.True(t, s.IsDisabled())

	s = NewItemStatus("b", StatePublish, false, nil)
	assert.Equal(t, StatePublish, s.State())
	assert.False(t, s.IsDisabled())
}

func TestTransitions(t *testing.T) {
	tests := []struct {
		name     string
		start    ItemState
		disabled bool
		signal   Signal
		want     ItemState
	}{
		{"disabled remove from normal", StateNormal, true, SignalRemove, StateRemove},
		{"disabled remove from remove", StateRemove, true, SignalRemove, StateRemove},
		{"disabled unremove", StateRemove, true, SignalUnremove, StateNormal},
		{"disabled unremove from normal", StateNormal, true, SignalUnremove, StateNormal},
		{"disabled publish ignored", StateNormal, true, SignalPublish, StateNormal},
		{"disabled publish ignored on remove", StateRemove, true, SignalPublish, StateRemove},
		{"disabled unpublish ignored", StateRemove, true, SignalUnpublish, StateRemove},
		{"publish from normal", StateNormal, false, SignalPublish, StatePublish},
		{"publish from publish", StatePublish, false, SignalPublish, StatePublish},
		{"publish on remove is ignored", StateRemove, false, SignalPublish, StateRemove},
		{"unpublish from publish", StatePublish, false, SignalUnpublish, StateNormal},
		{"unpublish from normal", StateNormal, false, SignalUnpublish, StateNormal},
		{"unpublish from remove", StateRemove, false, SignalUnpublish, StateRemove},
		{"remove from normal", StateNormal, false, SignalRemove, StateRemove},
		{"remove overrides publish", StatePublish, false, SignalRemove, StateRemove},
		{"unremove re-enables publish", StateRemove, false, SignalUnremove, StatePublish},
		{"unremove from normal", StateNormal, false, SignalUnremove, StatePublish},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewItemStatus("id", tt.start, tt.disabled, nil)
			s.HandleSignal(tt.signal)
			assert.Equal(t, tt.want, s.State())
		})
	}
}

func TestHandlerCalledOnEverySignal(t *testing.T) {
	h := &recordingHandler{}
	s := NewItemStatus("res", StateNormal, true, h)

	// Both signals are no-ops for a disabled item in state normal
	s.HandleSignal(SignalPublish)
	s.HandleSignal(SignalUnpublish)
	s.HandleSignal(SignalRemove)

	require.Len(t, h.calls, 3)
	assert.Equal(t, []string{"res:normal", "res:normal", "res:remove"}, h.calls)
}

func TestUpdateHandlerFunc(t *testing.T) {
	var gotID string
	var gotStatus *ItemStatus
	s := NewItemStatus("x", StateNormal, false, UpdateHandlerFunc(func(id string, status *ItemStatus) {
		gotID = id
		gotStatus = status
	}))

	s.HandleSignal(SignalPublish)

	assert.Equal(t, "x", gotID)
	assert.Same(t, s, gotStatus)
}

func TestRemoveAlwaysSticks(t *testing.T) {
	for _, disabled := range []bool{true, false} {
		for _, start := range allStates {
			s := NewItemStatus("id", start, disabled, nil)
			s.HandleSignal(SignalRemove)
			assert.Equal(t, StateRemove, s.State(), "start=%s disabled=%v", start, disabled)
		}
	}
}

func TestUnremoveTarget(t *testing.T) {
	for _, start := range allStates {
		s := NewItemStatus("id", start, true, nil)
		s.HandleSignal(SignalUnremove)
		assert.Equal(t, StateNormal, s.State(), "disabled start=%s", start)

		s = NewItemStatus("id", start, false, nil)
		s.HandleSignal(SignalUnremove)
		assert.Equal(t, StatePublish, s.State(), "enabled start=%s", start)
	}
}

func TestSignalsAreIdempotent(t *testing.T) {
	for _, disabled := range []bool{true, false} {
		for _, start := range allStates {
			for _, sig := range allSignals {
				once := NewItemStatus("id", start, disabled, nil)
				once.HandleSignal(sig)

				twice := NewItemStatus("id", start, disabled, nil)
				twice.HandleSignal(sig)
				twice.HandleSignal(sig)

				assert.Equal(t, once.State(), twice.State(),
					"start=%s disabled=%v signal=%s", start, disabled, sig)
			}
		}
	}
}

// Walks every signal sequence up to length 5 from every start state
func TestDisabledNeverReachesPublish(t *testing.T) {
	var walk func(s ItemState, depth int)
	walk = func(s ItemState, depth int) {
		if depth == 0 {
			return
		}
		for _, sig := range allSignals {
			status := NewItemStatus("id", s, true, nil)
			status.HandleSignal(sig)
			require.NotEqual(t, StatePublish, status.State(), "signal %s from %s", sig, s)
			walk(status.State(), depth-1)
		}
	}

	for _, start := range allStates {
		initial := NewItemStatus("id", start, true, nil)
		require.NotEqual(t, StatePublish, initial.State())
		walk(initial.State(), 5)
	}
}

func TestStringers(t *testing.T) {
	assert.Equal(t, "publish", StatePublish.String())
	assert.Equal(t, "unknown", ItemState(42).String())
	assert.Equal(t, "unremove", SignalUnremove.String())
	assert.Equal(t, "unknown", Signal(-1).String())
}
