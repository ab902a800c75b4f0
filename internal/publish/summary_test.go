package publish

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func summaryOf(states ...ItemState) *ItemStateSummary {
	s := &ItemStateSummary{}
	for _, st := range states {
		s.AddState(st)
	}
	return s
}

func TestSummaryCounts(t *testing.T) {
	s := summaryOf(StateNormal, StatePublish, StatePublish, StateRemove)

	assert.Equal(t, 1, s.NormalCount())
	assert.Equal(t, 2, s.PublishCount())
	assert.Equal(t, 1, s.RemoveCount())
	assert.Equal(t, 4, s.Total())
}

func TestPublishCheckState(t *testing.T) {
	tests := []struct {
		name    string
		summary *ItemStateSummary
		want    CheckState
	}{
		{"empty", summaryOf(), CheckOff},
		{"all normal", summaryOf(StateNormal, StateNormal), CheckOff},
		{"all publish", summaryOf(StatePublish, StatePublish), CheckOn},
		{"publish plus removed", summaryOf(StatePublish, StateRemove), CheckOn},
		{"mixed", summaryOf(StatePublish, StateNormal), CheckPartial},
		{"only removed", summaryOf(StateRemove), CheckOff},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.summary.PublishCheckState())
		})
	}
}

func TestRemoveCheckState(t *testing.T) {
	assert.Equal(t, CheckOff, summaryOf().RemoveCheckState())
	assert.Equal(t, CheckOff, summaryOf(StatePublish).RemoveCheckState())
	assert.Equal(t, CheckPartial, summaryOf(StatePublish, StateRemove).RemoveCheckState())
	assert.Equal(t, CheckOn, summaryOf(StateRemove, StateRemove).RemoveCheckState())
}

func TestRemoveCheckStateIgnoresUnmarkedDisabled(t *testing.T) {
	s := &ItemStateSummary{}
	s.AddItem(StateNormal, true)
	s.AddItem(StateNormal, true)

	assert.Equal(t, 2, s.RemoveCount())
	assert.Equal(t, 0, s.MarkedCount())
	assert.Equal(t, CheckOff, s.RemoveCheckState())

	s.AddItem(StateRemove, false)
	assert.Equal(t, CheckPartial, s.RemoveCheckState())

	marked := &ItemStateSummary{}
	marked.AddItem(StateRemove, true)
	marked.AddItem(StateRemove, false)
	assert.Equal(t, CheckOn, marked.RemoveCheckState())
}
