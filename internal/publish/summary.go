package publish

// CheckState is the tri-state of a select-all checkbox
type CheckState int

const (
	CheckOff CheckState = iota
	CheckPartial
	CheckOn
)

func (c CheckState) String() string {
	switch c {
	case CheckOff:
		return "off"
	case CheckPartial:
		return "partial"
	case CheckOn:
		return "on"
	default:
		return "unknown"
	}
}

// ItemStateSummary counts the item states within one scope (a group or the
// whole model). It is derived on demand and never updated in place by the model.
type ItemStateSummary struct {
	normal  int
	publish int
	remove  int
	marked  int // items actually in StateRemove
}

// AddState counts one more item in state
func (s *ItemStateSummary) AddState(state ItemState) {
	s.AddItem(state, false)
}

// AddItem counts one more item in state. A disabled item is tallied as
// remove but only counts as marked for removal when it is in StateRemove.
func (s *ItemStateSummary) AddItem(state ItemState, disabled bool) {
	if state == StateRemove {
		s.marked++
	}
	if disabled {
		state = StateRemove
	}
	switch state {
	case StateNormal:
		s.normal++
	case StatePublish:
		s.publish++
	case StateRemove:
		s.remove++
	}
}

func (s *ItemStateSummary) NormalCount() int  { return s.normal }
func (s *ItemStateSummary) PublishCount() int { return s.publish }
func (s *ItemStateSummary) RemoveCount() int  { return s.remove }

// MarkedCount returns the number of items marked for removal, leaving out
// disabled items that were never removed
func (s *ItemStateSummary) MarkedCount() int { return s.marked }

// Total returns the number of counted items
func (s *ItemStateSummary) Total() int {
	return s.normal + s.publish + s.remove
}

// PublishCheckState derives the publish checkbox. Items counted as remove
// (which includes disabled items) do not take part.
func (s *ItemStateSummary) PublishCheckState() CheckState {
	switch {
	case s.publish == 0:
		return CheckOff
	case s.normal == 0:
		return CheckOn
	default:
		return CheckPartial
	}
}

// RemoveCheckState derives the remove checkbox from the items marked for
// removal
func (s *ItemStateSummary) RemoveCheckState() CheckState {
	switch {
	case s.marked == 0:
		return CheckOff
	case s.marked == s.Total():
		return CheckOn
	default:
		return CheckPartial
	}
}
