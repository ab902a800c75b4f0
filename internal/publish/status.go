package publish

// ItemState is the publish state of a single resource
type ItemState int

const (
	StateNormal ItemState = iota
	StatePublish
	StateRemove
)

func (s ItemState) String() string {
	switch s {
	case StateNormal:
		return "normal"
	case StatePublish:
		return "publish"
	case StateRemove:
		return "remove"
	default:
		return "unknown"
	}
}

// Signal is a user intent applied to one or more item statuses
type Signal int

const (
	SignalPublish Signal = iota
	SignalUnpublish
	SignalRemove
	SignalUnremove
)

func (s Signal) String() string {
	switch s {
	case SignalPublish:
		return "publish"
	case SignalUnpublish:
		return "unpublish"
	case SignalRemove:
		return "remove"
	case SignalUnremove:
		return "unremove"
	default:
		return "unknown"
	}
}

// UpdateHandler is called after an item status handled a signal
type UpdateHandler interface {
	Update(id string, status *ItemStatus)
}

// UpdateHandlerFunc adapts a plain function to UpdateHandler
type UpdateHandlerFunc func(id string, status *ItemStatus)

// Update calls f(id, status)
func (f UpdateHandlerFunc) Update(id string, status *ItemStatus) {
	f(id, status)
}

// ItemStatus is the selection state machine of one publish resource.
//
// A disabled status never reaches StatePublish. The disabled flag is fixed at
// construction.
type ItemStatus struct {
	id       string
	state    ItemState
	disabled bool
	handler  UpdateHandler
}

// NewItemStatus creates a status. A disabled status requested in StatePublish
// starts in StateNormal instead. handler may be nil.
func NewItemStatus(id string, state ItemState, disabled bool, handler UpdateHandler) *ItemStatus {
	if disabled && state == StatePublish {
		state = StateNormal
	}
	return &ItemStatus{
		id:       id,
		state:    state,
		disabled: disabled,
		handler:  handler,
	}
}

// ID returns the resource id
func (s *ItemStatus) ID() string {
	return s.id
}

// State returns the current state
func (s *ItemStatus) State() ItemState {
	return s.state
}

// IsDisabled reports whether the resource has a problem that blocks publishing
func (s *ItemStatus) IsDisabled() bool {
	return s.disabled
}

// HandleSignal applies sig and then notifies the update handler, whether or
// not the state changed.
func (s *ItemStatus) HandleSignal(sig Signal) {
	s.state = nextState(s.state, s.disabled, sig)
	if s.handler != nil {
		s.handler.Update(s.id, s)
	}
}

func nextState(current ItemState, disabled bool, sig Signal) ItemState {
	if disabled {
		switch sig {
		case SignalRemove:
			return StateRemove
		case SignalUnremove:
			return StateNormal
		default:
			return current
		}
	}

	switch sig {
	case SignalPublish:
		// remove wins until the item is explicitly unremoved
		if current == StateRemove {
			return current
		}
		return StatePublish
	case SignalUnpublish:
		if current == StatePublish {
			return StateNormal
		}
		return current
	case SignalRemove:
		return StateRemove
	case SignalUnremove:
		return StatePublish
	default:
		return current
	}
}
