package domain

// EventType represents the type of domain event
type EventType string

// Event types
const (
	EventPublishListLoaded EventType = "PublishListLoaded"
	EventSelectionChanged  EventType = "SelectionChanged"
	EventItemUpdated       EventType = "ItemUpdated"
	EventOptionsChanged    EventType = "OptionsChanged"
	EventPublishSubmitted  EventType = "PublishSubmitted"
	EventError             EventType = "Error"
	EventConfigLoaded      EventType = "ConfigLoaded"
	EventConfigSaved       EventType = "ConfigSaved"
)

// DomainEvent is the interface for all domain events
type DomainEvent interface {
	Type() EventType
}

// PublishListLoadedEvent is emitted when a fresh publish list replaced the model
type PublishListLoadedEvent struct {
	Groups    int
	Resources int
	Problems  int
}

func (e PublishListLoadedEvent) Type() EventType { return EventPublishListLoaded }

// SelectionChangedEvent is emitted after every signal sent to the model
type SelectionChangedEvent struct {
	PublishCount int
	RemoveCount  int
	CanSubmit    bool
}

func (e SelectionChangedEvent) Type() EventType { return EventSelectionChanged }

// ItemUpdatedEvent is emitted when a single item status handled a signal
type ItemUpdatedEvent struct {
	ID    string
	State string
}

func (e ItemUpdatedEvent) Type() EventType { return EventItemUpdated }

// OptionsChangedEvent is emitted when the user toggles a publish option
type OptionsChangedEvent struct {
	Options PublishOptions
}

func (e OptionsChangedEvent) Type() EventType { return EventOptionsChanged }

// PublishSubmittedEvent is emitted after a publish request was accepted by the source
type PublishSubmittedEvent struct {
	Result PublishResult
}

func (e PublishSubmittedEvent) Type() EventType { return EventPublishSubmitted }

// ErrorEvent is emitted when an error occurs
type ErrorEvent struct {
	Message string
	Err     error
}

func (e ErrorEvent) Type() EventType { return EventError }

// ConfigLoadedEvent is emitted when configuration is loaded
type ConfigLoadedEvent struct {
	Path string
}

func (e ConfigLoadedEvent) Type() EventType { return EventConfigLoaded }

// ConfigSavedEvent is emitted when configuration is saved
type ConfigSavedEvent struct {
	Path string
}

func (e ConfigSavedEvent) Type() EventType { return EventConfigSaved }
