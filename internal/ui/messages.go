package ui

import (
	"cmspublish/internal/domain"
	"cmspublish/internal/eventbus"
)

// EventMsg wraps a domain event for the UI
type EventMsg struct {
	Event eventbus.DomainEvent
}

// listLoadedMsg carries a fetched publish list
type listLoadedMsg struct {
	seq           int
	groups        []domain.PublishGroup
	keepSelection bool
	err           error
}

// submitResultMsg carries the outcome of a publish request
type submitResultMsg struct {
	result domain.PublishResult
	err    error
}

// pagerMsg reports that the pager exited
type pagerMsg struct {
	err error
}

// pauseRenderingMsg signals to pause Bubble Tea rendering
type pauseRenderingMsg struct{}

// resumeRenderingMsg signals to resume Bubble Tea rendering
type resumeRenderingMsg struct{}

// clearStatusMsg clears the status line
type clearStatusMsg struct{}
