// Package discord provides the event handler for managing Discord events.
package discord

import (
	"sync"

	"github.com/AtlasStudios/AtlasModGo/pkg/logger"
	"github.com/bwmarrin/discordgo"
)

// EventHandler manages event loading and registration
type EventHandler struct {
	client *ExtendedClient
	events []interface{}
	mu     sync.RWMutex
}

// NewEventHandler creates a new EventHandler
func NewEventHandler(client *ExtendedClient) *EventHandler {
	return &EventHandler{
		client: client,
		events: make([]interface{}, 0),
	}
}

// LoadEvents loads all events from the events registry
// In Go, we register events programmatically instead of reading from files
func (eh *EventHandler) LoadEvents() error {
	logger.System("Loading events...", "EventHandler")

	// Events are registered programmatically using RegisterEvent

	logger.System("Event loading finished.", "EventHandler")
	return nil
}

// RegisterEvent adds an event handler to the Discord session
func (eh *EventHandler) RegisterEvent(handler interface{}) {
	eh.client.Session.AddHandler(handler)
	eh.mu.Lock()
	eh.events = append(eh.events, handler)
	eh.mu.Unlock()
	logger.Debug("Event registered", "EventHandler")
}

// The On* methods take plain func signatures on purpose: discordgo's
// AddHandler matches handlers by exact type, so a handler boxed in a named
// function type is rejected and never called.

// OnReady registers a ready event handler
func (eh *EventHandler) OnReady(handler func(s *discordgo.Session, r *discordgo.Ready)) {
	eh.RegisterEvent(handler)
	logger.Debug("'Ready' event registered", "EventHandler")
}

// OnGuildMemberAdd registers a guild member add event handler
func (eh *EventHandler) OnGuildMemberAdd(handler func(s *discordgo.Session, m *discordgo.GuildMemberAdd)) {
	eh.RegisterEvent(handler)
	logger.Debug("'GuildMemberAdd' event registered", "EventHandler")
}

// OnGuildMemberRemove registers a guild member remove event handler
func (eh *EventHandler) OnGuildMemberRemove(handler func(s *discordgo.Session, m *discordgo.GuildMemberRemove)) {
	eh.RegisterEvent(handler)
	logger.Debug("'GuildMemberRemove' event registered", "EventHandler")
}
