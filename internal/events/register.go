// Package events provides a registry for organizing bot events.
package events

import (
	"github.com/AtlasStudios/AtlasModGo/pkg/discord"
	"github.com/AtlasStudios/AtlasModGo/pkg/logger"
)

// RegisterAll registers all events with the Discord client
func RegisterAll(client *discord.ExtendedClient) {
	logger.System("📋 Registering bot events...", "Events")

	// Ready event (bot startup)
	RegisterReadyEvent(client)

	// Member events (join/leave)
	RegisterMemberEvents(client)

	logger.Success("✅ All events registered", "Events")
}
