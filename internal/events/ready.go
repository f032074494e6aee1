// Package events provides event handlers for the bot
package events

import (
	"fmt"

	"github.com/AtlasStudios/AtlasModGo/pkg/discord"
	"github.com/AtlasStudios/AtlasModGo/pkg/logger"
	"github.com/bwmarrin/discordgo"
)

// RegisterReadyEvent registers the ready event handler
func RegisterReadyEvent(client *discord.ExtendedClient) {
	client.EventHandler.OnReady(onReady)
}

// onReady is called when the bot successfully connects to Discord
func onReady(s *discordgo.Session, r *discordgo.Ready) {
	logger.Success(fmt.Sprintf("✅ Bot connected: %s#%s", r.User.Username, r.User.Discriminator), "Ready")
	logger.Info(fmt.Sprintf("📊 Connected to %d guilds", len(r.Guilds)), "Ready")

	// Set the bot presence
	err := s.UpdateWatchStatus(0, "over the server | /modpanel")
	if err != nil {
		logger.Error(fmt.Sprintf("Error setting presence: %v", err), "Ready")
		return
	}

	logger.Debug("Bot presence set", "Ready")
}
