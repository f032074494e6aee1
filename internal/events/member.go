// Package events provides event handlers for member events
package events

import (
	"fmt"

	"github.com/AtlasStudios/AtlasModGo/pkg/discord"
	"github.com/AtlasStudios/AtlasModGo/pkg/logger"
	"github.com/bwmarrin/discordgo"
)

// RegisterMemberEvents registers all member-related event handlers
func RegisterMemberEvents(client *discord.ExtendedClient) {
	client.EventHandler.OnGuildMemberAdd(onGuildMemberAdd)
	client.EventHandler.OnGuildMemberRemove(onGuildMemberRemove)
}

// onGuildMemberAdd is called when a new member joins the server
func onGuildMemberAdd(s *discordgo.Session, m *discordgo.GuildMemberAdd) {
	logger.Info(fmt.Sprintf("👋 Member joined: %s (%s) in guild %s",
		m.User.Username, m.User.ID, m.GuildID), "Member")
}

// onGuildMemberRemove is called when a member leaves the server.
// Kicks and bans applied through the panel also land here, which gives the
// log a second trace of every removal next to the audit embed.
func onGuildMemberRemove(s *discordgo.Session, m *discordgo.GuildMemberRemove) {
	logger.Info(fmt.Sprintf("👋 Member left: %s (%s) from guild %s",
		m.User.Username, m.User.ID, m.GuildID), "Member")
}
