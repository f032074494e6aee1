// Package commands provides a registry for organizing bot commands.
// Commands are organized in subdirectories by category (mod, session, utils)
package commands

import (
	"github.com/AtlasStudios/AtlasModGo/internal/commands/mod"
	"github.com/AtlasStudios/AtlasModGo/internal/commands/session"
	"github.com/AtlasStudios/AtlasModGo/internal/commands/utils"
	"github.com/AtlasStudios/AtlasModGo/pkg/discord"
	"github.com/AtlasStudios/AtlasModGo/pkg/moderation"
)

// RegisterAll registers all commands with the Discord client
func RegisterAll(client *discord.ExtendedClient, workflow *moderation.Workflow, votes *moderation.VoteManager, notifier moderation.Notifier) {
	// Moderation panel (/modpanel)
	mod.RegisterModCommands(client, workflow)

	// Session votes (/sessionvote)
	session.RegisterSessionCommands(client, votes, notifier)

	// Utility commands (/utils ping, /utils status)
	utils.RegisterUtilsCommands(client)
}
