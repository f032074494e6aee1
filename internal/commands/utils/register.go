package utils

import (
	"github.com/AtlasStudios/AtlasModGo/pkg/discord"
)

// RegisterUtilsCommands registers all utility commands as /utils subcommands
func RegisterUtilsCommands(client *discord.ExtendedClient) {
	// Create individual subcommands (each can be in its own file)
	pingCmd := createPingCommand()
	statusCmd := createStatusCommand()

	// Build the /utils command group with all subcommands
	utilsGroup := client.CommandHandler.BuildCommandGroup(
		"utils",
		"Utility commands",
		pingCmd,
		statusCmd,
	)

	// Register the command group
	client.CommandHandler.AddGlobalCommand(utilsGroup)
}
