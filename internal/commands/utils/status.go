package utils

import (
	"fmt"

	"github.com/AtlasStudios/AtlasModGo/pkg/database"
	"github.com/AtlasStudios/AtlasModGo/pkg/discord"
	"github.com/AtlasStudios/AtlasModGo/pkg/errors"
)

// createStatusCommand creates the /utils status subcommand
func createStatusCommand() *discord.Command {
	return discord.NewCommand(
		"status",
		"Show the bot status",
		"utils",
		statusHandler,
	).RequiresDatabase()
}

// statusHandler handles the /utils status command
func statusHandler(ctx *discord.CommandContext) error {
	go func() {
		defer errors.RecoverMiddleware()()
		db := database.Get()
		dbStatus, _ := db.GetStatus()

		recorded := "n/a"
		if database.GlobalPunishments != nil {
			if count, err := database.GlobalPunishments.Count(); err == nil {
				recorded = fmt.Sprintf("%d", count)
			}
		}

		ctx.Reply(fmt.Sprintf(
			"📊 **Bot Status**\n"+
				"• Bot: 🟢 Online\n"+
				"• Database: %s\n"+
				"• Guilds: %d\n"+
				"• Punishments recorded: %s",
			dbStatus,
			ctx.Client.GuildCount(),
			recorded,
		))
	}()
	return nil
}
