package utils

import (
	"fmt"

	"github.com/AtlasStudios/AtlasModGo/pkg/discord"
	"github.com/AtlasStudios/AtlasModGo/pkg/errors"
)

// createPingCommand creates the /utils ping subcommand
func createPingCommand() *discord.Command {
	return discord.NewCommand(
		"ping",
		"Check the bot latency",
		"utils",
		pingHandler,
	)
}

// pingHandler handles the /utils ping command
func pingHandler(ctx *discord.CommandContext) error {
	go func() {
		defer errors.RecoverMiddleware()()
		latency := ctx.Client.Session.HeartbeatLatency().Milliseconds()
		ctx.Reply(fmt.Sprintf("🏓 Pong! Latency: %dms", latency))
	}()
	return nil
}
