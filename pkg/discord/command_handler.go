// Package discord provides the command handler for loading and registering commands.
package discord

import (
	"github.com/AtlasStudios/AtlasModGo/pkg/config"
	"github.com/AtlasStudios/AtlasModGo/pkg/logger"
	"github.com/bwmarrin/discordgo"
)

// CommandHandler manages command loading and registration
type CommandHandler struct {
	client           *ExtendedClient
	slashCommands    []*discordgo.ApplicationCommand
	slashCommandsDev []*discordgo.ApplicationCommand
}

// NewCommandHandler creates a new CommandHandler
func NewCommandHandler(client *ExtendedClient) *CommandHandler {
	return &CommandHandler{
		client:           client,
		slashCommands:    make([]*discordgo.ApplicationCommand, 0),
		slashCommandsDev: make([]*discordgo.ApplicationCommand, 0),
	}
}

// LoadCommands loads all commands from the commands registry
// In Go, we register commands programmatically instead of reading from files
func (ch *CommandHandler) LoadCommands() error {
	logger.System("Loading commands...", "CommandHandler")

	// Commands are registered programmatically using RegisterCommand

	logger.System("Command loading finished.", "CommandHandler")
	return nil
}

// RegisterCommand adds a command to the handler
func (ch *CommandHandler) RegisterCommand(cmd *Command) {
	ch.client.Commands.Set(cmd.Name, cmd)

	appCmd := cmd.ToApplicationCommand()

	if cmd.IsDev {
		ch.slashCommandsDev = append(ch.slashCommandsDev, appCmd)
	} else {
		ch.slashCommands = append(ch.slashCommands, appCmd)
	}

	logger.Debug("Command registered: "+cmd.Name, "CommandHandler")
}

// RegisterSubcommand adds a subcommand to an existing command group
func (ch *CommandHandler) RegisterSubcommand(groupName string, cmd *Command) {
	fullName := groupName + "." + cmd.Name
	ch.client.Commands.Set(fullName, cmd)
	logger.Debug("Subcommand registered: "+fullName, "CommandHandler")
}

// BuildCommandGroup creates a command group with subcommands
func (ch *CommandHandler) BuildCommandGroup(name, description string, subcommands ...*Command) *discordgo.ApplicationCommand {
	options := make([]*discordgo.ApplicationCommandOption, 0, len(subcommands))

	for _, cmd := range subcommands {
		fullName := name + "." + cmd.Name
		ch.client.Commands.Set(fullName, cmd)

		opt := &discordgo.ApplicationCommandOption{
			Type:        discordgo.ApplicationCommandOptionSubCommand,
			Name:        cmd.Name,
			Description: cmd.Description,
			Options:     cmd.Options,
		}
		options = append(options, opt)
	}

	return &discordgo.ApplicationCommand{
		Name:        name,
		Description: description,
		Options:     options,
	}
}

// RegisterCommands registers all slash commands with Discord.
// When a guild is configured the commands are registered there, which makes
// them available immediately. Global registration can take up to an hour to
// propagate.
func (ch *CommandHandler) RegisterCommands() {
	cfg := config.Get()

	scope := ""
	if cfg != nil && cfg.GuildID != "" {
		scope = cfg.GuildID
		logger.Info("🔄 Registering commands in guild "+scope+"...", "CommandHandler")
	} else {
		logger.Info("🔄 Registering global commands...", "CommandHandler")
	}

	for _, cmd := range ch.slashCommands {
		_, err := ch.client.Session.ApplicationCommandCreate(
			ch.client.Session.State.User.ID,
			scope,
			cmd,
		)
		if err != nil {
			logger.Error("Error registering command "+cmd.Name+": "+err.Error(), "CommandHandler")
		}
	}

	logger.Success("✅ Commands registered.", "CommandHandler")

	// Register dev commands only in the configured guild
	if cfg != nil && cfg.GuildID != "" && len(ch.slashCommandsDev) > 0 {
		logger.Info("🔄 Registering dev commands in guild "+cfg.GuildID+"...", "CommandHandler")

		for _, cmd := range ch.slashCommandsDev {
			_, err := ch.client.Session.ApplicationCommandCreate(
				ch.client.Session.State.User.ID,
				cfg.GuildID,
				cmd,
			)
			if err != nil {
				logger.Error("Error registering dev command "+cmd.Name+": "+err.Error(), "CommandHandler")
			}
		}

		logger.Success("✅ Dev commands registered.", "CommandHandler")
	}
}

// UnregisterCommands removes all registered global commands from Discord
func (ch *CommandHandler) UnregisterCommands() error {
	commands, err := ch.client.Session.ApplicationCommands(ch.client.Session.State.User.ID, "")
	if err != nil {
		return err
	}

	for _, cmd := range commands {
		err := ch.client.Session.ApplicationCommandDelete(ch.client.Session.State.User.ID, "", cmd.ID)
		if err != nil {
			logger.Error("Error deleting command "+cmd.Name+": "+err.Error(), "CommandHandler")
		}
	}

	logger.Success("Global commands removed.", "CommandHandler")
	return nil
}

// UnregisterGuildCommands removes all commands registered in a specific guild
func (ch *CommandHandler) UnregisterGuildCommands(guildID string) error {
	commands, err := ch.client.Session.ApplicationCommands(ch.client.Session.State.User.ID, guildID)
	if err != nil {
		return err
	}

	for _, cmd := range commands {
		err := ch.client.Session.ApplicationCommandDelete(ch.client.Session.State.User.ID, guildID, cmd.ID)
		if err != nil {
			logger.Error("Error deleting guild command "+cmd.Name+": "+err.Error(), "CommandHandler")
		}
	}

	logger.Success("Guild commands removed.", "CommandHandler")
	return nil
}

// ListGlobalCommands returns all commands registered globally
func (ch *CommandHandler) ListGlobalCommands() ([]*discordgo.ApplicationCommand, error) {
	return ch.client.Session.ApplicationCommands(ch.client.Session.State.User.ID, "")
}

// ListGuildCommands returns all commands registered in a specific guild
func (ch *CommandHandler) ListGuildCommands(guildID string) ([]*discordgo.ApplicationCommand, error) {
	return ch.client.Session.ApplicationCommands(ch.client.Session.State.User.ID, guildID)
}

// SyncCommands removes commands Discord knows about that are no longer
// defined, then registers the current set.
func (ch *CommandHandler) SyncCommands() error {
	cfg := config.Get()
	scope := ""
	if cfg != nil && cfg.GuildID != "" {
		scope = cfg.GuildID
	}

	registered, err := ch.client.Session.ApplicationCommands(ch.client.Session.State.User.ID, scope)
	if err != nil {
		return err
	}

	defined := make(map[string]bool, len(ch.slashCommands))
	for _, cmd := range ch.slashCommands {
		defined[cmd.Name] = true
	}

	for _, cmd := range registered {
		if defined[cmd.Name] {
			continue
		}
		logger.Info("Removing stale command: /"+cmd.Name, "CommandHandler")
		if err := ch.client.Session.ApplicationCommandDelete(ch.client.Session.State.User.ID, scope, cmd.ID); err != nil {
			logger.Error("Error deleting stale command "+cmd.Name+": "+err.Error(), "CommandHandler")
		}
	}

	ch.RegisterCommands()
	return nil
}

// AddGlobalCommand adds a command to the global command list
func (ch *CommandHandler) AddGlobalCommand(cmd *discordgo.ApplicationCommand) {
	ch.slashCommands = append(ch.slashCommands, cmd)
}

// AddDevCommand adds a command to the dev command list
func (ch *CommandHandler) AddDevCommand(cmd *discordgo.ApplicationCommand) {
	ch.slashCommandsDev = append(ch.slashCommandsDev, cmd)
}
