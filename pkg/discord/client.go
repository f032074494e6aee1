// Package discord provides the Discord bot client and related structures.
// It wraps discordgo with additional functionality for command, component
// and event handling.
package discord

import (
	"fmt"
	"sync"
	"time"

	"github.com/AtlasStudios/AtlasModGo/pkg/config"
	"github.com/AtlasStudios/AtlasModGo/pkg/logger"
	"github.com/bwmarrin/discordgo"
)

// DiscordGoLogger wraps the custom logger to implement discordgo.Logger interface
// Note: discordgo.Logger is a function, not an interface
func init() {
	discordgo.Logger = func(msgL int, caller int, format string, a ...interface{}) {
		logger.Info(fmt.Sprintf(format, a...), "DiscordGo")
	}
}

// ExtendedClient wraps discordgo.Session with additional functionality
type ExtendedClient struct {
	Session        *discordgo.Session
	Commands       *CommandCollection
	Components     *ComponentCollection
	Modals         *ComponentCollection
	CommandHandler *CommandHandler
	EventHandler   *EventHandler
	StartTime      time.Time
	mu             sync.RWMutex
	isReady        bool
}

// CommandCollection holds registered commands
type CommandCollection struct {
	commands map[string]*Command
	mu       sync.RWMutex
}

// NewCommandCollection creates a new CommandCollection
func NewCommandCollection() *CommandCollection {
	return &CommandCollection{
		commands: make(map[string]*Command),
	}
}

// Set adds or updates a command
func (cc *CommandCollection) Set(name string, cmd *Command) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.commands[name] = cmd
}

// Get retrieves a command by name
func (cc *CommandCollection) Get(name string) (*Command, bool) {
	cc.mu.RLock()
	defer cc.mu.RUnlock()
	cmd, ok := cc.commands[name]
	return cmd, ok
}

// Size returns the number of commands
func (cc *CommandCollection) Size() int {
	cc.mu.RLock()
	defer cc.mu.RUnlock()
	return len(cc.commands)
}

// All returns all commands
func (cc *CommandCollection) All() map[string]*Command {
	cc.mu.RLock()
	defer cc.mu.RUnlock()
	result := make(map[string]*Command)
	for k, v := range cc.commands {
		result[k] = v
	}
	return result
}

var (
	client *ExtendedClient
	once   sync.Once
)

// Init initializes the global Discord client
func Init(token string) (*ExtendedClient, error) {
	var err error
	once.Do(func() {
		client, err = NewClient(token)
	})
	return client, err
}

// Get returns the global Discord client
func Get() *ExtendedClient {
	return client
}

// NewClient creates a new ExtendedClient
func NewClient(token string) (*ExtendedClient, error) {
	session, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, err
	}

	// Set intents. GuildMembers is required to read member roles for the
	// staff and vote gates.
	session.Identify.Intents = discordgo.IntentsGuilds |
		discordgo.IntentsGuildMessages |
		discordgo.IntentsGuildMembers

	// Configure session
	session.ShardCount = 1
	session.SyncEvents = false
	session.StateEnabled = true
	session.LogLevel = discordgo.LogWarning

	c := &ExtendedClient{
		Session:    session,
		Commands:   NewCommandCollection(),
		Components: NewComponentCollection(),
		Modals:     NewComponentCollection(),
		isReady:    false,
	}

	// Initialize handlers
	c.CommandHandler = NewCommandHandler(c)
	c.EventHandler = NewEventHandler(c)

	return c, nil
}

// Start initializes and starts the bot
func (c *ExtendedClient) Start() error {
	// Load commands
	if err := c.CommandHandler.LoadCommands(); err != nil {
		logger.Error("Failed to load commands: "+err.Error(), "Client")
		return err
	}

	// Load events
	if err := c.EventHandler.LoadEvents(); err != nil {
		logger.Error("Failed to load events: "+err.Error(), "Client")
		return err
	}

	// Add ready handler
	c.Session.AddHandler(func(s *discordgo.Session, r *discordgo.Ready) {
		c.mu.Lock()
		c.isReady = true
		c.mu.Unlock()

		logger.Success("Bot connected as: "+r.User.Username, "Client")

		// Register commands with Discord
		c.CommandHandler.RegisterCommands()
	})

	// Add interaction handler
	c.Session.AddHandler(c.handleInteraction)

	// Set start time
	c.StartTime = time.Now()

	// Open connection
	err := c.Session.Open()
	if err != nil {
		return err
	}
	return nil
}

// handleInteraction handles incoming Discord interactions
func (c *ExtendedClient) handleInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) {
	switch i.Type {
	case discordgo.InteractionApplicationCommandAutocomplete:
		commandName := fullCommandName(i)

		cmd, ok := c.Commands.Get(commandName)
		if !ok {
			return
		}

		if cmd.AutoComplete != nil {
			ctx := &CommandContext{
				Session:     s,
				Interaction: i,
				Client:      c,
			}
			cmd.AutoComplete(ctx)
		}

	case discordgo.InteractionApplicationCommand:
		commandName := fullCommandName(i)

		cmd, ok := c.Commands.Get(commandName)
		if !ok {
			logger.Warn("Command not found: "+commandName, "Client")
			return
		}

		ctx := &CommandContext{
			Session:     s,
			Interaction: i,
			Client:      c,
		}

		if err := cmd.Run(ctx); err != nil {
			logger.Error("Error executing command "+commandName+": "+err.Error(), "Client")
		}

	case discordgo.InteractionMessageComponent:
		c.dispatchComponent(c.Components, s, i, i.MessageComponentData().CustomID)

	case discordgo.InteractionModalSubmit:
		c.dispatchComponent(c.Modals, s, i, i.ModalSubmitData().CustomID)
	}
}

// dispatchComponent routes a component or modal interaction by custom ID prefix
func (c *ExtendedClient) dispatchComponent(collection *ComponentCollection, s *discordgo.Session, i *discordgo.InteractionCreate, customID string) {
	fn, ok := collection.Resolve(customID)
	if !ok {
		logger.Warn("No handler for interaction: "+customID, "Client")
		return
	}

	ctx := &ComponentContext{
		Session:     s,
		Interaction: i,
		Client:      c,
	}

	if err := fn(ctx); err != nil {
		logger.Error("Error handling interaction "+customID+": "+err.Error(), "Client")
	}
}

// fullCommandName builds the dotted command name for subcommands
func fullCommandName(i *discordgo.InteractionCreate) string {
	data := i.ApplicationCommandData()
	commandName := data.Name

	if len(data.Options) > 0 {
		opt := data.Options[0]
		if opt.Type == discordgo.ApplicationCommandOptionSubCommandGroup {
			if len(opt.Options) > 0 {
				commandName = data.Name + "." + opt.Name + "." + opt.Options[0].Name
			}
		} else if opt.Type == discordgo.ApplicationCommandOptionSubCommand {
			commandName = data.Name + "." + opt.Name
		}
	}
	return commandName
}

// Stop stops the bot and closes the session
func (c *ExtendedClient) Stop() error {
	c.mu.Lock()
	c.isReady = false
	c.mu.Unlock()

	if c.Session != nil {
		return c.Session.Close()
	}
	return nil
}

// IsReady returns true if the bot is ready
func (c *ExtendedClient) IsReady() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.isReady
}

// GuildCount returns the number of guilds the bot is in
func (c *ExtendedClient) GuildCount() int {
	if c.Session == nil || c.Session.State == nil {
		return 0
	}
	c.Session.State.RLock()
	defer c.Session.State.RUnlock()
	return len(c.Session.State.Guilds)
}

// GetConfig returns the bot configuration
func (c *ExtendedClient) GetConfig() *config.Config {
	return config.Get()
}
