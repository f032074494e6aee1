// Package main is the entry point for the AtlasMod Go application.
// It initializes all systems and starts the Discord bot.
package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/AtlasStudios/AtlasModGo/internal/commands"
	"github.com/AtlasStudios/AtlasModGo/internal/events"
	"github.com/AtlasStudios/AtlasModGo/pkg/config"
	"github.com/AtlasStudios/AtlasModGo/pkg/database"
	"github.com/AtlasStudios/AtlasModGo/pkg/discord"
	"github.com/AtlasStudios/AtlasModGo/pkg/errors"
	"github.com/AtlasStudios/AtlasModGo/pkg/logger"
	"github.com/AtlasStudios/AtlasModGo/pkg/moderation"
	"github.com/AtlasStudios/AtlasModGo/pkg/mqtt"
	"github.com/AtlasStudios/AtlasModGo/pkg/web"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Error loading configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log := logger.Init(cfg.ErrorWebhook, cfg.LogsWebhook)
	defer log.Close()

	logger.System("Starting AtlasMod Go...", "Main")
	logger.Info(fmt.Sprintf("Working directory: %s", getCurrentDir()), "Main")

	// Initialize error handler
	var discordClient *discord.ExtendedClient
	errors.Init(cfg.ErrorWebhook, func() {
		if discordClient != nil {
			err := discordClient.Stop()
			if err != nil {
				return
			}
		}
	})

	// Initialize database
	db, err := database.Init(cfg.MongoDBURL, cfg.DBName)
	if err != nil {
		logger.Error(fmt.Sprintf("Error connecting to database: %v", err), "Main")
		// Continue without database - it will attempt to reconnect
	}
	defer func() {
		if db != nil {
			err := db.Disconnect()
			if err != nil {
				return
			}
		}
	}()

	// Initialize the shared services over the database
	database.InitGlobalServices(db)

	// Initialize MQTT
	mqttClientID := "atlasmod"
	if !cfg.IsProd() {
		mqttClientID = "atlasmod_canary"
	}

	mqttClient := mqtt.Init(
		cfg.MQTTHost,
		cfg.MQTTPort,
		cfg.MQTTUser,
		cfg.MQTTPassword,
		mqttClientID,
	)
	defer mqttClient.Destroy()

	// Initialize web server
	webServer := web.Init(cfg.LogsWebServerHook)
	web.SetupAPIRoutes(webServer)
	webServer.StartAsync(cfg.Port)

	// Initialize Discord client
	discordClient, err = discord.Init(cfg.BotToken)
	if err != nil {
		logger.Critical(fmt.Sprintf("Error creating Discord client: %v", err), "Main")
		os.Exit(1)
	}

	// Wire the moderation core over the live session
	sessionModerator := moderation.NewSessionModerator(discordClient.Session)
	workflow := moderation.NewWorkflow(sessionModerator, database.GlobalPunishments, sessionModerator)
	votes := moderation.NewVoteManager()

	// Register commands and events
	commands.RegisterAll(discordClient, workflow, votes, sessionModerator)
	events.RegisterAll(discordClient)

	// Start the bot
	if err := discordClient.Start(); err != nil {
		logger.Critical(fmt.Sprintf("Error starting Discord client: %v", err), "Main")
		os.Exit(1)
	}
	defer func(discordClient *discord.ExtendedClient) {
		err := discordClient.Stop()
		if err != nil {
			return
		}
	}(discordClient)

	logger.Success("AtlasMod Go started!", "Main")

	// Wait for interrupt signal
	sc := make(chan os.Signal, 1)
	signal.Notify(sc, syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	<-sc

	logger.System("Shutting down AtlasMod Go...", "Main")
}

// getCurrentDir returns the current working directory
func getCurrentDir() string {
	dir, err := os.Getwd()
	if err != nil {
		return "unknown"
	}
	return dir
}
