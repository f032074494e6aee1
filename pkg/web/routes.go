// Package web provides API routes for the web server.
package web

import (
	"net/http"
	"strconv"

	"github.com/AtlasStudios/AtlasModGo/pkg/database"
	"github.com/AtlasStudios/AtlasModGo/pkg/discord"
	"github.com/gin-gonic/gin"
)

// SetupAPIRoutes sets up the API routes
func SetupAPIRoutes(s *Server) {
	api := s.Group("/api")
	{
		api.GET("/status", statusHandler)
		api.GET("/health", healthHandler)
		api.GET("/bot", botInfoHandler)
		api.GET("/punishments/recent", recentPunishmentsHandler)
		api.GET("/feed", feedHandler)
	}
}

// statusHandler returns the bot and database status
func statusHandler(c *gin.Context) {
	db := database.Get()
	client := discord.Get()

	dbStatus, dbOnline := db.GetStatus()

	botOnline := false
	if client != nil {
		botOnline = client.IsReady()
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"database": gin.H{
			"status":   dbStatus,
			"isOnline": dbOnline,
		},
		"bot": gin.H{
			"isOnline": botOnline,
		},
	})
}

// healthHandler returns a simple health check response
func healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"message": "AtlasMod Go is running",
	})
}

// botInfoHandler returns information about the bot
func botInfoHandler(c *gin.Context) {
	client := discord.Get()

	if client == nil || !client.IsReady() {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"error":   "Bot Offline",
			"message": "The bot is not available right now.",
		})
		return
	}

	user := client.Session.State.User

	c.JSON(http.StatusOK, gin.H{
		"id":            user.ID,
		"username":      user.Username,
		"discriminator": user.Discriminator,
		"avatar":        user.Avatar,
		"guilds":        client.GuildCount(),
		"isReady":       client.IsReady(),
	})
}

// recentPunishmentsHandler returns the newest punishment records.
// ?limit= caps the page size, default 10, max 50.
func recentPunishmentsHandler(c *gin.Context) {
	if database.GlobalPunishments == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"error":   "Store Offline",
			"message": "The punishment store is not available right now.",
		})
		return
	}

	limit := 10
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":   "Bad Request",
				"message": "limit must be a positive integer",
			})
			return
		}
		limit = parsed
	}
	if limit > 50 {
		limit = 50
	}

	records, err := database.GlobalPunishments.ListRecent(limit)
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"error":   "Store Offline",
			"message": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"count":       len(records),
		"punishments": records,
	})
}
