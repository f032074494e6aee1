// Package mod - /modpanel command
package mod

import (
	"fmt"

	"github.com/AtlasStudios/AtlasModGo/pkg/discord"
	"github.com/AtlasStudios/AtlasModGo/pkg/models"
	"github.com/AtlasStudios/AtlasModGo/pkg/moderation"
	"github.com/bwmarrin/discordgo"
)

// createModPanelCommand creates the /modpanel command
func createModPanelCommand() *discord.Command {
	return discord.NewCommand(
		"modpanel",
		"Open the mod panel for a user",
		"mod",
		modPanelHandler,
	).WithOptions(
		&discordgo.ApplicationCommandOption{
			Type:        discordgo.ApplicationCommandOptionUser,
			Name:        "user",
			Description: "The user to moderate",
			Required:    true,
		},
	).WithUserPermissions(discordgo.PermissionModerateMembers).
		RequiresDatabase()
}

// modPanelHandler handles the /modpanel command: staff-role gate, then the
// punishment history embed with the punishment selector attached.
func modPanelHandler(ctx *discord.CommandContext) error {
	cfg := ctx.Client.GetConfig()

	if !ctx.MemberHasRole(cfg.StaffRoleID) {
		return ctx.ReplyEphemeral("You don't have the required role to run this command.")
	}

	user := ctx.GetUserOption("user")
	if user == nil {
		return ctx.ReplyEphemeral("❌ You must specify a user.")
	}

	records, err := workflow.History(ctx.Interaction.GuildID, user.ID)
	if err != nil {
		return ctx.ReplyEphemeral(fmt.Sprintf("❌ Could not load the punishment history: %v", err))
	}

	embed := &discordgo.MessageEmbed{
		Title: "Mod-Panel on " + user.Username,
		Color: 0x9B59B6, // purple
		Fields: []*discordgo.MessageEmbedField{
			{
				Name:   "Previous Punishments",
				Value:  moderation.FormatHistory(records),
				Inline: false,
			},
		},
	}

	return ctx.ReplyEmbedWithComponents(embed, []discordgo.MessageComponent{
		discordgo.ActionsRow{
			Components: []discordgo.MessageComponent{
				punishmentSelect(user.ID),
			},
		},
	})
}

// punishmentSelect builds the five-option punishment selector for a target
func punishmentSelect(userID string) discordgo.SelectMenu {
	descriptions := map[models.PunishmentType]string{
		models.PunishmentWarn:          "Warn the user",
		models.PunishmentTimeout:       "Put the user in timeout",
		models.PunishmentRemoveTimeout: "Remove user's timeout",
		models.PunishmentKick:          "Kick the user from the server",
		models.PunishmentBan:           "Ban the user from the server",
	}

	options := make([]discordgo.SelectMenuOption, 0, len(models.PunishmentTypes))
	for _, t := range models.PunishmentTypes {
		options = append(options, discordgo.SelectMenuOption{
			Label:       string(t),
			Value:       string(t),
			Description: descriptions[t],
		})
	}

	minValues := 1
	return discordgo.SelectMenu{
		MenuType:    discordgo.StringSelectMenu,
		CustomID:    selectPrefix + userID,
		Placeholder: "Choose punishment",
		MinValues:   &minValues,
		MaxValues:   1,
		Options:     options,
	}
}
