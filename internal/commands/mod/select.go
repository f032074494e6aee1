// Package mod - punishment selector handler
package mod

import (
	"strings"

	"github.com/AtlasStudios/AtlasModGo/pkg/discord"
	"github.com/AtlasStudios/AtlasModGo/pkg/models"
	"github.com/bwmarrin/discordgo"
)

// selectHandler opens the detail modal for the chosen punishment. Timeout
// gets an extra duration field; every other kind only asks for a reason.
func selectHandler(ctx *discord.ComponentContext) error {
	userID := strings.TrimPrefix(ctx.CustomID(), selectPrefix)

	values := ctx.SelectedValues()
	if len(values) != 1 {
		return ctx.ReplyEphemeral("❌ Choose exactly one punishment.")
	}

	kind, ok := models.ParsePunishmentType(values[0])
	if !ok {
		return ctx.ReplyEphemeral("❌ Unknown punishment type.")
	}

	components := []discordgo.MessageComponent{
		discordgo.ActionsRow{
			Components: []discordgo.MessageComponent{
				discordgo.TextInput{
					CustomID: "reason",
					Label:    "Reason for punishment",
					Style:    discordgo.TextInputParagraph,
					Required: true,
				},
			},
		},
	}

	if kind == models.PunishmentTimeout {
		components = append(components, discordgo.ActionsRow{
			Components: []discordgo.MessageComponent{
				discordgo.TextInput{
					CustomID: "duration",
					Label:    "Time for the timeout (In minutes)",
					Style:    discordgo.TextInputShort,
					Required: true,
				},
			},
		})
	}

	return ctx.ShowModal(modalPrefix+string(kind)+":"+userID, "Punishment Panel", components)
}
