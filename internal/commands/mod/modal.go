// Package mod - punishment modal submission handler
package mod

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/AtlasStudios/AtlasModGo/pkg/discord"
	apperrors "github.com/AtlasStudios/AtlasModGo/pkg/errors"
	"github.com/AtlasStudios/AtlasModGo/pkg/logger"
	"github.com/AtlasStudios/AtlasModGo/pkg/models"
	"github.com/AtlasStudios/AtlasModGo/pkg/moderation"
	"github.com/AtlasStudios/AtlasModGo/pkg/mqtt"
	"github.com/AtlasStudios/AtlasModGo/pkg/web"
	"github.com/bwmarrin/discordgo"
)

// modalHandler validates the submitted form, runs the punishment workflow and
// announces the result. All failures are reported ephemerally to the staff
// member, never publicly.
func modalHandler(ctx *discord.ComponentContext) error {
	// custom ID: modpanel:modal:<kind>:<userID>
	rest := strings.TrimPrefix(ctx.CustomID(), modalPrefix)
	sep := strings.LastIndex(rest, ":")
	if sep < 0 {
		return ctx.ReplyEphemeral("❌ Malformed punishment form.")
	}

	kind, ok := models.ParsePunishmentType(rest[:sep])
	if !ok {
		return ctx.ReplyEphemeral("❌ Unknown punishment type.")
	}
	userID := rest[sep+1:]

	req := moderation.Request{
		GuildID: ctx.Interaction.GuildID,
		UserID:  userID,
		StaffID: ctx.User().ID,
		Type:    kind,
		Reason:  ctx.ModalValue("reason"),
	}

	if kind == models.PunishmentTimeout {
		minutes, err := strconv.Atoi(strings.TrimSpace(ctx.ModalValue("duration")))
		if err != nil {
			return ctx.ReplyEphemeral("Please enter a valid number of minutes.")
		}
		req.DurationMinutes = minutes
	}

	record, err := workflow.Apply(req)
	if err != nil {
		return reportApplyError(ctx, kind, err)
	}

	announce(ctx, record)

	if kind == models.PunishmentTimeout {
		return ctx.ReplyEphemeral(fmt.Sprintf("Timeout applied to <@%s> for %d minutes.", userID, req.DurationMinutes))
	}
	return ctx.ReplyEphemeral(fmt.Sprintf("Punishment `%s` applied to <@%s>.", kind, userID))
}

// reportApplyError maps workflow failures to ephemeral staff-facing messages
func reportApplyError(ctx *discord.ComponentContext, kind models.PunishmentType, err error) error {
	if errors.Is(err, moderation.ErrInvalidDuration) {
		return ctx.ReplyEphemeral("Please enter a valid number of minutes.")
	}

	var actionErr *moderation.ActionError
	if errors.As(err, &actionErr) {
		return ctx.ReplyEphemeral(fmt.Sprintf("❌ Could not apply `%s`: %v", kind, actionErr.Err))
	}

	var storeErr *moderation.StoreError
	if errors.As(err, &storeErr) {
		// the action is already applied, only the audit record is missing
		logger.Critical(fmt.Sprintf("Punishment %s applied but not recorded: %v", kind, storeErr.Err), "ModPanel")
		if h := apperrors.Get(); h != nil {
			h.Report(apperrors.ReportErrorOptions{
				Error:   storeErr.Err.Error(),
				Message: fmt.Sprintf("Punishment %s applied but the record write failed", kind),
			})
		}
		return ctx.ReplyEphemeral(fmt.Sprintf("⚠️ `%s` was applied, but recording it failed. The audit trail has a gap.", kind))
	}

	return ctx.ReplyEphemeral(fmt.Sprintf("❌ Error applying `%s`: %v", kind, err))
}

// announce posts the audit embed to the logs channel and fans the record out
// to MQTT and the web feed. All of it is best-effort.
func announce(ctx *discord.ComponentContext, record *models.Punishment) {
	cfg := ctx.Client.GetConfig()

	embed := &discordgo.MessageEmbed{
		Title: string(record.Type),
		Color: 0xE74C3C, // red
		Fields: []*discordgo.MessageEmbedField{
			{Name: "User", Value: fmt.Sprintf("<@%s>", record.UserID), Inline: true},
			{Name: "Staff", Value: fmt.Sprintf("<@%s>", record.StaffID), Inline: true},
			{Name: "Reason", Value: record.Reason, Inline: false},
		},
	}
	if record.Type == models.PunishmentTimeout {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:   "Time",
			Value:  fmt.Sprintf("%d minutes", record.DurationMinutes),
			Inline: false,
		})
	}

	if cfg.LogsChannelID != "" {
		if _, err := ctx.Session.ChannelMessageSendEmbed(cfg.LogsChannelID, embed); err != nil {
			logger.Error("Failed to post audit embed: "+err.Error(), "ModPanel")
		}
	}

	if mc := mqtt.Get(); mc != nil {
		if err := mc.PublishPunishment(record); err != nil {
			logger.Warn("Failed to publish punishment to MQTT: "+err.Error(), "ModPanel")
		}
	}

	web.BroadcastPunishment(record)
}
