// Package session - vote button handler
package session

import (
	"errors"
	"strings"

	"github.com/AtlasStudios/AtlasModGo/pkg/discord"
	"github.com/AtlasStudios/AtlasModGo/pkg/logger"
	"github.com/AtlasStudios/AtlasModGo/pkg/moderation"
	"github.com/bwmarrin/discordgo"
)

// voteHandler counts one press. The tally mutation and the button re-render
// run under the session's lock, so exactly one press observes the crossing
// and disables the button. Presses on a superseded or closed session are
// acknowledged without effect.
func voteHandler(ctx *discord.ComponentContext) error {
	sessionID := strings.TrimPrefix(ctx.CustomID(), votePrefix)

	sess, ok := votes.Get(sessionID)
	if !ok {
		// superseded session, its button is stale
		return ctx.DeferUpdate()
	}

	res, err := sess.Press(ctx.User().ID, func(r moderation.PressResult) error {
		// re-render the counter label; the crossing press also disables the
		// button. Updating the message is the whole acknowledgement, there is
		// no visible reply for sub-threshold presses.
		return ctx.UpdateMessage(voteUpdate(ctx.Interaction.Message, sess.ID, r))
	})

	if err != nil {
		if errors.Is(err, moderation.ErrVoteClosed) {
			return ctx.DeferUpdate()
		}
		return err
	}

	if res.Crossed {
		// the quorum DM goes to the presser who crossed, best-effort
		if err := notifier.DirectMessage(ctx.User().ID, "The minimum votes needed for a session has been reached."); err != nil {
			logger.Warn("Failed to DM the crossing voter: "+err.Error(), "SessionVote")
		}
	}

	return nil
}

// voteUpdate builds the message update for a press. An UPDATE_MESSAGE
// response replaces the whole message, so the announcement content and
// embed are carried over unchanged; only the button row is re-rendered.
func voteUpdate(msg *discordgo.Message, sessionID string, r moderation.PressResult) *discordgo.InteractionResponseData {
	data := &discordgo.InteractionResponseData{
		Components: []discordgo.MessageComponent{
			discordgo.ActionsRow{
				Components: []discordgo.MessageComponent{
					voteButton(sessionID, r.Tally, r.Reached),
				},
			},
		},
	}
	if msg != nil {
		data.Content = msg.Content
		data.Embeds = msg.Embeds
	}
	return data
}
