// Package session - /sessionvote command
package session

import (
	"fmt"

	"github.com/AtlasStudios/AtlasModGo/pkg/discord"
	"github.com/bwmarrin/discordgo"
)

// createSessionVoteCommand creates the /sessionvote command
func createSessionVoteCommand() *discord.Command {
	return discord.NewCommand(
		"sessionvote",
		"Request a session vote",
		"session",
		sessionVoteHandler,
	)
}

// sessionVoteHandler starts a new vote session: role gate, public
// announcement with the vote button, ephemeral acknowledgement. A new
// invocation supersedes any previous session.
func sessionVoteHandler(ctx *discord.CommandContext) error {
	cfg := ctx.Client.GetConfig()

	if !ctx.MemberHasRole(cfg.VoteRoleID) {
		return ctx.ReplyEphemeral("You don't have the required role to run this command.")
	}

	sess := votes.Begin(ctx.User().ID, cfg.RequiredVotes)

	embed := &discordgo.MessageEmbed{
		Title: "Session Vote",
		Description: fmt.Sprintf(
			"A session has been requested by <@%s>\n"+
				"Number of votes needed: %d\n"+
				"If you vote during this time, you are required to join within 15 minutes of the server opening in-game.",
			ctx.User().ID,
			sess.Required,
		),
		Color: 0x3498DB, // blue
	}

	_, err := ctx.Session.ChannelMessageSendComplex(ctx.Interaction.ChannelID, &discordgo.MessageSend{
		Content: "@everyone",
		Embeds:  []*discordgo.MessageEmbed{embed},
		Components: []discordgo.MessageComponent{
			discordgo.ActionsRow{
				Components: []discordgo.MessageComponent{
					voteButton(sess.ID, 0, false),
				},
			},
		},
	})
	if err != nil {
		return ctx.ReplyEphemeral(fmt.Sprintf("❌ Could not announce the session vote: %v", err))
	}

	return ctx.ReplyEphemeral("Session vote has been initiated.")
}

// voteButton builds the green counter button carrying the current tally
func voteButton(sessionID string, tally int, disabled bool) discordgo.Button {
	return discordgo.Button{
		Label:    fmt.Sprintf("Votes: %d", tally),
		Style:    discordgo.SuccessButton,
		CustomID: votePrefix + sessionID,
		Disabled: disabled,
	}
}
