// Package session provides the /sessionvote command: a quorum-gated approval
// flow driven by a public vote button.
package session

import (
	"github.com/AtlasStudios/AtlasModGo/pkg/discord"
	"github.com/AtlasStudios/AtlasModGo/pkg/moderation"
)

// votePrefix is the custom ID prefix of the vote button, followed by the
// session ID it belongs to.
const votePrefix = "session:vote:"

var (
	votes    *moderation.VoteManager
	notifier moderation.Notifier
)

// RegisterSessionCommands registers the /sessionvote command and the vote button handler
func RegisterSessionCommands(client *discord.ExtendedClient, manager *moderation.VoteManager, dm moderation.Notifier) {
	votes = manager
	notifier = dm

	client.CommandHandler.RegisterCommand(createSessionVoteCommand())
	client.Components.SetPrefix(votePrefix, voteHandler)
}
