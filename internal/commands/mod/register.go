// Package mod provides the /modpanel moderation panel: a punishment history
// embed, a punishment selector and the detail modals behind it.
package mod

import (
	"github.com/AtlasStudios/AtlasModGo/pkg/discord"
	"github.com/AtlasStudios/AtlasModGo/pkg/moderation"
)

// Custom ID prefixes for the panel's interactive components. The arguments
// (target user ID, punishment kind) ride along after the prefix.
const (
	selectPrefix = "modpanel:select:"
	modalPrefix  = "modpanel:modal:"
)

// workflow is shared by the panel handlers, set at registration
var workflow *moderation.Workflow

// RegisterModCommands registers the /modpanel command and its component handlers
func RegisterModCommands(client *discord.ExtendedClient, wf *moderation.Workflow) {
	workflow = wf

	client.CommandHandler.RegisterCommand(createModPanelCommand())

	client.Components.SetPrefix(selectPrefix, selectHandler)
	client.Modals.SetPrefix(modalPrefix, modalHandler)
}
