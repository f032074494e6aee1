// Package discord provides component and modal routing for interactions.
package discord

import (
	"strings"
	"sync"

	"github.com/bwmarrin/discordgo"
)

// ComponentContext provides context for component and modal interactions
type ComponentContext struct {
	Session     *discordgo.Session
	Interaction *discordgo.InteractionCreate
	Client      *ExtendedClient
}

// ComponentRunFunc is the function type for component and modal handlers
type ComponentRunFunc func(ctx *ComponentContext) error

// ComponentCollection routes interactions to handlers by custom ID prefix.
// Custom IDs carry their arguments after the prefix, e.g. "modpanel:select:<userID>".
type ComponentCollection struct {
	handlers map[string]ComponentRunFunc
	mu       sync.RWMutex
}

// NewComponentCollection creates a new ComponentCollection
func NewComponentCollection() *ComponentCollection {
	return &ComponentCollection{
		handlers: make(map[string]ComponentRunFunc),
	}
}

// SetPrefix registers a handler for every custom ID starting with prefix
func (cc *ComponentCollection) SetPrefix(prefix string, fn ComponentRunFunc) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.handlers[prefix] = fn
}

// Resolve returns the handler whose prefix matches the custom ID
func (cc *ComponentCollection) Resolve(customID string) (ComponentRunFunc, bool) {
	cc.mu.RLock()
	defer cc.mu.RUnlock()
	for prefix, fn := range cc.handlers {
		if strings.HasPrefix(customID, prefix) {
			return fn, true
		}
	}
	return nil, false
}

// Size returns the number of registered handlers
func (cc *ComponentCollection) Size() int {
	cc.mu.RLock()
	defer cc.mu.RUnlock()
	return len(cc.handlers)
}

// CustomID returns the custom ID of the component or modal interaction
func (ctx *ComponentContext) CustomID() string {
	switch ctx.Interaction.Type {
	case discordgo.InteractionMessageComponent:
		return ctx.Interaction.MessageComponentData().CustomID
	case discordgo.InteractionModalSubmit:
		return ctx.Interaction.ModalSubmitData().CustomID
	}
	return ""
}

// SelectedValues returns the values chosen in a select menu interaction
func (ctx *ComponentContext) SelectedValues() []string {
	if ctx.Interaction.Type != discordgo.InteractionMessageComponent {
		return nil
	}
	return ctx.Interaction.MessageComponentData().Values
}

// ModalValue returns the submitted value of the text input with the given
// custom ID, walking the modal's action rows.
func (ctx *ComponentContext) ModalValue(customID string) string {
	if ctx.Interaction.Type != discordgo.InteractionModalSubmit {
		return ""
	}
	for _, row := range ctx.Interaction.ModalSubmitData().Components {
		actionRow, ok := row.(*discordgo.ActionsRow)
		if !ok {
			continue
		}
		for _, comp := range actionRow.Components {
			input, ok := comp.(*discordgo.TextInput)
			if ok && input.CustomID == customID {
				return input.Value
			}
		}
	}
	return ""
}

// ReplyEphemeral sends an ephemeral reply visible only to the user
func (ctx *ComponentContext) ReplyEphemeral(content string) error {
	return ctx.Session.InteractionRespond(ctx.Interaction.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: content,
			Flags:   discordgo.MessageFlagsEphemeral,
		},
	})
}

// ReplyEphemeralEmbed sends an ephemeral embed reply visible only to the user
func (ctx *ComponentContext) ReplyEphemeralEmbed(embed *discordgo.MessageEmbed) error {
	return ctx.Session.InteractionRespond(ctx.Interaction.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Embeds: []*discordgo.MessageEmbed{embed},
			Flags:  discordgo.MessageFlagsEphemeral,
		},
	})
}

// UpdateMessage edits the message the component lives on as the response
func (ctx *ComponentContext) UpdateMessage(data *discordgo.InteractionResponseData) error {
	return ctx.Session.InteractionRespond(ctx.Interaction.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseUpdateMessage,
		Data: data,
	})
}

// DeferUpdate acknowledges the interaction without changing the message
func (ctx *ComponentContext) DeferUpdate() error {
	return ctx.Session.InteractionRespond(ctx.Interaction.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredMessageUpdate,
	})
}

// ShowModal opens a modal dialog as the interaction response
func (ctx *ComponentContext) ShowModal(customID, title string, components []discordgo.MessageComponent) error {
	return ctx.Session.InteractionRespond(ctx.Interaction.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseModal,
		Data: &discordgo.InteractionResponseData{
			CustomID:   customID,
			Title:      title,
			Components: components,
		},
	})
}

// User returns the user who triggered the interaction
func (ctx *ComponentContext) User() *discordgo.User {
	if ctx.Interaction.Member != nil {
		return ctx.Interaction.Member.User
	}
	return ctx.Interaction.User
}

// Member returns the guild member who triggered the interaction
func (ctx *ComponentContext) Member() *discordgo.Member {
	return ctx.Interaction.Member
}

// MemberHasRole reports whether the invoking member carries the given role
func (ctx *ComponentContext) MemberHasRole(roleID string) bool {
	return memberHasRole(ctx.Interaction.Member, roleID)
}
