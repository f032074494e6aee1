package discord

import (
	"testing"

	"github.com/bwmarrin/discordgo"
)

// TestComponentCollectionPrefixRouting verifies custom ID prefix resolution
func TestComponentCollectionPrefixRouting(t *testing.T) {
	cc := NewComponentCollection()

	cc.SetPrefix("modpanel:select:", func(ctx *ComponentContext) error { return nil })
	cc.SetPrefix("session:vote:", func(ctx *ComponentContext) error { return nil })

	if cc.Size() != 2 {
		t.Fatalf("Size = %d, want 2", cc.Size())
	}

	if _, ok := cc.Resolve("modpanel:select:123456"); !ok {
		t.Error("select custom ID did not resolve")
	}

	if _, ok := cc.Resolve("session:vote:abc-def"); !ok {
		t.Error("vote custom ID did not resolve")
	}

	if _, ok := cc.Resolve("unknown:thing"); ok {
		t.Error("unknown custom ID should not resolve")
	}
}

// TestComponentContextCustomID verifies custom ID extraction for both interaction kinds
func TestComponentContextCustomID(t *testing.T) {
	componentCtx := &ComponentContext{
		Interaction: &discordgo.InteractionCreate{
			Interaction: &discordgo.Interaction{
				Type: discordgo.InteractionMessageComponent,
				Data: discordgo.MessageComponentInteractionData{
					CustomID: "session:vote:abc",
					Values:   []string{"Kick"},
				},
			},
		},
	}

	if got := componentCtx.CustomID(); got != "session:vote:abc" {
		t.Errorf("CustomID = %q, want %q", got, "session:vote:abc")
	}

	values := componentCtx.SelectedValues()
	if len(values) != 1 || values[0] != "Kick" {
		t.Errorf("SelectedValues = %v, want [Kick]", values)
	}

	modalCtx := &ComponentContext{
		Interaction: &discordgo.InteractionCreate{
			Interaction: &discordgo.Interaction{
				Type: discordgo.InteractionModalSubmit,
				Data: discordgo.ModalSubmitInteractionData{
					CustomID: "modpanel:modal:kick:42",
					Components: []discordgo.MessageComponent{
						&discordgo.ActionsRow{
							Components: []discordgo.MessageComponent{
								&discordgo.TextInput{
									CustomID: "reason",
									Value:    "spamming invites",
								},
							},
						},
					},
				},
			},
		},
	}

	if got := modalCtx.CustomID(); got != "modpanel:modal:kick:42" {
		t.Errorf("CustomID = %q, want %q", got, "modpanel:modal:kick:42")
	}

	if got := modalCtx.ModalValue("reason"); got != "spamming invites" {
		t.Errorf("ModalValue(reason) = %q, want %q", got, "spamming invites")
	}

	if got := modalCtx.ModalValue("duration"); got != "" {
		t.Errorf("ModalValue(duration) = %q, want empty", got)
	}
}
