package session

import (
	"strings"
	"testing"

	"github.com/AtlasStudios/AtlasModGo/pkg/moderation"
	"github.com/bwmarrin/discordgo"
	json "github.com/goccy/go-json"
)

func announcementMessage() *discordgo.Message {
	return &discordgo.Message{
		Content: "@everyone",
		Embeds: []*discordgo.MessageEmbed{
			{Title: "Session Vote", Description: "Number of votes needed: 7"},
		},
	}
}

func pressedButton(t *testing.T, data *discordgo.InteractionResponseData) discordgo.Button {
	t.Helper()

	if len(data.Components) != 1 {
		t.Fatalf("Expected 1 component row, got %d", len(data.Components))
	}
	row, ok := data.Components[0].(discordgo.ActionsRow)
	if !ok {
		t.Fatalf("Expected an ActionsRow, got %T", data.Components[0])
	}
	if len(row.Components) != 1 {
		t.Fatalf("Expected 1 button in the row, got %d", len(row.Components))
	}
	button, ok := row.Components[0].(discordgo.Button)
	if !ok {
		t.Fatalf("Expected a Button, got %T", row.Components[0])
	}
	return button
}

func TestVoteUpdateKeepsAnnouncement(t *testing.T) {
	data := voteUpdate(announcementMessage(), "session-1", moderation.PressResult{Tally: 3})

	if data.Content != "@everyone" {
		t.Errorf("Expected content '@everyone' to survive the update, got %q", data.Content)
	}
	if len(data.Embeds) != 1 || data.Embeds[0].Title != "Session Vote" {
		t.Errorf("Expected the announcement embed to survive the update, got %v", data.Embeds)
	}

	button := pressedButton(t, data)
	if button.Label != "Votes: 3" {
		t.Errorf("Expected label 'Votes: 3', got %q", button.Label)
	}
	if button.Disabled {
		t.Error("Button should stay enabled below the vote threshold")
	}
	if button.CustomID != votePrefix+"session-1" {
		t.Errorf("Expected custom ID %q, got %q", votePrefix+"session-1", button.CustomID)
	}
}

func TestVoteUpdateDisablesButtonOnQuorum(t *testing.T) {
	data := voteUpdate(announcementMessage(), "session-1", moderation.PressResult{
		Tally:   7,
		Reached: true,
		Crossed: true,
	})

	button := pressedButton(t, data)
	if !button.Disabled {
		t.Error("Button should be disabled once the threshold is reached")
	}
	if button.Label != "Votes: 7" {
		t.Errorf("Expected label 'Votes: 7', got %q", button.Label)
	}
	if data.Content != "@everyone" {
		t.Errorf("Expected content '@everyone' on the closing update, got %q", data.Content)
	}
}

// The UPDATE_MESSAGE response replaces the whole message, so an update that
// serializes an empty content or nil embeds would blank the announcement.
func TestVoteUpdateWirePayload(t *testing.T) {
	data := voteUpdate(announcementMessage(), "session-1", moderation.PressResult{Tally: 1})

	payload, err := json.Marshal(data)
	if err != nil {
		t.Fatalf("Failed to marshal update payload: %v", err)
	}

	body := string(payload)
	if !strings.Contains(body, `"content":"@everyone"`) {
		t.Errorf("Wire payload lost the announcement content: %s", body)
	}
	if !strings.Contains(body, "Session Vote") {
		t.Errorf("Wire payload lost the announcement embed: %s", body)
	}
	if strings.Contains(body, `"embeds":null`) {
		t.Errorf("Wire payload serializes nil embeds: %s", body)
	}
}

func TestVoteUpdateWithoutSourceMessage(t *testing.T) {
	data := voteUpdate(nil, "session-1", moderation.PressResult{Tally: 1})

	button := pressedButton(t, data)
	if button.Label != "Votes: 1" {
		t.Errorf("Expected label 'Votes: 1', got %q", button.Label)
	}
}
