package discord

import (
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/bwmarrin/discordgo"
)

// AddHandler silently drops handlers whose type its switch does not match,
// logging "Invalid handler type". Capture discordgo's logger and make sure
// every handler the bot registers is accepted.
func TestEventHandlerRegistersAcceptedHandlers(t *testing.T) {
	prevLogger := discordgo.Logger
	defer func() { discordgo.Logger = prevLogger }()

	var mu sync.Mutex
	var lines []string
	discordgo.Logger = func(msgL, caller int, format string, a ...interface{}) {
		mu.Lock()
		lines = append(lines, fmt.Sprintf(format, a...))
		mu.Unlock()
	}

	session, err := discordgo.New("Bot test-token")
	if err != nil {
		t.Fatalf("Failed to create session: %v", err)
	}

	eh := NewEventHandler(&ExtendedClient{Session: session})
	eh.OnReady(func(s *discordgo.Session, r *discordgo.Ready) {})
	eh.OnGuildMemberAdd(func(s *discordgo.Session, m *discordgo.GuildMemberAdd) {})
	eh.OnGuildMemberRemove(func(s *discordgo.Session, m *discordgo.GuildMemberRemove) {})

	mu.Lock()
	defer mu.Unlock()
	for _, line := range lines {
		if strings.Contains(line, "Invalid handler type") {
			t.Fatalf("Session rejected a registered event handler: %s", line)
		}
	}
}
