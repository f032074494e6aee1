package moderation

import (
	"time"

	"github.com/bwmarrin/discordgo"
)

// SessionModerator adapts a discordgo session to the Actioner and Notifier
// interfaces consumed by the punishment workflow.
type SessionModerator struct {
	session *discordgo.Session
}

// NewSessionModerator wraps a connected discordgo session
func NewSessionModerator(s *discordgo.Session) *SessionModerator {
	return &SessionModerator{session: s}
}

// TimeoutMember times the member out until the given instant
func (m *SessionModerator) TimeoutMember(guildID, userID string, until *time.Time) error {
	return m.session.GuildMemberTimeout(guildID, userID, until)
}

// RemoveTimeout clears any active timeout on the member
func (m *SessionModerator) RemoveTimeout(guildID, userID string) error {
	return m.session.GuildMemberTimeout(guildID, userID, nil)
}

// KickMember removes the member from the guild
func (m *SessionModerator) KickMember(guildID, userID, reason string) error {
	return m.session.GuildMemberDeleteWithReason(guildID, userID, reason)
}

// BanMember bans the member without deleting message history
func (m *SessionModerator) BanMember(guildID, userID, reason string) error {
	return m.session.GuildBanCreateWithReason(guildID, userID, reason, 0)
}

// DirectMessage opens (or reuses) the DM channel and sends content
func (m *SessionModerator) DirectMessage(userID, content string) error {
	channel, err := m.session.UserChannelCreate(userID)
	if err != nil {
		return err
	}
	_, err = m.session.ChannelMessageSend(channel.ID, content)
	return err
}
