// Package moderation contains the two core state machines of the bot: the
// staff punishment workflow and the quorum-gated session vote. Both are kept
// independent of discordgo behind small collaborator interfaces so they can be
// exercised without a gateway connection.
package moderation

import (
	"errors"
	"fmt"
	"time"

	"github.com/AtlasStudios/AtlasModGo/pkg/models"
	"github.com/google/uuid"
)

// Actioner applies moderation actions against a guild member
type Actioner interface {
	TimeoutMember(guildID, userID string, until *time.Time) error
	RemoveTimeout(guildID, userID string) error
	KickMember(guildID, userID, reason string) error
	BanMember(guildID, userID, reason string) error
}

// Notifier delivers direct messages to a user
type Notifier interface {
	DirectMessage(userID, content string) error
}

// Store is the append-only punishment record store
type Store interface {
	Insert(p *models.Punishment) error
	ListByUser(guildID, userID string) ([]models.Punishment, error)
}

// Request describes one submitted punishment form
type Request struct {
	GuildID         string
	UserID          string
	StaffID         string
	Type            models.PunishmentType
	Reason          string
	DurationMinutes int // Timeout only
}

// ErrInvalidDuration is returned for a non-positive timeout duration
var ErrInvalidDuration = errors.New("timeout duration must be a positive number of minutes")

// ActionError wraps a platform rejection of a moderation action.
// No record is written when the action itself fails.
type ActionError struct {
	Type models.PunishmentType
	Err  error
}

func (e *ActionError) Error() string {
	return fmt.Sprintf("applying %s: %v", e.Type, e.Err)
}

func (e *ActionError) Unwrap() error { return e.Err }

// StoreError wraps a failed record write. When it is returned the action has
// already been applied: the caller must alert loudly, there is no reversal.
type StoreError struct {
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("recording punishment: %v", e.Err)
}

func (e *StoreError) Unwrap() error { return e.Err }

// Workflow orchestrates one punishment: validate, apply the platform action,
// persist the record, notify the subject. Announcing to the logs channel and
// confirming to the staff member stay with the interaction handler.
type Workflow struct {
	actions  Actioner
	store    Store
	notifier Notifier
	now      func() time.Time
	newID    func() string
}

// NewWorkflow creates a punishment workflow over the given collaborators
func NewWorkflow(actions Actioner, store Store, notifier Notifier) *Workflow {
	return &Workflow{
		actions:  actions,
		store:    store,
		notifier: notifier,
		now:      time.Now,
		newID:    func() string { return uuid.New().String() },
	}
}

// Apply runs the workflow for one request. On success the created record is
// returned. Warn skips the platform action and is log-only. The subject DM is
// best-effort: delivery failure never fails the command.
func (w *Workflow) Apply(req Request) (*models.Punishment, error) {
	if req.Type == models.PunishmentTimeout && req.DurationMinutes < 1 {
		return nil, ErrInvalidDuration
	}

	now := w.now()

	var actErr error
	switch req.Type {
	case models.PunishmentWarn:
		// log-only, no platform action
	case models.PunishmentTimeout:
		until := now.Add(time.Duration(req.DurationMinutes) * time.Minute)
		actErr = w.actions.TimeoutMember(req.GuildID, req.UserID, &until)
	case models.PunishmentRemoveTimeout:
		actErr = w.actions.RemoveTimeout(req.GuildID, req.UserID)
	case models.PunishmentKick:
		actErr = w.actions.KickMember(req.GuildID, req.UserID, req.Reason)
	case models.PunishmentBan:
		actErr = w.actions.BanMember(req.GuildID, req.UserID, req.Reason)
	default:
		return nil, fmt.Errorf("unknown punishment type %q", req.Type)
	}
	if actErr != nil {
		return nil, &ActionError{Type: req.Type, Err: actErr}
	}

	record := &models.Punishment{
		ID:        w.newID(),
		GuildID:   req.GuildID,
		UserID:    req.UserID,
		StaffID:   req.StaffID,
		Type:      req.Type,
		Reason:    req.Reason,
		Timestamp: now.Unix(),
	}
	if req.Type == models.PunishmentTimeout {
		record.DurationMinutes = req.DurationMinutes
	}

	if err := w.store.Insert(record); err != nil {
		return nil, &StoreError{Err: err}
	}

	if w.notifier != nil {
		// best-effort: closed DMs or a departed member never fail the command
		_ = w.notifier.DirectMessage(req.UserID, NotificationText(req))
	}

	return record, nil
}

// History returns every prior record for a subject in insertion order
func (w *Workflow) History(guildID, userID string) ([]models.Punishment, error) {
	return w.store.ListByUser(guildID, userID)
}

// NotificationText builds the DM sent to the punished member
func NotificationText(req Request) string {
	switch req.Type {
	case models.PunishmentTimeout:
		return fmt.Sprintf("You have been timed out for %d minutes. Reason: %s", req.DurationMinutes, req.Reason)
	case models.PunishmentRemoveTimeout:
		return fmt.Sprintf("Your timeout has been removed. Reason: %s", req.Reason)
	case models.PunishmentKick:
		return fmt.Sprintf("You have been kicked. Reason: %s", req.Reason)
	case models.PunishmentBan:
		return fmt.Sprintf("You have been banned. Reason: %s", req.Reason)
	default:
		return fmt.Sprintf("You have been warned. Reason: %s", req.Reason)
	}
}

// NoHistoryText is rendered when a subject has no prior records
const NoHistoryText = "No previous punishments."

// FormatHistory renders prior records as the numbered list shown on the panel
func FormatHistory(records []models.Punishment) string {
	if len(records) == 0 {
		return NoHistoryText
	}

	var out string
	for i, rec := range records {
		out += fmt.Sprintf("%d. %s\n   Staff: <@%s>\n   Reason: %s\n", i+1, rec.Type, rec.StaffID, rec.Reason)
	}
	return out
}
