package models

// PunishmentType identifies one of the five disciplinary actions
type PunishmentType string

const (
	PunishmentWarn          PunishmentType = "Warn"
	PunishmentTimeout       PunishmentType = "Timeout"
	PunishmentRemoveTimeout PunishmentType = "Remove Timeout"
	PunishmentKick          PunishmentType = "Kick"
	PunishmentBan           PunishmentType = "Ban"
)

// PunishmentTypes lists every valid type in panel order
var PunishmentTypes = []PunishmentType{
	PunishmentWarn,
	PunishmentTimeout,
	PunishmentRemoveTimeout,
	PunishmentKick,
	PunishmentBan,
}

// ParsePunishmentType maps a raw string back to a known type
func ParsePunishmentType(s string) (PunishmentType, bool) {
	for _, t := range PunishmentTypes {
		if string(t) == s {
			return t, true
		}
	}
	return "", false
}

// Punishment represents a single record in the "punishments" collection.
// Records are append-only: there is no update or delete path.
type Punishment struct {
	ID              string         `bson:"id" json:"id"`
	GuildID         string         `bson:"guildId" json:"guildId"`
	UserID          string         `bson:"userId" json:"userId"`
	StaffID         string         `bson:"staffId" json:"staffId"`
	Type            PunishmentType `bson:"type" json:"type"`
	Reason          string         `bson:"reason" json:"reason"`
	DurationMinutes int            `bson:"durationMinutes,omitempty" json:"durationMinutes,omitempty"`
	Timestamp       int64          `bson:"timestamp" json:"timestamp"`
}
