package database

import (
	"context"
	"errors"
	"time"

	"github.com/AtlasStudios/AtlasModGo/pkg/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	ErrPunishmentsNotInitialized = errors.New("punishment service not initialized")
	ErrDatabaseOffline           = errors.New("database is offline")
)

// punishmentsCollection is the collection backing the audit trail
const punishmentsCollection = "punishments"

// GlobalPunishments is the shared punishment store instance
var GlobalPunishments *PunishmentService

// InitGlobalServices initializes the shared service instances
func InitGlobalServices(db *Database) {
	GlobalPunishments = NewPunishmentService(db)
}

// PunishmentService provides append-only access to the punishments collection.
// There is deliberately no update or delete: punishment records are immutable
// once written, and a failed insert is surfaced to the caller rather than
// queued — a silently lost audit record is worse than a failed command.
type PunishmentService struct {
	db *Database
}

// NewPunishmentService creates a service over the given database
func NewPunishmentService(db *Database) *PunishmentService {
	return &PunishmentService{db: db}
}

func (s *PunishmentService) collection() (*mongo.Collection, error) {
	if s == nil || s.db == nil {
		return nil, ErrPunishmentsNotInitialized
	}
	if !s.db.Connected() {
		return nil, ErrDatabaseOffline
	}
	col := s.db.GetCollection(punishmentsCollection)
	if col == nil {
		return nil, ErrDatabaseOffline
	}
	return col, nil
}

// Insert appends one punishment record
func (s *PunishmentService) Insert(p *models.Punishment) error {
	col, err := s.collection()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, err = col.InsertOne(ctx, p)
	return err
}

// ListByUser returns every record for a subject in insertion order
func (s *PunishmentService) ListByUser(guildID, userID string) ([]models.Punishment, error) {
	col, err := s.collection()
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "$natural", Value: 1}})
	cursor, err := col.Find(ctx, bson.M{"guildId": guildID, "userId": userID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var records []models.Punishment
	if err := cursor.All(ctx, &records); err != nil {
		return nil, err
	}
	return records, nil
}

// ListRecent returns the newest records first, up to limit
func (s *PunishmentService) ListRecent(limit int) ([]models.Punishment, error) {
	col, err := s.collection()
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	opts := options.Find().
		SetSort(bson.D{{Key: "timestamp", Value: -1}}).
		SetLimit(int64(limit))
	cursor, err := col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var records []models.Punishment
	if err := cursor.All(ctx, &records); err != nil {
		return nil, err
	}
	return records, nil
}

// Count returns the total number of punishment records
func (s *PunishmentService) Count() (int64, error) {
	col, err := s.collection()
	if err != nil {
		return 0, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	return col.CountDocuments(ctx, bson.M{})
}
