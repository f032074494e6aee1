// Package database provides the MongoDB connection and the punishment store.
package database

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/AtlasStudios/AtlasModGo/pkg/logger"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// Database manages the MongoDB connection
type Database struct {
	client          *mongo.Client
	db              *mongo.Database
	isConnected     bool
	reconnectTicker *time.Ticker
	stopReconnect   chan struct{}
	mu              sync.RWMutex
	collections     map[string]*mongo.Collection
}

var (
	database *Database
	dbOnce   sync.Once
)

// Init initializes the global database instance
func Init(mongoURL, dbName string) (*Database, error) {
	var err error
	dbOnce.Do(func() {
		database = NewDatabase()
		err = database.Connect(mongoURL, dbName)
	})
	return database, err
}

// Get returns the global database instance
func Get() *Database {
	return database
}

// NewDatabase creates a new Database instance
func NewDatabase() *Database {
	return &Database{
		isConnected:   false,
		stopReconnect: make(chan struct{}),
		collections:   make(map[string]*mongo.Collection),
	}
}

// Connect establishes a connection to MongoDB
func (d *Database) Connect(mongoURL, dbName string) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.isConnected {
		return nil
	}

	logger.System("Attempting to connect to the database...", "DB")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	clientOpts := options.Client().
		ApplyURI(mongoURL).
		SetServerSelectionTimeout(5 * time.Second)

	client, err := mongo.Connect(ctx, clientOpts)
	if err != nil {
		logger.Critical("Failed to connect to the database.", "DB")
		d.scheduleReconnect(mongoURL, dbName)
		return err
	}

	// Ping to verify connection
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		logger.Critical("Failed to verify the database connection.", "DB")
		d.scheduleReconnect(mongoURL, dbName)
		return err
	}

	d.client = client
	d.db = client.Database(dbName)
	d.isConnected = true

	logger.Success("Successfully connected to the database.", "DB")

	// Stop reconnection attempts if active
	if d.reconnectTicker != nil {
		d.reconnectTicker.Stop()
		d.reconnectTicker = nil
	}

	return nil
}

// scheduleReconnect starts periodic reconnection attempts.
// Caller must hold d.mu.
func (d *Database) scheduleReconnect(mongoURL, dbName string) {
	if d.reconnectTicker != nil {
		return
	}

	logger.Warn("Database unreachable. Retrying every 15 seconds.", "DB")
	d.reconnectTicker = time.NewTicker(15 * time.Second)
	go func() {
		for {
			select {
			case <-d.reconnectTicker.C:
				logger.Info("Attempting to reconnect to the database...", "DB")
				if err := d.Connect(mongoURL, dbName); err == nil {
					return
				}
			case <-d.stopReconnect:
				return
			}
		}
	}()
}

// Disconnect closes the database connection
func (d *Database) Disconnect() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.reconnectTicker != nil {
		d.reconnectTicker.Stop()
	}
	close(d.stopReconnect)

	if d.client != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		err := d.client.Disconnect(ctx)
		if err != nil {
			return err
		}
		d.isConnected = false
		logger.Warn("The database has been disconnected", "DB")
	}
	return nil
}

// Connected reports whether the database is currently reachable
func (d *Database) Connected() bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.isConnected
}

// Ping measures the database response time
func (d *Database) Ping() (time.Duration, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if !d.isConnected || d.client == nil {
		return 0, fmt.Errorf("not connected to database")
	}

	start := time.Now()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	err := d.client.Ping(ctx, readpref.Primary())
	return time.Since(start), err
}

// GetStatus returns the database connection status
func (d *Database) GetStatus() (string, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if d.client == nil {
		return "🔴 | Offline", false
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	err := d.client.Ping(ctx, readpref.Primary())
	if err != nil {
		return "🔴 | Offline", false
	}
	return "🟢 | Online", true
}

// GetCollection returns a MongoDB collection
func (d *Database) GetCollection(name string) *mongo.Collection {
	d.mu.RLock()
	if col, exists := d.collections[name]; exists {
		d.mu.RUnlock()
		return col
	}
	d.mu.RUnlock()

	d.mu.Lock()
	defer d.mu.Unlock()

	if d.db == nil {
		return nil
	}

	col := d.db.Collection(name)
	d.collections[name] = col
	return col
}
