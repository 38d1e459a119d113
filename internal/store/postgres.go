// Package store persists room documents so games survive a process
// restart. Rooms are never garbage collected here; an abandoned document
// simply sits in its row.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	gormlogger "gorm.io/gorm/logger"

	"github.com/spectrumparty/backend/internal/game"
)

type RoomDocument struct {
	Code      string `gorm:"primaryKey;size:16"`
	State     []byte `gorm:"type:jsonb"`
	UpdatedAt time.Time
}

type Store struct {
	db  *gorm.DB
	log *zap.Logger
}

func Open(dsn string, log *zap.Logger) (*Store, error) {
	if log == nil {
		log = zap.NewNop()
	}
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	if err := db.AutoMigrate(&RoomDocument{}); err != nil {
		return nil, fmt.Errorf("migrate room documents: %w", err)
	}
	return &Store{db: db, log: log}, nil
}

// Save upserts the full document for a room. Callers treat failures as
// best-effort; the in-memory room stays authoritative for live clients.
func (s *Store) Save(ctx context.Context, code string, state game.GameState) error {
	raw, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("marshal room document: %w", err)
	}
	doc := RoomDocument{Code: code, State: raw, UpdatedAt: time.Now()}
	return s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "code"}},
			DoUpdates: clause.AssignmentColumns([]string{"state", "updated_at"}),
		}).
		Create(&doc).Error
}

// Load fetches a room's last persisted document. The second return is
// false when the room has never been saved.
func (s *Store) Load(ctx context.Context, code string) (game.GameState, bool, error) {
	var doc RoomDocument
	err := s.db.WithContext(ctx).First(&doc, "code = ?", code).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return game.GameState{}, false, nil
	}
	if err != nil {
		return game.GameState{}, false, err
	}
	var state game.GameState
	if err := json.Unmarshal(doc.State, &state); err != nil {
		return game.GameState{}, false, fmt.Errorf("unmarshal room document: %w", err)
	}
	return state, true, nil
}
