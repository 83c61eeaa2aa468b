package store

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

type collectionRecord struct {
	Name      string `gorm:"primaryKey"`
	Document  string `gorm:"type:text;not null"`
	Version   int    `gorm:"not null;default:1"`
	UpdatedAt time.Time
}

func (collectionRecord) TableName() string {
	return "collections"
}

// SQLite is an embedded single-file backend for installs without a database server.
type SQLite struct {
	db *gorm.DB
}

func NewSQLite(path string) (*SQLite, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create sqlite directory: %w", err)
		}
	}

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	if err := db.AutoMigrate(&collectionRecord{}); err != nil {
		return nil, fmt.Errorf("migrate sqlite: %w", err)
	}

	return &SQLite{db: db}, nil
}

func (s *SQLite) Get(ctx context.Context, name string) ([]byte, error) {
	var record collectionRecord

	err := s.db.WithContext(ctx).First(&record, "name = ?", name).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("get collection %s: %w", name, err)
	}

	return []byte(record.Document), nil
}

func (s *SQLite) Put(ctx context.Context, name string, doc []byte) error {
	record := collectionRecord{
		Name:      name,
		Document:  string(doc),
		Version:   1,
		UpdatedAt: time.Now(),
	}

	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "name"}},
		DoUpdates: clause.Assignments(map[string]any{
			"document":   record.Document,
			"version":    gorm.Expr("version + 1"),
			"updated_at": record.UpdatedAt,
		}),
	}).Create(&record).Error
	if err != nil {
		return fmt.Errorf("put collection %s: %w", name, err)
	}

	return nil
}

func (s *SQLite) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
