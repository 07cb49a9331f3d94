package snapshot

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gorm.io/datatypes"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
	"moul.io/zapgorm2"

	"github.com/kutbudev/tagsync/internal/log"
	"github.com/kutbudev/tagsync/internal/models"
)

// Snapshot is one named document row.
type Snapshot struct {
	Name      string         `gorm:"type:varchar(255);primaryKey"`
	Document  datatypes.JSON `gorm:"type:jsonb;not null"`
	CreatedAt time.Time      `gorm:"autoCreateTime"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime"`
}

func (Snapshot) TableName() string {
	return "tag_snapshots"
}

// DBStore keeps snapshots in a database table, one row per name.
type DBStore struct {
	db *gorm.DB
}

// OpenDBStore connects to postgres and migrates the snapshot table.
func OpenDBStore(dsn string) (*DBStore, error) {
	gormLogger := zapgorm2.New(log.GetLogger())
	gormLogger.LogLevel = logger.Warn
	gormLogger.IgnoreRecordNotFoundError = true

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{Logger: gormLogger})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to snapshot database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get SQL DB: %w", err)
	}
	sqlDB.SetMaxIdleConns(1)
	sqlDB.SetMaxOpenConns(2)

	if err := db.AutoMigrate(&Snapshot{}); err != nil {
		return nil, fmt.Errorf("failed to migrate snapshot table: %w", err)
	}
	return NewDBStore(db), nil
}

func NewDBStore(db *gorm.DB) *DBStore {
	return &DBStore{db: db}
}

// Save inserts or replaces the snapshot stored under name.
func (s *DBStore) Save(ctx context.Context, name string, groups []models.TagGroup) error {
	if groups == nil {
		groups = []models.TagGroup{}
	}
	doc, err := json.Marshal(groups)
	if err != nil {
		return fmt.Errorf("failed to encode snapshot %s: %w", name, err)
	}

	row := Snapshot{Name: name, Document: datatypes.JSON(doc)}
	err = s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoUpdates: clause.AssignmentColumns([]string{"document", "updated_at"}),
	}).Create(&row).Error
	if err != nil {
		return fmt.Errorf("failed to save snapshot %s: %w", name, err)
	}
	return nil
}

func (s *DBStore) Load(ctx context.Context, name string) ([]models.TagGroup, error) {
	var row Snapshot
	err := s.db.WithContext(ctx).Where("name = ?", name).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
		}
		return nil, fmt.Errorf("failed to load snapshot %s: %w", name, err)
	}

	var groups []models.TagGroup
	if err := json.Unmarshal(row.Document, &groups); err != nil {
		return nil, fmt.Errorf("failed to decode snapshot %s: %w", name, err)
	}
	return normalize(groups), nil
}
