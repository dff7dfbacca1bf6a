package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/etnz/advisor"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

// snapshotRecord is the row of a user snapshot.
type snapshotRecord struct {
	UserID    string `gorm:"primaryKey"`
	Data      []byte `gorm:"not null"`
	UpdatedAt time.Time
}

func (snapshotRecord) TableName() string { return "advisor_snapshots" }

// SQL stores snapshots in a database table through gorm.
type SQL struct {
	db *gorm.DB
}

// NewSQL connects to postgres and creates the snapshot table if needed.
func NewSQL(ctx context.Context, dsn string) (*SQL, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, classify("connect to postgres", err)
	}
	return NewSQLDB(ctx, db)
}

// NewSQLDB uses an open gorm connection, of any dialect.
func NewSQLDB(ctx context.Context, db *gorm.DB) (*SQL, error) {
	if err := db.WithContext(ctx).AutoMigrate(&snapshotRecord{}); err != nil {
		return nil, classify("migrate snapshot table", err)
	}
	return &SQL{db: db}, nil
}

func (s *SQL) Load(ctx context.Context, user string) ([]byte, error) {
	var rec snapshotRecord
	err := s.db.WithContext(ctx).First(&rec, "user_id = ?", user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, advisor.ErrSnapshotNotFound
	}
	if err != nil {
		return nil, classify(fmt.Sprintf("load snapshot of %q", user), err)
	}
	return rec.Data, nil
}

func (s *SQL) Save(ctx context.Context, user string, data []byte) error {
	rec := snapshotRecord{UserID: user, Data: data}
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"data", "updated_at"}),
	}).Create(&rec).Error
	return classify(fmt.Sprintf("save snapshot of %q", user), err)
}
