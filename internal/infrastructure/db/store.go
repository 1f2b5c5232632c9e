package db

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"skillport/internal/domain/catalog"
)

var ErrPrefsNotFound = errors.New("preferences not found")

// Pref holds the only state that survives a full reload: the
// landing-page-seen flag and the theme choice, per employee.
type Pref struct {
	Email       string    `gorm:"primaryKey;size:320" json:"email"`
	Theme       string    `gorm:"size:16;default:'light'" json:"theme"`
	LandingSeen bool      `json:"landingSeen"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"-"`
}

func (Pref) TableName() string { return "prefs" }

// MasterCache is the last-known-good copy of one master catalog.
type MasterCache struct {
	Kind      string    `gorm:"primaryKey;size:16"`
	Payload   []byte    `gorm:"type:blob"`
	FetchedAt time.Time `gorm:"autoUpdateTime"`
}

func (MasterCache) TableName() string { return "master_cache" }

// Store is the gorm-backed persistence for prefs and the master cache.
type Store struct{ db *gorm.DB }

func NewStore(gdb *gorm.DB) (*Store, error) {
	if err := gdb.AutoMigrate(&Pref{}, &MasterCache{}); err != nil {
		return nil, err
	}
	return &Store{db: gdb}, nil
}

func (s *Store) GetPrefs(ctx context.Context, email string) (*Pref, error) {
	var p Pref
	res := s.db.WithContext(ctx).Where("email = ?", email).First(&p)
	if errors.Is(res.Error, gorm.ErrRecordNotFound) {
		return nil, ErrPrefsNotFound
	}
	if res.Error != nil {
		return nil, res.Error
	}
	return &p, nil
}

func (s *Store) SavePrefs(ctx context.Context, p *Pref) error {
	return s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "email"}},
			DoUpdates: clause.AssignmentColumns([]string{"theme", "landing_seen", "updated_at"}),
		}).
		Create(p).Error
}

func (s *Store) GetMaster(ctx context.Context, kind catalog.Kind) ([]catalog.Item, error) {
	var row MasterCache
	res := s.db.WithContext(ctx).Where("kind = ?", string(kind)).First(&row)
	if res.Error != nil {
		return nil, res.Error
	}
	var items []catalog.Item
	if err := json.Unmarshal(row.Payload, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (s *Store) PutMaster(ctx context.Context, kind catalog.Kind, items []catalog.Item) error {
	payload, err := json.Marshal(items)
	if err != nil {
		return err
	}
	row := MasterCache{Kind: string(kind), Payload: payload}
	return s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "kind"}},
			DoUpdates: clause.AssignmentColumns([]string{"payload", "fetched_at"}),
		}).
		Create(&row).Error
}
