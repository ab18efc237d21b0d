package settings

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

//go:generate mockgen -source=settings_repo.go -destination=mock/settings_repo_mock.go -package=mock
type Repository interface {
	// Get returns nil without error while the row does not exist.
	Get(ctx context.Context) (*PayrollSettings, error)
	Upsert(ctx context.Context, s *PayrollSettings) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Get(ctx context.Context) (*PayrollSettings, error) {
	var s PayrollSettings
	err := r.db.WithContext(ctx).First(&s, "id = ?", singletonID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *repository) Upsert(ctx context.Context, s *PayrollSettings) error {
	s.ID = singletonID
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{"epf_percentage", "etf_percentage", "updated_by", "updated_at"}),
		}).
		Create(s).Error
}
