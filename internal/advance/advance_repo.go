package advance

import (
	"context"

	"dairy-erp/internal/shared/scope"

	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, advance *Advance) error
	FindAll(ctx context.Context, filter GetAdvancesFilterRequest) ([]Advance, error)
	Delete(ctx context.Context, id string) error
	SumByWorkerPeriod(ctx context.Context, workerID string, year, month int) (float64, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, advance *Advance) error {
	return r.db.WithContext(ctx).Create(advance).Error
}

func (r *repository) FindAll(ctx context.Context, filter GetAdvancesFilterRequest) ([]Advance, error) {
	var advances []Advance
	q := r.db.WithContext(ctx).Model(&Advance{})
	if filter.WorkerID != "" {
		q = q.Scopes(scope.Worker(filter.WorkerID))
	}
	if filter.Year > 0 {
		q = q.Where("year = ?", filter.Year)
	}
	if filter.Month > 0 {
		q = q.Where("month = ?", filter.Month)
	}
	err := q.Order("created_at DESC").Find(&advances).Error
	return advances, err
}

func (r *repository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Delete(&Advance{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *repository) SumByWorkerPeriod(ctx context.Context, workerID string, year, month int) (float64, error) {
	var total float64
	err := r.db.WithContext(ctx).
		Model(&Advance{}).
		Scopes(scope.Worker(workerID), scope.Period(year, month)).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&total).Error
	return total, err
}
