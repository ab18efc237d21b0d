package salarybonus

import (
	"context"
	"errors"

	"dairy-erp/internal/shared/scope"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Repository interface {
	Upsert(ctx context.Context, bonus *SalaryBonus) error
	FindAll(ctx context.Context, filter GetSalaryBonusesFilterRequest) ([]SalaryBonus, error)
	// FindByWorkerPeriod returns nil without error when nothing is stored.
	FindByWorkerPeriod(ctx context.Context, workerID string, year, month int) (*SalaryBonus, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Upsert(ctx context.Context, bonus *SalaryBonus) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "worker_id"}, {Name: "year"}, {Name: "month"}},
			DoUpdates: clause.AssignmentColumns([]string{"monthly_bonus", "late_bonus", "updated_at"}),
		}).
		Create(bonus).Error
}

func (r *repository) FindAll(ctx context.Context, filter GetSalaryBonusesFilterRequest) ([]SalaryBonus, error) {
	var bonuses []SalaryBonus
	q := r.db.WithContext(ctx).Model(&SalaryBonus{})
	if filter.WorkerID != "" {
		q = q.Scopes(scope.Worker(filter.WorkerID))
	}
	if filter.Year > 0 {
		q = q.Where("year = ?", filter.Year)
	}
	if filter.Month > 0 {
		q = q.Where("month = ?", filter.Month)
	}
	err := q.Order("year DESC, month DESC").Find(&bonuses).Error
	return bonuses, err
}

func (r *repository) FindByWorkerPeriod(ctx context.Context, workerID string, year, month int) (*SalaryBonus, error) {
	var bonus SalaryBonus
	err := r.db.WithContext(ctx).
		Scopes(scope.Worker(workerID), scope.Period(year, month)).
		First(&bonus).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &bonus, nil
}
