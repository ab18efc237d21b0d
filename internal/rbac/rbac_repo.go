package rbac

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Repository interface {
	ListPolicies(ctx context.Context) ([]Policy, error)
	// SeedPolicies inserts the given rows, skipping ones that already exist.
	SeedPolicies(ctx context.Context, policies []Policy) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) ListPolicies(ctx context.Context) ([]Policy, error) {
	var result []Policy
	err := r.db.WithContext(ctx).Order("role, resource, action").Find(&result).Error
	return result, err
}

func (r *repository) SeedPolicies(ctx context.Context, policies []Policy) error {
	if len(policies) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&policies).Error
}
