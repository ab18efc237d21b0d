package worker

import (
	"context"
	"database/sql"
	"strings"

	"dairy-erp/internal/shared/scope"

	"gorm.io/gorm"
)

//go:generate mockgen -source=worker_repo.go -destination=mock/worker_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, worker *Worker) error
	FindAll(ctx context.Context, filter GetWorkersFilterRequest) ([]Worker, error)
	FindActive(ctx context.Context) ([]Worker, error)
	FindByID(ctx context.Context, id string) (*Worker, error)
	Update(ctx context.Context, worker *Worker) error
	Delete(ctx context.Context, id string) error
}

type repository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{
		db: r.db,
		tx: tx,
	}
}

func (r *repository) Create(ctx context.Context, worker *Worker) error {
	return scope.Conn(ctx, r.db, r.tx).Create(worker).Error
}

func (r *repository) FindAll(ctx context.Context, filter GetWorkersFilterRequest) ([]Worker, error) {
	var workers []Worker
	q := scope.Conn(ctx, r.db, r.tx).Model(&Worker{})
	if filter.ActiveOnly {
		q = q.Where("is_active = ?", true)
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		like := "%" + strings.ToLower(search) + "%"
		q = q.Where("LOWER(full_name) LIKE ? OR LOWER(worker_code) LIKE ?", like, like)
	}
	err := q.Order("worker_code ASC").Find(&workers).Error
	return workers, err
}

func (r *repository) FindActive(ctx context.Context) ([]Worker, error) {
	return r.FindAll(ctx, GetWorkersFilterRequest{ActiveOnly: true})
}

func (r *repository) FindByID(ctx context.Context, id string) (*Worker, error) {
	var worker Worker
	err := scope.Conn(ctx, r.db, r.tx).First(&worker, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &worker, nil
}

func (r *repository) Update(ctx context.Context, worker *Worker) error {
	return scope.Conn(ctx, r.db, r.tx).Save(worker).Error
}

func (r *repository) Delete(ctx context.Context, id string) error {
	res := scope.Conn(ctx, r.db, r.tx).Delete(&Worker{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
