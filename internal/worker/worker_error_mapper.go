package worker

import (
	"errors"
	"strings"

	workererrors "dairy-erp/internal/worker/errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

const uniqueWorkerCodeConstraint = "uq_worker_code"

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return workererrors.ErrWorkerNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == "23505" && pgErr.ConstraintName == uniqueWorkerCodeConstraint {
			return workererrors.ErrWorkerCodeExists
		}
	}

	errMsg := strings.ToLower(err.Error())
	if strings.Contains(errMsg, "duplicate key value") && strings.Contains(errMsg, uniqueWorkerCodeConstraint) {
		return workererrors.ErrWorkerCodeExists
	}

	return err
}
