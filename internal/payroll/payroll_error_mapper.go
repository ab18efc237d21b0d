package payroll

import (
	"errors"
	"strings"

	payrollerrors "dairy-erp/internal/payroll/errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

const uniquePayrollPeriodConstraint = "uq_payroll_worker_period"

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return payrollerrors.ErrPayrollNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == "23505" && pgErr.ConstraintName == uniquePayrollPeriodConstraint {
			return payrollerrors.ErrPayrollExists
		}
	}

	errMsg := strings.ToLower(err.Error())
	if strings.Contains(errMsg, "duplicate key value") && strings.Contains(errMsg, uniquePayrollPeriodConstraint) {
		return payrollerrors.ErrPayrollExists
	}

	return err
}
