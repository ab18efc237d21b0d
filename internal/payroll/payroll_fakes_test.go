package payroll_test

import (
	"bytes"
	"context"
	"database/sql"
	"fmt"
	"io"
	"sync"

	"dairy-erp/internal/payroll"
	"dairy-erp/internal/salary"
	"dairy-erp/internal/salarybonus"
	"dairy-erp/internal/worker"

	"gorm.io/gorm"
)

func periodKey(workerID string, year, month int) string {
	return fmt.Sprintf("%s/%04d-%02d", workerID, year, month)
}

type fakeRepo struct {
	mu          sync.Mutex
	workingDays map[string]*payroll.WorkingDays
	records     map[string]*payroll.PayrollRecord
	findWDErr   map[string]error
	createErr   error
	// beforeWrite runs inside status writes, after the service has read
	// the record.
	beforeWrite func()
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		workingDays: map[string]*payroll.WorkingDays{},
		records:     map[string]*payroll.PayrollRecord{},
		findWDErr:   map[string]error{},
	}
}

func (f *fakeRepo) WithTx(tx *sql.Tx) payroll.Repository { return f }

func (f *fakeRepo) FindWorkingDays(ctx context.Context, workerID string, year, month int) (*payroll.WorkingDays, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.findWDErr[workerID]; err != nil {
		return nil, err
	}
	return f.workingDays[periodKey(workerID, year, month)], nil
}

func (f *fakeRepo) UpsertWorkingDays(ctx context.Context, wd *payroll.WorkingDays) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.workingDays[periodKey(wd.WorkerID.String(), wd.Year, wd.Month)] = wd
	return nil
}

func (f *fakeRepo) CreateWorkingDaysIfAbsent(ctx context.Context, wd *payroll.WorkingDays) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	key := periodKey(wd.WorkerID.String(), wd.Year, wd.Month)
	if _, ok := f.workingDays[key]; !ok {
		f.workingDays[key] = wd
	}
	return nil
}

func (f *fakeRepo) CreateRecord(ctx context.Context, r *payroll.PayrollRecord) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.records[r.ID.String()] = r
	return nil
}

func (f *fakeRepo) ExistsForWorkerPeriod(ctx context.Context, workerID string, year, month int) (bool, error) {
	for _, r := range f.records {
		if r.WorkerID.String() == workerID && r.Year == year && r.Month == month {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeRepo) FindRecords(ctx context.Context, filter payroll.GetPayrollRecordsFilterRequest) ([]payroll.PayrollRecord, error) {
	out := []payroll.PayrollRecord{}
	for _, r := range f.records {
		if filter.Status != "" && r.Status != filter.Status {
			continue
		}
		out = append(out, *r)
	}
	return out, nil
}

func (f *fakeRepo) FindRecordByID(ctx context.Context, id string) (*payroll.PayrollRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.records[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *r
	return &cp, nil
}

func (f *fakeRepo) UpdateStatus(ctx context.Context, r *payroll.PayrollRecord, from string) error {
	if f.beforeWrite != nil {
		f.beforeWrite()
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	stored, ok := f.records[r.ID.String()]
	if !ok || stored.Status != from {
		return payroll.ErrStatusChanged
	}
	cp := *r
	f.records[r.ID.String()] = &cp
	return nil
}

func (f *fakeRepo) UpdatePayslip(ctx context.Context, r *payroll.PayrollRecord) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	stored, ok := f.records[r.ID.String()]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	stored.PayslipKey = r.PayslipKey
	stored.PayslipURL = r.PayslipURL
	stored.PayslipGeneratedAt = r.PayslipGeneratedAt
	return nil
}

func (f *fakeRepo) DeleteRecord(ctx context.Context, id, status string) error {
	if f.beforeWrite != nil {
		f.beforeWrite()
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	stored, ok := f.records[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	if stored.Status != status {
		return payroll.ErrStatusChanged
	}
	delete(f.records, id)
	return nil
}

type fakeWorkers struct {
	list []worker.Worker
}

func (f fakeWorkers) FindActive(ctx context.Context) ([]worker.Worker, error) {
	return f.list, nil
}

func (f fakeWorkers) FindByID(ctx context.Context, id string) (*worker.Worker, error) {
	for i := range f.list {
		if f.list[i].ID.String() == id {
			w := f.list[i]
			return &w, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

type fakeBonuses struct {
	byWorker map[string]*salarybonus.SalaryBonus
	errs     map[string]error
}

func (f fakeBonuses) FindByWorkerPeriod(ctx context.Context, workerID string, year, month int) (*salarybonus.SalaryBonus, error) {
	if err := f.errs[workerID]; err != nil {
		return nil, err
	}
	return f.byWorker[workerID], nil
}

type fakeAdvances map[string]float64

func (f fakeAdvances) SumByWorkerPeriod(ctx context.Context, workerID string, year, month int) (float64, error) {
	return f[workerID], nil
}

type fakeSettings struct {
	settings salary.Settings
	err      error
}

func (f fakeSettings) Current(ctx context.Context) (salary.Settings, error) {
	return f.settings, f.err
}

type fakeStorage struct {
	files   map[string][]byte
	deleted []string
}

func (f *fakeStorage) Upload(ctx context.Context, file io.Reader, path string, contentType string) (string, error) {
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, file); err != nil {
		return "", err
	}
	if f.files == nil {
		f.files = map[string][]byte{}
	}
	f.files[path] = buf.Bytes()
	return path, nil
}

func (f *fakeStorage) Delete(ctx context.Context, path string) error {
	f.deleted = append(f.deleted, path)
	return nil
}

func (f *fakeStorage) GetURL(ctx context.Context, path string) (string, error) {
	return "http://files.local/" + path, nil
}
