package worker_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"dairy-erp/internal/worker"
	workererrors "dairy-erp/internal/worker/errors"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type fakeWorkerService struct {
	CreateFn  func(ctx context.Context, req worker.CreateWorkerRequest) (worker.WorkerResponse, error)
	GetAllFn  func(ctx context.Context, filter worker.GetWorkersFilterRequest) ([]worker.WorkerResponse, error)
	GetByIDFn func(ctx context.Context, id string) (worker.WorkerResponse, error)
	UpdateFn  func(ctx context.Context, id string, req worker.UpdateWorkerRequest) (worker.WorkerResponse, error)
	DeleteFn  func(ctx context.Context, id string) error
}

func (f *fakeWorkerService) Create(ctx context.Context, req worker.CreateWorkerRequest) (worker.WorkerResponse, error) {
	return f.CreateFn(ctx, req)
}
func (f *fakeWorkerService) GetAll(ctx context.Context, filter worker.GetWorkersFilterRequest) ([]worker.WorkerResponse, error) {
	return f.GetAllFn(ctx, filter)
}
func (f *fakeWorkerService) GetByID(ctx context.Context, id string) (worker.WorkerResponse, error) {
	return f.GetByIDFn(ctx, id)
}
func (f *fakeWorkerService) Update(ctx context.Context, id string, req worker.UpdateWorkerRequest) (worker.WorkerResponse, error) {
	return f.UpdateFn(ctx, id, req)
}
func (f *fakeWorkerService) Delete(ctx context.Context, id string) error {
	return f.DeleteFn(ctx, id)
}

func newTestContext(method, target, body string) (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	c.Request = req
	return c, w
}

func TestWorkerHandler_Create(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		svc := &fakeWorkerService{
			CreateFn: func(ctx context.Context, req worker.CreateWorkerRequest) (worker.WorkerResponse, error) {
				assert.Equal(t, "Nimal", req.FullName)
				assert.Equal(t, 1500.0, *req.DailySalary)
				return worker.WorkerResponse{ID: "w-1", WorkerCode: "WRK-000001", FullName: req.FullName}, nil
			},
		}
		h := worker.NewHandler(svc)
		c, w := newTestContext(http.MethodPost, "/api/v1/workers", `{"full_name":"Nimal","daily_salary":1500}`)

		h.Create(c)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Contains(t, w.Body.String(), "WRK-000001")
	})

	t.Run("validation error", func(t *testing.T) {
		h := worker.NewHandler(&fakeWorkerService{})
		c, w := newTestContext(http.MethodPost, "/api/v1/workers", `{"daily_salary":-5}`)

		h.Create(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "VALIDATION_ERROR")
	})

	t.Run("salary above ceiling", func(t *testing.T) {
		h := worker.NewHandler(&fakeWorkerService{})
		c, w := newTestContext(http.MethodPost, "/api/v1/workers",
			`{"full_name":"Nimal","daily_salary":1e308}`)

		h.Create(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "at most 1000000000")
	})

	t.Run("conflict", func(t *testing.T) {
		svc := &fakeWorkerService{
			CreateFn: func(ctx context.Context, req worker.CreateWorkerRequest) (worker.WorkerResponse, error) {
				return worker.WorkerResponse{}, workererrors.ErrWorkerCodeExists
			},
		}
		h := worker.NewHandler(svc)
		c, w := newTestContext(http.MethodPost, "/api/v1/workers", `{"full_name":"Nimal","daily_salary":1}`)

		h.Create(c)

		assert.Equal(t, http.StatusConflict, w.Code)
	})
}

func TestWorkerHandler_GetAll(t *testing.T) {
	svc := &fakeWorkerService{
		GetAllFn: func(ctx context.Context, filter worker.GetWorkersFilterRequest) ([]worker.WorkerResponse, error) {
			assert.True(t, filter.ActiveOnly)
			return []worker.WorkerResponse{
				{ID: "1", FullName: "A"},
				{ID: "2", FullName: "B"},
				{ID: "3", FullName: "C"},
			}, nil
		},
	}
	h := worker.NewHandler(svc)
	c, w := newTestContext(http.MethodGet, "/api/v1/workers?active_only=true&page=2&page_size=2", "")

	h.GetAll(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"full_name":"C"`)
	assert.NotContains(t, w.Body.String(), `"full_name":"A"`)
	assert.Contains(t, w.Body.String(), `"total":3`)
}

func TestWorkerHandler_GetByID_NotFound(t *testing.T) {
	svc := &fakeWorkerService{
		GetByIDFn: func(ctx context.Context, id string) (worker.WorkerResponse, error) {
			return worker.WorkerResponse{}, workererrors.ErrWorkerNotFound
		},
	}
	h := worker.NewHandler(svc)
	c, w := newTestContext(http.MethodGet, "/api/v1/workers/x", "")
	c.Params = gin.Params{{Key: "id", Value: "x"}}

	h.GetByID(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestWorkerHandler_Delete(t *testing.T) {
	svc := &fakeWorkerService{
		DeleteFn: func(ctx context.Context, id string) error {
			assert.Equal(t, "abc", id)
			return nil
		},
	}
	h := worker.NewHandler(svc)
	c, w := newTestContext(http.MethodDelete, "/api/v1/workers/abc", "")
	c.Params = gin.Params{{Key: "id", Value: "abc"}}

	h.Delete(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"deleted":true`)
}
