package settings

import (
	"context"
	"encoding/json"
	"math"
	"time"

	"dairy-erp/internal/salary"
	settingserrors "dairy-erp/internal/settings/errors"
	"dairy-erp/internal/shared/contextutil"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const (
	CacheKey = "payroll:settings"
	CacheTTL = time.Hour
)

type Service interface {
	Get(ctx context.Context) (SettingsResponse, error)
	Update(ctx context.Context, req UpdateSettingsRequest) (SettingsResponse, error)
	// Current returns the percentages the salary engine should fall back to.
	Current(ctx context.Context) (salary.Settings, error)
}

type service struct {
	repo     Repository
	rdb      *redis.Client
	sf       *singleflight.Group
	defaults salary.Settings
	logger   *zap.Logger
}

func NewService(repo Repository, rdb *redis.Client, defaults salary.Settings, logger ...*zap.Logger) Service {
	l := zap.L().Named("settings.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("settings.service")
	}
	return &service{
		repo:     repo,
		rdb:      rdb,
		sf:       &singleflight.Group{},
		defaults: defaults,
		logger:   l,
	}
}

func (s *service) Get(ctx context.Context) (SettingsResponse, error) {
	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, CacheKey).Result(); err == nil {
			var resp SettingsResponse
			if json.Unmarshal([]byte(cached), &resp) == nil {
				return resp, nil
			}
		} else if err != redis.Nil {
			s.logger.Warn("settings cache read failed", zap.Error(err))
		}
	}

	v, err, _ := s.sf.Do(CacheKey, func() (any, error) {
		row, err := s.repo.Get(ctx)
		if err != nil {
			return nil, err
		}

		resp := s.toResponse(row)
		if s.rdb != nil {
			if payload, err := json.Marshal(resp); err == nil {
				if err := s.rdb.Set(ctx, CacheKey, payload, CacheTTL).Err(); err != nil {
					s.logger.Warn("settings cache write failed", zap.Error(err))
				}
			}
		}
		return resp, nil
	})
	if err != nil {
		s.logger.Error("load payroll settings failed", zap.Error(err))
		return SettingsResponse{}, err
	}
	return v.(SettingsResponse), nil
}

func (s *service) Update(ctx context.Context, req UpdateSettingsRequest) (SettingsResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	if !validPercentage(req.EPFPercentage) || !validPercentage(req.ETFPercentage) {
		return SettingsResponse{}, settingserrors.ErrInvalidPercentage
	}

	row := &PayrollSettings{
		EPFPercentage: *req.EPFPercentage,
		ETFPercentage: *req.ETFPercentage,
		UpdatedAt:     time.Now().UTC(),
	}
	if uid := contextutil.GetUserID(ctx); uid != "" {
		row.UpdatedBy = &uid
	}

	if err := s.repo.Upsert(ctx, row); err != nil {
		s.logger.Error("update payroll settings failed", zap.String("request_id", rid), zap.Error(err))
		return SettingsResponse{}, err
	}

	if s.rdb != nil {
		if err := s.rdb.Del(ctx, CacheKey).Err(); err != nil {
			s.logger.Error("failed to invalidate settings cache",
				zap.Error(err),
				zap.String("key", CacheKey),
			)
		}
	}

	s.logger.Info("payroll settings updated",
		zap.String("request_id", rid),
		zap.Float64("epf_percentage", row.EPFPercentage),
		zap.Float64("etf_percentage", row.ETFPercentage),
	)
	return s.toResponse(row), nil
}

func (s *service) Current(ctx context.Context) (salary.Settings, error) {
	resp, err := s.Get(ctx)
	if err != nil {
		return salary.Settings{}, err
	}
	return salary.Settings{
		EPFPercentage: resp.EPFPercentage,
		ETFPercentage: resp.ETFPercentage,
	}, nil
}

func (s *service) toResponse(row *PayrollSettings) SettingsResponse {
	if row == nil {
		return SettingsResponse{
			EPFPercentage: s.defaults.EPFPercentage,
			ETFPercentage: s.defaults.ETFPercentage,
			IsDefault:     true,
		}
	}
	updatedAt := row.UpdatedAt.Format(time.RFC3339)
	return SettingsResponse{
		EPFPercentage: row.EPFPercentage,
		ETFPercentage: row.ETFPercentage,
		UpdatedAt:     &updatedAt,
	}
}

func validPercentage(v *float64) bool {
	return v != nil && !math.IsNaN(*v) && *v >= 0 && *v <= 100
}
