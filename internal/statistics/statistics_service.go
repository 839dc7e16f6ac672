package statistics

import (
	"context"
	"time"

	"go-employee/internal/employee"
	"go-employee/internal/shared/cache"
	"go-employee/internal/shared/cachekey"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const cacheTTL = 5 * time.Minute

type Service interface {
	GetTotalEmployees(ctx context.Context) (int64, error)
	GetEmployeesByDepartment(ctx context.Context) (map[string]int64, error)
}

type service struct {
	repo   employee.Repository
	cache  *cache.Store
	logger *zap.Logger
}

// NewService reads head counts through the employee repository. Results are
// cached for a few minutes when rdb is not nil.
func NewService(repo employee.Repository, rdb *redis.Client, logger ...*zap.Logger) Service {
	l := zap.L().Named("statistics.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("statistics.service")
	}
	return &service{repo: repo, cache: cache.New(rdb, l), logger: l}
}

func (s *service) GetTotalEmployees(ctx context.Context) (int64, error) {
	var total int64
	err := s.cache.Load(ctx, cachekey.StatisticsTotal, cacheTTL, &total, func(ctx context.Context) (any, error) {
		return s.repo.Count(ctx)
	})
	if err != nil {
		s.logger.Error("count employees failed", zap.Error(err))
		return 0, err
	}
	return total, nil
}

// GetEmployeesByDepartment maps department name to head count. Employees
// without a department are counted under employee.UnassignedDepartment.
func (s *service) GetEmployeesByDepartment(ctx context.Context) (map[string]int64, error) {
	res := map[string]int64{}
	err := s.cache.Load(ctx, cachekey.StatisticsByDepartment, cacheTTL, &res, func(ctx context.Context) (any, error) {
		counts, err := s.repo.CountByDepartment(ctx)
		if err != nil {
			return nil, err
		}
		m := make(map[string]int64, len(counts))
		for _, c := range counts {
			m[c.Name] += c.Count
		}
		return m, nil
	})
	if err != nil {
		s.logger.Error("count employees by department failed", zap.Error(err))
		return nil, err
	}
	return res, nil
}
