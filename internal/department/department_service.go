package department

import (
	"context"
	"errors"
	"time"

	"go-employee/internal/employee"
	"go-employee/internal/shared/cache"
	"go-employee/internal/shared/cachekey"
	"go-employee/internal/shared/contextutil"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const listCacheTTL = 30 * time.Minute

type Service interface {
	GetAll(ctx context.Context) ([]DepartmentDTO, error)
	GetByID(ctx context.Context, id int64) (DepartmentDTO, error)
	Create(ctx context.Context, req CreateDepartmentDTO) (DepartmentDTO, error)
	Delete(ctx context.Context, id int64) error
}

type service struct {
	db           *gorm.DB
	repo         Repository
	employeeRepo employee.Repository
	cache        *cache.Store
	logger       *zap.Logger
}

// NewService builds the department service. rdb may be nil, in which case
// the listing is read from the store every time.
func NewService(
	db *gorm.DB,
	repo Repository,
	employeeRepo employee.Repository,
	rdb *redis.Client,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("department.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("department.service")
	}
	return &service{
		db:           db,
		repo:         repo,
		employeeRepo: employeeRepo,
		cache:        cache.New(rdb, l),
		logger:       l,
	}
}

func (s *service) GetAll(ctx context.Context) ([]DepartmentDTO, error) {
	var resp []DepartmentDTO
	err := s.cache.Load(ctx, cachekey.DepartmentsAll, listCacheTTL, &resp, func(ctx context.Context) (any, error) {
		depts, err := s.repo.FindAll(ctx)
		if err != nil {
			return nil, err
		}

		empls, err := s.employeeRepo.FindAllByDepartmentIDs(ctx, departmentIDs(depts))
		if err != nil {
			return nil, err
		}

		return mapToDTOs(depts, empls), nil
	})
	if err != nil {
		s.logger.Error("get all departments failed", zap.Error(err))
		return nil, mapRepositoryError(err)
	}

	return resp, nil
}

func (s *service) GetByID(ctx context.Context, id int64) (DepartmentDTO, error) {
	dept, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			s.logger.Error("get department failed", zap.Int64("department_id", id), zap.Error(err))
		}
		return DepartmentDTO{}, mapRepositoryError(err)
	}

	empls, err := s.employeeRepo.FindAllByDepartmentIDs(ctx, []int64{dept.ID})
	if err != nil {
		s.logger.Error("get department employees failed", zap.Int64("department_id", id), zap.Error(err))
		return DepartmentDTO{}, mapRepositoryError(err)
	}

	return mapToDTO(*dept, empls), nil
}

func (s *service) Create(ctx context.Context, req CreateDepartmentDTO) (DepartmentDTO, error) {
	log := contextutil.GetLogger(ctx, s.logger)

	tx := s.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		log.Error("create department begin tx failed", zap.Error(tx.Error))
		return DepartmentDTO{}, tx.Error
	}
	defer tx.Rollback()

	dept := &Department{Name: req.Name}
	if err := s.repo.WithTx(tx).Create(ctx, dept); err != nil {
		log.Error("create department persist failed", zap.Error(err))
		return DepartmentDTO{}, mapRepositoryError(err)
	}

	if err := tx.Commit().Error; err != nil {
		log.Error("create department commit failed", zap.Error(err))
		return DepartmentDTO{}, err
	}

	s.invalidateCaches(ctx)
	log.Info("create department success", zap.Int64("department_id", dept.ID))

	return mapToDTO(*dept, nil), nil
}

func (s *service) Delete(ctx context.Context, id int64) error {
	log := contextutil.GetLogger(ctx, s.logger)

	tx := s.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		log.Error("delete department begin tx failed", zap.Error(tx.Error))
		return tx.Error
	}
	defer tx.Rollback()

	if err := s.repo.WithTx(tx).Delete(ctx, id); err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Error("delete department failed", zap.Int64("department_id", id), zap.Error(err))
		}
		return mapRepositoryError(err)
	}

	if err := tx.Commit().Error; err != nil {
		log.Error("delete department commit failed", zap.Error(err))
		return err
	}

	s.invalidateCaches(ctx)
	log.Info("delete department success", zap.Int64("department_id", id))
	return nil
}

func (s *service) invalidateCaches(ctx context.Context) {
	if err := s.cache.Invalidate(ctx); err != nil {
		s.logger.Error("failed to invalidate department caches", zap.Error(err))
	}
}
