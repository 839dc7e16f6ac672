package employee

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"time"

	employeeerrors "go-employee/internal/employee/errors"
	"go-employee/internal/events"
	"go-employee/internal/messaging/kafka"
	"go-employee/internal/shared/cache"
	"go-employee/internal/shared/contextutil"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Service interface {
	GetByID(ctx context.Context, id int64) (EmployeeDTO, error)
	GetAll(ctx context.Context) ([]EmployeeDTO, error)
	GetByLastname(ctx context.Context, lastname string) (EmployeeDTO, error)
	Exists(ctx context.Context, id int64) (bool, error)
	GetByDepartmentID(ctx context.Context, departmentID int64) (EmployeeDTO, error)
	Create(ctx context.Context, req EmployeeDTO) (EmployeeDTO, error)
	Update(ctx context.Context, id int64, req UpdateEmployeeDTO) (EmployeeDTO, error)
	Delete(ctx context.Context, id int64) error
}

type service struct {
	db     *gorm.DB
	repo   Repository
	outbox kafka.OutboxRepository
	cache  *cache.Store
	logger *zap.Logger
}

func NewService(db *gorm.DB, repo Repository, rdb *redis.Client, logger ...*zap.Logger) Service {
	return NewServiceWithOutbox(db, repo, nil, rdb, logger...)
}

// NewServiceWithOutbox enables lifecycle events: every write also queues an
// outbox row in the same transaction. outboxRepo and rdb may be nil.
func NewServiceWithOutbox(
	db *gorm.DB,
	repo Repository,
	outboxRepo kafka.OutboxRepository,
	rdb *redis.Client,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("employee.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("employee.service")
	}
	return &service{
		db:     db,
		repo:   repo,
		outbox: outboxRepo,
		cache:  cache.New(rdb, l),
		logger: l,
	}
}

func (s *service) GetByID(ctx context.Context, id int64) (EmployeeDTO, error) {
	s.logger.Debug("get employee by id requested", zap.Int64("employee_id", id))

	empl, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return EmployeeDTO{}, employeeerrors.NotFoundWithID(id)
		}
		s.logger.Error("get employee by id failed", zap.Int64("employee_id", id), zap.Error(err))
		return EmployeeDTO{}, mapRepositoryError(err)
	}

	return MapToDTO(*empl), nil
}

func (s *service) GetAll(ctx context.Context) ([]EmployeeDTO, error) {
	s.logger.Debug("get all employees requested")

	empls, err := s.repo.FindAll(ctx)
	if err != nil {
		s.logger.Error("get all employees failed", zap.Error(err))
		return nil, mapRepositoryError(err)
	}

	return MapToDTOs(empls), nil
}

func (s *service) GetByLastname(ctx context.Context, lastname string) (EmployeeDTO, error) {
	s.logger.Debug("get employee by lastname requested", zap.String("lastname", lastname))

	empl, err := s.repo.FindByLastname(ctx, lastname)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return EmployeeDTO{}, employeeerrors.NotFoundWithLastname(lastname)
		}
		s.logger.Error("get employee by lastname failed", zap.Error(err))
		return EmployeeDTO{}, mapRepositoryError(err)
	}

	return MapToDTO(*empl), nil
}

func (s *service) Exists(ctx context.Context, id int64) (bool, error) {
	exists, err := s.repo.ExistsByID(ctx, id)
	if err != nil {
		s.logger.Error("employee exists check failed", zap.Int64("employee_id", id), zap.Error(err))
		return false, mapRepositoryError(err)
	}
	return exists, nil
}

func (s *service) GetByDepartmentID(ctx context.Context, departmentID int64) (EmployeeDTO, error) {
	s.logger.Debug("get employee by department requested", zap.Int64("department_id", departmentID))

	empl, err := s.repo.FindByDepartmentID(ctx, departmentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return EmployeeDTO{}, employeeerrors.ErrNoEmployeeInDepartment
		}
		s.logger.Error("get employee by department failed", zap.Error(err))
		return EmployeeDTO{}, mapRepositoryError(err)
	}

	return MapToDTO(*empl), nil
}

func (s *service) Create(ctx context.Context, req EmployeeDTO) (EmployeeDTO, error) {
	log := contextutil.GetLogger(ctx, s.logger)
	log.Debug("create employee requested",
		zap.String("lastname", req.Lastname),
		zap.String("email", req.Email),
	)

	empl, err := mapToEntity(req)
	if err != nil {
		log.Warn("create employee invalid input", zap.Error(err))
		return EmployeeDTO{}, err
	}

	tx := s.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		log.Error("create employee begin tx failed", zap.Error(tx.Error))
		return EmployeeDTO{}, tx.Error
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	if empl.DepartmentID != nil {
		if err := s.ensureDepartment(ctx, qtx, *empl.DepartmentID); err != nil {
			return EmployeeDTO{}, err
		}
	}

	if err := qtx.Create(ctx, &empl); err != nil {
		log.Error("create employee persist failed", zap.Error(err))
		return EmployeeDTO{}, mapRepositoryError(err)
	}

	saved := &empl
	if empl.DepartmentID != nil {
		if saved, err = qtx.FindByID(ctx, empl.ID); err != nil {
			log.Error("create employee reload failed", zap.Int64("employee_id", empl.ID), zap.Error(err))
			return EmployeeDTO{}, mapRepositoryError(err)
		}
	}

	if err := s.enqueue(ctx, tx, events.EmployeeCreated, *saved); err != nil {
		log.Error("create employee outbox persist failed", zap.Int64("employee_id", empl.ID), zap.Error(err))
		return EmployeeDTO{}, err
	}

	if err := tx.Commit().Error; err != nil {
		log.Error("create employee commit failed", zap.Error(err))
		return EmployeeDTO{}, err
	}

	s.invalidateCaches(ctx)
	log.Info("create employee success", zap.Int64("employee_id", empl.ID))

	return MapToDTO(*saved), nil
}

func (s *service) Update(ctx context.Context, id int64, req UpdateEmployeeDTO) (EmployeeDTO, error) {
	log := contextutil.GetLogger(ctx, s.logger)
	log.Debug("update employee requested", zap.Int64("employee_id", id))

	tx := s.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		log.Error("update employee begin tx failed", zap.Error(tx.Error))
		return EmployeeDTO{}, tx.Error
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	empl, err := qtx.FindByID(ctx, id)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Error("update employee fetch existing failed", zap.Error(err))
		}
		return EmployeeDTO{}, mapRepositoryError(err)
	}

	if req.DepartmentID != nil {
		if err := s.ensureDepartment(ctx, qtx, *req.DepartmentID); err != nil {
			return EmployeeDTO{}, err
		}
	}

	if err := applyUpdate(empl, req); err != nil {
		log.Warn("update employee invalid input", zap.Error(err))
		return EmployeeDTO{}, err
	}

	if err := qtx.Update(ctx, empl); err != nil {
		log.Error("update employee persist failed", zap.Error(err))
		return EmployeeDTO{}, mapRepositoryError(err)
	}

	if req.DepartmentID != nil {
		if empl, err = qtx.FindByID(ctx, id); err != nil {
			log.Error("update employee reload failed", zap.Error(err))
			return EmployeeDTO{}, mapRepositoryError(err)
		}
	}

	if err := s.enqueue(ctx, tx, events.EmployeeUpdated, *empl); err != nil {
		log.Error("update employee outbox persist failed", zap.Int64("employee_id", id), zap.Error(err))
		return EmployeeDTO{}, err
	}

	if err := tx.Commit().Error; err != nil {
		log.Error("update employee commit failed", zap.Error(err))
		return EmployeeDTO{}, err
	}

	s.invalidateCaches(ctx)
	log.Info("update employee success", zap.Int64("employee_id", id))

	return MapToDTO(*empl), nil
}

func (s *service) Delete(ctx context.Context, id int64) error {
	log := contextutil.GetLogger(ctx, s.logger)
	log.Debug("delete employee requested", zap.Int64("employee_id", id))

	tx := s.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		log.Error("delete employee begin tx failed", zap.Error(tx.Error))
		return tx.Error
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	empl, err := qtx.FindByID(ctx, id)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Error("delete employee fetch existing failed", zap.Error(err))
		}
		return mapRepositoryError(err)
	}

	if err := qtx.Delete(ctx, id); err != nil {
		log.Error("delete employee failed", zap.Error(err))
		return mapRepositoryError(err)
	}

	if err := s.enqueue(ctx, tx, events.EmployeeDeleted, *empl); err != nil {
		log.Error("delete employee outbox persist failed", zap.Int64("employee_id", id), zap.Error(err))
		return err
	}

	if err := tx.Commit().Error; err != nil {
		log.Error("delete employee commit failed", zap.Error(err))
		return err
	}

	s.invalidateCaches(ctx)
	log.Info("delete employee success", zap.Int64("employee_id", id))
	return nil
}

func (s *service) ensureDepartment(ctx context.Context, qtx Repository, departmentID int64) error {
	exists, err := qtx.DepartmentExists(ctx, departmentID)
	if err != nil {
		s.logger.Error("department lookup failed", zap.Int64("department_id", departmentID), zap.Error(err))
		return err
	}
	if !exists {
		s.logger.Warn("department not found", zap.Int64("department_id", departmentID))
		return employeeerrors.ErrDepartmentNotFound
	}
	return nil
}

// enqueue writes the lifecycle event to the outbox inside tx. It is a no-op
// when the service was built without an outbox.
func (s *service) enqueue(ctx context.Context, tx *gorm.DB, eventType string, empl Employee) error {
	if s.outbox == nil {
		return nil
	}

	rid := contextutil.GetRequestID(ctx)
	payload, err := json.Marshal(events.EmployeeLifecycleEvent{
		EventType:    eventType,
		RequestID:    rid,
		EmployeeID:   empl.ID,
		DepartmentID: empl.DepartmentID,
		OccurredAt:   time.Now().UTC(),
	})
	if err != nil {
		return err
	}

	return s.outbox.WithTx(tx).Create(ctx, kafka.OutboxEvent{
		ID:            uuid.NewString(),
		RequestID:     rid,
		AggregateType: "employee",
		AggregateID:   strconv.FormatInt(empl.ID, 10),
		EventType:     eventType,
		Topic:         events.EmployeeLifecycleTopic,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	})
}

// invalidateCaches runs after commit so a reader that loads between the
// write and the bump stores under the old generation.
func (s *service) invalidateCaches(ctx context.Context) {
	if err := s.cache.Invalidate(ctx); err != nil {
		s.logger.Error("failed to invalidate employee caches", zap.Error(err))
	}
}
