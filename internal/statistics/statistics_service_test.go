package statistics_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go-employee/internal/employee"
	employeeMock "go-employee/internal/employee/mock"
	"go-employee/internal/shared/cachekey"
	"go-employee/internal/statistics"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func TestStatisticsService_GetTotalEmployees(t *testing.T) {
	ctx := context.Background()

	t.Run("cache miss", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := employeeMock.NewMockRepository(ctrl)
		rdb, mock := redismock.NewClientMock()
		svc := statistics.NewService(repo, rdb)

		mock.ExpectGet(cachekey.Generation).RedisNil()
		mock.ExpectGet(cachekey.StatisticsTotal + ":0").RedisNil()
		repo.EXPECT().Count(gomock.Any()).Return(int64(3), nil)
		mock.ExpectSet(cachekey.StatisticsTotal+":0", []byte("3"), 5*time.Minute).SetVal("OK")

		total, err := svc.GetTotalEmployees(ctx)

		assert.NoError(t, err)
		assert.Equal(t, int64(3), total)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("cache hit", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := employeeMock.NewMockRepository(ctrl)
		rdb, mock := redismock.NewClientMock()
		svc := statistics.NewService(repo, rdb)

		mock.ExpectGet(cachekey.Generation).SetVal("2")
		mock.ExpectGet(cachekey.StatisticsTotal + ":2").SetVal("7")

		total, err := svc.GetTotalEmployees(ctx)

		assert.NoError(t, err)
		assert.Equal(t, int64(7), total)
	})

	t.Run("empty store without cache", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := employeeMock.NewMockRepository(ctrl)
		svc := statistics.NewService(repo, nil)

		repo.EXPECT().Count(gomock.Any()).Return(int64(0), nil)

		total, err := svc.GetTotalEmployees(ctx)

		assert.NoError(t, err)
		assert.Zero(t, total)
	})

	t.Run("store error", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := employeeMock.NewMockRepository(ctrl)
		svc := statistics.NewService(repo, nil)

		repo.EXPECT().Count(gomock.Any()).Return(int64(0), errors.New("db down"))

		_, err := svc.GetTotalEmployees(ctx)

		assert.Error(t, err)
	})
}

func TestStatisticsService_GetEmployeesByDepartment(t *testing.T) {
	ctx := context.Background()

	t.Run("counts per department", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := employeeMock.NewMockRepository(ctrl)
		rdb, mock := redismock.NewClientMock()
		svc := statistics.NewService(repo, rdb)

		mock.ExpectGet(cachekey.Generation).RedisNil()
		mock.ExpectGet(cachekey.StatisticsByDepartment + ":0").RedisNil()
		repo.EXPECT().CountByDepartment(gomock.Any()).Return([]employee.DepartmentCount{
			{Name: "Eng", Count: 2},
			{Name: "Sales", Count: 1},
		}, nil)
		mock.ExpectSet(cachekey.StatisticsByDepartment+":0", []byte(`{"Eng":2,"Sales":1}`), 5*time.Minute).SetVal("OK")

		counts, err := svc.GetEmployeesByDepartment(ctx)

		assert.NoError(t, err)
		assert.Equal(t, map[string]int64{"Eng": 2, "Sales": 1}, counts)
	})

	t.Run("unassigned employees keep the sum equal to the total", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := employeeMock.NewMockRepository(ctrl)
		svc := statistics.NewService(repo, nil)

		repo.EXPECT().CountByDepartment(gomock.Any()).Return([]employee.DepartmentCount{
			{Name: "Eng", Count: 2},
			{Name: employee.UnassignedDepartment, Count: 1},
		}, nil)
		repo.EXPECT().Count(gomock.Any()).Return(int64(3), nil)

		counts, err := svc.GetEmployeesByDepartment(ctx)
		assert.NoError(t, err)
		total, err := svc.GetTotalEmployees(ctx)
		assert.NoError(t, err)

		var sum int64
		for _, n := range counts {
			sum += n
		}
		assert.Equal(t, total, sum)
		assert.Equal(t, int64(1), counts["Unassigned"])
	})

	t.Run("no employees", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := employeeMock.NewMockRepository(ctrl)
		svc := statistics.NewService(repo, nil)

		repo.EXPECT().CountByDepartment(gomock.Any()).Return(nil, nil)

		counts, err := svc.GetEmployeesByDepartment(ctx)

		assert.NoError(t, err)
		assert.Empty(t, counts)
	})
}

func TestStatisticsService_CancelledCallerDoesNotFailOthers(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := employeeMock.NewMockRepository(ctrl)
	svc := statistics.NewService(repo, nil)

	entered := make(chan struct{})
	release := make(chan struct{})
	repo.EXPECT().
		Count(gomock.Any()).
		DoAndReturn(func(ctx context.Context) (int64, error) {
			select {
			case <-entered:
			default:
				close(entered)
			}
			<-release
			return 3, ctx.Err()
		}).
		MinTimes(1)

	ctxA, cancelA := context.WithCancel(context.Background())
	errA := make(chan error, 1)
	go func() {
		_, err := svc.GetTotalEmployees(ctxA)
		errA <- err
	}()
	<-entered

	type result struct {
		total int64
		err   error
	}
	resB := make(chan result, 1)
	go func() {
		total, err := svc.GetTotalEmployees(context.Background())
		resB <- result{total, err}
	}()

	cancelA()
	close(release)

	assert.NoError(t, <-errA)
	b := <-resB
	assert.NoError(t, b.err)
	assert.Equal(t, int64(3), b.total)
}

type fakeStatisticsService struct {
	total  int64
	counts map[string]int64
	err    error
}

func (f *fakeStatisticsService) GetTotalEmployees(context.Context) (int64, error) {
	return f.total, f.err
}
func (f *fakeStatisticsService) GetEmployeesByDepartment(context.Context) (map[string]int64, error) {
	return f.counts, f.err
}

func TestStatisticsHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)

	setup := func(svc statistics.Service) *gin.Engine {
		r := gin.New()
		statistics.RegisterRoutes(r.Group("/api"), statistics.NewHandler(svc))
		return r
	}

	t.Run("total", func(t *testing.T) {
		r := setup(&fakeStatisticsService{total: 3})
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/employee-statistics/total-employees", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "3", w.Body.String())
	})

	t.Run("by department", func(t *testing.T) {
		r := setup(&fakeStatisticsService{counts: map[string]int64{"Eng": 2, "Sales": 1}})
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/employee-statistics/employees-by-department", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"Eng":2,"Sales":1}`, w.Body.String())
	})

	t.Run("store failure", func(t *testing.T) {
		r := setup(&fakeStatisticsService{err: errors.New("db down")})
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/employee-statistics/total-employees", nil))

		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}
