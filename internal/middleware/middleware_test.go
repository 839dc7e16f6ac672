package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go-employee/internal/shared/contextutil"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func setupRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}

func TestRequestID(t *testing.T) {
	r := setupRouter()
	r.Use(RequestID())
	r.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, contextutil.GetRequestID(c.Request.Context()))
	})

	t.Run("propagates incoming id", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		req.Header.Set(RequestIDHeader, "REQ-42")

		r.ServeHTTP(w, req)

		assert.Equal(t, "REQ-42", w.Header().Get(RequestIDHeader))
		assert.Equal(t, "REQ-42", w.Body.String())
	})

	t.Run("generates id when missing", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))

		assert.NotEmpty(t, w.Header().Get(RequestIDHeader))
		assert.Equal(t, w.Header().Get(RequestIDHeader), w.Body.String())
	})
}

func TestContextLogger(t *testing.T) {
	r := setupRouter()
	r.Use(RequestID(), ContextLogger(zap.NewNop()))
	r.GET("/ping", func(c *gin.Context) {
		l := contextutil.GetLogger(c.Request.Context(), nil)
		assert.NotNil(t, l)
		c.String(http.StatusOK, contextutil.GetRequestID(c.Request.Context()))
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set(RequestIDHeader, "REQ-7")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "REQ-7", w.Body.String())
}

func TestRateLimitByIP(t *testing.T) {
	r := setupRouter()
	r.Use(RateLimitByIP(1, 2))
	r.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		r.ServeHTTP(w, req)
		codes = append(codes, w.Code)
	}

	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.RemoteAddr = "10.0.0.2:1234"
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code, "other IPs have their own bucket")
}

func TestIPRateLimiter_EvictsIdleVisitors(t *testing.T) {
	clock := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	l := NewIPRateLimiter(1, 1)
	l.now = func() time.Time { return clock }
	l.lastSweep = clock

	a := l.GetLimiter("10.0.0.1")
	assert.False(t, a.AllowN(clock, 2))
	assert.True(t, a.AllowN(clock, 1))

	clock = clock.Add(5 * time.Minute)
	l.GetLimiter("10.0.0.2")
	assert.Len(t, l.ips, 2)

	clock = clock.Add(6 * time.Minute)
	l.GetLimiter("10.0.0.2")
	assert.Len(t, l.ips, 1, "10.0.0.1 idle past the ttl is dropped")
	assert.Contains(t, l.ips, "10.0.0.2")

	clock = clock.Add(9 * time.Minute)
	assert.Same(t, l.ips["10.0.0.2"].limiter, l.GetLimiter("10.0.0.2"), "recently seen visitors keep their bucket")
}

func TestIdempotency(t *testing.T) {
	const (
		cacheKey = "idemp:/add:key-1"
		lockKey  = cacheKey + ":lock"
	)

	newRouter := func(t *testing.T) (*gin.Engine, redismock.ClientMock, *int) {
		rdb, mock := redismock.NewClientMock()
		calls := 0
		r := setupRouter()
		r.POST("/add", Idempotency(rdb), func(c *gin.Context) {
			calls++
			c.JSON(http.StatusCreated, gin.H{"employeeId": 1})
		})
		return r, mock, &calls
	}

	post := func(r *gin.Engine, key string) *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/add", nil)
		if key != "" {
			req.Header.Set(IdempotencyKeyHeader, key)
		}
		r.ServeHTTP(w, req)
		return w
	}

	stored, _ := json.Marshal(storedResponse{
		Status:      http.StatusCreated,
		ContentType: "application/json; charset=utf-8",
		Body:        []byte(`{"employeeId":1}`),
	})

	t.Run("first request stores the response", func(t *testing.T) {
		r, mock, calls := newRouter(t)
		mock.ExpectGet(cacheKey).RedisNil()
		mock.ExpectSetNX(lockKey, "locked", 30*time.Second).SetVal(true)
		mock.ExpectSet(cacheKey, stored, 24*time.Hour).SetVal("OK")
		mock.ExpectDel(lockKey).SetVal(1)

		w := post(r, "key-1")

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Equal(t, 1, *calls)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("replay skips the handler", func(t *testing.T) {
		r, mock, calls := newRouter(t)
		mock.ExpectGet(cacheKey).SetVal(string(stored))

		w := post(r, "key-1")

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Equal(t, "true", w.Header().Get("Idempotent-Replayed"))
		assert.JSONEq(t, `{"employeeId":1}`, w.Body.String())
		assert.Zero(t, *calls)
	})

	t.Run("concurrent duplicate is rejected", func(t *testing.T) {
		r, mock, calls := newRouter(t)
		mock.ExpectGet(cacheKey).RedisNil()
		mock.ExpectSetNX(lockKey, "locked", 30*time.Second).SetVal(false)

		w := post(r, "key-1")

		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Zero(t, *calls)
	})

	t.Run("no key passes through", func(t *testing.T) {
		r, mock, calls := newRouter(t)

		w := post(r, "")

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Equal(t, 1, *calls)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
