package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go-taxdesk/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redismock/v9"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
)

const cacheKey = "idemp:/invoices:user-1:key-1"

func newIdempotentRouter(rdb *redis.Client, calls *int) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/invoices",
		func(c *gin.Context) { c.Set("user_id_validated", "user-1") },
		middleware.Idempotency(rdb),
		func(c *gin.Context) {
			defer middleware.ReleaseIdempotencyLock(c, rdb)
			*calls++
			data := gin.H{"invoice_number": "INV-2024-0001"}
			middleware.StoreIdempotentResponse(c, rdb, data)
			c.JSON(http.StatusCreated, gin.H{"ok": true, "data": data})
		},
	)
	return r
}

func postWithKey(key string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/invoices", nil)
	if key != "" {
		req.Header.Set("Idempotency-Key", key)
	}
	return req
}

func TestIdempotency_FirstRequestRunsHandler(t *testing.T) {
	db, mock := redismock.NewClientMock()
	calls := 0

	mock.ExpectGet(cacheKey).RedisNil()
	mock.ExpectSetNX(cacheKey+":lock", "locked", 30*time.Second).SetVal(true)
	mock.ExpectSet(cacheKey, []byte(`{"invoice_number":"INV-2024-0001"}`), 24*time.Hour).SetVal("OK")
	mock.ExpectDel(cacheKey + ":lock").SetVal(1)

	w := httptest.NewRecorder()
	newIdempotentRouter(db, &calls).ServeHTTP(w, postWithKey("key-1"))

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, 1, calls)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestIdempotency_ReplaysStoredResponse(t *testing.T) {
	db, mock := redismock.NewClientMock()
	calls := 0

	mock.ExpectGet(cacheKey).SetVal(`{"invoice_number":"INV-2024-0001"}`)

	w := httptest.NewRecorder()
	newIdempotentRouter(db, &calls).ServeHTTP(w, postWithKey("key-1"))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "true", w.Header().Get("Idempotent-Replayed"))
	assert.Contains(t, w.Body.String(), "INV-2024-0001")
	assert.Equal(t, 0, calls)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestIdempotency_InFlightDuplicate(t *testing.T) {
	db, mock := redismock.NewClientMock()
	calls := 0

	mock.ExpectGet(cacheKey).RedisNil()
	mock.ExpectSetNX(cacheKey+":lock", "locked", 30*time.Second).SetVal(false)

	w := httptest.NewRecorder()
	newIdempotentRouter(db, &calls).ServeHTTP(w, postWithKey("key-1"))

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, 0, calls)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestIdempotency_NoKeyPassesThrough(t *testing.T) {
	db, mock := redismock.NewClientMock()
	calls := 0

	w := httptest.NewRecorder()
	newIdempotentRouter(db, &calls).ServeHTTP(w, postWithKey(""))

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, 1, calls)
	assert.NoError(t, mock.ExpectationsWereMet())
}
