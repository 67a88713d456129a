package middleware

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"go-taxdesk/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	idempotencyLockTTL     = 30 * time.Second
	idempotencyResponseTTL = 24 * time.Hour

	ctxIdempotencyCacheKey = "idempotency_cache_key"
	ctxIdempotencyLockKey  = "idempotency_lock_key"
)

// Idempotency replays the stored response for a repeated Idempotency-Key on POST
// and rejects a repeat that arrives while the first request is still running.
func Idempotency(rdb *redis.Client) gin.HandlerFunc {
	log := zap.L().Named("middleware.idempotency")

	return func(c *gin.Context) {
		idempKey := c.GetHeader("Idempotency-Key")
		if idempKey == "" || c.Request.Method != http.MethodPost {
			c.Next()
			return
		}

		userID := c.GetString("user_id_validated")
		cacheKey := fmt.Sprintf("idemp:%s:%s:%s", c.FullPath(), userID, idempKey)
		lockKey := cacheKey + ":lock"
		ctx := c.Request.Context()

		if val, err := rdb.Get(ctx, cacheKey).Result(); err == nil {
			var cached json.RawMessage
			if json.Unmarshal([]byte(val), &cached) == nil {
				c.Header("Idempotent-Replayed", "true")
				response.Success(c, http.StatusOK, cached, nil)
				c.Abort()
				return
			}
		}

		isNew, err := rdb.SetNX(ctx, lockKey, "locked", idempotencyLockTTL).Result()
		if err != nil {
			log.Warn("idempotency lock failed, continuing without it", zap.Error(err))
			c.Next()
			return
		}
		if !isNew {
			response.Error(c, http.StatusConflict, "PROCESSING", "Transaksi Anda sedang diproses, mohon tunggu sebentar.", nil)
			c.Abort()
			return
		}

		c.Set(ctxIdempotencyCacheKey, cacheKey)
		c.Set(ctxIdempotencyLockKey, lockKey)

		c.Next()
	}
}

// ReleaseIdempotencyLock drops the in-flight lock taken by Idempotency.
func ReleaseIdempotencyLock(c *gin.Context, rdb *redis.Client) {
	if rdb == nil {
		return
	}
	if lk := c.GetString(ctxIdempotencyLockKey); lk != "" {
		_ = rdb.Del(c.Request.Context(), lk).Err()
	}
}

// StoreIdempotentResponse keeps data so a retry with the same key gets it back.
func StoreIdempotentResponse(c *gin.Context, rdb *redis.Client, data any) {
	if rdb == nil {
		return
	}
	ck := c.GetString(ctxIdempotencyCacheKey)
	if ck == "" {
		return
	}
	if payload, err := json.Marshal(data); err == nil {
		_ = rdb.Set(c.Request.Context(), ck, payload, idempotencyResponseTTL).Err()
	}
}
